package goparquet

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pqcore/parquet-core/parquet"
)

// The page pipeline moves decoded values around as a single raw byte
// stream per page rather than a typed slice, since the typed record layer
// is out of scope (§1 Non-goals). The stream's shape depends on the
// column's physical type: fixed-width types (everything but BYTE_ARRAY)
// are the concatenation of each value's native PLAIN encoding, except
// BOOLEAN, which takes one byte (0 or 1) per value rather than PLAIN's
// bit packing; BYTE_ARRAY
// is a concatenation of u32-length-prefixed values, the same framing
// plainEncodeByteArray uses. rawWidth reports the former's per-value size,
// or -1 for the latter.
func rawWidth(col *ColumnDescriptor) int {
	switch col.PhysicalType {
	case parquet.Type_INT32, parquet.Type_FLOAT:
		return 4
	case parquet.Type_INT64, parquet.Type_DOUBLE:
		return 8
	case parquet.Type_INT96:
		return int96Size
	case parquet.Type_BOOLEAN:
		return 1
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return int(col.TypeLength)
	default: // BYTE_ARRAY
		return -1
	}
}

func errUnsupportedEncoding(encoding parquet.Encoding) error {
	return newError(FeatureNotActive, "unsupported encoding %s", encoding)
}

// joinByteArrays renders a decoded [][]byte as the raw BYTE_ARRAY stream
// shape (u32 length prefix + bytes, concatenated).
func joinByteArrays(values [][]byte) []byte {
	size := 0
	for _, v := range values {
		size += 4 + len(v)
	}
	out := make([]byte, 0, size)
	var lenBuf [4]byte
	for _, v := range values {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
		out = append(out, lenBuf[:]...)
		out = append(out, v...)
	}
	return out
}

// splitRawValues is joinByteArrays's inverse for fixed-width and
// variable-width raw streams alike, used wherever individual values must
// be inspected (statistics, dictionary building).
func splitRawValues(col *ColumnDescriptor, buf []byte, n int) ([][]byte, error) {
	out := make([][]byte, n)
	width := rawWidth(col)
	if width >= 0 {
		if len(buf) != width*n {
			return nil, newError(OutOfSpec, "raw value stream: expected %d bytes for %d values of width %d, got %d", width*n, n, width, len(buf))
		}
		for i := 0; i < n; i++ {
			out[i] = buf[i*width : (i+1)*width]
		}
		return out, nil
	}
	pos := 0
	for i := 0; i < n; i++ {
		if pos+4 > len(buf) {
			return nil, newError(OutOfSpec, "raw value stream: truncated length prefix")
		}
		l := int(binary.LittleEndian.Uint32(buf[pos:]))
		pos += 4
		if l < 0 || pos+l > len(buf) {
			return nil, newError(OutOfSpec, "raw value stream: truncated value")
		}
		out[i] = buf[pos : pos+l]
		pos += l
	}
	if pos != len(buf) {
		return nil, newError(OutOfSpec, "raw value stream: %d trailing bytes", len(buf)-pos)
	}
	return out, nil
}

// decodePlainRaw reads n PLAIN-encoded values of col's physical type from
// r and returns them in the raw stream shape described above.
func decodePlainRaw(r io.Reader, col *ColumnDescriptor, n int) ([]byte, error) {
	switch col.PhysicalType {
	case parquet.Type_BOOLEAN:
		bools := make([]bool, n)
		if err := plainDecodeBoolean(r, bools); err != nil {
			return nil, err
		}
		out := make([]byte, n)
		for i, b := range bools {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	case parquet.Type_INT32:
		vals := make([]int32, n)
		if err := plainDecodeInt32(r, vals); err != nil {
			return nil, err
		}
		out := make([]byte, 4*n)
		for i, v := range vals {
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
		}
		return out, nil
	case parquet.Type_INT64:
		vals := make([]int64, n)
		if err := plainDecodeInt64(r, vals); err != nil {
			return nil, err
		}
		out := make([]byte, 8*n)
		for i, v := range vals {
			binary.LittleEndian.PutUint64(out[i*8:], uint64(v))
		}
		return out, nil
	case parquet.Type_FLOAT:
		vals := make([]float32, n)
		if err := plainDecodeFloat32(r, vals); err != nil {
			return nil, err
		}
		out := make([]byte, 4*n)
		for i := range vals {
			copy(out[i*4:], mustFloat32Bytes(vals[i]))
		}
		return out, nil
	case parquet.Type_DOUBLE:
		vals := make([]float64, n)
		if err := plainDecodeFloat64(r, vals); err != nil {
			return nil, err
		}
		out := make([]byte, 8*n)
		for i := range vals {
			copy(out[i*8:], mustFloat64Bytes(vals[i]))
		}
		return out, nil
	case parquet.Type_INT96:
		vals := make([][12]byte, n)
		if err := plainDecodeInt96(r, vals); err != nil {
			return nil, err
		}
		out := make([]byte, int96Size*n)
		for i, v := range vals {
			copy(out[i*int96Size:], v[:])
		}
		return out, nil
	case parquet.Type_FIXED_LEN_BYTE_ARRAY:
		dst := make([][]byte, n)
		if err := plainDecodeFixedLenByteArray(r, dst, int(col.TypeLength)); err != nil {
			return nil, err
		}
		out := make([]byte, 0, int(col.TypeLength)*n)
		for _, v := range dst {
			out = append(out, v...)
		}
		return out, nil
	default: // BYTE_ARRAY
		dst := make([][]byte, n)
		if err := plainDecodeByteArray(r, dst); err != nil {
			return nil, err
		}
		return joinByteArrays(dst), nil
	}
}

func mustFloat32Bytes(v float32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	return buf[:]
}

func mustFloat64Bytes(v float64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return buf[:]
}

// decodeDeltaBinaryPackedRaw reads n DELTA_BINARY_PACKED values, valid only
// for INT32 and INT64 physical types (§4.4).
func decodeDeltaBinaryPackedRaw(r io.Reader, col *ColumnDescriptor, n int) ([]byte, error) {
	switch col.PhysicalType {
	case parquet.Type_INT32:
		dec, err := newDeltaBitPackDecoder[int32](r)
		if err != nil {
			return nil, err
		}
		vals := make([]int32, n)
		if err := dec.decodeValues(vals); err != nil {
			return nil, err
		}
		out := make([]byte, 4*n)
		for i, v := range vals {
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
		}
		return out, nil
	case parquet.Type_INT64:
		dec, err := newDeltaBitPackDecoder[int64](r)
		if err != nil {
			return nil, err
		}
		vals := make([]int64, n)
		if err := dec.decodeValues(vals); err != nil {
			return nil, err
		}
		out := make([]byte, 8*n)
		for i, v := range vals {
			binary.LittleEndian.PutUint64(out[i*8:], uint64(v))
		}
		return out, nil
	default:
		return nil, newError(OutOfSpec, "delta binary packed: unsupported physical type %s", col.PhysicalType)
	}
}
