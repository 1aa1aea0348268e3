package goparquet

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// plainEncodeInt32 / plainDecodeInt32 and their sibling functions below
// implement the PLAIN encoding of §4.4: native little-endian fixed-width
// values, Boolean as an LSB-first bit-packed stream, ByteArray as a
// u32-length prefix followed by raw bytes, FixedLenByteArray as exactly n
// raw bytes, and Int96 as 12 raw bytes.

func plainEncodeInt32(w io.Writer, values []int32) error {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return writeFull(w, buf)
}

func plainDecodeInt32(r io.Reader, dst []int32) error {
	buf := make([]byte, 4*len(dst))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nil
}

func plainEncodeInt64(w io.Writer, values []int64) error {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return writeFull(w, buf)
}

func plainDecodeInt64(r io.Reader, dst []int64) error {
	buf := make([]byte, 8*len(dst))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = int64(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return nil
}

func plainEncodeFloat32(w io.Writer, values []float32) error {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return writeFull(w, buf)
}

func plainDecodeFloat32(r io.Reader, dst []float32) error {
	buf := make([]byte, 4*len(dst))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nil
}

func plainEncodeFloat64(w io.Writer, values []float64) error {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return writeFull(w, buf)
}

func plainDecodeFloat64(r io.Reader, dst []float64) error {
	buf := make([]byte, 8*len(dst))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return nil
}

func plainEncodeBoolean(w io.Writer, values []bool) error {
	buf := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return writeFull(w, buf)
}

func plainDecodeBoolean(r io.Reader, dst []bool) error {
	buf := make([]byte, (len(dst)+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = buf[i/8]&(1<<uint(i%8)) != 0
	}
	return nil
}

func plainEncodeByteArray(w io.Writer, values [][]byte) error {
	for _, v := range values {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
		if err := writeFull(w, lenBuf[:]); err != nil {
			return err
		}
		if err := writeFull(w, v); err != nil {
			return err
		}
	}
	return nil
}

func plainDecodeByteArray(r io.Reader, dst [][]byte) error {
	var lenBuf [4]byte
	for i := range dst {
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return err
		}
		n := binary.LittleEndian.Uint32(lenBuf[:])
		v := make([]byte, n)
		if _, err := io.ReadFull(r, v); err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func plainEncodeFixedLenByteArray(w io.Writer, values [][]byte, length int) error {
	for _, v := range values {
		if len(v) != length {
			return errors.Errorf("plain: fixed_len_byte_array expected %d bytes, got %d", length, len(v))
		}
		if err := writeFull(w, v); err != nil {
			return err
		}
	}
	return nil
}

func plainDecodeFixedLenByteArray(r io.Reader, dst [][]byte, length int) error {
	for i := range dst {
		v := make([]byte, length)
		if _, err := io.ReadFull(r, v); err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// int96Size is the fixed on-disk width of a legacy INT96 value.
const int96Size = 12

func plainEncodeInt96(w io.Writer, values [][12]byte) error {
	for _, v := range values {
		if err := writeFull(w, v[:]); err != nil {
			return err
		}
	}
	return nil
}

func plainDecodeInt96(r io.Reader, dst [][12]byte) error {
	for i := range dst {
		if _, err := io.ReadFull(r, dst[i][:]); err != nil {
			return err
		}
	}
	return nil
}
