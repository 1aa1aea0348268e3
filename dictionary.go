package goparquet

import (
	"io"

	"github.com/pkg/errors"

	"github.com/pqcore/parquet-core/parquet"
)

// A dictionary page's values are PLAIN-encoded (see plain.go); the wrapping
// concern specific to PLAIN_DICTIONARY/RLE_DICTIONARY data pages is the
// index stream framed here: a single leading byte giving the bit width,
// followed by a hybrid RLE/bit-packed stream of that many bits per index.

// encodeDictionaryIndices writes indices as a §4.4 dictionary index stream.
// bitWidth must be the smallest width that can hold every value in
// indices; the data page writers derive it from the page's largest index.
func encodeDictionaryIndices(w io.Writer, indices []int32, bitWidth int) error {
	if bitWidth < 0 || bitWidth > 32 {
		return errors.Errorf("dictionary index bit width %d out of range", bitWidth)
	}
	if err := writeFull(w, []byte{byte(bitWidth)}); err != nil {
		return err
	}
	enc := newHybridRLEEncoder(bitWidth)
	vals := make([]uint64, len(indices))
	for i, v := range indices {
		vals[i] = uint64(uint32(v))
	}
	if err := enc.encode(vals); err != nil {
		return err
	}
	body, err := enc.close()
	if err != nil {
		return err
	}
	return writeFull(w, body)
}

// decodeDictionaryIndices reads exactly n indices from a §4.4 dictionary
// index stream.
func decodeDictionaryIndices(r io.Reader, n int) ([]int32, error) {
	var widthBuf [1]byte
	if _, err := io.ReadFull(r, widthBuf[:]); err != nil {
		return nil, errors.Wrap(err, "dictionary index stream: bit width byte")
	}
	bitWidth := int(widthBuf[0])
	if bitWidth > 32 {
		return nil, errors.Errorf("dictionary index bit width %d out of range", bitWidth)
	}
	dec := newHybridRLEDecoder(r, bitWidth)
	raw := make([]uint64, n)
	if err := dec.decodeValues(raw); err != nil {
		return nil, errors.Wrap(err, "dictionary index stream: values")
	}
	out := make([]int32, n)
	for i, v := range raw {
		out[i] = int32(uint32(v))
	}
	return out, nil
}

// dictionaryIndexBitWidth returns the bit width needed to index a
// dictionary of dictSize entries (0 entries needs 0 bits).
func dictionaryIndexBitWidth(dictSize int) int {
	if dictSize <= 1 {
		return 0
	}
	return bitWidthForMax(uint64(dictSize - 1))
}

// buildDictionary assigns each distinct raw-encoded value (as produced by
// the relevant plain* encoder) a stable insertion-order index, returning
// the ordered dictionary values and the per-value index sequence.
func buildDictionary(values [][]byte) (dict [][]byte, indices []int32) {
	seen := make(map[string]int32, len(values))
	indices = make([]int32, len(values))
	for i, v := range values {
		key := string(v)
		idx, ok := seen[key]
		if !ok {
			idx = int32(len(dict))
			seen[key] = idx
			dict = append(dict, v)
		}
		indices[i] = idx
	}
	return dict, indices
}

// encodeDictionaryPageValues writes a dictionary's distinct values as a
// PLAIN-encoded page body. dict entries must already be in col's raw
// per-value shape (see raw_values.go): fixed-width values are exactly
// rawWidth(col) bytes each; BYTE_ARRAY values are the value bytes with no
// length prefix (PLAIN adds its own).
func encodeDictionaryPageValues(w io.Writer, col *ColumnDescriptor, dict [][]byte) error {
	if col.PhysicalType == parquet.Type_FIXED_LEN_BYTE_ARRAY {
		return plainEncodeFixedLenByteArray(w, dict, int(col.TypeLength))
	}
	if rawWidth(col) < 0 {
		return plainEncodeByteArray(w, dict)
	}
	for _, v := range dict {
		if err := writeFull(w, v); err != nil {
			return err
		}
	}
	return nil
}

// decodeDictionaryPageValues reads a dictionary page's count PLAIN-encoded
// values, returning them in the same raw per-value shape encode expects.
func decodeDictionaryPageValues(r io.Reader, col *ColumnDescriptor, count int) ([][]byte, error) {
	if col.PhysicalType == parquet.Type_FIXED_LEN_BYTE_ARRAY {
		dst := make([][]byte, count)
		if err := plainDecodeFixedLenByteArray(r, dst, int(col.TypeLength)); err != nil {
			return nil, err
		}
		return dst, nil
	}
	width := rawWidth(col)
	if width < 0 {
		dst := make([][]byte, count)
		if err := plainDecodeByteArray(r, dst); err != nil {
			return nil, err
		}
		return dst, nil
	}
	buf, err := decodePlainRaw(r, col, count)
	if err != nil {
		return nil, err
	}
	return splitRawValues(col, buf, count)
}
