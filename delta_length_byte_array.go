package goparquet

import (
	"io"

	"github.com/pkg/errors"
)

// deltaLengthByteArrayEncode implements §4.4's delta-length byte array
// encoding: a delta-bitpacked int32 length stream followed by the raw
// concatenation of the value bytes.
func deltaLengthByteArrayEncode(w io.Writer, values [][]byte) error {
	lengths := newDeltaBitPackEncoder[int32]()
	for _, v := range values {
		if err := lengths.addValue(int32(len(v))); err != nil {
			return err
		}
	}
	lenStream, err := lengths.close()
	if err != nil {
		return err
	}
	if err := writeFull(w, lenStream); err != nil {
		return err
	}
	for _, v := range values {
		if err := writeFull(w, v); err != nil {
			return err
		}
	}
	return nil
}

// deltaLengthByteArrayDecode reads exactly n values.
func deltaLengthByteArrayDecode(r io.Reader, n int) ([][]byte, error) {
	dec, err := newDeltaBitPackDecoder[int32](r)
	if err != nil {
		return nil, errors.Wrap(err, "delta length byte array: length stream")
	}
	lengths := make([]int32, n)
	if err := dec.decodeValues(lengths); err != nil {
		return nil, errors.Wrap(err, "delta length byte array: decode lengths")
	}
	out := make([][]byte, n)
	for i, l := range lengths {
		if l < 0 {
			return nil, errors.Errorf("delta length byte array: negative length %d", l)
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrap(err, "delta length byte array: value bytes")
		}
		out[i] = buf
	}
	return out, nil
}
