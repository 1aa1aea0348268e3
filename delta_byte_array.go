package goparquet

import (
	"io"

	"github.com/pkg/errors"
)

// deltaByteArrayEncode implements §4.4's delta byte array encoding: two
// delta-bitpacked int32 substreams (prefix lengths, then suffix lengths),
// followed by the concatenated suffix bytes. Value i is reconstructed as
// the first prefix[i] bytes of value i-1 followed by suffix[i]; value 0
// has prefix length 0. This mirrors the incremental-key layout
// dictionary-sorted string columns tend to produce.
func deltaByteArrayEncode(w io.Writer, values [][]byte) error {
	prefixLens := newDeltaBitPackEncoder[int32]()
	suffixLens := newDeltaBitPackEncoder[int32]()
	suffixes := make([][]byte, len(values))

	var prev []byte
	for i, v := range values {
		p := commonPrefixLen(prev, v)
		suffix := v[p:]
		if err := prefixLens.addValue(int32(p)); err != nil {
			return err
		}
		if err := suffixLens.addValue(int32(len(suffix))); err != nil {
			return err
		}
		suffixes[i] = suffix
		prev = v
	}

	prefixStream, err := prefixLens.close()
	if err != nil {
		return err
	}
	suffixLenStream, err := suffixLens.close()
	if err != nil {
		return err
	}
	if err := writeFull(w, prefixStream); err != nil {
		return err
	}
	if err := writeFull(w, suffixLenStream); err != nil {
		return err
	}
	for _, s := range suffixes {
		if err := writeFull(w, s); err != nil {
			return err
		}
	}
	return nil
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// deltaByteArrayDecode reads exactly n values.
func deltaByteArrayDecode(r io.Reader, n int) ([][]byte, error) {
	prefixDec, err := newDeltaBitPackDecoder[int32](r)
	if err != nil {
		return nil, errors.Wrap(err, "delta byte array: prefix length stream")
	}
	prefixLens := make([]int32, n)
	if err := prefixDec.decodeValues(prefixLens); err != nil {
		return nil, errors.Wrap(err, "delta byte array: decode prefix lengths")
	}

	suffixDec, err := newDeltaBitPackDecoder[int32](r)
	if err != nil {
		return nil, errors.Wrap(err, "delta byte array: suffix length stream")
	}
	suffixLens := make([]int32, n)
	if err := suffixDec.decodeValues(suffixLens); err != nil {
		return nil, errors.Wrap(err, "delta byte array: decode suffix lengths")
	}

	out := make([][]byte, n)
	var prev []byte
	for i := 0; i < n; i++ {
		p := int(prefixLens[i])
		if p < 0 || p > len(prev) {
			return nil, errors.Errorf("delta byte array: prefix length %d exceeds previous value length %d", p, len(prev))
		}
		sl := int(suffixLens[i])
		if sl < 0 {
			return nil, errors.Errorf("delta byte array: negative suffix length %d", sl)
		}
		suffix := make([]byte, sl)
		if _, err := io.ReadFull(r, suffix); err != nil {
			return nil, errors.Wrap(err, "delta byte array: suffix bytes")
		}
		v := make([]byte, p+sl)
		copy(v, prev[:p])
		copy(v[p:], suffix)
		out[i] = v
		prev = v
	}
	return out, nil
}
