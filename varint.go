package goparquet

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// writeUVariant and readUVariant are the unsigned LEB128 varints used for
// hybrid-RLE run headers and the block/miniblock counts of delta-bitpacked
// streams.
func writeUVariant(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return writeFull(w, buf[:n])
}

func readUVariant(r io.Reader) (uint64, error) {
	return binary.ReadUvarint(byteReader{r})
}

func readUVariant32(r io.Reader) (int32, error) {
	v, err := readUVariant(r)
	if err != nil {
		return 0, err
	}
	if v > 0x7fffffff {
		return 0, errors.Errorf("varint32: value %d overflows int32", v)
	}
	return int32(v), nil
}

// writeVariant and readVariant are zigzag-encoded signed varints, used for
// the delta-bitpacked first_value/min_delta headers.
func writeVariant(w io.Writer, v int64) error {
	return writeUVariant(w, zigzagEncode64(v))
}

func readVariant(r io.Reader) (int64, error) {
	u, err := readUVariant(r)
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(u), nil
}

func zigzagEncode64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// byteReader adapts an io.Reader without ReadByte to the encoding/binary
// varint helpers, which require io.ByteReader.
type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	if br, ok := b.Reader.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var buf [1]byte
	if _, err := io.ReadFull(b.Reader, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}
