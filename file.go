package goparquet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"

	"github.com/pqcore/parquet-core/parquet"
)

// magic is the four-byte tag opening and closing every Parquet file.
var magic = []byte{'P', 'A', 'R', '1'}

const (
	footerLengthSize = 4
	magicSize        = 4
	minFileSize      = magicSize + footerLengthSize + magicSize
)

// ReadFileMetaData locates and decodes a Parquet file's footer: seek to
// end, read the last 8 bytes, verify the trailing magic, interpret the
// preceding 4 bytes as a little-endian footer length, seek back that far
// plus 8, and thrift-decode the footer body (§4.1).
func ReadFileMetaData(ctx context.Context, r io.ReadSeeker) (*parquet.FileMetaData, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, wrapError(Io, err, "seek to end")
	}
	if size < int64(minFileSize) {
		return nil, newError(OutOfSpec, "file too small to contain a footer: %d bytes", size)
	}

	var tail [8]byte
	if _, err := r.Seek(-8, io.SeekEnd); err != nil {
		return nil, wrapError(Io, err, "seek to footer trailer")
	}
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return nil, wrapError(Io, err, "read footer trailer")
	}
	if !bytes.Equal(tail[4:8], magic) {
		return nil, newError(OutOfSpec, "missing trailing magic %q", magic)
	}
	footerLen := int64(binary.LittleEndian.Uint32(tail[0:4]))
	if footerLen < 0 || footerLen+int64(minFileSize) > size {
		return nil, newError(OutOfSpec, "invalid footer length %d for file of size %d", footerLen, size)
	}

	if _, err := r.Seek(-8-footerLen, io.SeekEnd); err != nil {
		return nil, wrapError(Io, err, "seek to footer body")
	}
	meta := &parquet.FileMetaData{}
	if err := parquet.ReadThrift(ctx, io.LimitReader(r, footerLen), meta); err != nil {
		return nil, wrapError(MalformedMetadata, err, "footer")
	}
	return meta, nil
}

// ValidateFileMagic checks the four-byte magic at the very start of the
// file in addition to the footer's trailing copy, for callers that want
// the stronger guarantee before trusting the rest of the stream.
func ValidateFileMagic(r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return wrapError(Io, err, "seek to head magic")
	}
	var head [magicSize]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return wrapError(Io, err, "read head magic")
	}
	if !bytes.Equal(head[:], magic) {
		return newError(OutOfSpec, "missing leading magic %q", magic)
	}
	return nil
}

// WriteFileMagic writes the four-byte head magic a writer must emit
// before its first row group.
func WriteFileMagic(w io.Writer) error {
	return writeFull(w, magic)
}

// WriteFileMetaData serializes meta, appends its little-endian length,
// then the trailing magic, per §4.1's footer write sequence. It does not
// write the head magic; call WriteFileMagic first.
func WriteFileMetaData(ctx context.Context, w io.Writer, meta *parquet.FileMetaData) error {
	var buf bytes.Buffer
	if err := parquet.WriteThrift(ctx, &buf, meta); err != nil {
		return wrapError(MalformedMetadata, err, "footer")
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(buf.Len()))
	if err := writeFull(w, buf.Bytes()); err != nil {
		return wrapError(Io, err, "footer body")
	}
	if err := writeFull(w, lenBuf[:]); err != nil {
		return wrapError(Io, err, "footer length")
	}
	return writeFull(w, magic)
}
