package goparquet

import (
	"context"
	"hash/crc32"
	"io"

	"github.com/pqcore/parquet-core/parquet"
)

// readPageHeader deserializes one PageHeader from r via the thrift compact
// protocol codec in the parquet subpackage, then reads exactly
// compressed_page_size payload bytes that follow it. When the header
// carries a CRC, the compressed payload is checked against it before the
// caller ever gets to decompress a corrupt page.
func readPageHeader(ctx context.Context, r io.Reader) (*parquet.PageHeader, []byte, error) {
	h := &parquet.PageHeader{}
	if err := parquet.ReadThrift(ctx, r, h); err != nil {
		return nil, nil, wrapError(MalformedMetadata, err, "page header")
	}
	if h.CompressedPageSize < 0 {
		return nil, nil, newError(OutOfSpec, "page header: negative compressed size %d", h.CompressedPageSize)
	}
	payload := make([]byte, h.CompressedPageSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, nil, wrapError(Io, err, "page payload")
	}
	if h.CRC != nil {
		if got := int32(crc32.ChecksumIEEE(payload)); got != *h.CRC {
			return nil, nil, newError(OutOfSpec, "page payload CRC mismatch: header %d, computed %d", *h.CRC, got)
		}
	}
	return h, payload, nil
}

// writePageHeader serializes header and then writes payload, which must
// already be exactly header.CompressedPageSize bytes.
func writePageHeader(ctx context.Context, w io.Writer, header *parquet.PageHeader, payload []byte) error {
	if int32(len(payload)) != header.CompressedPageSize {
		return newError(InvalidParameter, "page payload length %d does not match header %d", len(payload), header.CompressedPageSize)
	}
	if err := parquet.WriteThrift(ctx, w, header); err != nil {
		return wrapError(MalformedMetadata, err, "page header")
	}
	if err := writeFull(w, payload); err != nil {
		return wrapError(Io, err, "page payload")
	}
	return nil
}
