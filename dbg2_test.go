package goparquet

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/pqcore/parquet-core/parquet"
)

func TestDebugNulls(t *testing.T) {
	col := optionalByteArrayColumn()
	defLevels := []uint16{1, 0, 1, 1}
	values := [][]byte{[]byte("aa"), []byte("bb"), []byte("cc")}
	raw := joinByteArrays(values)

	var buf bytes.Buffer
	cw := NewColumnChunkWriter(context.Background(), &buf, 0, col, ColumnChunkWriterOptions{
		Codec: parquet.CompressionCodec_UNCOMPRESSED,
	})
	meta, err := cw.WriteChunk(nil, defLevels, raw, 4)
	fmt.Println("write err", err, meta)
	fmt.Println("buf bytes", buf.Bytes())
	fmt.Println("buf len", buf.Len())

	br := bytes.NewReader(buf.Bytes())
	h, payload, err := readPageHeader(context.Background(), br)
	fmt.Println("header err", err)
	fmt.Println("header", h)
	fmt.Println("payload", payload, len(payload))
	fmt.Println("remaining", br.Len())
}
