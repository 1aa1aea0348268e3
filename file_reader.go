package goparquet

import (
	"context"
	"io"

	"github.com/pqcore/parquet-core/parquet"
)

// FileReader is the top-level read handle for one Parquet file: it owns
// the parsed footer and schema and hands out ColumnChunkReaders seeked to
// the right byte range on demand (§6's byte-source contract).
type FileReader struct {
	ctx    context.Context
	r      io.ReadSeeker
	meta   *parquet.FileMetaData
	schema *SchemaDescriptor
}

// OpenFileReader parses r's footer and schema. r is not read further until
// ColumnChunkReader is called.
func OpenFileReader(ctx context.Context, r io.ReadSeeker) (*FileReader, error) {
	meta, err := ReadFileMetaData(ctx, r)
	if err != nil {
		return nil, err
	}
	schema, err := NewSchemaDescriptor(meta.Schema)
	if err != nil {
		return nil, err
	}
	return &FileReader{ctx: ctx, r: r, meta: meta, schema: schema}, nil
}

// Schema returns the file's parsed schema.
func (fr *FileReader) Schema() *SchemaDescriptor { return fr.schema }

// NumRows returns the file-level row count from the footer.
func (fr *FileReader) NumRows() int64 { return fr.meta.NumRows }

// RowGroups returns the footer's row group metadata, in file order.
func (fr *FileReader) RowGroups() []*parquet.RowGroup { return fr.meta.RowGroups }

// KeyValueMetadata returns the footer's free-form key/value pairs.
func (fr *FileReader) KeyValueMetadata() []*parquet.KeyValue { return fr.meta.KeyValueMetadata }

// ColumnChunkReader seeks r to the start of row group rgIdx's column colIdx
// and returns a reader positioned to decode its pages. The starting offset
// is the chunk's dictionary page if it has one, otherwise its first data
// page, matching how a writer lays a chunk out (§4.5).
func (fr *FileReader) ColumnChunkReader(rgIdx, colIdx int) (*ColumnChunkReader, error) {
	if rgIdx < 0 || rgIdx >= len(fr.meta.RowGroups) {
		return nil, newError(InvalidParameter, "row group index %d out of range [0,%d)", rgIdx, len(fr.meta.RowGroups))
	}
	rg := fr.meta.RowGroups[rgIdx]
	if colIdx < 0 || colIdx >= len(rg.Columns) {
		return nil, newError(InvalidParameter, "column index %d out of range [0,%d)", colIdx, len(rg.Columns))
	}
	chunk := rg.Columns[colIdx]
	meta := chunk.MetaData
	if meta == nil {
		return nil, newError(OutOfSpec, "column chunk %d/%d: missing metadata", rgIdx, colIdx)
	}
	if colIdx >= len(fr.schema.Columns()) {
		return nil, newError(OutOfSpec, "row group %d: fewer schema leaves than columns", rgIdx)
	}
	col := fr.schema.Columns()[colIdx]

	offset := meta.DataPageOffset
	if meta.DictionaryPageOffset != nil {
		offset = *meta.DictionaryPageOffset
	}
	if _, err := fr.r.Seek(offset, io.SeekStart); err != nil {
		return nil, wrapError(Io, err, "seek to column chunk %d/%d", rgIdx, colIdx)
	}
	return NewColumnChunkReader(fr.ctx, fr.r, col, meta), nil
}

// RowGroupNumRows returns row group rgIdx's row count.
func (fr *FileReader) RowGroupNumRows(rgIdx int) int64 {
	return fr.meta.RowGroups[rgIdx].NumRows
}
