package goparquet

import (
	"context"
	"io"

	"github.com/pqcore/parquet-core/parquet"
)

// FileWriter is the top-level write handle for one Parquet file. Always
// build one with NewFileWriter; it is not safe for concurrent use by
// multiple goroutines (§5's "single-threaded and synchronous" scheduling
// model applies at the file level too).
type FileWriter struct {
	ctx context.Context
	w   countingWriter

	version   int32
	createdBy string
	kvStore   map[string]string
	schema    *SchemaDescriptor

	codec            parquet.CompressionCodec
	compressionLevel int
	pageVersion      DataPageVersion
	maxPageSize      int
	writeStatistics  bool
	writeDictionary  bool

	wroteMagic bool
	closed     bool
	rowGroups  []*parquet.RowGroup
	totalRows  int64
}

// FileWriterOption configures a FileWriter at construction time.
type FileWriterOption func(*FileWriter)

// WithFileVersion sets the format version recorded in the footer.
func WithFileVersion(version int32) FileWriterOption {
	return func(fw *FileWriter) { fw.version = version }
}

// WithCreatedBy sets the footer's created_by string.
func WithCreatedBy(createdBy string) FileWriterOption {
	return func(fw *FileWriter) { fw.createdBy = createdBy }
}

// WithFileKeyValueMetadata sets the footer's free-form key/value metadata.
func WithFileKeyValueMetadata(kv map[string]string) FileWriterOption {
	return func(fw *FileWriter) {
		if kv == nil {
			kv = make(map[string]string)
		}
		fw.kvStore = kv
	}
}

// WithCompression sets the codec (and its level, where meaningful) every
// column chunk written after this option is applied will use.
func WithCompression(codec parquet.CompressionCodec, level int) FileWriterOption {
	return func(fw *FileWriter) {
		fw.codec = codec
		fw.compressionLevel = level
	}
}

// WithDataPageV2 switches new data pages to the V2 header shape (split
// levels, page-level null/row counts). The default is V1.
func WithDataPageV2() FileWriterOption {
	return func(fw *FileWriter) { fw.pageVersion = DataPageV2 }
}

// WithMaxPageSize overrides the default 1 MiB uncompressed page size cap.
func WithMaxPageSize(n int) FileWriterOption {
	return func(fw *FileWriter) { fw.maxPageSize = n }
}

// WithStatistics enables per-page and per-chunk statistics, per §6's
// WriteOptions.write_statistics.
func WithStatistics(enabled bool) FileWriterOption {
	return func(fw *FileWriter) { fw.writeStatistics = enabled }
}

// WithDictionaryEncoding enables dictionary encoding for eligible columns
// (disabled automatically per chunk when it would not pay off, see
// column_chunk_writer.go's WriteChunk).
func WithDictionaryEncoding(enabled bool) FileWriterOption {
	return func(fw *FileWriter) { fw.writeDictionary = enabled }
}

// NewFileWriter creates a FileWriter that will write schema's columns to
// w. No bytes are written until the first row group begins.
func NewFileWriter(ctx context.Context, w io.Writer, schema *SchemaDescriptor, options ...FileWriterOption) *FileWriter {
	fw := &FileWriter{
		ctx:       ctx,
		w:         countingWriter{w: w},
		version:   1,
		createdBy: "pqcore-parquet-core",
		kvStore:   make(map[string]string),
		schema:    schema,
	}
	for _, opt := range options {
		opt(fw)
	}
	return fw
}

// CurrentFileSize returns the number of bytes written so far, not
// including any row group still open.
func (fw *FileWriter) CurrentFileSize() int64 { return fw.w.n }

// RowGroupWriter accumulates one row group's column chunks. Obtain one via
// FileWriter.BeginRowGroup, write every schema column through it in
// schema order, then Close it with the row group's logical row count.
type RowGroupWriter struct {
	fw         *FileWriter
	fileOffset int64
	ordinal    int16
	columns    []*parquet.ColumnChunk
	closed     bool
}

// BeginRowGroup starts a new row group at the writer's current position,
// writing the file's leading magic first if this is the first row group.
func (fw *FileWriter) BeginRowGroup() (*RowGroupWriter, error) {
	if fw.closed {
		return nil, newError(InvalidParameter, "file writer: already closed")
	}
	if !fw.wroteMagic {
		if err := WriteFileMagic(&fw.w); err != nil {
			return nil, err
		}
		fw.wroteMagic = true
	}
	return &RowGroupWriter{fw: fw, fileOffset: fw.w.n, ordinal: int16(len(fw.rowGroups))}, nil
}

// WriteColumn writes one schema leaf's full set of levels and values as a
// column chunk. colIdx indexes fw.schema.Columns(). Chunks are recorded in
// the order WriteColumn is called, so columns must be written in schema
// order, once each per row group; RowGroupWriter.Close checks only that the
// number of chunks matches the number of columns.
func (rgw *RowGroupWriter) WriteColumn(colIdx int, repLevels, defLevels []uint16, rawValues []byte, numValues int) error {
	if rgw.closed {
		return newError(InvalidParameter, "row group writer: already closed")
	}
	fw := rgw.fw
	cols := fw.schema.Columns()
	if colIdx < 0 || colIdx >= len(cols) {
		return newError(InvalidParameter, "column index %d out of range [0,%d)", colIdx, len(cols))
	}
	col := cols[colIdx]
	chunkOffset := fw.w.n
	ccw := NewColumnChunkWriter(fw.ctx, &fw.w, chunkOffset, col, ColumnChunkWriterOptions{
		Codec:            fw.codec,
		CompressionLevel: fw.compressionLevel,
		Version:          fw.pageVersion,
		MaxPageSize:      fw.maxPageSize,
		WriteDictionary:  fw.writeDictionary,
		WriteStatistics:  fw.writeStatistics,
	})
	meta, err := ccw.WriteChunk(repLevels, defLevels, rawValues, numValues)
	if err != nil {
		return err
	}
	rgw.columns = append(rgw.columns, &parquet.ColumnChunk{
		FileOffset: chunkOffset,
		MetaData:   meta,
	})
	return nil
}

// Close finalizes the row group with its logical row count (the top-level
// record count, which may differ from any one column's leaf value count
// once repeated fields are involved) and appends it to the file's footer
// state.
func (rgw *RowGroupWriter) Close(numRows int64) error {
	if rgw.closed {
		return newError(InvalidParameter, "row group writer: already closed")
	}
	if len(rgw.columns) != len(rgw.fw.schema.Columns()) {
		return newError(InvalidParameter, "row group: wrote %d of %d columns", len(rgw.columns), len(rgw.fw.schema.Columns()))
	}
	var totalSize int64
	for _, c := range rgw.columns {
		totalSize += c.MetaData.TotalCompressedSize
	}
	rgw.fw.rowGroups = append(rgw.fw.rowGroups, &parquet.RowGroup{
		Columns:       rgw.columns,
		TotalByteSize: totalSize,
		NumRows:       numRows,
		FileOffset:    &rgw.fileOffset,
		Ordinal:       &rgw.ordinal,
	})
	rgw.fw.totalRows += numRows
	rgw.closed = true
	return nil
}

// Close finalizes the file: writes the thrift-serialized FileMetaData, its
// 4-byte length, and the trailing magic. It is idempotent on success — a
// second call returns nil without writing anything further. A file with no
// row groups is accepted: Close then writes the leading magic and a footer
// whose row group list is empty.
//
// Statistics are already embedded in each ColumnChunk's MetaData by the
// time a row group closes (see RowGroupWriter.Close / ColumnChunkWriter.
// WriteChunk), so there is no separate late-statistics step here to skip —
// closing this writer through any path always writes what WriteChunk
// already computed.
func (fw *FileWriter) Close() error {
	if fw.closed {
		return nil
	}
	if !fw.wroteMagic {
		if err := WriteFileMagic(&fw.w); err != nil {
			return err
		}
		fw.wroteMagic = true
	}
	kv := make([]*parquet.KeyValue, 0, len(fw.kvStore))
	for k, v := range fw.kvStore {
		val := v
		kv = append(kv, &parquet.KeyValue{Key: k, Value: &val})
	}
	meta := &parquet.FileMetaData{
		Version:          fw.version,
		Schema:           fw.schema.Elements(),
		NumRows:          fw.totalRows,
		RowGroups:        fw.rowGroups,
		KeyValueMetadata: kv,
		CreatedBy:        &fw.createdBy,
	}
	if err := WriteFileMetaData(fw.ctx, &fw.w, meta); err != nil {
		return err
	}
	fw.closed = true
	return nil
}
