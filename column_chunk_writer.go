package goparquet

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/pqcore/parquet-core/parquet"
)

// DataPageVersion selects which page header shape new data pages use.
type DataPageVersion int

const (
	DataPageV1 DataPageVersion = iota
	DataPageV2
)

// defaultMaxPageSize is the uncompressed byte size a data page's value
// segment is allowed to grow to before the writer starts a new one.
const defaultMaxPageSize = 1 << 20 // 1 MiB

// ColumnChunkWriterOptions configures one column chunk's encoding choices.
// The zero value is PLAIN/UNCOMPRESSED/V1 with no dictionary and no
// statistics, so callers only need to set what they want to change.
type ColumnChunkWriterOptions struct {
	Codec            parquet.CompressionCodec
	CompressionLevel int
	Version          DataPageVersion
	MaxPageSize      int
	WriteDictionary  bool
	WriteStatistics  bool
}

// ColumnChunkWriter runs the write-side page pipeline of §4.8: given a
// column chunk's full set of levels and values, it emits an optional
// dictionary page followed by one or more data pages, and reduces the
// per-page statistics and offsets a RowGroup's ColumnChunk needs.
type ColumnChunkWriter struct {
	ctx  context.Context
	w    countingWriter
	col  *ColumnDescriptor
	opts ColumnChunkWriterOptions

	dataPageOffset       int64
	haveDataPageOffset   bool
	dictionaryPageOffset int64
	haveDictionaryOffset bool

	totalCompressedSize   int64
	totalUncompressedSize int64
	encodingsSeen         map[parquet.Encoding]*parquet.PageEncodingStats
	pageEncodingStats     []*parquet.PageEncodingStats
	stats                 statAccumulator
	distinctCount         *int64
}

// countingWriter tracks the absolute file offset of the next byte: n starts
// at the offset w is positioned at (see NewColumnChunkWriter) and grows by
// every byte written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// NewColumnChunkWriter wraps w, which must be positioned where this column
// chunk's bytes begin. startOffset is that position's absolute offset in
// the underlying file, so the dictionary/data page offsets recorded in the
// returned ColumnMetaData are correct even though w itself only sees the
// bytes written through it, not what came before.
func NewColumnChunkWriter(ctx context.Context, w io.Writer, startOffset int64, col *ColumnDescriptor, opts ColumnChunkWriterOptions) *ColumnChunkWriter {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = defaultMaxPageSize
	}
	return &ColumnChunkWriter{
		ctx:           ctx,
		w:             countingWriter{w: w, n: startOffset},
		col:           col,
		opts:          opts,
		encodingsSeen: make(map[parquet.Encoding]*parquet.PageEncodingStats),
		stats:         newStatAccumulator(col.PhysicalType),
	}
}

// WriteChunk encodes an entire column chunk's worth of data. repLevels and
// defLevels are nil when the corresponding max level is 0; otherwise each
// has exactly numValues entries, one per leaf slot including nulls (the
// same accounting the page header's num_values field uses). rawValues
// holds the non-null values in the raw per-value shape from raw_values.go,
// in slot order.
//
// Pages are split at repetition-level-zero boundaries when the column is
// repeated, so no page ever ends mid-record (a record longer than one
// page's budget is written as a page of its own); otherwise they split at
// any slot once MaxPageSize is exceeded.
func (cw *ColumnChunkWriter) WriteChunk(repLevels, defLevels []uint16, rawValues []byte, numValues int) (*parquet.ColumnMetaData, error) {
	numDefined := numValues
	if defLevels != nil {
		numDefined = 0
		for _, d := range defLevels {
			if int32(d) == cw.col.MaxDefinitionLevel {
				numDefined++
			}
		}
	}
	values, err := splitRawValues(cw.col, rawValues, numDefined)
	if err != nil {
		return nil, err
	}

	var dict [][]byte
	var indices []int32
	useDictionary := cw.opts.WriteDictionary && cw.col.PhysicalType != parquet.Type_BOOLEAN && numDefined > 0
	if useDictionary {
		dict, indices = buildDictionary(values)
		if len(values) > 0 && len(dict) > len(values)/2 {
			useDictionary = false // too little repetition to pay off
		}
	}
	if useDictionary {
		if err := cw.writeDictionaryPage(dict); err != nil {
			return nil, err
		}
	}

	for _, v := range values {
		cw.stats.observe(v)
	}
	cw.stats.addNulls(int64(numValues - numDefined))

	approxWidth := rawWidth(cw.col)
	if approxWidth <= 0 {
		approxWidth = 16 // rough guess for variable-width leaves
	}
	if useDictionary {
		approxWidth = 4
	}
	maxSlotsPerPage := cw.opts.MaxPageSize / approxWidth
	if maxSlotsPerPage < 1 {
		maxSlotsPerPage = 1
	}

	pos := 0 // index into values/indices
	start := 0
	for start < numValues {
		end := start + maxSlotsPerPage
		if end > numValues {
			end = numValues
		}
		if repLevels != nil && end < numValues {
			for end > start+1 && repLevels[end] != 0 {
				end--
			}
			for end < numValues && repLevels[end] != 0 {
				end++
			}
		}
		defSeg, repSeg := sliceLevels(defLevels, repLevels, start, end)
		definedInSeg := end - start
		if defLevels != nil {
			definedInSeg = 0
			for _, d := range defSeg {
				if int32(d) == cw.col.MaxDefinitionLevel {
					definedInSeg++
				}
			}
		}

		numNullsInSeg := (end - start) - definedInSeg
		var pageErr error
		switch {
		case cw.opts.Version == DataPageV2 && useDictionary:
			pageErr = cw.writeDataPageDictionaryV2(repSeg, defSeg, indices[pos:pos+definedInSeg], end-start, numNullsInSeg)
		case cw.opts.Version == DataPageV2:
			pageErr = cw.writeDataPagePlainV2(repSeg, defSeg, values[pos:pos+definedInSeg], end-start, numNullsInSeg)
		case useDictionary:
			pageErr = cw.writeDataPageDictionary(repSeg, defSeg, indices[pos:pos+definedInSeg], end-start)
		default:
			pageErr = cw.writeDataPagePlain(repSeg, defSeg, values[pos:pos+definedInSeg], end-start)
		}
		if pageErr != nil {
			return nil, pageErr
		}
		pos += definedInSeg
		start = end
	}

	meta := &parquet.ColumnMetaData{
		Type:                  cw.col.PhysicalType,
		Encodings:             cw.sortedEncodings(),
		PathInSchema:          cw.col.Path,
		Codec:                 cw.opts.Codec,
		NumValues:             int64(numValues),
		TotalUncompressedSize: cw.totalUncompressedSize,
		TotalCompressedSize:   cw.totalCompressedSize,
		DataPageOffset:        cw.dataPageOffset,
		EncodingStats:         cw.pageEncodingStats,
	}
	if cw.haveDictionaryOffset {
		off := cw.dictionaryPageOffset
		meta.DictionaryPageOffset = &off
	}
	if cw.opts.WriteStatistics {
		meta.Statistics = toThrift(cw.stats, cw.distinctCount)
	}
	return meta, nil
}

func sliceLevels(defLevels, repLevels []uint16, start, end int) (def, rep []uint16) {
	if defLevels != nil {
		def = defLevels[start:end]
	}
	if repLevels != nil {
		rep = repLevels[start:end]
	}
	return def, rep
}

func (cw *ColumnChunkWriter) writeDictionaryPage(dict [][]byte) error {
	var body bytes.Buffer
	if err := encodeDictionaryPageValues(&body, cw.col, dict); err != nil {
		return err
	}
	header := &parquet.PageHeader{
		Type: parquet.PageType_DICTIONARY_PAGE,
		DictionaryPageHeader: &parquet.DictionaryPageHeader{
			NumValues: int32(len(dict)),
			Encoding:  parquet.Encoding_PLAIN,
		},
	}
	cp, err := compressPage(PageDictionary, header, body.Bytes(), cw.opts.Codec, cw.opts.CompressionLevel)
	if err != nil {
		return err
	}
	return cw.WritePage(cp)
}

func (cw *ColumnChunkWriter) writeDataPagePlain(repLevels, defLevels []uint16, values [][]byte, numValues int) error {
	var body bytes.Buffer
	if err := cw.encodeLevelsV1(&body, repLevels, cw.col.MaxRepetitionLevel, numValues); err != nil {
		return err
	}
	if err := cw.encodeLevelsV1(&body, defLevels, cw.col.MaxDefinitionLevel, numValues); err != nil {
		return err
	}
	if err := encodePlainValues(&body, cw.col, values); err != nil {
		return err
	}
	return cw.emitDataPage(body.Bytes(), int32(numValues), parquet.Encoding_PLAIN)
}

func (cw *ColumnChunkWriter) writeDataPageDictionary(repLevels, defLevels []uint16, indices []int32, numValues int) error {
	var body bytes.Buffer
	if err := cw.encodeLevelsV1(&body, repLevels, cw.col.MaxRepetitionLevel, numValues); err != nil {
		return err
	}
	if err := cw.encodeLevelsV1(&body, defLevels, cw.col.MaxDefinitionLevel, numValues); err != nil {
		return err
	}
	var maxIdx int32
	for _, idx := range indices {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	bitWidth := bitWidthForMax(uint64(maxIdx))
	if err := encodeDictionaryIndices(&body, indices, bitWidth); err != nil {
		return err
	}
	return cw.emitDataPage(body.Bytes(), int32(numValues), parquet.Encoding_RLE_DICTIONARY)
}

// writeDataPagePlainV2 and writeDataPageDictionaryV2 mirror their V1
// counterparts but split levels and values into DataPageHeaderV2's own
// segments instead of a shared V1 envelope, per §3's V2 layout: levels are
// bare hybrid-RLE streams (no length prefix, the header's byte-length
// fields delimit them) and only the values segment is compressed.
func (cw *ColumnChunkWriter) writeDataPagePlainV2(repLevels, defLevels []uint16, values [][]byte, numValues, numNulls int) error {
	repBytes, err := encodeLevelsV2(repLevels, cw.col.MaxRepetitionLevel, numValues)
	if err != nil {
		return err
	}
	defBytes, err := encodeLevelsV2(defLevels, cw.col.MaxDefinitionLevel, numValues)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := encodePlainValues(&body, cw.col, values); err != nil {
		return err
	}
	return cw.emitDataPageV2(repBytes, defBytes, body.Bytes(), numValues, numNulls, parquet.Encoding_PLAIN)
}

func (cw *ColumnChunkWriter) writeDataPageDictionaryV2(repLevels, defLevels []uint16, indices []int32, numValues, numNulls int) error {
	repBytes, err := encodeLevelsV2(repLevels, cw.col.MaxRepetitionLevel, numValues)
	if err != nil {
		return err
	}
	defBytes, err := encodeLevelsV2(defLevels, cw.col.MaxDefinitionLevel, numValues)
	if err != nil {
		return err
	}
	var maxIdx int32
	for _, idx := range indices {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	bitWidth := bitWidthForMax(uint64(maxIdx))
	var body bytes.Buffer
	if err := encodeDictionaryIndices(&body, indices, bitWidth); err != nil {
		return err
	}
	return cw.emitDataPageV2(repBytes, defBytes, body.Bytes(), numValues, numNulls, parquet.Encoding_RLE_DICTIONARY)
}

func (cw *ColumnChunkWriter) emitDataPageV2(repBytes, defBytes, values []byte, numValues, numNulls int, encoding parquet.Encoding) error {
	header := &parquet.PageHeader{
		Type: parquet.PageType_DATA_PAGE_V2,
		DataPageHeaderV2: &parquet.DataPageHeaderV2{
			NumValues: int32(numValues),
			NumNulls:  int32(numNulls),
			NumRows:   int32(numValues),
			Encoding:  encoding,
		},
	}
	cp, err := compressPageV2(header, repBytes, defBytes, values, cw.opts.Codec, cw.opts.CompressionLevel, true)
	if err != nil {
		return err
	}
	return cw.WritePage(cp)
}

// encodeLevelsV2 is encodeLevelsV1 without the 4-byte length prefix V1's
// shared envelope needs but V2's own header fields make redundant.
func encodeLevelsV2(levels []uint16, maxLevel int32, numValues int) ([]byte, error) {
	if maxLevel == 0 {
		return nil, nil
	}
	bitWidth := bitWidthForMax(uint64(maxLevel))
	enc := newHybridRLEEncoder(bitWidth)
	raw := make([]uint64, numValues)
	for i, l := range levels {
		raw[i] = uint64(l)
	}
	if err := enc.encode(raw); err != nil {
		return nil, err
	}
	return enc.close()
}

// encodeLevelsV1 writes a length-prefixed hybrid-RLE level stream, or
// nothing at all when maxLevel is 0 (matching the V1 envelope layout the
// reader expects, see column_chunk_reader.go's decodeV1Levels).
func (cw *ColumnChunkWriter) encodeLevelsV1(body *bytes.Buffer, levels []uint16, maxLevel int32, numValues int) error {
	if maxLevel == 0 {
		return nil
	}
	bitWidth := bitWidthForMax(uint64(maxLevel))
	enc := newHybridRLEEncoder(bitWidth)
	raw := make([]uint64, numValues)
	for i, l := range levels {
		raw[i] = uint64(l)
	}
	if err := enc.encode(raw); err != nil {
		return err
	}
	encoded, err := enc.close()
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	lenBuf[0] = byte(len(encoded))
	lenBuf[1] = byte(len(encoded) >> 8)
	lenBuf[2] = byte(len(encoded) >> 16)
	lenBuf[3] = byte(len(encoded) >> 24)
	body.Write(lenBuf[:])
	body.Write(encoded)
	return nil
}

func (cw *ColumnChunkWriter) emitDataPage(body []byte, numValues int32, encoding parquet.Encoding) error {
	header := &parquet.PageHeader{
		Type: parquet.PageType_DATA_PAGE,
		DataPageHeader: &parquet.DataPageHeader{
			NumValues:               numValues,
			Encoding:                encoding,
			DefinitionLevelEncoding: parquet.Encoding_RLE,
			RepetitionLevelEncoding: parquet.Encoding_RLE,
		},
	}
	cp, err := compressPage(PageDataV1, header, body, cw.opts.Codec, cw.opts.CompressionLevel)
	if err != nil {
		return err
	}
	return cw.WritePage(cp)
}

// WritePage writes one already-compressed page verbatim: header, then
// payload. It is the primitive the higher-level WriteChunk encoding paths
// build on, and is exported so a caller that already holds pre-encoded
// CompressedPages (built independently, e.g. copied from another file
// during a page-level rewrite) can append them directly without the
// value-encoding machinery above running at all.
func (cw *ColumnChunkWriter) WritePage(cp *CompressedPage) error {
	if cp.Kind == PageDictionary {
		cw.dictionaryPageOffset = cw.w.n
		cw.haveDictionaryOffset = true
	} else if !cw.haveDataPageOffset {
		cw.dataPageOffset = cw.w.n
		cw.haveDataPageOffset = true
	}
	if err := writePageHeader(cw.ctx, &cw.w, cp.Header, cp.Data); err != nil {
		return err
	}
	cw.totalCompressedSize += int64(len(cp.Data))
	cw.totalUncompressedSize += int64(cp.Header.UncompressedPageSize)
	if cp.Kind != PageDictionary {
		var encoding parquet.Encoding
		switch {
		case cp.Header.DataPageHeader != nil:
			encoding = cp.Header.DataPageHeader.Encoding
		case cp.Header.DataPageHeaderV2 != nil:
			encoding = cp.Header.DataPageHeaderV2.Encoding
		}
		cw.recordEncoding(encoding)
	}
	return nil
}

func (cw *ColumnChunkWriter) recordEncoding(e parquet.Encoding) {
	if pes, ok := cw.encodingsSeen[e]; ok {
		pes.Count++
		return
	}
	pes := &parquet.PageEncodingStats{PageType: parquet.PageType_DATA_PAGE, Encoding: e, Count: 1}
	cw.encodingsSeen[e] = pes
	cw.pageEncodingStats = append(cw.pageEncodingStats, pes)
}

func (cw *ColumnChunkWriter) sortedEncodings() []parquet.Encoding {
	out := make([]parquet.Encoding, 0, len(cw.encodingsSeen)+1)
	if cw.col.MaxRepetitionLevel > 0 || cw.col.MaxDefinitionLevel > 0 {
		out = append(out, parquet.Encoding_RLE)
	}
	for e := range cw.encodingsSeen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// encodePlainValues writes values in PLAIN encoding. For every physical
// type but BOOLEAN the raw per-value shape already is PLAIN's byte layout
// (see raw_values.go), so this only needs to handle BOOLEAN's bit packing.
func encodePlainValues(w io.Writer, col *ColumnDescriptor, values [][]byte) error {
	if col.PhysicalType == parquet.Type_BOOLEAN {
		bools := make([]bool, len(values))
		for i, v := range values {
			bools[i] = len(v) > 0 && v[0] != 0
		}
		return plainEncodeBoolean(w, bools)
	}
	for _, v := range values {
		if err := writeFull(w, v); err != nil {
			return err
		}
	}
	return nil
}
