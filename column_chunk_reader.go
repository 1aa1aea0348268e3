package goparquet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"

	"github.com/pqcore/parquet-core/parquet"
)

// maxPageCompressedSize bounds any single page's compressed size to guard
// against a corrupt header forcing an unbounded allocation (§4.5).
const maxPageCompressedSize int64 = 2 << 30 // 2 GiB

// PageFilter decides whether a data page's values are worth decoding, given
// its column and header. It must be side-effect-free (§6).
type PageFilter func(col *ColumnDescriptor, header *parquet.DataPageHeader) bool

// ColumnChunkReader runs the read-side page pipeline of §4.5: it turns a
// column chunk's byte range into the sequence [DictionaryPage?] DataPage*,
// stopping once the chunk's declared value count has been produced.
type ColumnChunkReader struct {
	ctx    context.Context
	r      io.Reader
	col    *ColumnDescriptor
	meta   *parquet.ColumnMetaData
	filter PageFilter

	dictionary   [][]byte
	dictConsumed bool
	valuesEmitted int64
	done          bool
}

// NewColumnChunkReader wraps r, which must be positioned at the start of
// the column chunk (its dictionary page if any, otherwise its first data
// page), per meta.
func NewColumnChunkReader(ctx context.Context, r io.Reader, col *ColumnDescriptor, meta *parquet.ColumnMetaData) *ColumnChunkReader {
	return &ColumnChunkReader{ctx: ctx, r: r, col: col, meta: meta}
}

// SetPageFilter installs a predicate consulted before a data page's values
// are decoded; when it returns false, ReadPage still returns the page (with
// its Kind, NumValues and Statistics) but Values will be nil, letting the
// caller skip decode work.
func (cr *ColumnChunkReader) SetPageFilter(f PageFilter) {
	cr.filter = f
}

// Page is one decoded page handed to the consumer: level buffers plus raw
// value bytes in the physical type's own encoding (typed deserialization is
// the caller's job, per §1 Non-goals).
type Page struct {
	Kind        PageKind
	NumValues   int32
	RepLevels   []uint16
	DefLevels   []uint16
	Values      []byte // value bytes in the raw shape of raw_values.go (dictionary already resolved)
	Statistics  *parquet.Statistics
}

// ReadPage decodes and returns the next page, or io.EOF once the chunk's
// value count has been exhausted.
func (cr *ColumnChunkReader) ReadPage() (*Page, error) {
	if cr.done {
		return nil, io.EOF
	}
	header, payload, err := readPageHeader(cr.ctx, cr.r)
	if err != nil {
		return nil, err
	}
	if int64(header.CompressedPageSize) > maxPageCompressedSize {
		return nil, newError(OutOfSpec, "page compressed size %d exceeds limit", header.CompressedPageSize)
	}

	switch header.Type {
	case parquet.PageType_DICTIONARY_PAGE:
		if cr.dictConsumed {
			return nil, newError(OutOfSpec, "column chunk: unexpected second dictionary page")
		}
		dp := header.DictionaryPageHeader
		if dp == nil {
			return nil, newError(MalformedMetadata, "dictionary page: missing type-specific header")
		}
		dec, err := decompressPage(&CompressedPage{Kind: PageDictionary, Header: header, Data: payload}, cr.meta.Codec)
		if err != nil {
			return nil, err
		}
		values, err := decodeDictionaryPageValues(bytes.NewReader(dec.ValueBytes()), cr.col, int(dp.NumValues))
		if err != nil {
			return nil, err
		}
		cr.dictionary = values
		cr.dictConsumed = true
		return cr.ReadPage()

	case parquet.PageType_DATA_PAGE:
		return cr.readDataPageV1(header, payload)

	case parquet.PageType_DATA_PAGE_V2:
		return cr.readDataPageV2(header, payload)

	default:
		return nil, newError(OutOfSpec, "column chunk: unsupported page type %s", header.Type)
	}
}

func (cr *ColumnChunkReader) readDataPageV1(header *parquet.PageHeader, payload []byte) (*Page, error) {
	dph := header.DataPageHeader
	if dph == nil {
		return nil, newError(MalformedMetadata, "data page v1: missing type-specific header")
	}
	if cr.filter != nil && !cr.filter(cr.col, dph) {
		cr.advance(int64(dph.NumValues))
		return &Page{Kind: PageDataV1, NumValues: dph.NumValues, Statistics: dph.Statistics}, nil
	}
	dec, err := decompressPage(&CompressedPage{Kind: PageDataV1, Header: header, Data: payload}, cr.meta.Codec)
	if err != nil {
		return nil, err
	}
	body := bytes.NewReader(dec.ValueBytes())

	repLevels, err := cr.decodeV1Levels(body, cr.col.MaxRepetitionLevel, int(dph.NumValues))
	if err != nil {
		return nil, wrapError(MalformedMetadata, err, "data page v1: repetition levels")
	}
	defLevels, err := cr.decodeV1Levels(body, cr.col.MaxDefinitionLevel, int(dph.NumValues))
	if err != nil {
		return nil, wrapError(MalformedMetadata, err, "data page v1: definition levels")
	}

	numDefined := countDefined(defLevels, cr.col.MaxDefinitionLevel)
	if numDefined < 0 {
		numDefined = int(dph.NumValues)
	}
	values, err := cr.decodeValues(body, dph.Encoding, numDefined)
	if err != nil {
		return nil, err
	}
	cr.advance(int64(dph.NumValues))
	return &Page{
		Kind:       PageDataV1,
		NumValues:  dph.NumValues,
		RepLevels:  repLevels,
		DefLevels:  defLevels,
		Values:     values,
		Statistics: dph.Statistics,
	}, nil
}

// decodeV1Levels reads a maxLevel==0 (always-required, no buffer present)
// or a self-delimiting hybrid-RLE level stream, per the V1 envelope layout.
func (cr *ColumnChunkReader) decodeV1Levels(r *bytes.Reader, maxLevel int32, count int) ([]uint16, error) {
	if maxLevel == 0 {
		return nil, nil
	}
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := int(uint32(lenBuf[0]) | uint32(lenBuf[1])<<8 | uint32(lenBuf[2])<<16 | uint32(lenBuf[3])<<24)
	levelBytes := make([]byte, length)
	if _, err := io.ReadFull(r, levelBytes); err != nil {
		return nil, err
	}
	bitWidth := bitWidthForMax(uint64(maxLevel))
	dec := newHybridRLEDecoder(bytes.NewReader(levelBytes), bitWidth)
	raw := make([]uint64, count)
	if err := dec.decodeValues(raw); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i, v := range raw {
		out[i] = uint16(v)
	}
	return out, nil
}

func (cr *ColumnChunkReader) readDataPageV2(header *parquet.PageHeader, payload []byte) (*Page, error) {
	v2 := header.DataPageHeaderV2
	if v2 == nil {
		return nil, newError(MalformedMetadata, "data page v2: missing type-specific header")
	}
	if cr.filter != nil {
		v1shim := &parquet.DataPageHeader{NumValues: v2.NumValues, Encoding: v2.Encoding, Statistics: v2.Statistics}
		if !cr.filter(cr.col, v1shim) {
			cr.advance(int64(v2.NumValues))
			return &Page{Kind: PageDataV2, NumValues: v2.NumValues, Statistics: v2.Statistics}, nil
		}
	}
	dec, err := decompressPage(&CompressedPage{Kind: PageDataV2, Header: header, Data: payload}, cr.meta.Codec)
	if err != nil {
		return nil, err
	}

	repLevels, err := decodeRawLevels(dec.RepLevelBytes(), cr.col.MaxRepetitionLevel, int(v2.NumValues))
	if err != nil {
		return nil, wrapError(MalformedMetadata, err, "data page v2: repetition levels")
	}
	defLevels, err := decodeRawLevels(dec.DefLevelBytes(), cr.col.MaxDefinitionLevel, int(v2.NumValues))
	if err != nil {
		return nil, wrapError(MalformedMetadata, err, "data page v2: definition levels")
	}

	numDefined := int(v2.NumValues) - int(v2.NumNulls)
	values, err := cr.decodeValues(bytes.NewReader(dec.ValueBytes()), v2.Encoding, numDefined)
	if err != nil {
		return nil, err
	}
	cr.advance(int64(v2.NumValues))
	return &Page{
		Kind:       PageDataV2,
		NumValues:  v2.NumValues,
		RepLevels:  repLevels,
		DefLevels:  defLevels,
		Values:     values,
		Statistics: v2.Statistics,
	}, nil
}

// decodeRawLevels decodes a V2 level buffer, which is a bare hybrid-RLE
// stream with no length prefix (the header already gives its byte length).
func decodeRawLevels(buf []byte, maxLevel int32, count int) ([]uint16, error) {
	if maxLevel == 0 {
		return nil, nil
	}
	bitWidth := bitWidthForMax(uint64(maxLevel))
	dec := newHybridRLEDecoder(bytes.NewReader(buf), bitWidth)
	raw := make([]uint64, count)
	if err := dec.decodeValues(raw); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	for i, v := range raw {
		out[i] = uint16(v)
	}
	return out, nil
}

func countDefined(defLevels []uint16, maxDefLevel int32) int {
	if defLevels == nil {
		return -1 // caller should use NumValues directly: no optional/repeated ancestor
	}
	n := 0
	for _, d := range defLevels {
		if int32(d) == maxDefLevel {
			n++
		}
	}
	return n
}

// decodeValues resolves an encoded value stream, applying dictionary
// indirection when the encoding calls for it.
func (cr *ColumnChunkReader) decodeValues(r io.Reader, encoding parquet.Encoding, numDefined int) ([]byte, error) {
	if numDefined < 0 {
		numDefined = 0
	}
	switch encoding {
	case parquet.Encoding_PLAIN_DICTIONARY, parquet.Encoding_RLE_DICTIONARY:
		indices, err := decodeDictionaryIndices(r, numDefined)
		if err != nil {
			return nil, err
		}
		variableWidth := rawWidth(cr.col) < 0
		var out bytes.Buffer
		var lenBuf [4]byte
		for _, idx := range indices {
			if int(idx) < 0 || int(idx) >= len(cr.dictionary) {
				return nil, newError(OutOfSpec, "dictionary index %d out of range [0,%d)", idx, len(cr.dictionary))
			}
			v := cr.dictionary[idx]
			if variableWidth {
				binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
				out.Write(lenBuf[:])
			}
			out.Write(v)
		}
		return out.Bytes(), nil
	case parquet.Encoding_PLAIN:
		return decodePlainRaw(r, cr.col, numDefined)
	case parquet.Encoding_DELTA_BINARY_PACKED:
		return decodeDeltaBinaryPackedRaw(r, cr.col, numDefined)
	case parquet.Encoding_DELTA_LENGTH_BYTE_ARRAY:
		vals, err := deltaLengthByteArrayDecode(r, numDefined)
		if err != nil {
			return nil, err
		}
		return joinByteArrays(vals), nil
	case parquet.Encoding_DELTA_BYTE_ARRAY:
		vals, err := deltaByteArrayDecode(r, numDefined)
		if err != nil {
			return nil, err
		}
		return joinByteArrays(vals), nil
	default:
		return nil, errUnsupportedEncoding(encoding)
	}
}

func (cr *ColumnChunkReader) advance(n int64) {
	cr.valuesEmitted += n
	if cr.valuesEmitted >= cr.meta.NumValues {
		cr.done = true
	}
}
