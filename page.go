package goparquet

import (
	"bytes"
	"hash/crc32"

	"github.com/pqcore/parquet-core/parquet"
)

// PageKind tags which of the three page shapes a Page value holds. Kept as
// a plain data tag rather than a class hierarchy per §9's design note, so
// the read and write pipelines can switch on it directly.
type PageKind int

const (
	PageDataV1 PageKind = iota
	PageDataV2
	PageDictionary
)

func (k PageKind) String() string {
	switch k {
	case PageDataV1:
		return "DATA_PAGE"
	case PageDataV2:
		return "DATA_PAGE_V2"
	case PageDictionary:
		return "DICTIONARY_PAGE"
	default:
		return "UNKNOWN"
	}
}

// byteRange is an (offset, length) view into a shared buffer.
type byteRange struct {
	Offset, Length int
}

func (r byteRange) slice(buf []byte) []byte {
	return buf[r.Offset : r.Offset+r.Length]
}

// CompressedPage is a page as it sits on disk: a header plus the still
// (possibly) compressed payload bytes, exactly compressed_page_size long.
type CompressedPage struct {
	Kind   PageKind
	Header *parquet.PageHeader
	Data   []byte
}

// DecompressedPage is a page with its payload fully decompressed and its
// repetition-level / definition-level / value byte ranges pre-extracted
// from one owned buffer, avoiding a copy per segment (§9's "levels vs
// values sharing a buffer" design note). For DataPageV2, RepLevels and
// DefLevels always come from the header's uncompressed level byte lengths
// even when Values was compressed; for DataPageV1 and DictionaryPage the
// whole buffer was one compressed envelope.
type DecompressedPage struct {
	Kind      PageKind
	Header    *parquet.PageHeader
	Buf       []byte
	RepLevels byteRange
	DefLevels byteRange
	Values    byteRange
}

func (p *DecompressedPage) RepLevelBytes() []byte { return p.RepLevels.slice(p.Buf) }
func (p *DecompressedPage) DefLevelBytes() []byte { return p.DefLevels.slice(p.Buf) }
func (p *DecompressedPage) ValueBytes() []byte    { return p.Values.slice(p.Buf) }

// decompressPage turns a CompressedPage into a DecompressedPage. codec is the
// column chunk's compression codec; V2 pages that set is_compressed=false
// skip decompression of the values segment (still uncompressed on disk).
func decompressPage(cp *CompressedPage, codec parquet.CompressionCodec) (*DecompressedPage, error) {
	h := cp.Header
	switch cp.Kind {
	case PageDataV2:
		v2 := h.DataPageHeaderV2
		if v2 == nil {
			return nil, newError(MalformedMetadata, "data page v2: missing type-specific header")
		}
		repLen := int(v2.RepetitionLevelsByteLength)
		defLen := int(v2.DefinitionLevelsByteLength)
		if repLen+defLen > len(cp.Data) {
			return nil, newError(OutOfSpec, "data page v2: level lengths %d+%d exceed payload %d", repLen, defLen, len(cp.Data))
		}
		levels := cp.Data[:repLen+defLen]
		valuesCompressed := cp.Data[repLen+defLen:]

		isCompressed := true
		if v2.IsCompressed != nil {
			isCompressed = *v2.IsCompressed
		}
		var values []byte
		if isCompressed {
			uncompressedValuesSize := int(h.UncompressedPageSize) - repLen - defLen
			var err error
			values, err = decompressBlock(codec, valuesCompressed, int32(uncompressedValuesSize))
			if err != nil {
				return nil, err
			}
		} else {
			values = valuesCompressed
		}

		buf := make([]byte, 0, len(levels)+len(values))
		buf = append(buf, levels...)
		buf = append(buf, values...)
		return &DecompressedPage{
			Kind:      cp.Kind,
			Header:    h,
			Buf:       buf,
			RepLevels: byteRange{0, repLen},
			DefLevels: byteRange{repLen, defLen},
			Values:    byteRange{repLen + defLen, len(values)},
		}, nil

	default: // PageDataV1, PageDictionary: one shared compressed envelope
		buf, err := decompressBlock(codec, cp.Data, h.UncompressedPageSize)
		if err != nil {
			return nil, err
		}
		// For V1 the envelope itself is [rep-levels][def-levels][values],
		// but the level byte lengths aren't in the header; the hybrid-RLE
		// decoders for rep/def levels are self-delimiting (they carry
		// their own length prefix, see column_chunk_reader.go), so the
		// whole buffer is exposed as one Values range and the chunk
		// reader peels rep/def off the front as it decodes them.
		return &DecompressedPage{
			Kind:   cp.Kind,
			Header: h,
			Buf:    buf,
			Values: byteRange{0, len(buf)},
		}, nil
	}
}

// compressPage turns a fully-assembled page payload into its compressed,
// on-disk form, filling in the header's size fields.
func compressPage(kind PageKind, header *parquet.PageHeader, uncompressed []byte, codec parquet.CompressionCodec, level int) (*CompressedPage, error) {
	header.UncompressedPageSize = int32(len(uncompressed))
	var out bytes.Buffer
	if err := compressBlock(&out, codec, uncompressed, level); err != nil {
		return nil, err
	}
	header.CompressedPageSize = int32(out.Len())
	crc := int32(crc32.ChecksumIEEE(out.Bytes()))
	header.CRC = &crc
	return &CompressedPage{Kind: kind, Header: header, Data: out.Bytes()}, nil
}

// compressPageV2 is like compressPage but only compresses the values
// segment, leaving the level segments verbatim ahead of it, per §3's V2
// invariant that levels are never compressed.
func compressPageV2(header *parquet.PageHeader, repLevels, defLevels, values []byte, codec parquet.CompressionCodec, level int, isCompressed bool) (*CompressedPage, error) {
	v2 := header.DataPageHeaderV2
	v2.RepetitionLevelsByteLength = int32(len(repLevels))
	v2.DefinitionLevelsByteLength = int32(len(defLevels))
	v2.IsCompressed = &isCompressed
	header.UncompressedPageSize = int32(len(repLevels) + len(defLevels) + len(values))

	var out bytes.Buffer
	out.Write(repLevels)
	out.Write(defLevels)
	if isCompressed {
		if err := compressBlock(&out, codec, values, level); err != nil {
			return nil, err
		}
	} else {
		out.Write(values)
	}
	header.CompressedPageSize = int32(out.Len())
	crc := int32(crc32.ChecksumIEEE(out.Bytes()))
	header.CRC = &crc
	return &CompressedPage{Kind: PageDataV2, Header: header, Data: out.Bytes()}, nil
}
