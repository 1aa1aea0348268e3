package parquet

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// DataPageHeader is the type-specific sub-header for a v1 data page.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

func (h *DataPageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "DataPageHeader", []field{
		{id: 1, name: "num_values", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumValues) }},
		{id: 2, name: "encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.Encoding)) }},
		{id: 3, name: "definition_level_encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.DefinitionLevelEncoding)) }},
		{id: 4, name: "repetition_level_encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.RepetitionLevelEncoding)) }},
		{id: 5, name: "statistics", typeID: thrift.STRUCT, present: func() bool { return h.Statistics != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.Statistics.Write(ctx, p) }},
	})
}

func (h *DataPageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "DataPageHeader", fieldsByID([]field{
		{id: 1, name: "num_values", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumValues, err = p.ReadI32(ctx); return }},
		{id: 2, name: "encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.Encoding = Encoding(v); return err }},
		{id: 3, name: "definition_level_encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.DefinitionLevelEncoding = Encoding(v); return err }},
		{id: 4, name: "repetition_level_encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.RepetitionLevelEncoding = Encoding(v); return err }},
		{id: 5, name: "statistics", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.Statistics = &Statistics{}
			return h.Statistics.Read(ctx, p)
		}},
	}))
}

// DataPageHeaderV2 is the type-specific sub-header for a v2 data page,
// which separates the repetition/definition level streams from the
// (possibly still compressed) values and never bit-packs the levels.
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               *bool
	Statistics                 *Statistics
}

func (h *DataPageHeaderV2) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "DataPageHeaderV2", []field{
		{id: 1, name: "num_values", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumValues) }},
		{id: 2, name: "num_nulls", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumNulls) }},
		{id: 3, name: "num_rows", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumRows) }},
		{id: 4, name: "encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.Encoding)) }},
		{id: 5, name: "definition_levels_byte_length", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.DefinitionLevelsByteLength) }},
		{id: 6, name: "repetition_levels_byte_length", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.RepetitionLevelsByteLength) }},
		{id: 7, name: "is_compressed", typeID: thrift.BOOL, present: func() bool { return h.IsCompressed != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, *h.IsCompressed) }},
		{id: 8, name: "statistics", typeID: thrift.STRUCT, present: func() bool { return h.Statistics != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.Statistics.Write(ctx, p) }},
	})
}

func (h *DataPageHeaderV2) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "DataPageHeaderV2", fieldsByID([]field{
		{id: 1, name: "num_values", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumValues, err = p.ReadI32(ctx); return }},
		{id: 2, name: "num_nulls", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumNulls, err = p.ReadI32(ctx); return }},
		{id: 3, name: "num_rows", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumRows, err = p.ReadI32(ctx); return }},
		{id: 4, name: "encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.Encoding = Encoding(v); return err }},
		{id: 5, name: "definition_levels_byte_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.DefinitionLevelsByteLength, err = p.ReadI32(ctx); return }},
		{id: 6, name: "repetition_levels_byte_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.RepetitionLevelsByteLength, err = p.ReadI32(ctx); return }},
		{id: 7, name: "is_compressed", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadBool(ctx)
			if err != nil {
				return err
			}
			h.IsCompressed = &v
			return nil
		}},
		{id: 8, name: "statistics", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.Statistics = &Statistics{}
			return h.Statistics.Read(ctx, p)
		}},
	}))
}

// DictionaryPageHeader is the type-specific sub-header for a dictionary page.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  *bool
}

func (h *DictionaryPageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "DictionaryPageHeader", []field{
		{id: 1, name: "num_values", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumValues) }},
		{id: 2, name: "encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.Encoding)) }},
		{id: 3, name: "is_sorted", typeID: thrift.BOOL, present: func() bool { return h.IsSorted != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, *h.IsSorted) }},
	})
}

func (h *DictionaryPageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "DictionaryPageHeader", fieldsByID([]field{
		{id: 1, name: "num_values", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumValues, err = p.ReadI32(ctx); return }},
		{id: 2, name: "encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.Encoding = Encoding(v); return err }},
		{id: 3, name: "is_sorted", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadBool(ctx)
			if err != nil {
				return err
			}
			h.IsSorted = &v
			return nil
		}},
	}))
}

// PageHeader precedes every page's bytes on disk. Exactly one of the
// type-specific sub-headers is set, chosen by Type.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	CRC                  *int32
	DataPageHeader       *DataPageHeader
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}

func (h *PageHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "PageHeader", []field{
		{id: 1, name: "type", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(h.Type)) }},
		{id: 2, name: "uncompressed_page_size", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.UncompressedPageSize) }},
		{id: 3, name: "compressed_page_size", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.CompressedPageSize) }},
		{id: 4, name: "crc", typeID: thrift.I32, present: func() bool { return h.CRC != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *h.CRC) }},
		{id: 5, name: "data_page_header", typeID: thrift.STRUCT, present: func() bool { return h.DataPageHeader != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.DataPageHeader.Write(ctx, p) }},
		{id: 7, name: "dictionary_page_header", typeID: thrift.STRUCT, present: func() bool { return h.DictionaryPageHeader != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.DictionaryPageHeader.Write(ctx, p) }},
		{id: 8, name: "data_page_header_v2", typeID: thrift.STRUCT, present: func() bool { return h.DataPageHeaderV2 != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.DataPageHeaderV2.Write(ctx, p) }},
	})
}

func (h *PageHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "PageHeader", fieldsByID([]field{
		{id: 1, name: "type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); h.Type = PageType(v); return err }},
		{id: 2, name: "uncompressed_page_size", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.UncompressedPageSize, err = p.ReadI32(ctx); return }},
		{id: 3, name: "compressed_page_size", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.CompressedPageSize, err = p.ReadI32(ctx); return }},
		{id: 4, name: "crc", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			h.CRC = &v
			return nil
		}},
		{id: 5, name: "data_page_header", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.DataPageHeader = &DataPageHeader{}
			return h.DataPageHeader.Read(ctx, p)
		}},
		{id: 7, name: "dictionary_page_header", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.DictionaryPageHeader = &DictionaryPageHeader{}
			return h.DictionaryPageHeader.Read(ctx, p)
		}},
		{id: 8, name: "data_page_header_v2", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.DataPageHeaderV2 = &DataPageHeaderV2{}
			return h.DataPageHeaderV2.Read(ctx, p)
		}},
	}))
}
