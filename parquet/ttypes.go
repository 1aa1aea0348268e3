package parquet

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// KeyValue is one entry of FileMetaData's free-form key/value metadata.
type KeyValue struct {
	Key   string
	Value *string
}

func (kv *KeyValue) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "KeyValue", []field{
		{id: 1, name: "key", typeID: thrift.STRING, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, kv.Key) }},
		{id: 2, name: "value", typeID: thrift.STRING, present: func() bool { return kv.Value != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, *kv.Value) }},
	})
}

func (kv *KeyValue) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "KeyValue", fieldsByID([]field{
		{id: 1, name: "key", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { kv.Key, err = p.ReadString(ctx); return }},
		{id: 2, name: "value", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) error {
			s, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			kv.Value = &s
			return nil
		}},
	}))
}

// SortingColumn describes one column of a row group's declared sort order.
type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

func (s *SortingColumn) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "SortingColumn", []field{
		{id: 1, name: "column_idx", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, s.ColumnIdx) }},
		{id: 2, name: "descending", typeID: thrift.BOOL, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, s.Descending) }},
		{id: 3, name: "nulls_first", typeID: thrift.BOOL, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, s.NullsFirst) }},
	})
}

func (s *SortingColumn) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "SortingColumn", fieldsByID([]field{
		{id: 1, name: "column_idx", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.ColumnIdx, err = p.ReadI32(ctx); return }},
		{id: 2, name: "descending", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.Descending, err = p.ReadBool(ctx); return }},
		{id: 3, name: "nulls_first", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.NullsFirst, err = p.ReadBool(ctx); return }},
	}))
}

// Statistics is the thrift wire shape of per-leaf min/max/null/distinct
// stats, carried at both the page and column-chunk level (spec.md §3).
type Statistics struct {
	Max          []byte
	Min          []byte
	NullCount    *int64
	DistinctCount *int64
	MaxValue     []byte
	MinValue     []byte
}

func (s *Statistics) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "Statistics", []field{
		{id: 1, name: "max", typeID: thrift.STRING, present: func() bool { return s.Max != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBinary(ctx, s.Max) }},
		{id: 2, name: "min", typeID: thrift.STRING, present: func() bool { return s.Min != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBinary(ctx, s.Min) }},
		{id: 3, name: "null_count", typeID: thrift.I64, present: func() bool { return s.NullCount != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *s.NullCount) }},
		{id: 4, name: "distinct_count", typeID: thrift.I64, present: func() bool { return s.DistinctCount != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *s.DistinctCount) }},
		{id: 5, name: "max_value", typeID: thrift.STRING, present: func() bool { return s.MaxValue != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBinary(ctx, s.MaxValue) }},
		{id: 6, name: "min_value", typeID: thrift.STRING, present: func() bool { return s.MinValue != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBinary(ctx, s.MinValue) }},
	})
}

func (s *Statistics) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "Statistics", fieldsByID([]field{
		{id: 1, name: "max", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.Max, err = p.ReadBinary(ctx); return }},
		{id: 2, name: "min", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.Min, err = p.ReadBinary(ctx); return }},
		{id: 3, name: "null_count", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			s.NullCount = &v
			return nil
		}},
		{id: 4, name: "distinct_count", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			s.DistinctCount = &v
			return nil
		}},
		{id: 5, name: "max_value", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.MaxValue, err = p.ReadBinary(ctx); return }},
		{id: 6, name: "min_value", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.MinValue, err = p.ReadBinary(ctx); return }},
	}))
}

// SchemaElement is one node (leaf or group) of the flattened preorder
// schema tree stored in FileMetaData.Schema.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

func (s *SchemaElement) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "SchemaElement", []field{
		{id: 1, name: "type", typeID: thrift.I32, present: func() bool { return s.Type != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(*s.Type)) }},
		{id: 2, name: "type_length", typeID: thrift.I32, present: func() bool { return s.TypeLength != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *s.TypeLength) }},
		{id: 3, name: "repetition_type", typeID: thrift.I32, present: func() bool { return s.RepetitionType != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(*s.RepetitionType)) }},
		{id: 4, name: "name", typeID: thrift.STRING, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, s.Name) }},
		{id: 5, name: "num_children", typeID: thrift.I32, present: func() bool { return s.NumChildren != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *s.NumChildren) }},
		{id: 6, name: "converted_type", typeID: thrift.I32, present: func() bool { return s.ConvertedType != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(*s.ConvertedType)) }},
		{id: 7, name: "scale", typeID: thrift.I32, present: func() bool { return s.Scale != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *s.Scale) }},
		{id: 8, name: "precision", typeID: thrift.I32, present: func() bool { return s.Precision != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *s.Precision) }},
		{id: 9, name: "field_id", typeID: thrift.I32, present: func() bool { return s.FieldID != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *s.FieldID) }},
		{id: 10, name: "logicalType", typeID: thrift.STRUCT, present: func() bool { return s.LogicalType != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return s.LogicalType.Write(ctx, p) }},
	})
}

func (s *SchemaElement) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "SchemaElement", fieldsByID([]field{
		{id: 1, name: "type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			t := Type(v)
			s.Type = &t
			return nil
		}},
		{id: 2, name: "type_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.TypeLength = &v
			return nil
		}},
		{id: 3, name: "repetition_type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			r := FieldRepetitionType(v)
			s.RepetitionType = &r
			return nil
		}},
		{id: 4, name: "name", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.Name, err = p.ReadString(ctx); return }},
		{id: 5, name: "num_children", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.NumChildren = &v
			return nil
		}},
		{id: 6, name: "converted_type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c := ConvertedType(v)
			s.ConvertedType = &c
			return nil
		}},
		{id: 7, name: "scale", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.Scale = &v
			return nil
		}},
		{id: 8, name: "precision", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.Precision = &v
			return nil
		}},
		{id: 9, name: "field_id", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.FieldID = &v
			return nil
		}},
		{id: 10, name: "logicalType", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			s.LogicalType = &LogicalType{}
			return s.LogicalType.Read(ctx, p)
		}},
	}))
}

// ColumnMetaData is the descriptive header embedded in each ColumnChunk.
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []*KeyValue
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
	EncodingStats         []*PageEncodingStats
	BloomFilterOffset     *int64
	BloomFilterLength     *int32
}

// PageEncodingStats records how many pages of each (page type, encoding)
// pair a column chunk contains; informational only.
type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

func (s *PageEncodingStats) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "PageEncodingStats", []field{
		{id: 1, name: "page_type", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(s.PageType)) }},
		{id: 2, name: "encoding", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(s.Encoding)) }},
		{id: 3, name: "count", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, s.Count) }},
	})
}

func (s *PageEncodingStats) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "PageEncodingStats", fieldsByID([]field{
		{id: 1, name: "page_type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); s.PageType = PageType(v); return err }},
		{id: 2, name: "encoding", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); s.Encoding = Encoding(v); return err }},
		{id: 3, name: "count", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { s.Count, err = p.ReadI32(ctx); return }},
	}))
}

func writeI32List[T ~int32](ctx context.Context, oprot thrift.TProtocol, vs []T) error {
	if err := oprot.WriteListBegin(ctx, thrift.I32, len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := oprot.WriteI32(ctx, int32(v)); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readI32List[T ~int32](ctx context.Context, iprot thrift.TProtocol) ([]T, error) {
	elemType, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	_ = elemType
	out := make([]T, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadI32(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, T(v))
	}
	return out, iprot.ReadListEnd(ctx)
}

func writeStringList(ctx context.Context, oprot thrift.TProtocol, vs []string) error {
	if err := oprot.WriteListBegin(ctx, thrift.STRING, len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := oprot.WriteString(ctx, v); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readStringList(ctx context.Context, iprot thrift.TProtocol) ([]string, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadString(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, iprot.ReadListEnd(ctx)
}

func (c *ColumnMetaData) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "ColumnMetaData", []field{
		{id: 1, name: "type", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(c.Type)) }},
		{id: 2, name: "encodings", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error { return writeI32List(ctx, p, c.Encodings) }},
		{id: 3, name: "path_in_schema", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error { return writeStringList(ctx, p, c.PathInSchema) }},
		{id: 4, name: "codec", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(c.Codec)) }},
		{id: 5, name: "num_values", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, c.NumValues) }},
		{id: 6, name: "total_uncompressed_size", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, c.TotalUncompressedSize) }},
		{id: 7, name: "total_compressed_size", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, c.TotalCompressedSize) }},
		{id: 8, name: "key_value_metadata", typeID: thrift.LIST, present: func() bool { return c.KeyValueMetadata != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return writeKeyValueList(ctx, p, c.KeyValueMetadata) }},
		{id: 9, name: "data_page_offset", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, c.DataPageOffset) }},
		{id: 10, name: "index_page_offset", typeID: thrift.I64, present: func() bool { return c.IndexPageOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *c.IndexPageOffset) }},
		{id: 11, name: "dictionary_page_offset", typeID: thrift.I64, present: func() bool { return c.DictionaryPageOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *c.DictionaryPageOffset) }},
		{id: 12, name: "statistics", typeID: thrift.STRUCT, present: func() bool { return c.Statistics != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return c.Statistics.Write(ctx, p) }},
		{id: 13, name: "encoding_stats", typeID: thrift.LIST, present: func() bool { return c.EncodingStats != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return writeEncodingStatsList(ctx, p, c.EncodingStats) }},
		{id: 14, name: "bloom_filter_offset", typeID: thrift.I64, present: func() bool { return c.BloomFilterOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *c.BloomFilterOffset) }},
		{id: 15, name: "bloom_filter_length", typeID: thrift.I32, present: func() bool { return c.BloomFilterLength != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *c.BloomFilterLength) }},
	})
}

func writeKeyValueList(ctx context.Context, oprot thrift.TProtocol, kvs []*KeyValue) error {
	if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(kvs)); err != nil {
		return err
	}
	for _, kv := range kvs {
		if err := kv.Write(ctx, oprot); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readKeyValueList(ctx context.Context, iprot thrift.TProtocol) ([]*KeyValue, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*KeyValue, 0, size)
	for i := 0; i < size; i++ {
		kv := &KeyValue{}
		if err := kv.Read(ctx, iprot); err != nil {
			return nil, err
		}
		out = append(out, kv)
	}
	return out, iprot.ReadListEnd(ctx)
}

func writeEncodingStatsList(ctx context.Context, oprot thrift.TProtocol, es []*PageEncodingStats) error {
	if err := oprot.WriteListBegin(ctx, thrift.STRUCT, len(es)); err != nil {
		return err
	}
	for _, e := range es {
		if err := e.Write(ctx, oprot); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readEncodingStatsList(ctx context.Context, iprot thrift.TProtocol) ([]*PageEncodingStats, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*PageEncodingStats, 0, size)
	for i := 0; i < size; i++ {
		e := &PageEncodingStats{}
		if err := e.Read(ctx, iprot); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, iprot.ReadListEnd(ctx)
}

func (c *ColumnMetaData) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "ColumnMetaData", fieldsByID([]field{
		{id: 1, name: "type", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); c.Type = Type(v); return err }},
		{id: 2, name: "encodings", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.Encodings, err = readI32List[Encoding](ctx, p); return }},
		{id: 3, name: "path_in_schema", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.PathInSchema, err = readStringList(ctx, p); return }},
		{id: 4, name: "codec", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); c.Codec = CompressionCodec(v); return err }},
		{id: 5, name: "num_values", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.NumValues, err = p.ReadI64(ctx); return }},
		{id: 6, name: "total_uncompressed_size", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.TotalUncompressedSize, err = p.ReadI64(ctx); return }},
		{id: 7, name: "total_compressed_size", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.TotalCompressedSize, err = p.ReadI64(ctx); return }},
		{id: 8, name: "key_value_metadata", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.KeyValueMetadata, err = readKeyValueList(ctx, p); return }},
		{id: 9, name: "data_page_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.DataPageOffset, err = p.ReadI64(ctx); return }},
		{id: 10, name: "index_page_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.IndexPageOffset = &v
			return nil
		}},
		{id: 11, name: "dictionary_page_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.DictionaryPageOffset = &v
			return nil
		}},
		{id: 12, name: "statistics", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			c.Statistics = &Statistics{}
			return c.Statistics.Read(ctx, p)
		}},
		{id: 13, name: "encoding_stats", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.EncodingStats, err = readEncodingStatsList(ctx, p); return }},
		{id: 14, name: "bloom_filter_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.BloomFilterOffset = &v
			return nil
		}},
		{id: 15, name: "bloom_filter_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.BloomFilterLength = &v
			return nil
		}},
	}))
}

// ColumnChunk locates one leaf column's data within a row group, either
// inline (MetaData set) or in a separate file (FilePath/FileOffset).
type ColumnChunk struct {
	FilePath            *string
	FileOffset          int64
	MetaData            *ColumnMetaData
	ColumnIndexOffset   *int64
	ColumnIndexLength   *int32
	OffsetIndexOffset   *int64
	OffsetIndexLength   *int32
}

func (c *ColumnChunk) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "ColumnChunk", []field{
		{id: 1, name: "file_path", typeID: thrift.STRING, present: func() bool { return c.FilePath != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, *c.FilePath) }},
		{id: 2, name: "file_offset", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, c.FileOffset) }},
		{id: 3, name: "meta_data", typeID: thrift.STRUCT, present: func() bool { return c.MetaData != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return c.MetaData.Write(ctx, p) }},
		{id: 7, name: "column_index_offset", typeID: thrift.I64, present: func() bool { return c.ColumnIndexOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *c.ColumnIndexOffset) }},
		{id: 8, name: "column_index_length", typeID: thrift.I32, present: func() bool { return c.ColumnIndexLength != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *c.ColumnIndexLength) }},
		{id: 9, name: "offset_index_offset", typeID: thrift.I64, present: func() bool { return c.OffsetIndexOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *c.OffsetIndexOffset) }},
		{id: 10, name: "offset_index_length", typeID: thrift.I32, present: func() bool { return c.OffsetIndexLength != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, *c.OffsetIndexLength) }},
	})
}

func (c *ColumnChunk) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "ColumnChunk", fieldsByID([]field{
		{id: 1, name: "file_path", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) error {
			s, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			c.FilePath = &s
			return nil
		}},
		{id: 2, name: "file_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.FileOffset, err = p.ReadI64(ctx); return }},
		{id: 3, name: "meta_data", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			c.MetaData = &ColumnMetaData{}
			return c.MetaData.Read(ctx, p)
		}},
		{id: 7, name: "column_index_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.ColumnIndexOffset = &v
			return nil
		}},
		{id: 8, name: "column_index_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.ColumnIndexLength = &v
			return nil
		}},
		{id: 9, name: "offset_index_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			c.OffsetIndexOffset = &v
			return nil
		}},
		{id: 10, name: "offset_index_length", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.OffsetIndexLength = &v
			return nil
		}},
	}))
}

// RowGroup is an ordered list of column chunks sharing the same row range.
type RowGroup struct {
	Columns        []*ColumnChunk
	TotalByteSize  int64
	NumRows        int64
	SortingColumns []*SortingColumn
	FileOffset     *int64
	Ordinal        *int16
}

func (r *RowGroup) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "RowGroup", []field{
		{id: 1, name: "columns", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(r.Columns)); err != nil {
				return err
			}
			for _, c := range r.Columns {
				if err := c.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
		{id: 2, name: "total_byte_size", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, r.TotalByteSize) }},
		{id: 3, name: "num_rows", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, r.NumRows) }},
		{id: 4, name: "sorting_columns", typeID: thrift.LIST, present: func() bool { return r.SortingColumns != nil }, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(r.SortingColumns)); err != nil {
				return err
			}
			for _, sc := range r.SortingColumns {
				if err := sc.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
		{id: 5, name: "file_offset", typeID: thrift.I64, present: func() bool { return r.FileOffset != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, *r.FileOffset) }},
		{id: 7, name: "ordinal", typeID: thrift.I16, present: func() bool { return r.Ordinal != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI16(ctx, *r.Ordinal) }},
	})
}

func (r *RowGroup) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "RowGroup", fieldsByID([]field{
		{id: 1, name: "columns", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			r.Columns = make([]*ColumnChunk, 0, size)
			for i := 0; i < size; i++ {
				c := &ColumnChunk{}
				if err := c.Read(ctx, p); err != nil {
					return err
				}
				r.Columns = append(r.Columns, c)
			}
			return p.ReadListEnd(ctx)
		}},
		{id: 2, name: "total_byte_size", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { r.TotalByteSize, err = p.ReadI64(ctx); return }},
		{id: 3, name: "num_rows", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { r.NumRows, err = p.ReadI64(ctx); return }},
		{id: 4, name: "sorting_columns", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			r.SortingColumns = make([]*SortingColumn, 0, size)
			for i := 0; i < size; i++ {
				sc := &SortingColumn{}
				if err := sc.Read(ctx, p); err != nil {
					return err
				}
				r.SortingColumns = append(r.SortingColumns, sc)
			}
			return p.ReadListEnd(ctx)
		}},
		{id: 5, name: "file_offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI64(ctx)
			if err != nil {
				return err
			}
			r.FileOffset = &v
			return nil
		}},
		{id: 7, name: "ordinal", typeID: thrift.I16, read: func(ctx context.Context, p thrift.TProtocol) error {
			v, err := p.ReadI16(ctx)
			if err != nil {
				return err
			}
			r.Ordinal = &v
			return nil
		}},
	}))
}

// FileMetaData is the root thrift struct stored in the footer.
type FileMetaData struct {
	Version          int32
	Schema           []*SchemaElement
	NumRows          int64
	RowGroups        []*RowGroup
	KeyValueMetadata []*KeyValue
	CreatedBy        *string
	SortingColumns   []*SortingColumn
}

func (m *FileMetaData) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "FileMetaData", []field{
		{id: 1, name: "version", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, m.Version) }},
		{id: 2, name: "schema", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(m.Schema)); err != nil {
				return err
			}
			for _, s := range m.Schema {
				if err := s.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
		{id: 3, name: "num_rows", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, m.NumRows) }},
		{id: 4, name: "row_groups", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(m.RowGroups)); err != nil {
				return err
			}
			for _, r := range m.RowGroups {
				if err := r.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
		{id: 5, name: "key_value_metadata", typeID: thrift.LIST, present: func() bool { return m.KeyValueMetadata != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return writeKeyValueList(ctx, p, m.KeyValueMetadata) }},
		{id: 6, name: "created_by", typeID: thrift.STRING, present: func() bool { return m.CreatedBy != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteString(ctx, *m.CreatedBy) }},
		{id: 8, name: "sorting_columns", typeID: thrift.LIST, present: func() bool { return m.SortingColumns != nil }, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(m.SortingColumns)); err != nil {
				return err
			}
			for _, sc := range m.SortingColumns {
				if err := sc.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
	})
}

func (m *FileMetaData) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "FileMetaData", fieldsByID([]field{
		{id: 1, name: "version", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { m.Version, err = p.ReadI32(ctx); return }},
		{id: 2, name: "schema", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			m.Schema = make([]*SchemaElement, 0, size)
			for i := 0; i < size; i++ {
				s := &SchemaElement{}
				if err := s.Read(ctx, p); err != nil {
					return err
				}
				m.Schema = append(m.Schema, s)
			}
			return p.ReadListEnd(ctx)
		}},
		{id: 3, name: "num_rows", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { m.NumRows, err = p.ReadI64(ctx); return }},
		{id: 4, name: "row_groups", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			m.RowGroups = make([]*RowGroup, 0, size)
			for i := 0; i < size; i++ {
				r := &RowGroup{}
				if err := r.Read(ctx, p); err != nil {
					return err
				}
				m.RowGroups = append(m.RowGroups, r)
			}
			return p.ReadListEnd(ctx)
		}},
		{id: 5, name: "key_value_metadata", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { m.KeyValueMetadata, err = readKeyValueList(ctx, p); return }},
		{id: 6, name: "created_by", typeID: thrift.STRING, read: func(ctx context.Context, p thrift.TProtocol) error {
			s, err := p.ReadString(ctx)
			if err != nil {
				return err
			}
			m.CreatedBy = &s
			return nil
		}},
		{id: 8, name: "sorting_columns", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			m.SortingColumns = make([]*SortingColumn, 0, size)
			for i := 0; i < size; i++ {
				sc := &SortingColumn{}
				if err := sc.Read(ctx, p); err != nil {
					return err
				}
				m.SortingColumns = append(m.SortingColumns, sc)
			}
			return p.ReadListEnd(ctx)
		}},
	}))
}
