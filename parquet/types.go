package parquet

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Type is the physical, on-disk encoding of a leaf column's values.
type Type int32

const (
	Type_BOOLEAN              Type = 0
	Type_INT32                Type = 1
	Type_INT64                Type = 2
	Type_INT96                Type = 3
	Type_FLOAT                Type = 4
	Type_DOUBLE               Type = 5
	Type_BYTE_ARRAY           Type = 6
	Type_FIXED_LEN_BYTE_ARRAY Type = 7
)

func (t Type) String() string {
	switch t {
	case Type_BOOLEAN:
		return "BOOLEAN"
	case Type_INT32:
		return "INT32"
	case Type_INT64:
		return "INT64"
	case Type_INT96:
		return "INT96"
	case Type_FLOAT:
		return "FLOAT"
	case Type_DOUBLE:
		return "DOUBLE"
	case Type_BYTE_ARRAY:
		return "BYTE_ARRAY"
	case Type_FIXED_LEN_BYTE_ARRAY:
		return "FIXED_LEN_BYTE_ARRAY"
	}
	return fmt.Sprintf("Type(%d)", int32(t))
}

// FieldRepetitionType is Required, Optional or Repeated.
type FieldRepetitionType int32

const (
	FieldRepetitionType_REQUIRED FieldRepetitionType = 0
	FieldRepetitionType_OPTIONAL FieldRepetitionType = 1
	FieldRepetitionType_REPEATED FieldRepetitionType = 2
)

func (r FieldRepetitionType) String() string {
	switch r {
	case FieldRepetitionType_REQUIRED:
		return "REQUIRED"
	case FieldRepetitionType_OPTIONAL:
		return "OPTIONAL"
	case FieldRepetitionType_REPEATED:
		return "REPEATED"
	}
	return fmt.Sprintf("FieldRepetitionType(%d)", int32(r))
}

// Encoding names one of the value encodings a data or dictionary page can use.
type Encoding int32

const (
	Encoding_PLAIN                  Encoding = 0
	Encoding_PLAIN_DICTIONARY       Encoding = 2
	Encoding_RLE                    Encoding = 3
	Encoding_BIT_PACKED             Encoding = 4
	Encoding_DELTA_BINARY_PACKED    Encoding = 5
	Encoding_DELTA_LENGTH_BYTE_ARRAY Encoding = 6
	Encoding_DELTA_BYTE_ARRAY       Encoding = 7
	Encoding_RLE_DICTIONARY         Encoding = 8
)

func (e Encoding) String() string {
	switch e {
	case Encoding_PLAIN:
		return "PLAIN"
	case Encoding_PLAIN_DICTIONARY:
		return "PLAIN_DICTIONARY"
	case Encoding_RLE:
		return "RLE"
	case Encoding_BIT_PACKED:
		return "BIT_PACKED"
	case Encoding_DELTA_BINARY_PACKED:
		return "DELTA_BINARY_PACKED"
	case Encoding_DELTA_LENGTH_BYTE_ARRAY:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case Encoding_DELTA_BYTE_ARRAY:
		return "DELTA_BYTE_ARRAY"
	case Encoding_RLE_DICTIONARY:
		return "RLE_DICTIONARY"
	}
	return fmt.Sprintf("Encoding(%d)", int32(e))
}

// CompressionCodec names the block compressor applied to a page's payload.
type CompressionCodec int32

const (
	CompressionCodec_UNCOMPRESSED CompressionCodec = 0
	CompressionCodec_SNAPPY       CompressionCodec = 1
	CompressionCodec_GZIP         CompressionCodec = 2
	CompressionCodec_LZO          CompressionCodec = 3
	CompressionCodec_BROTLI       CompressionCodec = 4
	CompressionCodec_LZ4          CompressionCodec = 5
	CompressionCodec_ZSTD         CompressionCodec = 6
	CompressionCodec_LZ4_RAW      CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case CompressionCodec_UNCOMPRESSED:
		return "UNCOMPRESSED"
	case CompressionCodec_SNAPPY:
		return "SNAPPY"
	case CompressionCodec_GZIP:
		return "GZIP"
	case CompressionCodec_LZO:
		return "LZO"
	case CompressionCodec_BROTLI:
		return "BROTLI"
	case CompressionCodec_LZ4:
		return "LZ4"
	case CompressionCodec_ZSTD:
		return "ZSTD"
	case CompressionCodec_LZ4_RAW:
		return "LZ4_RAW"
	}
	return fmt.Sprintf("CompressionCodec(%d)", int32(c))
}

// PageType tags what a PageHeader's type-specific sub-header holds.
type PageType int32

const (
	PageType_DATA_PAGE       PageType = 0
	PageType_INDEX_PAGE      PageType = 1
	PageType_DICTIONARY_PAGE PageType = 2
	PageType_DATA_PAGE_V2    PageType = 3
)

func (p PageType) String() string {
	switch p {
	case PageType_DATA_PAGE:
		return "DATA_PAGE"
	case PageType_INDEX_PAGE:
		return "INDEX_PAGE"
	case PageType_DICTIONARY_PAGE:
		return "DICTIONARY_PAGE"
	case PageType_DATA_PAGE_V2:
		return "DATA_PAGE_V2"
	}
	return fmt.Sprintf("PageType(%d)", int32(p))
}

// BoundaryOrder tags whether a ColumnIndex's page min/max values are sorted.
type BoundaryOrder int32

const (
	BoundaryOrder_UNORDERED  BoundaryOrder = 0
	BoundaryOrder_ASCENDING  BoundaryOrder = 1
	BoundaryOrder_DESCENDING BoundaryOrder = 2
)

func (b BoundaryOrder) String() string {
	switch b {
	case BoundaryOrder_UNORDERED:
		return "UNORDERED"
	case BoundaryOrder_ASCENDING:
		return "ASCENDING"
	case BoundaryOrder_DESCENDING:
		return "DESCENDING"
	}
	return fmt.Sprintf("BoundaryOrder(%d)", int32(b))
}

// ConvertedType is the legacy (pre-LogicalType) annotation of a schema leaf.
type ConvertedType int32

const (
	ConvertedType_UTF8            ConvertedType = 0
	ConvertedType_MAP             ConvertedType = 1
	ConvertedType_MAP_KEY_VALUE   ConvertedType = 2
	ConvertedType_LIST            ConvertedType = 3
	ConvertedType_ENUM            ConvertedType = 4
	ConvertedType_DECIMAL         ConvertedType = 5
	ConvertedType_DATE            ConvertedType = 6
	ConvertedType_TIME_MILLIS     ConvertedType = 7
	ConvertedType_TIME_MICROS     ConvertedType = 8
	ConvertedType_TIMESTAMP_MILLIS ConvertedType = 9
	ConvertedType_TIMESTAMP_MICROS ConvertedType = 10
	ConvertedType_UINT_8          ConvertedType = 11
	ConvertedType_UINT_16         ConvertedType = 12
	ConvertedType_UINT_32         ConvertedType = 13
	ConvertedType_UINT_64         ConvertedType = 14
	ConvertedType_INT_8           ConvertedType = 15
	ConvertedType_INT_16          ConvertedType = 16
	ConvertedType_INT_32          ConvertedType = 17
	ConvertedType_INT_64          ConvertedType = 18
	ConvertedType_JSON            ConvertedType = 19
	ConvertedType_BSON            ConvertedType = 20
	ConvertedType_INTERVAL        ConvertedType = 21
)

// writeI32Enum/readI32Enum adapt the field codec to thrift's I32 wire type,
// which is how thrift encodes all of these plain (non-union) enums.
func writeI32Enum(ctx context.Context, p thrift.TProtocol, v int32) error {
	return p.WriteI32(ctx, v)
}

func readI32Enum(ctx context.Context, p thrift.TProtocol) (int32, error) {
	return p.ReadI32(ctx)
}
