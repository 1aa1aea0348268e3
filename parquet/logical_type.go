package parquet

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// marker is an empty thrift struct: several LogicalType variants (and the
// bloom filter algorithm/hash/compression unions) carry no fields of their
// own, they exist purely as a tag inside a parent union.
type marker struct{ Name string }

func (m marker) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, m.Name, nil)
}

func (m marker) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, m.Name, nil)
}

type (
	StringType struct{ marker }
	UUIDType   struct{ marker }
	MapType    struct{ marker }
	ListType   struct{ marker }
	EnumType   struct{ marker }
	DateType   struct{ marker }
	NullType   struct{ marker }
	JsonType   struct{ marker }
	BsonType   struct{ marker }
)

func newMarker(name string) marker { return marker{Name: name} }

// TimeUnit is itself a thrift union (MILLIS/MICROS/NANOS, all empty), but
// since exactly one is ever set and none carry data, it collapses cleanly
// to a plain enum without changing wire semantics of what we emit.
type TimeUnit int32

const (
	TimeUnit_MILLIS TimeUnit = 0
	TimeUnit_MICROS TimeUnit = 1
	TimeUnit_NANOS  TimeUnit = 2
)

func (u TimeUnit) unionFieldName() string {
	switch u {
	case TimeUnit_MICROS:
		return "MICROS"
	case TimeUnit_NANOS:
		return "NANOS"
	default:
		return "MILLIS"
	}
}

func writeTimeUnit(ctx context.Context, oprot thrift.TProtocol, u TimeUnit) error {
	return writeStruct(ctx, oprot, "TimeUnit", []field{
		{id: 1, name: "MILLIS", typeID: thrift.STRUCT, present: func() bool { return u == TimeUnit_MILLIS }, write: func(ctx context.Context, p thrift.TProtocol) error { return newMarker("MilliSeconds").Write(ctx, p) }},
		{id: 2, name: "MICROS", typeID: thrift.STRUCT, present: func() bool { return u == TimeUnit_MICROS }, write: func(ctx context.Context, p thrift.TProtocol) error { return newMarker("MicroSeconds").Write(ctx, p) }},
		{id: 3, name: "NANOS", typeID: thrift.STRUCT, present: func() bool { return u == TimeUnit_NANOS }, write: func(ctx context.Context, p thrift.TProtocol) error { return newMarker("NanoSeconds").Write(ctx, p) }},
	})
}

func readTimeUnit(ctx context.Context, iprot thrift.TProtocol) (TimeUnit, error) {
	var u TimeUnit
	err := readStruct(ctx, iprot, "TimeUnit", fieldsByID([]field{
		{id: 1, name: "MILLIS", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { u = TimeUnit_MILLIS; return newMarker("MilliSeconds").Read(ctx, p) }},
		{id: 2, name: "MICROS", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { u = TimeUnit_MICROS; return newMarker("MicroSeconds").Read(ctx, p) }},
		{id: 3, name: "NANOS", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { u = TimeUnit_NANOS; return newMarker("NanoSeconds").Read(ctx, p) }},
	}))
	return u, err
}

// DecimalType annotates a leaf as a fixed-point decimal.
type DecimalType struct {
	Scale     int32
	Precision int32
}

func (d *DecimalType) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "DecimalType", []field{
		{id: 1, name: "scale", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, d.Scale) }},
		{id: 2, name: "precision", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, d.Precision) }},
	})
}

func (d *DecimalType) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "DecimalType", fieldsByID([]field{
		{id: 1, name: "scale", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { d.Scale, err = p.ReadI32(ctx); return }},
		{id: 2, name: "precision", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { d.Precision, err = p.ReadI32(ctx); return }},
	}))
}

// TimeType annotates a leaf as a time-of-day value.
type TimeType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

func (t *TimeType) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TimeType", []field{
		{id: 1, name: "isAdjustedToUTC", typeID: thrift.BOOL, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, t.IsAdjustedToUTC) }},
		{id: 2, name: "unit", typeID: thrift.STRUCT, write: func(ctx context.Context, p thrift.TProtocol) error { return writeTimeUnit(ctx, p, t.Unit) }},
	})
}

func (t *TimeType) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "TimeType", fieldsByID([]field{
		{id: 1, name: "isAdjustedToUTC", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.IsAdjustedToUTC, err = p.ReadBool(ctx); return }},
		{id: 2, name: "unit", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.Unit, err = readTimeUnit(ctx, p); return }},
	}))
}

// TimestampType annotates a leaf as an instant in time.
type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

func (t *TimestampType) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TimestampType", []field{
		{id: 1, name: "isAdjustedToUTC", typeID: thrift.BOOL, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, t.IsAdjustedToUTC) }},
		{id: 2, name: "unit", typeID: thrift.STRUCT, write: func(ctx context.Context, p thrift.TProtocol) error { return writeTimeUnit(ctx, p, t.Unit) }},
	})
}

func (t *TimestampType) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "TimestampType", fieldsByID([]field{
		{id: 1, name: "isAdjustedToUTC", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.IsAdjustedToUTC, err = p.ReadBool(ctx); return }},
		{id: 2, name: "unit", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.Unit, err = readTimeUnit(ctx, p); return }},
	}))
}

// IntType annotates a leaf as a sized, possibly-signed integer.
type IntType struct {
	BitWidth int8
	IsSigned bool
}

func (t *IntType) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "IntType", []field{
		{id: 1, name: "bitWidth", typeID: thrift.BYTE, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteByte(ctx, t.BitWidth) }},
		{id: 2, name: "isSigned", typeID: thrift.BOOL, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteBool(ctx, t.IsSigned) }},
	})
}

func (t *IntType) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "IntType", fieldsByID([]field{
		{id: 1, name: "bitWidth", typeID: thrift.BYTE, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.BitWidth, err = p.ReadByte(ctx); return }},
		{id: 2, name: "isSigned", typeID: thrift.BOOL, read: func(ctx context.Context, p thrift.TProtocol) (err error) { t.IsSigned, err = p.ReadBool(ctx); return }},
	}))
}

// LogicalType is the closed union of leaf annotations spec.md §3 lists:
// Decimal, Date, Time, Timestamp, Int, String, Enum, Uuid, Json, Bson,
// Unknown. Exactly one field is non-nil.
type LogicalType struct {
	STRING    *StringType
	MAP       *MapType
	LIST      *ListType
	ENUM      *EnumType
	DECIMAL   *DecimalType
	DATE      *DateType
	TIME      *TimeType
	TIMESTAMP *TimestampType
	INTEGER   *IntType
	UNKNOWN   *NullType
	JSON      *JsonType
	BSON      *BsonType
	UUID      *UUIDType
}

func (lt *LogicalType) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "LogicalType", []field{
		{id: 1, name: "STRING", typeID: thrift.STRUCT, present: func() bool { return lt.STRING != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.STRING.Write(ctx, p) }},
		{id: 2, name: "MAP", typeID: thrift.STRUCT, present: func() bool { return lt.MAP != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.MAP.Write(ctx, p) }},
		{id: 3, name: "LIST", typeID: thrift.STRUCT, present: func() bool { return lt.LIST != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.LIST.Write(ctx, p) }},
		{id: 4, name: "ENUM", typeID: thrift.STRUCT, present: func() bool { return lt.ENUM != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.ENUM.Write(ctx, p) }},
		{id: 5, name: "DECIMAL", typeID: thrift.STRUCT, present: func() bool { return lt.DECIMAL != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.DECIMAL.Write(ctx, p) }},
		{id: 6, name: "DATE", typeID: thrift.STRUCT, present: func() bool { return lt.DATE != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.DATE.Write(ctx, p) }},
		{id: 7, name: "TIME", typeID: thrift.STRUCT, present: func() bool { return lt.TIME != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.TIME.Write(ctx, p) }},
		{id: 8, name: "TIMESTAMP", typeID: thrift.STRUCT, present: func() bool { return lt.TIMESTAMP != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.TIMESTAMP.Write(ctx, p) }},
		{id: 10, name: "INTEGER", typeID: thrift.STRUCT, present: func() bool { return lt.INTEGER != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.INTEGER.Write(ctx, p) }},
		{id: 11, name: "UNKNOWN", typeID: thrift.STRUCT, present: func() bool { return lt.UNKNOWN != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.UNKNOWN.Write(ctx, p) }},
		{id: 12, name: "JSON", typeID: thrift.STRUCT, present: func() bool { return lt.JSON != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.JSON.Write(ctx, p) }},
		{id: 13, name: "BSON", typeID: thrift.STRUCT, present: func() bool { return lt.BSON != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.BSON.Write(ctx, p) }},
		{id: 14, name: "UUID", typeID: thrift.STRUCT, present: func() bool { return lt.UUID != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return lt.UUID.Write(ctx, p) }},
	})
}

func (lt *LogicalType) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "LogicalType", fieldsByID([]field{
		{id: 1, name: "STRING", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.STRING = &StringType{marker: newMarker("StringType")}
			return lt.STRING.Read(ctx, p)
		}},
		{id: 2, name: "MAP", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.MAP = &MapType{marker: newMarker("MapType")}
			return lt.MAP.Read(ctx, p)
		}},
		{id: 3, name: "LIST", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.LIST = &ListType{marker: newMarker("ListType")}
			return lt.LIST.Read(ctx, p)
		}},
		{id: 4, name: "ENUM", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.ENUM = &EnumType{marker: newMarker("EnumType")}
			return lt.ENUM.Read(ctx, p)
		}},
		{id: 5, name: "DECIMAL", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.DECIMAL = &DecimalType{}
			return lt.DECIMAL.Read(ctx, p)
		}},
		{id: 6, name: "DATE", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.DATE = &DateType{marker: newMarker("DateType")}
			return lt.DATE.Read(ctx, p)
		}},
		{id: 7, name: "TIME", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.TIME = &TimeType{}
			return lt.TIME.Read(ctx, p)
		}},
		{id: 8, name: "TIMESTAMP", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.TIMESTAMP = &TimestampType{}
			return lt.TIMESTAMP.Read(ctx, p)
		}},
		{id: 10, name: "INTEGER", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.INTEGER = &IntType{}
			return lt.INTEGER.Read(ctx, p)
		}},
		{id: 11, name: "UNKNOWN", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.UNKNOWN = &NullType{marker: newMarker("NullType")}
			return lt.UNKNOWN.Read(ctx, p)
		}},
		{id: 12, name: "JSON", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.JSON = &JsonType{marker: newMarker("JsonType")}
			return lt.JSON.Read(ctx, p)
		}},
		{id: 13, name: "BSON", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.BSON = &BsonType{marker: newMarker("BsonType")}
			return lt.BSON.Read(ctx, p)
		}},
		{id: 14, name: "UUID", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			lt.UUID = &UUIDType{marker: newMarker("UUIDType")}
			return lt.UUID.Read(ctx, p)
		}},
	}))
}
