package parquet

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// PageLocation is one entry of an OffsetIndex: where a page starts, how
// big it is on disk, and the first row it contributes to the column.
type PageLocation struct {
	Offset             int64
	CompressedPageSize int32
	FirstRowIndex      int64
}

func (l *PageLocation) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "PageLocation", []field{
		{id: 1, name: "offset", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, l.Offset) }},
		{id: 2, name: "compressed_page_size", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, l.CompressedPageSize) }},
		{id: 3, name: "first_row_index", typeID: thrift.I64, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI64(ctx, l.FirstRowIndex) }},
	})
}

func (l *PageLocation) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "PageLocation", fieldsByID([]field{
		{id: 1, name: "offset", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { l.Offset, err = p.ReadI64(ctx); return }},
		{id: 2, name: "compressed_page_size", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { l.CompressedPageSize, err = p.ReadI32(ctx); return }},
		{id: 3, name: "first_row_index", typeID: thrift.I64, read: func(ctx context.Context, p thrift.TProtocol) (err error) { l.FirstRowIndex, err = p.ReadI64(ctx); return }},
	}))
}

// OffsetIndex is a column chunk's page location sidecar, read up front to
// resolve which byte ranges hold the pages a query needs.
type OffsetIndex struct {
	PageLocations []*PageLocation
}

func (o *OffsetIndex) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "OffsetIndex", []field{
		{id: 1, name: "page_locations", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error {
			if err := p.WriteListBegin(ctx, thrift.STRUCT, len(o.PageLocations)); err != nil {
				return err
			}
			for _, l := range o.PageLocations {
				if err := l.Write(ctx, p); err != nil {
					return err
				}
			}
			return p.WriteListEnd(ctx)
		}},
	})
}

func (o *OffsetIndex) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "OffsetIndex", fieldsByID([]field{
		{id: 1, name: "page_locations", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) error {
			_, size, err := p.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			o.PageLocations = make([]*PageLocation, 0, size)
			for i := 0; i < size; i++ {
				l := &PageLocation{}
				if err := l.Read(ctx, p); err != nil {
					return err
				}
				o.PageLocations = append(o.PageLocations, l)
			}
			return p.ReadListEnd(ctx)
		}},
	}))
}

func writeBinaryList(ctx context.Context, oprot thrift.TProtocol, vs [][]byte) error {
	if err := oprot.WriteListBegin(ctx, thrift.STRING, len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := oprot.WriteBinary(ctx, v); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readBinaryList(ctx context.Context, iprot thrift.TProtocol) ([][]byte, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadBinary(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, iprot.ReadListEnd(ctx)
}

func writeBoolList(ctx context.Context, oprot thrift.TProtocol, vs []bool) error {
	if err := oprot.WriteListBegin(ctx, thrift.BOOL, len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := oprot.WriteBool(ctx, v); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readBoolList(ctx context.Context, iprot thrift.TProtocol) ([]bool, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadBool(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, iprot.ReadListEnd(ctx)
}

func writeI64List(ctx context.Context, oprot thrift.TProtocol, vs []int64) error {
	if err := oprot.WriteListBegin(ctx, thrift.I64, len(vs)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := oprot.WriteI64(ctx, v); err != nil {
			return err
		}
	}
	return oprot.WriteListEnd(ctx)
}

func readI64List(ctx context.Context, iprot thrift.TProtocol) ([]int64, error) {
	_, size, err := iprot.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, size)
	for i := 0; i < size; i++ {
		v, err := iprot.ReadI64(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, iprot.ReadListEnd(ctx)
}

// ColumnIndex is a column chunk's per-page min/max/null-count sidecar,
// read up front to prune pages that can't satisfy a predicate.
type ColumnIndex struct {
	NullPages     []bool
	MinValues     [][]byte
	MaxValues     [][]byte
	BoundaryOrder BoundaryOrder
	NullCounts    []int64
}

func (c *ColumnIndex) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "ColumnIndex", []field{
		{id: 1, name: "null_pages", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error { return writeBoolList(ctx, p, c.NullPages) }},
		{id: 2, name: "min_values", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error { return writeBinaryList(ctx, p, c.MinValues) }},
		{id: 3, name: "max_values", typeID: thrift.LIST, write: func(ctx context.Context, p thrift.TProtocol) error { return writeBinaryList(ctx, p, c.MaxValues) }},
		{id: 4, name: "boundary_order", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, int32(c.BoundaryOrder)) }},
		{id: 5, name: "null_counts", typeID: thrift.LIST, present: func() bool { return c.NullCounts != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return writeI64List(ctx, p, c.NullCounts) }},
	})
}

func (c *ColumnIndex) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "ColumnIndex", fieldsByID([]field{
		{id: 1, name: "null_pages", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.NullPages, err = readBoolList(ctx, p); return }},
		{id: 2, name: "min_values", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.MinValues, err = readBinaryList(ctx, p); return }},
		{id: 3, name: "max_values", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.MaxValues, err = readBinaryList(ctx, p); return }},
		{id: 4, name: "boundary_order", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) error { v, err := p.ReadI32(ctx); c.BoundaryOrder = BoundaryOrder(v); return err }},
		{id: 5, name: "null_counts", typeID: thrift.LIST, read: func(ctx context.Context, p thrift.TProtocol) (err error) { c.NullCounts, err = readI64List(ctx, p); return }},
	}))
}
