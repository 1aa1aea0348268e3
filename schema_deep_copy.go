package goparquet

import (
	"bytes"
	"context"

	"github.com/pqcore/parquet-core/parquet"
)

// copySchemaElement deep-copies one SchemaElement by round-tripping it
// through the thrift compact protocol codec, the same trick the teacher
// uses for its whole schema tree: cheaper to get right than mirroring
// every pointer field by hand, and it can never drift out of sync with
// the struct's actual field set.
func copySchemaElement(ctx context.Context, in *parquet.SchemaElement) (*parquet.SchemaElement, error) {
	if in == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := parquet.WriteThrift(ctx, &buf, in); err != nil {
		return nil, wrapError(Io, err, "schema element deep copy: encode")
	}
	out := &parquet.SchemaElement{}
	if err := parquet.ReadThrift(ctx, &buf, out); err != nil {
		return nil, wrapError(Io, err, "schema element deep copy: decode")
	}
	return out, nil
}

// CopySchemaDescriptor returns an independent deep copy of a
// SchemaDescriptor, safe to hand to a second FileWriter without either
// writer's mutations (SchemaBuilder-driven or otherwise) aliasing the
// other's SchemaElement or ColumnDescriptor values.
func CopySchemaDescriptor(ctx context.Context, in *SchemaDescriptor) (*SchemaDescriptor, error) {
	elements := make([]*parquet.SchemaElement, len(in.elements))
	for i, el := range in.elements {
		cp, err := copySchemaElement(ctx, el)
		if err != nil {
			return nil, err
		}
		elements[i] = cp
	}
	return NewSchemaDescriptor(elements)
}
