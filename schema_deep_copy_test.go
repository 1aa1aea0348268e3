package goparquet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestCopySchemaDescriptorIsIndependent(t *testing.T) {
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	b.AddColumn("name", parquet.Type_BYTE_ARRAY, parquet.FieldRepetitionType_OPTIONAL, nil)
	sd, err := b.Build()
	require.NoError(t, err)

	cp, err := CopySchemaDescriptor(context.Background(), sd)
	require.NoError(t, err)
	require.Len(t, cp.Columns(), len(sd.Columns()))
	assert.Equal(t, sd.Columns()[0].FlatName(), cp.Columns()[0].FlatName())
	assert.Equal(t, sd.Columns()[1].MaxDefinitionLevel, cp.Columns()[1].MaxDefinitionLevel)

	cp.Elements()[1].Name = "mutated"
	assert.Equal(t, "id", sd.Elements()[1].Name)
}
