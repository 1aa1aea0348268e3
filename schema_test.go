package goparquet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func int32Ptr(v int32) *int32 { return &v }

func TestSchemaBuilderRoundTrip(t *testing.T) {
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT64, parquet.FieldRepetitionType_REQUIRED, nil)
	b.AddColumn("name", parquet.Type_BYTE_ARRAY, parquet.FieldRepetitionType_OPTIONAL, nil)
	b.AddColumn("tags", parquet.Type_BYTE_ARRAY, parquet.FieldRepetitionType_REPEATED, nil)

	sd, err := b.Build()
	require.NoError(t, err)
	require.Len(t, sd.Columns(), 3)

	sd2, err := NewSchemaDescriptor(sd.Elements())
	require.NoError(t, err)
	require.Len(t, sd2.Columns(), 3)

	id := sd2.ColumnByName("id")
	require.NotNil(t, id)
	assert.Equal(t, parquet.Type_INT64, id.PhysicalType)
	assert.Equal(t, int32(0), id.MaxDefinitionLevel)
	assert.Equal(t, int32(0), id.MaxRepetitionLevel)

	name := sd2.ColumnByName("name")
	require.NotNil(t, name)
	assert.Equal(t, int32(1), name.MaxDefinitionLevel)
	assert.Equal(t, int32(0), name.MaxRepetitionLevel)

	tags := sd2.ColumnByName("tags")
	require.NotNil(t, tags)
	assert.Equal(t, int32(1), tags.MaxDefinitionLevel)
	assert.Equal(t, int32(1), tags.MaxRepetitionLevel)
}

func TestSchemaBuilderRejectsEmpty(t *testing.T) {
	b := NewSchemaBuilder("root")
	_, err := b.Build()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidParameter, kind)
}

func TestNewSchemaDescriptorRejectsEmptyElementList(t *testing.T) {
	_, err := NewSchemaDescriptor(nil)
	require.Error(t, err)
}

func TestNewSchemaDescriptorRejectsTruncatedList(t *testing.T) {
	root := &parquet.SchemaElement{Name: "root", NumChildren: int32Ptr(2)}
	elements := []*parquet.SchemaElement{root, {Name: "onlyone", Type: typePtr(parquet.Type_INT32)}}
	_, err := NewSchemaDescriptor(elements)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func typePtr(t parquet.Type) *parquet.Type { return &t }

func TestFlatName(t *testing.T) {
	c := &ColumnDescriptor{Path: []string{"a", "b", "c"}}
	assert.Equal(t, "a.b.c", c.FlatName())
}
