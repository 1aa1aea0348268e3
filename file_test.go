package goparquet

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func sampleFileMetaData(t *testing.T) *parquet.FileMetaData {
	t.Helper()
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	sd, err := b.Build()
	require.NoError(t, err)
	createdBy := "pqcore-parquet-core test"
	return &parquet.FileMetaData{
		Version: 1,
		Schema:  sd.Elements(),
		NumRows: 3,
		RowGroups: []*parquet.RowGroup{
			{NumRows: 3, TotalByteSize: 42},
		},
		CreatedBy: &createdBy,
	}
}

// Property 1: the footer round-trips through WriteFileMetaData/
// ReadFileMetaData with the head/trailing magic intact.
func TestFileMetaDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	meta := sampleFileMetaData(t)

	var buf bytes.Buffer
	require.NoError(t, WriteFileMagic(&buf))
	require.NoError(t, WriteFileMetaData(ctx, &buf, meta))

	r := bytes.NewReader(buf.Bytes())
	require.NoError(t, ValidateFileMagic(r))

	got, err := ReadFileMetaData(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, meta.NumRows, got.NumRows)
	assert.Equal(t, meta.Version, got.Version)
	assert.Equal(t, len(meta.Schema), len(got.Schema))
	require.Len(t, got.RowGroups, 1)
	assert.Equal(t, meta.RowGroups[0].NumRows, got.RowGroups[0].NumRows)
}

func TestReadFileMetaDataRejectsTruncatedFile(t *testing.T) {
	ctx := context.Background()
	r := bytes.NewReader([]byte{'P', 'A', 'R', '1'})
	_, err := ReadFileMetaData(ctx, r)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func TestReadFileMetaDataRejectsMissingTrailingMagic(t *testing.T) {
	ctx := context.Background()
	buf := bytes.Repeat([]byte{0}, 20)
	r := bytes.NewReader(buf)
	_, err := ReadFileMetaData(ctx, r)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func TestValidateFileMagicRejectsWrongHeader(t *testing.T) {
	r := bytes.NewReader([]byte("XXXX"))
	err := ValidateFileMagic(r)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}
