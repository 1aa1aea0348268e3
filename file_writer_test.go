package goparquet

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func buildSchema(t *testing.T) *SchemaDescriptor {
	t.Helper()
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	sd, err := b.Build()
	require.NoError(t, err)
	return sd
}

// S2: write a single row group, single Int32 column [1,2,3], V1/SNAPPY with
// statistics enabled, then read it back end to end and confirm the values
// and the footer's aggregate statistics.
func TestFileWriterReaderScenarioS2(t *testing.T) {
	ctx := context.Background()
	schema := buildSchema(t)
	values := []int32{1, 2, 3}
	raw := rawInt32Values(values)

	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema,
		WithCompression(parquet.CompressionCodec_SNAPPY, 0),
		WithStatistics(true),
	)
	rgw, err := fw.BeginRowGroup()
	require.NoError(t, err)
	require.NoError(t, rgw.WriteColumn(0, nil, nil, raw, len(values)))
	require.NoError(t, rgw.Close(int64(len(values))))
	require.NoError(t, fw.Close())

	fr, err := OpenFileReader(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), fr.NumRows())
	require.Len(t, fr.RowGroups(), 1)
	rg := fr.RowGroups()[0]
	assert.Equal(t, int64(3), rg.NumRows)

	colMeta := rg.Columns[0].MetaData
	require.NotNil(t, colMeta.Statistics)
	assert.Equal(t, int64(0), *colMeta.Statistics.NullCount)
	assert.Equal(t, int32(1), int32(binary.LittleEndian.Uint32(colMeta.Statistics.MinValue)))
	assert.Equal(t, int32(3), int32(binary.LittleEndian.Uint32(colMeta.Statistics.MaxValue)))

	cr, err := fr.ColumnChunkReader(0, 0)
	require.NoError(t, err)
	pageCount := 0
	var gotValues []int32
	for {
		p, err := cr.ReadPage()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		pageCount++
		vs, err := splitRawValues(schema.Columns()[0], p.Values, int(p.NumValues))
		require.NoError(t, err)
		for _, v := range vs {
			gotValues = append(gotValues, int32(binary.LittleEndian.Uint32(v)))
		}
	}
	assert.Equal(t, 1, pageCount)
	assert.Equal(t, values, gotValues)
}

// Substitutes for a golden-file scenario (no golden alltypes_plain.parquet
// is available in this environment): a synthesized multi-row-group,
// multi-column file exercises the same footer/row-group/column-chunk
// traversal a golden-file test would.
func TestFileWriterReaderMultiRowGroupRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	b.AddColumn("name", parquet.Type_BYTE_ARRAY, parquet.FieldRepetitionType_OPTIONAL, nil)
	schema, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema, WithDataPageV2())

	writeGroup := func(ids []int32, names [][]byte, defLevels []uint16) {
		rgw, err := fw.BeginRowGroup()
		require.NoError(t, err)
		require.NoError(t, rgw.WriteColumn(0, nil, nil, rawInt32Values(ids), len(ids)))
		require.NoError(t, rgw.WriteColumn(1, nil, defLevels, joinByteArrays(names), len(defLevels)))
		require.NoError(t, rgw.Close(int64(len(ids))))
	}

	writeGroup([]int32{4, 5, 6, 7}, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, []uint16{1, 0, 1, 1})
	writeGroup([]int32{2, 3, 0, 1}, [][]byte{[]byte("c"), []byte("d"), []byte("e"), []byte("f")}, []uint16{1, 1, 1, 1})
	require.NoError(t, fw.Close())

	fr, err := OpenFileReader(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, int64(8), fr.NumRows())
	require.Len(t, fr.RowGroups(), 2)

	var allIDs []int32
	for rgIdx := range fr.RowGroups() {
		cr, err := fr.ColumnChunkReader(rgIdx, 0)
		require.NoError(t, err)
		for {
			p, err := cr.ReadPage()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			vs, err := splitRawValues(schema.Columns()[0], p.Values, int(p.NumValues))
			require.NoError(t, err)
			for _, v := range vs {
				allIDs = append(allIDs, int32(binary.LittleEndian.Uint32(v)))
			}
		}
	}
	assert.Equal(t, []int32{4, 5, 6, 7, 2, 3, 0, 1}, allIDs)
}

func TestFileWriterCloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	schema := buildSchema(t)
	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema)
	rgw, err := fw.BeginRowGroup()
	require.NoError(t, err)
	require.NoError(t, rgw.WriteColumn(0, nil, nil, rawInt32Values([]int32{1}), 1))
	require.NoError(t, rgw.Close(1))
	require.NoError(t, fw.Close())
	sizeAfterFirstClose := buf.Len()
	require.NoError(t, fw.Close())
	assert.Equal(t, sizeAfterFirstClose, buf.Len())
}

// Regression test for the class of bug where a writer computes page/chunk
// statistics but a finalizer step forgets to carry them into the footer
// (§4.8's "footer stats survive Close" requirement): writes two row groups
// across two columns with statistics enabled, closes the file, and reopens
// it fresh to confirm every column chunk's footer statistics are present
// and correct — not just non-nil, but matching the values actually written.
func TestFileWriterCloseCarriesChunkStatisticsIntoFooter(t *testing.T) {
	ctx := context.Background()
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	b.AddColumn("score", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	schema, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema, WithStatistics(true))

	writeRowGroup := func(ids, scores []int32) {
		rgw, err := fw.BeginRowGroup()
		require.NoError(t, err)
		require.NoError(t, rgw.WriteColumn(0, nil, nil, rawInt32Values(ids), len(ids)))
		require.NoError(t, rgw.WriteColumn(1, nil, nil, rawInt32Values(scores), len(scores)))
		require.NoError(t, rgw.Close(int64(len(ids))))
	}
	writeRowGroup([]int32{1, 2, 3}, []int32{100, 50, 75})
	writeRowGroup([]int32{4, 5}, []int32{-10, 900})

	require.NoError(t, fw.Close())

	fr, err := OpenFileReader(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, fr.RowGroups(), 2)

	rg0, rg1 := fr.RowGroups()[0], fr.RowGroups()[1]

	idStats0 := rg0.Columns[0].MetaData.Statistics
	require.NotNil(t, idStats0)
	assert.Equal(t, int32(1), int32(binary.LittleEndian.Uint32(idStats0.MinValue)))
	assert.Equal(t, int32(3), int32(binary.LittleEndian.Uint32(idStats0.MaxValue)))

	scoreStats0 := rg0.Columns[1].MetaData.Statistics
	require.NotNil(t, scoreStats0)
	assert.Equal(t, int32(50), int32(binary.LittleEndian.Uint32(scoreStats0.MinValue)))
	assert.Equal(t, int32(100), int32(binary.LittleEndian.Uint32(scoreStats0.MaxValue)))

	idStats1 := rg1.Columns[0].MetaData.Statistics
	require.NotNil(t, idStats1)
	assert.Equal(t, int32(4), int32(binary.LittleEndian.Uint32(idStats1.MinValue)))
	assert.Equal(t, int32(5), int32(binary.LittleEndian.Uint32(idStats1.MaxValue)))

	scoreStats1 := rg1.Columns[1].MetaData.Statistics
	require.NotNil(t, scoreStats1)
	assert.Equal(t, int32(-10), int32(binary.LittleEndian.Uint32(scoreStats1.MinValue)))
	assert.Equal(t, int32(900), int32(binary.LittleEndian.Uint32(scoreStats1.MaxValue)))
}

func TestFileWriterRejectsWriteAfterClose(t *testing.T) {
	ctx := context.Background()
	schema := buildSchema(t)
	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema)
	require.NoError(t, fw.Close())
	_, err := fw.BeginRowGroup()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidParameter, kind)
}

func TestRowGroupWriterRejectsIncompleteColumnSet(t *testing.T) {
	ctx := context.Background()
	b := NewSchemaBuilder("root")
	b.AddColumn("id", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	b.AddColumn("other", parquet.Type_INT32, parquet.FieldRepetitionType_REQUIRED, nil)
	schema, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema)
	rgw, err := fw.BeginRowGroup()
	require.NoError(t, err)
	require.NoError(t, rgw.WriteColumn(0, nil, nil, rawInt32Values([]int32{1}), 1))
	err = rgw.Close(1)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidParameter, kind)
}

func TestFileReaderColumnChunkReaderRejectsBadIndices(t *testing.T) {
	ctx := context.Background()
	schema := buildSchema(t)
	var buf bytes.Buffer
	fw := NewFileWriter(ctx, &buf, schema)
	rgw, err := fw.BeginRowGroup()
	require.NoError(t, err)
	require.NoError(t, rgw.WriteColumn(0, nil, nil, rawInt32Values([]int32{1}), 1))
	require.NoError(t, rgw.Close(1))
	require.NoError(t, fw.Close())

	fr, err := OpenFileReader(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	_, err = fr.ColumnChunkReader(5, 0)
	require.Error(t, err)
	_, err = fr.ColumnChunkReader(0, 5)
	require.Error(t, err)
}
