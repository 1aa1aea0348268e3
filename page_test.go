package goparquet

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestCompressDecompressPageV1RoundTrip(t *testing.T) {
	body := []byte("some page payload bytes, repeated repeated repeated for compressibility")
	header := &parquet.PageHeader{Type: parquet.PageType_DATA_PAGE, DataPageHeader: &parquet.DataPageHeader{NumValues: 5}}

	cp, err := compressPage(PageDataV1, header, body, parquet.CompressionCodec_SNAPPY, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(len(body)), cp.Header.UncompressedPageSize)

	dp, err := decompressPage(cp, parquet.CompressionCodec_SNAPPY)
	require.NoError(t, err)
	assert.Equal(t, body, dp.ValueBytes())
}

// Property 6: a DataPageV2 page's decoded value count matches the count of
// entries at max definition level, independent of whether the values
// segment itself was compressed.
func TestCompressDecompressPageV2SplitsLevelsFromValues(t *testing.T) {
	repLevels := []byte{0, 0, 0}
	defLevels := []byte{1, 0, 1}
	values := []byte("abcdef")

	header := &parquet.PageHeader{
		Type: parquet.PageType_DATA_PAGE_V2,
		DataPageHeaderV2: &parquet.DataPageHeaderV2{
			NumValues: 3,
			NumNulls:  1,
			NumRows:   3,
		},
	}
	cp, err := compressPageV2(header, repLevels, defLevels, values, parquet.CompressionCodec_GZIP, 0, true)
	require.NoError(t, err)

	dp, err := decompressPage(cp, parquet.CompressionCodec_GZIP)
	require.NoError(t, err)
	assert.Equal(t, repLevels, dp.RepLevelBytes())
	assert.Equal(t, defLevels, dp.DefLevelBytes())
	assert.Equal(t, values, dp.ValueBytes())

	numDefined := 0
	for _, d := range defLevels {
		if d == 1 {
			numDefined++
		}
	}
	assert.Equal(t, 2, numDefined)
	assert.Equal(t, header.DataPageHeaderV2.NumValues-header.DataPageHeaderV2.NumNulls, int32(numDefined))
}

func TestCompressPageV2UncompressedValuesSegment(t *testing.T) {
	values := []byte("raw, not compressed")
	header := &parquet.PageHeader{
		Type:             parquet.PageType_DATA_PAGE_V2,
		DataPageHeaderV2: &parquet.DataPageHeaderV2{NumValues: 1, NumNulls: 0, NumRows: 1},
	}
	cp, err := compressPageV2(header, nil, nil, values, parquet.CompressionCodec_SNAPPY, 0, false)
	require.NoError(t, err)

	dp, err := decompressPage(cp, parquet.CompressionCodec_SNAPPY)
	require.NoError(t, err)
	assert.Equal(t, values, dp.ValueBytes())
}

func TestPageKindString(t *testing.T) {
	assert.Equal(t, "DATA_PAGE", PageDataV1.String())
	assert.Equal(t, "DATA_PAGE_V2", PageDataV2.String())
	assert.Equal(t, "DICTIONARY_PAGE", PageDictionary.String())
}

func TestCompressPageSetsCRCForReadPageHeaderToVerify(t *testing.T) {
	body := []byte("crc-checked page payload, repeated repeated repeated for compressibility")
	header := &parquet.PageHeader{Type: parquet.PageType_DATA_PAGE, DataPageHeader: &parquet.DataPageHeader{NumValues: 5}}

	cp, err := compressPage(PageDataV1, header, body, parquet.CompressionCodec_SNAPPY, 0)
	require.NoError(t, err)
	require.NotNil(t, cp.Header.CRC)

	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, writePageHeader(ctx, &buf, cp.Header, cp.Data))

	got, gotPayload, err := readPageHeader(ctx, &buf)
	require.NoError(t, err)
	require.NotNil(t, got.CRC)
	assert.Equal(t, cp.Data, gotPayload)
}

func TestReadPageHeaderRejectsCorruptPayload(t *testing.T) {
	body := []byte("crc-checked page payload, repeated repeated repeated for compressibility")
	header := &parquet.PageHeader{Type: parquet.PageType_DATA_PAGE, DataPageHeader: &parquet.DataPageHeader{NumValues: 5}}

	cp, err := compressPage(PageDataV1, header, body, parquet.CompressionCodec_SNAPPY, 0)
	require.NoError(t, err)

	corrupted := append([]byte(nil), cp.Data...)
	corrupted[0] ^= 0xFF

	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, writePageHeader(ctx, &buf, cp.Header, corrupted))

	_, _, err = readPageHeader(ctx, &buf)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func TestPageHeaderRoundTrip(t *testing.T) {
	payload := []byte("0123456789")
	header := &parquet.PageHeader{
		Type:                 parquet.PageType_DATA_PAGE,
		UncompressedPageSize: 10,
		CompressedPageSize:   int32(len(payload)),
		DataPageHeader:       &parquet.DataPageHeader{NumValues: 4, Encoding: parquet.Encoding_PLAIN},
	}

	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, writePageHeader(ctx, &buf, header, payload))

	got, gotPayload, err := readPageHeader(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, header.Type, got.Type)
	assert.Equal(t, header.DataPageHeader.NumValues, got.DataPageHeader.NumValues)
	assert.Equal(t, payload, gotPayload)
}
