package goparquet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestBuildDictionary(t *testing.T) {
	values := [][]byte{[]byte("a"), []byte("b"), []byte("a"), []byte("c"), []byte("b")}
	dict, indices := buildDictionary(values)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, dict)
	assert.Equal(t, []int32{0, 1, 0, 2, 1}, indices)
}

func TestDictionaryIndexBitWidth(t *testing.T) {
	assert.Equal(t, 0, dictionaryIndexBitWidth(0))
	assert.Equal(t, 0, dictionaryIndexBitWidth(1))
	assert.Equal(t, 1, dictionaryIndexBitWidth(2))
	assert.Equal(t, 2, dictionaryIndexBitWidth(3))
	assert.Equal(t, 8, dictionaryIndexBitWidth(256))
}

func TestEncodeDecodeDictionaryIndices(t *testing.T) {
	indices := []int32{0, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 0}
	var buf bytes.Buffer
	require.NoError(t, encodeDictionaryIndices(&buf, indices, dictionaryIndexBitWidth(3)))
	got, err := decodeDictionaryIndices(&buf, len(indices))
	require.NoError(t, err)
	assert.Equal(t, indices, got)
}

func TestDictionaryPageValuesRoundTripByteArray(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_BYTE_ARRAY}
	dict := [][]byte{[]byte("x"), []byte("yy"), []byte("zzz")}
	var buf bytes.Buffer
	require.NoError(t, encodeDictionaryPageValues(&buf, col, dict))
	got, err := decodeDictionaryPageValues(&buf, col, len(dict))
	require.NoError(t, err)
	assert.Equal(t, dict, got)
}

func TestDictionaryPageValuesRoundTripInt32(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_INT32}
	dict, err := plainRawInt32Dict([]int32{10, 20, 30})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, encodeDictionaryPageValues(&buf, col, dict))
	got, err := decodeDictionaryPageValues(&buf, col, len(dict))
	require.NoError(t, err)
	assert.Equal(t, dict, got)
}

// plainRawInt32Dict renders int32 values into the raw per-value shape
// (4 little-endian bytes each) that dictionary encode/decode expects.
func plainRawInt32Dict(values []int32) ([][]byte, error) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_INT32}
	var buf bytes.Buffer
	if err := plainEncodeInt32(&buf, values); err != nil {
		return nil, err
	}
	return splitRawValues(col, buf.Bytes(), len(values))
}

func TestDictionaryPageValuesRoundTripFixedLenByteArray(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_FIXED_LEN_BYTE_ARRAY, TypeLength: 3}
	dict := [][]byte{{1, 2, 3}, {4, 5, 6}}
	var buf bytes.Buffer
	require.NoError(t, encodeDictionaryPageValues(&buf, col, dict))
	got, err := decodeDictionaryPageValues(&buf, col, len(dict))
	require.NoError(t, err)
	assert.Equal(t, dict, got)
}
