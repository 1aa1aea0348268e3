package goparquet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2147483647, -2147483648}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeInt32(&buf, values))
	got := make([]int32, len(values))
	require.NoError(t, plainDecodeInt32(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 62, -(1 << 62)}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeInt64(&buf, values))
	got := make([]int64, len(values))
	require.NoError(t, plainDecodeInt64(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainFloat32RoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -1.5, 3.14159}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeFloat32(&buf, values))
	got := make([]float32, len(values))
	require.NoError(t, plainDecodeFloat32(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainFloat64RoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -1.5, 2.718281828}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeFloat64(&buf, values))
	got := make([]float64, len(values))
	require.NoError(t, plainDecodeFloat64(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainBooleanRoundTrip(t *testing.T) {
	values := []bool{true, false, true, true, false, false, false, true, true}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeBoolean(&buf, values))
	got := make([]bool, len(values))
	require.NoError(t, plainDecodeBoolean(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{[]byte("a"), []byte(""), []byte("longer string value")}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeByteArray(&buf, values))
	got := make([][]byte, len(values))
	require.NoError(t, plainDecodeByteArray(&buf, got))
	assert.Equal(t, values, got)
}

func TestPlainFixedLenByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeFixedLenByteArray(&buf, values, 4))
	got := make([][]byte, len(values))
	require.NoError(t, plainDecodeFixedLenByteArray(&buf, got, 4))
	assert.Equal(t, values, got)
}

func TestPlainFixedLenByteArrayRejectsWrongLength(t *testing.T) {
	var buf bytes.Buffer
	err := plainEncodeFixedLenByteArray(&buf, [][]byte{{1, 2, 3}}, 4)
	assert.Error(t, err)
}

func TestPlainInt96RoundTrip(t *testing.T) {
	values := [][12]byte{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		{},
	}
	var buf bytes.Buffer
	require.NoError(t, plainEncodeInt96(&buf, values))
	got := make([][12]byte, len(values))
	require.NoError(t, plainDecodeInt96(&buf, got))
	assert.Equal(t, values, got)
}
