package goparquet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaLengthByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte("world!"),
		[]byte("a"),
		[]byte("a longer value than the rest to vary miniblock widths"),
	}
	var buf bytes.Buffer
	require.NoError(t, deltaLengthByteArrayEncode(&buf, values))

	got, err := deltaLengthByteArrayDecode(&buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestDeltaLengthByteArrayEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, deltaLengthByteArrayEncode(&buf, nil))
	got, err := deltaLengthByteArrayDecode(&buf, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeltaLengthByteArrayManyValues(t *testing.T) {
	values := make([][]byte, 300)
	for i := range values {
		values[i] = bytes.Repeat([]byte{byte(i)}, i%17)
	}
	var buf bytes.Buffer
	require.NoError(t, deltaLengthByteArrayEncode(&buf, values))
	got, err := deltaLengthByteArrayDecode(&buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}
