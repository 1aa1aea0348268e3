package goparquet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUVariantRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, writeUVariant(&buf, v))
		got, err := readUVariant(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVariantRoundTripSigned(t *testing.T) {
	values := []int64{0, 1, -1, 127, -127, 1 << 40, -(1 << 40)}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, writeVariant(&buf, v))
		got, err := readVariant(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadUVariant32Overflow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUVariant(&buf, uint64(1)<<40))
	_, err := readUVariant32(&buf)
	assert.Error(t, err)
}

func TestZigzag(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2, -2, 1<<62 - 1, -(1 << 62)} {
		assert.Equal(t, v, zigzagDecode64(zigzagEncode64(v)))
	}
}
