package goparquet

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deltaBitPackRoundTripInt32(t *testing.T, values []int32) []int32 {
	t.Helper()
	enc := newDeltaBitPackEncoder[int32]()
	for _, v := range values {
		require.NoError(t, enc.addValue(v))
	}
	body, err := enc.close()
	require.NoError(t, err)

	dec, err := newDeltaBitPackDecoder[int32](bytes.NewReader(body))
	require.NoError(t, err)
	got := make([]int32, len(values))
	require.NoError(t, dec.decodeValues(got))
	return got
}

// S4: a single short final block/miniblock, block_size=128, miniblocks=4
// (the package defaults), exercises the zero-padding path in flushBlock.
func TestDeltaBitPackShortFinalBlockScenarioS4(t *testing.T) {
	values := []int32{7, 7, 10, 10, 10, 11}
	got := deltaBitPackRoundTripInt32(t, values)
	assert.Equal(t, values, got)
}

func TestDeltaBitPackEmptyAndSingleValue(t *testing.T) {
	assert.Equal(t, []int32{}, deltaBitPackRoundTripInt32(t, []int32{}))
	assert.Equal(t, []int32{42}, deltaBitPackRoundTripInt32(t, []int32{42}))
}

func TestDeltaBitPackExactlyOneBlock(t *testing.T) {
	values := make([]int32, defaultBlockSize)
	for i := range values {
		values[i] = int32(i * 3)
	}
	assert.Equal(t, values, deltaBitPackRoundTripInt32(t, values))
}

func TestDeltaBitPackMultipleBlocksWithNegativeDeltas(t *testing.T) {
	values := make([]int32, defaultBlockSize*2+17)
	v := int32(1000)
	for i := range values {
		v += int32(rand.Intn(21) - 10) // deltas in [-10, 10]
		values[i] = v
	}
	assert.Equal(t, values, deltaBitPackRoundTripInt32(t, values))
}

func TestDeltaBitPackInt64(t *testing.T) {
	values := make([]int64, defaultBlockSize+5)
	var v int64 = -(1 << 40)
	for i := range values {
		v += int64(i) * 7
		values[i] = v
	}
	enc := newDeltaBitPackEncoder[int64]()
	for _, x := range values {
		require.NoError(t, enc.addValue(x))
	}
	body, err := enc.close()
	require.NoError(t, err)

	dec, err := newDeltaBitPackDecoder[int64](bytes.NewReader(body))
	require.NoError(t, err)
	got := make([]int64, len(values))
	require.NoError(t, dec.decodeValues(got))
	assert.Equal(t, values, got)
}

func TestDeltaBitPackConstantValues(t *testing.T) {
	values := make([]int32, defaultBlockSize+1)
	for i := range values {
		values[i] = 9
	}
	assert.Equal(t, values, deltaBitPackRoundTripInt32(t, values))
}

func TestDeltaBitPackDecoderRejectsBadBlockSize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUVariant(&buf, 100)) // not a multiple of 128
	require.NoError(t, writeUVariant(&buf, 4))
	require.NoError(t, writeUVariant(&buf, 0))
	require.NoError(t, writeVariant(&buf, 0))
	_, err := newDeltaBitPackDecoder[int32](bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}
