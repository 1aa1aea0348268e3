package goparquet

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack8(t *testing.T) {
	for bitWidth := 0; bitWidth <= 32; bitWidth++ {
		var values [8]uint64
		max := uint64(1)<<uint(bitWidth) - 1
		if bitWidth == 0 {
			max = 0
		}
		for i := range values {
			if max == 0 {
				values[i] = 0
			} else {
				values[i] = uint64(rand.Int63()) & max
			}
		}
		packed := pack8(values, bitWidth)
		assert.Len(t, packed, bitWidth)
		got := unpack8(packed, bitWidth)
		assert.Equal(t, values, got)
	}
}

func TestBitpackWriteReadRoundTrip(t *testing.T) {
	for _, bitWidth := range []int{0, 1, 3, 7, 8, 13, 32} {
		max := uint64(1)<<uint(bitWidth) - 1
		if bitWidth == 0 {
			max = 0
		}
		data := make([]uint64, 8*17)
		for i := range data {
			if max == 0 {
				data[i] = 0
			} else {
				data[i] = uint64(rand.Int63()) & max
			}
		}
		var buf bytes.Buffer
		require.NoError(t, bitpackWrite(&buf, bitWidth, data))
		got, err := bitpackRead(&buf, bitWidth, len(data)/8)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestBitpackWriteRejectsNonMultipleOf8(t *testing.T) {
	err := bitpackWrite(&bytes.Buffer{}, 3, make([]uint64, 5))
	assert.Error(t, err)
}

func TestBitWidthForMax(t *testing.T) {
	cases := []struct {
		max  uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{255, 8},
		{256, 9},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, bitWidthForMax(c.max), "max=%d", c.max)
	}
}
