package goparquet

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestBloomBlockCountPowerOfTwo(t *testing.T) {
	for _, n := range []int{0, 1, 10, 100, 1000, 10000} {
		blocks := bloomBlockCount(n)
		assert.GreaterOrEqual(t, blocks, 1)
		assert.Equal(t, blocks&(blocks-1), 0, "n=%d blocks=%d not a power of two", n, blocks)
	}
}

func TestCanonicalBloomBytesStripsByteArrayLengthPrefix(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_BYTE_ARRAY}
	raw := joinByteArrays([][]byte{[]byte("hello")})
	got := canonicalBloomBytes(col, raw)
	assert.Equal(t, []byte("hello"), got)
}

func TestCanonicalBloomBytesPassesThroughFixedWidth(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_INT32}
	raw := rawInt32(42)
	assert.Equal(t, raw, canonicalBloomBytes(col, raw))
}

// Property 7 (negative authority): MayContain must never return false for a
// value that was actually inserted (no false negatives); a false result is
// therefore authoritative proof of non-membership.
func TestBloomFilterAllInsertedValuesFound(t *testing.T) {
	f := NewBloomFilter(200)
	values := make([]int32, 200)
	for i := range values {
		values[i] = int32(i * 3)
		f.Insert(rawInt32(values[i]))
	}
	for _, v := range values {
		assert.True(t, f.MayContain(rawInt32(v)))
	}
}

// Property 7 (FPR bound): with a filter sized for the actual entry count,
// the false-positive rate over values known not to be members should stay
// comfortably under a loose bound (well above the ~1% design target, to
// keep the test robust rather than tight).
func TestBloomFilterFalsePositiveRateBound(t *testing.T) {
	const n = 5000
	f := NewBloomFilter(n)
	inserted := make(map[int32]bool, n)
	for i := int32(0); i < n; i++ {
		v := i * 2 // even numbers
		f.Insert(rawInt32(v))
		inserted[v] = true
	}

	falsePositives := 0
	trials := 5000
	for i := int32(0); i < int32(trials); i++ {
		v := i*2 + 1 // odd numbers, disjoint from the inserted set
		if f.MayContain(rawInt32(v)) {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / float64(trials)
	assert.Less(t, rate, 0.05, "false positive rate %f too high", rate)
}

func TestBloomFilterBytesRoundTrip(t *testing.T) {
	f := NewBloomFilter(64)
	f.Insert(rawInt32(1))
	f.Insert(rawInt32(2))
	f.Insert(rawInt32(3))

	got, err := bloomFilterFromBytes(f.Bytes())
	require.NoError(t, err)
	assert.Equal(t, f.NumBlocks(), got.NumBlocks())
	assert.True(t, got.MayContain(rawInt32(1)))
	assert.True(t, got.MayContain(rawInt32(2)))
	assert.True(t, got.MayContain(rawInt32(3)))
}

func TestBloomFilterFromBytesRejectsBadLength(t *testing.T) {
	_, err := bloomFilterFromBytes(make([]byte, 31))
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func TestBloomFilterSidecarRoundTrip(t *testing.T) {
	f := NewBloomFilter(128)
	for i := int32(0); i < 50; i++ {
		f.Insert(rawInt32(i))
	}

	var buf bytes.Buffer
	ctx := context.Background()
	n, err := WriteBloomFilterSidecar(ctx, &buf, f)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, err := ReadBloomFilterSidecar(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, f.NumBlocks(), got.NumBlocks())
	for i := int32(0); i < 50; i++ {
		assert.True(t, got.MayContain(rawInt32(i)))
	}
}

func TestBuildBloomFilterFromRawValues(t *testing.T) {
	col := &ColumnDescriptor{PhysicalType: parquet.Type_INT32}
	var values [][]byte
	for i := int32(0); i < 20; i++ {
		values = append(values, rawInt32(i))
	}
	f := BuildBloomFilter(col, values)
	for i := int32(0); i < 20; i++ {
		assert.True(t, f.MayContain(canonicalBloomBytes(col, rawInt32(i))))
	}
}

func TestMaskProducesEightDistinctBitsUsually(t *testing.T) {
	m := mask(0x9e3779b9)
	var bits uint32
	for _, w := range m {
		assert.True(t, w != 0 && w&(w-1) == 0, "each word sets exactly one bit, got %08x", w)
		bits |= w
	}
	assert.NotZero(t, bits)
}

func TestBlockIndexWithinRange(t *testing.T) {
	for _, h := range []uint64{0, 1, 1 << 40, ^uint64(0)} {
		idx := blockIndex(h, 16)
		assert.Less(t, idx, uint64(16))
	}
}
