package goparquet

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func i32le(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

func TestBuildColumnIndexAscending(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(10), NullCount: 0},
		{MinValue: i32le(11), MaxValue: i32le(20), NullCount: 1},
		{MinValue: i32le(21), MaxValue: i32le(30), NullCount: 0},
	}
	idx := BuildColumnIndex(parquet.Type_INT32, pages)
	assert.Equal(t, parquet.BoundaryOrder_ASCENDING, idx.BoundaryOrder)
	assert.Equal(t, []bool{false, false, false}, idx.NullPages)
	assert.Equal(t, []int64{0, 1, 0}, idx.NullCounts)
}

func TestBuildColumnIndexDescending(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(21), MaxValue: i32le(30)},
		{MinValue: i32le(11), MaxValue: i32le(20)},
		{MinValue: i32le(0), MaxValue: i32le(10)},
	}
	idx := BuildColumnIndex(parquet.Type_INT32, pages)
	assert.Equal(t, parquet.BoundaryOrder_DESCENDING, idx.BoundaryOrder)
}

func TestBuildColumnIndexUnordered(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(10)},
		{MinValue: i32le(100), MaxValue: i32le(200)},
		{MinValue: i32le(5), MaxValue: i32le(15)},
	}
	idx := BuildColumnIndex(parquet.Type_INT32, pages)
	assert.Equal(t, parquet.BoundaryOrder_UNORDERED, idx.BoundaryOrder)
}

func TestBuildColumnIndexSkipsNullPagesForOrdering(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(10)},
		{IsNullPage: true},
		{MinValue: i32le(11), MaxValue: i32le(20)},
	}
	idx := BuildColumnIndex(parquet.Type_INT32, pages)
	assert.Equal(t, parquet.BoundaryOrder_ASCENDING, idx.BoundaryOrder)
	assert.Equal(t, []bool{false, true, false}, idx.NullPages)
}

func TestBuildOffsetIndex(t *testing.T) {
	pages := []PageStat{
		{Offset: 100, CompressedLen: 50, FirstRowIndex: 0},
		{Offset: 150, CompressedLen: 60, FirstRowIndex: 10},
	}
	idx := BuildOffsetIndex(pages)
	require.Len(t, idx.PageLocations, 2)
	assert.Equal(t, int64(100), idx.PageLocations[0].Offset)
	assert.Equal(t, int32(50), idx.PageLocations[0].CompressedPageSize)
	assert.Equal(t, int64(10), idx.PageLocations[1].FirstRowIndex)
}

// S6: with a predicate rejecting pages whose max is <= 100, a sparse
// selection should only return the pages that can contain a match, letting
// the reader skip whole byte ranges without decoding them.
func TestSelectPagesScenarioS6Sparse(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(50), Offset: 0, CompressedLen: 100, FirstRowIndex: 0},
		{MinValue: i32le(60), MaxValue: i32le(90), Offset: 100, CompressedLen: 100, FirstRowIndex: 100},
		{MinValue: i32le(95), MaxValue: i32le(150), Offset: 200, CompressedLen: 100, FirstRowIndex: 200},
		{MinValue: i32le(200), MaxValue: i32le(300), Offset: 300, CompressedLen: 100, FirstRowIndex: 300},
	}
	colIdx := BuildColumnIndex(parquet.Type_INT32, pages)
	offIdx := BuildOffsetIndex(pages)

	predicate := func(min, max []byte, nullPage bool, nullCount int64) bool {
		if nullPage {
			return false
		}
		maxV := int32(binary.LittleEndian.Uint32(max))
		return maxV > 100
	}

	filtered, err := SelectPages(colIdx, offIdx, 400, predicate)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, int64(200), filtered[0].Start)
	assert.Equal(t, int64(200), filtered[0].FirstRow)
	assert.Equal(t, int64(100), filtered[0].RowCount)
	assert.Equal(t, int64(300), filtered[1].Start)
	assert.Equal(t, int64(100), filtered[1].RowCount)
}

// Property 8: translating each FilteredPage's SelectedRows interval to an
// absolute row offset via FirstRow yields a strictly increasing sequence
// bounded by the row group's total row count.
func TestSelectPagesSelectedRowsStrictlyIncreasing(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(10), Offset: 0, CompressedLen: 10, FirstRowIndex: 0},
		{MinValue: i32le(11), MaxValue: i32le(20), Offset: 10, CompressedLen: 10, FirstRowIndex: 5},
		{MinValue: i32le(21), MaxValue: i32le(30), Offset: 20, CompressedLen: 10, FirstRowIndex: 12},
	}
	colIdx := BuildColumnIndex(parquet.Type_INT32, pages)
	offIdx := BuildOffsetIndex(pages)

	acceptAll := func(min, max []byte, nullPage bool, nullCount int64) bool { return true }
	filtered, err := SelectPages(colIdx, offIdx, 20, acceptAll)
	require.NoError(t, err)
	require.Len(t, filtered, 3)

	var prevEnd int64 = -1
	for _, fp := range filtered {
		require.Len(t, fp.SelectedRows, 1)
		start := fp.FirstRow + fp.SelectedRows[0].Start
		end := fp.FirstRow + fp.SelectedRows[0].End
		assert.Greater(t, end, start)
		assert.GreaterOrEqual(t, start, prevEnd)
		assert.LessOrEqual(t, end, int64(20))
		prevEnd = end
	}
}

func TestSelectPagesRejectsMismatchedLengths(t *testing.T) {
	colIdx := &parquet.ColumnIndex{NullPages: []bool{false, false}}
	offIdx := &parquet.OffsetIndex{PageLocations: []*parquet.PageLocation{{}}}
	_, err := SelectPages(colIdx, offIdx, 10, func([]byte, []byte, bool, int64) bool { return true })
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, OutOfSpec, kind)
}

func TestSelectPagesNoneMatch(t *testing.T) {
	pages := []PageStat{
		{MinValue: i32le(0), MaxValue: i32le(10), FirstRowIndex: 0},
	}
	colIdx := BuildColumnIndex(parquet.Type_INT32, pages)
	offIdx := BuildOffsetIndex(pages)
	rejectAll := func([]byte, []byte, bool, int64) bool { return false }
	filtered, err := SelectPages(colIdx, offIdx, 5, rejectAll)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
