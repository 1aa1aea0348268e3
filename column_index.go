package goparquet

import "github.com/pqcore/parquet-core/parquet"

// PageStat is one page's contribution to a column chunk's ColumnIndex:
// its statistics plus the file location an OffsetIndex entry needs.
type PageStat struct {
	MinValue      []byte
	MaxValue      []byte
	NullCount     int64
	IsNullPage    bool
	Offset        int64
	CompressedLen int32
	FirstRowIndex int64
}

// BuildColumnIndex reduces one column chunk's per-page stats into the
// ColumnIndex sidecar, choosing whichever BoundaryOrder actually holds
// across the page mins/maxes (§4.6, §3). A chunk with any page missing
// usable min/max bounds (all-null pages aside) cannot produce a valid
// index; callers should skip writing one in that case.
func BuildColumnIndex(physType parquet.Type, pages []PageStat) *parquet.ColumnIndex {
	idx := &parquet.ColumnIndex{
		NullPages:  make([]bool, len(pages)),
		MinValues:  make([][]byte, len(pages)),
		MaxValues:  make([][]byte, len(pages)),
		NullCounts: make([]int64, len(pages)),
	}
	for i, p := range pages {
		idx.NullPages[i] = p.IsNullPage
		idx.MinValues[i] = p.MinValue
		idx.MaxValues[i] = p.MaxValue
		idx.NullCounts[i] = p.NullCount
	}
	idx.BoundaryOrder = boundaryOrderOf(physType, pages)
	return idx
}

// boundaryOrderOf reports whether the non-null pages' [min,max] ranges are
// monotonically ascending, descending, or neither, skipping null pages
// since they carry no bound to compare.
func boundaryOrderOf(physType parquet.Type, pages []PageStat) parquet.BoundaryOrder {
	var prevMin, prevMax []byte
	have := false
	ascending, descending := true, true
	for _, p := range pages {
		if p.IsNullPage {
			continue
		}
		if have {
			if rawCompare(physType, p.MinValue, prevMax) < 0 {
				ascending = false
			}
			if rawCompare(physType, p.MaxValue, prevMin) > 0 {
				descending = false
			}
		}
		prevMin, prevMax = p.MinValue, p.MaxValue
		have = true
	}
	switch {
	case !have:
		return parquet.BoundaryOrder_UNORDERED
	case ascending && descending:
		// a single distinct value everywhere is trivially both; report
		// ascending, matching how the reference implementations do.
		return parquet.BoundaryOrder_ASCENDING
	case ascending:
		return parquet.BoundaryOrder_ASCENDING
	case descending:
		return parquet.BoundaryOrder_DESCENDING
	default:
		return parquet.BoundaryOrder_UNORDERED
	}
}

// BuildOffsetIndex wraps a column chunk's page locations into the
// OffsetIndex sidecar shape.
func BuildOffsetIndex(pages []PageStat) *parquet.OffsetIndex {
	locs := make([]*parquet.PageLocation, len(pages))
	for i, p := range pages {
		locs[i] = &parquet.PageLocation{
			Offset:             p.Offset,
			CompressedPageSize: p.CompressedLen,
			FirstRowIndex:      p.FirstRowIndex,
		}
	}
	return &parquet.OffsetIndex{PageLocations: locs}
}

// Interval is a half-open [Start, End) row range within one page, in the
// page's own row numbering (0 is the page's first row).
type Interval struct {
	Start, End int64
}

// FilteredPage names one page a predicate accepted, its byte range in the
// chunk, its first row's index within the row group, and which of its
// rows the predicate actually wants (§4.6). Since the predicate only ever
// sees a page's own min/max/null summary, not its individual rows,
// SelectedRows is always the page's whole span [0, RowCount) here; a
// caller wanting row-level pruning must still decode the page and filter.
type FilteredPage struct {
	Start        int64
	Length       int32
	FirstRow     int64
	RowCount     int64
	SelectedRows []Interval
}

// PagePredicate reports, from a page's column index summary alone, whether
// the page may hold matching rows; SelectPages keeps the pages for which it
// returns true and skips the rest.
type PagePredicate func(min, max []byte, nullPage bool, nullCount int64) bool

// SelectPages evaluates predicate against every page named by columnIndex
// and offsetIndex and returns the ones it accepts, in file order. totalRows
// is the column chunk's row count, needed to derive the last page's row
// count since OffsetIndex only records where each page starts.
func SelectPages(columnIndex *parquet.ColumnIndex, offsetIndex *parquet.OffsetIndex, totalRows int64, predicate PagePredicate) ([]FilteredPage, error) {
	n := len(offsetIndex.PageLocations)
	if len(columnIndex.NullPages) != n {
		return nil, newError(OutOfSpec, "column index / offset index length mismatch: %d/%d",
			len(columnIndex.NullPages), n)
	}
	rowCounts := rowCountsFromOffsetIndex(offsetIndex, totalRows)
	var out []FilteredPage
	for i := 0; i < n; i++ {
		nullPage := columnIndex.NullPages[i]
		var min, max []byte
		if i < len(columnIndex.MinValues) {
			min = columnIndex.MinValues[i]
		}
		if i < len(columnIndex.MaxValues) {
			max = columnIndex.MaxValues[i]
		}
		var nullCount int64
		if i < len(columnIndex.NullCounts) {
			nullCount = columnIndex.NullCounts[i]
		}
		if !predicate(min, max, nullPage, nullCount) {
			continue
		}
		loc := offsetIndex.PageLocations[i]
		out = append(out, FilteredPage{
			Start:        loc.Offset,
			Length:       loc.CompressedPageSize,
			FirstRow:     loc.FirstRowIndex,
			RowCount:     rowCounts[i],
			SelectedRows: []Interval{{Start: 0, End: rowCounts[i]}},
		})
	}
	return out, nil
}

// rowCountsFromOffsetIndex derives each page's row count from consecutive
// FirstRowIndex entries and the chunk's total row count, since OffsetIndex
// itself only records where each page starts.
func rowCountsFromOffsetIndex(offsetIndex *parquet.OffsetIndex, totalRows int64) []int64 {
	locs := offsetIndex.PageLocations
	counts := make([]int64, len(locs))
	for i, loc := range locs {
		next := totalRows
		if i+1 < len(locs) {
			next = locs[i+1].FirstRowIndex
		}
		counts[i] = next - loc.FirstRowIndex
	}
	return counts
}
