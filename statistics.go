package goparquet

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pqcore/parquet-core/parquet"
)

// statAccumulator is a per-leaf-type reducer with an identity element and a
// binary merge, so a column chunk's statistics are a fold over its pages'
// statistics (§9's "statistics reducer" design note).
type statAccumulator interface {
	observe(raw []byte)
	merge(other statAccumulator)
	nullCount() int64
	addNulls(n int64)
	min() []byte
	max() []byte
	empty() bool
}

// byteOrderStats compares values in their raw little-endian encoding using
// the type-specific comparator supplied by cmp (signed integer, float,
// boolean, or INT96 decoded instant); it serves BOOLEAN, INT32, INT64,
// INT96, FLOAT and DOUBLE.
type byteOrderStats struct {
	cmp        func(a, b []byte) int
	minB, maxB []byte
	nulls      int64
	has        bool
}

func (s *byteOrderStats) observe(raw []byte) {
	if !s.has {
		s.minB, s.maxB = append([]byte{}, raw...), append([]byte{}, raw...)
		s.has = true
		return
	}
	if s.cmp(raw, s.minB) < 0 {
		s.minB = append([]byte{}, raw...)
	}
	if s.cmp(raw, s.maxB) > 0 {
		s.maxB = append([]byte{}, raw...)
	}
}

func (s *byteOrderStats) merge(other statAccumulator) {
	o, ok := other.(*byteOrderStats)
	if !ok || !o.has {
		return
	}
	s.nulls += 0 // nulls merged separately via addNulls at call sites
	if !s.has {
		s.minB, s.maxB, s.has = o.minB, o.maxB, true
		return
	}
	if s.cmp(o.minB, s.minB) < 0 {
		s.minB = o.minB
	}
	if s.cmp(o.maxB, s.maxB) > 0 {
		s.maxB = o.maxB
	}
}

func (s *byteOrderStats) nullCount() int64    { return s.nulls }
func (s *byteOrderStats) addNulls(n int64)    { s.nulls += n }
func (s *byteOrderStats) min() []byte         { return s.minB }
func (s *byteOrderStats) max() []byte         { return s.maxB }
func (s *byteOrderStats) empty() bool         { return !s.has }

func cmpInt32(a, b []byte) int {
	x := int32(binary.LittleEndian.Uint32(a))
	y := int32(binary.LittleEndian.Uint32(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b []byte) int {
	x := int64(binary.LittleEndian.Uint64(a))
	y := int64(binary.LittleEndian.Uint64(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpFloat32(a, b []byte) int {
	x := math.Float32frombits(binary.LittleEndian.Uint32(a))
	y := math.Float32frombits(binary.LittleEndian.Uint32(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b []byte) int {
	x := math.Float64frombits(binary.LittleEndian.Uint64(a))
	y := math.Float64frombits(binary.LittleEndian.Uint64(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpBoolean(a, b []byte) int {
	switch {
	case a[0] == b[0]:
		return 0
	case a[0] == 0:
		return -1
	default:
		return 1
	}
}

// cmpInt96 orders legacy INT96 timestamp values by their decoded instant
// rather than by raw byte pattern: the format's Julian-day/nanos-of-day
// split does not sort correctly as a byte string, so min/max over raw
// bytes would be meaningless (see Int96ToTime in int96_time.go).
func cmpInt96(a, b []byte) int {
	var av, bv [12]byte
	copy(av[:], a)
	copy(bv[:], b)
	ta, tb := Int96ToTime(av), Int96ToTime(bv)
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// byteArrayStats reduces ByteArray/FixedLenByteArray leaves; for UTF8
// / ENUM / JSON logical types the byte-lexicographic order used here also
// happens to be the correct string order, matching the format's own
// definition of string min/max.
type byteArrayStats struct {
	minB, maxB []byte
	nulls      int64
	has        bool
}

func (s *byteArrayStats) observe(raw []byte) {
	if !s.has {
		s.minB, s.maxB = append([]byte{}, raw...), append([]byte{}, raw...)
		s.has = true
		return
	}
	if bytes.Compare(raw, s.minB) < 0 {
		s.minB = append([]byte{}, raw...)
	}
	if bytes.Compare(raw, s.maxB) > 0 {
		s.maxB = append([]byte{}, raw...)
	}
}

func (s *byteArrayStats) merge(other statAccumulator) {
	o, ok := other.(*byteArrayStats)
	if !ok || !o.has {
		return
	}
	if !s.has {
		s.minB, s.maxB, s.has = o.minB, o.maxB, true
		return
	}
	if bytes.Compare(o.minB, s.minB) < 0 {
		s.minB = o.minB
	}
	if bytes.Compare(o.maxB, s.maxB) > 0 {
		s.maxB = o.maxB
	}
}

func (s *byteArrayStats) nullCount() int64 { return s.nulls }
func (s *byteArrayStats) addNulls(n int64) { s.nulls += n }
func (s *byteArrayStats) min() []byte      { return s.minB }
func (s *byteArrayStats) max() []byte      { return s.maxB }
func (s *byteArrayStats) empty() bool      { return !s.has }

// rawCompare orders two raw-shape values (raw_values.go) the same way the
// matching statAccumulator would, for callers (column_index.go) that need
// a one-off comparison without building a full accumulator.
func rawCompare(physType parquet.Type, a, b []byte) int {
	switch physType {
	case parquet.Type_INT32:
		return cmpInt32(a, b)
	case parquet.Type_INT64:
		return cmpInt64(a, b)
	case parquet.Type_FLOAT:
		return cmpFloat32(a, b)
	case parquet.Type_DOUBLE:
		return cmpFloat64(a, b)
	case parquet.Type_BOOLEAN:
		return cmpBoolean(a, b)
	case parquet.Type_INT96:
		return cmpInt96(a, b)
	default:
		return bytes.Compare(a, b)
	}
}

// newStatAccumulator picks the reducer strategy for a leaf's physical type.
func newStatAccumulator(physType parquet.Type) statAccumulator {
	switch physType {
	case parquet.Type_INT32:
		return &byteOrderStats{cmp: cmpInt32}
	case parquet.Type_INT64:
		return &byteOrderStats{cmp: cmpInt64}
	case parquet.Type_FLOAT:
		return &byteOrderStats{cmp: cmpFloat32}
	case parquet.Type_DOUBLE:
		return &byteOrderStats{cmp: cmpFloat64}
	case parquet.Type_BOOLEAN:
		return &byteOrderStats{cmp: cmpBoolean}
	case parquet.Type_INT96:
		return &byteOrderStats{cmp: cmpInt96}
	default:
		return &byteArrayStats{}
	}
}

// toThrift renders the accumulator as a parquet.Statistics; nil min/max
// fields are omitted (an all-null column chunk has none).
func toThrift(acc statAccumulator, distinctCount *int64) *parquet.Statistics {
	nulls := acc.nullCount()
	st := &parquet.Statistics{NullCount: &nulls, DistinctCount: distinctCount}
	if !acc.empty() {
		st.MinValue, st.MaxValue = acc.min(), acc.max()
		st.Min, st.Max = acc.min(), acc.max()
	}
	return st
}
