package goparquet

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// deltaInt is the set of physical types the delta-bitpacked encoding
// applies to (§4.4).
type deltaInt interface {
	~int32 | ~int64
}

const (
	defaultBlockSize      = 128
	defaultMiniBlockCount = 4 // miniBlockValueCount = 128/4 = 32, per spec.md's example
)

// deltaBitPackEncoder implements the delta-bitpacked integer encoding:
// block header (block_size, miniblocks_per_block, total_value_count,
// zigzag(first_value)), then repeated blocks of
// (zigzag(min_delta), per-miniblock bit widths, packed miniblocks).
type deltaBitPackEncoder[T deltaInt] struct {
	blockSize      int
	miniBlockCount int
	miniBlockSize  int

	firstValue    T
	previousValue T
	haveFirst     bool
	valuesCount   int

	deltas []T
	body   bytes.Buffer
}

func newDeltaBitPackEncoder[T deltaInt]() *deltaBitPackEncoder[T] {
	return &deltaBitPackEncoder[T]{
		blockSize:      defaultBlockSize,
		miniBlockCount: defaultMiniBlockCount,
		miniBlockSize:  defaultBlockSize / defaultMiniBlockCount,
	}
}

func (e *deltaBitPackEncoder[T]) addValue(v T) error {
	e.valuesCount++
	if !e.haveFirst {
		e.haveFirst = true
		e.firstValue = v
		e.previousValue = v
		return nil
	}
	e.deltas = append(e.deltas, v-e.previousValue)
	e.previousValue = v
	if len(e.deltas) == e.blockSize {
		return e.flushBlock()
	}
	return nil
}

// flushBlock writes one block's worth of deltas, padding the final short
// block up to a miniblock boundary as required by §4.4.
func (e *deltaBitPackEncoder[T]) flushBlock() error {
	if len(e.deltas) == 0 {
		return nil
	}
	minDelta := e.deltas[0]
	for _, d := range e.deltas[1:] {
		if d < minDelta {
			minDelta = d
		}
	}
	for len(e.deltas)%e.miniBlockSize != 0 {
		e.deltas = append(e.deltas, minDelta) // pads to a zero relative delta
	}
	if err := writeVariant(&e.body, int64(minDelta)); err != nil {
		return err
	}
	bitWidths := make([]byte, e.miniBlockCount)
	miniblocks := make([][]uint64, e.miniBlockCount)
	for mb := 0; mb < e.miniBlockCount; mb++ {
		start := mb * e.miniBlockSize
		if start >= len(e.deltas) {
			bitWidths[mb] = 0
			continue
		}
		relative := make([]uint64, e.miniBlockSize)
		var max uint64
		for i := 0; i < e.miniBlockSize; i++ {
			rel := uint64(e.deltas[start+i] - minDelta)
			relative[i] = rel
			if rel > max {
				max = rel
			}
		}
		bitWidths[mb] = byte(bitWidthForMax(max))
		miniblocks[mb] = relative
	}
	if err := writeFull(&e.body, bitWidths); err != nil {
		return err
	}
	for mb, rel := range miniblocks {
		if rel == nil {
			continue
		}
		if err := bitpackWrite(&e.body, int(bitWidths[mb]), rel); err != nil {
			return err
		}
	}
	e.deltas = e.deltas[:0]
	return nil
}

// close finalizes the stream and returns the full encoded bytes.
func (e *deltaBitPackEncoder[T]) close() ([]byte, error) {
	if err := e.flushBlock(); err != nil {
		return nil, err
	}
	var header bytes.Buffer
	if err := writeUVariant(&header, uint64(e.blockSize)); err != nil {
		return nil, err
	}
	if err := writeUVariant(&header, uint64(e.miniBlockCount)); err != nil {
		return nil, err
	}
	if err := writeUVariant(&header, uint64(e.valuesCount)); err != nil {
		return nil, err
	}
	if err := writeVariant(&header, int64(e.firstValue)); err != nil {
		return nil, err
	}
	if _, err := header.Write(e.body.Bytes()); err != nil {
		return nil, err
	}
	return header.Bytes(), nil
}

// deltaBitPackDecoder is the inverse of deltaBitPackEncoder.
type deltaBitPackDecoder[T deltaInt] struct {
	r io.Reader

	blockSize      int32
	miniBlockCount int32
	miniBlockSize  int32
	totalCount     int32

	produced int32
	previous T

	minDelta       T
	miniBlockWidth []byte
	miniIndex      int32

	current    []uint64
	currentPos int32
}

func newDeltaBitPackDecoder[T deltaInt](r io.Reader) (*deltaBitPackDecoder[T], error) {
	d := &deltaBitPackDecoder[T]{r: r}
	bs, err := readUVariant32(r)
	if err != nil {
		return nil, errors.Wrap(err, "delta bitpack: block size")
	}
	if bs <= 0 || bs%128 != 0 {
		return nil, errors.Errorf("delta bitpack: invalid block size %d", bs)
	}
	d.blockSize = bs
	mb, err := readUVariant32(r)
	if err != nil {
		return nil, errors.Wrap(err, "delta bitpack: miniblock count")
	}
	if mb <= 0 || d.blockSize%mb != 0 {
		return nil, errors.Errorf("delta bitpack: invalid miniblock count %d", mb)
	}
	d.miniBlockCount = mb
	d.miniBlockSize = d.blockSize / d.miniBlockCount
	if d.miniBlockSize%32 != 0 && d.miniBlockSize%8 != 0 {
		return nil, errors.Errorf("delta bitpack: invalid miniblock size %d", d.miniBlockSize)
	}
	tc, err := readUVariant32(r)
	if err != nil {
		return nil, errors.Wrap(err, "delta bitpack: total value count")
	}
	d.totalCount = tc
	fv, err := readVariant(r)
	if err != nil {
		return nil, errors.Wrap(err, "delta bitpack: first value")
	}
	d.previous = T(fv)
	d.miniIndex = d.miniBlockCount // force reading a block header on first next()
	return d, nil
}

func (d *deltaBitPackDecoder[T]) readBlockHeader() error {
	md, err := readVariant(d.r)
	if err != nil {
		return errors.Wrap(err, "delta bitpack: min delta")
	}
	d.minDelta = T(md)
	d.miniBlockWidth = make([]byte, d.miniBlockCount)
	if _, err := io.ReadFull(d.r, d.miniBlockWidth); err != nil {
		return errors.Wrap(err, "delta bitpack: miniblock widths")
	}
	maxWidth := 32
	if any(T(0)) == any(int64(0)) {
		maxWidth = 64
	}
	for _, w := range d.miniBlockWidth {
		if int(w) > maxWidth {
			return errors.Errorf("delta bitpack: invalid miniblock width %d", w)
		}
	}
	d.miniIndex = 0
	return nil
}

func (d *deltaBitPackDecoder[T]) readMiniBlock() error {
	if d.miniIndex >= d.miniBlockCount {
		if err := d.readBlockHeader(); err != nil {
			return err
		}
	}
	width := int(d.miniBlockWidth[d.miniIndex])
	groups := int(d.miniBlockSize) / 8
	vals, err := bitpackRead(d.r, width, groups)
	if err != nil {
		return errors.Wrap(err, "delta bitpack: miniblock body")
	}
	d.current = vals
	d.currentPos = 0
	d.miniIndex++
	return nil
}

// next returns the next decoded value, or io.EOF once totalCount values
// have been produced.
func (d *deltaBitPackDecoder[T]) next() (T, error) {
	if d.produced >= d.totalCount {
		return 0, io.EOF
	}
	if d.produced == 0 {
		d.produced++
		return d.previous, nil
	}
	if d.current == nil || d.currentPos >= int32(len(d.current)) {
		if err := d.readMiniBlock(); err != nil {
			return 0, err
		}
	}
	rel := d.current[d.currentPos]
	d.currentPos++
	delta := d.minDelta + T(rel)
	d.previous += delta
	d.produced++
	return d.previous, nil
}

func (d *deltaBitPackDecoder[T]) decodeValues(dst []T) error {
	for i := range dst {
		v, err := d.next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
