package goparquet

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// rleRunThreshold is the minimum run length the encoder will spend an RLE
// header on. Shorter repeats are cheaper to leave in the bit-packed stream.
const rleRunThreshold = 8

// hybridRLEEncoder implements the run-length/bit-packed hybrid used for
// repetition levels, definition levels and dictionary indices: a sequence
// of runs, each either an RLE run (a repeated value) or a bit-packed run
// (8*k literal values). The teacher's encoder only ever emitted bit-packed
// runs; runs of identical values are common in definition-level streams
// (whole pages of non-null values decode to one repeated max-def-level),
// so this one also detects and emits true RLE runs.
type hybridRLEEncoder struct {
	bitWidth int
	buf      bytes.Buffer

	pending []uint64 // buffered literal values not yet flushed as a bit-packed run
}

func newHybridRLEEncoder(bitWidth int) *hybridRLEEncoder {
	return &hybridRLEEncoder{bitWidth: bitWidth}
}

// encode appends values to the run stream. It may be called repeatedly;
// call close when done to flush any partial trailing bit-packed run.
func (e *hybridRLEEncoder) encode(values []uint64) error {
	i := 0
	for i < len(values) {
		j := i + 1
		for j < len(values) && values[j] == values[i] {
			j++
		}
		runLen := j - i
		if runLen >= rleRunThreshold && len(e.pending)%8 == 0 {
			if err := e.flushBitpacked(false); err != nil {
				return err
			}
			if err := e.writeRLERun(values[i], runLen); err != nil {
				return err
			}
		} else {
			for k := 0; k < runLen; k++ {
				e.pending = append(e.pending, values[i])
			}
		}
		i = j
	}
	return nil
}

func (e *hybridRLEEncoder) writeRLERun(value uint64, count int) error {
	header := uint64(count) << 1
	if err := writeUVariant(&e.buf, header); err != nil {
		return err
	}
	width := (e.bitWidth + 7) / 8
	valBuf := make([]byte, width)
	for i := 0; i < width; i++ {
		valBuf[i] = byte(value >> uint(8*i))
	}
	return writeFull(&e.buf, valBuf)
}

// flushBitpacked writes e.pending as one bit-packed run. If final is false,
// e.pending must already be a multiple of 8 in length (the caller only
// takes an RLE run when that holds). If final is true, it is zero-padded
// up to a multiple of 8, per §4.4's padding rule.
func (e *hybridRLEEncoder) flushBitpacked(final bool) error {
	if len(e.pending) == 0 {
		return nil
	}
	if final {
		for len(e.pending)%8 != 0 {
			e.pending = append(e.pending, 0)
		}
	} else if len(e.pending)%8 != 0 {
		return errors.New("hybrid rle: internal error, non-final bitpacked flush not 8-aligned")
	}
	groups := len(e.pending) / 8
	header := uint64(groups)<<1 | 1
	if err := writeUVariant(&e.buf, header); err != nil {
		return err
	}
	if e.bitWidth > 0 {
		if err := bitpackWrite(&e.buf, e.bitWidth, e.pending); err != nil {
			return err
		}
	}
	e.pending = e.pending[:0]
	return nil
}

// close flushes any trailing partial bit-packed run and returns the
// complete encoded stream. No further calls to encode are valid after this.
func (e *hybridRLEEncoder) close() ([]byte, error) {
	if err := e.flushBitpacked(true); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// hybridRLEDecoder reads a hybrid RLE/bit-packed stream lazily, run by run.
type hybridRLEDecoder struct {
	r        io.Reader
	bitWidth int

	runValue    uint64
	runRemain   int
	isRLE       bool
	bitpackBuf  []uint64
	bitpackPos  int
}

func newHybridRLEDecoder(r io.Reader, bitWidth int) *hybridRLEDecoder {
	return &hybridRLEDecoder{r: r, bitWidth: bitWidth}
}

func (d *hybridRLEDecoder) fillRun() error {
	header, err := readUVariant(d.r)
	if err != nil {
		return err
	}
	if header&1 == 0 {
		d.isRLE = true
		d.runRemain = int(header >> 1)
		width := (d.bitWidth + 7) / 8
		buf := make([]byte, width)
		if width > 0 {
			if _, err := io.ReadFull(d.r, buf); err != nil {
				return err
			}
		}
		var v uint64
		for i := 0; i < width; i++ {
			v |= uint64(buf[i]) << uint(8*i)
		}
		d.runValue = v
		return nil
	}
	groups := int(header >> 1)
	d.isRLE = false
	if d.bitWidth == 0 {
		d.bitpackBuf = make([]uint64, groups*8)
	} else {
		vals, err := bitpackRead(d.r, d.bitWidth, groups)
		if err != nil {
			return err
		}
		d.bitpackBuf = vals
	}
	d.bitpackPos = 0
	return nil
}

// next returns the next decoded value. It returns io.EOF once the
// underlying stream is exhausted; callers must stop pulling once they have
// received the externally-known total value count, since trailing padding
// in the final bit-packed run is not distinguishable from a real value.
func (d *hybridRLEDecoder) next() (uint64, error) {
	for {
		if d.isRLE && d.runRemain > 0 {
			d.runRemain--
			return d.runValue, nil
		}
		if !d.isRLE && d.bitpackPos < len(d.bitpackBuf) {
			v := d.bitpackBuf[d.bitpackPos]
			d.bitpackPos++
			return v, nil
		}
		if err := d.fillRun(); err != nil {
			return 0, err
		}
	}
}

// decodeValues fills dst with exactly len(dst) values, the caller-known
// count that stops reads before any run padding is reached.
func (d *hybridRLEDecoder) decodeValues(dst []uint64) error {
	for i := range dst {
		v, err := d.next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}
