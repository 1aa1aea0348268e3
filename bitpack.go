package goparquet

import (
	"io"

	"github.com/pkg/errors"
)

// packed is a width-parameterized replacement for the teacher's table of
// one pack/unpack function per bit width (0..32): the loop below is the
// same LSB-first, byte-boundary-crossing bit packing every entry in that
// table implemented, just written once instead of generated 33 times.

// pack8 packs 8 uint64 values, each holding at most bitWidth significant
// bits, into ceil(bitWidth) bytes, LSB-first within a byte.
func pack8(values [8]uint64, bitWidth int) []byte {
	if bitWidth == 0 {
		return nil
	}
	out := make([]byte, bitWidth)
	var bitBuf uint64
	var bitCount int
	pos := 0
	for i := 0; i < 8; i++ {
		bitBuf |= (values[i] & ((1 << uint(bitWidth)) - 1)) << uint(bitCount)
		bitCount += bitWidth
		for bitCount >= 8 {
			out[pos] = byte(bitBuf)
			pos++
			bitBuf >>= 8
			bitCount -= 8
		}
	}
	if bitCount > 0 {
		out[pos] = byte(bitBuf)
	}
	return out
}

// unpack8 is the inverse of pack8: it reads exactly bitWidth bytes from buf
// and returns the 8 packed values.
func unpack8(buf []byte, bitWidth int) [8]uint64 {
	var out [8]uint64
	if bitWidth == 0 {
		return out
	}
	var bitBuf uint64
	var bitCount int
	pos := 0
	mask := uint64(1)<<uint(bitWidth) - 1
	for i := 0; i < 8; i++ {
		for bitCount < bitWidth {
			bitBuf |= uint64(buf[pos]) << uint(bitCount)
			pos++
			bitCount += 8
		}
		out[i] = bitBuf & mask
		bitBuf >>= uint(bitWidth)
		bitCount -= bitWidth
	}
	return out
}

// bitpackWrite writes len(data)/8 packed blocks of bitWidth bits each.
func bitpackWrite(w io.Writer, bitWidth int, data []uint64) error {
	if len(data)%8 != 0 {
		return errors.New("bitpack: value count must be a multiple of 8")
	}
	for i := 0; i < len(data); i += 8 {
		var block [8]uint64
		copy(block[:], data[i:i+8])
		if bitWidth == 0 {
			continue
		}
		if err := writeFull(w, pack8(block, bitWidth)); err != nil {
			return err
		}
	}
	return nil
}

// bitpackRead reads blockCount packed blocks of bitWidth bits each,
// yielding blockCount*8 values.
func bitpackRead(r io.Reader, bitWidth int, blockCount int) ([]uint64, error) {
	res := make([]uint64, 0, blockCount*8)
	buf := make([]byte, bitWidth)
	for i := 0; i < blockCount; i++ {
		if bitWidth == 0 {
			res = append(res, 0, 0, 0, 0, 0, 0, 0, 0)
			continue
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		block := unpack8(buf, bitWidth)
		res = append(res, block[:]...)
	}
	return res, nil
}

// bitWidthForMax returns the number of bits needed to represent max,
// i.e. the smallest w with max < 2^w.
func bitWidthForMax(max uint64) int {
	w := 0
	for max != 0 {
		w++
		max >>= 1
	}
	return w
}
