package goparquet

import (
	"context"
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/cespare/xxhash/v2"

	"github.com/pqcore/parquet-core/parquet"
)

// wordsPerBlock is fixed by the split-block bloom filter format: eight
// uint32 words, 32 bytes, per block.
const wordsPerBlock = 8

// salt is the fixed per-word multiplier the reference SBBF construction
// uses to spread one hash across eight independent bit positions.
var salt = [wordsPerBlock]uint32{
	0x47b6137b, 0x44974d91, 0x8824ad5b, 0xa2b7289d,
	0x705495c7, 0x2df1424b, 0x9efc4947, 0x5c6bfb31,
}

// BloomFilter is a split-block bloom filter over one column's values, per
// §4.7. NumBlocks is a power of two; the bitset is 32*NumBlocks bytes.
type BloomFilter struct {
	blocks [][wordsPerBlock]uint32
}

// NewBloomFilter sizes a filter for numDistinct expected entries, rounding
// its block count up to the next power of two with at least one block.
func NewBloomFilter(numDistinct int) *BloomFilter {
	numBlocks := bloomBlockCount(numDistinct)
	return &BloomFilter{blocks: make([][wordsPerBlock]uint32, numBlocks)}
}

// bloomBlockCount picks a block count following the reference
// implementations' sizing heuristic: 10 bits per expected distinct value
// (a false-positive rate around 1%), i.e. one block (256 bits) per roughly
// 25 values, rounded up to a power of two, with a floor of one block.
func bloomBlockCount(numDistinct int) int {
	if numDistinct < 1 {
		numDistinct = 1
	}
	bitsPerEntry := 10 // ~1% FPR
	totalBits := numDistinct * bitsPerEntry
	blocks := (totalBits + 255) / 256
	if blocks < 1 {
		blocks = 1
	}
	return 1 << bits.Len(uint(blocks-1))
}

// canonicalBloomBytes renders a raw-shape value (raw_values.go) into the
// exact byte sequence §4.7 hashes: booleans as one byte, integers and
// floats by their little-endian bit pattern (already true of the raw
// shape for every fixed-width type), byte arrays as their raw bytes with
// no length prefix (the raw shape length-prefixes BYTE_ARRAY, so that
// prefix must be stripped here).
func canonicalBloomBytes(col *ColumnDescriptor, v []byte) []byte {
	if col.PhysicalType == parquet.Type_BYTE_ARRAY {
		if len(v) < 4 {
			return nil
		}
		n := binary.LittleEndian.Uint32(v[:4])
		return v[4 : 4+n]
	}
	return v
}

func bloomHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// blockIndex maps a 64-bit hash to a block number, using the same
// multiply-high-bits trick as the reference implementations so the
// mapping is uniform without a modulo.
func blockIndex(hash uint64, numBlocks int) uint64 {
	return ((hash >> 32) * uint64(numBlocks)) >> 32
}

// mask derives the eight per-word bit positions a value's low 32 hash bits
// set within its block.
func mask(h uint32) [wordsPerBlock]uint32 {
	var m [wordsPerBlock]uint32
	for i, s := range salt {
		m[i] = 1 << ((h * s) >> 27)
	}
	return m
}

// Insert adds v (already in canonical bloom-filter byte form, see
// canonicalBloomBytes) to the filter.
func (f *BloomFilter) Insert(v []byte) {
	if len(f.blocks) == 0 {
		return
	}
	h := bloomHash(v)
	block := &f.blocks[blockIndex(h, len(f.blocks))]
	m := mask(uint32(h))
	for i := range block {
		block[i] |= m[i]
	}
}

// MayContain tests v against the filter. A false result is authoritative
// (v was never inserted); a true result is probabilistic (§4.7).
func (f *BloomFilter) MayContain(v []byte) bool {
	if len(f.blocks) == 0 {
		return false
	}
	h := bloomHash(v)
	block := &f.blocks[blockIndex(h, len(f.blocks))]
	m := mask(uint32(h))
	for i := range block {
		if block[i]&m[i] != m[i] {
			return false
		}
	}
	return true
}

// NumBlocks reports the filter's block count.
func (f *BloomFilter) NumBlocks() int { return len(f.blocks) }

// Bytes renders the filter's bitset in its on-disk layout: NumBlocks
// consecutive 32-byte blocks, each eight little-endian uint32 words.
func (f *BloomFilter) Bytes() []byte {
	out := make([]byte, len(f.blocks)*wordsPerBlock*4)
	for i, block := range f.blocks {
		for j, w := range block {
			binary.LittleEndian.PutUint32(out[i*32+j*4:], w)
		}
	}
	return out
}

// bloomFilterFromBytes parses a bitset previously produced by Bytes.
func bloomFilterFromBytes(data []byte) (*BloomFilter, error) {
	if len(data)%32 != 0 {
		return nil, newError(OutOfSpec, "bloom filter bitset length %d not a multiple of 32", len(data))
	}
	numBlocks := len(data) / 32
	f := &BloomFilter{blocks: make([][wordsPerBlock]uint32, numBlocks)}
	for i := range f.blocks {
		for j := 0; j < wordsPerBlock; j++ {
			f.blocks[i][j] = binary.LittleEndian.Uint32(data[i*32+j*4:])
		}
	}
	return f, nil
}

// WriteBloomFilterSidecar writes a BloomFilterHeader followed by the
// bitset bytes, the layout used for the sidecar region between a file's
// last column chunk and its footer. Returns the sidecar's total byte
// length so the caller can record BloomFilterOffset/BloomFilterLength on
// the owning ColumnMetaData.
func WriteBloomFilterSidecar(ctx context.Context, w io.Writer, f *BloomFilter) (int64, error) {
	body := f.Bytes()
	header := &parquet.BloomFilterHeader{
		NumBytes:    int32(len(body)),
		Algorithm:   parquet.BloomFilterAlgorithm{Block: &parquet.SplitBlockAlgorithm{}},
		Hash:        parquet.BloomFilterHash{XxHash: &parquet.XxHash{}},
		Compression: parquet.BloomFilterCompression{Uncompressed: &parquet.Uncompressed{}},
	}
	cw := &countingWriter{w: w}
	if err := parquet.WriteThrift(ctx, cw, header); err != nil {
		return 0, wrapError(MalformedMetadata, err, "bloom filter header")
	}
	if err := writeFull(cw, body); err != nil {
		return 0, wrapError(Io, err, "bloom filter bitset")
	}
	return cw.n, nil
}

// ReadBloomFilterSidecar reads a BloomFilterHeader and its bitset starting
// at r's current position.
func ReadBloomFilterSidecar(ctx context.Context, r io.Reader) (*BloomFilter, error) {
	header := &parquet.BloomFilterHeader{}
	if err := parquet.ReadThrift(ctx, r, header); err != nil {
		return nil, wrapError(MalformedMetadata, err, "bloom filter header")
	}
	if header.Algorithm.Block == nil {
		return nil, newError(FeatureNotActive, "bloom filter: only the split-block algorithm is supported")
	}
	if header.Hash.XxHash == nil {
		return nil, newError(FeatureNotActive, "bloom filter: only the xxhash hash is supported")
	}
	if header.Compression.Uncompressed == nil {
		return nil, newError(FeatureNotActive, "bloom filter: only uncompressed sidecars are supported")
	}
	if header.NumBytes < 0 {
		return nil, newError(OutOfSpec, "bloom filter: negative num_bytes %d", header.NumBytes)
	}
	body := make([]byte, header.NumBytes)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, wrapError(Io, err, "bloom filter bitset")
	}
	return bloomFilterFromBytes(body)
}

// BuildBloomFilter inserts every non-null raw-shape value of col into a
// freshly sized filter.
func BuildBloomFilter(col *ColumnDescriptor, values [][]byte) *BloomFilter {
	f := NewBloomFilter(len(values))
	for _, v := range values {
		f.Insert(canonicalBloomBytes(col, v))
	}
	return f
}
