package goparquet

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"sort"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/pqcore/parquet-core/parquet"
)

// BlockCompressor is the total function pair §4.3 requires: compress an
// input buffer with codec-specific level options, and decompress an
// input buffer to exactly its known uncompressed size.
type BlockCompressor interface {
	Compress(dst io.Writer, src []byte, level int) error
	Decompress(src []byte, uncompressedSize int32) ([]byte, error)
}

var (
	compressorsMu sync.RWMutex
	compressors   = make(map[parquet.CompressionCodec]BlockCompressor)
)

// RegisterBlockCompressor lets a caller plug in an additional codec, or
// override a built-in one.
func RegisterBlockCompressor(codec parquet.CompressionCodec, c BlockCompressor) {
	compressorsMu.Lock()
	defer compressorsMu.Unlock()
	compressors[codec] = c
}

// RegisteredCodecs reports which compression codecs are currently linked
// in, so a caller can check compatibility up front instead of discovering
// a gap only via a failed read.
func RegisteredCodecs() []parquet.CompressionCodec {
	compressorsMu.RLock()
	defer compressorsMu.RUnlock()
	out := make([]parquet.CompressionCodec, 0, len(compressors))
	for codec := range compressors {
		out = append(out, codec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func getBlockCompressor(codec parquet.CompressionCodec) (BlockCompressor, error) {
	compressorsMu.RLock()
	defer compressorsMu.RUnlock()
	c, ok := compressors[codec]
	if !ok {
		return nil, &Error{Kind: FeatureNotActive, err: errors.Errorf("codec %s is not linked in", codec)}
	}
	return c, nil
}

// compressBlock and decompressBlock are the entry points the page pipeline
// calls; they never fall back to uncompressed on a missing codec, per
// §9's "codec features" design note.
func compressBlock(w io.Writer, codec parquet.CompressionCodec, src []byte, level int) error {
	c, err := getBlockCompressor(codec)
	if err != nil {
		return err
	}
	if err := c.Compress(w, src, level); err != nil {
		return wrapError(Io, err, "compress with %s", codec)
	}
	return nil
}

func decompressBlock(codec parquet.CompressionCodec, src []byte, uncompressedSize int32) ([]byte, error) {
	c, err := getBlockCompressor(codec)
	if err != nil {
		return nil, err
	}
	out, err := c.Decompress(src, uncompressedSize)
	if err != nil {
		return nil, wrapError(OutOfSpec, err, "decompress with %s", codec)
	}
	if int32(len(out)) != uncompressedSize {
		return nil, newError(OutOfSpec, "%s: decompressed to %d bytes, header says %d", codec, len(out), uncompressedSize)
	}
	return out, nil
}

type uncompressedCodec struct{}

func (uncompressedCodec) Compress(dst io.Writer, src []byte, level int) error {
	return writeFull(dst, src)
}

func (uncompressedCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	if int32(len(src)) != uncompressedSize {
		return nil, errors.Errorf("uncompressed block length %d does not match expected %d", len(src), uncompressedSize)
	}
	return src, nil
}

type snappyCodec struct{}

func (snappyCodec) Compress(dst io.Writer, src []byte, level int) error {
	return writeFull(dst, snappy.Encode(nil, src))
}

func (snappyCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	return snappy.Decode(make([]byte, 0, uncompressedSize), src)
}

type gzipCodec struct{}

func (gzipCodec) Compress(dst io.Writer, src []byte, level int) error {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	zw, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return err
	}
	if _, err := zw.Write(src); err != nil {
		return err
	}
	return zw.Close()
}

func (gzipCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, int64(uncompressedSize)+1))
}

type brotliCodec struct{}

func (brotliCodec) Compress(dst io.Writer, src []byte, level int) error {
	if level == 0 {
		level = brotli.DefaultCompression
	}
	bw := brotli.NewWriterLevel(dst, level)
	if _, err := bw.Write(src); err != nil {
		return err
	}
	return bw.Close()
}

func (brotliCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	br := brotli.NewReader(bytes.NewReader(src))
	return io.ReadAll(io.LimitReader(br, int64(uncompressedSize)+1))
}

type zstdCodec struct{}

func (zstdCodec) Compress(dst io.Writer, src []byte, level int) error {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return err
	}
	if _, err := enc.Write(src); err != nil {
		return err
	}
	return enc.Close()
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level <= 3:
		return zstd.SpeedFastest
	case level <= 9:
		return zstd.SpeedDefault
	case level <= 15:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func (zstdCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(io.LimitReader(dec, int64(uncompressedSize)+1))
}

// lz4HadoopCodec is the legacy Hadoop-framed LZ4 codec: one block header of
// [decompressed_len u32_be][compressed_len u32_be] followed by a raw LZ4
// block, as historically written by parquet-mr.
type lz4HadoopCodec struct{}

func (lz4HadoopCodec) Compress(dst io.Writer, src []byte, level int) error {
	buf := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, buf)
	if err != nil {
		return err
	}
	if n == 0 {
		buf = rawLZ4Literal(src)
		n = len(buf)
	}
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(src)))
	binary.BigEndian.PutUint32(header[4:8], uint32(n))
	if err := writeFull(dst, header[:]); err != nil {
		return err
	}
	return writeFull(dst, buf[:n])
}

func (lz4HadoopCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	if len(src) < 8 {
		return nil, errors.New("lz4 hadoop block: header truncated")
	}
	decLen := binary.BigEndian.Uint32(src[0:4])
	compLen := binary.BigEndian.Uint32(src[4:8])
	if int(8+compLen) > len(src) {
		return nil, errors.Errorf("lz4 hadoop block: declared compressed length %d exceeds available %d", compLen, len(src)-8)
	}
	out := make([]byte, decLen)
	n, err := lz4.UncompressBlock(src[8:8+compLen], out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// lz4RawCodec is a bare LZ4 block with no framing at all.
type lz4RawCodec struct{}

func (lz4RawCodec) Compress(dst io.Writer, src []byte, level int) error {
	buf := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, buf)
	if err != nil {
		return err
	}
	if n == 0 {
		// Incompressible (also covers the ≤12-byte edge case the open
		// question in §4.3 calls out): store as a single literal run,
		// still a valid raw LZ4 block, no length-prefix header added.
		buf = rawLZ4Literal(src)
		n = len(buf)
	}
	return writeFull(dst, buf[:n])
}

func (lz4RawCodec) Decompress(src []byte, uncompressedSize int32) ([]byte, error) {
	out := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(src, out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// rawLZ4Literal builds the minimal valid LZ4 block that stores src as one
// literal run with no back-references: a token byte encoding the literal
// length (extended with 0xFF continuation bytes for lengths ≥ 15),
// followed by the literal bytes themselves.
func rawLZ4Literal(src []byte) []byte {
	var out bytes.Buffer
	l := len(src)
	if l < 15 {
		out.WriteByte(byte(l << 4))
	} else {
		out.WriteByte(0xF0)
		rem := l - 15
		for rem >= 255 {
			out.WriteByte(0xFF)
			rem -= 255
		}
		out.WriteByte(byte(rem))
	}
	out.Write(src)
	return out.Bytes()
}

func init() {
	RegisterBlockCompressor(parquet.CompressionCodec_UNCOMPRESSED, uncompressedCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_SNAPPY, snappyCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_GZIP, gzipCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_BROTLI, brotliCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_ZSTD, zstdCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_LZ4, lz4HadoopCodec{})
	RegisterBlockCompressor(parquet.CompressionCodec_LZ4_RAW, lz4RawCodec{})
}
