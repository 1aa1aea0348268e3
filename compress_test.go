package goparquet

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pqcore/parquet-core/parquet"
)

func TestCompressBlockRoundTripAllCodecs(t *testing.T) {
	block := []byte(`lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam.`)

	codecs := []parquet.CompressionCodec{
		parquet.CompressionCodec_UNCOMPRESSED,
		parquet.CompressionCodec_SNAPPY,
		parquet.CompressionCodec_GZIP,
		parquet.CompressionCodec_BROTLI,
		parquet.CompressionCodec_ZSTD,
		parquet.CompressionCodec_LZ4,
		parquet.CompressionCodec_LZ4_RAW,
	}

	for _, codec := range codecs {
		var buf bytes.Buffer
		require.NoError(t, compressBlock(&buf, codec, block, 0), "codec=%s", codec)
		got, err := decompressBlock(codec, buf.Bytes(), int32(len(block)))
		require.NoError(t, err, "codec=%s", codec)
		assert.Equal(t, block, got, "codec=%s", codec)
	}
}

// S5: a 3-byte payload round-trips through LZ4_RAW with no length-prefix
// header, unlike the Hadoop-framed LZ4 codec.
func TestCompressLZ4RawTinyPayloadScenarioS5(t *testing.T) {
	block := []byte{0x11, 0x22, 0x33}
	var buf bytes.Buffer
	require.NoError(t, compressBlock(&buf, parquet.CompressionCodec_LZ4_RAW, block, 0))
	// A bare LZ4 block: token 0x30 (three literals) and the literals, with no
	// size header in front.
	assert.Equal(t, []byte{0x30, 0x11, 0x22, 0x33}, buf.Bytes())
	got, err := decompressBlock(parquet.CompressionCodec_LZ4_RAW, buf.Bytes(), int32(len(block)))
	require.NoError(t, err)
	assert.Equal(t, block, got)
}

func TestCompressLZ4HadoopHasEightByteHeader(t *testing.T) {
	block := bytes.Repeat([]byte("x"), 100)
	var buf bytes.Buffer
	require.NoError(t, compressBlock(&buf, parquet.CompressionCodec_LZ4, block, 0))
	assert.GreaterOrEqual(t, buf.Len(), 8)
	header := buf.Bytes()
	assert.Equal(t, uint32(len(block)), binary.BigEndian.Uint32(header[0:4]))
	assert.Equal(t, uint32(buf.Len()-8), binary.BigEndian.Uint32(header[4:8]))

	got, err := decompressBlock(parquet.CompressionCodec_LZ4, buf.Bytes(), int32(len(block)))
	require.NoError(t, err)
	assert.Equal(t, block, got)
}

func TestDecompressBlockRejectsSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, compressBlock(&buf, parquet.CompressionCodec_UNCOMPRESSED, []byte("hello"), 0))
	_, err := decompressBlock(parquet.CompressionCodec_UNCOMPRESSED, buf.Bytes(), 999)
	assert.Error(t, err)
}

func TestGetBlockCompressorUnregisteredCodec(t *testing.T) {
	_, err := getBlockCompressor(parquet.CompressionCodec(99))
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, FeatureNotActive, kind)
}

func TestRegisteredCodecsIncludesBuiltins(t *testing.T) {
	codecs := RegisteredCodecs()
	assert.Contains(t, codecs, parquet.CompressionCodec_UNCOMPRESSED)
	assert.Contains(t, codecs, parquet.CompressionCodec_SNAPPY)
	assert.Contains(t, codecs, parquet.CompressionCodec_GZIP)
	assert.Contains(t, codecs, parquet.CompressionCodec_BROTLI)
	assert.Contains(t, codecs, parquet.CompressionCodec_ZSTD)
	assert.Contains(t, codecs, parquet.CompressionCodec_LZ4)
	assert.Contains(t, codecs, parquet.CompressionCodec_LZ4_RAW)

	for i := 1; i < len(codecs); i++ {
		assert.LessOrEqual(t, codecs[i-1], codecs[i], "RegisteredCodecs should be sorted")
	}
}

func TestRegisterBlockCompressorOverride(t *testing.T) {
	original, err := getBlockCompressor(parquet.CompressionCodec_UNCOMPRESSED)
	require.NoError(t, err)
	defer RegisterBlockCompressor(parquet.CompressionCodec_UNCOMPRESSED, original)

	RegisterBlockCompressor(parquet.CompressionCodec_UNCOMPRESSED, uncompressedCodec{})
	var buf bytes.Buffer
	require.NoError(t, compressBlock(&buf, parquet.CompressionCodec_UNCOMPRESSED, []byte("abc"), 0))
	assert.Equal(t, []byte("abc"), buf.Bytes())
}
