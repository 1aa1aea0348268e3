package goparquet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaByteArrayRoundTrip(t *testing.T) {
	values := [][]byte{
		[]byte("apple"),
		[]byte("application"),
		[]byte("apply"),
		[]byte("banana"),
		[]byte(""),
		[]byte("banana"),
	}
	var buf bytes.Buffer
	require.NoError(t, deltaByteArrayEncode(&buf, values))

	got, err := deltaByteArrayDecode(&buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestCommonPrefixLen(t *testing.T) {
	assert.Equal(t, 0, commonPrefixLen(nil, []byte("x")))
	assert.Equal(t, 3, commonPrefixLen([]byte("apple"), []byte("app")))
	assert.Equal(t, 0, commonPrefixLen([]byte("apple"), []byte("banana")))
	assert.Equal(t, 5, commonPrefixLen([]byte("apple"), []byte("apple")))
}

func TestDeltaByteArrayNoSharedPrefixes(t *testing.T) {
	values := [][]byte{[]byte("zzz"), []byte("aaa"), []byte("mmm")}
	var buf bytes.Buffer
	require.NoError(t, deltaByteArrayEncode(&buf, values))
	got, err := deltaByteArrayDecode(&buf, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, got)
}
