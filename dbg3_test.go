package goparquet

import (
	"bytes"
	"fmt"
	"testing"
)

func TestDebugLevels(t *testing.T) {
	defLevels := []uint16{1, 0, 1, 1}
	var body bytes.Buffer
	cw := &ColumnChunkWriter{}
	err := cw.encodeLevelsV1(&body, defLevels, 1, 4)
	fmt.Println("encode err", err)
	fmt.Println("body", body.Bytes())

	cr := &ColumnChunkReader{col: &ColumnDescriptor{}}
	got, err := cr.decodeV1Levels(bytes.NewReader(body.Bytes()), 1, 4)
	fmt.Println("decode err", err)
	fmt.Println("got", got)
}
