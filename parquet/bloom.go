package parquet

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
)

// SplitBlockAlgorithm is the (currently sole) bloom filter block layout.
type SplitBlockAlgorithm struct{ marker }

// XxHash is the (currently sole) bloom filter hash function.
type XxHash struct{ marker }

// Uncompressed is the (currently sole) bloom filter sidecar compression.
type Uncompressed struct{ marker }

// BloomFilterAlgorithm is a closed union; today only SPLITBLOCK exists.
type BloomFilterAlgorithm struct {
	Block *SplitBlockAlgorithm
}

func (a *BloomFilterAlgorithm) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "BloomFilterAlgorithm", []field{
		{id: 1, name: "BLOCK", typeID: thrift.STRUCT, present: func() bool { return a.Block != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return a.Block.Write(ctx, p) }},
	})
}

func (a *BloomFilterAlgorithm) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "BloomFilterAlgorithm", fieldsByID([]field{
		{id: 1, name: "BLOCK", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			a.Block = &SplitBlockAlgorithm{marker: newMarker("SplitBlockAlgorithm")}
			return a.Block.Read(ctx, p)
		}},
	}))
}

// BloomFilterHash is a closed union; today only XXHASH exists.
type BloomFilterHash struct {
	XxHash *XxHash
}

func (h *BloomFilterHash) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "BloomFilterHash", []field{
		{id: 1, name: "XXHASH", typeID: thrift.STRUCT, present: func() bool { return h.XxHash != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return h.XxHash.Write(ctx, p) }},
	})
}

func (h *BloomFilterHash) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "BloomFilterHash", fieldsByID([]field{
		{id: 1, name: "XXHASH", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			h.XxHash = &XxHash{marker: newMarker("XxHash")}
			return h.XxHash.Read(ctx, p)
		}},
	}))
}

// BloomFilterCompression is a closed union; today only UNCOMPRESSED exists.
type BloomFilterCompression struct {
	Uncompressed *Uncompressed
}

func (c *BloomFilterCompression) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "BloomFilterCompression", []field{
		{id: 1, name: "UNCOMPRESSED", typeID: thrift.STRUCT, present: func() bool { return c.Uncompressed != nil }, write: func(ctx context.Context, p thrift.TProtocol) error { return c.Uncompressed.Write(ctx, p) }},
	})
}

func (c *BloomFilterCompression) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "BloomFilterCompression", fieldsByID([]field{
		{id: 1, name: "UNCOMPRESSED", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error {
			c.Uncompressed = &Uncompressed{marker: newMarker("Uncompressed")}
			return c.Uncompressed.Read(ctx, p)
		}},
	}))
}

// BloomFilterHeader precedes a bloom filter's bitset bytes in the sidecar
// region between the last column chunk and the footer.
type BloomFilterHeader struct {
	NumBytes    int32
	Algorithm   BloomFilterAlgorithm
	Hash        BloomFilterHash
	Compression BloomFilterCompression
}

func (h *BloomFilterHeader) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "BloomFilterHeader", []field{
		{id: 1, name: "numBytes", typeID: thrift.I32, write: func(ctx context.Context, p thrift.TProtocol) error { return p.WriteI32(ctx, h.NumBytes) }},
		{id: 2, name: "algorithm", typeID: thrift.STRUCT, write: func(ctx context.Context, p thrift.TProtocol) error { return h.Algorithm.Write(ctx, p) }},
		{id: 3, name: "hash", typeID: thrift.STRUCT, write: func(ctx context.Context, p thrift.TProtocol) error { return h.Hash.Write(ctx, p) }},
		{id: 4, name: "compression", typeID: thrift.STRUCT, write: func(ctx context.Context, p thrift.TProtocol) error { return h.Compression.Write(ctx, p) }},
	})
}

func (h *BloomFilterHeader) Read(ctx context.Context, iprot thrift.TProtocol) error {
	return readStruct(ctx, iprot, "BloomFilterHeader", fieldsByID([]field{
		{id: 1, name: "numBytes", typeID: thrift.I32, read: func(ctx context.Context, p thrift.TProtocol) (err error) { h.NumBytes, err = p.ReadI32(ctx); return }},
		{id: 2, name: "algorithm", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { return h.Algorithm.Read(ctx, p) }},
		{id: 3, name: "hash", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { return h.Hash.Read(ctx, p) }},
		{id: 4, name: "compression", typeID: thrift.STRUCT, read: func(ctx context.Context, p thrift.TProtocol) error { return h.Compression.Read(ctx, p) }},
	}))
}
