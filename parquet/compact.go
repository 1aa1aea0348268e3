// Package parquet holds the thrift compact-protocol wire types used by the
// Parquet file format: FileMetaData, PageHeader, the column/offset index
// sidecars and the bloom filter header. It plays the same role as the
// thrift-compiler-generated "parquet" package the reference Go
// implementations vendor, except the Read/Write methods here are
// hand-written against a small data-driven struct codec instead of being
// generated, since there is no parquet.thrift IDL to run the compiler on.
package parquet

import (
	"context"
	"io"
	"math"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"
)

// thriftConfig bounds container sizes read from an untrusted stream so a
// malformed length header can't force an unbounded allocation.
var thriftConfig = &thrift.TConfiguration{
	MaxMessageSize: 64 * 1024 * 1024,
	MaxFrameSize:   64 * 1024 * 1024,
}

// ioReadTransport and ioWriteTransport wrap a plain io.Reader/io.Writer as a
// thrift.TTransport without any internal read-ahead buffering. The
// library's own thrift.NewStreamTransportR/W wrap the stream in a
// bufio.Reader/Writer, which reads ahead past a single struct's bytes; when
// callers (e.g. page-by-page readers) construct a fresh protocol per struct
// on a shared io.Reader, that eagerly-buffered lookahead is discarded along
// with the bytes it consumed from the underlying stream. Reading and
// writing one byte/chunk at a time from the raw stream keeps every read
// confined to exactly what the struct codec asked for.
type ioReadTransport struct {
	io.Reader
}

func (t *ioReadTransport) Write(p []byte) (int, error)     { return 0, io.ErrClosedPipe }
func (t *ioReadTransport) Close() error                    { return nil }
func (t *ioReadTransport) Flush(ctx context.Context) error { return nil }
func (t *ioReadTransport) Open() error                     { return nil }
func (t *ioReadTransport) IsOpen() bool                    { return true }
func (t *ioReadTransport) RemainingBytes() uint64          { return math.MaxUint64 }

type ioWriteTransport struct {
	io.Writer
}

func (t *ioWriteTransport) Read(p []byte) (int, error)      { return 0, io.EOF }
func (t *ioWriteTransport) Close() error                    { return nil }
func (t *ioWriteTransport) Flush(ctx context.Context) error { return nil }
func (t *ioWriteTransport) Open() error                     { return nil }
func (t *ioWriteTransport) IsOpen() bool                    { return true }
func (t *ioWriteTransport) RemainingBytes() uint64          { return 0 }

func newReadProtocol(r io.Reader) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(&ioReadTransport{r}, thriftConfig)
}

func newWriteProtocol(w io.Writer) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(&ioWriteTransport{w}, thriftConfig)
}

// Readable is implemented by every thrift struct in this package.
type Readable interface {
	Read(ctx context.Context, iprot thrift.TProtocol) error
}

// Writable is implemented by every thrift struct in this package.
type Writable interface {
	Write(ctx context.Context, oprot thrift.TProtocol) error
}

// ReadThrift deserializes obj from r using the thrift compact protocol.
func ReadThrift(ctx context.Context, r io.Reader, obj Readable) error {
	iprot := newReadProtocol(r)
	if err := obj.Read(ctx, iprot); err != nil {
		return errors.Wrap(err, "thrift compact decode failed")
	}
	return nil
}

// WriteThrift serializes obj to w using the thrift compact protocol.
func WriteThrift(ctx context.Context, w io.Writer, obj Writable) error {
	oprot := newWriteProtocol(w)
	if err := obj.Write(ctx, oprot); err != nil {
		return errors.Wrap(err, "thrift compact encode failed")
	}
	return oprot.Flush(ctx)
}

// field describes one struct field for the data-driven struct codec below.
// write/read operate on the field value only; WriteFieldBegin/End and the
// field-id dispatch on read are handled by writeStruct/readStruct.
type field struct {
	id      int16
	name    string
	typeID  thrift.TType
	present func() bool // nil means always present (required field)
	write   func(ctx context.Context, p thrift.TProtocol) error
	read    func(ctx context.Context, p thrift.TProtocol) error
}

// writeStruct writes a struct's field-stop-terminated body. This mirrors
// what thrift-compiler-generated Write methods do, just table-driven
// instead of one hand-written call sequence per struct.
func writeStruct(ctx context.Context, oprot thrift.TProtocol, name string, fields []field) error {
	if err := oprot.WriteStructBegin(ctx, name); err != nil {
		return errors.Wrapf(err, "%s: write struct begin", name)
	}
	for _, f := range fields {
		if f.present != nil && !f.present() {
			continue
		}
		if err := oprot.WriteFieldBegin(ctx, f.name, f.typeID, f.id); err != nil {
			return errors.Wrapf(err, "%s.%s: write field begin", name, f.name)
		}
		if err := f.write(ctx, oprot); err != nil {
			return errors.Wrapf(err, "%s.%s: write field value", name, f.name)
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return errors.Wrapf(err, "%s.%s: write field end", name, f.name)
		}
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return errors.Wrapf(err, "%s: write field stop", name)
	}
	return oprot.WriteStructEnd(ctx)
}

// readStruct reads a struct body until the field-stop byte, dispatching
// known field ids by their expected type and skipping everything else
// (unrecognized fields from a newer format version, or a type mismatch).
func readStruct(ctx context.Context, iprot thrift.TProtocol, name string, byID map[int16]field) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return errors.Wrapf(err, "%s: read struct begin", name)
	}
	for {
		fname, typeID, id, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return errors.Wrapf(err, "%s: read field begin", name)
		}
		if typeID == thrift.STOP {
			break
		}
		f, ok := byID[id]
		if !ok || f.typeID != typeID {
			if err := iprot.Skip(ctx, typeID); err != nil {
				return errors.Wrapf(err, "%s: skip unknown field %d (%s)", name, id, fname)
			}
		} else if err := f.read(ctx, iprot); err != nil {
			return errors.Wrapf(err, "%s.%s: read field value", name, f.name)
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return errors.Wrapf(err, "%s: read field end", name)
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func fieldsByID(fields []field) map[int16]field {
	m := make(map[int16]field, len(fields))
	for _, f := range fields {
		m[f.id] = f
	}
	return m
}
