// Package goparquet reads and writes files in the Apache Parquet columnar
// storage format: locating and decoding the thrift-encoded footer and page
// headers, running the page pipeline over compressed column chunk bytes,
// and applying the value encodings, compression codecs, page indexes and
// bloom filters the format defines.
package goparquet

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why an operation on a Parquet file failed. Callers
// that need to react differently to a corrupt file versus a missing codec
// versus a bad argument should switch on this instead of parsing messages.
type ErrorKind int

const (
	// OutOfSpec means the file violates the Parquet format itself (bad
	// magic, framing that doesn't add up, an invariant the format
	// guarantees that does not hold).
	OutOfSpec ErrorKind = iota
	// MalformedMetadata means the thrift compact protocol stream backing
	// FileMetaData, a PageHeader, or an index sidecar is ill-formed.
	MalformedMetadata
	// FeatureNotActive means the file requires a codec or encoding this
	// build does not have linked in.
	FeatureNotActive
	// InvalidParameter means the caller passed an invalid argument, such
	// as an out-of-range row group index or writing before opening a row
	// group.
	InvalidParameter
	// Io wraps an error from the underlying byte source or byte sink.
	Io
)

func (k ErrorKind) String() string {
	switch k {
	case OutOfSpec:
		return "OutOfSpec"
	case MalformedMetadata:
		return "MalformedMetadata"
	case FeatureNotActive:
		return "FeatureNotActive"
	case InvalidParameter:
		return "InvalidParameter"
	case Io:
		return "Io"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the concrete error type this module uses to report a classified
// failure. It carries a closed ErrorKind and wraps the underlying cause, if
// any, with github.com/pkg/errors; that cause, reachable through Unwrap,
// holds the stack trace and prints it under the %+v verb (Error itself
// prints only the kind and message). Not every failure is wrapped this way:
// some lower-level errors, such as those from decoding a page's values in
// ColumnChunkReader.ReadPage, reach the caller as they are, and KindOf
// reports false for them.
type Error struct {
	Kind ErrorKind
	err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Wrapf(err, format, args...)}
}

// KindOf reports the ErrorKind of err, or false if err was not produced by
// this module.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
