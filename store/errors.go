package store

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Sentinel errors. Every error returned by a Store operation wraps exactly
// one of them; test with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrParse     = errors.New("malformed document")
	ErrIO        = errors.New("i/o failure")
	ErrNotRecord = errors.New("entry is not a JSON object")
)

// Op names used in Error.
const (
	OpLoad   = "load"
	OpWrite  = "write"
	OpUpdate = "update"
	OpMerge  = "merge"
	OpExport = "export"
)

// Error ties a failure to the operation and path it happened on.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func newError(op, path string, kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: withStack(err)}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func withStack(err error) error {
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return errors.WithStack(err)
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

// Format prints the cause's stack trace for %+v.
func (e *Error) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%s %s: %v: %+v", e.Op, e.Path, e.Kind, e.Err)
		return
	}
	_, _ = io.WriteString(f, e.Error())
}
