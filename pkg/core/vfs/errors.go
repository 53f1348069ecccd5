package vfs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Their text is what the shell prints after the path.
var (
	ErrNotExist = errors.New("No such file or directory")
	ErrExist    = errors.New("File exists")
	ErrNotDir   = errors.New("Not a directory")
	ErrIsDir    = errors.New("Is a directory")
	ErrNotEmpty = errors.New("Directory not empty")
	ErrLoop     = errors.New("Too many levels of symbolic links")
	ErrInvalid  = errors.New("Invalid argument")
)

// Operation names used in Error.Op.
const (
	OpLookup  = "lookup"
	OpRead    = "read"
	OpWrite   = "write"
	OpMkdir   = "mkdir"
	OpCopy    = "copy"
	OpMove    = "move"
	OpRemove  = "remove"
	OpRmdir   = "rmdir"
	OpLink    = "link"
	OpChmod   = "chmod"
	OpChown   = "chown"
	OpReadDir = "readdir"
)

// Error records a failed filesystem operation and the path it failed on.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the sentinel.
func (e *Error) Cause() error { return e.Err }

func newError(op, path string, err error) error {
	return errors.WithStack(&Error{Op: op, Path: path, Err: err})
}

// Reason returns the human readable cause of err without the operation
// and path, e.g. "No such file or directory".
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return errors.Cause(err).Error()
}
