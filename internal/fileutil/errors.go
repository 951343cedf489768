package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrDestinationExists is returned (wrapped in an *IOError) when a move or
// rename target is already present.
var ErrDestinationExists = fmt.Errorf("destination already exists: %w", fs.ErrExist)

// ErrDirectoryNotEmpty is the cause when a directory with entries would have to
// be moved to another device.
var ErrDirectoryNotEmpty = errors.New("directory not empty")

// IOError is the only failure kind returned by this package. Causes are never
// classified; use errors.Is on the error (it unwraps to Err) to tell them apart.
type IOError struct {
	Op   string
	Path string
	// Dest is set for operations with a second path (move, rename).
	Dest string
	Err  error
}

func (e *IOError) Error() string {
	if e.Dest != "" {
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Path, e.Dest, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// AsIOError reports whether err is (or wraps) an *IOError and returns it.
func AsIOError(err error) (*IOError, bool) {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr, true
	}
	return nil, false
}

func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}
