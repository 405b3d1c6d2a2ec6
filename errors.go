package huffpack

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput indicates there is nothing to compress.
	ErrEmptyInput = errors.New("empty input")
	// ErrSameFile indicates the input and output paths name the same file.
	ErrSameFile = errors.New("input file same as output file")
	// ErrMalformedHeader indicates a truncated or inconsistent header or frequency table.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrCorruptStream indicates the packed bit-stream does not match its header.
	ErrCorruptStream = errors.New("corrupt bit-stream")
	// ErrInputTooLarge indicates a count that does not fit its header field.
	ErrInputTooLarge = errors.New("input too large")
	// ErrCodeTooLong indicates a code longer than 64 bits.
	ErrCodeTooLong = errors.New("code too long")
	// ErrIO matches every *IOError.
	ErrIO = errors.New("i/o failure")
)

// IOError records a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports true for ErrIO so callers can classify without a type assertion.
func (e *IOError) Is(target error) bool { return target == ErrIO }

func ioFailure(op, path string, err error) error {
	return errors.WithStack(&IOError{Op: op, Path: path, Err: err})
}
