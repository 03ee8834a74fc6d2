// internal/session/errors.go
package session

import (
	"errors"
	"fmt"

	"fabin-core/graph"
)

var (
	ErrFileUnreadable  = errors.New("file not found or unreadable")
	ErrFileUnwritable  = errors.New("file cannot be written")
	ErrNoSequences     = errors.New("no sequences loaded")
	ErrUnknownSequence = errors.New("sequence does not exist")
	ErrUnreachable     = errors.New("destination is unreachable")
	ErrNoRemoteBase    = errors.New("no remote base of the same kind")
)

// FileError reports a failed file operation. It matches both its Kind and the
// underlying cause with errors.Is.
type FileError struct {
	Kind error
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() []error { return []error{e.Kind, e.Err} }

// PositionError names a grid position holding no base.
type PositionError struct {
	Row, Col int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("no base at position [%d,%d]", e.Row, e.Col)
}

func (e *PositionError) Is(target error) bool { return target == graph.ErrInvalidPosition }

// SequenceError names the description that was not found.
type SequenceError struct {
	Description string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("sequence %q does not exist", e.Description)
}

func (e *SequenceError) Is(target error) bool { return target == ErrUnknownSequence }
