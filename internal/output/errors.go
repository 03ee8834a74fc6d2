// internal/output/errors.go
package output

import (
	"errors"
	"fmt"
	"io"

	"fabin-core/container"
	"fabin/internal/session"
)

// Message turns a command error into the sentence shown to the user.
func Message(err error) string {
	var (
		fe *session.FileError
		se *session.SequenceError
		pe *session.PositionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		switch {
		case errors.Is(fe, container.ErrHeaderOverflow):
			return fmt.Sprintf("The sequences cannot be encoded in %s: %v", fe.Path, fe.Err)
		case errors.Is(fe, session.ErrFileUnwritable):
			return fmt.Sprintf("%s cannot be written.", fe.Path)
		case errors.Is(fe, container.ErrCorrupt), errors.Is(fe, io.ErrUnexpectedEOF):
			return fmt.Sprintf("%s is not a valid .fabin file.", fe.Path)
		}
		return fmt.Sprintf("%s not found or unreadable.", fe.Path)
	case errors.As(err, &se):
		return fmt.Sprintf("Sequence %s does not exist.", se.Description)
	case errors.As(err, &pe):
		return fmt.Sprintf("There is no base at position [%d,%d].", pe.Row, pe.Col)
	case errors.Is(err, session.ErrNoSequences):
		return "No sequences loaded in memory."
	case errors.Is(err, session.ErrNoRemoteBase):
		return "There is no other base of the same kind in the sequence."
	case errors.Is(err, session.ErrUnreachable):
		return "There is no route between the given bases."
	}
	return err.Error()
}
