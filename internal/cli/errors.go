// internal/cli/errors.go
package cli

import (
	"context"
	"errors"
	"fmt"

	"fabin/internal/session"
	"fabin/internal/writers"
)

var (
	// ErrUsage marks bad flags or arguments.
	ErrUsage = errors.New("usage")
	// ErrOutput marks a failed write of results.
	ErrOutput = errors.New("output")
)

// Exit codes.
const (
	ExitOK       = 0
	ExitNoResult = 1
	ExitInput    = 2
	ExitOutput   = 3
	ExitCanceled = 130
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, session.ErrUnreachable), errors.Is(err, session.ErrNoRemoteBase):
		return ExitNoResult
	case errors.Is(err, ErrOutput), errors.Is(err, session.ErrFileUnwritable):
		return ExitOutput
	}
	return ExitInput
}

func usageErr(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

func outputErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOutput, err)
}
