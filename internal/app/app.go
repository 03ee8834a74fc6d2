// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fabin/internal/cli"
	"fabin/internal/output"
	"fabin/internal/writers"
)

// RunIO executes argv with explicit streams and returns the exit code.
func RunIO(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	rt := &cli.Runtime{In: stdin, Out: outw, Err: stderr, TTY: stdout, Getenv: os.Getenv}
	root := cli.NewRootCommand(rt)
	root.SetArgs(argv)

	err := root.ExecuteContext(parent)
	if cerr := rt.Close(); cerr != nil {
		_, _ = fmt.Fprintf(stderr, "fabin: %v\n", cerr)
	}
	if ferr := outw.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("%w: %w", cli.ErrOutput, ferr)
	}
	if err == nil && parent.Err() != nil {
		err = parent.Err()
	}

	code := cli.ExitCode(err)
	switch {
	case code == cli.ExitOK, code == cli.ExitCanceled:
	case errors.Is(err, cli.ErrUsage):
		_, _ = fmt.Fprintf(stderr, "fabin: %v\nRun 'fabin --help' for usage.\n", unwrapUsage(err))
	default:
		_, _ = fmt.Fprintf(stderr, "fabin: %s\n", output.Message(err))
	}
	if writers.IsBrokenPipe(err) {
		return cli.ExitOK
	}
	return code
}

// unwrapUsage strips the "usage: " prefix added by the cli package.
func unwrapUsage(err error) string {
	return strings.TrimPrefix(err.Error(), cli.ErrUsage.Error()+": ")
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunIO(parent, argv, os.Stdin, stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
