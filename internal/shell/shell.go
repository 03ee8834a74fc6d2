// internal/shell/shell.go
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"fabin/internal/metrics"
	"fabin/internal/output"
	"fabin/internal/session"
)

const banner = "fabin: Huffman-encoded FASTA toolkit. Type help for the list of commands."

type Options struct {
	Prompt  string
	Banner  bool
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Shell reads one command per line and runs it against a session. Command
// failures are reported and the loop goes on.
type Shell struct {
	sess    *session.Session
	p       *output.Printer
	out     io.Writer
	log     zerolog.Logger
	metrics *metrics.Metrics
	prompt  string
	banner  bool
}

func New(sess *session.Session, p *output.Printer, opt Options) *Shell {
	m := opt.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Shell{
		sess:    sess,
		p:       p,
		out:     p.W,
		log:     opt.Logger,
		metrics: m,
		prompt:  opt.Prompt,
		banner:  opt.Banner,
	}
}

// Run loops until exit, end of input or ctx is done. It returns ctx.Err()
// when canceled and nil otherwise.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	if sh.banner {
		if _, err := fmt.Fprintln(sh.out, banner); err != nil {
			return err
		}
	}
	done := make(chan struct{})
	defer close(done)
	lines, errc := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sh.prompt != "" {
			if _, err := io.WriteString(sh.out, sh.p.Styles.Prompt.Render(sh.prompt)); err != nil {
				return err
			}
		}
		if err := sh.flush(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if err := sh.Exec(ctx, line); err != nil {
				if errors.Is(err, errExit) {
					return nil
				}
				return err
			}
		}
	}
}

// readLines feeds lines of in until EOF or done is closed. The error channel
// receives the scanner error once lines is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// Exec runs one line. Only errors that should stop the loop are returned:
// exit and failed writes to the output.
func (sh *Shell) Exec(ctx context.Context, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return sh.report(fmt.Errorf("%w: %v", ErrUsage, err))
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	c, ok := lookup(name)
	if !ok {
		return sh.report(fmt.Errorf("%w %q", errUnknownCommand, name))
	}
	if len(args) < c.min || (c.max >= 0 && len(args) > c.max) {
		return sh.report(fmt.Errorf("%w: %s", ErrUsage, c.usage()))
	}

	start := time.Now()
	err = c.run(ctx, sh, args)
	if errors.Is(err, errExit) {
		return err
	}
	sh.metrics.ObserveCommand(c.name, err)
	ev := sh.log.Debug()
	if err != nil {
		ev = sh.log.Warn().Err(err)
	}
	ev.Str("command", c.name).Strs("args", args).Dur("took", time.Since(start)).Msg("command")
	return sh.report(err)
}

// flush pushes buffered output out before blocking on input.
func (sh *Shell) flush() error {
	if f, ok := sh.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// report prints err as a user message. It returns an error only if writing
// fails.
func (sh *Shell) report(err error) error {
	if err == nil {
		return nil
	}
	var msg string
	switch {
	case errors.Is(err, errUnknownCommand):
		msg = fmt.Sprintf("%s. Type help for the list of commands.", capitalize(err.Error()))
	case errors.Is(err, ErrUsage):
		msg = "Usage: " + strings.TrimPrefix(err.Error(), ErrUsage.Error()+": ")
	default:
		msg = output.Message(err)
	}
	_, werr := fmt.Fprintln(sh.out, sh.p.Styles.Error.Render(msg))
	return werr
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
