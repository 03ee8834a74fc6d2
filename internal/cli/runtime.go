// internal/cli/runtime.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fabin/internal/config"
	"fabin/internal/logging"
	"fabin/internal/metrics"
	"fabin/internal/output"
	"fabin/internal/pretty"
	"fabin/internal/session"
)

type globalFlags struct {
	configPath  string
	logLevel    string
	color       string
	metricsFile string
}

// Runtime carries the I/O streams and the services built from the resolved
// configuration. It is filled in before any sub-command runs.
type Runtime struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// TTY is the writer probed for colour support. Defaults to Out.
	TTY    io.Writer
	Getenv func(string) string

	flags globalFlags

	Config  config.Config
	Log     *logging.Logger
	Metrics *metrics.Metrics
	Styles  *pretty.Styles
}

func (rt *Runtime) setup() error {
	getenv := rt.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg, err := config.LoadWith(rt.flags.configPath, getenv)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if rt.flags.logLevel != "" {
		cfg.Log.Level = rt.flags.logLevel
	}
	if rt.flags.color != "" {
		cfg.Output.Color = rt.flags.color
	}
	if rt.flags.metricsFile != "" {
		cfg.Metrics.Textfile = rt.flags.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	rt.Config = cfg

	log, err := logging.New(cfg.Log, rt.Err)
	if err != nil {
		return err
	}
	rt.Log = log
	rt.Metrics = metrics.New()

	tty := rt.TTY
	if tty == nil {
		tty = rt.Out
	}
	rt.Styles = pretty.NewStyles(tty, pretty.ColorEnabled(cfg.Output.Color, tty))
	rt.Log.Debug().Str("level", cfg.Log.Level).Str("color", cfg.Output.Color).Msg("runtime ready")
	return nil
}

// Close writes the metrics textfile, if configured, and closes the logger.
// Safe to call when setup never ran.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Metrics != nil && rt.Config.Metrics.Textfile != "" {
		if err := rt.Metrics.WriteTextfile(rt.Config.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}
	if rt.Log != nil {
		errs = append(errs, rt.Log.Close())
	}
	return errors.Join(errs...)
}

func (rt *Runtime) newSession() *session.Session {
	return session.New(session.Options{
		Logger:         rt.Log.Logger,
		Metrics:        rt.Metrics,
		GraphCacheSize: rt.Config.Graph.CacheSize,
	})
}

func (rt *Runtime) printer() *output.Printer {
	p := output.NewPrinter(rt.Out, rt.Styles)
	p.Precision = rt.Config.Output.Precision
	p.Grid = rt.Config.Output.Grid
	return p
}

// openInput loads a .fabin container or a FASTA file, chosen by extension.
func openInput(ctx context.Context, sess *session.Session, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".fabin") {
		_, err := sess.Decode(path)
		return err
	}
	_, err := sess.Load(ctx, path)
	return err
}
