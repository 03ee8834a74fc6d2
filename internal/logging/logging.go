// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"fabin/internal/config"
)

// Level colours, IBM Carbon palette.
const (
	colorDebug = "#3ddbd9"
	colorInfo  = "#4589ff"
	colorWarn  = "#ff832b"
	colorError = "#da1e28"
	colorGray  = "#8d8d8d"
	colorText  = "#f4f4f4"
)

// Logger bundles the zerolog logger with whatever it writes to.
type Logger struct {
	zerolog.Logger
	SessionID string
	closers   []io.Closer
}

// Close releases the rotating log file, if any.
func (l *Logger) Close() error {
	var err error
	for _, c := range l.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// New builds the logger for cfg, writing console or JSON records to stderr and
// JSON records to the rotating file when one is configured.
func New(cfg config.LogConfig, stderr io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var sinks []io.Writer
	switch strings.ToLower(cfg.Format) {
	case "json":
		sinks = append(sinks, stderr)
	default:
		sinks = append(sinks, ConsoleWriter(stderr, IsTerminal(stderr)))
	}

	l := &Logger{SessionID: uuid.NewString()}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		sinks = append(sinks, lj)
		l.closers = append(l.closers, lj)
	}

	var out io.Writer = sinks[0]
	if len(sinks) > 1 {
		out = zerolog.MultiLevelWriter(sinks...)
	}
	l.Logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", l.SessionID).
		Logger()
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// ParseLevel maps a config level to zerolog.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("%w %q", config.ErrInvalidLevel, s)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConsoleWriter renders records for humans, with lipgloss level badges when
// color is true.
func ConsoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: "15:04:05",
		// the session id is only useful in the JSON file sink
		FieldsExclude: []string{"session"},
	}
	if !color {
		return cw
	}

	cw.FormatLevel = func(i any) string {
		lvl := strings.ToLower(fmt.Sprint(i))
		bg := colorGray
		switch lvl {
		case "debug":
			bg = colorDebug
		case "info":
			bg = colorInfo
		case "warn":
			bg = colorWarn
		case "error", "fatal", "panic":
			bg = colorError
		}
		tag := strings.ToUpper(lvl)
		if len(tag) > 3 {
			tag = tag[:3]
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(bg)).
			Padding(0, 1).
			Render(tag)
	}
	cw.FormatTimestamp = func(i any) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(fmt.Sprintf("[%s]", i))
	}
	cw.FormatFieldName = func(i any) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorInfo)).Render(fmt.Sprint(i)) + "="
	}
	cw.FormatMessage = func(i any) string {
		if i == nil {
			return ""
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Render(fmt.Sprint(i))
	}
	return cw
}
