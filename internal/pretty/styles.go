// internal/pretty/styles.go
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles are the lipgloss styles used for terminal output. With colour off
// every style renders text unchanged.
type Styles struct {
	Color bool

	Prompt   lipgloss.Style
	Heading  lipgloss.Style
	OK       lipgloss.Style
	Error    lipgloss.Style
	Cost     lipgloss.Style
	Path     lipgloss.Style
	Endpoint lipgloss.Style
	Dim      lipgloss.Style
}

// ColorEnabled decides colour for mode auto|always|never. auto means w is a
// terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewStyles builds styles rendering to w.
func NewStyles(w io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	s := &Styles{
		Color:    color,
		Prompt:   r.NewStyle(),
		Heading:  r.NewStyle(),
		OK:       r.NewStyle(),
		Error:    r.NewStyle(),
		Cost:     r.NewStyle(),
		Path:     r.NewStyle(),
		Endpoint: r.NewStyle(),
		Dim:      r.NewStyle(),
	}
	if !color {
		return s
	}
	s.Prompt = s.Prompt.Foreground(lipgloss.Color("#3ddbd9")).Bold(true)
	s.Heading = s.Heading.Foreground(lipgloss.Color("#78a9ff")).Bold(true)
	s.OK = s.OK.Foreground(lipgloss.Color("#42be65"))
	s.Error = s.Error.Foreground(lipgloss.Color("#fa4d56")).Bold(true)
	s.Cost = s.Cost.Foreground(lipgloss.Color("#ff832b")).Bold(true)
	s.Path = s.Path.Foreground(lipgloss.Color("#4589ff")).Bold(true)
	s.Endpoint = s.Endpoint.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0f62fe")).Bold(true)
	s.Dim = s.Dim.Foreground(lipgloss.Color("#525252"))
	return s
}

// Plain returns colourless styles.
func Plain() *Styles { return NewStyles(io.Discard, false) }
