// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"fabin-core/graph"
	"fabin-core/seq"
	"fabin/internal/pretty"
	"fabin/internal/session"
)

// Printer renders command results as text.
type Printer struct {
	W         io.Writer
	Styles    *pretty.Styles
	Precision int
	// Grid draws routes on the sequence grid below the summary line.
	Grid bool
}

func NewPrinter(w io.Writer, st *pretty.Styles) *Printer {
	if st == nil {
		st = pretty.Plain()
	}
	return &Printer{W: w, Styles: st, Precision: DefaultPrecision}
}

func (p *Printer) println(s string) error {
	_, err := fmt.Fprintln(p.W, s)
	return err
}

func (p *Printer) ok(format string, a ...any) error {
	return p.println(p.Styles.OK.Render(fmt.Sprintf(format, a...)))
}

func (p *Printer) Loaded(path string, n int) error {
	switch n {
	case 0:
		return p.println(fmt.Sprintf("%s contains no sequences.", path))
	case 1:
		return p.ok("1 sequence loaded from %s.", path)
	}
	return p.ok("%d sequences loaded from %s.", n, path)
}

// Sequences lists each sequence with its base count. A sequence with gaps
// reports its known bases as a lower bound.
func (p *Printer) Sequences(seqs []seq.Sequence) error {
	if len(seqs) == 0 {
		return p.println("No sequences loaded in memory.")
	}
	noun := "sequences"
	if len(seqs) == 1 {
		noun = "sequence"
	}
	if err := p.println(p.Styles.Heading.Render(fmt.Sprintf("%d %s loaded in memory:", len(seqs), noun))); err != nil {
		return err
	}
	for i := range seqs {
		s := &seqs[i]
		var line string
		if s.IsComplete() {
			line = fmt.Sprintf("Sequence %s contains %d bases.", s.Description, s.Len())
		} else {
			line = fmt.Sprintf("Sequence %s contains at least %d bases.", s.Description, s.KnownBases())
		}
		if err := p.println(line); err != nil {
			return err
		}
	}
	return nil
}

// Histogram prints counts in seq.HistogramOrder, then any other symbols in
// byte order.
func (p *Printer) Histogram(h map[byte]int) error {
	var extra []byte
	for c := range h {
		if strings.IndexByte(seq.HistogramOrder, c) < 0 {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	order := append([]byte(seq.HistogramOrder), extra...)
	for _, c := range order {
		n, ok := h[c]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(p.W, "%c : %d\n", c, n); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) Occurrences(n int) error {
	if n == 0 {
		return p.println("The subsequence does not occur in the loaded sequences.")
	}
	return p.println(fmt.Sprintf("The subsequence occurs %d times in the loaded sequences.", n))
}

func (p *Printer) Masked(n int) error {
	if n == 0 {
		return p.println("The subsequence does not occur in the loaded sequences, so nothing was masked.")
	}
	return p.ok("%d subsequences were masked in the loaded sequences.", n)
}

func (p *Printer) Saved(path string) error {
	return p.ok("Sequences saved to %s.", path)
}

func (p *Printer) Encoded(path string) error {
	return p.ok("Sequences encoded and stored in %s.", path)
}

func (p *Printer) Decoded(path string) error {
	return p.ok("Sequences decoded from %s and loaded in memory.", path)
}

func (p *Printer) cost(c float64) string {
	return p.Styles.Cost.Render(fmt.Sprintf("%.*f", p.Precision, c))
}

func (p *Printer) bases(r session.Route) string {
	parts := make([]string, len(r.Path.Nodes))
	for i, n := range r.Path.Nodes {
		parts[i] = p.Styles.Path.Render(string(n.Base))
	}
	return strings.Join(parts, " -> ")
}

// Route prints a found shortest-path answer. Unreachable destinations are
// reported by the caller through Message.
func (p *Printer) Route(r session.Route, g graph.Grid) error {
	line := fmt.Sprintf(
		"For sequence %s, the shortest route between base %c at [%d,%d] and base %c at [%d,%d] is: %s. The total cost of the route is: %s",
		r.Description,
		r.FromBase, r.From.Row, r.From.Col,
		r.ToBase, r.To.Row, r.To.Col,
		p.bases(r), p.cost(r.Path.Cost),
	)
	if err := p.println(line); err != nil {
		return err
	}
	return p.grid(r, g)
}

// Remote prints a most-remote-base answer.
func (p *Printer) Remote(r session.Route, g graph.Grid) error {
	line := fmt.Sprintf(
		"For sequence %s, the remote base is located at [%d,%d], and the route between the base at [%d,%d] and the remote base at [%d,%d] is: %s. The total cost of the route is: %s",
		r.Description,
		r.To.Row, r.To.Col,
		r.From.Row, r.From.Col,
		r.To.Row, r.To.Col,
		p.bases(r), p.cost(r.Path.Cost),
	)
	if err := p.println(line); err != nil {
		return err
	}
	return p.grid(r, g)
}

func (p *Printer) grid(r session.Route, g graph.Grid) error {
	if !p.Grid || g == nil || len(r.Path.Nodes) == 0 {
		return nil
	}
	_, err := io.WriteString(p.W, pretty.RenderRoute(g, r.Path.Nodes, p.Styles, pretty.DefaultOptions))
	return err
}
