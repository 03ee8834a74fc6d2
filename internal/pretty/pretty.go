// internal/pretty/pretty.go
package pretty

import (
	"fmt"
	"strings"

	"fabin-core/graph"
)

// Options control the ASCII grid rendering.
type Options struct {
	// Cells shown around the route's bounding box. If <0, use default (2).
	Margin int

	// Show off-route bases instead of DotGlyph.
	ShowBases bool

	DotGlyph string // default "."
}

// DefaultOptions is the look used by the shell and the CLI.
var DefaultOptions = Options{
	Margin:    2,
	ShowBases: false,
	DotGlyph:  ".",
}

const linePrefix = "# "

type cell struct{ row, col int }

// RenderRoute draws the part of g around path. Route bases are printed, the
// two endpoints highlighted; other positions print DotGlyph (or their base
// when ShowBases is set) and positions past the end of the sequence are blank.
func RenderRoute(g graph.Grid, path []graph.Node, st *Styles, opt Options) string {
	if len(path) == 0 {
		return linePrefix + "(no route)\n"
	}
	if st == nil {
		st = Plain()
	}
	margin := opt.Margin
	if margin < 0 {
		margin = DefaultOptions.Margin
	}
	dot := opt.DotGlyph
	if dot == "" {
		dot = DefaultOptions.DotGlyph
	}

	on := make(map[cell]int, len(path))
	r0, r1, c0, c1 := path[0].Row, path[0].Row, path[0].Col, path[0].Col
	for i, n := range path {
		on[cell{n.Row, n.Col}] = i
		r0, r1 = min(r0, n.Row), max(r1, n.Row)
		c0, c1 = min(c0, n.Col), max(c1, n.Col)
	}
	r0, r1 = max(0, r0-margin), min(g.Rows()-1, r1+margin)
	c0, c1 = max(0, c0-margin), min(g.Cols()-1, c1+margin)

	var b strings.Builder
	fmt.Fprintf(&b, "%srows %d-%d, cols %d-%d\n", linePrefix, r0, r1, c0, c1)
	last := len(path) - 1
	for r := r0; r <= r1; r++ {
		b.WriteString(linePrefix)
		for c := c0; c <= c1; c++ {
			if !g.Valid(r, c) {
				b.WriteByte(' ')
				continue
			}
			base := string(g.At(r, c))
			i, hit := on[cell{r, c}]
			switch {
			case hit && (i == 0 || i == last):
				b.WriteString(st.Endpoint.Render(base))
			case hit:
				b.WriteString(st.Path.Render(base))
			case opt.ShowBases:
				b.WriteString(st.Dim.Render(base))
			default:
				b.WriteString(st.Dim.Render(dot))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
