// Package graph turns a line-wrapped sequence into a grid graph and answers
// shortest-path queries over it.
//
// Every valid grid position is a node, numbered by a row-major scan. A node
// links to its up, down, left and right neighbours when those positions are
// valid. The weight of an edge between bases a and b is 1/(1+|a-b|), so
// similar bases are expensive to cross and dissimilar ones cheap.
package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned for positions or indices outside the graph.
var ErrInvalidPosition = errors.New("graph: invalid position")

// Grid is the 2D view a graph is built from.
type Grid interface {
	Rows() int
	Cols() int
	Valid(row, col int) bool
	At(row, col int) byte
}

// Node is one base of the grid.
type Node struct {
	Row, Col int
	Base     byte
}

// Edge is a directed link to node To.
type Edge struct {
	To     int
	Weight float64
}

type position struct{ row, col int }

// Graph is immutable after Build.
type Graph struct {
	nodes []Node
	adj   [][]Edge
	index map[position]int
}

var (
	dRow = [4]int{-1, 1, 0, 0}
	dCol = [4]int{0, 0, -1, 1}
)

// Build scans g and links 4-neighbours.
func Build(g Grid) *Graph {
	rows, cols := g.Rows(), g.Cols()
	gr := &Graph{index: make(map[position]int)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !g.Valid(r, c) {
				continue
			}
			gr.index[position{r, c}] = len(gr.nodes)
			gr.nodes = append(gr.nodes, Node{Row: r, Col: c, Base: g.At(r, c)})
		}
	}

	gr.adj = make([][]Edge, len(gr.nodes))
	for i, n := range gr.nodes {
		for k := 0; k < 4; k++ {
			j, ok := gr.index[position{n.Row + dRow[k], n.Col + dCol[k]}]
			if !ok {
				continue
			}
			gr.adj[i] = append(gr.adj[i], Edge{To: j, Weight: Weight(n.Base, gr.nodes[j].Base)})
		}
	}
	return gr
}

// Weight is the cost of moving between bases a and b.
func Weight(a, b byte) float64 {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return 1 / (1 + float64(d))
}

// Len is the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// IndexOf maps a grid position to its node index.
func (g *Graph) IndexOf(row, col int) (int, error) {
	i, ok := g.index[position{row, col}]
	if !ok {
		return -1, fmt.Errorf("%w: [%d,%d]", ErrInvalidPosition, row, col)
	}
	return i, nil
}

// Node returns node i. It panics when i is out of range.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Neighbors returns the outgoing edges of node i.
func (g *Graph) Neighbors(i int) []Edge {
	if i < 0 || i >= len(g.adj) {
		return nil
	}
	return g.adj[i]
}

// SameCharacterNodes lists, in index order, every node holding base.
func (g *Graph) SameCharacterNodes(base byte) []int {
	var out []int
	for i, n := range g.nodes {
		if n.Base == base {
			out = append(out, i)
		}
	}
	return out
}

func (g *Graph) checkIndex(i int) error {
	if i < 0 || i >= len(g.nodes) {
		return fmt.Errorf("%w: node %d of %d", ErrInvalidPosition, i, len(g.nodes))
	}
	return nil
}
