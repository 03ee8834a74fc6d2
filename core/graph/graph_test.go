package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabin-core/seq"
)

// holeGrid is a fixed-width grid where '.' marks an invalid position.
type holeGrid struct {
	rows []string
}

func (g holeGrid) Rows() int { return len(g.rows) }
func (g holeGrid) Cols() int {
	if len(g.rows) == 0 {
		return 0
	}
	return len(g.rows[0])
}
func (g holeGrid) Valid(r, c int) bool {
	return r >= 0 && r < len(g.rows) && c >= 0 && c < len(g.rows[r]) && g.rows[r][c] != '.'
}
func (g holeGrid) At(r, c int) byte {
	if !g.Valid(r, c) {
		return 0
	}
	return g.rows[r][c]
}

func buildSeq(data string, width int) *Graph {
	s := seq.New("t", data, width)
	return Build(&s)
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 1.0, Weight('A', 'A'))
	assert.InDelta(t, 1.0/3, Weight('A', 'C'), 1e-12)
	assert.Equal(t, Weight('A', 'T'), Weight('T', 'A'))
	assert.InDelta(t, 1.0/256, Weight(0, 255), 1e-12)
}

func TestBuild_Layout(t *testing.T) {
	g := buildSeq("ACGTA", 2)
	require.Equal(t, 5, g.Len())

	assert.Equal(t, Node{Row: 0, Col: 0, Base: 'A'}, g.Node(0))
	assert.Equal(t, Node{Row: 2, Col: 0, Base: 'A'}, g.Node(4))

	i, err := g.IndexOf(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = g.IndexOf(2, 1)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	// corner (0,0) links down then right
	assert.Equal(t, []Edge{{To: 2, Weight: Weight('A', 'G')}, {To: 1, Weight: Weight('A', 'C')}}, g.Neighbors(0))
	// partial last row only links up
	assert.Equal(t, []Edge{{To: 2, Weight: Weight('A', 'G')}}, g.Neighbors(4))
	assert.Nil(t, g.Neighbors(99))
}

func TestBuild_EdgesSymmetric(t *testing.T) {
	g := buildSeq("ACGTTGCANNRYKM", 4)
	for i := 0; i < g.Len(); i++ {
		for _, e := range g.Neighbors(i) {
			back := false
			for _, r := range g.Neighbors(e.To) {
				if r.To == i {
					back = true
					assert.Equal(t, e.Weight, r.Weight)
				}
			}
			assert.True(t, back, "edge %d->%d has no reverse", i, e.To)
		}
	}
}

func TestShortestPath_Square(t *testing.T) {
	g := buildSeq("ACGT", 2)
	src, err := g.IndexOf(0, 0)
	require.NoError(t, err)
	dst, err := g.IndexOf(1, 1)
	require.NoError(t, err)

	p, err := g.ShortestPath(src, dst)
	require.NoError(t, err)
	assert.True(t, p.Found())
	assert.InDelta(t, 3.0/14, p.Cost, 1e-12)
	assert.Equal(t, "AGT", string(p.Bases()))
	assert.Equal(t, []Node{{0, 0, 'A'}, {1, 0, 'G'}, {1, 1, 'T'}}, p.Nodes)
}

func TestShortestPath_Self(t *testing.T) {
	g := buildSeq("ACGT", 2)
	p, err := g.ShortestPath(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Cost)
	assert.Equal(t, []Node{{1, 0, 'G'}}, p.Nodes)
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := Build(holeGrid{rows: []string{"A.C"}})
	require.Equal(t, 2, g.Len())

	p, err := g.ShortestPath(0, 1)
	require.NoError(t, err)
	assert.False(t, p.Found())
	assert.Equal(t, -1.0, p.Cost)
	assert.Empty(t, p.Nodes)
}

func TestShortestPath_InvalidIndex(t *testing.T) {
	g := buildSeq("", 0)
	assert.Equal(t, 0, g.Len())
	_, err := g.ShortestPath(0, 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	g = buildSeq("ACGT", 2)
	_, err = g.ShortestPath(0, 4)
	assert.ErrorIs(t, err, ErrInvalidPosition)
	_, err = g.ShortestPath(-1, 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestSameCharacterNodes(t *testing.T) {
	g := buildSeq("ACAGA", 5)
	assert.Equal(t, []int{0, 2, 4}, g.SameCharacterNodes('A'))
	assert.Equal(t, []int{3}, g.SameCharacterNodes('G'))
	assert.Empty(t, g.SameCharacterNodes('T'))
}

func TestMostRemote(t *testing.T) {
	g := buildSeq("ACAGA", 5)
	p, ok, err := g.MostRemote(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Node{0, 4, 'A'}, p.Nodes[len(p.Nodes)-1])
	assert.InDelta(t, 2.0/3+2.0/7, p.Cost, 1e-12)

	// the result matches a direct query
	direct, err := g.ShortestPath(0, 4)
	require.NoError(t, err)
	assert.Equal(t, direct, p)
}

func TestMostRemote_TieKeepsLowestIndex(t *testing.T) {
	g := buildSeq("CAC", 3)
	p, ok, err := g.MostRemote(1)
	require.NoError(t, err)
	require.False(t, ok, "A has no twin")

	p, ok, err = g.MostRemote(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Node{0, 2, 'C'}, p.Nodes[len(p.Nodes)-1])

	g = buildSeq("CACAC", 5)
	p, ok, err = g.MostRemote(2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Node{0, 0, 'C'}, p.Nodes[len(p.Nodes)-1])
	assert.InDelta(t, 2.0/3, p.Cost, 1e-12)
}

func TestMostRemote_NoCandidate(t *testing.T) {
	g := Build(holeGrid{rows: []string{"A.A"}})
	p, ok, err := g.MostRemote(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, -1.0, p.Cost)

	_, _, err = g.MostRemote(7)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}
