package graph

import (
	"container/heap"
	"math"
)

// Path is a route from source to destination, both included. Cost is -1 and
// Nodes is empty when the destination cannot be reached.
type Path struct {
	Nodes []Node
	Cost  float64
}

// Found reports whether the path reaches its destination.
func (p Path) Found() bool { return p.Cost >= 0 }

// Bases renders the bases along the path.
func (p Path) Bases() []byte {
	out := make([]byte, len(p.Nodes))
	for i, n := range p.Nodes {
		out[i] = n.Base
	}
	return out
}

// ShortestPath runs Dijkstra from src and stops once dst is settled.
func (g *Graph) ShortestPath(src, dst int) (Path, error) {
	if err := g.checkIndex(src); err != nil {
		return Path{Cost: -1}, err
	}
	if err := g.checkIndex(dst); err != nil {
		return Path{Cost: -1}, err
	}
	t := g.search(src, dst)
	return t.pathTo(g, dst), nil
}

// MostRemote finds, among nodes other than src holding the same base, the one
// with the highest route cost. Ties keep the lowest index. Unreachable nodes
// never win. The boolean is false when there is no candidate.
func (g *Graph) MostRemote(src int) (Path, bool, error) {
	if err := g.checkIndex(src); err != nil {
		return Path{Cost: -1}, false, err
	}
	t := g.search(src, -1)

	best, bestCost := -1, -1.0
	for _, i := range g.SameCharacterNodes(g.nodes[src].Base) {
		if i == src {
			continue
		}
		if c := t.cost(i); c > bestCost {
			best, bestCost = i, c
		}
	}
	if best < 0 {
		return Path{Cost: -1}, false, nil
	}
	return t.pathTo(g, best), true, nil
}

// tree is the result of a Dijkstra run.
type tree struct {
	dist   []float64
	parent []int
}

func (t *tree) cost(i int) float64 {
	if math.IsInf(t.dist[i], 1) {
		return -1
	}
	return t.dist[i]
}

func (t *tree) pathTo(g *Graph, dst int) Path {
	c := t.cost(dst)
	if c < 0 {
		return Path{Cost: -1}
	}
	var nodes []Node
	for cur := dst; cur != -1; cur = t.parent[cur] {
		nodes = append(nodes, g.nodes[cur])
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return Path{Nodes: nodes, Cost: c}
}

// search settles nodes from src in cost order. With dst >= 0 it stops as soon
// as dst is settled; otherwise it builds the full tree.
func (g *Graph) search(src, dst int) *tree {
	n := len(g.nodes)
	t := &tree{dist: make([]float64, n), parent: make([]int, n)}
	for i := range t.dist {
		t.dist[i] = math.Inf(1)
		t.parent[i] = -1
	}
	visited := make([]bool, n)

	t.dist[src] = 0
	pq := &distHeap{{node: src}}
	for pq.Len() > 0 {
		u := heap.Pop(pq).(entry).node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == dst {
			break
		}
		for _, e := range g.adj[u] {
			if d := t.dist[u] + e.Weight; d < t.dist[e.To] {
				t.dist[e.To] = d
				t.parent[e.To] = u
				heap.Push(pq, entry{node: e.To, dist: d})
			}
		}
	}
	return t
}

// type entry + type distHeap {{{

type entry struct {
	node int
	dist float64
}

type distHeap []entry

func (h distHeap) Len() int { return len(h) }

func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}

func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *distHeap) Pop() any {
	old := *h
	last := len(old) - 1
	x := old[last]
	*h = old[:last]
	return x
}

var _ heap.Interface = (*distHeap)(nil)

// }}}
