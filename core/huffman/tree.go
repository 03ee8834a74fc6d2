package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each symbol of a tree to its code.
type CodeTable map[byte]Bits

// node is an arena entry. Leaves have left == right == -1; internal nodes
// always have both children.
type node struct {
	freq   uint64
	left   int32
	right  int32
	symbol byte
}

func (n node) isLeaf() bool { return n.left < 0 }

// Tree is a Huffman code tree. The zero value is an empty tree.
type Tree struct {
	nodes []node
	root  int32
	freqs FrequencyTable
	codes CodeTable
}

// Build constructs the tree for freqs. Symbols are seeded in ascending byte
// order and ties between equal frequencies go to the node queued first.
func Build(freqs FrequencyTable) (*Tree, error) {
	if len(freqs) == 0 {
		return nil, ErrEmptyInput
	}

	symbols := freqs.Symbols()
	t := &Tree{
		nodes: make([]node, 0, 2*len(symbols)-1),
		freqs: freqs.Clone(),
	}

	h := make(nodeHeap, 0, len(symbols))
	for _, s := range symbols {
		idx := t.add(node{symbol: s, freq: freqs[s], left: -1, right: -1})
		h = append(h, queued{index: idx, freq: freqs[s], seq: len(h)})
	}
	heap.Init(&h)

	seq := h.Len()
	for h.Len() > 1 {
		a := heap.Pop(&h).(queued)
		b := heap.Pop(&h).(queued)

		sum := a.freq + b.freq
		if sum < a.freq {
			sum = math.MaxUint64
		}
		idx := t.add(node{freq: sum, left: a.index, right: b.index})
		heap.Push(&h, queued{index: idx, freq: sum, seq: seq})
		seq++
	}
	t.root = heap.Pop(&h).(queued).index

	assert.Assertf(len(t.nodes) == 2*len(symbols)-1, "tree has %d nodes for %d symbols", len(t.nodes), len(symbols))

	t.codes = make(CodeTable, len(symbols))
	t.assign(t.root, nil)
	return t, nil
}

func (t *Tree) add(n node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// assign walks root to leaf, appending 0 for left and 1 for right.
func (t *Tree) assign(idx int32, prefix Bits) {
	n := t.nodes[idx]
	if n.isLeaf() {
		if len(prefix) == 0 {
			prefix = Bits{0}
		}
		t.codes[n.symbol] = append(Bits(nil), prefix...)
		return
	}
	assert.Assertf(n.right >= 0, "internal node %d has a single child", idx)
	t.assign(n.left, append(prefix, 0))
	t.assign(n.right, append(prefix, 1))
}

// Empty reports whether the tree holds no symbols.
func (t *Tree) Empty() bool { return t == nil || len(t.nodes) == 0 }

// Len is the number of distinct symbols.
func (t *Tree) Len() int {
	if t.Empty() {
		return 0
	}
	return len(t.codes)
}

// Codes returns a copy of the code table.
func (t *Tree) Codes() CodeTable {
	out := make(CodeTable, t.Len())
	if t.Empty() {
		return out
	}
	for s, c := range t.codes {
		out[s] = append(Bits(nil), c...)
	}
	return out
}

// Code returns the code for symbol s.
func (t *Tree) Code(s byte) (Bits, bool) {
	if t.Empty() {
		return nil, false
	}
	c, ok := t.codes[s]
	return c, ok
}

// Frequencies returns a copy of the table the tree was built from.
func (t *Tree) Frequencies() FrequencyTable {
	if t.Empty() {
		return FrequencyTable{}
	}
	return t.freqs.Clone()
}

// RootFrequency is the frequency stored at the root, i.e. the saturated sum of
// every symbol's frequency.
func (t *Tree) RootFrequency() uint64 {
	if t.Empty() {
		return 0
	}
	return t.nodes[t.root].freq
}

// type queued + type nodeHeap {{{

type queued struct {
	index int32
	freq  uint64
	seq   int
}

type nodeHeap []queued

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(queued)) }

func (h *nodeHeap) Pop() any {
	old := *h
	last := len(old) - 1
	x := old[last]
	*h = old[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
