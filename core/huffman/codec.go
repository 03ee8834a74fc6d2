package huffman

import (
	"errors"
	"fmt"
	"io"
)

// Encode returns the concatenated codes of text, in input order.
func (t *Tree) Encode(text []byte) (Bits, error) {
	w := &sliceWriter{}
	if _, err := t.EncodeTo(w, text); err != nil {
		return nil, err
	}
	return w.bits, nil
}

// EncodeTo writes the code of every byte of text to w and returns the number
// of bits written. It stops at the first byte without a code.
func (t *Tree) EncodeTo(w BitWriter, text []byte) (int, error) {
	if len(text) == 0 {
		return 0, nil
	}
	if t.Empty() {
		return 0, ErrEmptyTree
	}
	n := 0
	for i, c := range text {
		code, ok := t.codes[c]
		if !ok {
			return n, &UnknownSymbolError{Symbol: c, Offset: i}
		}
		for _, bit := range code {
			if err := w.WriteBit(bit); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// Decode walks the tree once per symbol until bits run out. Trailing bits
// that do not reach a leaf are dropped.
func (t *Tree) Decode(bits Bits) ([]byte, error) {
	if len(bits) == 0 {
		return []byte{}, nil
	}
	if t.Empty() {
		return nil, ErrEmptyTree
	}
	r := &sliceReader{bits: bits}
	out := make([]byte, 0, len(bits)/2+1)
	for {
		s, err := t.next(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

// maxPrealloc bounds the buffer DecodeFrom reserves up front, since n may
// come from an untrusted header.
const maxPrealloc = 1 << 20

// DecodeFrom reads exactly n symbols from r. Bits past the n-th symbol are
// left unread, so r can be shared by consecutive calls.
func (t *Tree) DecodeFrom(r BitReader, n uint64) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if t.Empty() {
		return nil, ErrEmptyTree
	}
	c := n
	if c > maxPrealloc {
		c = maxPrealloc
	}
	out := make([]byte, 0, c)
	for i := uint64(0); i < n; i++ {
		s, err := t.next(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return out, fmt.Errorf("huffman: decoded %d of %d symbols: %w", i, n, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// next decodes one symbol. A lone-leaf tree consumes one bit per symbol.
func (t *Tree) next(r BitReader) (byte, error) {
	cur := t.root
	if t.nodes[cur].isLeaf() {
		if _, err := r.ReadBit(); err != nil {
			return 0, err
		}
		return t.nodes[cur].symbol, nil
	}
	for !t.nodes[cur].isLeaf() {
		bit, err := r.ReadBit()
		if err != nil {
			if errors.Is(err, io.EOF) && cur != t.root {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if bit == 0 {
			cur = t.nodes[cur].left
		} else {
			cur = t.nodes[cur].right
		}
	}
	return t.nodes[cur].symbol, nil
}
