package huffman

import (
	"io"
	"strings"
)

// Bits is a bit string. Each element holds a single bit (0 or 1); any non-zero
// element is read as 1.
type Bits []uint8

// ParseBits converts a "0101" style string to Bits. Characters other than '0'
// and '1' are ignored.
func ParseBits(s string) Bits {
	out := make(Bits, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		}
	}
	return out
}

// String renders the bit string as ASCII zeros and ones.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// HasPrefix reports whether p is a prefix of b.
func (b Bits) HasPrefix(p Bits) bool {
	if len(p) > len(b) {
		return false
	}
	for i := range p {
		if (p[i] != 0) != (b[i] != 0) {
			return false
		}
	}
	return true
}

// BitWriter is the sink EncodeTo writes codes into.
type BitWriter interface {
	WriteBit(bit uint8) error
}

// BitReader is the cursor DecodeFrom consumes. Each call returns the next bit
// and advances; io.EOF signals that no bits remain.
type BitReader interface {
	ReadBit() (uint8, error)
}

// sliceReader adapts Bits to BitReader.
type sliceReader struct {
	bits Bits
	pos  int
}

func (r *sliceReader) ReadBit() (uint8, error) {
	if r.pos >= len(r.bits) {
		return 0, io.EOF
	}
	b := r.bits[r.pos]
	r.pos++
	if b != 0 {
		return 1, nil
	}
	return 0, nil
}

// sliceWriter adapts Bits to BitWriter.
type sliceWriter struct{ bits Bits }

func (w *sliceWriter) WriteBit(bit uint8) error {
	if bit != 0 {
		bit = 1
	}
	w.bits = append(w.bits, bit)
	return nil
}
