// Package seq holds the in-memory sequence record and its 2D grid view.
//
// A sequence of length L laid out at line width W occupies ceil(L/W) rows; the
// last row may be partial. Positions past the end of the data are not valid.
package seq

import "bytes"

// Gap is the alignment gap symbol. A sequence containing it is incomplete.
const Gap = '-'

// MaskSymbol replaces masked bases.
const MaskSymbol = 'X'

// HistogramOrder is the order histograms are reported in.
const HistogramOrder = "ACGTURYKMSWBDHVNX-"

// Sequence is one FASTA record.
type Sequence struct {
	Description string
	Data        []byte
	LineWidth   int
}

// Position addresses a base in the grid view.
type Position struct {
	Row, Col int
}

// New builds a Sequence from string data.
func New(desc, data string, width int) Sequence {
	return Sequence{Description: desc, Data: []byte(data), LineWidth: width}
}

func (s *Sequence) Len() int { return len(s.Data) }

// Rows is ceil(len/width), or 0 when the line width is 0.
func (s *Sequence) Rows() int {
	if s.LineWidth <= 0 {
		return 0
	}
	return (len(s.Data) + s.LineWidth - 1) / s.LineWidth
}

// Cols is the line width.
func (s *Sequence) Cols() int { return s.LineWidth }

// Valid reports whether (row, col) maps to an existing base.
func (s *Sequence) Valid(row, col int) bool {
	if row < 0 || col < 0 || col >= s.LineWidth {
		return false
	}
	off := row*s.LineWidth + col
	return off >= 0 && off < len(s.Data)
}

// At returns the base at (row, col), or 0 for an invalid position.
func (s *Sequence) At(row, col int) byte {
	if !s.Valid(row, col) {
		return 0
	}
	return s.Data[row*s.LineWidth+col]
}

// IsComplete reports whether the data is free of gaps.
func (s *Sequence) IsComplete() bool {
	return bytes.IndexByte(s.Data, Gap) < 0
}

// KnownBases counts non-gap bases.
func (s *Sequence) KnownBases() int {
	return len(s.Data) - bytes.Count(s.Data, []byte{Gap})
}

// Histogram counts every byte in the data.
func (s *Sequence) Histogram() map[byte]int {
	h := make(map[byte]int)
	for _, c := range s.Data {
		h[c]++
	}
	return h
}

// CountOccurrences counts matches of sub, overlapping ones included. An empty
// sub matches nothing.
func (s *Sequence) CountOccurrences(sub []byte) int {
	if len(sub) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(sub) <= len(s.Data); {
		j := bytes.Index(s.Data[i:], sub)
		if j < 0 {
			break
		}
		n++
		i += j + 1
	}
	return n
}

// Mask replaces every match of sub with MaskSymbol and returns the number of
// matches. The scan runs over the data as it is being rewritten, so a match
// that overlaps an already masked one is only counted when it still matches.
func (s *Sequence) Mask(sub []byte) int {
	if len(sub) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(sub) <= len(s.Data); {
		j := bytes.Index(s.Data[i:], sub)
		if j < 0 {
			break
		}
		at := i + j
		for k := range sub {
			s.Data[at+k] = MaskSymbol
		}
		n++
		i = at + 1
	}
	return n
}

// Clone returns a deep copy.
func (s Sequence) Clone() Sequence {
	s.Data = append([]byte(nil), s.Data...)
	return s
}
