// Package container reads and writes .fabin files.
//
// Layout, all integers little-endian:
//
//	uint16  symbol count N
//	N x     uint8 symbol, uint64 frequency   (ascending symbol order)
//	uint32  sequence count S
//	S x     uint16 description length L, L bytes description,
//	        uint64 base count, uint16 line width
//	...     Huffman codes of every sequence, in order, MSB first,
//	        zero padded to a whole byte
//
// The code tree is rebuilt from the frequency table on read, so the table is
// the only tree state stored.
package container

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"fabin-core/bitstream"
	"fabin-core/huffman"
	"fabin-core/seq"
)

var (
	// ErrHeaderOverflow means a value does not fit its header field.
	ErrHeaderOverflow = errors.New("container: header field overflow")
	// ErrCorrupt means the header is well formed but inconsistent.
	ErrCorrupt = errors.New("container: corrupt file")
)

var order = binary.LittleEndian

// Entry is the per-sequence header record.
type Entry struct {
	Description string
	Bases       uint64
	LineWidth   uint16
}

// Header is everything before the packed bits.
type Header struct {
	Frequencies huffman.FrequencyTable
	Entries     []Entry
}

// Stats summarises one Write or Read.
type Stats struct {
	Symbols     int
	Sequences   int
	Bases       uint64
	PayloadBits uint64
}

// HeaderFor derives the header of seqs.
func HeaderFor(seqs []seq.Sequence) (Header, error) {
	if uint64(len(seqs)) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: %d sequences", ErrHeaderOverflow, len(seqs))
	}
	h := Header{
		Frequencies: make(huffman.FrequencyTable),
		Entries:     make([]Entry, len(seqs)),
	}
	for i := range seqs {
		s := &seqs[i]
		if len(s.Description) > math.MaxUint16 {
			return Header{}, fmt.Errorf("%w: description of sequence %d is %d bytes", ErrHeaderOverflow, i, len(s.Description))
		}
		if s.LineWidth < 0 || s.LineWidth > math.MaxUint16 {
			return Header{}, fmt.Errorf("%w: line width %d of %q", ErrHeaderOverflow, s.LineWidth, s.Description)
		}
		h.Frequencies.Add(s.Data)
		h.Entries[i] = Entry{Description: s.Description, Bases: uint64(len(s.Data)), LineWidth: uint16(s.LineWidth)}
	}
	return h, nil
}

// Bases is the total base count over all entries.
func (h Header) Bases() uint64 {
	var n uint64
	for _, e := range h.Entries {
		n += e.Bases
	}
	return n
}

// WriteTo serialises the header.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	syms := h.Frequencies.Symbols()
	if len(syms) > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d symbols", ErrHeaderOverflow, len(syms))
	}
	put := func(v any) error { return binary.Write(cw, order, v) }

	if err := put(uint16(len(syms))); err != nil {
		return cw.n, err
	}
	for _, s := range syms {
		if err := put(s); err != nil {
			return cw.n, err
		}
		if err := put(h.Frequencies[s]); err != nil {
			return cw.n, err
		}
	}
	if err := put(uint32(len(h.Entries))); err != nil {
		return cw.n, err
	}
	for _, e := range h.Entries {
		if err := put(uint16(len(e.Description))); err != nil {
			return cw.n, err
		}
		if _, err := io.WriteString(cw, e.Description); err != nil {
			return cw.n, err
		}
		if err := put(e.Bases); err != nil {
			return cw.n, err
		}
		if err := put(e.LineWidth); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// ReadHeader parses the header from r. A short read is reported as
// io.ErrUnexpectedEOF.
func ReadHeader(r io.Reader) (Header, error) {
	get := func(what string, v any) error {
		if err := binary.Read(r, order, v); err != nil {
			return fmt.Errorf("container: reading %s: %w", what, unexpected(err))
		}
		return nil
	}

	var n uint16
	if err := get("symbol count", &n); err != nil {
		return Header{}, err
	}
	h := Header{Frequencies: make(huffman.FrequencyTable, n)}
	for i := 0; i < int(n); i++ {
		var sym uint8
		var freq uint64
		if err := get("symbol", &sym); err != nil {
			return Header{}, err
		}
		if err := get("frequency", &freq); err != nil {
			return Header{}, err
		}
		if _, dup := h.Frequencies[sym]; dup {
			return Header{}, fmt.Errorf("%w: symbol %#02x listed twice", ErrCorrupt, sym)
		}
		h.Frequencies[sym] = freq
	}

	var count uint32
	if err := get("sequence count", &count); err != nil {
		return Header{}, err
	}
	for i := uint32(0); i < count; i++ {
		var l uint16
		if err := get("description length", &l); err != nil {
			return Header{}, err
		}
		desc := make([]byte, l)
		if _, err := io.ReadFull(r, desc); err != nil {
			return Header{}, fmt.Errorf("container: reading description: %w", unexpected(err))
		}
		e := Entry{Description: string(desc)}
		if err := get("base count", &e.Bases); err != nil {
			return Header{}, err
		}
		if err := get("line width", &e.LineWidth); err != nil {
			return Header{}, err
		}
		h.Entries = append(h.Entries, e)
	}

	if len(h.Frequencies) == 0 && h.Bases() > 0 {
		return Header{}, fmt.Errorf("%w: %d bases but no symbols", ErrCorrupt, h.Bases())
	}
	return h, nil
}

// Write encodes seqs to w.
func Write(w io.Writer, seqs []seq.Sequence) (Stats, error) {
	h, err := HeaderFor(seqs)
	if err != nil {
		return Stats{}, err
	}
	var tree *huffman.Tree
	if len(h.Frequencies) > 0 {
		if tree, err = huffman.Build(h.Frequencies); err != nil {
			return Stats{}, err
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := h.WriteTo(bw); err != nil {
		return Stats{}, err
	}
	bits := bitstream.NewWriter(bw)
	for i := range seqs {
		if _, err := tree.EncodeTo(bits, seqs[i].Data); err != nil {
			return Stats{}, fmt.Errorf("container: encoding %q: %w", seqs[i].Description, err)
		}
	}
	if err := bits.Close(); err != nil {
		return Stats{}, err
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, err
	}
	return h.stats(bits.Bits()), nil
}

// Read decodes a whole file from r.
func Read(r io.Reader) ([]seq.Sequence, Stats, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, Stats{}, err
	}
	var tree *huffman.Tree
	if len(h.Frequencies) > 0 {
		if tree, err = huffman.Build(h.Frequencies); err != nil {
			return nil, Stats{}, err
		}
	}

	// br is an io.ByteReader, so bitio reads from it directly
	bits := bitstream.NewReader(br)
	out := make([]seq.Sequence, len(h.Entries))
	for i, e := range h.Entries {
		data, err := tree.DecodeFrom(bits, e.Bases)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("container: decoding %q: %w", e.Description, err)
		}
		out[i] = seq.Sequence{Description: e.Description, Data: data, LineWidth: int(e.LineWidth)}
	}
	return out, h.stats(bits.Bits()), nil
}

func (h Header) stats(bits uint64) Stats {
	return Stats{
		Symbols:     len(h.Frequencies),
		Sequences:   len(h.Entries),
		Bases:       h.Bases(),
		PayloadBits: bits,
	}
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
