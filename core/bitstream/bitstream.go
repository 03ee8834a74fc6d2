// Package bitstream packs bit strings into bytes, most significant bit first,
// on top of github.com/icza/bitio. A partial final byte is padded with zeros.
package bitstream

import (
	"bytes"
	"io"

	"github.com/icza/bitio"

	"fabin-core/huffman"
)

// Writer is a huffman.BitWriter that packs bits into an io.Writer.
type Writer struct {
	w *bitio.Writer
	n uint64
}

// NewWriter returns a Writer over out. Nothing is guaranteed to reach out
// until Close.
func NewWriter(out io.Writer) *Writer {
	// hide any Close method so the caller keeps ownership of out
	return &Writer{w: bitio.NewWriter(struct{ io.Writer }{out})}
}

// WriteBit appends one bit. Any non-zero value is written as 1.
func (w *Writer) WriteBit(bit uint8) error {
	if err := w.w.WriteBool(bit != 0); err != nil {
		return err
	}
	w.n++
	return nil
}

// WriteBits appends every bit of b.
func (w *Writer) WriteBits(b huffman.Bits) error {
	for _, bit := range b {
		if err := w.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// Bits is the number of bits written so far.
func (w *Writer) Bits() uint64 { return w.n }

// Close pads the last byte with zeros and flushes.
func (w *Writer) Close() error { return w.w.Close() }

// Reader is a huffman.BitReader over packed bytes. It returns io.EOF once the
// underlying reader is exhausted.
type Reader struct {
	r *bitio.Reader
	n uint64
}

// NewReader returns a Reader over in. If in is not an io.ByteReader it gets
// buffered, so bytes past the bits consumed may be read ahead.
func NewReader(in io.Reader) *Reader {
	return &Reader{r: bitio.NewReader(in)}
}

// ReadBit returns the next bit.
func (r *Reader) ReadBit() (uint8, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		return 0, err
	}
	r.n++
	if b {
		return 1, nil
	}
	return 0, nil
}

// Bits is the number of bits read so far.
func (r *Reader) Bits() uint64 { return r.n }

// Pack returns b packed into ceil(len(b)/8) bytes.
func Pack(b huffman.Bits) []byte {
	var buf bytes.Buffer
	buf.Grow((len(b) + 7) / 8)
	w := NewWriter(&buf)
	// writes into a bytes.Buffer cannot fail
	_ = w.WriteBits(b)
	_ = w.Close()
	return buf.Bytes()
}

// Unpack expands the first n bits of data. A negative n, or one past the end
// of data, yields every bit including padding.
func Unpack(data []byte, n int) huffman.Bits {
	if n < 0 || n > 8*len(data) {
		n = 8 * len(data)
	}
	out := make(huffman.Bits, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, (data[i/8]>>uint(7-i%8))&1)
	}
	return out
}

var (
	_ huffman.BitWriter = (*Writer)(nil)
	_ huffman.BitReader = (*Reader)(nil)
)
