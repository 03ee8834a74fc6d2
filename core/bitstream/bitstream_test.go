package bitstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabin-core/huffman"
)

func TestPack(t *testing.T) {
	cases := []struct {
		bits string
		want []byte
	}{
		{"", []byte{}},
		{"1", []byte{0x80}},
		{"10110", []byte{0xB0}},
		{"11111111", []byte{0xFF}},
		{"000000001", []byte{0x00, 0x80}},
		{"0100000101", []byte{0x41, 0x40}},
	}
	for _, c := range cases {
		got := Pack(huffman.ParseBits(c.bits))
		assert.Equal(t, c.want, append([]byte{}, got...), "bits %q", c.bits)
	}
}

func TestUnpack(t *testing.T) {
	assert.Equal(t, "0100000101000000", Unpack([]byte{0x41, 0x40}, -1).String())
	assert.Equal(t, "0100000101", Unpack([]byte{0x41, 0x40}, 10).String())
	assert.Equal(t, "0100000101000000", Unpack([]byte{0x41, 0x40}, 99).String())
	assert.Empty(t, Unpack(nil, 3))
}

func TestWriterReader_RoundTrip(t *testing.T) {
	in := huffman.ParseBits("1100110110010111101")

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBits(in))
	assert.Equal(t, uint64(len(in)), w.Bits())
	require.NoError(t, w.Close())
	require.Equal(t, 3, buf.Len())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	got := make(huffman.Bits, 0, 24)
	for {
		b, err := r.ReadBit()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Len(t, got, 24)
	assert.Equal(t, in.String(), got[:len(in)].String())
	assert.Equal(t, "00000", got[len(in):].String())
	assert.Equal(t, uint64(24), r.Bits())
}

func TestWriter_DoesNotCloseUnderlying(t *testing.T) {
	cw := &closeTracker{}
	w := NewWriter(cw)
	require.NoError(t, w.WriteBit(1))
	require.NoError(t, w.Close())
	assert.False(t, cw.closed)
	assert.Equal(t, []byte{0x80}, cw.Bytes())
}

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestHuffmanOverStream(t *testing.T) {
	text := []byte("ACGTACGTTTTTNNA")
	tree, err := huffman.Build(huffman.CountBytes(text))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	n, err := tree.EncodeTo(w, text)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, (n+7)/8, buf.Len())

	out, err := tree.DecodeFrom(NewReader(&buf), uint64(len(text)))
	require.NoError(t, err)
	assert.Equal(t, string(text), string(out))
}
