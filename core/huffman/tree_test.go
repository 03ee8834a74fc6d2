package huffman

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Build(FrequencyTable{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45})
	require.NoError(t, err)
	return tree
}

func TestBuild_Codes(t *testing.T) {
	tree := makeTestTree(t)

	expect := map[byte]string{
		'a': "1100",
		'b': "1101",
		'c': "100",
		'd': "101",
		'e': "111",
		'f': "0",
	}
	codes := tree.Codes()
	require.Len(t, codes, len(expect))
	for s, want := range expect {
		assert.Equal(t, want, codes[s].String(), "code for %q", s)
	}
	assert.Equal(t, uint64(100), tree.RootFrequency())
	assert.Equal(t, 6, tree.Len())
}

func TestBuild_Empty(t *testing.T) {
	tree, err := Build(FrequencyTable{})
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, ErrEmptyInput)

	var zero Tree
	assert.True(t, zero.Empty())
	_, err = zero.Encode([]byte("A"))
	assert.ErrorIs(t, err, ErrEmptyTree)
	_, err = zero.Decode(Bits{0, 1})
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestBuild_PrefixFree(t *testing.T) {
	freqs := CountBytes([]byte("ACGTTGCAAGGCTTNNNNAAAAAAAXX--RYKM"))
	tree, err := Build(freqs)
	require.NoError(t, err)

	codes := tree.Codes()
	require.Len(t, codes, len(freqs))
	for a, ca := range codes {
		require.NotEmpty(t, ca)
		for b, cb := range codes {
			if a == b {
				continue
			}
			assert.False(t, cb.HasPrefix(ca), "code %s of %q prefixes %s of %q", ca, a, cb, b)
		}
	}
}

func TestBuild_FullAlphabet(t *testing.T) {
	freqs := make(FrequencyTable, 256)
	for i := 0; i < 256; i++ {
		freqs[byte(i)] = uint64(i + 1)
	}
	tree, err := Build(freqs)
	require.NoError(t, err)
	assert.Equal(t, 256, tree.Len())
	assert.Equal(t, freqs, tree.Frequencies())
}

func TestSingleSymbol(t *testing.T) {
	tree, err := Build(FrequencyTable{'A': 7})
	require.NoError(t, err)

	code, ok := tree.Code('A')
	require.True(t, ok)
	assert.Equal(t, "0", code.String())

	bits, err := tree.Encode([]byte("AAAAAAA"))
	require.NoError(t, err)
	assert.Equal(t, "0000000", bits.String())

	out, err := tree.Decode(bits)
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAA", string(out))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, text := range []string{
		"ACGT",
		"AAAAACCCGT",
		"NNNNNNNNNNNNNNNNNNNNA",
		"ACGTURYKMSWBDHVNX-acgt",
	} {
		t.Run(text, func(t *testing.T) {
			tree, err := Build(CountBytes([]byte(text)))
			require.NoError(t, err)
			bits, err := tree.Encode([]byte(text))
			require.NoError(t, err)
			out, err := tree.Decode(bits)
			require.NoError(t, err)
			assert.Equal(t, text, string(out))
		})
	}
}

func TestEncode_UnknownSymbol(t *testing.T) {
	tree := makeTestTree(t)
	_, err := tree.Encode([]byte("abz"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	var use *UnknownSymbolError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, byte('z'), use.Symbol)
	assert.Equal(t, 2, use.Offset)
}

func TestDecode_DropsIncompleteTail(t *testing.T) {
	tree := makeTestTree(t)
	// "f" "a" then a dangling "11"
	out, err := tree.Decode(ParseBits("0" + "1100" + "11"))
	require.NoError(t, err)
	assert.Equal(t, "fa", string(out))
}

func TestDecodeFrom_SharedCursor(t *testing.T) {
	tree := makeTestTree(t)
	first, err := tree.Encode([]byte("fab"))
	require.NoError(t, err)
	second, err := tree.Encode([]byte("ecd"))
	require.NoError(t, err)

	// padding zeros would decode as extra 'f' symbols without a count
	stream := append(append(append(Bits{}, first...), second...), 0, 0, 0)
	r := &sliceReader{bits: stream}

	got1, err := tree.DecodeFrom(r, 3)
	require.NoError(t, err)
	got2, err := tree.DecodeFrom(r, 3)
	require.NoError(t, err)
	assert.Equal(t, "fab", string(got1))
	assert.Equal(t, "ecd", string(got2))

	_, err = tree.DecodeFrom(r, 5)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestEncodeTo_CountsBits(t *testing.T) {
	tree := makeTestTree(t)
	w := &sliceWriter{}
	n, err := tree.EncodeTo(w, []byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 4+4+3+3+3+1, n)
	assert.Equal(t, n, len(w.bits))

	out, err := tree.Decode(w.bits)
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("abcdef"), out))
}
