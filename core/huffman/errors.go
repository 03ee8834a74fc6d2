package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by Build when the frequency table has no symbols.
	ErrEmptyInput = errors.New("huffman: empty frequency table")

	// ErrEmptyTree is returned when encoding or decoding with a tree that was
	// never built.
	ErrEmptyTree = errors.New("huffman: empty tree")

	// ErrUnknownSymbol matches every *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("huffman: unknown symbol")
)

// UnknownSymbolError reports a byte that has no code in the tree.
type UnknownSymbolError struct {
	Symbol byte
	Offset int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("huffman: symbol %q (0x%02x) at offset %d is not in the code table", e.Symbol, e.Symbol, e.Offset)
}

// Is lets errors.Is(err, ErrUnknownSymbol) match.
func (e *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}
