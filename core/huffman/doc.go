// Package huffman builds Huffman prefix codes over single-byte alphabets and
// encodes/decodes byte strings with them.
//
// The tree is stored as an arena of nodes addressed by index; a tree with a
// single distinct symbol is a lone leaf whose code is "0".
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman
