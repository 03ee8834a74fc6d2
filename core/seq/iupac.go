// core/seq/iupac.go
package seq

/* -------------------------- IUPAC lookup table -------------------------- */

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T/U

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits // lower case
	}
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('U', 8)       // RNA
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any
	set('X', 1|2|4|8) // masked
}

// IsSymbol reports whether c is an IUPAC nucleotide code, the mask symbol or
// the gap.
func IsSymbol(c byte) bool {
	return c == Gap || iupacMask[c] != 0
}

// Expand lists the nucleotides an IUPAC code stands for, in ACGT order. It
// returns "" for the gap and for unknown bytes.
func Expand(c byte) string {
	m := iupacMask[c]
	out := make([]byte, 0, 4)
	for i, b := range []byte("ACGT") {
		if m&(1<<i) != 0 {
			out = append(out, b)
		}
	}
	return string(out)
}

// UnknownSymbols counts bytes of the data that are not IsSymbol.
func (s *Sequence) UnknownSymbols() int {
	n := 0
	for _, c := range s.Data {
		if !IsSymbol(c) {
			n++
		}
	}
	return n
}
