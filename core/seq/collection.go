package seq

// Find returns the first sequence whose description is desc.
func Find(seqs []Sequence, desc string) (*Sequence, bool) {
	for i := range seqs {
		if seqs[i].Description == desc {
			return &seqs[i], true
		}
	}
	return nil, false
}

// CountOccurrences sums Sequence.CountOccurrences over seqs.
func CountOccurrences(seqs []Sequence, sub []byte) int {
	n := 0
	for i := range seqs {
		n += seqs[i].CountOccurrences(sub)
	}
	return n
}

// Mask masks sub in every sequence and returns the total number of matches.
func Mask(seqs []Sequence, sub []byte) int {
	n := 0
	for i := range seqs {
		n += seqs[i].Mask(sub)
	}
	return n
}

// TotalBases is the sum of sequence lengths.
func TotalBases(seqs []Sequence) uint64 {
	var n uint64
	for i := range seqs {
		n += uint64(len(seqs[i].Data))
	}
	return n
}
