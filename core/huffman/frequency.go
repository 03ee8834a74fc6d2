package huffman

import "sort"

// FrequencyTable maps a byte to the number of times it occurs.
type FrequencyTable map[byte]uint64

// CountBytes adds one occurrence for every byte of each input.
func CountBytes(inputs ...[]byte) FrequencyTable {
	ft := make(FrequencyTable)
	for _, in := range inputs {
		ft.Add(in)
	}
	return ft
}

// Add counts every byte of data.
func (ft FrequencyTable) Add(data []byte) {
	for _, c := range data {
		ft[c]++
	}
}

// Symbols returns the symbols present in the table in ascending byte order.
func (ft FrequencyTable) Symbols() []byte {
	out := make([]byte, 0, len(ft))
	for s := range ft {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total is the sum of all frequencies.
func (ft FrequencyTable) Total() uint64 {
	var n uint64
	for _, f := range ft {
		n += f
	}
	return n
}

// Clone returns an independent copy.
func (ft FrequencyTable) Clone() FrequencyTable {
	out := make(FrequencyTable, len(ft))
	for s, f := range ft {
		out[s] = f
	}
	return out
}
