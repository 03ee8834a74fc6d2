// core/fasta/writer.go
package fasta

import (
	"bufio"
	"io"

	"fabin-core/seq"
)

// Save writes seqs to path. "-" writes stdout; a .gz suffix compresses.
func Save(path string, seqs []seq.Sequence) (err error) {
	wc, err := createWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(wc, seqs)
}

// Write emits each record as a '>' header followed by its data wrapped at the
// record's line width. A width of 0 puts all data on one line.
func Write(w io.Writer, seqs []seq.Sequence) error {
	bw := bufio.NewWriter(w)
	for i := range seqs {
		s := &seqs[i]
		bw.WriteByte('>')
		bw.WriteString(s.Description)
		bw.WriteByte('\n')

		width := s.LineWidth
		if width <= 0 {
			width = len(s.Data)
		}
		for off := 0; off < len(s.Data); off += width {
			end := off + width
			if end > len(s.Data) {
				end = len(s.Data)
			}
			bw.Write(s.Data[off:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
