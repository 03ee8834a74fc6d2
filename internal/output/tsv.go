// internal/output/tsv.go
package output

import (
	"bufio"
	"fmt"
	"io"

	"fabin-core/seq"
)

// WriteSequencesTSV writes one row per sequence, optionally preceded by
// TSVHeader.
func WriteSequencesTSV(w io.Writer, seqs []seq.Sequence, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
			return err
		}
	}
	for i := range seqs {
		s := ToAPISequence(&seqs[i])
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%t\n",
			s.Description, s.Bases, s.KnownBases, s.LineWidth, s.Complete); err != nil {
			return err
		}
	}
	return bw.Flush()
}
