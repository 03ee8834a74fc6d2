// internal/cliutil/positions.go
package cliutil

import (
	"errors"
	"fmt"
	"strconv"

	"fabin-core/seq"
)

// ErrNotInteger marks a row or column argument that does not parse.
var ErrNotInteger = errors.New("not an integer")

// ParsePositions reads row/column pairs, as typed after a sequence
// description in the shell and on the command line. An odd trailing
// argument is ignored.
func ParsePositions(args []string) ([]seq.Position, error) {
	out := make([]seq.Position, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		r, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("row %q is %w", args[i], ErrNotInteger)
		}
		c, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("column %q is %w", args[i+1], ErrNotInteger)
		}
		out = append(out, seq.Position{Row: r, Col: c})
	}
	return out, nil
}
