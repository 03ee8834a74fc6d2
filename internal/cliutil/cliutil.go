// internal/cliutil/cliutil.go
package cliutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands globs among input paths. Matches of one pattern
// are sorted; a path named twice is kept at its first position only. "-"
// passes through for stdin.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool, len(posArgs))
	add := func(p string) {
		if p != "-" && seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, a := range posArgs {
		if a == "-" || !hasGlobMeta(a) {
			add(a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		sort.Strings(m)
		for _, p := range m {
			add(p)
		}
	}
	return out, nil
}
