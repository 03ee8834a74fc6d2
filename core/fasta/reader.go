// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"fabin-core/seq"
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Load reads every record of the FASTA file at path. "-" reads stdin; gzip
// input is decompressed transparently.
func Load(path string) ([]seq.Sequence, error) {
	return LoadCtx(context.Background(), path)
}

// LoadCtx is Load with cancellation checked between lines.
func LoadCtx(ctx context.Context, path string) ([]seq.Sequence, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return LoadReaderCtx(ctx, rc)
}

// LoadReader parses FASTA from r.
func LoadReader(r io.Reader) ([]seq.Sequence, error) {
	return LoadReaderCtx(context.Background(), r)
}

// LoadReaderCtx parses FASTA from r. The whole header text after '>' is the
// description. A record's line width is the length of its first data line.
// Lines are trimmed of surrounding whitespace; lines left empty are skipped,
// as are data lines before the first header.
func LoadReaderCtx(ctx context.Context, r io.Reader) ([]seq.Sequence, error) {
	sc := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		out   []seq.Sequence
		cur   *seq.Sequence
		sized bool
	)
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			out = append(out, seq.Sequence{Description: parseDescription(line[1:])})
			cur = &out[len(out)-1]
			sized = false
			continue
		}
		if cur == nil {
			continue
		}
		if !sized {
			cur.LineWidth = len(line)
			sized = true
		}
		cur.Data = append(cur.Data, line...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	return out, nil
}

func parseDescription(hdr []byte) string {
	return string(bytes.TrimSpace(hdr))
}
