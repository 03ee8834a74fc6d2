package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabin-core/container"
	"fabin-core/graph"
	"fabin-core/seq"
	"fabin/internal/metrics"
)

const sample = `>sq1 square
AC
GT
>sq2 line
ACAGA
>gapped
AC-G
`

func newSession(t *testing.T) (*Session, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return New(Options{Logger: zerolog.Nop(), Metrics: m, GraphCacheSize: 2}), m
}

func writeFasta(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(fn, []byte(body), 0o644))
	return fn
}

func loaded(t *testing.T) (*Session, *metrics.Metrics) {
	t.Helper()
	s, m := newSession(t)
	n, err := s.Load(context.Background(), writeFasta(t, sample))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return s, m
}

func TestLoad(t *testing.T) {
	s, _ := loaded(t)
	seqs := s.Sequences()
	assert.Equal(t, "sq1 square", seqs[0].Description)
	assert.Equal(t, 2, seqs[0].LineWidth)
	assert.Equal(t, "ACAGA", string(seqs[1].Data))
}

func TestLoad_MissingKeepsCollection(t *testing.T) {
	s, _ := loaded(t)
	missing := filepath.Join(t.TempDir(), "nope.fa")
	_, err := s.Load(context.Background(), missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, missing, fe.Path)
	assert.Equal(t, 3, s.Len())
}

func TestLoadAll_Concatenates(t *testing.T) {
	s, _ := newSession(t)
	a := writeFasta(t, ">a\nAC\n")
	b := writeFasta(t, ">b\nGT\n>c\nTT\n")
	n, err := s.LoadAll(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "c", s.Sequences()[2].Description)
}

func TestEmptyCollection(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.CountOccurrences("A")
	assert.ErrorIs(t, err, ErrNoSequences)
	_, err = s.Mask("A")
	assert.ErrorIs(t, err, ErrNoSequences)
	assert.ErrorIs(t, s.Save(filepath.Join(t.TempDir(), "x.fa")), ErrNoSequences)
	_, err = s.Encode(filepath.Join(t.TempDir(), "x.fabin"))
	assert.ErrorIs(t, err, ErrNoSequences)
	_, err = s.Histogram("a")
	assert.ErrorIs(t, err, ErrNoSequences)
	_, err = s.ShortestPath("a", seq.Position{}, seq.Position{})
	assert.ErrorIs(t, err, ErrNoSequences)
}

func TestHistogram(t *testing.T) {
	s, _ := loaded(t)
	h, err := s.Histogram("gapped")
	require.NoError(t, err)
	assert.Equal(t, map[byte]int{'A': 1, 'C': 1, '-': 1, 'G': 1}, h)

	_, err = s.Histogram("nope")
	assert.ErrorIs(t, err, ErrUnknownSequence)
}

func TestCountAndMask(t *testing.T) {
	s, m := loaded(t)
	n, err := s.CountOccurrences("AC")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// warm the cache so masking has something to drop
	_, err = s.ShortestPath("sq2 line", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 0, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphBuilds))

	n, err = s.Mask("AC")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "XXAGA", string(s.Sequences()[1].Data))
	assert.Equal(t, 0, s.graphs.Len())

	r, err := s.ShortestPath("sq2 line", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 0, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, byte('X'), r.FromBase)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GraphBuilds))
}

func TestSaveAndReload(t *testing.T) {
	s, _ := loaded(t)
	fn := filepath.Join(t.TempDir(), "out.fa")
	require.NoError(t, s.Save(fn))

	s2, _ := newSession(t)
	_, err := s2.Load(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, s.Sequences(), s2.Sequences())

	err = s.Save(filepath.Join(t.TempDir(), "missing", "out.fa"))
	assert.ErrorIs(t, err, ErrFileUnwritable)
}

func TestEncodeDecode(t *testing.T) {
	s, m := loaded(t)
	fn := filepath.Join(t.TempDir(), "out.fabin")
	st, err := s.Encode(fn)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Sequences)
	assert.Equal(t, uint64(13), st.Bases)
	assert.Equal(t, 13.0, testutil.ToFloat64(m.EncodedBases))

	s2, m2 := newSession(t)
	_, err = s2.Decode(fn)
	require.NoError(t, err)
	assert.Equal(t, s.Sequences(), s2.Sequences())
	assert.Equal(t, 13.0, testutil.ToFloat64(m2.DecodedBases))

	_, err = s2.Decode(filepath.Join(t.TempDir(), "nope.fabin"))
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.Equal(t, 3, s2.Len())

	_, err = s.Encode(filepath.Join(t.TempDir(), "missing", "x.fabin"))
	assert.ErrorIs(t, err, ErrFileUnwritable)
}

func TestDecode_Corrupt(t *testing.T) {
	s, _ := loaded(t)
	fn := filepath.Join(t.TempDir(), "bad.fabin")
	require.NoError(t, os.WriteFile(fn, []byte{0x01}, 0o644))
	_, err := s.Decode(fn)
	assert.ErrorIs(t, err, ErrFileUnreadable)
	assert.Equal(t, 3, s.Len())
}

func TestShortestPath(t *testing.T) {
	s, m := loaded(t)
	r, err := s.ShortestPath("sq1 square", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, byte('A'), r.FromBase)
	assert.Equal(t, byte('T'), r.ToBase)
	assert.Equal(t, "AGT", string(r.Path.Bases()))
	assert.InDelta(t, 3.0/14, r.Path.Cost, 1e-12)

	_, err = s.ShortestPath("sq1 square", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphBuilds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphCacheHits))
}

func TestShortestPath_Errors(t *testing.T) {
	s, _ := loaded(t)
	_, err := s.ShortestPath("nope", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, ErrUnknownSequence)

	_, err = s.ShortestPath("sq1 square", seq.Position{Row: 0, Col: 0}, seq.Position{Row: 2, Col: 0})
	var pe *PositionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PositionError{Row: 2, Col: 0}, *pe)
	assert.ErrorIs(t, err, graph.ErrInvalidPosition)

	_, err = s.ShortestPath("sq1 square", seq.Position{Row: -1, Col: 0}, seq.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, graph.ErrInvalidPosition)
}

func TestMostRemote(t *testing.T) {
	s, _ := loaded(t)
	r, err := s.MostRemote("sq2 line", seq.Position{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Equal(t, seq.Position{Row: 0, Col: 4}, r.To)
	assert.Equal(t, byte('A'), r.ToBase)
	assert.InDelta(t, 2.0/3+2.0/7, r.Path.Cost, 1e-12)

	_, err = s.MostRemote("sq1 square", seq.Position{Row: 0, Col: 0})
	assert.ErrorIs(t, err, ErrNoRemoteBase)

	_, err = s.MostRemote("sq1 square", seq.Position{Row: 5, Col: 5})
	assert.ErrorIs(t, err, graph.ErrInvalidPosition)
}

func TestGraphCacheEviction(t *testing.T) {
	s, m := loaded(t)
	origin := seq.Position{Row: 0, Col: 0}
	for _, d := range []string{"sq1 square", "sq2 line", "gapped", "sq1 square"} {
		_, err := s.ShortestPath(d, origin, origin)
		require.NoError(t, err)
	}
	// capacity 2: sq1 was evicted by gapped and rebuilt
	assert.Equal(t, 4.0, testutil.ToFloat64(m.GraphBuilds))
	assert.Equal(t, 2, s.graphs.Len())

	_, err := s.ShortestPath("sq1 square", origin, origin)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphCacheHits))
}

func TestLoad_WarnsOnUnknownSymbols(t *testing.T) {
	var logs bytes.Buffer
	s := New(Options{Logger: zerolog.New(&logs)})
	_, err := s.Load(context.Background(), writeFasta(t, ">odd\nAC*G\n>fine\nACGN\n"))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"sequence":"odd"`)
	assert.Contains(t, logs.String(), `"symbols":1`)
	assert.NotContains(t, logs.String(), `"sequence":"fine"`)
}

func TestEncode_HeaderOverflowKeepsExistingFile(t *testing.T) {
	s, _ := newSession(t)
	s.Replace([]seq.Sequence{seq.New("wide", strings.Repeat("A", 70000), 70000)})

	fn := filepath.Join(t.TempDir(), "keep.fabin")
	require.NoError(t, os.WriteFile(fn, []byte("previous contents"), 0o644))

	_, err := s.Encode(fn)
	require.ErrorIs(t, err, container.ErrHeaderOverflow)
	assert.ErrorIs(t, err, ErrFileUnwritable)

	got, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "previous contents", string(got))
}
