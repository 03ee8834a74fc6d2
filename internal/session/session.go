// internal/session/session.go
package session

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fabin-core/container"
	"fabin-core/fasta"
	"fabin-core/graph"
	"fabin-core/seq"
	"fabin/internal/metrics"
)

type Options struct {
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	GraphCacheSize int
}

// Session is the in-memory state shared by shell and CLI commands: the loaded
// collection and the graphs built from it. Not safe for concurrent use.
type Session struct {
	seqs    []seq.Sequence
	graphs  *graphCache
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func New(opts Options) *Session {
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Session{
		graphs:  newGraphCache(opts.GraphCacheSize),
		log:     opts.Logger,
		metrics: m,
	}
}

// Sequences returns the loaded collection. Callers must not modify it.
func (s *Session) Sequences() []seq.Sequence { return s.seqs }

func (s *Session) Len() int { return len(s.seqs) }

// Replace swaps in a new collection.
func (s *Session) Replace(seqs []seq.Sequence) {
	s.seqs = seqs
	s.Invalidate()
}

// Invalidate drops every cached graph. Called whenever sequence data changes.
func (s *Session) Invalidate() {
	if n := s.graphs.Len(); n > 0 {
		s.log.Debug().Int("graphs", n).Msg("graph cache cleared")
	}
	s.graphs.Reset()
}

// Load replaces the collection with the records of a FASTA file. On error the
// current collection is kept.
func (s *Session) Load(ctx context.Context, path string) (int, error) {
	return s.LoadAll(ctx, []string{path})
}

// LoadAll replaces the collection with the records of every file, in order.
func (s *Session) LoadAll(ctx context.Context, paths []string) (int, error) {
	var all []seq.Sequence
	for _, p := range paths {
		seqs, err := fasta.LoadCtx(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, &FileError{Kind: ErrFileUnreadable, Path: p, Err: err}
		}
		for i := range seqs {
			if n := seqs[i].UnknownSymbols(); n > 0 {
				s.log.Warn().Str("file", p).Str("sequence", seqs[i].Description).
					Int("symbols", n).Msg("non-IUPAC symbols in sequence")
			}
		}
		all = append(all, seqs...)
		s.log.Debug().Str("file", p).Int("sequences", len(seqs)).Msg("fasta read")
	}
	s.Replace(all)
	s.log.Info().Strs("files", paths).Int("sequences", len(all)).Msg("loaded")
	return len(all), nil
}

// Save writes the collection as FASTA.
func (s *Session) Save(path string) error {
	if len(s.seqs) == 0 {
		return ErrNoSequences
	}
	if err := fasta.Save(path, s.seqs); err != nil {
		return &FileError{Kind: ErrFileUnwritable, Path: path, Err: err}
	}
	s.log.Info().Str("file", path).Int("sequences", len(s.seqs)).Msg("saved")
	return nil
}

// Find returns the first sequence with the given description.
func (s *Session) Find(desc string) (*seq.Sequence, error) {
	if len(s.seqs) == 0 {
		return nil, ErrNoSequences
	}
	sq, ok := seq.Find(s.seqs, desc)
	if !ok {
		return nil, &SequenceError{Description: desc}
	}
	return sq, nil
}

func (s *Session) Histogram(desc string) (map[byte]int, error) {
	sq, err := s.Find(desc)
	if err != nil {
		return nil, err
	}
	return sq.Histogram(), nil
}

// CountOccurrences counts overlapping matches of sub over the collection.
func (s *Session) CountOccurrences(sub string) (int, error) {
	if len(s.seqs) == 0 {
		return 0, ErrNoSequences
	}
	return seq.CountOccurrences(s.seqs, []byte(sub)), nil
}

// Mask replaces matches of sub with X in every sequence.
func (s *Session) Mask(sub string) (int, error) {
	if len(s.seqs) == 0 {
		return 0, ErrNoSequences
	}
	n := seq.Mask(s.seqs, []byte(sub))
	s.Invalidate()
	s.log.Info().Str("subsequence", sub).Int("masked", n).Msg("masked")
	return n, nil
}

// Encode writes the collection to a .fabin container. A collection that does
// not fit the header format leaves an existing file at path untouched.
func (s *Session) Encode(path string) (st container.Stats, err error) {
	if len(s.seqs) == 0 {
		return container.Stats{}, ErrNoSequences
	}
	// Reject collections the header cannot describe before truncating path.
	if _, err := container.HeaderFor(s.seqs); err != nil {
		return container.Stats{}, &FileError{Kind: ErrFileUnwritable, Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return container.Stats{}, &FileError{Kind: ErrFileUnwritable, Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Kind: ErrFileUnwritable, Path: path, Err: cerr}
		}
	}()

	st, err = container.Write(f, s.seqs)
	if err != nil {
		return container.Stats{}, &FileError{Kind: ErrFileUnwritable, Path: path, Err: err}
	}
	s.metrics.EncodedBases.Add(float64(st.Bases))
	s.log.Info().
		Str("file", path).
		Int("sequences", st.Sequences).
		Int("symbols", st.Symbols).
		Uint64("bases", st.Bases).
		Uint64("bits", st.PayloadBits).
		Msg("encoded")
	return st, nil
}

// Decode replaces the collection with the contents of a .fabin container.
// On error the current collection is kept.
func (s *Session) Decode(path string) (container.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return container.Stats{}, &FileError{Kind: ErrFileUnreadable, Path: path, Err: err}
	}
	defer f.Close()

	seqs, st, err := container.Read(f)
	if err != nil {
		return container.Stats{}, &FileError{Kind: ErrFileUnreadable, Path: path, Err: err}
	}
	s.Replace(seqs)
	s.metrics.DecodedBases.Add(float64(st.Bases))
	s.log.Info().
		Str("file", path).
		Int("sequences", st.Sequences).
		Uint64("bases", st.Bases).
		Msg("decoded")
	return st, nil
}

// Route is the answer to a path query.
type Route struct {
	Description string
	From, To    seq.Position
	FromBase    byte
	ToBase      byte
	Path        graph.Path
}

// ShortestPath finds the cheapest route between two bases of one sequence.
// An unreachable destination returns the route with Cost -1 and
// ErrUnreachable.
func (s *Session) ShortestPath(desc string, from, to seq.Position) (Route, error) {
	sq, g, err := s.graphFor(desc, from, to)
	if err != nil {
		return Route{}, err
	}
	src, err := g.IndexOf(from.Row, from.Col)
	if err != nil {
		return Route{}, err
	}
	dst, err := g.IndexOf(to.Row, to.Col)
	if err != nil {
		return Route{}, err
	}

	start := time.Now()
	p, err := g.ShortestPath(src, dst)
	metrics.Since(s.metrics.ShortestPath, start)
	if err != nil {
		return Route{}, err
	}

	r := Route{
		Description: desc,
		From:        from,
		To:          to,
		FromBase:    sq.At(from.Row, from.Col),
		ToBase:      sq.At(to.Row, to.Col),
		Path:        p,
	}
	s.log.Debug().
		Str("sequence", desc).
		Ints("from", []int{from.Row, from.Col}).
		Ints("to", []int{to.Row, to.Col}).
		Float64("cost", p.Cost).
		Int("hops", len(p.Nodes)).
		Msg("shortest path")
	if !p.Found() {
		return r, ErrUnreachable
	}
	return r, nil
}

// MostRemote finds the same-base node farthest, by route cost, from the base
// at from.
func (s *Session) MostRemote(desc string, from seq.Position) (Route, error) {
	sq, g, err := s.graphFor(desc, from)
	if err != nil {
		return Route{}, err
	}
	src, err := g.IndexOf(from.Row, from.Col)
	if err != nil {
		return Route{}, err
	}

	start := time.Now()
	p, ok, err := g.MostRemote(src)
	metrics.Since(s.metrics.ShortestPath, start)
	if err != nil {
		return Route{}, err
	}
	r := Route{
		Description: desc,
		From:        from,
		FromBase:    sq.At(from.Row, from.Col),
		Path:        p,
	}
	if !ok {
		return r, ErrNoRemoteBase
	}
	last := p.Nodes[len(p.Nodes)-1]
	r.To = seq.Position{Row: last.Row, Col: last.Col}
	r.ToBase = last.Base
	s.log.Debug().
		Str("sequence", desc).
		Ints("from", []int{from.Row, from.Col}).
		Ints("remote", []int{last.Row, last.Col}).
		Float64("cost", p.Cost).
		Msg("most remote base")
	return r, nil
}

// graphFor resolves desc, checks every position and returns the sequence's
// graph, building it on first use.
func (s *Session) graphFor(desc string, positions ...seq.Position) (*seq.Sequence, *graph.Graph, error) {
	sq, err := s.Find(desc)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range positions {
		if !sq.Valid(p.Row, p.Col) {
			return nil, nil, &PositionError{Row: p.Row, Col: p.Col}
		}
	}
	if g, ok := s.graphs.Get(desc); ok {
		s.metrics.GraphCacheHits.Inc()
		return sq, g, nil
	}
	g := graph.Build(sq)
	s.graphs.Put(desc, g)
	s.metrics.GraphBuilds.Inc()
	s.log.Debug().Str("sequence", desc).Int("nodes", g.Len()).Msg("graph built")
	return sq, g, nil
}
