// internal/output/json.go
package output

import (
	"io"

	"fabin-core/seq"
	"fabin/internal/jsonutil"
	"fabin/internal/session"
	"fabin/pkg/api"
)

// ToAPIRoute converts a route to its stable JSON schema.
func ToAPIRoute(r session.Route) api.RouteV1 {
	nodes := make([]api.NodeV1, len(r.Path.Nodes))
	for i, n := range r.Path.Nodes {
		nodes[i] = api.NodeV1{Row: n.Row, Col: n.Col, Base: string(n.Base)}
	}
	return api.RouteV1{
		Sequence: r.Description,
		From:     [2]int{r.From.Row, r.From.Col},
		To:       [2]int{r.To.Row, r.To.Col},
		Path:     nodes,
		Cost:     r.Path.Cost,
		Found:    r.Path.Found(),
	}
}

func ToAPISequence(s *seq.Sequence) api.SequenceV1 {
	return api.SequenceV1{
		Description: s.Description,
		Bases:       s.Len(),
		KnownBases:  s.KnownBases(),
		LineWidth:   s.LineWidth,
		Complete:    s.IsComplete(),
	}
}

func WriteRouteJSON(w io.Writer, r session.Route) error {
	return jsonutil.EncodePretty(w, ToAPIRoute(r))
}

// WriteSequencesJSON writes the collection summary as a JSON array. An empty
// collection encodes as [].
func WriteSequencesJSON(w io.Writer, seqs []seq.Sequence) error {
	list := make([]api.SequenceV1, 0, len(seqs))
	for i := range seqs {
		list = append(list, ToAPISequence(&seqs[i]))
	}
	return jsonutil.EncodePretty(w, list)
}
