// pkg/api/sequence_v1.go
package api

// SequenceV1 summarises one loaded sequence.
type SequenceV1 struct {
	Description string `json:"description"`
	Bases       int    `json:"bases"`
	KnownBases  int    `json:"known_bases"`
	LineWidth   int    `json:"line_width"`
	Complete    bool   `json:"complete"`
}
