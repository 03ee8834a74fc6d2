// pkg/api/route_v1.go
package api

// NodeV1 is one base on a route.
type NodeV1 struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Base string `json:"base"`
}

// RouteV1 is the stable JSON schema for shortest-path and remote-base answers.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RouteV1 struct {
	Sequence string   `json:"sequence"`
	From     [2]int   `json:"from"`
	To       [2]int   `json:"to"`
	Path     []NodeV1 `json:"path"`
	Cost     float64  `json:"cost"` // -1 when not found
	Found    bool     `json:"found"`
}
