package store

import "github.com/dd0wney/taxigraph/pkg/schema"

// Stats summarizes a graph or one airport's subgraph.
type Stats struct {
	Airport     string                  `json:"airport,omitempty"`
	Nodes       int                     `json:"nodes"`
	Edges       int                     `json:"edges"`
	NodesByKind map[schema.NodeKind]int `json:"nodesByKind"`
}
