package api

import "github.com/dd0wney/taxigraph/pkg/schema"

// EdgeRequest is the body of a propose-edge mutation. Bidirectional
// defaults to true, matching how taxiway segments are usually drawn;
// one-way runway entry points pass false explicitly.
type EdgeRequest struct {
	FromID        string           `json:"fromId"`
	ToID          string           `json:"toId"`
	Via           string           `json:"via"`
	Distance      float64          `json:"distance"`
	Direction     schema.Direction `json:"direction"`
	RequiresHold  bool             `json:"requiresHold"`
	Bidirectional *bool            `json:"bidirectional,omitempty"`
}

// Attrs converts the request body to edge attributes.
func (r *EdgeRequest) Attrs() schema.EdgeAttrs {
	return schema.EdgeAttrs{
		Via:          r.Via,
		Distance:     r.Distance,
		Direction:    r.Direction,
		RequiresHold: r.RequiresHold,
	}
}

// IsBidirectional resolves the default.
func (r *EdgeRequest) IsBidirectional() bool {
	return r.Bidirectional == nil || *r.Bidirectional
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusResponse acknowledges admin operations.
type statusResponse struct {
	Status  string `json:"status"`
	Airport string `json:"airport,omitempty"`
}
