package validation

// Severity classifies a finding. Errors block the graph from being
// considered usable; warnings are flagged for agent or human review.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Code is the stable machine-readable identifier of a check, which the
// agent loop keys targeted corrections off.
type Code string

const (
	CodeDisconnectedIsland    Code = "disconnected_island"
	CodeDanglingHoldReference Code = "dangling_hold_reference"
	CodeOrphanHoldShort       Code = "orphan_hold_short"
	CodeDuplicatePosition     Code = "duplicate_position"
	CodeUnpairedRunwayEnd     Code = "unpaired_runway_end"
	CodeLoneIntersection      Code = "underconnected_intersection"
	CodeUnconnectedFacility   Code = "unconnected_facility"
)

// Finding is one defect surfaced by a structural check.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	// NodeIDs lists every node involved, e.g. all members of a
	// disconnected island.
	NodeIDs []string `json:"nodeIds,omitempty"`
}

// Report aggregates every finding from a validation run. The checks are
// independent and never fail fast, so one run surfaces every defect.
type Report struct {
	Airport  string    `json:"airport"`
	Findings []Finding `json:"findings"`
}

// Errors counts error-severity findings.
func (r *Report) Errors() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

// Warnings counts warning-severity findings.
func (r *Report) Warnings() int {
	return len(r.Findings) - r.Errors()
}

// Clean reports whether the run surfaced nothing at all.
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

func (r *Report) add(severity Severity, code Code, message string, nodeIDs ...string) {
	r.Findings = append(r.Findings, Finding{
		Severity: severity,
		Code:     code,
		Message:  message,
		NodeIDs:  nodeIDs,
	})
}
