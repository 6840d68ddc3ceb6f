package schema

import (
	"errors"
	"testing"
)

// validNode returns a well-formed runway end node for mutation in tests
func validNode() *Node {
	return &Node{
		ID:       "KDPA_rwy_27L",
		Airport:  "KDPA",
		Kind:     KindRunwayEnd,
		Name:     "27L",
		Position: Position{X: 10, Y: 50},
		RunwayEnd: &RunwayEndAttrs{
			Heading:  270,
			RunwayID: "9L_27L",
		},
	}
}

// TestValidateNode_Valid tests that a well-formed node passes
func TestValidateNode_Valid(t *testing.T) {
	if err := ValidateNode(validNode()); err != nil {
		t.Fatalf("Expected valid node to pass, got %v", err)
	}
}

// TestValidateNode_Nil tests that nil is rejected
func TestValidateNode_Nil(t *testing.T) {
	err := ValidateNode(nil)
	if !IsViolation(err) {
		t.Errorf("Expected schema violation for nil node, got %v", err)
	}
}

// TestValidateNode_BadAirport tests ICAO code enforcement
func TestValidateNode_BadAirport(t *testing.T) {
	cases := []string{"", "KD", "kdpa", "KDPAX", "K1!A"}
	for _, airport := range cases {
		n := validNode()
		n.Airport = airport
		if err := ValidateNode(n); !IsViolation(err) {
			t.Errorf("Expected violation for airport %q, got %v", airport, err)
		}
	}
}

// TestValidateNode_UnknownKind tests that the kind set is closed
func TestValidateNode_UnknownKind(t *testing.T) {
	n := validNode()
	n.Kind = NodeKind("Gate")
	n.RunwayEnd = nil
	err := ValidateNode(n)
	if !IsViolation(err) {
		t.Fatalf("Expected violation for unknown kind, got %v", err)
	}
}

// TestValidateNode_PositionRange tests the 0-100 coordinate bounds
func TestValidateNode_PositionRange(t *testing.T) {
	for _, pos := range []Position{{X: -1, Y: 50}, {X: 50, Y: 101}, {X: 200, Y: 200}} {
		n := validNode()
		n.Position = pos
		if err := ValidateNode(n); !IsViolation(err) {
			t.Errorf("Expected violation for position %+v, got %v", pos, err)
		}
	}
	for _, pos := range []Position{{X: 0, Y: 0}, {X: 100, Y: 100}} {
		n := validNode()
		n.Position = pos
		if err := ValidateNode(n); err != nil {
			t.Errorf("Expected boundary position %+v to pass, got %v", pos, err)
		}
	}
}

// TestValidateNode_MissingPayload tests that kind-specific attributes are
// required for the kinds that carry them
func TestValidateNode_MissingPayload(t *testing.T) {
	n := validNode()
	n.RunwayEnd = nil
	if err := ValidateNode(n); !IsViolation(err) {
		t.Errorf("Expected violation for RunwayEnd without payload, got %v", err)
	}

	hold := &Node{
		ID:      "KDPA_hold_A_27L",
		Airport: "KDPA",
		Kind:    KindHoldShort,
		Name:    "A hold 27L",
	}
	if err := ValidateNode(hold); !IsViolation(err) {
		t.Errorf("Expected violation for HoldShort without payload, got %v", err)
	}

	intersect := &Node{
		ID:      "KDPA_twy_A",
		Airport: "KDPA",
		Kind:    KindTaxiwayIntersection,
		Name:    "A",
	}
	if err := ValidateNode(intersect); !IsViolation(err) {
		t.Errorf("Expected violation for TaxiwayIntersection without payload, got %v", err)
	}
}

// TestValidateNode_MismatchedPayload tests that a payload belonging to a
// different kind is rejected
func TestValidateNode_MismatchedPayload(t *testing.T) {
	n := &Node{
		ID:        "KDPA_fbo_Atlantic",
		Airport:   "KDPA",
		Kind:      KindFBO,
		Name:      "Atlantic Aviation",
		HoldShort: &HoldShortAttrs{Runway: "27L", Taxiway: "A"},
	}
	if err := ValidateNode(n); !IsViolation(err) {
		t.Errorf("Expected violation for FBO carrying hold-short payload, got %v", err)
	}
}

// TestValidateNode_PlainKinds tests that FBO, Terminal, and Ramp need no payload
func TestValidateNode_PlainKinds(t *testing.T) {
	for _, kind := range []NodeKind{KindFBO, KindTerminal, KindRamp} {
		n := &Node{
			ID:       NodeID("KDPA", kind, "Main"),
			Airport:  "KDPA",
			Kind:     kind,
			Name:     "Main",
			Position: Position{X: 5, Y: 5},
		}
		if err := ValidateNode(n); err != nil {
			t.Errorf("Expected %s without payload to pass, got %v", kind, err)
		}
	}
}

// TestValidateNode_HeadingRange tests the 0-359 heading bounds
func TestValidateNode_HeadingRange(t *testing.T) {
	n := validNode()
	n.RunwayEnd.Heading = 360
	if err := ValidateNode(n); !IsViolation(err) {
		t.Errorf("Expected violation for heading 360, got %v", err)
	}
	n.RunwayEnd.Heading = 0
	if err := ValidateNode(n); err != nil {
		t.Errorf("Expected heading 0 to pass, got %v", err)
	}
}

// TestValidateNode_EmptyTaxiways tests intersection payload contents
func TestValidateNode_EmptyTaxiways(t *testing.T) {
	n := &Node{
		ID:           "KDPA_twy_A",
		Airport:      "KDPA",
		Kind:         KindTaxiwayIntersection,
		Name:         "A",
		Intersection: &IntersectionAttrs{Taxiways: []string{}},
	}
	if err := ValidateNode(n); !IsViolation(err) {
		t.Errorf("Expected violation for empty taxiways list, got %v", err)
	}

	n.Intersection.Taxiways = []string{"A", ""}
	if err := ValidateNode(n); !IsViolation(err) {
		t.Errorf("Expected violation for blank taxiway label, got %v", err)
	}
}

// TestValidateEdgeAttrs_DistanceRange tests the 1-10 distance scale
func TestValidateEdgeAttrs_DistanceRange(t *testing.T) {
	for _, distance := range []float64{0, 0.5, 10.5, -3} {
		attrs := &EdgeAttrs{Via: "A", Distance: distance, Direction: North}
		if err := ValidateEdgeAttrs(attrs); !IsViolation(err) {
			t.Errorf("Expected violation for distance %v, got %v", distance, err)
		}
	}
	for _, distance := range []float64{1, 5.5, 10} {
		attrs := &EdgeAttrs{Via: "A", Distance: distance, Direction: North}
		if err := ValidateEdgeAttrs(attrs); err != nil {
			t.Errorf("Expected distance %v to pass, got %v", distance, err)
		}
	}
}

// TestValidateEdgeAttrs_Direction tests the closed compass set
func TestValidateEdgeAttrs_Direction(t *testing.T) {
	attrs := &EdgeAttrs{Via: "A", Distance: 2, Direction: Direction("NNE")}
	if err := ValidateEdgeAttrs(attrs); !IsViolation(err) {
		t.Errorf("Expected violation for direction NNE, got %v", err)
	}
}

// TestValidateEdgeAttrs_MissingVia tests that via is required
func TestValidateEdgeAttrs_MissingVia(t *testing.T) {
	attrs := &EdgeAttrs{Distance: 2, Direction: East}
	if err := ValidateEdgeAttrs(attrs); !IsViolation(err) {
		t.Errorf("Expected violation for missing via, got %v", err)
	}
}

// TestViolation_ErrorsIs tests sentinel matching across the violation class
func TestViolation_ErrorsIs(t *testing.T) {
	err := ValidateNode(&Node{})
	if !errors.Is(err, ErrSchemaViolation) {
		t.Errorf("Expected errors.Is to match ErrSchemaViolation, got %v", err)
	}

	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("Expected a *Violation, got %T", err)
	}
	if v.Field == "" || v.Rule == "" {
		t.Errorf("Expected violation to name field and rule, got %+v", v)
	}
}
