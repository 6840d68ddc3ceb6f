package schema

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	icaoPattern = regexp.MustCompile(`^[A-Z]{4}$`)
	idPattern   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func init() {
	validate = validator.New()
}

// ValidateNode checks a proposed node against the schema: known kind,
// well-formed identifiers, coordinates in range, and the kind-specific
// payload present and matching. It is pure; persisting is the caller's job.
func ValidateNode(n *Node) error {
	if n == nil {
		return violation("node", "required", "node cannot be nil")
	}

	if err := validate.Struct(n); err != nil {
		return formatValidationError(err)
	}

	if !icaoPattern.MatchString(n.Airport) {
		return violation("airport", "icao", "%q is not a 4-letter uppercase ICAO code", n.Airport)
	}
	if !idPattern.MatchString(n.ID) {
		return violation("id", "charset", "%q may only contain alphanumerics and underscores", n.ID)
	}
	if !n.Kind.Valid() {
		return violation("kind", "closed set", "unknown kind %q", n.Kind)
	}

	return validateKindPayload(n)
}

// validateKindPayload enforces the tagged-variant rule: exactly the
// payload for the node's kind, nothing else.
func validateKindPayload(n *Node) error {
	if n.RunwayEnd != nil && n.Kind != KindRunwayEnd {
		return violation("runwayEnd", "kind mismatch", "payload not allowed for kind %s", n.Kind)
	}
	if n.HoldShort != nil && n.Kind != KindHoldShort {
		return violation("holdShort", "kind mismatch", "payload not allowed for kind %s", n.Kind)
	}
	if n.Intersection != nil && n.Kind != KindTaxiwayIntersection {
		return violation("intersection", "kind mismatch", "payload not allowed for kind %s", n.Kind)
	}

	switch n.Kind {
	case KindRunwayEnd:
		if n.RunwayEnd == nil {
			return violation("runwayEnd", "required", "kind RunwayEnd requires heading and runwayId")
		}
		if err := validate.Struct(n.RunwayEnd); err != nil {
			return formatValidationError(err)
		}
	case KindHoldShort:
		if n.HoldShort == nil {
			return violation("holdShort", "required", "kind HoldShort requires runway and taxiway references")
		}
		if err := validate.Struct(n.HoldShort); err != nil {
			return formatValidationError(err)
		}
	case KindTaxiwayIntersection:
		if n.Intersection == nil {
			return violation("intersection", "required", "kind TaxiwayIntersection requires a taxiways list")
		}
		if err := validate.Struct(n.Intersection); err != nil {
			return formatValidationError(err)
		}
	}
	return nil
}

// ValidateEdgeAttrs checks the traversal attributes of a proposed edge.
// Endpoint existence and airport agreement are store-level checks because
// they need the current graph.
func ValidateEdgeAttrs(attrs *EdgeAttrs) error {
	if attrs == nil {
		return violation("edge", "required", "edge attributes cannot be nil")
	}
	if err := validate.Struct(attrs); err != nil {
		return formatValidationError(err)
	}
	if !attrs.Direction.Valid() {
		return violation("direction", "closed set", "unknown direction %q", attrs.Direction)
	}
	return nil
}

// formatValidationError converts validator errors to schema violations
// naming the offending field and rule.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return violation("node", "invalid", "%v", err)
	}

	for _, e := range validationErrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		switch e.Tag() {
		case "required":
			return violation(field, "required", "field is required")
		case "len":
			return violation(field, "length", "must be exactly %s characters", e.Param())
		case "min":
			return violation(field, "min", "must have at least %s elements", e.Param())
		case "gte":
			return violation(field, "range", "must be at least %s", e.Param())
		case "lte":
			return violation(field, "range", "must be at most %s", e.Param())
		default:
			return violation(field, e.Tag(), "validation failed")
		}
	}
	return err
}
