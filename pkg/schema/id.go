package schema

import (
	"strings"
)

// NodeID builds the conventional stable identifier for a node:
// {AIRPORT}_{kindslug}_{nameslug}. Identical inputs always produce the
// identical ID, which keeps re-processing of the same diagram idempotent.
func NodeID(airport string, kind NodeKind, name string) string {
	return strings.ToUpper(airport) + "_" + kind.Slug() + "_" + slugify(name)
}

// slugify reduces a display name to an identifier fragment: spaces,
// slashes, and dashes become underscores, everything else non-alphanumeric
// is dropped. "A/B Intersection" -> "A_B_Intersection".
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '/' || r == '-' || r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
