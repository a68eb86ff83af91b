// Package suggest produces dispute text from compliance violations and from
// canned suggestions keyed to an account's classification.
package suggest

import "strings"

// Standard is the reporting standard a violation string refers to
type Standard string

const (
	StandardMetro2 Standard = "Metro 2"
	StandardFCRA   Standard = "FCRA"
	StandardOther  Standard = "Other"
)

// Tag classifies a violation by substring. Metro 2 wins when a string
// mentions both standards.
func Tag(violation string) Standard {
	v := strings.ToLower(violation)
	switch {
	case strings.Contains(v, "metro 2"), strings.Contains(v, "metro2"):
		return StandardMetro2
	case strings.Contains(v, "fcra"), strings.Contains(v, "fair credit reporting"):
		return StandardFCRA
	default:
		return StandardOther
	}
}

// Label strips the standard prefix ("Metro 2 Violation: ") for display
func Label(violation string) string {
	if i := strings.Index(violation, ":"); i >= 0 && Tag(violation[:i]) != StandardOther {
		return strings.TrimSpace(violation[i+1:])
	}
	return violation
}
