package suggest

import (
	"fmt"
	"strings"
)

const (
	violationHeader  = "This account is being reported in violation of federal reporting requirements:"
	deletionSentence = "Because this information cannot be verified as accurate and complete, I request that it be deleted from my credit report."
)

// Violations is an ordered set of selected violation strings. Order is the
// order of selection and drives the order of the synthesized text.
type Violations struct {
	items []string
}

// NewViolations seeds a set, dropping duplicates
func NewViolations(items ...string) *Violations {
	v := &Violations{}
	for _, item := range items {
		v.Add(item)
	}
	return v
}

// Add appends a violation; it reports false when already selected
func (v *Violations) Add(violation string) bool {
	violation = strings.TrimSpace(violation)
	if violation == "" || v.Has(violation) {
		return false
	}
	v.items = append(v.items, violation)
	return true
}

// Remove drops a violation; it reports false when it was not selected
func (v *Violations) Remove(violation string) bool {
	for i, item := range v.items {
		if item == violation {
			v.items = append(v.items[:i], v.items[i+1:]...)
			return true
		}
	}
	return false
}

// AddAll replaces the selection with source, in source order
func (v *Violations) AddAll(source []string) {
	v.items = nil
	for _, item := range source {
		v.Add(item)
	}
}

func (v *Violations) Has(violation string) bool {
	for _, item := range v.items {
		if item == violation {
			return true
		}
	}
	return false
}

func (v *Violations) Len() int {
	return len(v.items)
}

// List returns a copy of the selection
func (v *Violations) List() []string {
	return append([]string(nil), v.items...)
}

// Clear empties the selection
func (v *Violations) Clear() {
	v.items = nil
}

// Synthesize builds the reason and instruction for the current selection.
// An empty selection yields empty strings.
func (v *Violations) Synthesize() (reason, instruction string) {
	if len(v.items) == 0 {
		return "", ""
	}

	var b strings.Builder
	b.WriteString(violationHeader)
	for _, item := range v.items {
		b.WriteString("\n• ")
		b.WriteString(item)
	}
	b.WriteString("\n")
	b.WriteString(deletionSentence)

	return b.String(), synthesizeInstruction(v.items)
}

func synthesizeInstruction(items []string) string {
	var metro2, fcra bool
	for _, item := range items {
		switch Tag(item) {
		case StandardMetro2:
			metro2 = true
		case StandardFCRA:
			fcra = true
		}
	}

	var standards string
	switch {
	case metro2 && fcra:
		standards = "Metro 2 format standards and the Fair Credit Reporting Act"
	case metro2:
		standards = "Metro 2 format standards"
	case fcra:
		standards = "the Fair Credit Reporting Act"
	default:
		standards = "applicable reporting standards"
	}
	return fmt.Sprintf("Please investigate the %d listed issue(s) and delete this item, since it is not reported in compliance with %s.", len(items), standards)
}
