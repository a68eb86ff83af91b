package models

import (
	"strings"
	"time"
)

// Kind classifies the entity a dispute form is attached to
type Kind string

const (
	KindAccount      Kind = "account"
	KindInquiryGroup Kind = "inquiry-group"
	KindPublicRecord Kind = "public-record"
	KindPersonalInfo Kind = "personal-info"
)

// Inquiry group keys double as ledger keys for the two inquiry controllers
const (
	RecentInquiriesKey = "inquiries-recent"
	OlderInquiriesKey  = "inquiries-older"
)

// DisputeDraft is the in-progress content of a dispute form
type DisputeDraft struct {
	Reason             string   `json:"reason" yaml:"reason"`
	Instruction        string   `json:"instruction" yaml:"instruction"`
	SelectedViolations []string `json:"selected_violations,omitempty" yaml:"selected_violations,omitempty"`
}

// Complete reports whether both text fields carry content
func (d DisputeDraft) Complete() bool {
	return strings.TrimSpace(d.Reason) != "" && strings.TrimSpace(d.Instruction) != ""
}

// IsEmpty reports whether nothing has been entered
func (d DisputeDraft) IsEmpty() bool {
	return d.Reason == "" && d.Instruction == "" && len(d.SelectedViolations) == 0
}

// Text sources record how a field got its text
const (
	SourceAuto    = "auto"
	SourceCatalog = "catalog"
	SourceUser    = "user"
)

// SavedDispute is the snapshot of a draft taken at save time
type SavedDispute struct {
	ID          string    `json:"id" yaml:"id"`
	EntityKey   string    `json:"entity_key" yaml:"entity_key"`
	Kind        Kind      `json:"kind" yaml:"kind"`
	Reason      string    `json:"reason" yaml:"reason"`
	Instruction string    `json:"instruction" yaml:"instruction"`
	Violations  []string  `json:"violations" yaml:"violations"`
	Selection   []string  `json:"selection" yaml:"selection"`
	HasData     bool      `json:"has_data" yaml:"has_data"`
	SavedAt     time.Time `json:"saved_at" yaml:"saved_at"`

	// Form state needed to reopen the form as it was saved
	Custom            bool   `json:"custom,omitempty" yaml:"custom,omitempty"`
	ReasonSource      string `json:"reason_source,omitempty" yaml:"reason_source,omitempty"`
	InstructionSource string `json:"instruction_source,omitempty" yaml:"instruction_source,omitempty"`
	ReasonOption      string `json:"reason_option,omitempty" yaml:"reason_option,omitempty"`
	InstructionOption string `json:"instruction_option,omitempty" yaml:"instruction_option,omitempty"`
}

// Draft returns the draft the snapshot was taken from
func (s SavedDispute) Draft() DisputeDraft {
	return DisputeDraft{
		Reason:             s.Reason,
		Instruction:        s.Instruction,
		SelectedViolations: append([]string(nil), s.Violations...),
	}
}

// Template is a reusable reason or instruction text
type Template struct {
	Type     TemplateType `json:"type" yaml:"type"`
	Text     string       `json:"text" yaml:"text"`
	Category Kind         `json:"category" yaml:"category"`
}

type TemplateType string

const (
	TemplateReason      TemplateType = "reason"
	TemplateInstruction TemplateType = "instruction"
)
