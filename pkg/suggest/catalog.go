package suggest

import (
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// Option is one dropdown reason paired with the instruction it implies
type Option struct {
	Reason      string `json:"reason" yaml:"reason"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

// Default dispute text per entity kind
const (
	AddressReason           = "This address is wrong or outdated"
	AddressInstruction      = "Please remove this address from my credit report"
	PersonalReason          = "This personal information is incorrect"
	PersonalInstruction     = "Please update my personal information to reflect accurate information"
	InquiryReason           = "I did not authorize this inquiry"
	InquiryInstruction      = "Please remove this unauthorized inquiry from my credit report"
	PublicRecordReason      = "This public record is inaccurate or does not belong to me"
	PublicRecordInstruction = "Please verify this public record with the court and delete it from my credit report"
)

var catalog = map[models.Kind][]Option{
	models.KindAccount: {
		{"The balance amount is incorrect", "Please update the balance to reflect the correct amount"},
		{"This account does not belong to me", "Please remove this account from my credit report"},
		{"The payment history is incorrect", "Please correct the payment history to show on-time payments"},
		{"The account status is incorrect", "Please update the account status to reflect accurate information"},
		{"This account was closed by the consumer", "Please report this account as closed by the consumer"},
		{"The date of first delinquency is incorrect", "Please correct the date of first delinquency"},
	},
	models.KindInquiryGroup: {
		{InquiryReason, InquiryInstruction},
		{"I do not recognize this inquiry", "Please verify the permissible purpose for this inquiry or remove it"},
		{"This inquiry is a duplicate", "Please remove the duplicate inquiry from my credit report"},
	},
	models.KindPublicRecord: {
		{PublicRecordReason, PublicRecordInstruction},
		{"This public record has been satisfied or dismissed", "Please update this record to show it was satisfied or dismissed"},
		{"This public record is past the reporting period", "Please delete this obsolete public record"},
	},
	models.KindPersonalInfo: {
		{PersonalReason, PersonalInstruction},
		{AddressReason, AddressInstruction},
		{"This name is misspelled or not mine", "Please correct my name on my credit report"},
		{"This employer is incorrect", "Please remove this employer from my credit report"},
	},
}

// Catalog returns the dropdown options for kind
func Catalog(kind models.Kind) []Option {
	return append([]Option(nil), catalog[kind]...)
}

// CatalogWithTemplates returns Catalog(kind) extended with saved templates
// of the same category. A saved reason template carries no paired
// instruction; saved instructions are offered separately by Instructions.
func CatalogWithTemplates(kind models.Kind, saved []models.Template) []Option {
	opts := Catalog(kind)
	for _, t := range saved {
		if t.Category != kind || t.Type != models.TemplateReason {
			continue
		}
		if !containsReason(opts, t.Text) {
			opts = append(opts, Option{Reason: t.Text})
		}
	}
	return opts
}

// Instructions lists the distinct instruction choices for kind, including
// saved instruction templates
func Instructions(kind models.Kind, saved []models.Template) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, o := range catalog[kind] {
		add(o.Instruction)
	}
	for _, t := range saved {
		if t.Category == kind && t.Type == models.TemplateInstruction {
			add(t.Text)
		}
	}
	return out
}

// MatchingInstruction returns the instruction linked to reason, if any
func MatchingInstruction(kind models.Kind, reason string) (string, bool) {
	for _, o := range catalog[kind] {
		if strings.EqualFold(o.Reason, reason) {
			return o.Instruction, true
		}
	}
	return "", false
}

// DefaultText returns the text auto-typed when a form first gets a
// selection. Personal information selections depend on the selected keys.
func DefaultText(kind models.Kind, selection []string) (reason, instruction string) {
	switch kind {
	case models.KindPersonalInfo:
		if ClassifyPersonal(selection) == PersonalAddressOnly {
			return AddressReason, AddressInstruction
		}
		return PersonalReason, PersonalInstruction
	case models.KindInquiryGroup:
		return InquiryReason, InquiryInstruction
	case models.KindPublicRecord:
		return PublicRecordReason, PublicRecordInstruction
	default:
		o := catalog[models.KindAccount][1]
		return o.Reason, o.Instruction
	}
}

// PersonalCategory classifies a personal information selection
type PersonalCategory int

const (
	PersonalNone PersonalCategory = iota
	PersonalAddressOnly
	PersonalNonAddressOnly
	PersonalMixed
)

// ClassifyPersonal inspects which selected keys mention "address"
func ClassifyPersonal(selection []string) PersonalCategory {
	var addr, other int
	for _, key := range selection {
		if strings.Contains(strings.ToLower(key), "address") {
			addr++
		} else {
			other++
		}
	}
	switch {
	case addr == 0 && other == 0:
		return PersonalNone
	case other == 0:
		return PersonalAddressOnly
	case addr == 0:
		return PersonalNonAddressOnly
	default:
		return PersonalMixed
	}
}

func containsReason(opts []Option, reason string) bool {
	for _, o := range opts {
		if strings.EqualFold(o.Reason, reason) {
			return true
		}
	}
	return false
}
