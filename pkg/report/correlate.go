package report

import (
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// TiedToOpenAccount reports whether name plausibly belongs to an open
// account on the report. It is a case-insensitive containment check in
// either direction against subscriber code, creditor name and ownership
// type, plus a special case for Citi and its Citibank variants. False
// positives and negatives are expected; there is no shared identifier
// between inquiries and tradelines to match on.
func TiedToOpenAccount(name string, accounts []models.Account) (models.Account, bool) {
	n := normalizeName(name)
	if n == "" {
		return models.Account{}, false
	}
	for _, a := range accounts {
		if a.IsClosed() {
			continue
		}
		for _, candidate := range []string{a.SubscriberCode, a.CreditorName, a.OwnershipType} {
			if namesMatch(n, normalizeName(candidate)) {
				return a, true
			}
		}
	}
	return models.Account{}, false
}

func namesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return strings.Contains(a, "citi") && strings.Contains(b, "citi")
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
