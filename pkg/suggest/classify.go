package suggest

import (
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// Class drives which canned suggestions an account gets
type Class string

const (
	ClassChargedOff  Class = "charged-off"
	ClassCollection  Class = "collection"
	ClassLatePayment Class = "late-payment"
	ClassGeneral     Class = "general"
)

// Classify inspects status text, then account type text, then balance
// fields, then payment history. The order matters: an account whose status
// says "collection" but carries a charge-off amount is a collection.
func Classify(a models.Account) Class {
	status := strings.ToLower(a.Status)
	switch {
	case strings.Contains(status, "charge"):
		return ClassChargedOff
	case strings.Contains(status, "collection"):
		return ClassCollection
	}

	if strings.Contains(strings.ToLower(a.AccountType), "collection") {
		return ClassCollection
	}

	if v, ok := format.ParseAmount(a.ChargeOff); ok && v > 0 {
		return ClassChargedOff
	}
	if v, ok := format.ParseAmount(a.PastDue); ok && v > 0 {
		return ClassLatePayment
	}

	if hasLates(a.PaymentPattern) {
		return ClassLatePayment
	}
	return ClassGeneral
}

// hasLates reports whether a payment pattern has any delinquency digit
func hasLates(pattern string) bool {
	for _, r := range pattern {
		if r >= '1' && r <= '9' {
			return true
		}
	}
	return false
}
