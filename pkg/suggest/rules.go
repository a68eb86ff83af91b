package suggest

import (
	"strings"
	"time"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// accountRule flags one kind of reporting problem on an account
type accountRule struct {
	violation string
	applies   func(a models.Account, reportDate time.Time) bool
}

var accountRules = []accountRule{
	{
		violation: "Metro 2 Violation: charged-off account reports a non-zero balance",
		applies: func(a models.Account, _ time.Time) bool {
			return Classify(a) == ClassChargedOff && positive(a.Balance)
		},
	},
	{
		violation: "Metro 2 Violation: past due amount reported on a current account",
		applies: func(a models.Account, _ time.Time) bool {
			s := strings.ToLower(a.Status)
			return positive(a.PastDue) && (strings.Contains(s, "current") || strings.Contains(s, "as agreed"))
		},
	},
	{
		violation: "Metro 2 Violation: closed account reports a past due amount",
		applies: func(a models.Account, _ time.Time) bool {
			return a.IsClosed() && positive(a.PastDue)
		},
	},
	{
		violation: "Metro 2 Violation: missing date opened",
		applies: func(a models.Account, _ time.Time) bool {
			return strings.TrimSpace(a.DateOpened) == ""
		},
	},
	{
		violation: "FCRA Violation: negative information reported beyond seven years",
		applies: func(a models.Account, reportDate time.Time) bool {
			if Classify(a) == ClassGeneral {
				return false
			}
			return olderThan(a.DateReported, reportDate, 7) || olderThan(a.DateClosed, reportDate, 7)
		},
	},
	{
		violation: "FCRA Violation: incomplete reporting of account status",
		applies: func(a models.Account, _ time.Time) bool {
			return strings.TrimSpace(a.Status) == "" && strings.TrimSpace(a.StatusCode) == ""
		},
	},
}

// RuleScan applies the offline rule table to a report and returns the
// violations found per entity key. Entities without findings are absent.
func RuleScan(r *models.Report) map[string][]string {
	out := map[string][]string{}
	for _, a := range r.Accounts {
		for _, rule := range accountRules {
			if rule.applies(a, r.ReportDate) {
				out[a.Key] = append(out[a.Key], rule.violation)
			}
		}
	}
	for _, q := range r.Inquiries {
		if strings.TrimSpace(q.Purpose) == "" && strings.TrimSpace(q.Type) == "" {
			out[q.Key] = append(out[q.Key], "FCRA Violation: inquiry reported without a permissible purpose")
		}
		if olderThan(q.Date, r.ReportDate, 2) {
			out[q.Key] = append(out[q.Key], "FCRA Violation: inquiry reported beyond two years")
		}
	}
	for _, p := range r.PublicRecords {
		years := 7
		if strings.Contains(strings.ToLower(p.Type), "bankrupt") {
			years = 10
		}
		if olderThan(p.FiledDate, r.ReportDate, years) {
			out[p.Key] = append(out[p.Key], "FCRA Violation: obsolete public record beyond the reporting period")
		}
		if strings.TrimSpace(p.CourtName) == "" || strings.TrimSpace(p.DocketNumber) == "" {
			out[p.Key] = append(out[p.Key], "Metro 2 Violation: public record missing court or docket information")
		}
	}
	return out
}

func positive(raw string) bool {
	v, ok := format.ParseAmount(raw)
	return ok && v > 0
}

func olderThan(raw string, reportDate time.Time, years int) bool {
	t, ok := format.ParseDate(raw)
	if !ok {
		return false
	}
	return t.Before(reportDate.AddDate(-years, 0, 0))
}
