package report

import (
	"time"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// SplitInquiries separates inquiries made within the last recentMonths of
// the report date (which impact the score) from older ones. Inquiries with
// an unparsable date count as recent so they stay visible.
func SplitInquiries(r *models.Report, recentMonths int) (recent, older []models.Inquiry) {
	if recentMonths <= 0 {
		recentMonths = 24
	}
	cutoff := r.ReportDate.AddDate(0, -recentMonths, 0)
	for _, q := range r.Inquiries {
		if isOlder(q, cutoff) {
			older = append(older, q)
		} else {
			recent = append(recent, q)
		}
	}
	return recent, older
}

func isOlder(q models.Inquiry, cutoff time.Time) bool {
	t, ok := format.ParseDate(q.Date)
	if !ok {
		return false
	}
	return t.Before(cutoff)
}
