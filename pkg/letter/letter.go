// Package letter turns saved disputes into a markdown dispute letter.
package letter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// ErrNoDisputes is returned when there is nothing to put in a letter
var ErrNoDisputes = errors.New("no saved disputes")

// Options controls letter layout
type Options struct {
	// Width wraps paragraphs; zero leaves them unwrapped
	Width int
	// Bureau limits the letter to items reported by one bureau
	Bureau models.Bureau
	Date   time.Time
}

var kindOrder = []models.Kind{
	models.KindPersonalInfo,
	models.KindAccount,
	models.KindInquiryGroup,
	models.KindPublicRecord,
}

var kindHeadings = map[models.Kind]string{
	models.KindPersonalInfo: "Personal Information",
	models.KindAccount:      "Accounts",
	models.KindInquiryGroup: "Inquiries",
	models.KindPublicRecord: "Public Records",
}

// Compose renders the letter for a report and its saved disputes
func Compose(r *models.Report, disputes []models.SavedDispute, opts Options) (string, error) {
	if r == nil {
		return "", fmt.Errorf("report is nil")
	}

	groups := make(map[models.Kind][]entry)
	count := 0
	for _, d := range disputes {
		e, ok := describe(r, d, opts.Bureau)
		if !ok {
			continue
		}
		groups[d.Kind] = append(groups[d.Kind], e)
		count++
	}
	if count == 0 {
		return "", ErrNoDisputes
	}

	var output strings.Builder
	output.WriteString("# Request for Investigation of Disputed Information\n\n")
	if !opts.Date.IsZero() {
		output.WriteString(opts.Date.Format("January 2, 2006"))
		output.WriteString("\n\n")
	}
	if name := strings.TrimSpace(r.PersonalInfo.Name); name != "" {
		output.WriteString(fmt.Sprintf("From: %s\n", name))
	}
	if addr := strings.TrimSpace(r.PersonalInfo.CurrentAddress); addr != "" {
		output.WriteString(fmt.Sprintf("%s\n", addr))
	}
	if opts.Bureau != "" {
		output.WriteString(fmt.Sprintf("To: %s\n", opts.Bureau))
	}
	output.WriteString("\n")
	output.WriteString(wrap(opts.Width, "I am writing to dispute the following information in my credit file. "+
		"The items listed below are inaccurate or incomplete. Please investigate each item and correct or "+
		"remove it as requested."))
	output.WriteString("\n")

	n := 0
	for _, kind := range kindOrder {
		entries := groups[kind]
		if len(entries) == 0 {
			continue
		}
		output.WriteString(fmt.Sprintf("\n## %s\n", kindHeadings[kind]))
		for _, e := range entries {
			n++
			output.WriteString(fmt.Sprintf("\n### %d. %s\n\n", n, e.title))
			for _, line := range e.details {
				output.WriteString(fmt.Sprintf("- %s\n", line))
			}
			output.WriteString("\n**Reason:** ")
			output.WriteString(wrap(opts.Width, strings.TrimSpace(e.dispute.Reason)))
			output.WriteString("\n\n**Requested action:** ")
			output.WriteString(wrap(opts.Width, strings.TrimSpace(e.dispute.Instruction)))
			output.WriteString("\n")
		}
	}

	output.WriteString("\n")
	output.WriteString(wrap(opts.Width, "Under the Fair Credit Reporting Act you are required to complete your "+
		"investigation within 30 days of receiving this letter. Please send me an updated copy of my credit "+
		"report when the investigation is complete."))
	output.WriteString("\n\nSincerely,\n\n")
	if name := strings.TrimSpace(r.PersonalInfo.Name); name != "" {
		output.WriteString(name)
		output.WriteString("\n")
	}

	return output.String(), nil
}

// Bureaus returns the bureaus named by a set of saved disputes, in
// display order. One letter is usually sent to each.
func Bureaus(r *models.Report, disputes []models.SavedDispute) []models.Bureau {
	seen := map[models.Bureau]bool{}
	for _, d := range disputes {
		for _, b := range models.AllBureaus {
			if _, ok := describe(r, d, b); ok {
				seen[b] = true
			}
		}
	}
	var out []models.Bureau
	for _, b := range models.AllBureaus {
		if seen[b] {
			out = append(out, b)
		}
	}
	return out
}

type entry struct {
	title   string
	details []string
	dispute models.SavedDispute
}

func describe(r *models.Report, d models.SavedDispute, bureau models.Bureau) (entry, bool) {
	e := entry{dispute: d}
	switch d.Kind {
	case models.KindAccount:
		a, ok := r.FindAccount(d.EntityKey)
		if !ok {
			return e, false
		}
		bureaus := filterBureaus(d.Selection, bureau)
		if len(bureaus) == 0 {
			return e, false
		}
		e.title = a.CreditorName
		if a.AccountNumber != "" {
			e.details = append(e.details, "Account number: "+format.MaskAccount(a.AccountNumber))
		}
		if a.Status != "" {
			e.details = append(e.details, "Reported status: "+a.Status)
		}
		if a.Balance != "" {
			e.details = append(e.details, "Reported balance: "+format.Currency(a.Balance))
		}
		e.details = append(e.details, "Reported by: "+strings.Join(bureaus, ", "))

	case models.KindPublicRecord:
		p, ok := r.FindPublicRecord(d.EntityKey)
		if !ok {
			return e, false
		}
		bureaus := filterBureaus(d.Selection, bureau)
		if len(bureaus) == 0 {
			return e, false
		}
		e.title = p.Type
		if p.CourtName != "" {
			e.details = append(e.details, "Court: "+p.CourtName)
		}
		if p.DocketNumber != "" {
			e.details = append(e.details, "Docket: "+p.DocketNumber)
		}
		if p.FiledDate != "" {
			e.details = append(e.details, "Filed: "+format.Date(p.FiledDate))
		}
		e.details = append(e.details, "Reported by: "+strings.Join(bureaus, ", "))

	case models.KindInquiryGroup:
		e.title = "Unauthorized inquiries"
		for _, key := range d.Selection {
			q, ok := r.FindInquiry(key)
			if !ok || (bureau != "" && !hasBureau(q.Bureaus, bureau)) {
				continue
			}
			e.details = append(e.details, fmt.Sprintf("%s on %s", q.Name, format.Date(q.Date)))
		}
		if len(e.details) == 0 {
			return e, false
		}

	case models.KindPersonalInfo:
		e.title = "Personal information"
		values := map[string]models.PersonalItem{}
		for _, item := range r.PersonalInfo.Items() {
			values[item.Key] = item
		}
		for _, key := range d.Selection {
			if item, ok := values[key]; ok {
				e.details = append(e.details, fmt.Sprintf("%s: %s", item.Label, item.Value))
			}
		}
		if len(e.details) == 0 {
			return e, false
		}

	default:
		return e, false
	}
	return e, true
}

func filterBureaus(selection []string, only models.Bureau) []string {
	var out []string
	for _, s := range selection {
		if only == "" || models.Bureau(s) == only {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return bureauRank(out[i]) < bureauRank(out[j])
	})
	return out
}

func bureauRank(s string) int {
	for i, b := range models.AllBureaus {
		if string(b) == s {
			return i
		}
	}
	return len(models.AllBureaus)
}

func hasBureau(list []models.Bureau, b models.Bureau) bool {
	if len(list) == 0 {
		return true
	}
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

func wrap(width int, s string) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
