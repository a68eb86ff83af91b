package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Section string     `json:"section" yaml:"section"`
	Items   []ListItem `json:"items" yaml:"items"`
	Count   int        `json:"count" yaml:"count"`
}

// ListItem represents a single entity in the list
type ListItem struct {
	Key      string   `json:"key" yaml:"key"`
	Section  string   `json:"section" yaml:"section"`
	Title    string   `json:"title" yaml:"title"`
	Detail   string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Bureaus  []string `json:"bureaus,omitempty" yaml:"bureaus,omitempty"`
	Disputed bool     `json:"disputed" yaml:"disputed"`
}

var listReport string

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [section]",
		Short: "List the entities of a credit report",
		Long: `List the entities of a credit report with their dispute status.

Sections:
  accounts        - Tradelines
  inquiries       - Hard inquiries
  public-records  - Public records
  personal        - Personal information lines
  all             - Everything (default)

Examples:
  # List everything
  disputedesk list -r report.json

  # List only accounts as JSON
  disputedesk list accounts -r report.json -o json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: cli.Sections,
		RunE:      runList,
	}

	addReportFlag(cmd, &listReport)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	section := "all"
	if len(args) > 0 {
		section = args[0]
	}
	section, err := cli.NormalizeSection(section)
	if err != nil {
		return err
	}

	ctx, err := newContext(listReport)
	if err != nil {
		return err
	}
	r, _ := ctx.Report()
	l, _, err := ctx.Ledger()
	if err != nil {
		return err
	}

	result := ListResult{Section: section, Items: listItems(r, l, section)}
	result.Count = len(result.Items)

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	out := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintln(out, "No entities found")
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("KEY", "SECTION", "TITLE", "DETAIL", "DISPUTED")
	for _, item := range result.Items {
		disputed := ""
		if item.Disputed {
			disputed = "✓"
		}
		table.Row(cli.TruncateString(item.Key, 32), item.Section, cli.TruncateString(item.Title, 30),
			cli.TruncateString(item.Detail, 40), disputed)
	}
	table.Flush()
	fmt.Fprintf(out, "\n%d item(s)\n", result.Count)
	return nil
}

func listItems(r *models.Report, l *ledger.Ledger, section string) []ListItem {
	var items []ListItem
	want := func(s string) bool { return section == "all" || section == s }

	if want("accounts") {
		for _, a := range r.Accounts {
			items = append(items, ListItem{
				Key:      a.Key,
				Section:  "accounts",
				Title:    a.CreditorName,
				Detail:   accountSummary(a),
				Bureaus:  bureauNames(a.Bureaus),
				Disputed: l.Has(a.Key),
			})
		}
	}

	if want("inquiries") {
		inquiryDisputed := disputedInquiries(l)
		for _, q := range r.Inquiries {
			items = append(items, ListItem{
				Key:      q.Key,
				Section:  "inquiries",
				Title:    q.Name,
				Detail:   format.Date(q.Date),
				Bureaus:  bureauNames(q.Bureaus),
				Disputed: inquiryDisputed[q.Key],
			})
		}
	}

	if want("public-records") {
		for _, p := range r.PublicRecords {
			items = append(items, ListItem{
				Key:      p.Key,
				Section:  "public-records",
				Title:    p.Type,
				Detail:   fmt.Sprintf("Filed %s, %s", format.Date(p.FiledDate), format.Currency(p.Amount)),
				Bureaus:  bureauNames(p.Bureaus),
				Disputed: l.Has(p.Key),
			})
		}
	}

	if want("personal") {
		personal, _ := l.Lookup(models.PersonalInfoKey)
		chosen := map[string]bool{}
		if personal.Dispute != nil {
			for _, key := range personal.Dispute.Selection {
				chosen[key] = true
			}
		}
		for _, it := range r.PersonalInfo.Items() {
			items = append(items, ListItem{
				Key:      it.Key,
				Section:  "personal",
				Title:    it.Label,
				Detail:   it.Value,
				Disputed: chosen[it.Key],
			})
		}
	}

	return items
}

func accountSummary(a models.Account) string {
	parts := []string{}
	if a.AccountNumber != "" {
		parts = append(parts, format.MaskAccount(a.AccountNumber))
	}
	parts = append(parts, format.Currency(a.Balance))
	if a.Status != "" {
		parts = append(parts, a.Status)
	}
	return strings.Join(parts, ", ")
}

// disputedInquiries collects inquiry keys selected in saved inquiry group disputes
func disputedInquiries(l *ledger.Ledger) map[string]bool {
	out := map[string]bool{}
	for _, d := range l.Snapshot() {
		if d.Kind != models.KindInquiryGroup {
			continue
		}
		for _, key := range d.Selection {
			out[key] = true
		}
	}
	return out
}

func bureauNames(bureaus []models.Bureau) []string {
	names := make([]string, len(bureaus))
	for i, b := range bureaus {
		names[i] = string(b)
	}
	return names
}
