package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// ShowResult is one entity with its resolved fields and saved dispute
type ShowResult struct {
	Key     string               `json:"key" yaml:"key"`
	Section string               `json:"section" yaml:"section"`
	Fields  []Field              `json:"fields" yaml:"fields"`
	Raw     models.Raw           `json:"raw,omitempty" yaml:"raw,omitempty"`
	Dispute *models.SavedDispute `json:"dispute,omitempty" yaml:"dispute,omitempty"`
}

// Field is one labelled value
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

var (
	showReport string
	showRaw    bool
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <entity-key>",
		Short: "Show one entity with all of its fields",
		Long: `Show an account, inquiry or public record by its entity key, or the
personal information block with the key "personal-info".

Keys are printed by 'disputedesk list'.

Examples:
  # Show an account
  disputedesk show citibank-na-1111 -r report.json

  # Include the untouched report fields
  disputedesk show citibank-na-1111 -r report.json --raw`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}

	addReportFlag(cmd, &showReport)
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Include the raw report fields")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	key := args[0]

	ctx, err := newContext(showReport)
	if err != nil {
		return err
	}
	r, _ := ctx.Report()

	result, ok := findEntity(r, key)
	if !ok {
		return fmt.Errorf("entity '%s' not found in %s", key, ctx.ReportPath)
	}
	if !showRaw {
		result.Raw = nil
	}

	l, _, err := ctx.Ledger()
	if err != nil {
		return err
	}
	if d, err := l.Get(key); err == nil {
		result.Dispute = &d
	}

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	printShow(cmd.OutOrStdout(), result)
	return nil
}

func findEntity(r *models.Report, key string) (ShowResult, bool) {
	if key == models.PersonalInfoKey {
		var fields []Field
		for _, it := range r.PersonalInfo.Items() {
			fields = append(fields, Field{it.Label, it.Value})
		}
		return ShowResult{Key: key, Section: "personal", Fields: fields}, true
	}

	if a, ok := r.FindAccount(key); ok {
		return ShowResult{Key: key, Section: "accounts", Raw: a.Raw, Fields: present([]Field{
			{"Creditor", a.CreditorName},
			{"Account number", maskIfSet(a.AccountNumber)},
			{"Type", a.AccountType},
			{"Ownership", a.OwnershipType},
			{"Status", statusText(a.Status, a.StatusCode)},
			{"Balance", moneyIfSet(a.Balance)},
			{"Credit limit", moneyIfSet(a.CreditLimit)},
			{"High credit", moneyIfSet(a.HighCredit)},
			{"Utilization", utilizationIfSet(a)},
			{"Past due", moneyIfSet(a.PastDue)},
			{"Charge-off", moneyIfSet(a.ChargeOff)},
			{"Monthly payment", moneyIfSet(a.MonthlyPayment)},
			{"Opened", dateIfSet(a.DateOpened)},
			{"Closed", dateIfSet(a.DateClosed)},
			{"Reported", dateIfSet(a.DateReported)},
			{"Payment history", patternIfSet(a.PaymentPattern)},
			{"Bureaus", strings.Join(bureauNames(a.Bureaus), ", ")},
		})}, true
	}

	if q, ok := r.FindInquiry(key); ok {
		return ShowResult{Key: key, Section: "inquiries", Raw: q.Raw, Fields: present([]Field{
			{"Name", q.Name},
			{"Date", dateIfSet(q.Date)},
			{"Type", q.Type},
			{"Purpose", q.Purpose},
			{"Bureaus", strings.Join(bureauNames(q.Bureaus), ", ")},
		})}, true
	}

	if p, ok := r.FindPublicRecord(key); ok {
		return ShowResult{Key: key, Section: "public-records", Raw: p.Raw, Fields: present([]Field{
			{"Type", p.Type},
			{"Court", p.CourtName},
			{"Docket", p.DocketNumber},
			{"Filed", dateIfSet(p.FiledDate)},
			{"Status", p.Status},
			{"Amount", moneyIfSet(p.Amount)},
			{"Bureaus", strings.Join(bureauNames(p.Bureaus), ", ")},
		})}, true
	}

	return ShowResult{}, false
}

// present drops fields without a value
func present(fields []Field) []Field {
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

func maskIfSet(s string) string {
	if s == "" {
		return ""
	}
	return format.MaskAccount(s)
}

func moneyIfSet(s string) string {
	if s == "" {
		return ""
	}
	return format.Currency(s)
}

func dateIfSet(s string) string {
	if s == "" {
		return ""
	}
	return format.Date(s)
}

func patternIfSet(s string) string {
	if s == "" {
		return ""
	}
	return format.PaymentPattern(s)
}

func statusText(status, code string) string {
	if status != "" {
		return status
	}
	if code != "" {
		return format.Status(code)
	}
	return ""
}

func utilizationIfSet(a models.Account) string {
	if a.Balance == "" || a.CreditLimit == "" {
		return ""
	}
	return format.Utilization(a.Balance, a.CreditLimit)
}

func printShow(w io.Writer, s ShowResult) {
	fmt.Fprintf(w, "%s (%s)\n", s.Key, s.Section)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, f := range s.Fields {
		fmt.Fprintf(w, "%-16s %s\n", f.Label+":", f.Value)
	}

	if len(s.Raw) > 0 {
		fmt.Fprintln(w, "\nRaw fields:")
		keys := make([]string, 0, len(s.Raw))
		for k := range s.Raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, s.Raw[k])
		}
	}

	if d := s.Dispute; d != nil {
		fmt.Fprintln(w, "\nSaved dispute:")
		fmt.Fprintf(w, "  Reason:      %s\n", d.Reason)
		fmt.Fprintf(w, "  Instruction: %s\n", d.Instruction)
		for _, v := range d.Violations {
			fmt.Fprintf(w, "  • %s\n", v)
		}
	}
}
