package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// DisputesResult lists the saved disputes of a session
type DisputesResult struct {
	Report   string                `json:"report" yaml:"report"`
	Disputes []models.SavedDispute `json:"disputes" yaml:"disputes"`
	Marked   []string              `json:"marked,omitempty" yaml:"marked,omitempty"`
	Count    int                   `json:"count" yaml:"count"`
}

var disputesReport string

// NewDisputesCommand creates the disputes command
func NewDisputesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disputes",
		Short: "List the saved disputes of a report",
		Long: `List the disputes saved for a report in its session.

Examples:
  disputedesk disputes -r report.json
  disputedesk disputes -r report.json -o yaml`,
		Args: cobra.NoArgs,
		RunE: runDisputes,
	}

	addReportFlag(cmd, &disputesReport)

	return cmd
}

func runDisputes(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(disputesReport)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	result := DisputesResult{
		Report:   ctx.ReportPath,
		Disputes: s.Disputes,
		Marked:   s.Marked,
		Count:    len(s.Disputes) + len(s.Marked),
	}

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	out := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintln(out, "No saved disputes")
		return nil
	}

	table := cli.NewTableFormatter(out)
	table.Header("ENTITY", "KIND", "REASON", "VIOLATIONS", "SAVED")
	for _, d := range s.Disputes {
		table.Row(cli.TruncateString(d.EntityKey, 32), string(d.Kind), cli.TruncateString(d.Reason, 40),
			fmt.Sprintf("%d", len(d.Violations)), d.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	for _, key := range s.Marked {
		table.Row(key, "", "(saved without text)", "", "")
	}
	table.Flush()
	fmt.Fprintf(out, "\n%d saved dispute(s)\n", result.Count)
	return nil
}
