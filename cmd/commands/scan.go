package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/scan"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

// ScanResult is the output of a compliance scan
type ScanResult struct {
	Scanner    string       `json:"scanner" yaml:"scanner"`
	Violations scan.Results `json:"violations" yaml:"violations"`
	Count      int          `json:"count" yaml:"count"`
	Duration   string       `json:"duration" yaml:"duration"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
}

var (
	scanReport string
	scanRules  bool
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a report for reporting-standard violations",
		Long: `Run the configured compliance scanner over a report and print the
violations found per entity.

The scanner comes from the 'scan' section of the settings. A failing scan
is reported as a warning with no violations.

Examples:
  disputedesk scan -r report.json
  disputedesk scan -r report.json --rules -o json`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}

	addReportFlag(cmd, &scanReport)
	cmd.Flags().BoolVar(&scanRules, "rules", false, "Use the offline rule scanner")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(scanReport)
	if err != nil {
		return err
	}
	r, _ := ctx.Report()
	settings := ctx.LoadSettingsWithDefault()

	var scanner scan.Scanner = scan.RuleScanner{}
	if !scanRules {
		scanner, err = scan.New(settings.Scan)
		if err != nil {
			return err
		}
	}

	runCtx := commandContext(cmd)
	if timeout := settings.Scan.Timeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}

	out := scan.Run(runCtx, scanner, r)
	result := ScanResult{
		Scanner:    scanner.Name(),
		Violations: out.Results,
		Count:      out.Results.Count(),
		Duration:   out.Duration.Round(time.Millisecond).String(),
	}
	if out.Err != nil {
		result.Error = out.Err.Error()
		cli.PrintWarning("Scan failed, no violations reported: %v", out.Err)
	}

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	w := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintln(w, "No violations found")
		return nil
	}

	keys := make([]string, 0, len(out.Results))
	for k := range out.Results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := cli.NewTableFormatter(w)
	table.Header("ENTITY", "STANDARD", "VIOLATION")
	for _, k := range keys {
		for _, v := range out.Results[k] {
			table.Row(cli.TruncateString(k, 32), string(suggest.Tag(v)), suggest.Label(v))
		}
	}
	table.Flush()
	fmt.Fprintf(w, "\n%d violation(s) via %s in %s\n", result.Count, result.Scanner, result.Duration)
	return nil
}
