package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/history"
)

var (
	historyReport    string
	historyEntity    string
	historyLimit     int
	historyPruneDays int
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the dispute audit log",
		Long: `Show every dispute save and reset recorded in the project, newest first.

Examples:
  # Everything
  disputedesk history

  # One report, one entity
  disputedesk history -r report.json --entity citibank-na-1111

  # Drop events older than 90 days
  disputedesk history --prune 90`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().StringVarP(&historyReport, "report", "r", "", "Only events of this report")
	cmd.Flags().StringVar(&historyEntity, "entity", "", "Only events of this entity key")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of events (0 for all)")
	cmd.Flags().IntVar(&historyPruneDays, "prune", 0, "Delete events older than this many days")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := files.RequireProject(); err != nil {
		return err
	}
	log, err := history.Open(files.HistoryPath())
	if err != nil {
		return err
	}
	defer log.Close()

	ctx := commandContext(cmd)

	if historyPruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -historyPruneDays)
		n, err := log.Prune(ctx, cutoff)
		if err != nil {
			return err
		}
		cli.PrintSuccess("Pruned %d event(s) older than %s", n, cutoff.Format("2006-01-02"))
		return nil
	}

	events, err := log.Events(ctx, history.Filter{
		Report:    historyReport,
		EntityKey: historyEntity,
		Limit:     historyLimit,
	})
	if err != nil {
		return err
	}

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, events)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No history yet")
		return nil
	}
	table := cli.NewTableFormatter(out)
	table.Header("WHEN", "ACTION", "ENTITY", "REPORT", "REASON")
	for _, e := range events {
		table.Row(e.CreatedAt.Local().Format("2006-01-02 15:04"), string(e.Action),
			cli.TruncateString(e.EntityKey, 32), cli.TruncateString(e.Report, 24), cli.TruncateString(e.Reason, 40))
	}
	table.Flush()
	return nil
}
