package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
)

var resetReport string

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <entity-key>",
		Short: "Remove a saved dispute",
		Long: `Remove the saved dispute of an entity from the report's session.

The form comes back unsaved the next time the report is opened. The reset
is recorded in the dispute history.

Examples:
  disputedesk reset citibank-na-1111 -r report.json
  disputedesk reset inquiries-recent -r report.json --yes`,
		Args: cobra.ExactArgs(1),
		RunE: runReset,
	}

	addReportFlag(cmd, &resetReport)

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	key := args[0]

	ctx, err := cli.NewCommandContext(resetReport)
	if err != nil {
		return err
	}
	if err := ctx.ValidateProject(); err != nil {
		return err
	}

	l, s, err := ctx.Ledger()
	if err != nil {
		return err
	}
	if !l.Has(key) {
		return fmt.Errorf("reset %s: %w", key, ledger.ErrNotFound)
	}

	ok, err := cli.Confirm(fmt.Sprintf("Remove the saved dispute for %s?", key), false)
	if err != nil {
		return err
	}
	if !ok {
		cli.PrintInfo("Reset cancelled")
		return nil
	}

	l.Remove(key)
	s.Capture(l)
	if err := ctx.SaveSession(s); err != nil {
		return err
	}

	if log, err := ctx.OpenHistory(); err == nil {
		defer log.Close()
		if _, err := log.RecordReset(context.Background(), ctx.ReportPath, key); err != nil {
			cli.PrintWarning("History not recorded: %v", err)
		}
	} else {
		cli.PrintWarning("History not recorded: %v", err)
	}

	cli.PrintSuccess("Removed the saved dispute for %s", key)
	return nil
}
