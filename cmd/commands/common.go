package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
)

// addReportFlag registers --report on cmd
func addReportFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "report", "r", "", "Credit report file (.json or .yaml); defaults to the project's only session")
}

// newContext builds the command context and loads its report
func newContext(reportPath string) (*cli.CommandContext, error) {
	ctx, err := cli.NewCommandContext(reportPath)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Report(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// commandContext is the context cmd runs under, Background when unset
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
