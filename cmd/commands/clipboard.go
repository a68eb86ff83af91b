package commands

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/letter"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
)

var (
	clipboardReport string
	clipboardBureau string
)

// writeClipboard is swapped in tests
var writeClipboard = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Copy the dispute letter to the clipboard",
		Long: `Compose the dispute letter for a report and copy it to the system
clipboard, ready to paste into a bureau's online dispute form.

Examples:
  disputedesk clipboard -r report.json
  disputedesk clipboard -r report.json --bureau TransUnion`,
		Args:    cobra.NoArgs,
		Aliases: []string{"clip", "copy"},
		RunE:    runClipboard,
	}

	addReportFlag(cmd, &clipboardReport)
	cmd.Flags().StringVar(&clipboardBureau, "bureau", "", "Limit the letter to one bureau")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(clipboardReport)
	if err != nil {
		return err
	}
	r, _ := ctx.Report()
	l, _, err := ctx.Ledger()
	if err != nil {
		return err
	}

	opts := letter.Options{Width: 80, Date: time.Now()}
	if clipboardBureau != "" {
		b, ok := report.NormalizeBureau(clipboardBureau)
		if !ok {
			return fmt.Errorf("unknown bureau: %s", clipboardBureau)
		}
		opts.Bureau = b
	}

	content, err := letter.Compose(r, l.Snapshot(), opts)
	if err != nil {
		return err
	}

	if err := writeClipboard(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Copied the dispute letter to clipboard (%d dispute(s), %d characters)", l.Len(), len(content))
	return nil
}
