package commands

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/letter"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
)

var (
	exportReport string
	exportFormat string
	exportToFile string
	exportBureau string
	exportWidth  int
	exportSave   bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dispute letter or the saved disputes",
		Long: `Export the saved disputes of a report.

Formats:
  markdown  - A dispute letter ready to send (default)
  json      - The saved disputes as JSON
  yaml      - The saved disputes as YAML

By default the result is written to stdout.

Examples:
  # Print the letter
  disputedesk export -r report.json

  # Letter for one bureau, written to a file
  disputedesk export -r report.json --bureau Experian --file experian.md

  # Save into .disputedesk/exports
  disputedesk export -r report.json --save

  # Raw disputes
  disputedesk export -r report.json --format json`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	addReportFlag(cmd, &exportReport)
	cmd.Flags().StringVar(&exportFormat, "format", "markdown", "Export format (markdown, json, yaml)")
	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().StringVar(&exportBureau, "bureau", "", "Limit the letter to one bureau")
	cmd.Flags().IntVar(&exportWidth, "width", 80, "Wrap letter paragraphs at this width (0 to disable)")
	cmd.Flags().BoolVar(&exportSave, "save", false, "Write into the project's exports folder")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(exportReport)
	if err != nil {
		return err
	}
	r, _ := ctx.Report()
	l, _, err := ctx.Ledger()
	if err != nil {
		return err
	}

	content, ext, err := renderExport(r, l.Snapshot())
	if err != nil {
		return err
	}

	target := exportToFile
	if target == "" && exportSave {
		if err := ctx.ValidateProject(); err != nil {
			return err
		}
		target = files.ExportPath(ctx.ReportPath, ext)
	}

	if target == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := files.WriteFile(target, content); err != nil {
		return err
	}
	cli.PrintSuccess("Exported %d dispute(s) to %s", l.Len(), target)
	return nil
}

func renderExport(r *models.Report, disputes []models.SavedDispute) (content, ext string, err error) {
	switch strings.ToLower(exportFormat) {
	case "markdown", "md":
		opts := letter.Options{Width: exportWidth, Date: time.Now()}
		if exportBureau != "" {
			b, ok := report.NormalizeBureau(exportBureau)
			if !ok {
				return "", "", fmt.Errorf("unknown bureau: %s", exportBureau)
			}
			opts.Bureau = b
		}
		md, err := letter.Compose(r, disputes, opts)
		if err != nil {
			return "", "", err
		}
		return md, "md", nil

	case "json", "yaml":
		var buf bytes.Buffer
		if err := cli.OutputResults(&buf, strings.ToLower(exportFormat), disputes); err != nil {
			return "", "", err
		}
		return buf.String(), strings.ToLower(exportFormat), nil

	default:
		return "", "", fmt.Errorf("invalid export format: %s (must be: markdown, json, or yaml)", exportFormat)
	}
}
