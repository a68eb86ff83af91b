package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/cmd/commands"
	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	outputFormat string
	quiet        bool
	noColor      bool
	skipConfirm  bool
	debug        bool

	watchReport bool
	scanOnStart bool
)

var rootCmd = &cobra.Command{
	Use:   "disputedesk [report]",
	Short: "Terminal workspace for drafting credit report disputes",
	Long: `disputedesk opens a parsed credit report as a page of dispute forms, one per
account, inquiry group, public record and the personal information block.
Saved disputes are kept in a session next to the project and can be exported
as a letter.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.ValidateOutputFormat(outputFormat); err != nil {
			return err
		}
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
		return nil
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of disputedesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "disputedesk version %s\n", version)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	reportPath := ""
	if len(args) > 0 {
		reportPath = args[0]
	}
	cc, err := cli.NewCommandContext(reportPath)
	if err != nil {
		return err
	}
	if err := cli.ValidateReportPath(cc.ReportPath); err != nil {
		return err
	}

	if debug {
		f, err := tea.LogToFile("disputedesk-debug.log", "debug")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	}

	settings, err := files.ReadSettings()
	if err != nil {
		cli.PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
	}

	ws, err := tui.LoadWorkspace(cmd.Context(), cc.ReportPath, settings)
	if err != nil {
		return err
	}
	defer ws.Close()

	app, err := tui.NewApp(ws, tui.Options{Watch: watchReport, Scan: scanOnStart})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	if err := app.QuitErr(); err != nil {
		cli.PrintWarning("%v", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable symbols and color in messages")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Answer yes to confirmations")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write a debug log to disputedesk-debug.log")

	rootCmd.Flags().BoolVarP(&watchReport, "watch", "w", false, "Reload the report when its file changes")
	rootCmd.Flags().BoolVar(&scanOnStart, "scan", false, "Run the compliance scan on start")

	rootCmd.AddCommand(
		versionCmd,
		commands.NewInitCommand(),
		commands.NewListCommand(),
		commands.NewShowCommand(),
		commands.NewDisputesCommand(),
		commands.NewResetCommand(),
		commands.NewExportCommand(),
		commands.NewClipboardCommand(),
		commands.NewScanCommand(),
		commands.NewTemplatesCommand(),
		commands.NewHistoryCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
