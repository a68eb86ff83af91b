package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

var initWriteSettings bool

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new disputedesk project",
		Long: `Creates the .disputedesk folder structure in the current directory.

Sessions, saved templates and the dispute history are only kept inside an
initialized project.

Examples:
  # Create the project folders
  disputedesk init

  # Also write a settings.yaml with every default spelled out
  disputedesk init --settings`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initWriteSettings, "settings", false, "Write a default settings.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}

	cli.PrintInfo("Initializing disputedesk project in %s...", cwd)

	if err := files.InitProjectStructure(); err != nil {
		return fmt.Errorf("failed to initialize project structure: %w", err)
	}
	cli.PrintSuccess("Created %s folder structure", files.DisputeDeskDir)

	if initWriteSettings {
		if err := files.WriteSettings(models.DefaultSettings()); err != nil {
			return err
		}
		cli.PrintSuccess("Wrote default %s", files.SettingsFile)
	}

	cli.PrintInfo("Run 'disputedesk <report.json>' to start reviewing a report.")
	return nil
}
