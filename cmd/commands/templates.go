package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/templates"
)

var (
	templatesListCategory string
	templatesAddCategory  string
	templatesType         string
)

// NewTemplatesCommand creates the templates command group
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage saved reason and instruction templates",
		Long: `Saved templates are offered in the reason and instruction dropdowns of
forms of the same category. Text typed by hand in a form is saved as a
template automatically.

Examples:
  disputedesk templates list
  disputedesk templates list --category account
  disputedesk templates add --type reason --category account "Balance was paid in full"`,
	}

	cmd.AddCommand(newTemplatesListCommand(), newTemplatesAddCommand())
	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE:  runTemplatesList,
	}
	cmd.Flags().StringVar(&templatesListCategory, "category", "", "Only this entity kind (account, inquiry-group, public-record, personal-info)")
	return cmd
}

func newTemplatesAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Save a template",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTemplatesAdd,
	}
	cmd.Flags().StringVar(&templatesType, "type", "reason", "Template type (reason or instruction)")
	cmd.Flags().StringVar(&templatesAddCategory, "category", string(models.KindAccount), "Entity kind the template applies to")
	return cmd
}

func openTemplateStore() (templates.Store, error) {
	settings, err := files.ReadSettings()
	if err != nil {
		cli.PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
	}
	if p := settings.Templates.Provider; p == "" || p == "file" {
		if err := files.RequireProject(); err != nil {
			return nil, err
		}
	}
	return templates.New(settings.Templates, files.TemplatesPath())
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	category, err := cli.ParseKind(templatesListCategory)
	if err != nil {
		return err
	}
	store, err := openTemplateStore()
	if err != nil {
		return err
	}

	list, err := store.List(commandContext(cmd), category)
	if err != nil {
		return err
	}

	outputFormat := cli.Format(cmd)
	if cli.IsStructured(outputFormat) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, list)
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No saved templates")
		return nil
	}
	table := cli.NewTableFormatter(out)
	table.Header("TYPE", "CATEGORY", "TEXT")
	for _, t := range list {
		table.Row(string(t.Type), string(t.Category), cli.TruncateString(t.Text, 60))
	}
	table.Flush()
	return nil
}

func runTemplatesAdd(cmd *cobra.Command, args []string) error {
	typ, err := cli.ParseTemplateType(templatesType)
	if err != nil {
		return err
	}
	category, err := cli.ParseKind(templatesAddCategory)
	if err != nil {
		return err
	}
	if category == "" {
		return fmt.Errorf("a template needs a --category")
	}
	store, err := openTemplateStore()
	if err != nil {
		return err
	}

	ack, err := store.Save(commandContext(cmd), models.Template{
		Type:     typ,
		Text:     strings.Join(args, " "),
		Category: category,
	})
	if err != nil {
		return err
	}

	if ack.Duplicate {
		cli.PrintInfo("Template already saved (%s)", ack.ID)
		return nil
	}
	cli.PrintSuccess("Saved %s template %s", typ, ack.ID)
	return nil
}
