package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/internal/cli"
	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/history"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

const testReportJSON = `{
  "reportDate": "2024-06-01",
  "accounts": [
    {"id": "acct-1", "creditorName": "Capital One", "accountNumber": "5555444433332222",
     "statusCode": "97", "balance": 900, "dateOpened": "2019-01-01"}
  ],
  "inquiries": [{"id": "inq-1", "name": "Citi", "date": "2024-01-10", "type": "hard"}],
  "personalInfo": {"name": "Jane Public", "currentAddress": "1 Main St"}
}`

// setupProject creates an initialized project holding report.json and
// returns the report path
func setupProject(t *testing.T, withSession bool) string {
	t.Helper()
	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { os.Chdir(oldDir) })

	require.NoError(t, files.InitProjectStructure())
	require.NoError(t, os.WriteFile("report.json", []byte(testReportJSON), 0644))

	var out bytes.Buffer
	cli.SetStreams(nil, &out, &out)
	cli.SetGlobalFlags(true, false, true)
	t.Cleanup(func() {
		cli.SetStreams(nil, os.Stdout, os.Stderr)
		cli.SetGlobalFlags(false, false, false)
	})

	if withSession {
		s := &ledger.Session{
			Report: "report.json",
			Disputes: []models.SavedDispute{{
				ID:          "d-1",
				EntityKey:   "acct-1",
				Kind:        models.KindAccount,
				Reason:      "The balance amount is incorrect",
				Instruction: "Please update the balance to reflect the correct amount",
				Violations:  []string{},
				Selection:   []string{"TransUnion"},
				HasData:     true,
				SavedAt:     time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
			}},
		}
		require.NoError(t, ledger.SaveSession(files.SessionPath("report.json"), s))
	}
	return "report.json"
}

// run executes cmd with args and an --output flag, returning stdout
func run(t *testing.T, cmd *cobra.Command, output string, args ...string) (string, error) {
	t.Helper()
	cmd.Flags().StringP("output", "o", output, "")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInitCommand(t *testing.T) {
	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))
	defer os.Chdir(oldDir)
	cli.SetGlobalFlags(true, false, false)
	defer cli.SetGlobalFlags(false, false, false)

	_, err := run(t, NewInitCommand(), "text", "--settings")
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(files.DisputeDeskDir, files.SessionsDir))
	assert.FileExists(t, filepath.Join(files.DisputeDeskDir, files.SettingsFile))
}

func TestListCommand(t *testing.T) {
	report := setupProject(t, true)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "everything",
			args:     []string{"-r", report},
			contains: []string{"acct-1", "Capital One", "inq-1", "Citi", "name", "Jane Public", "✓"},
		},
		{
			name:     "accounts only",
			args:     []string{"accounts", "-r", report},
			contains: []string{"acct-1", "$900.00", "Charge-off"},
			excludes: []string{"inq-1"},
		},
		{
			name:     "section alias",
			args:     []string{"inquiry", "-r", report},
			contains: []string{"inq-1"},
			excludes: []string{"acct-1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, NewListCommand(), "text", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestListCommand_JSON(t *testing.T) {
	report := setupProject(t, true)

	out, err := run(t, NewListCommand(), "json", "accounts", "-r", report)
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "accounts", result.Section)
	require.Equal(t, 1, result.Count)
	assert.True(t, result.Items[0].Disputed)
}

func TestListCommand_InvalidSection(t *testing.T) {
	report := setupProject(t, false)
	_, err := run(t, NewListCommand(), "text", "loans", "-r", report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid section")
}

func TestListCommand_ReportFromSession(t *testing.T) {
	setupProject(t, true)
	out, err := run(t, NewListCommand(), "text", "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "acct-1")
}

func TestShowCommand(t *testing.T) {
	report := setupProject(t, true)

	out, err := run(t, NewShowCommand(), "text", "acct-1", "-r", report)
	require.NoError(t, err)
	assert.Contains(t, out, "Capital One")
	assert.Contains(t, out, "************2222")
	assert.Contains(t, out, "Saved dispute:")
	assert.Contains(t, out, "The balance amount is incorrect")

	out, err = run(t, NewShowCommand(), "yaml", models.PersonalInfoKey, "-r", report)
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Public")

	_, err = run(t, NewShowCommand(), "text", "missing", "-r", report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDisputesCommand(t *testing.T) {
	report := setupProject(t, true)

	out, err := run(t, NewDisputesCommand(), "text", "-r", report)
	require.NoError(t, err)
	assert.Contains(t, out, "acct-1")
	assert.Contains(t, out, "1 saved dispute(s)")

	out, err = run(t, NewDisputesCommand(), "json", "-r", report)
	require.NoError(t, err)
	var result DisputesResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Count)
}

func TestResetCommand(t *testing.T) {
	report := setupProject(t, true)

	_, err := run(t, NewResetCommand(), "text", "acct-1", "-r", report)
	require.NoError(t, err)

	s, err := ledger.LoadSession(files.SessionPath(report))
	require.NoError(t, err)
	assert.Empty(t, s.Disputes)

	log, err := history.Open(files.HistoryPath())
	require.NoError(t, err)
	defer log.Close()
	events, err := log.Events(commandContext(NewResetCommand()), history.Filter{EntityKey: "acct-1"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, history.ActionReset, events[0].Action)

	_, err = run(t, NewResetCommand(), "text", "acct-1", "-r", report)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestExportCommand(t *testing.T) {
	report := setupProject(t, true)

	out, err := run(t, NewExportCommand(), "text", "-r", report)
	require.NoError(t, err)
	assert.Contains(t, out, "Request for Investigation")
	assert.Contains(t, out, "The balance amount is incorrect")

	out, err = run(t, NewExportCommand(), "text", "-r", report, "--format", "json")
	require.NoError(t, err)
	var disputes []models.SavedDispute
	require.NoError(t, json.Unmarshal([]byte(out), &disputes))
	require.Len(t, disputes, 1)
	assert.Equal(t, "acct-1", disputes[0].EntityKey)

	_, err = run(t, NewExportCommand(), "text", "-r", report, "--save")
	require.NoError(t, err)
	assert.FileExists(t, files.ExportPath(report, "md"))

	_, err = run(t, NewExportCommand(), "text", "-r", report, "--format", "pdf")
	assert.Error(t, err)
}

func TestExportCommand_NoDisputes(t *testing.T) {
	report := setupProject(t, false)
	_, err := run(t, NewExportCommand(), "text", "-r", report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved disputes")
}

func TestClipboardCommand(t *testing.T) {
	report := setupProject(t, true)

	var copied string
	original := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = original }()

	_, err := run(t, NewClipboardCommand(), "text", "-r", report, "--bureau", "tu")
	require.NoError(t, err)
	assert.Contains(t, copied, "To: TransUnion")

	_, err = run(t, NewClipboardCommand(), "text", "-r", report, "--bureau", "acme")
	assert.Error(t, err)
}

func TestScanCommand(t *testing.T) {
	report := setupProject(t, false)

	out, err := run(t, NewScanCommand(), "text", "-r", report, "--rules")
	require.NoError(t, err)
	assert.Contains(t, out, "acct-1")
	assert.Contains(t, out, "charged-off account reports a non-zero balance")
	assert.Contains(t, out, "Metro 2")

	out, err = run(t, NewScanCommand(), "json", "-r", report, "--rules")
	require.NoError(t, err)
	var result ScanResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "rules", result.Scanner)
	assert.Contains(t, result.Violations, "acct-1")
}

func TestTemplatesCommand(t *testing.T) {
	setupProject(t, false)

	_, err := run(t, NewTemplatesCommand(), "text", "add", "--type", "reason", "--category", "account", "Paid", "in", "full")
	require.NoError(t, err)

	out, err := run(t, NewTemplatesCommand(), "text", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Paid in full")

	out, err = run(t, NewTemplatesCommand(), "text", "list", "--category", "public-record")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved templates")

	_, err = run(t, NewTemplatesCommand(), "text", "add", "--type", "headline", "x")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	report := setupProject(t, true)

	out, err := run(t, NewHistoryCommand(), "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")

	_, err = run(t, NewResetCommand(), "text", "acct-1", "-r", report)
	require.NoError(t, err)

	out, err = run(t, NewHistoryCommand(), "text", "-r", report)
	require.NoError(t, err)
	assert.Contains(t, out, "reset")
	assert.Contains(t, out, "acct-1")
}

func TestCommands_NoProject(t *testing.T) {
	tempDir := t.TempDir()
	oldDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tempDir))
	defer os.Chdir(oldDir)

	_, err := run(t, NewHistoryCommand(), "text")
	assert.ErrorIs(t, err, files.ErrNoProject)

	_, err = run(t, NewListCommand(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no report given")
}
