package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

const flatReport = `{"accounts": [{"creditorName": "Amex", "accountNumber": "3782", "balance": 300}]}`

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	require.NoError(t, os.Chdir(dir))
	return dir
}

func TestLoadWorkspace_OutsideProject(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.json"), []byte(flatReport), 0644))

	ws, err := LoadWorkspace(context.Background(), "report.json", nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.False(t, ws.Persist)
	assert.Nil(t, ws.History)
	require.Len(t, ws.Report.Accounts, 1)
	assert.Equal(t, "Amex", ws.Report.Accounts[0].CreditorName)
	assert.NotNil(t, ws.Scanner)
	assert.Empty(t, ws.Session.Disputes)
}

func TestLoadWorkspace_RestoresSession(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, files.InitProjectStructure())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.json"), []byte(flatReport), 0644))

	saved := &ledger.Session{
		Report:   "report.json",
		Disputes: []models.SavedDispute{{ID: "d1", EntityKey: "amex-3782", Kind: models.KindAccount, Reason: "r", Instruction: "i"}},
	}
	require.NoError(t, ledger.SaveSession(files.SessionPath("report.json"), saved))

	ws, err := LoadWorkspace(context.Background(), "report.json", models.DefaultSettings())
	require.NoError(t, err)
	defer ws.Close()

	assert.True(t, ws.Persist)
	assert.NotNil(t, ws.History)
	require.Len(t, ws.Session.Disputes, 1)
	assert.Empty(t, ws.Warnings)

	a, err := NewApp(ws, Options{})
	require.NoError(t, err)
	assert.True(t, a.Ledger().Has("amex-3782"))
	assert.True(t, a.Page().Controller("accounts/0").IsSaved())
}

func TestLoadWorkspace_Warnings(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.json"), []byte(flatReport), 0644))

	settings := models.DefaultSettings()
	settings.Scan.Provider = "http"
	settings.Templates.Provider = "carrier-pigeon"

	ws, err := LoadWorkspace(context.Background(), "report.json", settings)
	require.NoError(t, err)
	defer ws.Close()

	assert.Len(t, ws.Warnings, 2)
	assert.Nil(t, ws.Store)
	assert.Equal(t, "rules", ws.Scanner.Name())
}

func TestLoadWorkspace_MissingReport(t *testing.T) {
	chdirTemp(t)
	_, err := LoadWorkspace(context.Background(), "nope.json", nil)
	assert.Error(t, err)
}
