package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	require.NoError(t, os.Chdir(tempDir))
	return tempDir
}

func TestInitProjectStructure(t *testing.T) {
	chdirTemp(t)

	assert.False(t, ProjectExists())
	assert.True(t, errors.Is(RequireProject(), ErrNoProject))

	require.NoError(t, InitProjectStructure())

	expectedDirs := []string{
		DisputeDeskDir,
		filepath.Join(DisputeDeskDir, SessionsDir),
		filepath.Join(DisputeDeskDir, ExportsDir),
	}
	for _, dir := range expectedDirs {
		_, err := os.Stat(dir)
		assert.NoError(t, err, "expected directory %s", dir)
	}
	assert.NoError(t, RequireProject())
}

func TestSessionPath(t *testing.T) {
	tests := []struct {
		report string
		want   string
	}{
		{"report.json", filepath.Join(DisputeDeskDir, SessionsDir, "report.yaml")},
		{"/tmp/in/jane-2024.yaml", filepath.Join(DisputeDeskDir, SessionsDir, "jane-2024.yaml")},
		{"", filepath.Join(DisputeDeskDir, SessionsDir, "report.yaml")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SessionPath(tt.report), tt.report)
	}
}

func TestListSessions(t *testing.T) {
	chdirTemp(t)

	sessions, err := ListSessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, InitProjectStructure())
	require.NoError(t, WriteFile(SessionPath("a.json"), "{}"))
	require.NoError(t, WriteFile(filepath.Join(DisputeDeskDir, SessionsDir, "notes.txt"), "x"))

	sessions, err = ListSessions()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sessions)
}

func TestReadSettings_Defaults(t *testing.T) {
	chdirTemp(t)

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestReadSettings_YAML(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, WriteFile(filepath.Join(DisputeDeskDir, SettingsFile), `
typing:
  char_delay: 5ms
choreography:
  enabled: false
scan:
  provider: http
  endpoint: http://localhost:9000/scan
`))

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, settings.Typing.CharDelay.Std())
	assert.Equal(t, models.DefaultSettings().Typing.FieldPause, settings.Typing.FieldPause, "unset values keep defaults")
	assert.False(t, settings.Choreography.Enabled)
	assert.Equal(t, "http", settings.Scan.Provider)
}

func TestReadSettings_TOML(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, WriteFile(filepath.Join(DisputeDeskDir, SettingsFileTOML), `
[highlight]
duration = "4s"

[inquiries]
recent_months = 12
`))

	settings, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, settings.Highlight.Duration.Std())
	assert.Equal(t, 12, settings.Inquiries.RecentMonths)
}

func TestReadSettings_Invalid(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, WriteFile(filepath.Join(DisputeDeskDir, SettingsFile), "typing:\n  char_delay: soon\n"))

	_, err := ReadSettings()
	assert.Error(t, err)
}

func TestWriteSettings_RoundTrip(t *testing.T) {
	chdirTemp(t)

	settings := models.DefaultSettings()
	settings.UI.Bureaus = []models.Bureau{models.BureauEquifax}
	settings.Choreography.ScrollOffset = 7
	require.NoError(t, WriteSettings(settings))

	loaded, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
