package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DisputeDeskDir   = ".disputedesk"
	SessionsDir      = "sessions"
	ExportsDir       = "exports"
	SettingsFile     = "settings.yaml"
	SettingsFileTOML = "settings.toml"
	TemplatesFile    = "templates.yaml"
	HistoryFile      = "history.db"
	DefaultLetter    = "DISPUTES.md"
)

// ErrNoProject is returned when no .disputedesk directory exists
var ErrNoProject = errors.New("no .disputedesk directory found. Run 'disputedesk init' first")

func InitProjectStructure() error {
	dirs := []string{
		DisputeDeskDir,
		filepath.Join(DisputeDeskDir, SessionsDir),
		filepath.Join(DisputeDeskDir, ExportsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ProjectExists reports whether the working directory holds a project
func ProjectExists() bool {
	info, err := os.Stat(DisputeDeskDir)
	return err == nil && info.IsDir()
}

// RequireProject returns ErrNoProject when the project is missing
func RequireProject() error {
	if !ProjectExists() {
		return ErrNoProject
	}
	return nil
}

// SessionPath returns the session file for a report. Sessions are keyed
// by the report's base name so a report can move between directories.
func SessionPath(reportPath string) string {
	base := filepath.Base(reportPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		name = "report"
	}
	return filepath.Join(DisputeDeskDir, SessionsDir, name+".yaml")
}

// ListSessions returns the session file names, without extension
func ListSessions() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(DisputeDeskDir, SessionsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			sessions = append(sessions, strings.TrimSuffix(entry.Name(), ".yaml"))
		}
	}
	return sessions, nil
}

func TemplatesPath() string {
	return filepath.Join(DisputeDeskDir, TemplatesFile)
}

func HistoryPath() string {
	return filepath.Join(DisputeDeskDir, HistoryFile)
}

// ExportPath returns where an exported letter for a report is written
func ExportPath(reportPath, ext string) string {
	base := filepath.Base(reportPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(DisputeDeskDir, ExportsDir, name+"-disputes."+ext)
}

// WriteFile writes content to a file, creating parent directories
func WriteFile(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
