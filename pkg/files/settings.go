package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// ReadSettings loads .disputedesk/settings.yaml, or settings.toml when no
// yaml file exists. Missing files yield the defaults. Values absent from
// the file keep their default.
func ReadSettings() (*models.Settings, error) {
	settings := models.DefaultSettings()

	yamlPath := filepath.Join(DisputeDeskDir, SettingsFile)
	data, err := os.ReadFile(yamlPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", yamlPath, err)
		}
		return settings, nil
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	tomlPath := filepath.Join(DisputeDeskDir, SettingsFileTOML)
	if _, err := os.Stat(tomlPath); err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if _, err := toml.DecodeFile(tomlPath, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", tomlPath, err)
	}
	return settings, nil
}

// WriteSettings saves settings as yaml
func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(DisputeDeskDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	path := filepath.Join(DisputeDeskDir, SettingsFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
