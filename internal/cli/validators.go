package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// Sections accepted by the list command
var Sections = []string{"accounts", "inquiries", "public-records", "personal", "all"}

// ValidateReportPath checks that path names a readable .json or .yaml file
func ValidateReportPath(path string) error {
	if path == "" {
		return fmt.Errorf("no report given (use --report)")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("report does not exist: %s", path)
		}
		return fmt.Errorf("error accessing report: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("report path is a directory: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("unsupported report type %q (must be .json or .yaml)", filepath.Ext(path))
	}
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	if Contains([]string{"text", "json", "yaml"}, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// NormalizeSection maps list type variants to the canonical section name
func NormalizeSection(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "all", nil
	case "account", "accounts":
		return "accounts", nil
	case "inquiry", "inquiries":
		return "inquiries", nil
	case "public-record", "public-records", "records":
		return "public-records", nil
	case "personal", "personal-info":
		return "personal", nil
	}
	return "", fmt.Errorf("invalid section: %s (must be one of %s)", s, strings.Join(Sections, ", "))
}

// ParseTemplateType validates a template type flag
func ParseTemplateType(s string) (models.TemplateType, error) {
	switch models.TemplateType(strings.ToLower(s)) {
	case models.TemplateReason:
		return models.TemplateReason, nil
	case models.TemplateInstruction:
		return models.TemplateInstruction, nil
	}
	return "", fmt.Errorf("invalid template type: %s (must be: reason or instruction)", s)
}

// ParseKind validates an entity kind flag. An empty string means any kind.
func ParseKind(s string) (models.Kind, error) {
	kinds := []models.Kind{models.KindAccount, models.KindInquiryGroup, models.KindPublicRecord, models.KindPersonalInfo}
	if s == "" {
		return "", nil
	}
	for _, k := range kinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("invalid category: %s (must be one of %s)", s, strings.Join(names, ", "))
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
