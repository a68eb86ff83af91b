// Package templates persists reusable reason and instruction text that
// users type by hand, so later forms can offer it in their dropdowns.
package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// ErrEmptyTemplate is returned when a template carries no text
var ErrEmptyTemplate = errors.New("template text cannot be empty")

// Ack acknowledges a save. Duplicate is set when the text was already stored.
type Ack struct {
	ID        string `json:"id" yaml:"id"`
	Duplicate bool   `json:"duplicate" yaml:"duplicate"`
}

// Store persists templates
type Store interface {
	Save(ctx context.Context, t models.Template) (Ack, error)
	List(ctx context.Context, category models.Kind) ([]models.Template, error)
}

// New builds the store named by settings. The file store lives at path.
func New(s models.TemplateSettings, path string) (Store, error) {
	switch s.Provider {
	case "", "file":
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case "http":
		if s.Endpoint == "" {
			return nil, fmt.Errorf("template provider http needs an endpoint")
		}
		return NewHTTPStore(s.Endpoint, nil), nil
	default:
		return nil, fmt.Errorf("unknown template provider %q", s.Provider)
	}
}

// Normalize trims a template and collapses its internal whitespace
func Normalize(t models.Template) models.Template {
	t.Text = strings.Join(strings.Fields(t.Text), " ")
	return t
}

func validate(t models.Template) error {
	if t.Text == "" {
		return ErrEmptyTemplate
	}
	switch t.Type {
	case models.TemplateReason, models.TemplateInstruction:
		return nil
	default:
		return fmt.Errorf("invalid template type %q", t.Type)
	}
}

func sameTemplate(a, b models.Template) bool {
	return a.Type == b.Type && a.Category == b.Category && strings.EqualFold(a.Text, b.Text)
}
