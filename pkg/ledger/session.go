package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// Session is the persisted form of a page: the ledger plus the unsaved
// selections and drafts needed to rebuild every form
type Session struct {
	Report     string                         `yaml:"report"`
	UpdatedAt  time.Time                      `yaml:"updated_at"`
	Disputes   []models.SavedDispute          `yaml:"disputes"`
	Marked     []string                       `yaml:"marked,omitempty"`
	Selections map[string][]string            `yaml:"selections,omitempty"`
	Drafts     map[string]models.DisputeDraft `yaml:"drafts,omitempty"`
}

// Capture fills the session's ledger part from l
func (s *Session) Capture(l *Ledger) {
	s.Disputes = l.Snapshot()
	s.Marked = nil
	for _, key := range l.Keys() {
		if e, _ := l.Lookup(key); e.Dispute == nil {
			s.Marked = append(s.Marked, key)
		}
	}
}

// Apply loads the session's disputes into l, replacing its contents
func (s *Session) Apply(l *Ledger) {
	l.Clear()
	for _, d := range s.Disputes {
		l.Put(d)
	}
	for _, key := range s.Marked {
		l.Mark(key)
	}
}

// LoadSession reads a session file. A missing file yields an empty
// session and no error.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	return &s, nil
}

// SaveSession writes s to path atomically
func SaveSession(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	s.UpdatedAt = time.Now().UTC()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
