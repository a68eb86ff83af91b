package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

type storedTemplate struct {
	ID              string `yaml:"id"`
	models.Template `yaml:",inline"`
}

type registryFile struct {
	Templates []storedTemplate `yaml:"templates"`
}

// FileStore keeps templates in a yaml registry
type FileStore struct {
	mu       sync.RWMutex
	registry *registryFile
	path     string
}

// NewFileStore opens the registry at path, starting empty if it is missing
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	if err := s.Load(); err != nil {
		if os.IsNotExist(err) {
			s.registry = &registryFile{Templates: []storedTemplate{}}
			return s, nil
		}
		return nil, fmt.Errorf("failed to load template registry: %w", err)
	}

	return s, nil
}

// Load reads the registry from disk
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var registry registryFile
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return fmt.Errorf("failed to parse template registry: %w", err)
	}

	s.registry = &registry
	return nil
}

// Save adds t unless an equal template is already stored
func (s *FileStore) Save(ctx context.Context, t models.Template) (Ack, error) {
	if err := ctx.Err(); err != nil {
		return Ack{}, err
	}
	t = Normalize(t)
	if err := validate(t); err != nil {
		return Ack{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.registry.Templates {
		if sameTemplate(existing.Template, t) {
			return Ack{ID: existing.ID, Duplicate: true}, nil
		}
	}

	stored := storedTemplate{ID: uuid.NewString(), Template: t}
	s.registry.Templates = append(s.registry.Templates, stored)
	if err := s.write(); err != nil {
		s.registry.Templates = s.registry.Templates[:len(s.registry.Templates)-1]
		return Ack{}, err
	}
	return Ack{ID: stored.ID}, nil
}

// List returns the templates of a category in insertion order. An empty
// category lists everything.
func (s *FileStore) List(ctx context.Context, category models.Kind) ([]models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Template{}
	for _, t := range s.registry.Templates {
		if category == "" || t.Category == category {
			out = append(out, t.Template)
		}
	}
	return out, nil
}

// Remove deletes the template with the given id
func (s *FileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]storedTemplate, 0, len(s.registry.Templates))
	found := false
	for _, t := range s.registry.Templates {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("template '%s' not found in registry", id)
	}

	previous := s.registry.Templates
	s.registry.Templates = kept
	if err := s.write(); err != nil {
		s.registry.Templates = previous
		return err
	}
	return nil
}

// write persists the registry; callers hold the lock
func (s *FileStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := yaml.Marshal(s.registry)
	if err != nil {
		return fmt.Errorf("failed to marshal template registry: %w", err)
	}

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write template registry: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save template registry: %w", err)
	}
	return nil
}
