// Package ledger holds the page-level record of saved disputes.
//
// A key is present iff its entity currently has an active saved dispute.
// Every mutation is broadcast to subscribers so sections and page-level
// counters can recompute their badges.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

var ErrNotFound = errors.New("no saved dispute for key")

// Op describes a ledger mutation
type Op int

const (
	OpPut Op = iota
	OpRemove
	OpClear
)

// Entry is either a full dispute snapshot or a bare "saved" flag
type Entry struct {
	Dispute *models.SavedDispute
}

// HasData reports whether the entry carries dispute text
func (e Entry) HasData() bool {
	return e.Dispute != nil && e.Dispute.HasData
}

// Change is delivered to subscribers after each mutation
type Change struct {
	Op  Op
	Key string
}

// Observer receives ledger changes. Observers run on the goroutine that
// mutated the ledger, after the lock is released, so they may read it.
type Observer func(Change)

// Ledger maps entity keys to their saved disputes
type Ledger struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	observers map[int]Observer
	nextID    int
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{
		entries:   make(map[string]Entry),
		observers: make(map[int]Observer),
	}
}

// Put stores a dispute under its entity key, replacing any previous one
func (l *Ledger) Put(d models.SavedDispute) {
	snapshot := copyDispute(d)

	l.mu.Lock()
	l.entries[d.EntityKey] = Entry{Dispute: &snapshot}
	l.mu.Unlock()

	l.notify(Change{Op: OpPut, Key: d.EntityKey})
}

// Mark records key as saved without dispute content
func (l *Ledger) Mark(key string) {
	l.mu.Lock()
	l.entries[key] = Entry{}
	l.mu.Unlock()

	l.notify(Change{Op: OpPut, Key: key})
}

// Remove deletes key. It reports whether the key was present; removing an
// absent key does not notify.
func (l *Ledger) Remove(key string) bool {
	l.mu.Lock()
	_, ok := l.entries[key]
	delete(l.entries, key)
	l.mu.Unlock()

	if ok {
		l.notify(Change{Op: OpRemove, Key: key})
	}
	return ok
}

// Clear removes every entry
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.entries = make(map[string]Entry)
	l.mu.Unlock()

	l.notify(Change{Op: OpClear})
}

func (l *Ledger) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[key]
	return ok
}

// Lookup returns the raw entry for key
func (l *Ledger) Lookup(key string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[key]
	if ok && e.Dispute != nil {
		d := copyDispute(*e.Dispute)
		e.Dispute = &d
	}
	return e, ok
}

// Get returns a copy of the dispute stored under key. Bare flags and
// missing keys return ErrNotFound.
func (l *Ledger) Get(key string) (models.SavedDispute, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[key]
	if !ok || e.Dispute == nil {
		return models.SavedDispute{}, ErrNotFound
	}
	return copyDispute(*e.Dispute), nil
}

// IsFullyResolved reports whether every key is present. An empty key set
// is never resolved.
func (l *Ledger) IsFullyResolved(keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, k := range keys {
		if _, ok := l.entries[k]; !ok {
			return false
		}
	}
	return true
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Keys returns the present keys in sorted order
func (l *Ledger) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns copies of all stored disputes ordered by save time,
// then key. Bare flags are skipped.
func (l *Ledger) Snapshot() []models.SavedDispute {
	l.mu.RLock()
	out := make([]models.SavedDispute, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Dispute != nil {
			out = append(out, copyDispute(*e.Dispute))
		}
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.Before(out[j].SavedAt)
		}
		return out[i].EntityKey < out[j].EntityKey
	})
	return out
}

// Subscribe registers fn and returns a function that unregisters it
func (l *Ledger) Subscribe(fn Observer) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.observers[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.observers, id)
		l.mu.Unlock()
	}
}

func (l *Ledger) notify(c Change) {
	l.mu.RLock()
	ids := make([]int, 0, len(l.observers))
	for id := range l.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, l.observers[id])
	}
	l.mu.RUnlock()

	for _, fn := range observers {
		fn(c)
	}
}

func copyDispute(d models.SavedDispute) models.SavedDispute {
	d.Violations = cloneStrings(d.Violations)
	d.Selection = cloneStrings(d.Selection)
	return d
}

// cloneStrings copies s, keeping an empty non-nil slice non-nil
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
