// Package history keeps an append-only audit log of dispute saves and
// resets in a local sqlite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// Action is the kind of event recorded
type Action string

const (
	ActionSaved Action = "saved"
	ActionReset Action = "reset"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	report      TEXT NOT NULL,
	entity_key  TEXT NOT NULL,
	action      TEXT NOT NULL,
	kind        TEXT NOT NULL DEFAULT '',
	dispute_id  TEXT NOT NULL DEFAULT '',
	reason      TEXT NOT NULL DEFAULT '',
	instruction TEXT NOT NULL DEFAULT '',
	violations  TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_report ON events(report, created_at);
CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_key);
`

// violationSep joins violations in one column; violation text never
// contains a newline.
const violationSep = "\n"

// Event is one audit row
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Report      string    `json:"report" yaml:"report"`
	EntityKey   string    `json:"entity_key" yaml:"entity_key"`
	Action      Action    `json:"action" yaml:"action"`
	Kind        string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	DisputeID   string    `json:"dispute_id,omitempty" yaml:"dispute_id,omitempty"`
	Reason      string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Instruction string    `json:"instruction,omitempty" yaml:"instruction,omitempty"`
	Violations  []string  `json:"violations,omitempty" yaml:"violations,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Filter narrows a query. Zero values match everything.
type Filter struct {
	Report    string
	EntityKey string
	Limit     int
}

// Log is the audit database
type Log struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Log{db: db, now: time.Now}, nil
}

func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// RecordSaved logs a saved dispute
func (l *Log) RecordSaved(ctx context.Context, report string, d models.SavedDispute) (Event, error) {
	return l.insert(ctx, Event{
		Report:      report,
		EntityKey:   d.EntityKey,
		Action:      ActionSaved,
		Kind:        string(d.Kind),
		DisputeID:   d.ID,
		Reason:      d.Reason,
		Instruction: d.Instruction,
		Violations:  d.Violations,
	})
}

// RecordReset logs a removed dispute
func (l *Log) RecordReset(ctx context.Context, report, key string) (Event, error) {
	return l.insert(ctx, Event{Report: report, EntityKey: key, Action: ActionReset})
}

func (l *Log) insert(ctx context.Context, e Event) (Event, error) {
	if e.EntityKey == "" {
		return Event{}, errors.New("history event needs an entity key")
	}
	e.ID = uuid.NewString()
	e.CreatedAt = l.now().UTC()

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO events (id, report, entity_key, action, kind, dispute_id, reason, instruction, violations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Report, e.EntityKey, string(e.Action), e.Kind, e.DisputeID,
		e.Reason, e.Instruction, strings.Join(e.Violations, violationSep), e.CreatedAt.UnixNano())
	if err != nil {
		return Event{}, fmt.Errorf("failed to record %s event: %w", e.Action, err)
	}
	return e, nil
}

// Events returns matching events, newest first
func (l *Log) Events(ctx context.Context, f Filter) ([]Event, error) {
	query := `SELECT id, report, entity_key, action, kind, dispute_id, reason, instruction, violations, created_at FROM events`
	var where []string
	var args []any
	if f.Report != "" {
		where = append(where, "report = ?")
		args = append(args, f.Report)
	}
	if f.EntityKey != "" {
		where = append(where, "entity_key = ?")
		args = append(args, f.EntityKey)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e          Event
			action     string
			violations string
			created    int64
		)
		if err := rows.Scan(&e.ID, &e.Report, &e.EntityKey, &action, &e.Kind, &e.DisputeID,
			&e.Reason, &e.Instruction, &violations, &created); err != nil {
			return nil, fmt.Errorf("failed to read history row: %w", err)
		}
		e.Action = Action(action)
		if violations != "" {
			e.Violations = strings.Split(violations, violationSep)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// Prune deletes events older than cutoff and returns how many went
func (l *Log) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff.UTC().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}
