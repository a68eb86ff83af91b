package tui

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/history"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
	"github.com/disputedesk/disputedesk-terminal/pkg/scan"
	"github.com/disputedesk/disputedesk-terminal/pkg/templates"
)

// Workspace is everything the app needs for one report
type Workspace struct {
	ReportPath  string
	SessionPath string
	Report      *models.Report
	Session     *ledger.Session
	Settings    *models.Settings
	Templates   []models.Template
	Store       templates.Store
	Scanner     scan.Scanner
	History     *history.Log
	// Persist is false outside an initialised project; nothing is written
	Persist     bool

	// Warnings are non-fatal problems found while loading
	Warnings []string
}

// LoadWorkspace reads the report, its session and the saved templates
// concurrently. Only a report that cannot be read is fatal.
func LoadWorkspace(ctx context.Context, reportPath string, settings *models.Settings) (*Workspace, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	ws := &Workspace{
		ReportPath:  reportPath,
		SessionPath: files.SessionPath(reportPath),
		Settings:    settings,
		Session:     &ledger.Session{},
	}

	store, err := templates.New(settings.Templates, files.TemplatesPath())
	if err != nil {
		ws.Warnings = append(ws.Warnings, fmt.Sprintf("templates unavailable: %v", err))
	}
	ws.Store = store

	scanner, err := scan.New(settings.Scan)
	if err != nil {
		ws.Warnings = append(ws.Warnings, fmt.Sprintf("scanner unavailable, using rules: %v", err))
		scanner = scan.RuleScanner{}
	}
	ws.Scanner = scanner

	var sessionErr, templateErr error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := report.Load(reportPath)
		if err != nil {
			return err
		}
		ws.Report = r
		return nil
	})

	g.Go(func() error {
		s, err := ledger.LoadSession(ws.SessionPath)
		if err != nil {
			sessionErr = err
			return nil
		}
		ws.Session = s
		return nil
	})

	if store != nil {
		g.Go(func() error {
			list, err := store.List(gctx, "")
			if err != nil {
				templateErr = err
				return nil
			}
			ws.Templates = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	if sessionErr != nil {
		ws.Warnings = append(ws.Warnings, fmt.Sprintf("session ignored: %v", sessionErr))
	}
	if templateErr != nil {
		ws.Warnings = append(ws.Warnings, fmt.Sprintf("templates unavailable: %v", templateErr))
	}
	if ws.Session.Report != "" && ws.Session.Report != reportPath {
		ws.Warnings = append(ws.Warnings, fmt.Sprintf("session was recorded for %s", ws.Session.Report))
	}

	ws.Persist = files.ProjectExists()
	if ws.Persist {
		log, err := history.Open(files.HistoryPath())
		if err != nil {
			ws.Warnings = append(ws.Warnings, fmt.Sprintf("history disabled: %v", err))
		} else {
			ws.History = log
		}
	}

	return ws, nil
}

// Close releases the history database
func (w *Workspace) Close() error {
	if w.History != nil {
		return w.History.Close()
	}
	return nil
}
