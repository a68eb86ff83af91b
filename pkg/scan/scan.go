// Package scan finds compliance violations in a report. Scanners are
// collaborators: the TUI treats any failure as "nothing found".
package scan

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

// Results maps an entity key to the violations found for it
type Results map[string][]string

// Count returns the total number of violations
func (r Results) Count() int {
	n := 0
	for _, v := range r {
		n += len(v)
	}
	return n
}

// Scanner runs a compliance scan over a report
type Scanner interface {
	Name() string
	Scan(ctx context.Context, r *models.Report) (Results, error)
}

// RuleScanner applies the offline rule table
type RuleScanner struct{}

func (RuleScanner) Name() string { return "rules" }

func (RuleScanner) Scan(ctx context.Context, r *models.Report) (Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Results(suggest.RuleScan(r)), nil
}

// New builds the scanner named by settings
func New(s models.ScanSettings) (Scanner, error) {
	switch s.Provider {
	case "", "rules":
		return RuleScanner{}, nil
	case "http":
		if s.Endpoint == "" {
			return nil, fmt.Errorf("scan provider http needs an endpoint")
		}
		return NewHTTPScanner(s.Endpoint, os.Getenv(s.APIKeyEnv), s.Timeout.Std(), s.MinInterval.Std()), nil
	default:
		return nil, fmt.Errorf("unknown scan provider %q", s.Provider)
	}
}

// Outcome is what the UI sees of a scan: it always completes
type Outcome struct {
	Results  Results
	Err      error
	Duration time.Duration
}

// Run calls s and folds any failure into an empty result
func Run(ctx context.Context, s Scanner, r *models.Report) Outcome {
	start := time.Now()
	results, err := s.Scan(ctx, r)
	if err != nil || results == nil {
		results = Results{}
	}
	return Outcome{Results: results, Err: err, Duration: time.Since(start)}
}
