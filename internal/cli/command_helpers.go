package cli

import (
	"fmt"

	"github.com/disputedesk/disputedesk-terminal/pkg/files"
	"github.com/disputedesk/disputedesk-terminal/pkg/history"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
)

// CommandContext manages project validation and the report a command works on
type CommandContext struct {
	ReportPath string
	Settings   *models.Settings
	report     *models.Report
	validated  bool
}

// NewCommandContext creates a command context for reportPath. An empty path
// is resolved from the project's only session, if there is exactly one.
func NewCommandContext(reportPath string) (*CommandContext, error) {
	if reportPath == "" {
		resolved, err := resolveReportFromSessions()
		if err != nil {
			return nil, err
		}
		reportPath = resolved
	}
	return &CommandContext{ReportPath: reportPath}, nil
}

func resolveReportFromSessions() (string, error) {
	names, err := files.ListSessions()
	if err != nil {
		return "", err
	}
	if len(names) != 1 {
		return "", fmt.Errorf("no report given (use --report)")
	}
	s, err := ledger.LoadSession(files.SessionPath(names[0]))
	if err != nil {
		return "", err
	}
	if s.Report == "" {
		return "", fmt.Errorf("no report given (use --report)")
	}
	return s.Report, nil
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}
	if err := files.RequireProject(); err != nil {
		return err
	}
	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// Report loads the report once
func (c *CommandContext) Report() (*models.Report, error) {
	if c.report != nil {
		return c.report, nil
	}
	if err := ValidateReportPath(c.ReportPath); err != nil {
		return nil, err
	}
	r, err := report.Load(c.ReportPath)
	if err != nil {
		return nil, err
	}
	c.report = r
	return r, nil
}

// SessionPath is the session file of the report
func (c *CommandContext) SessionPath() string {
	return files.SessionPath(c.ReportPath)
}

// Session reads the report's session. A missing file is an empty session.
func (c *CommandContext) Session() (*ledger.Session, error) {
	return ledger.LoadSession(c.SessionPath())
}

// Ledger returns the saved disputes of the report's session
func (c *CommandContext) Ledger() (*ledger.Ledger, *ledger.Session, error) {
	s, err := c.Session()
	if err != nil {
		return nil, nil, err
	}
	l := ledger.New()
	s.Apply(l)
	return l, s, nil
}

// SaveSession writes s as the report's session
func (c *CommandContext) SaveSession(s *ledger.Session) error {
	s.Report = c.ReportPath
	return ledger.SaveSession(c.SessionPath(), s)
}

// OpenHistory opens the project's audit log
func (c *CommandContext) OpenHistory() (*history.Log, error) {
	if err := c.ValidateProject(); err != nil {
		return nil, err
	}
	return history.Open(files.HistoryPath())
}
