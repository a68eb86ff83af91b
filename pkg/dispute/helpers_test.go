package dispute

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

var allBureaus = []models.Bureau{models.BureauTransUnion, models.BureauExperian, models.BureauEquifax}

func testReport() *models.Report {
	return &models.Report{
		ReportDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []models.Account{
			{Key: "acct-1", CreditorName: "CITIBANK NA", AccountNumber: "4111111111111111", Balance: "1250", Status: "Open", Bureaus: allBureaus},
			{Key: "acct-2", CreditorName: "Capital One", Status: "Charge-off", ChargeOff: "900", Bureaus: []models.Bureau{models.BureauTransUnion}},
		},
		Inquiries: []models.Inquiry{
			{Key: "citibank-2024-01-10", Name: "Citibank", Date: "2024-01-10"},
			{Key: "auto-lender-2024-03-01", Name: "Auto Lender", Date: "2024-03-01"},
			{Key: "old-bank-2020-01-01", Name: "Old Bank", Date: "2020-01-01"},
		},
		PublicRecords: []models.PublicRecord{
			{Key: "bk-1", Type: "Bankruptcy", Bureaus: allBureaus},
		},
		PersonalInfo: models.PersonalInfo{
			Name:              "Jane Public",
			CurrentAddress:    "1 Main St",
			PreviousAddresses: []string{"9 Elm Ave", "5 Oak Rd"},
			CurrentEmployer:   "Acme",
		},
	}
}

func testSettings() *models.Settings {
	s := models.DefaultSettings()
	s.Typing.CharDelay = 0
	s.Typing.FieldPause = 0
	s.Choreography.CollapseDelay = 0
	s.Choreography.NextDelay = 0
	s.Highlight.Duration = 0
	return s
}

// recorder captures host callbacks
type recorder struct {
	saved     []string
	resets    []string
	templates []models.Template
}

func (r *recorder) host() Host {
	return Host{
		OnDisputeSaved: func(key string, _ models.SavedDispute) tea.Cmd {
			r.saved = append(r.saved, key)
			return nil
		},
		OnDisputeReset: func(key string) tea.Cmd {
			r.resets = append(r.resets, key)
			return nil
		},
		SaveTemplate: func(t models.Template) tea.Cmd {
			r.templates = append(r.templates, t)
			return nil
		},
	}
}

type fakeAnchors struct {
	offsets  map[string]int
	scrolled []int
}

func (f *fakeAnchors) Locate(anchor string) (int, bool) {
	y, ok := f.offsets[anchor]
	return y, ok
}

func (f *fakeAnchors) ScrollTo(offset int) {
	f.scrolled = append(f.scrolled, offset)
}

// anchorsFor lays out sections 100 lines apart and forms 10 lines apart
func anchorsFor(p *Page) *fakeAnchors {
	f := &fakeAnchors{offsets: map[string]int{}}
	for i, s := range p.Sections() {
		f.offsets[SectionAnchor(s.ID())] = i * 100
		for j, c := range s.Controllers() {
			f.offsets[EntityAnchor(c.ID())] = i*100 + j*10 + 5
		}
	}
	return f
}

type fixture struct {
	page    *Page
	ledger  *ledger.Ledger
	host    *recorder
	anchors *fakeAnchors
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := ledger.New()
	rec := &recorder{}
	ids := 0
	cfg := ConfigFromSettings(testSettings())
	cfg.Now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	cfg.NewID = func() string {
		ids++
		return fmt.Sprintf("dispute-%d", ids)
	}
	p := NewPageWithConfig(testReport(), l, testSettings(), cfg, rec.host())
	t.Cleanup(p.Close)

	anchors := anchorsFor(p)
	p.SetAnchors(anchors)
	return &fixture{page: p, ledger: l, host: rec, anchors: anchors}
}

// drain runs cmd and everything it leads to, feeding messages back into the
// page. Messages the page does not route are returned.
func drain(t *testing.T, p *Page, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	unrouted, _ := drainN(t, p, cmd, -1)
	return unrouted
}

// drainN is drain limited to n executed commands; n < 0 means no limit.
// Commands not run yet are returned as one batch.
func drainN(t *testing.T, p *Page, cmd tea.Cmd, n int) ([]tea.Msg, tea.Cmd) {
	t.Helper()
	var unrouted []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100000, "command loop did not settle")
		if n >= 0 && steps >= n {
			return unrouted, tea.Batch(queue...)
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ChoreoStepMsg, ownedMsg:
			queue = append(queue, p.Update(msg))
		default:
			unrouted = append(unrouted, msg)
		}
	}
	return unrouted, nil
}

func warningsIn(msgs []tea.Msg) []WarningMsg {
	var out []WarningMsg
	for _, m := range msgs {
		if w, ok := m.(WarningMsg); ok {
			out = append(out, w)
		}
	}
	return out
}

// runWarning executes a command expected to produce a WarningMsg
func runWarning(t *testing.T, cmd tea.Cmd) WarningMsg {
	t.Helper()
	require.NotNil(t, cmd)
	w, ok := cmd().(WarningMsg)
	require.True(t, ok, "expected a warning")
	return w
}
