package dispute

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/disputedesk/disputedesk-terminal/pkg/format"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

// Host receives the page's save and reset events. Every callback may be nil.
type Host struct {
	OnDisputeSaved func(key string, d models.SavedDispute) tea.Cmd
	OnDisputeReset func(key string) tea.Cmd
	SaveTemplate   func(t models.Template) tea.Cmd
}

// Page owns every section of one report and keeps them consistent with the
// ledger
type Page struct {
	report   *models.Report
	ledger   *ledger.Ledger
	sections []*Section
	byID     map[string]*Controller
	owner    map[string]*Section

	host        Host
	choreo      *Choreographer
	choreoOn    bool
	highlighted string
	version     int
	unsubscribe func()
}

// NewPage builds the sections for r. settings drive timing, the inquiry
// split and the bureau filter.
func NewPage(r *models.Report, l *ledger.Ledger, settings *models.Settings, host Host) *Page {
	return NewPageWithConfig(r, l, settings, ConfigFromSettings(settings), host)
}

// NewPageWithConfig is NewPage with an explicit controller Config, used
// where clocks and ids must be fixed
func NewPageWithConfig(r *models.Report, l *ledger.Ledger, settings *models.Settings, cfg Config, host Host) *Page {
	p := &Page{
		report:   r,
		ledger:   l,
		byID:     make(map[string]*Controller),
		owner:    make(map[string]*Section),
		host:     host,
		choreoOn: settings.Choreography.Enabled,
		choreo: NewChoreographer(nil, settings.Choreography.ScrollOffset,
			settings.Choreography.CollapseDelay.Std(), settings.Choreography.NextDelay.Std()),
	}
	return p.build(cfg, settings)
}

func (p *Page) build(cfg Config, settings *models.Settings) *Page {
	bureaus := bureauFilter(settings.UI.Bureaus)

	var accounts []*Controller
	for i, a := range p.report.Accounts {
		c := NewController(fmt.Sprintf("%s/%d", SectionAccounts, i), a.Key, models.KindAccount,
			accountTitle(a), bureauItems(a.Bureaus, bureaus, accountDetail(a)), p.ledger, cfg)
		c.SetClass(suggest.Classify(a))
		accounts = append(accounts, c)
	}

	recent, older := report.SplitInquiries(p.report, settings.Inquiries.RecentMonths)
	inquiries := []*Controller{
		NewController(fmt.Sprintf("%s/recent", SectionInquiries), models.RecentInquiriesKey,
			models.KindInquiryGroup, "Recent Inquiries", p.inquiryItems(recent), p.ledger, cfg),
		NewController(fmt.Sprintf("%s/older", SectionInquiries), models.OlderInquiriesKey,
			models.KindInquiryGroup, "Older Inquiries", p.inquiryItems(older), p.ledger, cfg),
	}

	var records []*Controller
	for i, rec := range p.report.PublicRecords {
		detail := fmt.Sprintf("Filed %s, %s", format.Date(rec.FiledDate), format.Currency(rec.Amount))
		records = append(records, NewController(fmt.Sprintf("%s/%d", SectionPublicRecords, i), rec.Key,
			models.KindPublicRecord, rec.Type, bureauItems(rec.Bureaus, bureaus, detail), p.ledger, cfg))
	}

	var personalItems []Item
	for _, it := range p.report.PersonalInfo.Items() {
		personalItems = append(personalItems, Item{Key: it.Key, Label: it.Label, Detail: it.Value})
	}
	personal := []*Controller{
		NewController(fmt.Sprintf("%s/0", SectionPersonal), models.PersonalInfoKey,
			models.KindPersonalInfo, "Personal Information", personalItems, p.ledger, cfg),
	}

	p.sections = []*Section{
		NewSection(SectionAccounts, "Accounts", accounts),
		NewSection(SectionInquiries, "Hard Inquiries", inquiries),
		NewSection(SectionPublicRecords, "Public Records", records),
		NewSection(SectionPersonal, "Personal Information", personal),
	}
	for _, s := range p.sections {
		s.SetAllDetails(settings.UI.ShowDetails)
		for _, c := range s.controllers {
			p.byID[c.ID()] = c
			p.owner[c.ID()] = s
			c.SetHooks(p.hooksFor(c))
		}
	}

	p.unsubscribe = p.ledger.Subscribe(p.onLedgerChange)
	return p
}

func (p *Page) inquiryItems(inquiries []models.Inquiry) []Item {
	items := make([]Item, 0, len(inquiries))
	for _, q := range inquiries {
		it := Item{
			Key:    q.Key,
			Label:  q.Name,
			Detail: format.Date(q.Date),
		}
		if acct, ok := report.TiedToOpenAccount(q.Name, p.report.Accounts); ok {
			it.TiedTo = acct.CreditorName
		}
		items = append(items, it)
	}
	return items
}

func bureauFilter(allowed []models.Bureau) map[models.Bureau]bool {
	if len(allowed) == 0 {
		allowed = models.AllBureaus
	}
	m := make(map[models.Bureau]bool, len(allowed))
	for _, b := range allowed {
		m[b] = true
	}
	return m
}

func bureauItems(reported []models.Bureau, allowed map[models.Bureau]bool, detail string) []Item {
	var items []Item
	for _, b := range reported {
		if allowed[b] {
			items = append(items, Item{Key: string(b), Label: string(b), Detail: detail})
		}
	}
	return items
}

func accountTitle(a models.Account) string {
	if a.CreditorName == "" {
		return "Unknown creditor"
	}
	return a.CreditorName
}

func accountDetail(a models.Account) string {
	return fmt.Sprintf("%s  %s  %s", format.MaskAccount(a.AccountNumber), format.Currency(a.Balance), a.Status)
}

func (p *Page) hooksFor(c *Controller) Hooks {
	return Hooks{
		OnSaved: func(key string, d models.SavedDispute) tea.Cmd {
			var cmds []tea.Cmd
			if p.host.OnDisputeSaved != nil {
				cmds = append(cmds, p.host.OnDisputeSaved(key, d))
			}
			cmds = append(cmds, p.choreograph(c))
			return batch(cmds...)
		},
		OnReset: func(key string) tea.Cmd {
			if p.host.OnDisputeReset != nil {
				return p.host.OnDisputeReset(key)
			}
			return nil
		},
		OnTemplate: func(t models.Template) tea.Cmd {
			if p.host.SaveTemplate != nil {
				return p.host.SaveTemplate(t)
			}
			return nil
		},
	}
}

// Close detaches the page from the ledger
func (p *Page) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

func (p *Page) Report() *models.Report { return p.report }
func (p *Page) Ledger() *ledger.Ledger { return p.ledger }
func (p *Page) Sections() []*Section { return p.sections }
func (p *Page) Controller(id string) *Controller { return p.byID[id] }
func (p *Page) Highlighted() string { return p.highlighted }
func (p *Page) Choreographer() *Choreographer { return p.choreo }

// Version changes on every ledger mutation seen by the page
func (p *Page) Version() int { return p.version }

// Section returns the section with id
func (p *Page) Section(id SectionID) *Section {
	for _, s := range p.sections {
		if s.id == id {
			return s
		}
	}
	return nil
}

// SectionOf returns the section holding the form with id
func (p *Page) SectionOf(id string) *Section {
	return p.owner[id]
}

// SetAnchors connects the choreography to the rendered view
func (p *Page) SetAnchors(a Anchors) {
	p.choreo.SetAnchors(a)
}

// Progress is the global completion counter: saved forms over forms with a
// selection
func (p *Page) Progress() (saved, total int) {
	for _, s := range p.sections {
		b := s.Badge()
		saved += b.Saved
		total += b.Selected
	}
	return saved, total
}

// Save saves the form with id
func (p *Page) Save(id string) (SaveResult, tea.Cmd) {
	c := p.byID[id]
	if c == nil {
		return SaveResult{}, nil
	}
	return c.Save()
}

// Expand reopens a collapsed form and its card
func (p *Page) Expand(id string) {
	c := p.byID[id]
	if c == nil {
		return
	}
	c.Expand()
	if s := p.owner[id]; s != nil {
		s.SetCardCollapsed(false)
	}
}

// Update routes timer messages to their controller or the choreography
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChoreoStepMsg:
		return p.choreo.Update(msg)
	case ownedMsg:
		if c := p.byID[msg.owner()]; c != nil {
			return c.Update(msg)
		}
	}
	return nil
}

func (p *Page) choreograph(c *Controller) tea.Cmd {
	if !p.choreoOn {
		p.collapseAfterSave(c)
		return nil
	}
	p.highlighted = c.ID()
	return p.choreo.Start(Plan{
		Anchor:   EntityAnchor(c.ID()),
		Collapse: func() { p.collapseAfterSave(c) },
		Next:     func() string { return p.nextAnchor(c) },
	})
}

// collapseAfterSave folds the form and, once its section is resolved, the
// whole card. A form edited since its save stays open.
func (p *Page) collapseAfterSave(c *Controller) {
	if p.highlighted == c.ID() {
		p.highlighted = ""
	}
	c.Collapse()
	if s := p.owner[c.ID()]; s != nil && s.AllSaved() && p.ledger.IsFullyResolved(s.SelectedKeys()) {
		s.SetCardCollapsed(true)
	}
}

func (p *Page) nextAnchor(c *Controller) string {
	s := p.owner[c.ID()]
	if s == nil {
		return ""
	}
	if next := s.NextUnsaved(c.ID()); next != nil {
		return EntityAnchor(next.ID())
	}
	for i, sec := range p.sections {
		if sec == s && i+1 < len(p.sections) {
			return SectionAnchor(p.sections[i+1].id)
		}
	}
	return ""
}

// onLedgerChange keeps forms and cards consistent with keys removed
// outside of their own controller
func (p *Page) onLedgerChange(change ledger.Change) {
	p.version++
	if change.Op == ledger.OpPut {
		return
	}
	for _, s := range p.sections {
		for _, c := range s.controllers {
			if !c.IsSaved() {
				continue
			}
			if change.Op == ledger.OpClear || c.Key() == change.Key {
				if !p.ledger.Has(c.Key()) {
					c.ledgerRemoved()
				}
			}
		}
		if !s.AllSaved() {
			s.SetCardCollapsed(false)
		}
	}
}

// ApplyScan offers scanned violations to each form. Inquiry groups collect
// the violations of their inquiries.
func (p *Page) ApplyScan(results map[string][]string) {
	for _, c := range p.byID {
		switch c.Kind() {
		case models.KindInquiryGroup:
			var all []string
			seen := map[string]bool{}
			for _, it := range c.Items() {
				for _, v := range results[it.Key] {
					if !seen[v] {
						seen[v] = true
						all = append(all, v)
					}
				}
			}
			c.SetAvailable(all)
		default:
			c.SetAvailable(results[c.Key()])
		}
	}
}

// Restore rebuilds every section from a session whose ledger part has
// already been applied
func (p *Page) Restore(s *ledger.Session) {
	for _, sec := range p.sections {
		sec.Restore(s.Selections, s.Drafts)
	}
}

// Capture stores unsaved selections and drafts into s along with the ledger
func (p *Page) Capture(s *ledger.Session) {
	s.Capture(p.ledger)
	s.Selections = map[string][]string{}
	s.Drafts = map[string]models.DisputeDraft{}
	for _, sec := range p.sections {
		for _, c := range sec.controllers {
			if !c.HasSelection() {
				continue
			}
			if _, err := p.ledger.Get(c.Key()); err == nil && c.IsSaved() {
				continue
			}
			s.Selections[c.Key()] = c.Selection()
			if d := c.Draft(); !d.IsEmpty() {
				s.Drafts[c.Key()] = d
			}
		}
	}
}

// Reset clears the form with id
func (p *Page) Reset(id string) tea.Cmd {
	if c := p.byID[id]; c != nil {
		return c.Reset()
	}
	return nil
}
