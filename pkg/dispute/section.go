package dispute

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

// SectionID identifies a section card on the page
type SectionID string

const (
	SectionAccounts      SectionID = "accounts"
	SectionInquiries     SectionID = "inquiries"
	SectionPublicRecords SectionID = "public-records"
	SectionPersonal      SectionID = "personal-info"
)

// Badge is the aggregate shown in a section header
type Badge struct {
	Label    string
	Entities int
	Selected int
	Saved    int
	AllSaved bool
}

func (b Badge) String() string {
	if b.Selected == 0 {
		return fmt.Sprintf("%d %s", b.Entities, b.Label)
	}
	return fmt.Sprintf("%d %s (%d/%d saved)", b.Entities, b.Label, b.Saved, b.Selected)
}

type bulkSelection struct {
	controller *Controller
	keys       []string
}

// Section groups the forms of one entity category
type Section struct {
	id          SectionID
	title       string
	controllers []*Controller

	cardCollapsed bool
	expanded      bool
	showDetails   bool
	pendingBulk   []bulkSelection
}

// NewSection creates a section over controllers
func NewSection(id SectionID, title string, controllers []*Controller) *Section {
	return &Section{
		id:          id,
		title:       title,
		controllers: controllers,
		expanded:    true,
	}
}

func (s *Section) ID() SectionID { return s.id }
func (s *Section) Title() string { return s.title }
func (s *Section) Controllers() []*Controller { return s.controllers }
func (s *Section) Expanded() bool { return s.expanded }
func (s *Section) ShowDetails() bool { return s.showDetails }
func (s *Section) HasPendingBulk() bool { return len(s.pendingBulk) > 0 }

// Entities counts the entities across all forms. Inquiry groups count
// their inquiries.
func (s *Section) Entities() int {
	n := 0
	for _, c := range s.controllers {
		if c.Kind() == models.KindInquiryGroup || c.Kind() == models.KindPersonalInfo {
			n += len(c.Items())
		} else {
			n++
		}
	}
	return n
}

// Badge computes the header aggregate
func (s *Section) Badge() Badge {
	b := Badge{Label: s.title, Entities: s.Entities()}
	for _, c := range s.controllers {
		if !c.HasSelection() {
			continue
		}
		b.Selected++
		if c.IsSaved() {
			b.Saved++
		}
	}
	b.AllSaved = b.Selected > 0 && b.Saved == b.Selected
	return b
}

// AllSaved is true iff at least one form has a selection and every form
// with a selection is saved
func (s *Section) AllSaved() bool {
	return s.Badge().AllSaved
}

// SelectedKeys returns the ledger keys of forms with a selection
func (s *Section) SelectedKeys() []string {
	var keys []string
	for _, c := range s.controllers {
		if c.HasSelection() {
			keys = append(keys, c.Key())
		}
	}
	return keys
}

// SelectAll selects every item of every form. When any of the items is tied
// to an open account the whole selection is held and one aggregate
// WarningMsg is emitted.
func (s *Section) SelectAll() tea.Cmd {
	var bulk []bulkSelection
	var names, accounts []string
	for _, c := range s.controllers {
		var keys []string
		for _, it := range c.UnselectedItems() {
			keys = append(keys, it.Key)
			if it.TiedTo != "" {
				names = append(names, it.Label)
				accounts = append(accounts, it.TiedTo)
			}
		}
		if len(keys) > 0 {
			bulk = append(bulk, bulkSelection{controller: c, keys: keys})
		}
	}
	if len(bulk) == 0 {
		return nil
	}

	if len(names) > 0 {
		s.pendingBulk = bulk
		msg := WarningMsg{
			Owner:    SectionAnchor(s.id),
			Names:    names,
			Accounts: accounts,
			Count:    len(names),
		}
		return func() tea.Msg { return msg }
	}
	return s.commit(bulk)
}

// ConfirmSelectAll commits a held bulk selection
func (s *Section) ConfirmSelectAll() tea.Cmd {
	bulk := s.pendingBulk
	s.pendingBulk = nil
	return s.commit(bulk)
}

// CancelSelectAll drops a held bulk selection
func (s *Section) CancelSelectAll() {
	s.pendingBulk = nil
}

func (s *Section) commit(bulk []bulkSelection) tea.Cmd {
	var cmds []tea.Cmd
	for _, b := range bulk {
		cmds = append(cmds, b.controller.SelectItems(b.keys))
	}
	return batch(cmds...)
}

// SetAllExpanded propagates the expand flag to every form
func (s *Section) SetAllExpanded(v bool) {
	s.expanded = v
	for _, c := range s.controllers {
		c.SetExpanded(v)
	}
}

// SetAllDetails propagates the details flag to every form
func (s *Section) SetAllDetails(v bool) {
	s.showDetails = v
	for _, c := range s.controllers {
		c.SetShowDetails(v)
	}
}

// CardCollapsed reports whether the whole card is folded. A card only stays
// folded while its section is resolved.
func (s *Section) CardCollapsed() bool {
	return s.cardCollapsed && s.AllSaved()
}

// SetCardCollapsed folds or unfolds the whole card
func (s *Section) SetCardCollapsed(v bool) {
	s.cardCollapsed = v
}

// Restore rebuilds every form from plain data keyed by ledger key. No
// animation runs and no warning is shown.
func (s *Section) Restore(selections map[string][]string, drafts map[string]models.DisputeDraft) {
	for _, c := range s.controllers {
		var draft *models.DisputeDraft
		if d, ok := drafts[c.Key()]; ok {
			draft = &d
		}
		c.Restore(selections[c.Key()], draft)
	}
	s.cardCollapsed = s.AllSaved()
}

// NextUnsaved returns the first form after the one with id that is not
// saved, or nil
func (s *Section) NextUnsaved(afterID string) *Controller {
	found := false
	for _, c := range s.controllers {
		if found && !c.IsSaved() {
			return c
		}
		if c.ID() == afterID {
			found = true
		}
	}
	return nil
}

// Find returns the form with id
func (s *Section) Find(id string) *Controller {
	for _, c := range s.controllers {
		if c.ID() == id {
			return c
		}
	}
	return nil
}
