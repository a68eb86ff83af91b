package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

func TestSection_SelectAllShowsOneWarning(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionInquiries)
	require.NotNil(t, s)

	w := runWarning(t, s.SelectAll())
	assert.Equal(t, 1, w.Count)
	assert.Equal(t, []string{"Citibank"}, w.Names)
	assert.Equal(t, SectionAnchor(SectionInquiries), w.Owner)
	assert.True(t, s.HasPendingBulk())
	for _, c := range s.Controllers() {
		assert.Empty(t, c.Selection(), "nothing commits before confirmation")
	}

	s.CancelSelectAll()
	assert.False(t, s.HasPendingBulk())

	runWarning(t, s.SelectAll())
	drain(t, f.page, s.ConfirmSelectAll())
	assert.Equal(t, []string{"citibank-2024-01-10", "auto-lender-2024-03-01"}, f.page.Controller(recentID).Selection())
	assert.Equal(t, []string{"old-bank-2020-01-01"}, f.page.Controller(olderID).Selection())
	assert.Equal(t, models.DisputeDraft{Reason: "I did not authorize this inquiry", Instruction: "Please remove this unauthorized inquiry from my credit report"},
		f.page.Controller(olderID).Draft())
}

func TestSection_SelectAllWithoutWarnings(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionAccounts)

	msgs := drain(t, f.page, s.SelectAll())
	assert.Empty(t, warningsIn(msgs))
	assert.Equal(t, []string{"TransUnion", "Experian", "Equifax"}, f.page.Controller(accountID).Selection())
	assert.Equal(t, []string{"TransUnion"}, f.page.Controller("accounts/1").Selection())

	assert.Nil(t, s.SelectAll(), "everything is selected already")
}

func TestSection_BadgeAndAllSaved(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionAccounts)
	first := f.page.Controller(accountID)
	second := f.page.Controller("accounts/1")

	assert.False(t, s.AllSaved(), "no selection is not resolved")
	assert.Equal(t, "2 Accounts", s.Badge().String())

	drain(t, f.page, first.Toggle("TransUnion"))
	assert.False(t, s.AllSaved())

	res, cmd := first.Save()
	require.True(t, res.Saved)
	assert.True(t, s.AllSaved(), "unselected forms do not block the badge")
	drain(t, f.page, cmd)

	drain(t, f.page, second.Toggle("TransUnion"))
	assert.False(t, s.AllSaved())
	b := s.Badge()
	assert.Equal(t, 2, b.Selected)
	assert.Equal(t, 1, b.Saved)
	assert.Equal(t, "2 Accounts (1/2 saved)", b.String())

	res, cmd = second.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)
	assert.True(t, s.AllSaved())
	assert.True(t, s.CardCollapsed())

	drain(t, f.page, second.Toggle("TransUnion"))
	assert.True(t, s.AllSaved(), "deselecting everything removes the form from the aggregate")
}

func TestSection_TogglesKeepFormState(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionAccounts)
	c := f.page.Controller(accountID)

	drain(t, f.page, c.Toggle("Experian"))
	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)
	before := c.State()

	s.SetAllExpanded(false)
	s.SetAllDetails(true)
	for _, ctl := range s.Controllers() {
		assert.False(t, ctl.Expanded())
		assert.True(t, ctl.ShowDetails())
	}
	assert.Equal(t, before, c.State())
	assert.True(t, f.ledger.Has("acct-1"))

	s.SetAllExpanded(true)
	assert.Equal(t, before, c.State())
}

func TestSection_Restore(t *testing.T) {
	f := newFixture(t)
	f.ledger.Put(models.SavedDispute{
		EntityKey:   "acct-2",
		Kind:        models.KindAccount,
		Reason:      "saved reason",
		Instruction: "saved instruction",
		Selection:   []string{"TransUnion"},
		HasData:     true,
	})

	s := f.page.Section(SectionAccounts)
	s.Restore(
		map[string][]string{"acct-1": {"Equifax"}},
		map[string]models.DisputeDraft{"acct-1": {Reason: "draft reason"}},
	)

	first := f.page.Controller(accountID)
	assert.Equal(t, []string{"Equifax"}, first.Selection())
	assert.Equal(t, "draft reason", first.Draft().Reason)
	assert.False(t, first.Typing())
	assert.False(t, first.IsSaved())

	second := f.page.Controller("accounts/1")
	assert.True(t, second.IsSaved())
	assert.True(t, second.IsCollapsed())
	second.Expand()
	assert.Equal(t, "saved reason", second.Draft().Reason)
	assert.Equal(t, []string{"TransUnion"}, second.Selection())

	assert.False(t, s.CardCollapsed(), "the unsaved draft keeps the card open")
}

func TestSection_NextUnsaved(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionInquiries)

	next := s.NextUnsaved(recentID)
	require.NotNil(t, next)
	assert.Equal(t, olderID, next.ID())
	assert.Nil(t, s.NextUnsaved(olderID))
	assert.Nil(t, s.NextUnsaved("missing"))
}

func TestSection_SelectedKeys(t *testing.T) {
	f := newFixture(t)
	s := f.page.Section(SectionAccounts)
	assert.Empty(t, s.SelectedKeys())

	drain(t, f.page, f.page.Controller("accounts/1").Toggle("TransUnion"))
	assert.Equal(t, []string{"acct-2"}, s.SelectedKeys())
	assert.False(t, f.ledger.IsFullyResolved(s.SelectedKeys()))
}
