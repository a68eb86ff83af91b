package dispute

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

const (
	accountID  = "accounts/0"
	recentID   = "inquiries/recent"
	olderID    = "inquiries/older"
	personalID = "personal-info/0"
)

func TestController_DropdownSaveAndCollapse(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)
	require.NotNil(t, c)
	assert.Equal(t, PhaseIdle, c.Phase())

	drain(t, f.page, c.Toggle("TransUnion"))
	assert.Equal(t, PhaseDrafting, c.Phase())

	drain(t, f.page, c.ChooseReasonOption("The balance amount is incorrect"))
	assert.Equal(t, "Please update the balance to reflect the correct amount", c.Draft().Instruction)

	res, cmd := c.Save()
	require.True(t, res.Saved)
	assert.Equal(t, PhaseSaved, c.Phase())
	assert.False(t, c.IsCollapsed(), "collapse waits for the choreography")
	assert.Equal(t, accountID, f.page.Highlighted())

	got, err := f.ledger.Get("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "The balance amount is incorrect", got.Reason)
	assert.Equal(t, "Please update the balance to reflect the correct amount", got.Instruction)
	assert.Equal(t, []string{}, got.Violations)
	assert.Equal(t, []string{"TransUnion"}, got.Selection)
	assert.True(t, got.HasData)
	assert.Equal(t, "dispute-1", got.ID)
	assert.Equal(t, []string{"acct-1"}, f.host.saved)

	drain(t, f.page, cmd)
	assert.True(t, c.IsCollapsed())
	assert.Equal(t, PhaseCollapsed, c.Phase())
	assert.Empty(t, f.page.Highlighted())
	assert.Equal(t, []int{2, 12}, f.anchors.scrolled, "scroll to the saved form, then to the next unsaved sibling")
	assert.Empty(t, f.host.templates, "dropdown text is not offered as a template")
}

func TestController_TiedInquiryWarning(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(recentID)

	w := runWarning(t, c.Toggle("citibank-2024-01-10"))
	assert.Equal(t, recentID, w.Owner)
	assert.Equal(t, []string{"Citibank"}, w.Names)
	assert.Equal(t, []string{"CITIBANK NA"}, w.Accounts)
	assert.Equal(t, []string{"citibank-2024-01-10"}, c.Pending())
	assert.Empty(t, c.Selection())
	assert.Equal(t, PhaseIdle, c.Phase())

	c.CancelPending()
	assert.Empty(t, c.Pending())
	assert.Empty(t, c.Selection())
	assert.False(t, c.IsSaved())
	assert.Equal(t, 0, f.ledger.Len())

	runWarning(t, c.Toggle("citibank-2024-01-10"))
	cmd := c.ConfirmPending()
	assert.True(t, c.Selected("citibank-2024-01-10"))
	assert.True(t, c.Typing(), "confirmation starts auto-population")

	drain(t, f.page, cmd)
	assert.False(t, c.Typing())
	assert.Equal(t, suggest.InquiryReason, c.Draft().Reason)
	assert.Equal(t, suggest.InquiryInstruction, c.Draft().Instruction)
}

func TestController_ViolationTextFollowsSelection(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)
	v1 := "Metro 2 Violation: incorrect balance"
	v2 := "FCRA Violation: improper reporting"
	c.SetAvailable([]string{v1, v2})

	drain(t, f.page, c.Toggle("Experian"))
	drain(t, f.page, c.ChooseReasonOption("The balance amount is incorrect"))
	assert.Equal(t, "The balance amount is incorrect", c.ReasonOption())

	drain(t, f.page, c.AddViolation(v1))
	drain(t, f.page, c.AddViolation(v2))
	assert.True(t, c.CustomMode())
	assert.Empty(t, c.ReasonOption(), "custom mode clears the dropdown choice")
	assert.Empty(t, c.InstructionOption())

	reason := c.Draft().Reason
	i1 := strings.Index(reason, v1)
	i2 := strings.Index(reason, v2)
	require.True(t, i1 >= 0 && i2 >= 0)
	assert.Less(t, i1, i2)
	assert.Equal(t, 1, strings.Count(reason, "I request that it be deleted"))
	assert.Equal(t, []string{v1, v2}, c.Draft().SelectedViolations)

	assert.Nil(t, c.ChooseReasonOption("This account does not belong to me"), "dropdown is disabled")

	drain(t, f.page, c.RemoveViolation(v1))
	reason = c.Draft().Reason
	assert.NotContains(t, reason, v1)
	assert.Contains(t, reason, v2)

	drain(t, f.page, c.RemoveViolation(v2))
	assert.Empty(t, c.Draft().Reason)
	assert.Empty(t, c.Draft().Instruction)

	drain(t, f.page, c.AddAllViolations())
	assert.Equal(t, []string{v1, v2}, c.Violations())
}

func TestController_ApplySuggestion(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller("accounts/1")
	assert.Equal(t, suggest.ClassChargedOff, c.Class())

	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.AddViolation("Metro 2 Violation: balance"))
	drain(t, f.page, c.ApplySuggestion(0))

	s := c.Suggestions()[0]
	assert.Equal(t, s.Reason, c.Draft().Reason)
	assert.Equal(t, s.Instruction, c.Draft().Instruction)
	assert.Equal(t, []string{"Metro 2 Violation: balance"}, c.Violations(), "suggestions leave violations alone")
	assert.Nil(t, c.ApplySuggestion(3))
}

func TestController_PersonalInfoTemplates(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(personalID)

	drain(t, f.page, c.Toggle("previous-address-0"))
	assert.Equal(t, "This address is wrong or outdated", c.Draft().Reason)

	drain(t, f.page, c.Toggle("previous-address-1"))
	assert.Equal(t, "This address is wrong or outdated", c.Draft().Reason, "same category keeps the text")

	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)

	retype := c.Toggle("current-employer")
	assert.False(t, c.IsSaved())
	assert.False(t, f.ledger.Has(models.PersonalInfoKey))
	assert.Equal(t, []string{models.PersonalInfoKey}, f.host.resets)
	assert.True(t, c.Typing())

	drain(t, f.page, retype)
	assert.Equal(t, "This personal information is incorrect", c.Draft().Reason)
}

func TestController_PersonalInfoKeepsEditedText(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(personalID)

	drain(t, f.page, c.Toggle("current-address"))
	drain(t, f.page, c.SetReason("My own words"))
	drain(t, f.page, c.Toggle("name"))
	assert.Equal(t, "My own words", c.Draft().Reason)
}

func TestController_SaveRefusedWithEmptyField(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)

	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.SetInstruction(""))
	require.NotEmpty(t, c.Draft().Reason)

	res, cmd := c.Save()
	assert.False(t, res.Saved)
	assert.Equal(t, []Field{FieldInstruction}, res.Missing)
	assert.True(t, c.FieldWarning(FieldInstruction))
	assert.False(t, c.FieldWarning(FieldReason))
	assert.Equal(t, 0, f.ledger.Len())
	assert.False(t, c.IsSaved())
	assert.Equal(t, PhaseDrafting, c.Phase())

	drain(t, f.page, cmd)
	assert.False(t, c.FieldWarning(FieldInstruction), "warning is transient")
}

func TestController_NoPartialSave(t *testing.T) {
	tests := []struct {
		name        string
		reason      string
		instruction string
		missing     []Field
	}{
		{"both empty", "", "", []Field{FieldReason, FieldInstruction}},
		{"reason empty", "", "do it", []Field{FieldReason}},
		{"instruction blank", "because", "   ", []Field{FieldInstruction}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.page.Controller(accountID)
			drain(t, f.page, c.Toggle("TransUnion"))
			drain(t, f.page, c.SetReason(tt.reason))
			drain(t, f.page, c.SetInstruction(tt.instruction))

			res, _ := c.Save()
			assert.False(t, res.Saved)
			assert.Equal(t, tt.missing, res.Missing)
			assert.False(t, f.ledger.Has("acct-1"))
		})
	}

	t.Run("no selection", func(t *testing.T) {
		f := newFixture(t)
		res, cmd := f.page.Controller(accountID).Save()
		assert.True(t, res.NoSelection)
		assert.Nil(t, cmd)
		assert.Equal(t, 0, f.ledger.Len())
	})
}

func TestController_SaveWhileTypingFinalizesText(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)
	wantReason, wantInstruction := suggest.DefaultText(models.KindAccount, []string{"TransUnion"})

	_, rest := drainN(t, f.page, c.Toggle("TransUnion"), 5)
	require.True(t, c.State().TypingReason)
	require.NotEqual(t, wantReason, c.Draft().Reason)

	res, cmd := c.Save()
	require.True(t, res.Saved)
	assert.Equal(t, wantReason, res.Dispute.Reason)
	assert.Equal(t, wantInstruction, res.Dispute.Instruction)
	assert.False(t, c.Typing())

	// stale ticks of the abandoned run change nothing
	drain(t, f.page, tea.Batch(rest, cmd))
	assert.Equal(t, wantReason, c.Draft().Reason)
	assert.Equal(t, wantInstruction, c.Draft().Instruction)
	assert.True(t, c.IsSaved())
}

func TestController_SaveDuringFieldPause(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)
	wantReason, wantInstruction := suggest.DefaultText(models.KindAccount, nil)

	// run the reason to completion but stop before the pause fires
	cmd := c.Toggle("TransUnion")
	for i := 0; i < len([]rune(wantReason)); i++ {
		cmd = c.Update(cmd())
	}
	require.Equal(t, wantReason, c.Draft().Reason)
	require.True(t, c.Typing())
	require.Empty(t, c.Draft().Instruction)

	res, _ := c.Save()
	require.True(t, res.Saved)
	assert.Equal(t, wantInstruction, res.Dispute.Instruction)

	assert.Nil(t, c.Update(cmd()), "the pause of the finished run is stale")
	assert.Equal(t, wantInstruction, c.Draft().Instruction)
}

func TestController_EditsInvalidateSave(t *testing.T) {
	edits := map[string]func(c *Controller) tea.Cmd{
		"deselect item":    func(c *Controller) tea.Cmd { return c.Toggle("TransUnion") },
		"select item":      func(c *Controller) tea.Cmd { return c.Toggle("Equifax") },
		"edit reason":      func(c *Controller) tea.Cmd { return c.SetReason("changed") },
		"edit instruction": func(c *Controller) tea.Cmd { return c.SetInstruction("changed") },
		"add violation":    func(c *Controller) tea.Cmd { return c.AddViolation("FCRA Violation: x") },
		"apply suggestion": func(c *Controller) tea.Cmd { return c.ApplySuggestion(1) },
		"dropdown reason":  func(c *Controller) tea.Cmd { return c.ChooseReasonOption("This account does not belong to me") },
		"reset":            func(c *Controller) tea.Cmd { return c.Reset() },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			c := f.page.Controller(accountID)
			drain(t, f.page, c.Toggle("TransUnion"))
			drain(t, f.page, c.Toggle("Experian"))
			res, cmd := c.Save()
			require.True(t, res.Saved)
			drain(t, f.page, cmd)
			c.Expand()
			require.True(t, f.ledger.Has("acct-1"))

			drain(t, f.page, edit(c))
			assert.False(t, c.IsSaved())
			assert.False(t, c.IsCollapsed())
			assert.False(t, f.ledger.Has("acct-1"))
			assert.Equal(t, []string{"acct-1"}, f.host.resets)
		})
	}
}

func TestController_RehydrationIsExact(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)
	c.SetAvailable([]string{"Metro 2 Violation: incorrect balance"})

	drain(t, f.page, c.Toggle("Equifax"))
	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.AddAllViolations())
	drain(t, f.page, c.SetInstruction("Delete it"))

	res, cmd := c.Save()
	require.True(t, res.Saved)
	atSave := c.State()

	drain(t, f.page, cmd)
	require.True(t, c.IsCollapsed())

	c.Expand()
	assert.Equal(t, atSave, c.State())
	assert.Equal(t, PhaseSaved, c.Phase())
	assert.Equal(t, []string{"TransUnion", "Equifax"}, c.Selection())
}

func TestController_DeselectAllClearsDraft(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)

	cmd := c.Toggle("TransUnion")
	drain(t, f.page, c.Toggle("TransUnion"))
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.True(t, c.Draft().IsEmpty())

	// ticks of the abandoned auto-fill do nothing
	drain(t, f.page, cmd)
	assert.True(t, c.Draft().IsEmpty())
}

func TestController_RestoreSkipsAnimation(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)

	c.Restore([]string{"Experian", "bogus"}, &models.DisputeDraft{Reason: "r", Instruction: "i"})
	assert.Equal(t, []string{"Experian"}, c.Selection())
	assert.False(t, c.Typing())
	assert.Equal(t, "r", c.Draft().Reason)

	// further selections keep the restored text
	assert.Nil(t, c.Toggle("Equifax"))
	assert.Equal(t, "r", c.Draft().Reason)
}

func TestController_OffersHandWrittenTemplates(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)

	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.SetReason("My custom reason"))
	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)

	require.Len(t, f.host.templates, 1)
	assert.Equal(t, models.Template{Type: models.TemplateReason, Text: "My custom reason", Category: models.KindAccount}, f.host.templates[0])
}

func TestController_ExpandedPersonalInfoStillRetypes(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(personalID)

	drain(t, f.page, c.Toggle("previous-address-0"))
	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)
	require.True(t, c.IsCollapsed())

	c.Expand()
	drain(t, f.page, c.Toggle("current-employer"))
	assert.Equal(t, "This personal information is incorrect", c.Draft().Reason)
}

func TestController_RestoredPersonalInfoStillRetypes(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(personalID)
	drain(t, f.page, c.Toggle("previous-address-0"))
	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)
	assert.Equal(t, models.SourceAuto, res.Dispute.ReasonSource)

	g := newFixture(t)
	g.ledger.Put(res.Dispute)
	restored := g.page.Controller(personalID)
	restored.Restore(nil, nil)
	require.True(t, restored.IsSaved())

	restored.Expand()
	drain(t, g.page, restored.Toggle("current-employer"))
	assert.Equal(t, "This personal information is incorrect", restored.Draft().Reason)
}

func TestController_ExpandKeepsCustomMode(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller("accounts/1")

	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.ApplySuggestion(0))
	require.True(t, c.CustomMode())
	reason := c.Draft().Reason

	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)
	c.Expand()

	assert.True(t, c.CustomMode())
	assert.Nil(t, c.ChooseReasonOption("The balance amount is incorrect"), "dropdown stays disabled")
	assert.Equal(t, reason, c.Draft().Reason)
	assert.True(t, c.IsSaved())
}

func TestController_ExpandKeepsDropdownChoice(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(accountID)

	drain(t, f.page, c.Toggle("TransUnion"))
	drain(t, f.page, c.ChooseReasonOption("The balance amount is incorrect"))
	res, cmd := c.Save()
	require.True(t, res.Saved)
	drain(t, f.page, cmd)

	c.Expand()
	assert.Equal(t, "The balance amount is incorrect", c.ReasonOption())
	assert.Equal(t, "Please update the balance to reflect the correct amount", c.InstructionOption())
	assert.False(t, c.CustomMode())
}

func TestController_BareFlagNeedsRestorableForm(t *testing.T) {
	f := newFixture(t)
	c := f.page.Controller(personalID)

	f.ledger.Mark(models.PersonalInfoKey)
	c.Restore(nil, nil)
	assert.False(t, c.IsSaved(), "nothing to show for a bare flag")
	assert.False(t, c.IsCollapsed())
	assert.True(t, f.ledger.Has(models.PersonalInfoKey))

	c.Restore([]string{"name"}, &models.DisputeDraft{Reason: "Wrong name", Instruction: "Fix it"})
	require.True(t, c.IsSaved())
	assert.True(t, c.IsCollapsed())

	c.Expand()
	assert.True(t, c.IsSaved())
	assert.Equal(t, "Wrong name", c.Draft().Reason)
	assert.Equal(t, []string{"name"}, c.Selection())
}
