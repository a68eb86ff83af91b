// Package dispute holds the per-entity dispute forms and the containers
// that aggregate them.
//
// Each entity (an account, an inquiry group, a public record or the personal
// information block) gets one Controller. Controllers write the shared
// ledger synchronously on save and on invalidation; sections and the page
// derive their badges from the ledger.
package dispute

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

// Phase is the lifecycle state of a form, derived from its FormState
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelecting
	PhaseDrafting
	PhaseSaved
	PhaseCollapsed
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseDrafting:
		return "drafting"
	case PhaseSaved:
		return "saved"
	case PhaseCollapsed:
		return "collapsed"
	default:
		return "idle"
	}
}

// Item is one selectable sub-item of an entity: a bureau line, an inquiry,
// or a personal information field
type Item struct {
	Key    string
	Label  string
	Detail string
	// TiedTo names the open account an inquiry appears to belong to.
	// Selecting such an item needs confirmation.
	TiedTo string
}

// FormState is the observable state of one form
type FormState struct {
	Selection         []string
	Draft             models.DisputeDraft
	IsSaved           bool
	IsCollapsed       bool
	TypingReason      bool
	TypingInstruction bool
	PendingWarning    []string
}

// Config carries timing and identity sources for controllers
type Config struct {
	CharDelay         time.Duration
	FieldPause        time.Duration
	HighlightDuration time.Duration
	Now               func() time.Time
	NewID             func() string
}

// ConfigFromSettings builds a Config from user settings
func ConfigFromSettings(s *models.Settings) Config {
	return Config{
		CharDelay:         s.Typing.CharDelay.Std(),
		FieldPause:        s.Typing.FieldPause.Std(),
		HighlightDuration: s.Highlight.Duration.Std(),
	}
}

func (c Config) withDefaults() Config {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	return c
}

// Hooks connect a controller to its host. Every hook may be nil.
type Hooks struct {
	OnSaved    func(key string, d models.SavedDispute) tea.Cmd
	OnReset    func(key string) tea.Cmd
	OnTemplate func(t models.Template) tea.Cmd
}

// WarningMsg asks the host to confirm a selection that touches items tied
// to open accounts
type WarningMsg struct {
	Owner    string
	Names    []string
	Accounts []string
	Count    int
}

// HighlightClearMsg ends a transient field warning
type HighlightClearMsg struct {
	Owner string
	Field Field
	Gen   int
}

func (m HighlightClearMsg) owner() string { return m.Owner }

type autofillPauseMsg struct {
	Owner string
	Gen   int
}

func (m autofillPauseMsg) owner() string { return m.Owner }

// ownedMsg is implemented by messages addressed to one controller
type ownedMsg interface {
	owner() string
}

// textSource records where the current field text came from
type textSource int

const (
	sourceNone textSource = iota
	sourceAuto
	sourceCatalog
	sourceUser
)

func (s textSource) String() string {
	switch s {
	case sourceAuto:
		return models.SourceAuto
	case sourceCatalog:
		return models.SourceCatalog
	case sourceUser:
		return models.SourceUser
	}
	return ""
}

// parseSource reads a stored source. Snapshots without one count as
// dropdown text.
func parseSource(s string) textSource {
	switch s {
	case models.SourceAuto:
		return sourceAuto
	case models.SourceUser:
		return sourceUser
	}
	return sourceCatalog
}

// SaveResult describes the outcome of a save attempt. A refused save is a
// validation outcome, not an error.
type SaveResult struct {
	Saved       bool
	NoSelection bool
	Missing     []Field
	Dispute     models.SavedDispute
}

// Controller owns the dispute form of one entity
type Controller struct {
	id    string
	key   string
	kind  models.Kind
	title string
	items []Item
	class suggest.Class

	ledger *ledger.Ledger
	cfg    Config
	hooks  Hooks

	selected    map[string]bool
	draft       models.DisputeDraft
	saved       bool
	collapsed   bool
	pending     []string
	violations  *suggest.Violations
	available   []string
	customMode  bool
	reasonOpt   string
	instrOpt    string
	reasonSrc   textSource
	instrSrc    textSource
	autoCat     suggest.PersonalCategory
	expanded    bool
	showDetails bool

	reasonTyper  *Typer
	instrTyper   *Typer
	seqGen       int
	pendingInstr string
	instrQueued  bool

	warnings map[Field]int
	warnGen  int
}

// NewController creates a form for the entity stored under key. id must be
// unique on the page; key is the ledger key and may collide.
func NewController(id, key string, kind models.Kind, title string, items []Item, l *ledger.Ledger, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		id:          id,
		key:         key,
		kind:        kind,
		title:       title,
		items:       items,
		class:       suggest.ClassGeneral,
		ledger:      l,
		cfg:         cfg,
		selected:    make(map[string]bool),
		violations:  suggest.NewViolations(),
		expanded:    true,
		reasonTyper: NewTyper(id, FieldReason, cfg.CharDelay),
		instrTyper:  NewTyper(id, FieldInstruction, cfg.CharDelay),
		warnings:    make(map[Field]int),
	}
}

func (c *Controller) SetHooks(h Hooks) { c.hooks = h }
func (c *Controller) SetClass(class suggest.Class) { c.class = class }

func (c *Controller) ID() string { return c.id }
func (c *Controller) Key() string { return c.key }
func (c *Controller) Kind() models.Kind { return c.kind }
func (c *Controller) Title() string { return c.title }
func (c *Controller) Items() []Item { return c.items }
func (c *Controller) Class() suggest.Class { return c.class }
func (c *Controller) IsSaved() bool { return c.saved }
func (c *Controller) IsCollapsed() bool { return c.collapsed }
func (c *Controller) CustomMode() bool { return c.customMode }
func (c *Controller) Expanded() bool { return c.expanded }
func (c *Controller) ShowDetails() bool { return c.showDetails }

// Draft returns the current draft with the selected violations
func (c *Controller) Draft() models.DisputeDraft {
	d := c.draft
	d.SelectedViolations = c.violations.List()
	return d
}

// ReasonOption and InstructionOption return the dropdown choices in effect
func (c *Controller) ReasonOption() string { return c.reasonOpt }
func (c *Controller) InstructionOption() string { return c.instrOpt }

// Available lists the scanned violations offered for this entity
func (c *Controller) Available() []string {
	return append([]string(nil), c.available...)
}

// SetAvailable replaces the scanned violations. Selected violations that
// are no longer offered stay selected until the user removes them.
func (c *Controller) SetAvailable(violations []string) {
	c.available = append([]string(nil), violations...)
}

// Violations lists the selected violations in selection order
func (c *Controller) Violations() []string {
	return c.violations.List()
}

// Suggestions returns the canned suggestions for the entity's class
func (c *Controller) Suggestions() []suggest.Suggestion {
	return suggest.Suggestions(c.class)
}

// Selection returns the selected item keys in item order
func (c *Controller) Selection() []string {
	var out []string
	seen := map[string]bool{}
	for _, it := range c.items {
		if c.selected[it.Key] && !seen[it.Key] {
			seen[it.Key] = true
			out = append(out, it.Key)
		}
	}
	return out
}

func (c *Controller) Selected(itemKey string) bool {
	return c.selected[itemKey]
}

func (c *Controller) HasSelection() bool {
	return len(c.selected) > 0
}

// Pending returns the item keys held behind a warning
func (c *Controller) Pending() []string {
	return append([]string(nil), c.pending...)
}

// Typing reports whether any auto-fill is still running, including the
// pause between the two fields
func (c *Controller) Typing() bool {
	return c.reasonTyper.Typing() || c.instrTyper.Typing() || c.instrQueued
}

// FieldWarning reports whether field is currently flagged
func (c *Controller) FieldWarning(f Field) bool {
	_, ok := c.warnings[f]
	return ok
}

// State returns a copy of the form state
func (c *Controller) State() FormState {
	return FormState{
		Selection:         c.Selection(),
		Draft:             c.Draft(),
		IsSaved:           c.saved,
		IsCollapsed:       c.collapsed,
		TypingReason:      c.reasonTyper.Typing(),
		TypingInstruction: c.instrTyper.Typing(),
		PendingWarning:    c.Pending(),
	}
}

// Phase derives the lifecycle state
func (c *Controller) Phase() Phase {
	switch {
	case c.collapsed:
		return PhaseCollapsed
	case c.saved:
		return PhaseSaved
	case len(c.selected) == 0:
		return PhaseIdle
	case c.draft.Reason == "" && c.draft.Instruction == "" && !c.Typing():
		return PhaseSelecting
	default:
		return PhaseDrafting
	}
}

// SetExpanded and SetShowDetails are view flags; they never touch the
// saved or selected state
func (c *Controller) SetExpanded(v bool) { c.expanded = v }
func (c *Controller) SetShowDetails(v bool) { c.showDetails = v }

func (c *Controller) item(key string) (Item, bool) {
	for _, it := range c.items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// Toggle selects or deselects one item. Selecting an item tied to an open
// account is held as pending and a WarningMsg is emitted instead.
func (c *Controller) Toggle(itemKey string) tea.Cmd {
	it, ok := c.item(itemKey)
	if !ok {
		return nil
	}
	if c.selected[itemKey] {
		delete(c.selected, itemKey)
		return c.selectionChanged()
	}
	if it.TiedTo != "" {
		c.pending = []string{itemKey}
		msg := WarningMsg{
			Owner:    c.id,
			Names:    []string{it.Label},
			Accounts: []string{it.TiedTo},
			Count:    1,
		}
		return func() tea.Msg { return msg }
	}
	c.selected[itemKey] = true
	return c.selectionChanged()
}

// ConfirmPending commits the selection held behind a warning
func (c *Controller) ConfirmPending() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	keys := c.pending
	c.pending = nil
	return c.SelectItems(keys)
}

// CancelPending drops the held selection and leaves the form unchanged
func (c *Controller) CancelPending() {
	c.pending = nil
}

// SelectItems adds items without any warning check
func (c *Controller) SelectItems(keys []string) tea.Cmd {
	changed := false
	for _, k := range keys {
		if _, ok := c.item(k); ok && !c.selected[k] {
			c.selected[k] = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return c.selectionChanged()
}

// UnselectedItems returns items that are not selected yet
func (c *Controller) UnselectedItems() []Item {
	var out []Item
	for _, it := range c.items {
		if !c.selected[it.Key] {
			out = append(out, it)
		}
	}
	return out
}

func (c *Controller) selectionChanged() tea.Cmd {
	cmds := []tea.Cmd{c.invalidate()}

	if len(c.selected) == 0 {
		c.clearDraft()
		return batch(cmds...)
	}

	sel := c.Selection()
	switch {
	case c.draft.Reason == "" && c.draft.Instruction == "" && !c.Typing() && c.violations.Len() == 0:
		reason, instruction := suggest.DefaultText(c.kind, sel)
		c.autoCat = suggest.ClassifyPersonal(sel)
		cmds = append(cmds, c.autofill(reason, instruction, sourceAuto))

	case c.kind == models.KindPersonalInfo && c.reasonSrc == sourceAuto && c.instrSrc == sourceAuto:
		if cat := suggest.ClassifyPersonal(sel); cat != c.autoCat {
			c.autoCat = cat
			reason, instruction := suggest.DefaultText(c.kind, sel)
			cmds = append(cmds, c.autofill(reason, instruction, sourceAuto))
		}
	}
	return batch(cmds...)
}

func (c *Controller) clearDraft() {
	c.stopTyping()
	c.draft = models.DisputeDraft{}
	c.violations.Clear()
	c.customMode = false
	c.reasonOpt = ""
	c.instrOpt = ""
	c.reasonSrc = sourceNone
	c.instrSrc = sourceNone
	c.autoCat = suggest.PersonalNone
}

// invalidate drops a save after an edit. The ledger entry is removed and
// the reset hook fires.
func (c *Controller) invalidate() tea.Cmd {
	if !c.saved {
		return nil
	}
	c.saved = false
	c.collapsed = false
	c.ledger.Remove(c.key)
	if c.hooks.OnReset != nil {
		return c.hooks.OnReset(c.key)
	}
	return nil
}

// autofill types reason, pauses, then types instruction
func (c *Controller) autofill(reason, instruction string, src textSource) tea.Cmd {
	c.stopTyping()
	c.seqGen++
	seq := c.seqGen
	c.reasonSrc = src
	c.instrSrc = src
	c.pendingInstr = instruction
	c.instrQueued = true
	c.draft.Instruction = ""

	return c.reasonTyper.Start(reason,
		func(s string) { c.draft.Reason = s },
		func() tea.Cmd {
			owner := c.id
			return tea.Tick(c.cfg.FieldPause, func(time.Time) tea.Msg {
				return autofillPauseMsg{Owner: owner, Gen: seq}
			})
		})
}

func (c *Controller) startInstruction() tea.Cmd {
	return c.instrTyper.Start(c.pendingInstr,
		func(s string) { c.draft.Instruction = s },
		func() tea.Cmd {
			c.instrQueued = false
			return nil
		})
}

// finishTyping completes both fields to their full target text
func (c *Controller) finishTyping() {
	c.reasonTyper.Finish()
	c.instrTyper.Stop()
	if c.instrQueued {
		c.draft.Instruction = c.pendingInstr
		c.instrQueued = false
	}
	c.seqGen++
}

func (c *Controller) stopTyping() {
	c.reasonTyper.Stop()
	c.instrTyper.Stop()
	c.instrQueued = false
	c.seqGen++
}

// Update handles messages addressed to this controller
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TypeTickMsg:
		if msg.Field == FieldReason {
			return c.reasonTyper.Update(msg)
		}
		return c.instrTyper.Update(msg)

	case autofillPauseMsg:
		if msg.Gen != c.seqGen || !c.instrQueued {
			return nil
		}
		return c.startInstruction()

	case HighlightClearMsg:
		if gen, ok := c.warnings[msg.Field]; ok && gen == msg.Gen {
			delete(c.warnings, msg.Field)
		}
	}
	return nil
}

// SetReason applies a user edit of the reason field
func (c *Controller) SetReason(text string) tea.Cmd {
	c.finishTyping()
	if text == c.draft.Reason {
		return nil
	}
	c.draft.Reason = text
	c.reasonSrc = sourceUser
	c.reasonOpt = ""
	return c.invalidate()
}

// SetInstruction applies a user edit of the instruction field
func (c *Controller) SetInstruction(text string) tea.Cmd {
	c.finishTyping()
	if text == c.draft.Instruction {
		return nil
	}
	c.draft.Instruction = text
	c.instrSrc = sourceUser
	c.instrOpt = ""
	return c.invalidate()
}

// ReasonOptions lists the dropdown reasons, extended with saved templates
func (c *Controller) ReasonOptions(saved []models.Template) []suggest.Option {
	return suggest.CatalogWithTemplates(c.kind, saved)
}

// ChooseReasonOption picks a dropdown reason and fills in its matching
// instruction. The dropdown is disabled in custom mode.
func (c *Controller) ChooseReasonOption(reason string) tea.Cmd {
	if c.customMode {
		return nil
	}
	c.stopTyping()
	c.reasonOpt = reason
	c.draft.Reason = reason
	c.reasonSrc = sourceCatalog
	if instruction, ok := suggest.MatchingInstruction(c.kind, reason); ok {
		c.instrOpt = instruction
		c.draft.Instruction = instruction
		c.instrSrc = sourceCatalog
	}
	return c.invalidate()
}

// ChooseInstructionOption picks a dropdown instruction
func (c *Controller) ChooseInstructionOption(instruction string) tea.Cmd {
	if c.customMode {
		return nil
	}
	c.finishTyping()
	c.instrOpt = instruction
	c.draft.Instruction = instruction
	c.instrSrc = sourceCatalog
	return c.invalidate()
}

// UseDropdown leaves custom mode and clears the text so a dropdown choice
// can be made again
func (c *Controller) UseDropdown() tea.Cmd {
	if !c.customMode {
		return nil
	}
	c.stopTyping()
	c.customMode = false
	c.violations.Clear()
	c.draft.Reason = ""
	c.draft.Instruction = ""
	c.reasonSrc = sourceNone
	c.instrSrc = sourceNone
	return c.invalidate()
}

func (c *Controller) enterCustomMode() {
	c.customMode = true
	c.reasonOpt = ""
	c.instrOpt = ""
}

// AddViolation selects a violation and regenerates the text
func (c *Controller) AddViolation(v string) tea.Cmd {
	if !c.violations.Add(v) {
		return nil
	}
	return c.violationsChanged()
}

// RemoveViolation deselects a violation and regenerates the text
func (c *Controller) RemoveViolation(v string) tea.Cmd {
	if !c.violations.Remove(v) {
		return nil
	}
	return c.violationsChanged()
}

// AddAllViolations selects exactly the available violations
func (c *Controller) AddAllViolations() tea.Cmd {
	c.violations.AddAll(c.available)
	return c.violationsChanged()
}

func (c *Controller) violationsChanged() tea.Cmd {
	c.enterCustomMode()
	inval := c.invalidate()
	reason, instruction := c.violations.Synthesize()
	if reason == "" {
		c.stopTyping()
		c.draft.Reason = ""
		c.draft.Instruction = ""
		c.reasonSrc = sourceNone
		c.instrSrc = sourceNone
		return inval
	}
	return batch(inval, c.autofill(reason, instruction, sourceAuto))
}

// ApplySuggestion seeds the draft from a canned suggestion without touching
// the violation selection
func (c *Controller) ApplySuggestion(index int) tea.Cmd {
	suggestions := c.Suggestions()
	if index < 0 || index >= len(suggestions) {
		return nil
	}
	s := suggestions[index]
	c.enterCustomMode()
	inval := c.invalidate()
	return batch(inval, c.autofill(s.Reason, s.Instruction, sourceAuto))
}

// Save snapshots the draft into the ledger. Running auto-fill is completed
// first so the saved text is never partial. A save with an empty field is
// refused and the empty fields are flagged for a while.
func (c *Controller) Save() (SaveResult, tea.Cmd) {
	c.finishTyping()

	if len(c.selected) == 0 {
		return SaveResult{NoSelection: true}, nil
	}

	var missing []Field
	if strings.TrimSpace(c.draft.Reason) == "" {
		missing = append(missing, FieldReason)
	}
	if strings.TrimSpace(c.draft.Instruction) == "" {
		missing = append(missing, FieldInstruction)
	}
	if len(missing) > 0 {
		return SaveResult{Missing: missing}, c.flag(missing)
	}

	d := models.SavedDispute{
		ID:          c.cfg.NewID(),
		EntityKey:   c.key,
		Kind:        c.kind,
		Reason:      c.draft.Reason,
		Instruction: c.draft.Instruction,
		Violations:  c.violations.List(),
		Selection:   c.Selection(),
		SavedAt:     c.cfg.Now(),

		Custom:            c.customMode,
		ReasonSource:      c.reasonSrc.String(),
		InstructionSource: c.instrSrc.String(),
		ReasonOption:      c.reasonOpt,
		InstructionOption: c.instrOpt,
	}
	d.HasData = d.Draft().Complete()
	if d.Violations == nil {
		d.Violations = []string{}
	}

	c.ledger.Put(d)
	c.saved = true
	c.warnings = make(map[Field]int)

	var cmds []tea.Cmd
	if c.hooks.OnSaved != nil {
		cmds = append(cmds, c.hooks.OnSaved(c.key, d))
	}
	cmds = append(cmds, c.offerTemplates()...)
	return SaveResult{Saved: true, Dispute: d}, batch(cmds...)
}

// offerTemplates hands hand-written text to the template store
func (c *Controller) offerTemplates() []tea.Cmd {
	if c.hooks.OnTemplate == nil {
		return nil
	}
	var cmds []tea.Cmd
	if c.reasonSrc == sourceUser {
		cmds = append(cmds, c.hooks.OnTemplate(models.Template{Type: models.TemplateReason, Text: c.draft.Reason, Category: c.kind}))
	}
	if c.instrSrc == sourceUser {
		cmds = append(cmds, c.hooks.OnTemplate(models.Template{Type: models.TemplateInstruction, Text: c.draft.Instruction, Category: c.kind}))
	}
	return cmds
}

func (c *Controller) flag(fields []Field) tea.Cmd {
	c.warnGen++
	gen := c.warnGen
	var cmds []tea.Cmd
	for _, f := range fields {
		c.warnings[f] = gen
		msg := HighlightClearMsg{Owner: c.id, Field: f, Gen: gen}
		cmds = append(cmds, tea.Tick(c.cfg.HighlightDuration, func(time.Time) tea.Msg {
			return msg
		}))
	}
	return batch(cmds...)
}

// Collapse folds a saved form. Unsaved forms never collapse.
func (c *Controller) Collapse() {
	if c.saved {
		c.collapsed = true
	}
}

// Expand reopens a collapsed form and re-hydrates it from the ledger so it
// shows exactly what was saved
func (c *Controller) Expand() {
	if !c.collapsed {
		return
	}
	c.collapsed = false
	d, err := c.ledger.Get(c.key)
	if err != nil {
		if !c.ledger.Has(c.key) {
			c.saved = false
		}
		return
	}
	c.hydrate(d)
}

func (c *Controller) hydrate(d models.SavedDispute) {
	c.stopTyping()
	c.selected = make(map[string]bool, len(d.Selection))
	for _, k := range d.Selection {
		c.selected[k] = true
	}
	c.draft = models.DisputeDraft{Reason: d.Reason, Instruction: d.Instruction}
	c.violations.AddAll(d.Violations)
	c.customMode = d.Custom || len(d.Violations) > 0
	c.reasonSrc = parseSource(d.ReasonSource)
	c.instrSrc = parseSource(d.InstructionSource)
	c.reasonOpt = d.ReasonOption
	c.instrOpt = d.InstructionOption
	c.autoCat = suggest.PersonalNone
	if c.kind == models.KindPersonalInfo && c.reasonSrc == sourceAuto && c.instrSrc == sourceAuto {
		c.autoCat = suggest.ClassifyPersonal(d.Selection)
	}
}

// Reset clears the form. A saved dispute is removed from the ledger.
func (c *Controller) Reset() tea.Cmd {
	inval := c.invalidate()
	c.selected = make(map[string]bool)
	c.pending = nil
	c.clearDraft()
	c.warnings = make(map[Field]int)
	return inval
}

// Restore rebuilds the form from plain data without animations or warnings.
// A key with a dispute in the ledger restores as saved and collapsed. A
// bare ledger flag only counts as saved when the restored selection and
// draft could have been saved; otherwise the form opens unsaved.
func (c *Controller) Restore(selection []string, draft *models.DisputeDraft) {
	c.stopTyping()
	c.pending = nil
	c.saved = false
	c.collapsed = false
	if d, err := c.ledger.Get(c.key); err == nil {
		c.hydrate(d)
		c.saved = true
		c.collapsed = true
		return
	}

	c.selected = make(map[string]bool, len(selection))
	for _, k := range selection {
		if _, ok := c.item(k); ok {
			c.selected[k] = true
		}
	}
	if draft != nil {
		c.draft = models.DisputeDraft{Reason: draft.Reason, Instruction: draft.Instruction}
		c.violations.AddAll(draft.SelectedViolations)
		c.customMode = len(draft.SelectedViolations) > 0
		c.reasonSrc = sourceCatalog
		c.instrSrc = sourceCatalog
	}

	if c.ledger.Has(c.key) && len(c.selected) > 0 && c.draft.Complete() {
		c.saved = true
		c.collapsed = true
	}
}

// ledgerRemoved drops derived saved state after the key left the ledger
// without this controller removing it
func (c *Controller) ledgerRemoved() {
	c.saved = false
	c.collapsed = false
}

// batch drops nil commands and avoids wrapping a single command
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
