package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/disputedesk/disputedesk-terminal/pkg/dispute"
	"github.com/disputedesk/disputedesk-terminal/pkg/history"
	"github.com/disputedesk/disputedesk-terminal/pkg/ledger"
	"github.com/disputedesk/disputedesk-terminal/pkg/letter"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
	"github.com/disputedesk/disputedesk-terminal/pkg/report"
	"github.com/disputedesk/disputedesk-terminal/pkg/scan"
	"github.com/disputedesk/disputedesk-terminal/pkg/suggest"
)

const (
	reloadDebounce = 300 * time.Millisecond
	storeTimeout   = 10 * time.Second
)

// Options controls optional app behaviour
type Options struct {
	Watch bool // reload the report when its file changes
	Scan  bool // run the compliance scan on start
}

// App is the dispute page of one report
type App struct {
	ws       *Workspace
	opts     Options
	ledger   *ledger.Ledger
	page     *dispute.Page
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	spinner  spinner.Model
	confirm  *ConfirmationModel
	status   *StatusManager
	editor   *fieldEditor
	preview  *letterPreview
	anchors  *viewAnchors
	layout   *layout
	watcher  *report.Watcher

	cursor   int
	width    int
	height   int
	scanning bool
	showHelp bool
	quitErr  error
}

// NewApp builds the page for ws and restores its session
func NewApp(ws *Workspace, opts Options) (*App, error) {
	if ws == nil || ws.Report == nil {
		return nil, errors.New("workspace has no report")
	}
	if ws.Settings == nil {
		ws.Settings = models.DefaultSettings()
	}
	if ws.Session == nil {
		ws.Session = &ledger.Session{}
	}

	a := &App{
		ws:       ws,
		opts:     opts,
		ledger:   ledger.New(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		confirm:  NewConfirmation(),
		status:   NewStatusManager(),
		editor:   newFieldEditor(),
		preview:  newLetterPreview(),
	}
	a.anchors = &viewAnchors{lines: map[string]int{}, scroll: a.scrollTo}

	ws.Session.Apply(a.ledger)
	a.buildPage(ws.Report, ws.Session)

	if opts.Watch {
		w, err := report.NewWatcher(ws.ReportPath, reloadDebounce)
		if err != nil {
			return nil, err
		}
		a.watcher = w
	}

	if !ws.Persist {
		a.status.SetPersistentMessage("Not a disputedesk project: run 'disputedesk init' to keep your work", StatusTypeWarning)
	}
	a.refresh()
	return a, nil
}

func (a *App) buildPage(r *models.Report, s *ledger.Session) {
	if a.page != nil {
		a.page.Close()
	}
	a.page = dispute.NewPage(r, a.ledger, a.ws.Settings, dispute.Host{
		OnDisputeSaved: a.onDisputeSaved,
		OnDisputeReset: a.onDisputeReset,
		SaveTemplate:   a.saveTemplate,
	})
	a.page.Restore(s)
	a.page.SetAnchors(a.anchors)
}

func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if len(a.ws.Warnings) > 0 {
		cmds = append(cmds, a.status.ShowWarning(strings.Join(a.ws.Warnings, "; ")))
	}
	if a.opts.Scan {
		cmds = append(cmds, a.startScan())
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForChange(a.watcher))
	}
	return tea.Batch(cmds...)
}

// Page exposes the dispute page
func (a *App) Page() *dispute.Page { return a.page }

// QuitErr is the error of the final session write, if any
func (a *App) QuitErr() error { return a.quitErr }

// Ledger exposes the dispute ledger
func (a *App) Ledger() *ledger.Ledger { return a.ledger }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case tea.KeyMsg:
		cmd = a.handleKey(msg)

	case ClearStatusMsg:
		a.status.HandleClear(msg)

	case spinner.TickMsg:
		if a.scanning {
			a.spinner, cmd = a.spinner.Update(msg)
		}

	case dispute.WarningMsg:
		a.showWarning(msg)

	case scanDoneMsg:
		cmd = a.scanDone(msg.outcome)

	case templateSavedMsg:
		cmd = a.templateSaved(msg)

	case sessionSavedMsg:
		if msg.err != nil {
			cmd = a.status.ShowError(fmt.Sprintf("Session not saved: %v", msg.err))
		}

	case historyMsg:
		if msg.err != nil {
			cmd = a.status.ShowWarning(fmt.Sprintf("History not recorded: %v", msg.err))
		}

	case reportChangedMsg:
		cmd = tea.Batch(reloadReport(a.ws.ReportPath), waitForChange(a.watcher))

	case reportReloadedMsg:
		cmd = a.reportReloaded(msg)

	default:
		var cmds []tea.Cmd
		cmds = append(cmds, a.page.Update(msg))
		if a.editor.Active() {
			cmds = append(cmds, a.editor.Update(msg))
		}
		cmd = tea.Batch(cmds...)
	}

	a.refresh()
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.confirm.Active() {
		return a.confirm.Update(msg)
	}
	if a.editor.Active() {
		return a.handleEditorKey(msg)
	}
	if a.preview.Active() {
		return a.handlePreviewKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		a.resize()
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.PageUp):
		a.viewport.HalfViewUp()
	case key.Matches(msg, a.keys.PageDown):
		a.viewport.HalfViewDown()
	case key.Matches(msg, a.keys.Activate):
		return a.activate()
	case key.Matches(msg, a.keys.SelectAll):
		if s := a.currentSection(); s != nil {
			return s.SelectAll()
		}
	case key.Matches(msg, a.keys.NextOption):
		return a.cycleOption(1)
	case key.Matches(msg, a.keys.PrevOption):
		return a.cycleOption(-1)
	case key.Matches(msg, a.keys.Edit):
		return a.openEditor()
	case key.Matches(msg, a.keys.Dropdown):
		if c := a.currentForm(); c != nil {
			return c.UseDropdown()
		}
	case key.Matches(msg, a.keys.AddAll):
		if c := a.currentForm(); c != nil && len(c.Available()) > 0 {
			return c.AddAllViolations()
		}
	case key.Matches(msg, a.keys.Save):
		if c := a.currentForm(); c != nil {
			return a.save(c)
		}
	case key.Matches(msg, a.keys.Reset):
		if c := a.currentForm(); c != nil {
			return a.page.Reset(c.ID())
		}
	case key.Matches(msg, a.keys.Details):
		a.toggleDetails()
	case key.Matches(msg, a.keys.ExpandAll):
		if s := a.currentSection(); s != nil {
			s.SetAllExpanded(!s.Expanded())
		}
	case key.Matches(msg, a.keys.Scan):
		return a.startScan()
	case key.Matches(msg, a.keys.Preview):
		return a.openPreview()
	case key.Matches(msg, a.keys.Copy):
		return a.copyLetter()
	}
	return nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.editor.Close()
		return nil
	case "ctrl+s":
		id, field, text := a.editor.formID, a.editor.field, a.editor.Value()
		a.editor.Close()
		c := a.page.Controller(id)
		if c == nil {
			return nil
		}
		if field == dispute.FieldReason {
			return c.SetReason(text)
		}
		return c.SetInstruction(text)
	}
	return a.editor.Update(msg)
}

func (a *App) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "esc", key.Matches(msg, a.keys.Quit), key.Matches(msg, a.keys.Preview):
		a.preview.Close()
		return nil
	case key.Matches(msg, a.keys.Copy):
		return a.copyLetter()
	}
	var cmd tea.Cmd
	a.preview.view, cmd = a.preview.view.Update(msg)
	return cmd
}

// activate performs the primary action of the focused row
func (a *App) activate() tea.Cmd {
	rw, ok := a.currentRow()
	if !ok {
		return nil
	}
	c := rw.form
	switch rw.kind {
	case rowSection:
		if rw.section.CardCollapsed() {
			rw.section.SetCardCollapsed(false)
		} else {
			rw.section.SetAllExpanded(!rw.section.Expanded())
		}
	case rowForm:
		if c.IsCollapsed() {
			a.page.Expand(c.ID())
		} else {
			c.SetExpanded(!c.Expanded())
		}
	case rowItem:
		return c.Toggle(rw.key)
	case rowViolation:
		for _, v := range c.Violations() {
			if v == rw.key {
				return c.RemoveViolation(v)
			}
		}
		return c.AddViolation(rw.key)
	case rowAddAll:
		return c.AddAllViolations()
	case rowSuggestion:
		return c.ApplySuggestion(rw.index)
	case rowReason, rowInstruction:
		return a.openEditor()
	case rowSave:
		return a.save(c)
	}
	return nil
}

func (a *App) save(c *dispute.Controller) tea.Cmd {
	res, cmd := a.page.Save(c.ID())
	switch {
	case res.Saved:
		return tea.Batch(cmd, a.status.ShowSuccess("Dispute saved: "+c.Title()))
	case res.NoSelection:
		return tea.Batch(cmd, a.status.ShowWarning("Select at least one item to dispute"))
	case len(res.Missing) > 0:
		names := make([]string, len(res.Missing))
		for i, f := range res.Missing {
			names[i] = f.String()
		}
		return tea.Batch(cmd, a.status.ShowWarning("Missing "+strings.Join(names, " and ")))
	}
	return cmd
}

// cycleOption steps through the dropdown of the focused text field
func (a *App) cycleOption(step int) tea.Cmd {
	rw, ok := a.currentRow()
	if !ok || rw.form == nil || (rw.kind != rowReason && rw.kind != rowInstruction) {
		return nil
	}
	c := rw.form
	if c.CustomMode() {
		return a.status.ShowInfo("Custom text in use: press c to pick from the list")
	}

	saved := a.ws.Templates
	if rw.kind == rowReason {
		opts := c.ReasonOptions(saved)
		reasons := make([]string, len(opts))
		for i, o := range opts {
			reasons[i] = o.Reason
		}
		return c.ChooseReasonOption(nextOption(reasons, c.ReasonOption(), step))
	}
	return c.ChooseInstructionOption(nextOption(suggest.Instructions(c.Kind(), saved), c.InstructionOption(), step))
}

func nextOption(options []string, current string, step int) string {
	if len(options) == 0 {
		return ""
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if step < 0 {
			return options[len(options)-1]
		}
		return options[0]
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

func (a *App) openEditor() tea.Cmd {
	rw, ok := a.currentRow()
	if !ok || rw.form == nil || !rw.form.HasSelection() {
		return nil
	}
	field := dispute.FieldReason
	text := rw.form.Draft().Reason
	if rw.kind == rowInstruction {
		field = dispute.FieldInstruction
		text = rw.form.Draft().Instruction
	}
	return a.editor.Open(rw.form.ID(), field, text, a.width-8)
}

func (a *App) toggleDetails() {
	rw, ok := a.currentRow()
	if !ok {
		return
	}
	if rw.kind == rowSection {
		rw.section.SetAllDetails(!rw.section.ShowDetails())
		return
	}
	if rw.form != nil {
		rw.form.SetShowDetails(!rw.form.ShowDetails())
	}
}

func (a *App) showWarning(w dispute.WarningMsg) {
	confirm := func() tea.Cmd {
		if s := a.sectionByAnchor(w.Owner); s != nil {
			return s.ConfirmSelectAll()
		}
		if c := a.page.Controller(w.Owner); c != nil {
			return c.ConfirmPending()
		}
		return nil
	}
	cancel := func() tea.Cmd {
		if s := a.sectionByAnchor(w.Owner); s != nil {
			s.CancelSelectAll()
		} else if c := a.page.Controller(w.Owner); c != nil {
			c.CancelPending()
		}
		return nil
	}
	a.confirm.ShowWarning(w, a.width-4, confirm, cancel)
}

func (a *App) sectionByAnchor(owner string) *dispute.Section {
	for _, s := range a.page.Sections() {
		if dispute.SectionAnchor(s.ID()) == owner {
			return s
		}
	}
	return nil
}

// Host callbacks

func (a *App) onDisputeSaved(_ string, d models.SavedDispute) tea.Cmd {
	path := a.ws.ReportPath
	return tea.Batch(
		a.recordHistory(func(ctx context.Context, log *history.Log) error {
			_, err := log.RecordSaved(ctx, path, d)
			return err
		}),
		a.persist(),
	)
}

func (a *App) onDisputeReset(entityKey string) tea.Cmd {
	path := a.ws.ReportPath
	return tea.Batch(
		a.recordHistory(func(ctx context.Context, log *history.Log) error {
			_, err := log.RecordReset(ctx, path, entityKey)
			return err
		}),
		a.persist(),
	)
}

func (a *App) saveTemplate(t models.Template) tea.Cmd {
	store := a.ws.Store
	if store == nil || !a.ws.Persist {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		ack, err := store.Save(ctx, t)
		return templateSavedMsg{template: t, ack: ack, err: err}
	}
}

func (a *App) templateSaved(msg templateSavedMsg) tea.Cmd {
	if msg.err != nil {
		return a.status.ShowWarning(fmt.Sprintf("Template not saved: %v", msg.err))
	}
	if msg.ack.Duplicate {
		return nil
	}
	a.ws.Templates = append(a.ws.Templates, msg.template)
	return a.status.ShowInfo("Saved your text as a " + string(msg.template.Type) + " template")
}

func (a *App) recordHistory(fn func(ctx context.Context, log *history.Log) error) tea.Cmd {
	log := a.ws.History
	if log == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return historyMsg{err: fn(ctx, log)}
	}
}

// persist snapshots the session now and writes it in the background
func (a *App) persist() tea.Cmd {
	if !a.ws.Persist {
		return nil
	}
	s := a.captureSession()
	path := a.ws.SessionPath
	return func() tea.Msg {
		return sessionSavedMsg{err: ledger.SaveSession(path, s)}
	}
}

func (a *App) captureSession() *ledger.Session {
	s := &ledger.Session{Report: a.ws.ReportPath}
	a.page.Capture(s)
	return s
}

func (a *App) quit() tea.Cmd {
	if a.ws.Persist {
		// written synchronously; the program exits right after
		if err := ledger.SaveSession(a.ws.SessionPath, a.captureSession()); err != nil {
			a.quitErr = fmt.Errorf("session not saved: %w", err)
		}
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.page.Close()
	return tea.Quit
}

// Scanning

func (a *App) startScan() tea.Cmd {
	if a.scanning {
		return nil
	}
	a.scanning = true
	scanner := a.ws.Scanner
	if scanner == nil {
		scanner = scan.RuleScanner{}
	}
	r := a.page.Report()
	timeout := a.ws.Settings.Scan.Timeout.Std()

	run := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return scanDoneMsg{outcome: scan.Run(ctx, scanner, r)}
	}
	return tea.Batch(a.spinner.Tick, run)
}

func (a *App) scanDone(out scan.Outcome) tea.Cmd {
	a.scanning = false
	a.page.ApplyScan(out.Results)
	if out.Err != nil {
		return a.status.ShowWarning(fmt.Sprintf("Scan unavailable (%v): no violations found", out.Err))
	}
	return a.status.ShowSuccess(fmt.Sprintf("Scan complete: %d violations found", out.Results.Count()))
}

// Letter

func (a *App) composeLetter(width int) (string, error) {
	return letter.Compose(a.page.Report(), a.ledger.Snapshot(), letter.Options{Width: width, Date: time.Now()})
}

func (a *App) openPreview() tea.Cmd {
	md, err := a.composeLetter(0)
	if err != nil {
		return a.letterError(err)
	}
	a.preview.Open(md, a.width, a.viewport.Height)
	return nil
}

func (a *App) copyLetter() tea.Cmd {
	md, err := a.composeLetter(80)
	if err != nil {
		return a.letterError(err)
	}
	if err := clipboard.WriteAll(md); err != nil {
		return a.status.ShowError(fmt.Sprintf("Clipboard unavailable: %v", err))
	}
	return a.status.ShowSuccess("Dispute letter → clipboard")
}

func (a *App) letterError(err error) tea.Cmd {
	if errors.Is(err, letter.ErrNoDisputes) {
		return a.status.ShowWarning("Save a dispute first")
	}
	return a.status.ShowError(err.Error())
}

// Report reloads

func waitForChange(w *report.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return reportChangedMsg{}
	}
}

func reloadReport(path string) tea.Cmd {
	return func() tea.Msg {
		r, err := report.Load(path)
		return reportReloadedMsg{report: r, err: err}
	}
}

func (a *App) reportReloaded(msg reportReloadedMsg) tea.Cmd {
	if msg.err != nil {
		return a.status.ShowError(fmt.Sprintf("Reload failed: %v", msg.err))
	}
	s := a.captureSession()
	a.ws.Report = msg.report
	a.buildPage(msg.report, s)
	a.cursor = 0
	a.viewport.GotoTop()
	return a.status.ShowInfo("Report reloaded")
}

// Layout

func (a *App) resize() {
	helpHeight := 1
	if a.showHelp {
		helpHeight = len(a.keys.FullHelp()[0]) + 2
	}
	h := a.height - 2 - helpHeight
	if h < 3 {
		h = 3
	}
	a.viewport.Width = a.width
	a.viewport.Height = h
	a.help.Width = a.width
	if a.preview.Active() {
		a.preview.view.Width = a.width
		a.preview.view.Height = h
	}
}

// refresh re-renders the page into the viewport and publishes anchors
func (a *App) refresh() {
	a.layout = renderPage(a.page, a.width, a.cursor)
	if n := len(a.layout.rows); n > 0 && a.cursor >= n {
		a.cursor = n - 1
		a.layout = renderPage(a.page, a.width, a.cursor)
	}
	a.anchors.lines = a.layout.anchors
	a.viewport.SetContent(strings.Join(a.layout.lines, "\n"))
}

func (a *App) moveCursor(delta int) {
	n := len(a.layout.rows)
	if n == 0 {
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	a.ensureVisible()
}

func (a *App) ensureVisible() {
	line := a.layout.rows[a.cursor].line
	switch {
	case line < a.viewport.YOffset:
		a.viewport.SetYOffset(line)
	case line >= a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(line - a.viewport.Height + 1)
	}
}

// scrollTo moves the viewport for the choreography and puts the cursor on
// the first row in view
func (a *App) scrollTo(line int) {
	a.viewport.SetYOffset(line)
	target := line + a.ws.Settings.Choreography.ScrollOffset
	for i, rw := range a.layout.rows {
		if rw.line >= target {
			a.cursor = i
			return
		}
	}
}

func (a *App) currentRow() (row, bool) {
	if a.layout == nil || a.cursor < 0 || a.cursor >= len(a.layout.rows) {
		return row{}, false
	}
	return a.layout.rows[a.cursor], true
}

func (a *App) currentForm() *dispute.Controller {
	rw, ok := a.currentRow()
	if !ok {
		return nil
	}
	return rw.form
}

func (a *App) currentSection() *dispute.Section {
	rw, ok := a.currentRow()
	if !ok {
		return nil
	}
	if rw.section != nil {
		return rw.section
	}
	if rw.form != nil {
		return a.page.SectionOf(rw.form.ID())
	}
	return nil
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	progress := progressLine(a.page)
	if a.scanning {
		progress = a.spinner.View() + " scanning  " + progress
	}
	header := renderHeader(a.width, a.ws.ReportPath, progress)

	body := a.viewport.View()
	switch {
	case a.confirm.Active():
		body = lipgloss.Place(a.width, a.viewport.Height, lipgloss.Center, lipgloss.Center, a.confirm.View())
	case a.editor.Active():
		body = lipgloss.Place(a.width, a.viewport.Height, lipgloss.Center, lipgloss.Center, a.editor.View())
	case a.preview.Active():
		body = a.preview.view.View()
	}

	statusLine := ""
	if text, t, ok := a.status.GetStatus(); ok {
		statusLine = StatusBarStyle(t).Render(text)
	}

	a.help.ShowAll = a.showHelp
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine, a.help.View(a.keys))
}
