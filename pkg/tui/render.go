package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/disputedesk/disputedesk-terminal/pkg/dispute"
	"github.com/disputedesk/disputedesk-terminal/pkg/models"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowForm
	rowItem
	rowViolation
	rowAddAll
	rowSuggestion
	rowReason
	rowInstruction
	rowSave
)

// row is one cursor stop in the rendered page
type row struct {
	kind    rowKind
	section *dispute.Section
	form    *dispute.Controller
	key     string
	index   int
	line    int
}

// layout is one render of the page: its lines, cursor stops and the line
// of every anchor
type layout struct {
	lines   []string
	rows    []row
	anchors map[string]int
}

func (l *layout) add(s string) {
	l.lines = append(l.lines, strings.Split(s, "\n")...)
}

// renderer draws a page. cursor is the index of the focused row.
type renderer struct {
	width  int
	cursor int
	out    *layout
}

func renderPage(p *dispute.Page, width, cursor int) *layout {
	r := &renderer{
		width:  width,
		cursor: cursor,
		out:    &layout{anchors: make(map[string]int)},
	}
	for i, s := range p.Sections() {
		if i > 0 {
			r.out.add("")
		}
		r.section(p, s)
	}
	return r.out
}

// stop registers a cursor stop at the next line and reports whether it
// holds the cursor
func (r *renderer) stop(rw row) bool {
	rw.line = len(r.out.lines)
	r.out.rows = append(r.out.rows, rw)
	return len(r.out.rows)-1 == r.cursor
}

func (r *renderer) line(focused bool, indent int, text string) {
	prefix := strings.Repeat(" ", indent)
	if focused {
		r.out.add(CursorStyle.Render(prefix + "▸ " + text))
		return
	}
	r.out.add(prefix + "  " + text)
}

func (r *renderer) section(p *dispute.Page, s *dispute.Section) {
	r.out.anchors[dispute.SectionAnchor(s.ID())] = len(r.out.lines)

	badge := s.Badge()
	title := SectionTitleStyle.Render(s.Title()) + " " + BadgeStyle(badge.AllSaved).Render(badge.String())
	focused := r.stop(row{kind: rowSection, section: s})
	if s.CardCollapsed() {
		r.line(focused, 0, title+" "+SavedStyle.Render("✓ all disputes saved"))
		for _, c := range s.Controllers() {
			r.out.anchors[dispute.EntityAnchor(c.ID())] = len(r.out.lines) - 1
		}
		return
	}
	r.line(focused, 0, title)

	if len(s.Controllers()) == 0 {
		r.out.add(PlaceholderStyle.Render("    Nothing reported"))
		return
	}
	for _, c := range s.Controllers() {
		r.form(p, c)
	}
}

func (r *renderer) form(p *dispute.Page, c *dispute.Controller) {
	r.out.anchors[dispute.EntityAnchor(c.ID())] = len(r.out.lines)

	title := FormTitleStyle.Render(c.Title())
	if p.Highlighted() == c.ID() {
		title = HighlightStyle.Render(c.Title())
	}
	state := ""
	switch c.Phase() {
	case dispute.PhaseSaved, dispute.PhaseCollapsed:
		state = SavedStyle.Render(" ✓ saved")
	case dispute.PhaseDrafting:
		state = DescriptionStyle.Render(" drafting")
	}

	focused := r.stop(row{kind: rowForm, form: c})
	if c.IsCollapsed() {
		r.line(focused, 2, title+state+DescriptionStyle.Render("  (enter to reopen)"))
		return
	}
	marker := "▾ "
	if !c.Expanded() {
		marker = "▸ "
	}
	r.line(focused, 2, marker+title+state)
	if !c.Expanded() {
		return
	}

	if len(c.Items()) == 0 {
		r.out.add(PlaceholderStyle.Render("        None reported"))
		return
	}
	for _, it := range c.Items() {
		box := "[ ]"
		if c.Selected(it.Key) {
			box = "[x]"
		}
		text := box + " " + it.Label
		if c.ShowDetails() && it.Detail != "" {
			text += DescriptionStyle.Render("  " + it.Detail)
		}
		if it.TiedTo != "" {
			text += ErrorStyle.Render("  ⚠ " + it.TiedTo)
		}
		r.line(r.stop(row{kind: rowItem, form: c, key: it.Key}), 4, text)
	}

	if !c.HasSelection() {
		return
	}
	r.draft(c)
}

func (r *renderer) draft(c *dispute.Controller) {
	if available := c.Available(); len(available) > 0 {
		r.out.add(DescriptionStyle.Render("      Violations found"))
		chosen := map[string]bool{}
		for _, v := range c.Violations() {
			chosen[v] = true
		}
		for _, v := range available {
			box := "[ ]"
			if chosen[v] {
				box = "[x]"
			}
			r.line(r.stop(row{kind: rowViolation, form: c, key: v}), 4, box+" "+v)
		}
		r.line(r.stop(row{kind: rowAddAll, form: c}), 4, DescriptionStyle.Render("+ add all violations"))
	} else if c.Kind() == models.KindAccount {
		r.out.add(DescriptionStyle.Render("      Suggestions"))
		for i, s := range c.Suggestions() {
			r.line(r.stop(row{kind: rowSuggestion, form: c, index: i}), 4, "→ "+s.Title)
		}
	}

	d := c.Draft()
	mode := "dropdown"
	if c.CustomMode() {
		mode = "custom"
	}
	r.field(row{kind: rowReason, form: c}, "Reason", d.Reason, c.FieldWarning(dispute.FieldReason), mode)
	r.field(row{kind: rowInstruction, form: c}, "Instruction", d.Instruction, c.FieldWarning(dispute.FieldInstruction), mode)

	label := "Save dispute"
	if c.IsSaved() {
		label = "Saved"
	}
	focused := r.stop(row{kind: rowSave, form: c})
	r.line(focused, 4, ButtonStyle.Render(label))
}

func (r *renderer) field(rw row, label, text string, warn bool, mode string) {
	focused := r.stop(rw)
	heading := label + DescriptionStyle.Render(" ("+mode+")")
	if warn {
		heading = WarningFieldStyle.Render(label + " is required")
	}
	r.line(focused, 4, heading)

	body := text
	if rw.form.Typing() {
		body += "▌"
	}
	if strings.TrimSpace(body) == "" {
		r.out.add(PlaceholderStyle.Render("        (empty: tab for options, e to type)"))
		return
	}
	wrapWidth := r.width - 10
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	for _, ln := range strings.Split(wordwrap.String(body, wrapWidth), "\n") {
		r.out.add("        " + NormalStyle.Render(ln))
	}
}

// viewAnchors exposes the anchors of the last render to the choreography
type viewAnchors struct {
	lines  map[string]int
	scroll func(line int)
}

func (a *viewAnchors) Locate(name string) (int, bool) {
	line, ok := a.lines[name]
	return line, ok
}

func (a *viewAnchors) ScrollTo(line int) {
	if a.scroll != nil {
		a.scroll(line)
	}
}

func progressLine(p *dispute.Page) string {
	saved, total := p.Progress()
	if total == 0 {
		return "No items selected"
	}
	return fmt.Sprintf("%d of %d disputes saved", saved, total)
}
