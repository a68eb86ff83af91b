package dispute

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Anchors locates rendered regions by name and scrolls the view. The TUI
// records anchors while rendering the page.
type Anchors interface {
	Locate(anchor string) (offset int, ok bool)
	ScrollTo(offset int)
}

// EntityAnchor names the region of one form
func EntityAnchor(controllerID string) string {
	return "entity:" + controllerID
}

// SectionAnchor names the region of a section card
func SectionAnchor(id SectionID) string {
	return "section:" + string(id)
}

// Plan describes one post-save sequence
type Plan struct {
	// Anchor is the saved form's region
	Anchor string
	// Collapse folds the saved form (and its card when resolved)
	Collapse func()
	// Next picks the anchor to move to after collapsing; "" ends the sequence
	Next func() string
}

// ChoreoStepMsg advances a running sequence
type ChoreoStepMsg struct {
	Gen  int
	Step int
}

const (
	stepCollapse = 1
	stepNext     = 2
)

// Choreographer runs highlight, scroll, collapse, scroll. A new Start
// supersedes a running sequence. When an anchor cannot be found the
// sequence stops where it is.
type Choreographer struct {
	anchors       Anchors
	offset        int
	collapseDelay time.Duration
	nextDelay     time.Duration

	gen       int
	plan      *Plan
	running   bool
	collapsed bool
}

// NewChoreographer creates a driver that keeps offset lines above targets
func NewChoreographer(anchors Anchors, offset int, collapseDelay, nextDelay time.Duration) *Choreographer {
	return &Choreographer{
		anchors:       anchors,
		offset:        offset,
		collapseDelay: collapseDelay,
		nextDelay:     nextDelay,
	}
}

// SetAnchors swaps the anchor source, e.g. after the view is rebuilt
func (ch *Choreographer) SetAnchors(a Anchors) {
	ch.anchors = a
}

func (ch *Choreographer) Running() bool {
	return ch.running
}

// Start scrolls to the saved form and schedules the remaining steps. A
// superseded sequence that has not collapsed its form yet does so now.
func (ch *Choreographer) Start(p Plan) tea.Cmd {
	if ch.running && !ch.collapsed && ch.plan.Collapse != nil {
		ch.plan.Collapse()
	}
	ch.gen++
	ch.collapsed = false
	ch.plan = &p
	ch.running = true
	if !ch.scrollTo(p.Anchor) {
		ch.stop()
		return nil
	}
	return ch.schedule(ch.collapseDelay, stepCollapse)
}

// Stop abandons the running sequence
func (ch *Choreographer) Stop() {
	ch.gen++
	ch.stop()
}

// Update runs the step named by msg if it belongs to the current sequence
func (ch *Choreographer) Update(msg ChoreoStepMsg) tea.Cmd {
	if !ch.running || msg.Gen != ch.gen || ch.plan == nil {
		return nil
	}

	switch msg.Step {
	case stepCollapse:
		if ch.plan.Collapse != nil {
			ch.plan.Collapse()
		}
		ch.collapsed = true
		return ch.schedule(ch.nextDelay, stepNext)

	case stepNext:
		if ch.plan.Next != nil {
			if next := ch.plan.Next(); next != "" {
				ch.scrollTo(next)
			}
		}
		ch.stop()
	}
	return nil
}

func (ch *Choreographer) scrollTo(anchor string) bool {
	if ch.anchors == nil {
		return false
	}
	y, ok := ch.anchors.Locate(anchor)
	if !ok {
		return false
	}
	y -= ch.offset
	if y < 0 {
		y = 0
	}
	ch.anchors.ScrollTo(y)
	return true
}

func (ch *Choreographer) schedule(d time.Duration, step int) tea.Cmd {
	msg := ChoreoStepMsg{Gen: ch.gen, Step: step}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func (ch *Choreographer) stop() {
	ch.running = false
	ch.plan = nil
}
