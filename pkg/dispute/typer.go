package dispute

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Field names one of the two text fields of a dispute form
type Field int

const (
	FieldReason Field = iota
	FieldInstruction
)

func (f Field) String() string {
	if f == FieldInstruction {
		return "instruction"
	}
	return "reason"
}

// TypeTickMsg reveals the next character of a typing run. Ticks from a
// superseded run carry an old generation and are dropped.
type TypeTickMsg struct {
	Owner string
	Field Field
	Gen   int
}

func (m TypeTickMsg) owner() string { return m.Owner }

// Typer reveals text into a sink one character per tick. Starting a new run
// supersedes the previous one; there is no cancellation, only a generation
// check on every tick.
type Typer struct {
	owner  string
	field  Field
	delay  time.Duration
	gen    int
	target []rune
	pos    int
	typing bool
	onChar func(string)
	onDone func() tea.Cmd
}

// NewTyper creates a typer whose ticks are addressed to owner
func NewTyper(owner string, field Field, delay time.Duration) *Typer {
	return &Typer{owner: owner, field: field, delay: delay}
}

// Start begins revealing text from the empty string. onChar receives every
// prefix; onDone runs once the full text is shown and may return a command.
func (t *Typer) Start(text string, onChar func(string), onDone func() tea.Cmd) tea.Cmd {
	t.gen++
	t.target = []rune(text)
	t.pos = 0
	t.onChar = onChar
	t.onDone = onDone
	t.typing = true

	t.onChar("")
	if len(t.target) == 0 {
		return t.complete()
	}
	return t.tick()
}

// Update advances the current run
func (t *Typer) Update(msg TypeTickMsg) tea.Cmd {
	if !t.typing || msg.Gen != t.gen || msg.Field != t.field {
		return nil
	}
	t.pos++
	t.onChar(string(t.target[:t.pos]))
	if t.pos >= len(t.target) {
		return t.complete()
	}
	return t.tick()
}

// Finish reveals the remaining text at once. onDone is not called.
func (t *Typer) Finish() {
	if !t.typing {
		return
	}
	t.pos = len(t.target)
	t.onChar(string(t.target))
	t.typing = false
	t.gen++
}

// Stop abandons the current run where it is
func (t *Typer) Stop() {
	if t.typing {
		t.typing = false
		t.gen++
	}
}

func (t *Typer) Typing() bool {
	return t.typing
}

// Target is the text of the latest run
func (t *Typer) Target() string {
	return string(t.target)
}

func (t *Typer) complete() tea.Cmd {
	t.typing = false
	if t.onDone != nil {
		return t.onDone()
	}
	return nil
}

func (t *Typer) tick() tea.Cmd {
	msg := TypeTickMsg{Owner: t.owner, Field: t.field, Gen: t.gen}
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return msg
	})
}
