package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/disputedesk/disputedesk-terminal/pkg/dispute"
)

// fieldEditor edits one text field of a form in a textarea
type fieldEditor struct {
	active bool
	formID string
	field  dispute.Field
	input  textarea.Model
}

func newFieldEditor() *fieldEditor {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.Placeholder = "Type your own text..."
	return &fieldEditor{input: ta}
}

// Open starts editing text for the field of form id
func (e *fieldEditor) Open(formID string, field dispute.Field, text string, width int) tea.Cmd {
	e.active = true
	e.formID = formID
	e.field = field
	if width < 30 {
		width = 30
	}
	e.input.SetWidth(width)
	e.input.SetHeight(5)
	e.input.SetValue(text)
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *fieldEditor) Close() {
	e.active = false
	e.input.Blur()
}

func (e *fieldEditor) Active() bool { return e.active }

func (e *fieldEditor) Value() string { return e.input.Value() }

// Update forwards a message to the textarea
func (e *fieldEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *fieldEditor) View() string {
	if !e.active {
		return ""
	}
	title := SectionTitleStyle.Render("Edit " + e.field.String())
	hint := DescriptionStyle.Render("ctrl+s apply • esc cancel")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, e.input.View(), hint))
}
