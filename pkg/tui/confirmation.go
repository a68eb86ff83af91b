package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/disputedesk/disputedesk-terminal/pkg/dispute"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string   // shown in orange under the message
	Details     []string // bullet lines
	Destructive bool     // Yes is red, No is green
	YesLabel    string
	NoLabel     string
	Width       int
}

// ConfirmationModel is a modal yes/no prompt. While active it swallows
// every key.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// ShowWarning asks whether to go ahead with a selection that touches
// inquiries tied to open accounts
func (m *ConfirmationModel) ShowWarning(w dispute.WarningMsg, width int, onConfirm, onCancel func() tea.Cmd) {
	noun := "inquiry"
	if w.Count != 1 {
		noun = "inquiries"
	}
	details := make([]string, 0, len(w.Names))
	for i, name := range w.Names {
		if i < len(w.Accounts) {
			details = append(details, fmt.Sprintf("%s (open account: %s)", name, w.Accounts[i]))
		} else {
			details = append(details, name)
		}
	}
	m.Show(ConfirmationConfig{
		Title:    "Inquiry tied to an open account",
		Message:  fmt.Sprintf("%d %s may belong to accounts that are still open.", w.Count, noun),
		Warning:  "Disputing an inquiry you authorised can be rejected. Continue?",
		Details:  details,
		YesLabel: "Proceed Anyway",
		NoLabel:  "Cancel",
		Width:    width,
	}, onConfirm, onCancel)
}

func (m *ConfirmationModel) Hide() {
	m.active = false
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(0, 1)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))
	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width <= 0 || width > 72 {
		width = 72
	}
	contentWidth := width - 4

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(headerStyle.Render(m.config.Title))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(m.config.Message))
		b.WriteString("\n")
	}
	if len(m.config.Details) > 0 {
		b.WriteString("\n")
		for _, detail := range m.config.Details {
			b.WriteString(DescriptionStyle.Render("  • " + detail))
			b.WriteString("\n")
		}
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Width(contentWidth).Render(m.config.Warning))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatConfirmOptions(m.config.Destructive))
	b.WriteString(fmt.Sprintf("  (%s / %s)",
		strings.ToLower(m.config.YesLabel),
		strings.ToLower(m.config.NoLabel)))

	return borderStyle.Width(width).Render(b.String())
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true)
	no := lipgloss.NewStyle().Bold(true)
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorDanger))
		no = no.Foreground(lipgloss.Color(ColorSuccess))
	} else {
		yes = yes.Foreground(lipgloss.Color(ColorSuccess))
		no = no.Foreground(lipgloss.Color(ColorNormal))
	}
	return yes.Render("[y]") + "es / " + no.Render("[n]") + "o"
}
