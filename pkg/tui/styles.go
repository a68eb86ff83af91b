package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242"
	ColorWarning  = "214" // Orange for warnings and flagged fields
	ColorDanger   = "196"
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorDark     = "235"
	ColorAccent   = "205" // Pink for the logo and highlighted forms
)

var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorWarning))

	FormTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	WarningFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning)).
				Bold(true)

	SavedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	ButtonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Padding(0, 1)
)

// BadgeStyle colours a section badge by completion
func BadgeStyle(allSaved bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if allSaved {
		return style.
			Background(lipgloss.Color(ColorSuccess)).
			Foreground(lipgloss.Color(ColorWhite))
	}
	return style.
		Background(lipgloss.Color(ColorDark)).
		Foreground(lipgloss.Color(ColorNormal))
}

// StatusBarStyle colours the status line by message type
func StatusBarStyle(t StatusType) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	switch t {
	case StatusTypeSuccess:
		return style.Foreground(lipgloss.Color(ColorSuccess))
	case StatusTypeWarning:
		return style.Foreground(lipgloss.Color(ColorWarning))
	case StatusTypeError:
		return style.Foreground(lipgloss.Color(ColorDanger))
	default:
		return style.Foreground(lipgloss.Color(ColorNormal))
	}
}
