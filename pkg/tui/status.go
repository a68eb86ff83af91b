package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
	gen       int
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusManager manages temporary status messages. A newer message
// outlives the clear scheduled for an older one.
type StatusManager struct {
	CurrentStatus     *StatusFeedback
	DefaultDuration   time.Duration
	PersistentMessage string
	PersistentType    StatusType
	now               func() time.Time
	gen               int
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		now:             time.Now,
	}
}

// ShowFeedback displays a status message with an icon
func (sm *StatusManager) ShowFeedback(icon, message string, statusType StatusType) tea.Cmd {
	sm.gen++
	gen := sm.gen
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      icon,
		ShowUntil: sm.now().Add(sm.DefaultDuration),
		Type:      statusType,
		gen:       gen,
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{gen: gen}
	})
}

func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback("✓", message, StatusTypeSuccess)
}

func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback("⚠", message, StatusTypeWarning)
}

func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback("×", message, StatusTypeError)
}

func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback("ℹ", message, StatusTypeInfo)
}

// SetPersistentMessage sets a message that persists until cleared
func (sm *StatusManager) SetPersistentMessage(message string, statusType StatusType) {
	sm.PersistentMessage = message
	sm.PersistentType = statusType
}

// ClearPersistentMessage clears the persistent message
func (sm *StatusManager) ClearPersistentMessage() {
	sm.PersistentMessage = ""
}

// HandleClear drops the current status if msg was scheduled for it
func (sm *StatusManager) HandleClear(msg ClearStatusMsg) {
	if sm.CurrentStatus != nil && sm.CurrentStatus.gen == msg.gen {
		sm.CurrentStatus = nil
	}
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}
	if sm.now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}
	return true
}

// GetStatus returns the current status message and its type if any
func (sm *StatusManager) GetStatus() (string, StatusType, bool) {
	if sm.IsActive() {
		return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), sm.CurrentStatus.Type, true
	}

	if sm.PersistentMessage != "" {
		icon := "ℹ"
		switch sm.PersistentType {
		case StatusTypeSuccess:
			icon = "✓"
		case StatusTypeWarning:
			icon = "⚠"
		case StatusTypeError:
			icon = "×"
		}
		return fmt.Sprintf("%s %s", icon, sm.PersistentMessage), sm.PersistentType, true
	}

	return "", StatusTypeInfo, false
}

// ClearStatusMsg is sent to clear the status
type ClearStatusMsg struct {
	gen int
}
