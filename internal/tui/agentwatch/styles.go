package agentwatch

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inkforge/inkforge/internal/applog"
	"github.com/inkforge/inkforge/internal/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorAccent)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	noticeStyle  = lipgloss.NewStyle().Foreground(ui.ColorAccent)

	statusReadyStyle    = lipgloss.NewStyle().Foreground(ui.ColorPass).Bold(true)
	statusStartingStyle = lipgloss.NewStyle().Foreground(ui.ColorWarn).Bold(true)
	statusStoppedStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted).Bold(true)

	eventCrashStyle = lipgloss.NewStyle().Foreground(ui.ColorFail)
	eventGoodStyle  = lipgloss.NewStyle().Foreground(ui.ColorPass)
)

// eventStyle picks a style by event severity.
func eventStyle(t applog.EventType) lipgloss.Style {
	switch t {
	case applog.EventCrash, applog.EventRespawnFailed, applog.EventKill:
		return eventCrashStyle
	case applog.EventReady, applog.EventRespawn:
		return eventGoodStyle
	default:
		return mutedStyle
	}
}

// matches reports whether a key message matches a binding.
func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
