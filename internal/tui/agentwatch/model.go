// Package agentwatch is the live status TUI behind `inkforge agent watch`.
// It refreshes the supervisor's health status on a tick and shows the tail
// of the shell event log.
package agentwatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inkforge/inkforge/internal/applog"
	"github.com/inkforge/inkforge/internal/supervisor"
)

const (
	refreshInterval = time.Second
	eventTail       = 12
)

// Model is the bubbletea model for the agent watch view.
type Model struct {
	sup     *supervisor.Supervisor
	dataDir string

	status supervisor.HealthStatus
	events []applog.Event
	notice string

	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
}

// NewModel creates a watch model bound to a supervisor.
func NewModel(sup *supervisor.Supervisor) *Model {
	return &Model{
		sup:     sup,
		dataDir: sup.DataDir(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// tickMsg drives the periodic refresh.
type tickMsg time.Time

// refreshMsg carries a freshly polled status and event tail.
type refreshMsg struct {
	status supervisor.HealthStatus
	events []applog.Event
}

// noticeMsg reports the outcome of a lifecycle action.
type noticeMsg string

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		events, _ := applog.TailEvents(m.dataDir, eventTail)
		return refreshMsg{status: m.sup.Status(), events: events}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick(), tea.SetWindowTitle("Inkforge Agent"))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case refreshMsg:
		m.status = msg.status
		m.events = msg.events
		return m, nil

	case noticeMsg:
		m.notice = string(msg)
		return m, m.refresh()

	case tea.KeyMsg:
		switch {
		case matches(msg, m.keys.Quit):
			return m, tea.Quit
		case matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case matches(msg, m.keys.Start):
			return m, m.lifecycle(m.sup.Start)
		case matches(msg, m.keys.Stop):
			return m, m.lifecycle(m.sup.Stop)
		case matches(msg, m.keys.Restart):
			return m, m.lifecycle(m.sup.Restart)
		}
	}
	return m, nil
}

// lifecycle runs a supervisor operation off the UI loop and reports its
// message string as a notice.
func (m *Model) lifecycle(op func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		msg, err := op()
		if err != nil {
			return noticeMsg(err.Error())
		}
		return noticeMsg(msg)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Inkforge Agent"))
	b.WriteString("\n\n")
	b.WriteString(renderStatus(m.status))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Recent events"))
	b.WriteString("\n")
	if len(m.events) == 0 {
		b.WriteString(mutedStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, e := range m.events {
		line := fmt.Sprintf("  %s  %-15s %s",
			e.Timestamp.Format("15:04:05"), e.Type, e.Context)
		b.WriteString(eventStyle(e.Type).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	m.help.ShowAll = m.showHelp
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func renderStatus(st supervisor.HealthStatus) string {
	switch {
	case !st.Running:
		return statusStoppedStyle.Render("● stopped")
	case st.Ready:
		return statusReadyStyle.Render(fmt.Sprintf("● running, ready (pid %d)", *st.PID))
	default:
		return statusStartingStyle.Render(fmt.Sprintf("● running, not ready (pid %d)", *st.PID))
	}
}
