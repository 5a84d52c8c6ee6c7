// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rounds/internal/ui/overlay"
	"github.com/zjrosen/rounds/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up when shown with Show.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	gen     int // bumped on every Show so stale dismissals are ignored
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message and schedules its dismissal after DefaultDuration.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	return m.ShowFor(message, style, DefaultDuration)
}

// ShowFor displays message and schedules its dismissal after d.
func (m Model) ShowFor(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.gen++
	m.message = message
	m.style = style
	m.visible = true
	return m, ScheduleDismiss(m.gen, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update hides the toast when a DismissMsg for the current toast arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.gen {
		return m.Hide()
	}
	return m
}

func (m Model) Visible() bool   { return m.visible }
func (m Model) Message() string { return m.message }
func (m Model) Style() Style    { return m.style }

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.ToastBorderErrorColor)
		icon = "✗"
	case StyleInfo:
		box = box.BorderForeground(styles.ToastBorderInfoColor)
		icon = "i"
	case StyleWarn:
		box = box.BorderForeground(styles.ToastBorderWarnColor)
		icon = "!"
	default:
		box = box.BorderForeground(styles.ToastBorderSuccessColor)
		icon = "✓"
	}
	return box.Render(icon + " " + m.message)
}

// Overlay renders the toast bottom-center on top of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg signals that the toast with ID should be dismissed.
type DismissMsg struct {
	ID int
}

// ScheduleDismiss returns a command that emits DismissMsg{ID: id} after d.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
