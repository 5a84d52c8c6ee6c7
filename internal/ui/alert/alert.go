// Package alert provides a blocking message box with a single OK button.
package alert

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/rounds/internal/ui/overlay"
	"github.com/zjrosen/rounds/internal/ui/styles"
)

const (
	minWidth  = 36
	maxWidth  = 64
	zoneOK    = "alert-ok"
	okLabel   = "OK"
	paddingX  = 1
	borderPad = 2
)

// Kind tints the title of the alert.
type Kind int

const (
	KindInfo Kind = iota
	KindError
)

// ClosedMsg is emitted when the alert is acknowledged.
type ClosedMsg struct{}

// Model is an open alert. The zero value is not usable; use New.
type Model struct {
	title   string
	message string
	kind    Kind
	width   int
	height  int
}

// New creates an alert showing message verbatim.
func New(title, message string, kind Kind) Model {
	return Model{title: title, message: message, kind: kind}
}

func (m Model) Title() string   { return m.title }
func (m Model) Message() string { return m.message }

// SetSize sets the viewport size used for centering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update emits ClosedMsg when msg acknowledges the alert.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Acknowledges(msg) {
		return m, closed
	}
	return m, nil
}

// Acknowledges reports whether msg closes the alert: Enter, Space, Esc, "o"
// or a click on OK. Hosts that close the alert in place use this instead of
// waiting for ClosedMsg.
func (m Model) Acknowledges(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ", "esc", "o":
			return true
		}
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneOK); z != nil && z.InBounds(msg) {
				return true
			}
		}
	}
	return false
}

func closed() tea.Msg { return ClosedMsg{} }

func (m Model) boxWidth() int {
	w := lipgloss.Width(m.message) + borderPad + 2*paddingX
	if m.width > 0 {
		w = min(w, m.width-4)
	}
	return max(min(w, maxWidth), minWidth)
}

// View renders the alert box.
func (m Model) View() string {
	width := m.boxWidth()
	inner := width - borderPad
	textWidth := inner - 2*paddingX

	titleColor := styles.OverlayTitleColor
	if m.kind == KindError {
		titleColor = styles.StatusErrorColor
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(titleColor).PaddingLeft(paddingX).Render(m.title)
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", inner))

	body := wordwrap.String(m.message, textWidth)
	button := zone.Mark(zoneOK, styles.RenderButton(okLabel, styles.ButtonPrimary, true))

	content := lipgloss.NewStyle().Padding(1, paddingX).Render(body + "\n\n" + button)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(inner).
		Render(title + "\n" + divider + "\n" + content)
}

// Overlay renders the alert centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
