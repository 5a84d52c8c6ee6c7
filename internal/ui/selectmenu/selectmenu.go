// Package selectmenu provides the dropdown list used by select fields.
package selectmenu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rounds/internal/ui/styles"
)

const defaultWidth = 30

// Option is one entry in the menu.
type Option struct {
	Label string
	Value string
}

// SelectMsg is emitted when the user picks an option.
type SelectMsg struct {
	ID     string
	Option Option
}

// CancelMsg is emitted when the menu is closed without a choice.
type CancelMsg struct {
	ID string
}

// Model is an open dropdown.
type Model struct {
	id        string
	title     string
	emptyText string
	options   []Option
	cursor    int
	width     int
}

// New creates a menu identified by id. The cursor starts on the option whose
// value equals selected, or on the first option.
func New(id, title string, options []Option, selected string) Model {
	m := Model{
		id:        id,
		title:     title,
		emptyText: "(no options)",
		options:   options,
		width:     defaultWidth,
	}
	for i, opt := range options {
		if opt.Value == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// SetEmptyText sets what is shown when there are no options.
func (m Model) SetEmptyText(s string) Model {
	m.emptyText = s
	return m
}

// SetWidth sets the outer width of the menu box.
func (m Model) SetWidth(w int) Model {
	if w > 4 {
		m.width = w
	}
	return m
}

func (m Model) ID() string { return m.id }

// Cursor returns the index of the highlighted option.
func (m Model) Cursor() int { return m.cursor }

// Options returns the options on offer.
func (m Model) Options() []Option { return m.options }

// Update handles navigation, selection and cancel keys plus item clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "ctrl+n", "tab":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "k", "up", "ctrl+p", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.options)-1, 0)
		case "enter", " ":
			return m, m.choose(m.cursor)
		case "esc", "q":
			return m, m.cancel()
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := range m.options {
			if z := zone.Get(m.itemZoneID(i)); z != nil && z.InBounds(msg) {
				m.cursor = i
				return m, m.choose(i)
			}
		}
	}
	return m, nil
}

func (m Model) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.options) {
		return m.cancel()
	}
	id, opt := m.id, m.options[i]
	return func() tea.Msg { return SelectMsg{ID: id, Option: opt} }
}

func (m Model) cancel() tea.Cmd {
	id := m.id
	return func() tea.Msg { return CancelMsg{ID: id} }
}

func (m Model) itemZoneID(i int) string {
	return fmt.Sprintf("selectmenu-%s-%d", m.id, i)
}

// View renders the menu box. Item rows are zone-marked; the caller must run
// zone.Scan over the final frame.
func (m Model) View() string {
	inner := m.width - 2
	labelWidth := max(inner-2, 1) // "> " prefix

	var rows []string
	rows = append(rows,
		lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render(m.title),
		lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", inner)),
	)

	if len(m.options) == 0 {
		rows = append(rows, " "+styles.HintStyle.Render(styles.Truncate(m.emptyText, labelWidth)))
	}
	for i, opt := range m.options {
		label := styles.Truncate(opt.Label, labelWidth)
		var line string
		if i == m.cursor {
			line = styles.SelectionIndicatorStyle.Render(">") + " " + lipgloss.NewStyle().Bold(true).Render(label)
		} else {
			line = "  " + label
		}
		rows = append(rows, zone.Mark(m.itemZoneID(i), line))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(inner).
		Render(strings.Join(rows, "\n"))
}
