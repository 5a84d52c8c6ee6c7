package selectmenu

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

var departments = []Option{
	{Label: "Cardiology", Value: "d1"},
	{Label: "Neurology", Value: "d2"},
	{Label: "Radiology", Value: "d3"},
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_CursorOnSelected(t *testing.T) {
	require.Equal(t, 0, New("dept", "Department", departments, "").Cursor())
	require.Equal(t, 2, New("dept", "Department", departments, "d3").Cursor())
	require.Equal(t, 0, New("dept", "Department", departments, "gone").Cursor())
}

func TestUpdate_Navigation(t *testing.T) {
	m := New("dept", "Department", departments, "")

	m, _ = m.Update(key("down"))
	require.Equal(t, 1, m.Cursor())
	m, _ = m.Update(key("j"))
	require.Equal(t, 2, m.Cursor())
	m, _ = m.Update(key("j"))
	require.Equal(t, 2, m.Cursor(), "cursor stops at the last option")
	m, _ = m.Update(key("k"))
	require.Equal(t, 1, m.Cursor())
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	require.Equal(t, 0, m.Cursor(), "cursor stops at the first option")
	m, _ = m.Update(key("G"))
	require.Equal(t, 2, m.Cursor())
	m, _ = m.Update(key("g"))
	require.Equal(t, 0, m.Cursor())
}

func TestUpdate_EnterSelects(t *testing.T) {
	m := New("dept", "Department", departments, "d2")

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	require.Equal(t, SelectMsg{ID: "dept", Option: departments[1]}, cmd())
}

func TestUpdate_SpaceSelects(t *testing.T) {
	_, cmd := New("gender", "Gender", []Option{{Label: "Other", Value: "Other"}}, "").Update(key(" "))
	require.Equal(t, SelectMsg{ID: "gender", Option: Option{Label: "Other", Value: "Other"}}, cmd())
}

func TestUpdate_EscCancels(t *testing.T) {
	_, cmd := New("dept", "Department", departments, "").Update(key("esc"))
	require.Equal(t, CancelMsg{ID: "dept"}, cmd())
}

func TestUpdate_EnterOnEmptyCancels(t *testing.T) {
	m := New("dept", "Department", nil, "")

	_, cmd := m.Update(key("enter"))
	require.Equal(t, CancelMsg{ID: "dept"}, cmd(), "nothing to choose from")
}

func TestView_ListsOptionsWithCursor(t *testing.T) {
	view := zone.Scan(New("dept", "Department", departments, "d2").View())

	require.Contains(t, view, "Department")
	require.Contains(t, view, "  Cardiology")
	require.Contains(t, view, "> Neurology")
	require.Contains(t, view, "  Radiology")
	for _, line := range strings.Split(view, "\n") {
		require.Equal(t, defaultWidth, lipgloss.Width(line))
	}
}

func TestView_Empty(t *testing.T) {
	view := zone.Scan(New("dept", "Department", nil, "").SetEmptyText("(no departments)").View())
	require.Contains(t, view, "(no departments)")
}

func TestView_TruncatesLongLabels(t *testing.T) {
	long := []Option{{Label: "Obstetrics, Gynaecology and Reproductive Medicine", Value: "d9"}}
	view := zone.Scan(New("dept", "Department", long, "").SetWidth(20).View())

	require.Contains(t, view, "…")
	for _, line := range strings.Split(view, "\n") {
		require.Equal(t, 20, lipgloss.Width(line))
	}
}
