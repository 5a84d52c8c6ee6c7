// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// FormKeyMap defines the keybindings of the registration form.
type FormKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding // press the focused button or open the focused dropdown
	Submit   key.Binding
	Quit     key.Binding
}

// DashboardKeyMap defines the keybindings of the dashboard.
type DashboardKeyMap struct {
	CopyToken key.Binding
	Quit      key.Binding
}

// Form holds the registration form bindings.
var Form = FormKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down", "ctrl+n"),
		key.WithHelp("tab/↓", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "ctrl+p"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "press/open"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "sign up"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Dashboard holds the dashboard bindings.
var Dashboard = DashboardKeyMap{
	CopyToken: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy token"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown in the form footer.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Activate, k.Submit, k.Quit}
}

// ShortHelp returns the bindings shown in the dashboard footer.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CopyToken, k.Quit}
}
