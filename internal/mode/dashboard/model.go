// Package dashboard implements the screen shown after a successful sign-up.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/rounds/internal/keys"
	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/mode/shared"
	"github.com/zjrosen/rounds/internal/session"
	"github.com/zjrosen/rounds/internal/ui/markdown"
	"github.com/zjrosen/rounds/internal/ui/toaster"
)

const defaultWidth = 72

// Profile is what the dashboard knows about the signed up doctor.
type Profile struct {
	Name       string
	Email      string
	Department string
}

// Model holds the dashboard state.
type Model struct {
	services mode.Services
	token    *session.Token
	profile  Profile
	saved    bool // token persisted to the session store

	width  int
	height int

	body string // rendered markdown for the current width
}

// New creates the dashboard for token. saved reports whether the token made
// it into the session store.
func New(services mode.Services, token *session.Token, profile Profile, saved bool) Model {
	m := Model{
		services: services,
		token:    token,
		profile:  profile,
		saved:    saved,
	}
	m.body = m.renderBody()
	return m
}

// Init returns nil; the dashboard has no background work.
func (m Model) Init() tea.Cmd { return nil }

// SetSize re-renders the welcome text for the new width.
func (m Model) SetSize(width, height int) Model {
	resized := width != m.width
	m.width = width
	m.height = height
	if resized {
		m.body = m.renderBody()
	}
	return m
}

// Token returns the session token shown by the dashboard.
func (m Model) Token() *session.Token { return m.token }

// Saved reports whether the token was persisted.
func (m Model) Saved() bool { return m.saved }

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Dashboard.CopyToken):
			return m, m.copyToken()
		case key.Matches(msg, keys.Dashboard.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) copyToken() tea.Cmd {
	if m.token == nil {
		return nil
	}
	clip := m.services.Clipboard
	if clip == nil {
		return toast("Clipboard unavailable", toaster.StyleError)
	}
	if err := clip.Copy(m.token.Value()); err != nil {
		log.ErrorErr(log.CatUI, "copy token failed", err)
		return toast("Could not copy token", toaster.StyleError)
	}
	log.Debug(log.CatUI, "token copied to clipboard")
	return toast("Token copied to clipboard", toaster.StyleSuccess)
}

// Markdown returns the welcome document before rendering.
func (m Model) Markdown() string {
	var b strings.Builder

	name := m.profile.Name
	if name == "" {
		name = "Doctor"
	}
	fmt.Fprintf(&b, "# Welcome, %s\n\n", name)

	if code := m.services.HospitalCode(); code != "" {
		fmt.Fprintf(&b, "Your account with hospital **%s** is ready.\n\n", code)
	} else {
		b.WriteString("Your account is ready.\n\n")
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Email | %s |\n", cell(m.profile.Email))
	if m.profile.Department != "" {
		fmt.Fprintf(&b, "| Department | %s |\n", cell(m.profile.Department))
	}
	if m.token != nil {
		if sub := m.token.Subject(); sub != "" {
			fmt.Fprintf(&b, "| Account | %s |\n", cell(sub))
		}
		fmt.Fprintf(&b, "| Session | %s |\n", shared.FormatExpiry(m.token.ExpiresAt(), m.now().Now()))
		fmt.Fprintf(&b, "| Token | `%s` |\n", m.token.Masked())
	}
	b.WriteString("\n")

	if m.saved {
		fmt.Fprintf(&b, "The session is stored under `%s` and will be reused next time.\n", session.DoctorTokenKey)
	} else {
		b.WriteString("> The session could not be saved and lasts until you quit.\n")
	}
	return b.String()
}

func (m Model) now() shared.Clock {
	if m.services.Clock == nil {
		return shared.RealClock{}
	}
	return m.services.Clock
}

func (m Model) renderBody() string {
	md := m.Markdown()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	r, err := markdown.New(min(width-4, defaultWidth), m.services.MarkdownStyle())
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer failed", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render failed", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}
