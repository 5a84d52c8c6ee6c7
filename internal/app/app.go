// Package app contains the root application model.
package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/mode/dashboard"
	"github.com/zjrosen/rounds/internal/mode/register"
	"github.com/zjrosen/rounds/internal/session"
	"github.com/zjrosen/rounds/internal/ui/toaster"
)

// Model is the root application state.
type Model struct {
	// Mode management
	currentMode mode.AppMode
	register    register.Model
	dashboard   dashboard.Model

	// Shared services (passed to mode controllers)
	services mode.Services

	width  int
	height int

	// Centralized toaster - owned by app, not individual modes
	toaster toaster.Model
}

var errNoStore = errors.New("no session store configured")

// tokenSavedMsg reports the outcome of persisting the session token.
type tokenSavedMsg struct {
	token   *session.Token
	profile dashboard.Profile
	err     error
}

// New creates the application in register mode.
func New(services mode.Services) Model {
	return Model{
		currentMode: mode.ModeRegister,
		register:    register.New(services),
		services:    services,
		toaster:     toaster.New(),
	}
}

// Mode returns the active mode.
func (m Model) Mode() mode.AppMode { return m.currentMode }

// Dashboard returns the dashboard; only meaningful in ModeDashboard.
func (m Model) Dashboard() dashboard.Model { return m.dashboard }

// Toaster returns the app-owned toaster.
func (m Model) Toaster() toaster.Model { return m.toaster }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.register.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.register = m.register.SetSize(msg.Width, msg.Height)
		if m.currentMode == mode.ModeDashboard {
			m.dashboard = m.dashboard.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case register.RegisteredMsg:
		log.Info(log.CatMode, "registration complete", "email", msg.Email)
		return m, saveTokenCmd(m.services.Sessions, msg)

	case tokenSavedMsg:
		return m.enterDashboard(msg)
	}

	var cmd tea.Cmd
	switch m.currentMode {
	case mode.ModeDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	default:
		m.register, cmd = m.register.Update(msg)
	}
	return m, cmd
}

func saveTokenCmd(repo session.Repository, msg register.RegisteredMsg) tea.Cmd {
	profile := dashboard.Profile{Name: msg.Name, Email: msg.Email, Department: msg.Department}
	return func() tea.Msg {
		tok := session.NewToken(session.DoctorTokenKey, msg.Token, msg.Email)
		if repo == nil {
			return tokenSavedMsg{token: tok, profile: profile, err: errNoStore}
		}
		return tokenSavedMsg{token: tok, profile: profile, err: repo.Save(tok)}
	}
}

// enterDashboard switches modes whether or not the token was saved; an
// unsaved token stays in memory for this run.
func (m Model) enterDashboard(msg tokenSavedMsg) (tea.Model, tea.Cmd) {
	saved := msg.err == nil
	m.dashboard = dashboard.New(m.services, msg.token, msg.profile, saved).SetSize(m.width, m.height)
	log.Info(log.CatMode, "Switching mode", "from", m.currentMode.String(), "to", mode.ModeDashboard.String())
	m.currentMode = mode.ModeDashboard

	var cmd tea.Cmd
	if saved {
		log.Info(log.CatSession, "session token stored", "key", msg.token.Key(), "guid", msg.token.GUID())
		m.toaster, cmd = m.toaster.Show("Registration complete", toaster.StyleSuccess)
	} else {
		log.ErrorErr(log.CatSession, "session token not stored", msg.err, "key", msg.token.Key())
		m.toaster, cmd = m.toaster.Show("Signed up, but the session could not be saved", toaster.StyleError)
	}
	return m, tea.Batch(cmd, m.dashboard.Init())
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	switch m.currentMode {
	case mode.ModeDashboard:
		view = m.dashboard.View()
	default:
		view = m.register.View()
	}

	// Overlay toaster on top of active mode's view
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(view)
}
