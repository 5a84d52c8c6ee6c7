package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rounds/internal/config"
	"github.com/zjrosen/rounds/internal/mocks"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/mode/register"
	"github.com/zjrosen/rounds/internal/mode/shared"
	"github.com/zjrosen/rounds/internal/session"
	"github.com/zjrosen/rounds/internal/session/sqlite"
	"github.com/zjrosen/rounds/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
	os.Exit(m.Run())
}

type failingRepository struct{ session.Repository }

func (failingRepository) Save(*session.Token) error { return errors.New("disk full") }

// createTestModel creates a Model with a mocked backend and the given store.
func createTestModel(t *testing.T, repo session.Repository) Model {
	t.Helper()
	cfg := config.Defaults()
	cfg.API.HospitalCode = "H1"
	services := mode.Services{
		API:       mocks.NewMockAPI(t),
		Sessions:  repo,
		Config:    &cfg,
		Clock:     shared.RealClock{},
		Clipboard: &shared.RecordingClipboard{},
	}
	m := New(services)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func newStore(t *testing.T) session.Repository {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "rounds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.TokenRepository()
}

// registerDoctor runs a RegisteredMsg through the app, including the save command.
func registerDoctor(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(register.RegisteredMsg{
		Token:      "token-abc",
		Email:      "a@b.com",
		Name:       "Dr. Who",
		Department: "Cardiology",
	})
	require.NotNil(t, cmd)
	require.Equal(t, mode.ModeRegister, next.(Model).Mode(), "mode switches after the save completes")

	next, _ = next.Update(cmd())
	return next.(Model)
}

func TestApp_DefaultMode(t *testing.T) {
	m := createTestModel(t, nil)
	assert.Equal(t, mode.ModeRegister, m.Mode(), "expected default mode to be register")
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := createTestModel(t, nil)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = newModel.(Model)

	assert.Equal(t, 120, m.width, "expected width to be updated")
	assert.Equal(t, 50, m.height, "expected height to be updated")
}

func TestApp_RegisteredStoresTokenAndShowsDashboard(t *testing.T) {
	repo := newStore(t)
	m := createTestModel(t, repo)

	m = registerDoctor(t, m)

	require.Equal(t, mode.ModeDashboard, m.Mode())
	require.True(t, m.Dashboard().Saved())
	require.True(t, m.Toaster().Visible())
	require.Equal(t, "Registration complete", m.Toaster().Message())

	stored, err := repo.Get(session.DoctorTokenKey)
	require.NoError(t, err)
	require.Equal(t, "token-abc", stored.Value())
	require.Equal(t, "a@b.com", stored.Email())
	require.Contains(t, m.View(), "Welcome")
}

func TestApp_SaveFailureStillNavigates(t *testing.T) {
	m := createTestModel(t, failingRepository{})

	m = registerDoctor(t, m)

	require.Equal(t, mode.ModeDashboard, m.Mode())
	require.False(t, m.Dashboard().Saved())
	require.Equal(t, "token-abc", m.Dashboard().Token().Value())
	require.Equal(t, toaster.StyleError, m.Toaster().Style())
}

func TestApp_NoStore(t *testing.T) {
	m := createTestModel(t, nil)

	m = registerDoctor(t, m)

	require.Equal(t, mode.ModeDashboard, m.Mode())
	require.False(t, m.Dashboard().Saved())
}

func TestApp_ToastLifecycle(t *testing.T) {
	m := createTestModel(t, nil)

	next, cmd := m.Update(mode.ShowToastMsg{Message: "OTP sent to a@b.com", Style: toaster.StyleSuccess})
	m = next.(Model)
	require.NotNil(t, cmd, "dismissal is scheduled")
	require.True(t, m.Toaster().Visible())
	require.Contains(t, m.View(), "OTP sent to a@b.com")

	// A dismissal for an older toast is ignored.
	next, _ = m.Update(toaster.DismissMsg{ID: 0})
	m = next.(Model)
	require.True(t, m.Toaster().Visible())

	next, _ = m.Update(toaster.DismissMsg{ID: 1})
	m = next.(Model)
	require.False(t, m.Toaster().Visible())
}

func TestApp_RoutesKeysToActiveMode(t *testing.T) {
	m := createTestModel(t, nil)
	m = registerDoctor(t, m)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_ViewRendersRegisterForm(t *testing.T) {
	m := createTestModel(t, nil)

	view := m.View()

	require.Contains(t, view, "Doctor Registration")
	require.Contains(t, view, "Hospital H1")
}
