// Package mode defines the application modes and the services shared by them.
package mode

import (
	"github.com/zjrosen/rounds/internal/config"
	"github.com/zjrosen/rounds/internal/hospital"
	"github.com/zjrosen/rounds/internal/mode/shared"
	"github.com/zjrosen/rounds/internal/session"
	"github.com/zjrosen/rounds/internal/ui/toaster"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeRegister AppMode = iota
	ModeDashboard
)

func (m AppMode) String() string {
	switch m {
	case ModeRegister:
		return "register"
	case ModeDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	API       hospital.API
	Sessions  session.Repository // nil keeps tokens in memory only
	Config    *config.Config
	Clock     shared.Clock
	Clipboard shared.Clipboard
}

// HospitalCode returns the configured tenant code, or "" without config.
func (s Services) HospitalCode() string {
	if s.Config == nil {
		return ""
	}
	return s.Config.API.HospitalCode
}

// MarkdownStyle returns the configured glamour style.
func (s Services) MarkdownStyle() string {
	if s.Config == nil {
		return ""
	}
	return s.Config.UI.MarkdownStyle
}

// ShowToastMsg asks the app to show a toast. Modes never own the toaster.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}
