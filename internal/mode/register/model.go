// Package register implements the doctor sign-up form.
//
// The form walks the user through email verification (Send OTP, then Verify
// OTP) before Sign Up is enabled. Field content and verification state live
// in registration.Form; this package owns focus, inputs, the open dropdown or
// alert, and the in-flight guards for backend calls.
package register

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/registration"
	"github.com/zjrosen/rounds/internal/ui/alert"
	"github.com/zjrosen/rounds/internal/ui/selectmenu"
)

// focusID identifies a focusable element, in tab order.
type focusID int

const (
	focusName focusID = iota
	focusEmail
	focusSendOTP
	focusOTP
	focusVerifyOTP
	focusContact
	focusDepartment
	focusGender
	focusDesignation
	focusPassword
	focusSignUp
	focusCount
)

func (f focusID) zoneID() string {
	switch f {
	case focusName:
		return "register-name"
	case focusEmail:
		return "register-email"
	case focusSendOTP:
		return "register-send-otp"
	case focusOTP:
		return "register-otp"
	case focusVerifyOTP:
		return "register-verify-otp"
	case focusContact:
		return "register-contact"
	case focusDepartment:
		return "register-department"
	case focusGender:
		return "register-gender"
	case focusDesignation:
		return "register-designation"
	case focusPassword:
		return "register-password"
	case focusSignUp:
		return "register-sign-up"
	}
	return ""
}

func (f focusID) isInput() bool {
	switch f {
	case focusName, focusEmail, focusOTP, focusContact, focusPassword:
		return true
	}
	return false
}

func (f focusID) isSelect() bool {
	return f == focusDepartment || f == focusGender || f == focusDesignation
}

// Dropdown ids, reported back in selectmenu messages.
const (
	menuDepartment  = "department"
	menuGender      = "gender"
	menuDesignation = "designation"
)

const maxFormWidth = 64

// Model is the register mode state.
type Model struct {
	services mode.Services
	form     registration.Form

	inputs [focusCount]textinput.Model // only input slots are used
	focus  focusID

	menu      selectmenu.Model
	menuOpen  bool
	alert     alert.Model
	alertOpen bool

	loadingDepartments bool
	departmentsFailed  bool
	sending            bool
	verifying          bool
	submitting         bool

	width  int
	height int
}

// New creates the register mode.
func New(services mode.Services) Model {
	m := Model{
		services:           services,
		form:               registration.NewForm(),
		loadingDepartments: true,
	}
	m.inputs[focusName] = newInput("Dr. Jane Doe", 0)
	m.inputs[focusEmail] = newInput("name@hospital.org", 0)
	m.inputs[focusOTP] = newInput("6-digit code", 8)
	m.inputs[focusContact] = newInput("Phone number", 20)

	password := newInput("At least 8 characters", 0)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	m.inputs[focusPassword] = password

	return m.setFocus(focusName)
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if limit > 0 {
		ti.CharLimit = limit
	}
	return ti
}

// Init starts loading departments.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadDepartmentsCmd(m.services.API, false))
}

// SetSize records the terminal size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if m.alertOpen {
		m.alert = m.alert.SetSize(width, height)
	}
	return m
}

// Form returns the current domain form.
func (m Model) Form() registration.Form { return m.form }

// Focused returns the zone id of the focused element.
func (m Model) Focused() string { return m.focus.zoneID() }

// MenuOpen reports whether a dropdown is open.
func (m Model) MenuOpen() bool { return m.menuOpen }

// AlertOpen reports whether an alert is showing.
func (m Model) AlertOpen() bool { return m.alertOpen }

// Alert returns the current alert; only meaningful while AlertOpen.
func (m Model) Alert() alert.Model { return m.alert }

// Busy reports whether any backend call is in flight.
func (m Model) Busy() bool {
	return m.sending || m.verifying || m.submitting
}

func (m Model) setFocus(f focusID) Model {
	for id := range focusCount {
		if !id.isInput() {
			continue
		}
		if id == f {
			m.inputs[id].Focus()
		} else {
			m.inputs[id].Blur()
		}
	}
	m.focus = f
	return m
}

func (m Model) formWidth() int {
	if m.width <= 0 {
		return maxFormWidth
	}
	return max(min(m.width-4, maxFormWidth), 24)
}

func (m Model) showAlert(title, message string, kind alert.Kind) Model {
	m.alert = alert.New(title, message, kind).SetSize(m.width, m.height)
	m.alertOpen = true
	return m
}
