package register

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rounds/internal/mocks"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/registration"
)

// flowModel hosts the form the way the app does and stops on registration.
type flowModel struct {
	form       Model
	registered *RegisteredMsg
	toasts     []string
}

func (f flowModel) Init() tea.Cmd { return f.form.Init() }

func (f flowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisteredMsg:
		f.registered = &msg
		return f, tea.Quit
	case mode.ShowToastMsg:
		f.toasts = append(f.toasts, msg.Message)
		return f, nil
	}
	var cmd tea.Cmd
	f.form, cmd = f.form.Update(msg)
	return f, cmd
}

func (f flowModel) View() string { return f.form.View() }

func startFlow(t *testing.T, api *mocks.MockAPI) *teatest.TestModel {
	t.Helper()
	return teatest.NewTestModel(t, flowModel{form: New(mode.Services{API: api})},
		teatest.WithInitialTermSize(80, 50))
}

func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(text))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(10*time.Millisecond))
}

func tab(tm *teatest.TestModel, n int) {
	for range n {
		tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	}
}

// choose opens the focused dropdown, waits for label, moves down n rows and picks it.
func choose(t *testing.T, tm *teatest.TestModel, label string, n int) {
	t.Helper()
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, label)
	for range n {
		tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	}
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestFlow_RegisterEndToEnd(t *testing.T) {
	api := mocks.NewMockAPI(t)
	api.On("Departments", mock.Anything).Return(testDepartments, nil).Maybe()
	api.On("SendOTP", mock.Anything, "a@b.com").Return(nil).Once()
	api.On("VerifyOTP", mock.Anything, "a@b.com", "123456").
		Return(registration.VerifyResult{Verified: true, Message: "OTP verified"}, nil).Once()
	api.On("RegisterDoctor", mock.Anything, registration.RegisterRequest{
		Name:         "Dr. Who",
		Contact:      "5550100",
		Email:        "a@b.com",
		Password:     "hunter22",
		DepartmentID: "d2",
		Gender:       "Female",
		Designation:  "Head of Department",
	}).Return("token-abc", nil).Once()

	tm := startFlow(t, api)

	tm.Type("Dr. Who")
	tab(tm, 1)
	tm.Type("a@b.com")
	tab(tm, 1)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "OTP Sent")

	// Focus moved to the OTP field.
	tm.Type("123456")
	tab(tm, 1)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "OTP verified")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Focus moved to Contact; the three dropdowns follow.
	tm.Type("5550100")
	tab(tm, 1)
	choose(t, tm, "Neurology", 1)
	tab(tm, 1)
	choose(t, tm, "Female", 1)
	tab(tm, 1)
	choose(t, tm, "Head of Department", 2)

	tab(tm, 1)
	tm.Type("hunter22")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(flowModel)
	require.NotNil(t, final.registered)
	require.Equal(t, "token-abc", final.registered.Token)
	require.Equal(t, "a@b.com", final.registered.Email)
	require.Equal(t, "Neurology", final.registered.Department)
	require.Equal(t, []string{"OTP sent to a@b.com"}, final.toasts)
}

func TestFlow_InvalidOTPReenablesSend(t *testing.T) {
	api := mocks.NewMockAPI(t)
	api.On("Departments", mock.Anything).Return(testDepartments, nil).Maybe()
	api.On("SendOTP", mock.Anything, "a@b.com").Return(nil).Once()
	api.On("VerifyOTP", mock.Anything, "a@b.com", "999999").
		Return(registration.VerifyResult{Verified: false, Message: "Invalid OTP"}, nil).Once()

	tm := startFlow(t, api)

	tab(tm, 1)
	tm.Type("a@b.com")
	tab(tm, 1)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "OTP Sent")

	tm.Type("999999")
	tab(tm, 1)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Invalid OTP")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(flowModel)
	require.Nil(t, final.registered)
	require.False(t, final.form.AlertOpen())
	require.Equal(t, registration.StateFailed, final.form.Form().Verification().State())
	require.True(t, final.form.Form().CanSendOTP())
	require.Contains(t, final.form.renderSendButton(), "Send OTP")
	require.Contains(t, final.form.renderVerifyButton(), "Verify OTP")
}

func TestFlow_NoDepartments(t *testing.T) {
	api := mocks.NewMockAPI(t)
	// Once on mount, again when the menu opens.
	api.On("Departments", mock.Anything).Return([]registration.Department{}, nil)

	tm := startFlow(t, api)

	// Name, Email, Send, OTP, Verify, Contact, then Department.
	tab(tm, 6)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "(no departments)")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(flowModel)
	require.True(t, final.form.MenuOpen())
	require.Empty(t, final.form.Form().Departments())
	require.Equal(t, registration.DepartmentPlaceholder, final.form.Form().DepartmentLabel())
}
