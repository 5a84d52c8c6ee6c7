package register

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/rounds/internal/hospital"
	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/registration"
)

// RegisteredMsg is emitted once the backend accepts the registration.
// The parent persists Token and switches to the dashboard.
type RegisteredMsg struct {
	Token      string
	Email      string
	Name       string
	Department string
}

type departmentsLoadedMsg struct {
	departments []registration.Department
	err         error
}

type otpSentMsg struct {
	email string
	err   error
}

type otpVerifiedMsg struct {
	email  string
	result registration.VerifyResult
	err    error
}

type registerResultMsg struct {
	req   registration.RegisterRequest
	token string
	err   error
}

// refresher is implemented by APIs that cache the department list.
type refresher interface {
	Refresh(ctx context.Context) error
}

// loadDepartmentsCmd fetches the department list. With refresh set, a cached
// list is dropped first so the backend is asked again.
func loadDepartmentsCmd(api hospital.API, refresh bool) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if r, ok := api.(refresher); ok && refresh {
			if err := r.Refresh(ctx); err != nil {
				log.ErrorErr(log.CatCache, "refresh departments failed", err)
			}
		}
		deps, err := api.Departments(ctx)
		return departmentsLoadedMsg{departments: deps, err: err}
	}
}

func sendOTPCmd(api hospital.API, email string) tea.Cmd {
	return func() tea.Msg {
		err := api.SendOTP(context.Background(), email)
		return otpSentMsg{email: email, err: err}
	}
}

func verifyOTPCmd(api hospital.API, email, otp string) tea.Cmd {
	return func() tea.Msg {
		result, err := api.VerifyOTP(context.Background(), email, otp)
		return otpVerifiedMsg{email: email, result: result, err: err}
	}
}

func registerCmd(api hospital.API, req registration.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		token, err := api.RegisterDoctor(context.Background(), req)
		return registerResultMsg{req: req, token: token, err: err}
	}
}
