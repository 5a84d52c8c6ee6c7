package register

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rounds/internal/hospital"
	"github.com/zjrosen/rounds/internal/keys"
	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/mode"
	"github.com/zjrosen/rounds/internal/registration"
	"github.com/zjrosen/rounds/internal/ui/alert"
	"github.com/zjrosen/rounds/internal/ui/selectmenu"
	"github.com/zjrosen/rounds/internal/ui/toaster"
)

// Update handles messages for the register mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case departmentsLoadedMsg:
		return m.handleDepartmentsLoaded(msg), nil

	case otpSentMsg:
		return m.handleOTPSent(msg)

	case otpVerifiedMsg:
		return m.handleOTPVerified(msg), nil

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case selectmenu.SelectMsg:
		return m.applySelection(msg), nil

	case selectmenu.CancelMsg:
		m.menuOpen = false
		return m, nil

	case alert.ClosedMsg:
		m.alertOpen = false
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.alertOpen {
		if m.alert.Acknowledges(msg) {
			m.alertOpen = false
		}
		return m, nil
	}
	if m.menuOpen {
		return m.updateMenu(msg)
	}

	switch {
	case key.Matches(msg, keys.Form.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Form.Next):
		return m.setFocus((m.focus + 1) % focusCount), nil
	case key.Matches(msg, keys.Form.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case key.Matches(msg, keys.Form.Submit):
		return m.signUp()
	case key.Matches(msg, keys.Form.Activate):
		if !m.focus.isInput() {
			return m.activate(m.focus)
		}
		// Enter advances out of a text field; space is typed.
		if msg.Type == tea.KeyEnter {
			return m.setFocus(m.focus + 1), nil
		}
	}

	return m.updateFocusedInput(msg)
}

// updateMenu forwards msg to the open menu and applies a choice or cancel in
// place, so the next key already reaches the form.
func (m Model) updateMenu(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	if cmd == nil {
		return m, nil
	}
	switch out := cmd().(type) {
	case selectmenu.SelectMsg:
		return m.applySelection(out), nil
	case selectmenu.CancelMsg:
		m.menuOpen = false
		return m, nil
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.alertOpen {
		if m.alert.Acknowledges(msg) {
			m.alertOpen = false
		}
		return m, nil
	}
	if m.menuOpen {
		return m.updateMenu(msg)
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	for f := range focusCount {
		if z := zone.Get(f.zoneID()); z != nil && z.InBounds(msg) {
			m = m.setFocus(f)
			if f.isInput() {
				return m, nil
			}
			return m.activate(f)
		}
	}
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focus.isInput() {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m.syncInput(m.focus), cmd
}

// syncInput copies the text of input f into the domain form.
func (m Model) syncInput(f focusID) Model {
	value := m.inputs[f].Value()
	var field registration.Field
	switch f {
	case focusEmail:
		m.form = m.form.SetEmail(value)
		return m
	case focusOTP:
		m.form = m.form.SetOTP(value)
		return m
	case focusName:
		field = registration.FieldName
	case focusContact:
		field = registration.FieldContact
	case focusPassword:
		field = registration.FieldPassword
	default:
		return m
	}

	form, err := m.form.SetField(field, value)
	if err != nil {
		log.ErrorErr(log.CatUI, "set field failed", err, "field", string(field))
		return m
	}
	m.form = form
	return m
}

func (m Model) activate(f focusID) (Model, tea.Cmd) {
	switch f {
	case focusSendOTP:
		return m.sendOTP()
	case focusVerifyOTP:
		return m.verifyOTP()
	case focusSignUp:
		return m.signUp()
	case focusDepartment:
		return m.openDepartmentMenu()
	case focusGender, focusDesignation:
		return m.openMenu(f), nil
	}
	return m, nil
}

// openDepartmentMenu shows the current list and reads it again through the
// API, so a long-lived form picks up changes once the cached list expires.
// An empty or failed list is refreshed from the backend.
func (m Model) openDepartmentMenu() (Model, tea.Cmd) {
	var cmd tea.Cmd
	if !m.loadingDepartments && m.services.API != nil {
		refresh := m.departmentsFailed || len(m.form.Departments()) == 0
		m.loadingDepartments = true
		cmd = loadDepartmentsCmd(m.services.API, refresh)
	}
	return m.openMenu(focusDepartment), cmd
}

func (m Model) sendOTP() (Model, tea.Cmd) {
	if m.sending || !m.form.CanSendOTP() || m.services.API == nil {
		return m, nil
	}
	email := m.form.Verification().Email()
	m.sending = true
	log.Info(log.CatMode, "requesting otp", "email", email)
	return m, sendOTPCmd(m.services.API, email)
}

func (m Model) handleOTPSent(msg otpSentMsg) (Model, tea.Cmd) {
	m.sending = false
	if msg.email != m.form.Verification().Email() {
		log.Debug(log.CatMode, "dropping otp result for previous email", "email", msg.email)
		return m, nil
	}

	m.form = m.form.MarkOTPSent(msg.err)
	if msg.err != nil {
		return m.showAlert("Could not send OTP", hospital.UserMessage(msg.err), alert.KindError), nil
	}

	m = m.setFocus(focusOTP)
	return m, toast("OTP sent to "+msg.email, toaster.StyleSuccess)
}

func (m Model) verifyOTP() (Model, tea.Cmd) {
	if m.verifying || !m.form.CanVerifyOTP() || m.services.API == nil {
		return m, nil
	}
	v := m.form.Verification()
	m.verifying = true
	log.Info(log.CatMode, "verifying otp", "email", v.Email())
	return m, verifyOTPCmd(m.services.API, v.Email(), v.OTP())
}

func (m Model) handleOTPVerified(msg otpVerifiedMsg) Model {
	m.verifying = false
	if msg.email != m.form.Verification().Email() {
		log.Debug(log.CatMode, "dropping verify result for previous email", "email", msg.email)
		return m
	}
	if msg.err != nil {
		return m.showAlert("Could not verify OTP", hospital.UserMessage(msg.err), alert.KindError)
	}

	m.form = m.form.ApplyVerifyResult(msg.result)
	log.Info(log.CatMode, "otp verification finished", "verified", msg.result.Verified)

	message := msg.result.Message
	if msg.result.Verified {
		if message == "" {
			message = hospital.VerifiedMessage
		}
		m = m.setFocus(focusContact)
		return m.showAlert("Email verified", message, alert.KindInfo)
	}
	if message == "" {
		message = "The code was not accepted."
	}
	return m.showAlert("Verification failed", message, alert.KindError)
}

func (m Model) signUp() (Model, tea.Cmd) {
	if m.submitting || !m.form.CanSubmit() || m.services.API == nil {
		return m, nil
	}
	req, err := m.form.Payload()
	if err != nil {
		return m.showAlert("Cannot sign up yet", hospital.UserMessage(err), alert.KindError), nil
	}
	m.submitting = true
	log.Info(log.CatMode, "registering doctor", "email", req.Email, "department", req.DepartmentID)
	return m, registerCmd(m.services.API, req)
}

func (m Model) handleRegisterResult(msg registerResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		return m.showAlert("Sign up failed", hospital.UserMessage(msg.err), alert.KindError), nil
	}

	department := m.form.DepartmentLabel()
	if msg.req.DepartmentID == "" {
		department = ""
	}
	registered := RegisteredMsg{
		Token:      msg.token,
		Email:      msg.req.Email,
		Name:       msg.req.Name,
		Department: department,
	}
	return m, func() tea.Msg { return registered }
}

func (m Model) handleDepartmentsLoaded(msg departmentsLoadedMsg) Model {
	m.loadingDepartments = false
	if msg.err != nil {
		log.ErrorErr(log.CatAPI, "load departments failed", msg.err)
		m.departmentsFailed = true
		return m.refreshDepartmentMenu()
	}
	m.departmentsFailed = false
	if slices.Equal(msg.departments, m.form.Departments()) && len(msg.departments) > 0 {
		// Unchanged; keep the open menu's cursor where it is.
		return m
	}
	m.form = m.form.SetDepartments(msg.departments)
	log.Debug(log.CatMode, "departments loaded", "count", len(msg.departments))
	return m.refreshDepartmentMenu()
}

// refreshDepartmentMenu rebuilds an open department menu from the current list.
func (m Model) refreshDepartmentMenu() Model {
	if !m.menuOpen || m.menu.ID() != menuDepartment {
		return m
	}
	return m.openMenu(focusDepartment)
}

func (m Model) openMenu(f focusID) Model {
	draft := m.form.Draft()
	var (
		id, title, selected string
		options             []selectmenu.Option
	)
	emptyText := "(no options)"

	switch f {
	case focusDepartment:
		id, title, selected = menuDepartment, "Department", draft.DepartmentID
		for _, d := range m.form.Departments() {
			options = append(options, selectmenu.Option{Label: d.Name, Value: d.ID})
		}
		emptyText = "(no departments)"
		if m.loadingDepartments {
			emptyText = "(loading departments…)"
		}
	case focusGender:
		id, title, selected = menuGender, "Gender", draft.Gender
		options = stringOptions(registration.Genders)
	case focusDesignation:
		id, title, selected = menuDesignation, "Designation", draft.Designation
		options = stringOptions(registration.Designations)
	default:
		return m
	}

	m.menu = selectmenu.New(id, title, options, selected).
		SetEmptyText(emptyText).
		SetWidth(min(m.formWidth()-4, 40))
	m.menuOpen = true
	return m
}

func (m Model) applySelection(msg selectmenu.SelectMsg) Model {
	m.menuOpen = false
	var (
		form registration.Form
		err  error
	)
	switch msg.ID {
	case menuDepartment:
		form, err = m.form.SelectDepartment(msg.Option.Value)
	case menuGender:
		form, err = m.form.SelectGender(msg.Option.Value)
	case menuDesignation:
		form, err = m.form.SelectDesignation(msg.Option.Value)
	default:
		return m
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "selection rejected", err, "menu", msg.ID, "value", msg.Option.Value)
		return m
	}
	m.form = form
	return m
}

func stringOptions(values []string) []selectmenu.Option {
	options := make([]selectmenu.Option, len(values))
	for i, v := range values {
		options[i] = selectmenu.Option{Label: v, Value: v}
	}
	return options
}

func toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return mode.ShowToastMsg{Message: message, Style: style}
	}
}
