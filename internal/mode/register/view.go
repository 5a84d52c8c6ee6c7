package register

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rounds/internal/keys"
	"github.com/zjrosen/rounds/internal/registration"
	"github.com/zjrosen/rounds/internal/ui/overlay"
	"github.com/zjrosen/rounds/internal/ui/styles"
)

// span is the [start, end) line range of an element in the rendered form.
type span struct {
	start, end int
}

// View renders the form, scrolled so the focused element is visible.
func (m Model) View() string {
	lines, spans := m.layout()
	footer := m.renderHelp()

	bodyHeight := len(lines)
	if m.height > 0 {
		bodyHeight = max(m.height-2, 1)
	}
	offset := scrollOffset(len(lines), bodyHeight, spans[m.focus])
	visible := lines[offset:min(offset+bodyHeight, len(lines))]

	margin := m.margin()
	var b strings.Builder
	for i, line := range visible {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat(" ", margin))
		b.WriteString(line)
	}
	for range bodyHeight - len(visible) {
		b.WriteString("\n")
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat(" ", margin))
	b.WriteString(footer)
	view := b.String()

	if m.menuOpen {
		anchor := spans[m.focus]
		view = overlay.Place(overlay.Config{
			Width:    m.viewWidth(),
			Height:   bodyHeight + 2,
			Position: overlay.Anchored,
			X:        margin + 2,
			Y:        anchor.end - offset,
		}, m.menu.View(), view)
	}
	if m.alertOpen {
		view = m.alert.Overlay(view)
	}
	return view
}

func (m Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return m.formWidth()
}

func (m Model) margin() int {
	return max((m.viewWidth()-m.formWidth())/2, 0)
}

// scrollOffset returns the first visible line so that s fits in height rows.
func scrollOffset(total, height int, s span) int {
	if total <= height {
		return 0
	}
	offset := max(s.end-height, 0)
	if s.start < offset {
		offset = s.start
	}
	return min(offset, total-height)
}

// layout renders every element and records where each focusable one starts.
func (m Model) layout() ([]string, [focusCount]span) {
	var (
		lines []string
		spans [focusCount]span
	)
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	addElement := func(f focusID, s string) {
		start := len(lines)
		add(zone.Mark(f.zoneID(), s))
		spans[f] = span{start: start, end: len(lines)}
	}

	width := m.formWidth()
	add(styles.TitleStyle.Render("Doctor Registration"))
	if code := m.services.HospitalCode(); code != "" {
		add(styles.HintStyle.Render("Hospital " + code))
	} else {
		add("")
	}
	add("")

	addElement(focusName, m.renderInput(focusName, "Name", ""))
	addElement(focusEmail, m.renderInput(focusEmail, "Email", m.emailHint()))
	addElement(focusSendOTP, m.renderSendButton())
	add("")
	addElement(focusOTP, m.renderInput(focusOTP, "OTP", ""))
	addElement(focusVerifyOTP, m.renderVerifyButton())
	add("")
	addElement(focusContact, m.renderInput(focusContact, "Contact", ""))
	addElement(focusDepartment, m.renderSelect(focusDepartment, "Department", m.form.DepartmentLabel(), m.form.Draft().DepartmentID == ""))
	addElement(focusGender, m.renderSelect(focusGender, "Gender", m.form.GenderLabel(), m.form.Draft().Gender == ""))
	addElement(focusDesignation, m.renderSelect(focusDesignation, "Designation", m.form.DesignationLabel(), m.form.Draft().Designation == ""))
	addElement(focusPassword, m.renderInput(focusPassword, "Password", ""))
	add("")
	addElement(focusSignUp, m.renderSignUpButton(width))

	return lines, spans
}

func (m Model) renderInput(f focusID, title, hint string) string {
	in := m.inputs[f]
	in.Width = max(m.formWidth()-4, 1)
	return styles.RenderFormSection([]string{" " + in.View()}, title, hint, m.formWidth(), m.focus == f, styles.BorderHighlightFocusColor)
}

func (m Model) renderSelect(f focusID, title, label string, placeholder bool) string {
	inner := m.formWidth() - 4
	text := styles.Truncate(label, max(inner-2, 1))
	style := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	if placeholder {
		style = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)
	}
	gap := max(inner-lipgloss.Width(text)-1, 1)
	row := " " + style.Render(text) + strings.Repeat(" ", gap) + "▾"
	return styles.RenderFormSection([]string{row}, title, "", m.formWidth(), m.focus == f, styles.BorderHighlightFocusColor)
}

func (m Model) emailHint() string {
	switch m.form.Verification().State() {
	case registration.StateSent:
		return "code sent"
	case registration.StateVerified:
		return "verified"
	case registration.StateFailed:
		return "rejected, send a new code"
	}
	return ""
}

func (m Model) renderSendButton() string {
	label := "Send OTP"
	kind := styles.ButtonPrimary
	switch {
	case m.sending:
		label = "Sending…"
		kind = styles.ButtonDisabled
	case m.form.Verification().OTPSent():
		label = "OTP Sent"
		kind = styles.ButtonDisabled
	case !m.form.CanSendOTP():
		kind = styles.ButtonDisabled
	}
	return styles.RenderButton(label, kind, m.focus == focusSendOTP)
}

func (m Model) renderVerifyButton() string {
	label := "Verify OTP"
	kind := styles.ButtonPrimary
	switch {
	case m.verifying:
		label = "Verifying…"
		kind = styles.ButtonDisabled
	case m.form.Verification().OTPVerified():
		label = "OTP Verified"
		kind = styles.ButtonSuccess
	case !m.form.CanVerifyOTP():
		kind = styles.ButtonDisabled
	}
	return styles.RenderButton(label, kind, m.focus == focusVerifyOTP)
}

func (m Model) renderSignUpButton(width int) string {
	label := "Sign Up"
	kind := styles.ButtonSuccess
	switch {
	case m.submitting:
		label = "Signing up…"
		kind = styles.ButtonDisabled
	case !m.form.CanSubmit():
		kind = styles.ButtonDisabled
	}
	button := styles.RenderButton(label, kind, m.focus == focusSignUp)
	if m.form.CanSubmit() || m.submitting {
		return button
	}
	hint := styles.HintStyle.Render("verify your email to enable")
	if lipgloss.Width(button)+lipgloss.Width(hint)+2 > width {
		return button
	}
	return button + "  " + hint
}

func (m Model) renderHelp() string {
	bindings := keys.Form.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.HintStyle.Render(strings.Join(parts, " • "))
}
