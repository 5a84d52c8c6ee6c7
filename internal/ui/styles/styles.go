// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#52606D", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"} // hints, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#7B8794", Dark: "#777777"}

	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#CBD2D9", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#2680C2", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#F0B429", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#E12D39", Dark: "#FF8787"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#FFFFFF"}

	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSuccessBgColor      = lipgloss.AdaptiveColor{Light: "#1E7B45", Dark: "#1E7B45"}
	ButtonSuccessFocusBgColor = lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#27AE60"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#2D2D2D"}
	ButtonDisabledTextColor   = lipgloss.AdaptiveColor{Light: "#E4E7EB", Dark: "#696969"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#8C8C8C"}

	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = BorderHighlightFocusColor
	ToastBorderWarnColor    = StatusWarningColor

	// ">" prefix in lists
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HintStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	// Done buttons ("OTP Sent", "OTP Verified")
	SuccessButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSuccessBgColor)

	SuccessButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonSuccessFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(ButtonDisabledTextColor).
				Background(ButtonDisabledBgColor)

	DisabledButtonFocusedStyle = DisabledButtonStyle.
					Underline(true).
					UnderlineSpaces(true)
)

// ButtonKind selects a button palette.
type ButtonKind int

const (
	ButtonPrimary ButtonKind = iota
	ButtonSuccess
	ButtonDisabled
)

// RenderButton renders label with the palette for kind, underlined when focused.
func RenderButton(label string, kind ButtonKind, focused bool) string {
	var s lipgloss.Style
	switch kind {
	case ButtonSuccess:
		s = SuccessButtonStyle
		if focused {
			s = SuccessButtonFocusedStyle
		}
	case ButtonDisabled:
		s = DisabledButtonStyle
		if focused {
			s = DisabledButtonFocusedStyle
		}
	default:
		s = PrimaryButtonStyle
		if focused {
			s = PrimaryButtonFocusedStyle
		}
	}
	return s.Render(label)
}
