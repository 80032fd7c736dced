package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorAccent   = lipgloss.Color("39")  // blue
	colorDanger   = lipgloss.Color("196") // red
	colorDangerBg = lipgloss.Color("224")
	colorMuted    = lipgloss.Color("242") // gray
	colorText     = lipgloss.Color("15")
	colorSurface  = lipgloss.Color("236")
	colorSuccess  = lipgloss.Color("76") // green
)

var (
	appTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(colorAccent)

	// Buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Background(colorAccent).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				Foreground(colorMuted)

	doneButtonStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Padding(0, 1)

	// Task cards
	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	selectedCardTitleStyle = cardTitleStyle.
				Foreground(colorAccent)

	// Modal
	modalBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(1, 3).
			Align(lipgloss.Center)

	modalIconStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Background(colorDangerBg).
			Bold(true).
			Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			MarginTop(1)
)
