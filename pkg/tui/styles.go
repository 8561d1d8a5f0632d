// Package tui implements the wizard.Prompter presentation boundary as a
// full-screen Bubble Tea frontend. Each request runs one dedicated
// program: a text field, a selectable list, a filesystem picker, or a
// modal confirmation, all rendered as a centered overlay.
package tui

import "github.com/charmbracelet/lipgloss"

// Prompt glyphs convey meaning without relying on color alone.
const (
	GlyphCursor  = "▸"
	GlyphChecked = "✓"
	GlyphError   = "✗"
	GlyphWarning = "⚠"
	GlyphPicked  = "◆"
)

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorBlue   = lipgloss.Color("39")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

// --- Overlay styles ---

var (
	overlayBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(1, 2)

	overlayTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)
)

// --- List styles ---

var (
	itemCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	itemDetail = lipgloss.NewStyle().
			Foreground(colorDim)

	checkboxChecked = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	checkboxUnchecked = lipgloss.NewStyle().
				Foreground(colorDim)
)

// --- Confirm styles ---

var (
	messageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	buttonActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(colorBlue).
			Padding(0, 3)

	buttonInactive = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 3)
)

// --- Key bar styles ---

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	keyDescStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// --- Error style ---

var errorStyle = lipgloss.NewStyle().
	Foreground(colorRed).
	Bold(true)

// --- Spinner style ---

var spinnerStyle = lipgloss.NewStyle().
	Foreground(colorYellow)
