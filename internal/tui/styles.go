package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorAccent    = lipgloss.Color("#E07A5F") // terracotta highlight
	colorWhite     = lipgloss.Color("#FFFFFF") // white for selected items
	colorDim       = lipgloss.Color("#6B7280") // gray for dimmed text
	colorSuccess   = lipgloss.Color("#10B981") // green for running
	colorWarning   = lipgloss.Color("#F59E0B") // yellow/amber for stopped
	colorError     = lipgloss.Color("#EF4444") // red for errors
	colorSeparator = lipgloss.Color("#4B5563") // darker gray for separators
)

// Styles
var (
	// Header title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Selected item style - white bold (no background)
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	// Unselected item style
	ItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	// Dimmed item style (for paths, details)
	DimmedStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Success style
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Warning style
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	// Separator style
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(colorSeparator)

	// Key highlight style (for keybinding display)
	KeyStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// Cursor returns the selection cursor (› instead of >)
func Cursor() string {
	return lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true).
		Render("› ")
}

// NoCursor returns spacing for non-selected items
func NoCursor() string {
	return "  "
}

// RenderSeparator returns a horizontal separator line
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 60
	}
	line := ""
	for i := 0; i < width; i++ {
		line += "─"
	}
	return SeparatorStyle.Render(line)
}

// RenderKeyBinding formats a key binding with highlighted key
func RenderKeyBinding(key, description string) string {
	return KeyStyle.Render(key) + " " + DimmedStyle.Render(description)
}

// truncatePath shortens a path to fit within maxLen
func truncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 40
	}
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}
