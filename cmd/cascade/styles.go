package main

import "github.com/charmbracelet/lipgloss"

// Terminal styles. Lipgloss degrades colors based on the terminal capabilities.
var (
	styleHeading   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleProperty  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleImportant = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleOrigin    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTrue      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFalse     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleError     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// render applies style to text when colors are enabled.
func render(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

func renderBool(b bool, useColors bool) string {
	if b {
		return render(styleTrue, "true", useColors)
	}
	return render(styleFalse, "false", useColors)
}
