package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	key        lipgloss.Style
	detail     lipgloss.Style
	highlight  lipgloss.Style
	complete   lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	meta       lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	coach      lipgloss.Style
	category   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		highlight:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		complete:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		coach:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("129")),
		category:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}
