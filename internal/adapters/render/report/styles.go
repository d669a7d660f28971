package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	entity     lipgloss.Style
	detail     lipgloss.Style
	safe       lipgloss.Style
	violation  lipgloss.Style
	unchecked  lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	position   lipgloss.Style
	fieldName  lipgloss.Style
	fieldType  lipgloss.Style
	bulletMark lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		entity:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		safe:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		violation:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		unchecked:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		position:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		fieldName:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		fieldType:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		bulletMark: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
