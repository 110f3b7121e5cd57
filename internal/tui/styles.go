package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title          lipgloss.Style
	Muted          lipgloss.Style
	UserLabel      lipgloss.Style
	UserText       lipgloss.Style
	AssistantLabel lipgloss.Style
	Spinner        lipgloss.Style
	Status         lipgloss.Style
	ToggleOn       lipgloss.Style
	Border         lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Muted:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		UserText:       lipgloss.NewStyle().PaddingLeft(2),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")).MarginTop(1),
		Spinner:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ToggleOn:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}
