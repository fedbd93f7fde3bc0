package ui

import "github.com/charmbracelet/lipgloss"

// Styles — визуальные стили приложения. Одна палитра на все страницы.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Help     lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Pending      lipgloss.Style

	Box lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		ListItem:     lipgloss.NewStyle(),
		ListSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Pending:      lipgloss.NewStyle().Faint(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
	}
}
