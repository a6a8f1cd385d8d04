package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/shelfr/internal/notify"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

func renderToast(event *notify.Event) string {
	if event == nil {
		return ""
	}

	style := successStyle

	switch event.Severity {
	case notify.SeverityError:
		style = errorStyle
	case notify.SeverityWarn:
		style = warnStyle
	}

	return style.Render(event.Summary) + " " + event.Detail
}
