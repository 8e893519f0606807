package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginBottom(1)

	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("243"))
	categoryStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	enteringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	selectorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
