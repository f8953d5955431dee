package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D8D"))
	headlineStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	bigNumberStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8A3D"))
	textStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	accentStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	footerStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	arrowStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	barStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D8D"))
	barTrackStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	buttonStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0A0A0A")).Background(lipgloss.Color("#FF8A3D"))
	secondaryButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)
