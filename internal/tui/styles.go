package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#5B8DEF")
	colorBrand   = lipgloss.Color("#FF6B6B")
	colorBorder  = lipgloss.Color("#444444")
	colorMuted   = lipgloss.Color("#888888")
	colorSubtle  = lipgloss.Color("#AAAAAA")
	colorText    = lipgloss.Color("#EEEEEE")
	colorGreen   = lipgloss.Color("#4ADE80")
	colorRed     = lipgloss.Color("#F87171")
	colorYellow  = lipgloss.Color("#F7B801")
	colorDimmed  = lipgloss.Color("#555555")
	colorActiveB = lipgloss.Color("#374151")
)

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	userStyle  = lipgloss.NewStyle().Foreground(colorSubtle)

	stepActiveStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorActiveB).Padding(0, 2)
	stepReachableStyle   = lipgloss.NewStyle().Foreground(colorSubtle).Padding(0, 2)
	stepUnreachableStyle = lipgloss.NewStyle().Foreground(colorDimmed).Padding(0, 2)
	navStyle             = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	hintStyle     = lipgloss.NewStyle().Foreground(colorSubtle).MarginTop(1)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	goodStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle      = lipgloss.NewStyle().Foreground(colorRed)
	boldStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	badgeStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(colorGreen).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
