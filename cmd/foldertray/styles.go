package main

import "github.com/charmbracelet/lipgloss"

// コマンドラインの出力に使う色です
const (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)
)
