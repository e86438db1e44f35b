package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("42")  // Green
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorAccent    = lipgloss.Color("75")  // Blue

	// Base styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent)

	// Badges
	StyleBadgeOverdue = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleBadgeDue     = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleBadgeLater   = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleDone         = lipgloss.NewStyle().Foreground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)
)
