// Package ui renders forge's terminal output: the banner, the wizard
// chrome, and the panels shown after generation.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Purple primary with cyan and neon accents; the Light variants
// pick darker shades of the same hue so light terminals keep contrast.
var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#8B5CF6"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#06B6D4"}
	AccentColor    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	PinkColor      = lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#EC4899"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#EF4444"}

	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// Shared styles built on the palette.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	LabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	ValueStyle   = lipgloss.NewStyle().Foreground(SecondaryColor)
	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)

	// SelectionStyle marks the highlighted option in wizard lists.
	SelectionStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
)
