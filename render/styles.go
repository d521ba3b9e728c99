// Package render styling definitions.
// This file defines lipgloss styles for consistent chat and terminal output.

package render

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles used for rendering.
type Styles struct {
	// Header is the style for leading labels like "Usage:" (bold).
	Header lipgloss.Style

	// Name is the style for command and parameter names (cyan).
	Name lipgloss.Style

	// Placeholder is the style for value placeholders (yellow).
	Placeholder lipgloss.Style

	// Error is the style for the failure label (bold red).
	Error lipgloss.Style
}

// DefaultStyles returns the standard colored styles.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Name:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		Error:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

// PlainStyles returns styles that render text unchanged, for chat platforms
// that do not understand ANSI escapes.
func PlainStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle(),
		Name:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle(),
		Error:       lipgloss.NewStyle(),
	}
}
