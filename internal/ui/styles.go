package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleManager encapsulates all console styles
type StyleManager struct {
	Title   lipgloss.Style
	Created lipgloss.Style
	Path    lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:   lipgloss.NewStyle().Bold(true),
		Created: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() *StyleManager {
	plain := lipgloss.NewStyle()
	return &StyleManager{
		Title:   plain,
		Created: plain,
		Path:    plain,
		Warning: plain,
		Success: plain,
		Error:   plain,
		Dim:     plain,
	}
}
