package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Breadcrumb  lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Highlight   lipgloss.Style
	Name        lipgloss.Style
	Description lipgloss.Style
	Stars       lipgloss.Style
	Badge       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Section     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Breadcrumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Name:        lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Stars:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Width(16),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
	}
}

// LanguageColor returns a color for a language label
func LanguageColor(language string) string {
	switch language {
	case "Go":
		return "45" // cyan
	case "C#", "F#":
		return "99" // purple
	case "JavaScript", "TypeScript":
		return "220" // yellow
	case "Python":
		return "33" // blue
	case "Rust", "Swift":
		return "208" // orange
	case "":
		return "241"
	default:
		return "78" // green
	}
}
