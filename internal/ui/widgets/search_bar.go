package widgets

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"repohub/internal/rx"
)

// SearchBar is a single-line text input that emits its text on every edit
type SearchBar struct {
	input   textinput.Model
	last    string
	changed *rx.Subject[string]
	style   lipgloss.Style
}

// NewSearchBar creates an unfocused search bar
func NewSearchBar(placeholder string) *SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return &SearchBar{
		input:   ti,
		changed: rx.NewSubject[string](),
		style:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Changed emits the text after each edit
func (b *SearchBar) Changed() rx.Observable[string] {
	return b.changed
}

// Value returns the current text
func (b *SearchBar) Value() string {
	return b.input.Value()
}

// SetValue replaces the text
func (b *SearchBar) SetValue(s string) {
	b.input.SetValue(s)
	b.notify()
}

func (b *SearchBar) Focus() tea.Cmd {
	return b.input.Focus()
}

func (b *SearchBar) Blur() {
	b.input.Blur()
}

func (b *SearchBar) Focused() bool {
	return b.input.Focused()
}

// Update forwards msg to the text input while focused
func (b *SearchBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	b.notify()
	return cmd
}

func (b *SearchBar) notify() {
	if v := b.input.Value(); v != b.last {
		b.last = v
		b.changed.Next(v)
	}
}

func (b *SearchBar) View() string {
	if !b.Focused() && b.Value() == "" {
		return b.style.Faint(true).Render("/ " + b.input.Placeholder)
	}
	return b.input.View()
}
