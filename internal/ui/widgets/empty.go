package widgets

import "github.com/charmbracelet/lipgloss"

// EmptyListView is the placeholder shown behind a list with no rows
type EmptyListView struct {
	title   string
	message string
}

func NewEmptyListView(title, message string) *EmptyListView {
	return &EmptyListView{title: title, message: message}
}

func (e *EmptyListView) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render(e.title)
	msg := lipgloss.NewStyle().Faint(true).Render(e.message)
	return lipgloss.JoinVertical(lipgloss.Center, title, msg)
}
