package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 80 * time.Millisecond

// tickMsg is sent on a timer for animations
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
