package widgets

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// TickMsg advances animations. The application sends one every frame.
type TickMsg struct{}

// LoadingIndicator is a spinner with a caption, used as a list footer
type LoadingIndicator struct {
	frames []string
	frame  int
	text   string
	style  lipgloss.Style
}

// NewLoadingIndicator creates an indicator showing text
func NewLoadingIndicator(text string) *LoadingIndicator {
	return &LoadingIndicator{
		frames: spinner.MiniDot.Frames,
		text:   text,
		style:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Tick moves to the next frame
func (l *LoadingIndicator) Tick() {
	l.frame = (l.frame + 1) % len(l.frames)
}

// Frame returns the current spinner frame
func (l *LoadingIndicator) Frame() string {
	return l.frames[l.frame]
}

func (l *LoadingIndicator) View() string {
	return l.style.Render(l.Frame() + " " + l.text)
}
