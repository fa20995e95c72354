package screens

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/config"
	"repohub/internal/ui/viewmodels"
	"repohub/internal/ui/views"
)

// Screen is one entry on the navigation stack.
//
// Appear is called when the screen becomes the top of the stack and
// Disappear when another screen covers it or it is popped. Update and View
// are only called while the screen is on top.
type Screen interface {
	Title() string
	SetNavigator(nav Navigator)
	Appear() tea.Cmd
	Disappear()
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	// Capturing reports whether keys go to a text input
	Capturing() bool
	ShortHelp() []key.Binding
}

// Closer is implemented by screens that own in-flight work. The navigation
// host calls Close once the screen leaves the stack for good.
type Closer interface {
	Close()
}

// Navigator is the navigation host a screen pushes to
type Navigator interface {
	Push(screen Screen)
	Pop()
}

// Env is what screens need to build view-models and child screens
type Env struct {
	ViewModels viewmodels.Dependencies
	UI         config.UISettings
	Styles     *views.Styles
	Clipboard  func(string) error
}

func (e Env) styles() *views.Styles {
	if e.Styles == nil {
		return views.NewStyles()
	}
	return e.Styles
}

func (e Env) copy(text string) error {
	if e.Clipboard != nil {
		return e.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}
