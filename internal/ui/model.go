package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/eventbus"
	"repohub/internal/ui/coordinator"
	"repohub/internal/ui/screens"
	"repohub/internal/ui/views"
	"repohub/internal/ui/widgets"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	scheduler *LoopScheduler
	nav       *coordinator.Coordinator
	root      screens.Screen
	styles    *views.Styles
	help      help.Model
	keys      keyMap
	helpText  *HelpRenderer

	width  int
	height int

	status      string
	statusError bool

	unsubscribe []func()
}

// NewModel creates a new UI model showing root. Domain events from bus are
// handed to the update loop through scheduler.
func NewModel(bus eventbus.EventBus, scheduler *LoopScheduler, root screens.Screen) *Model {
	m := &Model{
		bus:       bus,
		scheduler: scheduler,
		nav:       coordinator.NewCoordinator(bus),
		root:      root,
		styles:    views.NewStyles(),
		help:      help.New(),
		keys:      defaultKeyMap(),
		helpText:  NewHelpRenderer(),
		width:     defaultWidth,
		height:    defaultHeight,
	}

	if bus != nil {
		forward := func(e eventbus.DomainEvent) {
			scheduler.Post(func() { m.handleEvent(e) })
		}
		m.unsubscribe = append(m.unsubscribe,
			bus.Subscribe(eventbus.EventError, forward),
			bus.Subscribe(eventbus.EventRepositoriesLoaded, forward),
		)
	}
	return m
}

// Init pushes the root screen and starts the loop listeners
func (m *Model) Init() tea.Cmd {
	m.nav.Push(m.root)
	return tea.Batch(m.scheduler.Listen(), tick(), m.nav.TakeCmds())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case loopMsg:
		m.scheduler.Drain()
		cmds = append(cmds, m.scheduler.Listen())

	case tickMsg:
		cmds = append(cmds, m.forward(widgets.TickMsg{}), tick())

	case widgets.PagerClosedMsg:
		if msg.Err != nil {
			log.Printf("UI: pager %q failed: %v", msg.Title, msg.Err)
			m.setStatus(fmt.Sprintf("Pager failed: %v", msg.Err), true)
		}
		cmds = append(cmds, m.forward(msg))

	case tea.KeyMsg:
		m.status = ""
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, m.quit()
		}
		top := m.nav.Top()
		if top == nil || !top.Capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, m.quit()
			case key.Matches(msg, m.keys.Help):
				return m, widgets.Pager("Help", m.helpText.RenderHelpContentPlain())
			}
		}
		cmds = append(cmds, m.forward(msg))

	default:
		cmds = append(cmds, m.forward(msg))
	}

	cmds = append(cmds, m.nav.TakeCmds())
	return m, tea.Batch(cmds...)
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if top := m.nav.Top(); top != nil {
		return top.Update(msg)
	}
	return nil
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ErrorEvent:
		m.setStatus(ev.Message, true)
	case eventbus.RepositoriesLoadedEvent:
		if !m.statusError || m.status == "" {
			m.setStatus(fmt.Sprintf("Loaded %d repositories (page %d)", ev.Count, ev.Page), false)
		}
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// Navigator exposes the navigation stack
func (m *Model) Navigator() *coordinator.Coordinator {
	return m.nav
}

func (m *Model) quit() tea.Cmd {
	m.nav.Shutdown()
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	titles := m.nav.Titles()
	if n := len(titles); n > 0 {
		if n > 1 {
			b.WriteString(m.styles.Breadcrumb.Render(strings.Join(titles[:n-1], " › ") + " › "))
		}
		b.WriteString(m.styles.Title.Render(titles[n-1]))
	}
	b.WriteString("\n\n")

	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var bindings []key.Binding
	if top := m.nav.Top(); top != nil {
		b.WriteString(top.View(m.width, bodyHeight))
		bindings = top.ShortHelp()
	}
	b.WriteString("\n")

	switch {
	case m.status == "":
	case m.statusError:
		b.WriteString(m.styles.StatusError.Render(m.status))
	default:
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")

	bindings = append(bindings, m.keys.Help, m.keys.Quit)
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}
