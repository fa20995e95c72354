package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repohub/internal/eventbus"
	"repohub/internal/ui/screens"
	"repohub/internal/ui/widgets"
)

type recordingScreen struct {
	title     string
	capturing bool
	active    bool
	msgs      []tea.Msg
}

func (s *recordingScreen) Title() string                  { return s.title }
func (s *recordingScreen) SetNavigator(screens.Navigator) {}
func (s *recordingScreen) Appear() tea.Cmd                { s.active = true; return nil }
func (s *recordingScreen) Disappear()                     { s.active = false }
func (s *recordingScreen) Update(msg tea.Msg) tea.Cmd     { s.msgs = append(s.msgs, msg); return nil }
func (s *recordingScreen) View(int, int) string           { return "body of " + s.title }
func (s *recordingScreen) Capturing() bool                { return s.capturing }
func (s *recordingScreen) ShortHelp() []key.Binding       { return nil }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitActivatesRoot(t *testing.T) {
	root := &recordingScreen{title: "Repositories"}
	m := NewModel(nil, NewLoopScheduler(), root)

	require.NotNil(t, m.Init())
	assert.True(t, root.active)
	assert.Contains(t, m.View(), "Repositories")
	assert.Contains(t, m.View(), "body of Repositories")
}

func TestQuitKey(t *testing.T) {
	root := &recordingScreen{title: "Repositories"}
	m := NewModel(nil, NewLoopScheduler(), root)
	m.Init()

	_, cmd := m.Update(runes("q"))
	assert.True(t, isQuit(cmd))
	assert.False(t, root.active)
}

func TestCapturingScreenReceivesQuitKey(t *testing.T) {
	root := &recordingScreen{title: "Repositories", capturing: true}
	m := NewModel(nil, NewLoopScheduler(), root)
	m.Init()

	_, cmd := m.Update(runes("q"))
	assert.False(t, isQuit(cmd))
	require.Len(t, root.msgs, 1)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestTickIsForwardedAsWidgetTick(t *testing.T) {
	root := &recordingScreen{title: "Repositories"}
	m := NewModel(nil, NewLoopScheduler(), root)
	m.Init()

	m.Update(tickMsg(time.Now()))
	require.Len(t, root.msgs, 1)
	assert.IsType(t, widgets.TickMsg{}, root.msgs[0])
}

func TestErrorEventShowsUntilNextKey(t *testing.T) {
	root := &recordingScreen{title: "Repositories"}
	m := NewModel(nil, NewLoopScheduler(), root)
	m.Init()

	post := func(e eventbus.DomainEvent) {
		m.scheduler.Post(func() { m.handleEvent(e) })
		m.Update(loopMsg{})
	}

	post(eventbus.ErrorEvent{Message: "Failed to load", Err: errors.New("x")})
	assert.Contains(t, m.View(), "Failed to load")

	post(eventbus.RepositoriesLoadedEvent{Count: 3, Page: 1})
	assert.Equal(t, "Failed to load", m.Status(), "errors are not overwritten by progress")

	m.Update(runes("j"))
	assert.Empty(t, m.Status())
}

func TestBusEventsArriveThroughScheduler(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	sched := NewLoopScheduler()
	m := NewModel(bus, sched, &recordingScreen{title: "Repositories"})
	m.Init()

	bus.Publish(eventbus.ErrorEvent{Message: "rate limited"})
	require.Eventually(t, func() bool {
		m.Update(loopMsg{})
		return m.Status() == "rate limited"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBreadcrumbs(t *testing.T) {
	root := &recordingScreen{title: "Repositories"}
	m := NewModel(nil, NewLoopScheduler(), root)
	m.Init()

	m.Navigator().Push(&recordingScreen{title: "alice/repo1"})
	view := m.View()
	assert.Contains(t, view, "Repositories › ")
	assert.Contains(t, view, "body of alice/repo1")
	assert.False(t, root.active)
}

func TestHelpContent(t *testing.T) {
	content := NewHelpRenderer().RenderHelpContentPlain()
	assert.True(t, strings.Contains(content, "Copy clone URL"))
	assert.Contains(t, content, "lang:go")
}
