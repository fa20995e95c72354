package coordinator

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/eventbus"
	"repohub/internal/ui/screens"
)

// Coordinator owns the navigation stack. Only the top screen is active:
// pushing deactivates the previous top and popping re-activates it.
type Coordinator struct {
	bus     eventbus.EventBus
	stack   []screens.Screen
	pending []tea.Cmd
}

// NewCoordinator creates an empty navigation stack
func NewCoordinator(bus eventbus.EventBus) *Coordinator {
	return &Coordinator{bus: bus}
}

// Top returns the active screen or nil
func (c *Coordinator) Top() screens.Screen {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Depth returns the number of stacked screens
func (c *Coordinator) Depth() int {
	return len(c.stack)
}

// Titles returns every screen title from the bottom up
func (c *Coordinator) Titles() []string {
	titles := make([]string, len(c.stack))
	for i, s := range c.stack {
		titles[i] = s.Title()
	}
	return titles
}

// Push makes screen the active screen
func (c *Coordinator) Push(screen screens.Screen) {
	if top := c.Top(); top != nil {
		top.Disappear()
	}
	screen.SetNavigator(c)
	c.stack = append(c.stack, screen)
	log.Printf("Coordinator: pushed %q (depth %d)", screen.Title(), len(c.stack))

	c.queue(screen.Appear())
	if c.bus != nil {
		c.bus.Publish(eventbus.ScreenPushedEvent{Title: screen.Title(), Depth: len(c.stack)})
	}
}

// Pop removes and closes the active screen. The root screen is never popped.
func (c *Coordinator) Pop() {
	if len(c.stack) < 2 {
		return
	}
	top := c.Top()
	top.Disappear()
	closeScreen(top)
	c.stack = c.stack[:len(c.stack)-1]
	log.Printf("Coordinator: popped %q (depth %d)", top.Title(), len(c.stack))

	c.queue(c.Top().Appear())
}

// Shutdown deactivates the active screen and cancels the work of every
// stacked screen
func (c *Coordinator) Shutdown() {
	if top := c.Top(); top != nil {
		top.Disappear()
	}
	for i := len(c.stack) - 1; i >= 0; i-- {
		closeScreen(c.stack[i])
	}
}

func closeScreen(s screens.Screen) {
	if closer, ok := s.(screens.Closer); ok {
		closer.Close()
	}
}

// TakeCmds returns and clears the commands produced by Appear calls
func (c *Coordinator) TakeCmds() tea.Cmd {
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

func (c *Coordinator) queue(cmd tea.Cmd) {
	if cmd != nil {
		c.pending = append(c.pending, cmd)
	}
}
