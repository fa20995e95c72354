package widgets

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerClosedMsg is delivered after the pager exits
type PagerClosedMsg struct {
	Title string
	Err   error
}

// pagerCommand runs ov in place of the Bubble Tea renderer
type pagerCommand struct {
	title   string
	content string
}

func (p *pagerCommand) SetStdin(io.Reader)  {}
func (p *pagerCommand) SetStdout(io.Writer) {}
func (p *pagerCommand) SetStderr(io.Writer) {}

func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Leave nothing behind on our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)
	root.Doc.FileName = p.title

	return root.Run()
}

// Pager shows content in the ov pager. The terminal is released while it
// runs and a PagerClosedMsg follows.
func Pager(title, content string) tea.Cmd {
	return tea.Exec(&pagerCommand{title: title, content: content}, func(err error) tea.Msg {
		return PagerClosedMsg{Title: title, Err: err}
	})
}
