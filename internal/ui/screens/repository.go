package screens

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/rx"
	"repohub/internal/ui/viewmodels"
	"repohub/internal/ui/views"
	"repohub/internal/ui/widgets"
)

type repositoryKeyMap struct {
	CopyURL key.Binding
	Readme  key.Binding
	Forks   key.Binding
	Owner   key.Binding
	Back    key.Binding
}

// RepositoryScreen shows one repository
type RepositoryScreen struct {
	env     Env
	vm      *viewmodels.RepositoryViewModel
	nav     Navigator
	styles  *views.Styles
	loading *widgets.LoadingIndicator
	keys    repositoryKeyMap

	bag       *rx.Bag
	appearing *rx.Subject[rx.Unit]
	firstLoad rx.Disposable
	failed    bool
	message   string
	now       func() time.Time
}

// NewRepositoryScreen creates an inactive detail screen for owner/name
func NewRepositoryScreen(env Env, owner, name string) (*RepositoryScreen, error) {
	vm, err := viewmodels.NewRepositoryViewModel(env.ViewModels, owner, name)
	if err != nil {
		return nil, err
	}
	s := &RepositoryScreen{
		env:     env,
		vm:      vm,
		styles:  env.styles(),
		loading: widgets.NewLoadingIndicator("Loading repository..."),
		now:     time.Now,
		keys: repositoryKeyMap{
			CopyURL: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy clone url")),
			Readme:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "readme")),
			Forks:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forks")),
			Owner:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "owner")),
			Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
		appearing: rx.NewSubject[rx.Unit](),
	}
	s.firstLoad = rx.Take[rx.Unit](s.appearing, 1).Subscribe(func(rx.Unit) {
		s.vm.LoadCommand().Execute()
	})
	return s, nil
}

func (s *RepositoryScreen) Title() string { return s.vm.FullName() }

func (s *RepositoryScreen) SetNavigator(nav Navigator) { s.nav = nav }

func (s *RepositoryScreen) Capturing() bool { return false }

// ViewModel returns the screen's view-model
func (s *RepositoryScreen) ViewModel() *viewmodels.RepositoryViewModel { return s.vm }

// Appear loads the repository on the first appearance
func (s *RepositoryScreen) Appear() tea.Cmd {
	if s.bag != nil {
		return nil
	}
	s.bag = rx.NewBag()
	s.bag.Add(s.vm.Failed().Subscribe(func(failed bool) { s.failed = failed }))
	s.appearing.Next(rx.Unit{})
	return nil
}

func (s *RepositoryScreen) Disappear() {
	if s.bag == nil {
		return
	}
	s.bag.Dispose()
	s.bag = nil
}

// Close cancels the detail fetch if it is still running
func (s *RepositoryScreen) Close() {
	s.Disappear()
	s.firstLoad.Dispose()
	s.vm.LoadCommand().Cancel()
}

func (s *RepositoryScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case widgets.TickMsg:
		s.loading.Tick()
	case widgets.PagerClosedMsg:
		if msg.Err != nil {
			s.message = fmt.Sprintf("Pager failed: %v", msg.Err)
		}
	case tea.KeyMsg:
		s.message = ""
		return s.handleKey(msg)
	}
	return nil
}

func (s *RepositoryScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Back):
		if s.nav != nil {
			s.nav.Pop()
		}
	case key.Matches(msg, s.keys.Owner):
		s.push(NewUserRepositories(s.env, s.vm.Owner()))
	case key.Matches(msg, s.keys.Forks):
		s.push(NewForkedRepositories(s.env, s.vm.Owner(), s.vm.Name()))
	case key.Matches(msg, s.keys.CopyURL):
		detail := s.vm.Current()
		if detail == nil || detail.CloneURL == "" {
			return nil
		}
		if err := s.env.copy(detail.CloneURL); err != nil {
			log.Printf("RepositoryScreen: clipboard: %v", err)
			s.message = fmt.Sprintf("Copy failed: %v", err)
			return nil
		}
		s.message = "Copied " + detail.CloneURL
	case key.Matches(msg, s.keys.Readme):
		if s.vm.Current() == nil {
			return nil
		}
		if s.vm.Readme() == "" {
			s.message = "This repository has no README"
			return nil
		}
		return widgets.Pager(s.vm.FullName()+" README", s.vm.Readme())
	}
	return nil
}

func (s *RepositoryScreen) push(screen *RepositoriesScreen, err error) {
	if err != nil {
		s.message = err.Error()
		return
	}
	if s.nav != nil {
		s.nav.Push(screen)
	}
}

// Message returns the last action feedback
func (s *RepositoryScreen) Message() string { return s.message }

func (s *RepositoryScreen) View(width, height int) string {
	detail := s.vm.Current()
	var body string
	switch {
	case detail != nil:
		body = views.RenderDetail(s.styles, detail, s.vm.Readme(), width, s.now())
	case s.failed:
		body = s.styles.StatusError.Render("Could not load " + s.vm.FullName())
	default:
		body = s.loading.View()
	}
	if s.message != "" {
		body += "\n\n" + s.styles.Status.Render(s.message)
	}
	return body
}

func (s *RepositoryScreen) ShortHelp() []key.Binding {
	return []key.Binding{s.keys.CopyURL, s.keys.Readme, s.keys.Forks, s.keys.Owner, s.keys.Back}
}

var _ Screen = (*RepositoryScreen)(nil)
var _ Screen = (*RepositoriesScreen)(nil)
var _ Closer = (*RepositoryScreen)(nil)
var _ Closer = (*RepositoriesScreen)(nil)
