package screens

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/domain"
	"repohub/internal/rx"
	"repohub/internal/ui/commands"
	"repohub/internal/ui/viewmodels"
	"repohub/internal/ui/views"
	"repohub/internal/ui/widgets"
)

const (
	loadMoreLoadingDebounce = 150 * time.Millisecond
	nearEndDebounce         = 100 * time.Millisecond
)

// RepositoriesViewModel is what the list screen needs from its view-model
type RepositoriesViewModel interface {
	Items() *rx.List[domain.Repository]
	IsEmpty() rx.Observable[bool]
	SetSearchText(text string)
	Load() commands.Action
	LoadMore() commands.Action
	ItemSelected() rx.Observable[domain.Repository]
	SelectItem(repo domain.Repository)
	ShowOwner() bool
}

// RepositoryScreenFactory builds the screen pushed when a row is opened
type RepositoryScreenFactory func(owner, name string) (Screen, error)

// RepositoriesScreen binds a repository list view-model to a search bar, a
// paginated table, a loading footer and an empty placeholder.
type RepositoriesScreen struct {
	title     string
	vm        RepositoriesViewModel
	scheduler rx.Scheduler
	nav       Navigator
	openRepo  RepositoryScreenFactory

	search  *widgets.SearchBar
	source  *widgets.TableSource[domain.Repository]
	table   *widgets.TableView[domain.Repository]
	loading *widgets.LoadingIndicator
	empty   *widgets.EmptyListView
	keys    repositoriesKeyMap

	bag       *rx.Bag
	appearing *rx.Subject[rx.Unit]
	firstLoad rx.Disposable
}

type repositoriesKeyMap struct {
	Search key.Binding
	Back   key.Binding
}

// ListTitle returns the screen title for a list kind
func ListTitle(kind domain.ListKind) string {
	switch kind {
	case domain.ListStarred:
		return "Starred"
	case domain.ListWatched:
		return "Watched"
	case domain.ListForks:
		return "Forks"
	default:
		return "Repositories"
	}
}

// NewRepositoriesScreen creates an inactive list screen over vm
func NewRepositoriesScreen(title string, vm RepositoriesViewModel, env Env, openRepo RepositoryScreenFactory) *RepositoriesScreen {
	styles := env.styles()
	renderer := views.NewRepositoryRenderer(styles, vm.ShowOwner(), env.UI.ShowDescriptions)

	s := &RepositoriesScreen{
		title:     title,
		vm:        vm,
		scheduler: env.ViewModels.Scheduler,
		openRepo:  openRepo,
		search:    widgets.NewSearchBar("Search repositories"),
		loading:   widgets.NewLoadingIndicator("Loading..."),
		empty:     widgets.NewEmptyListView("No repositories", "There are no repositories to show."),
		keys: repositoriesKeyMap{
			Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
	}
	s.source = widgets.NewTableSource(vm.Items(), env.UI.NearEndThreshold)
	s.table = widgets.NewTableView(s.source, func(repo domain.Repository, selected bool, width int) string {
		return renderer.RenderRepository(repo, selected, width, s.search.Value())
	}, renderer.RowLines())
	s.table.SetHeader(s.search)
	s.table.SetSeparatorStyle(widgets.SeparatorSingleLine)

	s.appearing = rx.NewSubject[rx.Unit]()
	s.firstLoad = rx.Take[rx.Unit](s.appearing, 1).Subscribe(func(rx.Unit) {
		s.vm.Load().Execute()
	})
	return s
}

// NewListScreen builds a list screen for source backed by a live view-model
func NewListScreen(env Env, source domain.ListSource) (*RepositoriesScreen, error) {
	vm, err := viewmodels.NewRepositoriesViewModel(env.ViewModels, source)
	if err != nil {
		return nil, err
	}
	return NewRepositoriesScreen(ListTitle(source.Kind), vm, env, func(owner, name string) (Screen, error) {
		return NewRepositoryScreen(env, owner, name)
	}), nil
}

// NewOwnRepositories shows the authenticated user's repositories
func NewOwnRepositories(env Env) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListOwn})
}

// NewUserRepositories shows a user's repositories
func NewUserRepositories(env Env, username string) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListUser, Owner: username})
}

// NewStarredRepositories shows the authenticated user's starred repositories
func NewStarredRepositories(env Env) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListStarred})
}

// NewWatchedRepositories shows the repositories the authenticated user watches
func NewWatchedRepositories(env Env) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListWatched})
}

// NewForkedRepositories shows the forks of owner/repo
func NewForkedRepositories(env Env, owner, repo string) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListForks, Owner: owner, Repo: repo})
}

// NewOrganizationRepositories shows an organization's repositories
func NewOrganizationRepositories(env Env, org string) (*RepositoriesScreen, error) {
	return NewListScreen(env, domain.ListSource{Kind: domain.ListOrganization, Owner: org})
}

func (s *RepositoriesScreen) Title() string { return s.title }

func (s *RepositoriesScreen) SetNavigator(nav Navigator) { s.nav = nav }

// Active reports whether the screen's bindings are live
func (s *RepositoriesScreen) Active() bool { return s.bag != nil }

// Appear binds every route. Only the first appearance starts the initial load.
func (s *RepositoriesScreen) Appear() tea.Cmd {
	if s.bag != nil {
		return nil
	}
	bag := rx.NewBag()
	s.bag = bag

	load, loadMore := s.vm.Load(), s.vm.LoadMore()

	bag.Add(s.search.Changed().Subscribe(s.vm.SetSearchText))

	bag.Add(rx.Skip(s.vm.IsEmpty(), 1).Subscribe(s.setEmpty))

	bag.Add(s.source.Selected().Subscribe(s.vm.SelectItem))
	bag.Add(s.vm.ItemSelected().Subscribe(s.showRepository))

	loadMoreRunning := rx.Debounce(rx.Switch(rx.Map(load.Completed(), func(rx.Unit) rx.Observable[bool] {
		return loadMore.IsExecuting()
	})), loadMoreLoadingDebounce, s.scheduler)
	bag.Add(rx.Merge(load.IsExecuting(), loadMoreRunning).Subscribe(s.setLoading))

	bag.Add(commands.Invoke(s.source.RequestMore(), loadMore))

	lastItemVisible := func(rx.Unit) bool { return s.source.LastItemVisible() }
	itemsChanged := rx.Switch(rx.Map(load.Completed(), func(rx.Unit) rx.Observable[rx.Unit] {
		return rx.Debounce(s.vm.Items().Changed(), nearEndDebounce, s.scheduler)
	}))
	bag.Add(commands.Invoke(rx.Filter(itemsChanged, lastItemVisible), loadMore))
	pageFinished := rx.Debounce(rx.Merge(load.Completed(), loadMore.Completed()), nearEndDebounce, s.scheduler)
	bag.Add(commands.Invoke(rx.Filter(pageFinished, lastItemVisible), loadMore))

	s.appearing.Next(rx.Unit{})
	return nil
}

// Disappear drops every route at once, including pending debounced values
func (s *RepositoriesScreen) Disappear() {
	if s.bag == nil {
		return
	}
	s.bag.Dispose()
	s.bag = nil
	s.search.Blur()
}

// Close cancels in-flight fetches once the screen has left the stack
func (s *RepositoriesScreen) Close() {
	s.Disappear()
	s.firstLoad.Dispose()
	s.vm.Load().Cancel()
	s.vm.LoadMore().Cancel()
}

func (s *RepositoriesScreen) setEmpty(empty bool) {
	if empty {
		s.search.Blur()
		s.table.SetHeader(nil)
		s.table.SetSeparatorStyle(widgets.SeparatorNone)
		s.table.SetBackground(s.empty)
		return
	}
	s.table.SetHeader(s.search)
	s.table.SetSeparatorStyle(widgets.SeparatorSingleLine)
	s.table.SetBackground(nil)
}

func (s *RepositoriesScreen) setLoading(loading bool) {
	if loading {
		s.table.SetFooter(s.loading)
		s.table.SetBackground(nil)
		return
	}
	s.table.SetFooter(nil)
}

func (s *RepositoriesScreen) showRepository(repo domain.Repository) {
	if s.nav == nil || s.openRepo == nil {
		return
	}
	screen, err := s.openRepo(repo.Owner, repo.Name)
	if err != nil {
		log.Printf("RepositoriesScreen: cannot open %s: %v", repo.FullName(), err)
		return
	}
	s.nav.Push(screen)
}

// Table exposes the rendered regions
func (s *RepositoriesScreen) Table() *widgets.TableView[domain.Repository] { return s.table }

// Search exposes the search bar
func (s *RepositoriesScreen) Search() *widgets.SearchBar { return s.search }

func (s *RepositoriesScreen) Capturing() bool { return s.search.Focused() }

func (s *RepositoriesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case widgets.TickMsg:
		s.loading.Tick()
		return nil
	case tea.KeyMsg:
		if s.search.Focused() {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyEnter:
				s.search.Blur()
				return nil
			case tea.KeyUp, tea.KeyDown:
				s.source.HandleKey(msg)
				return nil
			}
			return s.search.Update(msg)
		}
		switch {
		case key.Matches(msg, s.keys.Search) && s.table.Header() != nil:
			return s.search.Focus()
		case key.Matches(msg, s.keys.Back):
			if s.search.Value() != "" {
				s.search.SetValue("")
				return nil
			}
			if s.nav != nil {
				s.nav.Pop()
			}
			return nil
		}
		s.source.HandleKey(msg)
	}
	return nil
}

func (s *RepositoriesScreen) View(width, height int) string {
	return s.table.View(width, height)
}

func (s *RepositoriesScreen) ShortHelp() []key.Binding {
	lk := s.source.Keys()
	return []key.Binding{lk.Up, lk.Down, lk.Select, s.keys.Search, s.keys.Back}
}
