package viewmodels

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"repohub/internal/domain"
	"repohub/internal/eventbus"
	"repohub/internal/github"
	"repohub/internal/logic"
	"repohub/internal/rx"
	"repohub/internal/ui/commands"
	uilogic "repohub/internal/ui/logic"
)

const defaultPerPage = 30

// Dependencies are shared by every view-model
type Dependencies struct {
	Service   github.RepositoryService
	Scheduler rx.Scheduler
	Bus       eventbus.EventBus // optional
	Context   context.Context   // parent of every fetch, optional
	PerPage   int
}

func (d Dependencies) perPage() int {
	if d.PerPage <= 0 {
		return defaultPerPage
	}
	return d.PerPage
}

func (d Dependencies) commandOptions() []commands.Option {
	if d.Context == nil {
		return nil
	}
	return []commands.Option{commands.WithContext(d.Context)}
}

func (d Dependencies) publish(event eventbus.DomainEvent) {
	if d.Bus != nil {
		d.Bus.Publish(event)
	}
}

// PageResult is one fetched page together with its page number
type PageResult struct {
	Number int
	domain.Page
}

// RepositoriesViewModel exposes one paginated, searchable repository list.
// Everything except the fetches themselves runs on the scheduler's loop.
type RepositoriesViewModel struct {
	deps   Dependencies
	source domain.ListSource

	store  logic.RepositoryStore
	items  *rx.List[domain.Repository]
	filter *uilogic.SearchFilter

	isEmpty  *rx.Value[bool]
	nextPage atomic.Int64

	load     *commands.Command[PageResult]
	loadMore *commands.Command[PageResult]

	itemSelected *rx.Subject[domain.Repository]
}

// NewRepositoriesViewModel creates a view-model for source
func NewRepositoriesViewModel(deps Dependencies, source domain.ListSource) (*RepositoriesViewModel, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if deps.Service == nil || deps.Scheduler == nil {
		return nil, fmt.Errorf("repositories view-model requires a service and a scheduler")
	}

	vm := &RepositoriesViewModel{
		deps:         deps,
		source:       source,
		store:        logic.NewMemoryRepositoryStore(),
		items:        rx.NewList[domain.Repository](),
		filter:       uilogic.NewSearchFilter(""),
		isEmpty:      rx.NewValue(false),
		itemSelected: rx.NewSubject[domain.Repository](),
	}

	vm.load = commands.New("load "+source.String(), deps.Scheduler, func(ctx context.Context) (PageResult, error) {
		return vm.fetch(ctx, 1)
	}, deps.commandOptions()...)

	vm.loadMore = commands.New("loadMore "+source.String(), deps.Scheduler, func(ctx context.Context) (PageResult, error) {
		return vm.fetch(ctx, int(vm.nextPage.Load()))
	}, append(deps.commandOptions(), commands.WithCanExecute(vm.canLoadMore))...)

	// Subscribed before any consumer so the store is current when
	// consumers see a completion.
	vm.load.Results().Subscribe(vm.applyFirstPage)
	vm.loadMore.Results().Subscribe(vm.applyNextPage)
	vm.load.Errors().Subscribe(vm.reportError)
	vm.loadMore.Errors().Subscribe(vm.reportError)

	return vm, nil
}

// NewOwnRepositories lists the authenticated user's repositories
func NewOwnRepositories(deps Dependencies) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListOwn})
}

// NewUserRepositories lists a user's public repositories
func NewUserRepositories(deps Dependencies, username string) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListUser, Owner: username})
}

// NewStarredRepositories lists repositories the authenticated user starred
func NewStarredRepositories(deps Dependencies) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListStarred})
}

// NewWatchedRepositories lists repositories the authenticated user watches
func NewWatchedRepositories(deps Dependencies) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListWatched})
}

// NewForkedRepositories lists the forks of owner/repo
func NewForkedRepositories(deps Dependencies, owner, repo string) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListForks, Owner: owner, Repo: repo})
}

// NewOrganizationRepositories lists an organization's repositories
func NewOrganizationRepositories(deps Dependencies, org string) (*RepositoriesViewModel, error) {
	return NewRepositoriesViewModel(deps, domain.ListSource{Kind: domain.ListOrganization, Owner: org})
}

func (vm *RepositoriesViewModel) fetch(ctx context.Context, page int) (PageResult, error) {
	p, err := vm.deps.Service.ListRepositories(ctx, vm.source, page, vm.deps.perPage())
	if err != nil {
		return PageResult{}, err
	}
	return PageResult{Number: page, Page: p}, nil
}

func (vm *RepositoriesViewModel) canLoadMore() bool {
	return vm.nextPage.Load() > 0 && !vm.load.Executing()
}

func (vm *RepositoriesViewModel) applyFirstPage(r PageResult) {
	vm.store.Reset(r.Repositories)
	vm.nextPage.Store(int64(r.NextPage))
	vm.items.Reset(vm.filter.Apply(vm.store.All()))
	vm.isEmpty.Set(vm.store.Len() == 0)
	vm.announce(r)
}

func (vm *RepositoriesViewModel) applyNextPage(r PageResult) {
	before := vm.store.Len()
	vm.store.Append(r.Repositories)
	vm.nextPage.Store(int64(r.NextPage))
	added := vm.store.All()[before:]
	vm.items.Append(vm.filter.Apply(added)...)
	vm.announce(r)
}

func (vm *RepositoriesViewModel) announce(r PageResult) {
	log.Printf("RepositoriesViewModel: %s page %d loaded (%d repositories, more=%t)",
		vm.source, r.Number, len(r.Repositories), r.HasMore())
	vm.deps.publish(eventbus.RepositoriesLoadedEvent{
		Source: vm.source,
		Page:   r.Number,
		Count:  len(r.Repositories),
		More:   r.HasMore(),
	})
}

func (vm *RepositoriesViewModel) reportError(err error) {
	log.Printf("RepositoriesViewModel: loading %s failed: %v", vm.source, err)
	vm.deps.publish(eventbus.ErrorEvent{
		Message: fmt.Sprintf("Failed to load %s repositories: %v", vm.source.Kind, err),
		Err:     err,
	})
}

// Source returns the list this view-model shows
func (vm *RepositoriesViewModel) Source() domain.ListSource {
	return vm.source
}

// ShowOwner reports whether rows should include the owner
func (vm *RepositoriesViewModel) ShowOwner() bool {
	switch vm.source.Kind {
	case domain.ListStarred, domain.ListWatched, domain.ListForks:
		return true
	default:
		return false
	}
}

// Items is the filtered view of every loaded repository
func (vm *RepositoriesViewModel) Items() *rx.List[domain.Repository] {
	return vm.items
}

// IsEmpty is true once a load finished without any repository
func (vm *RepositoriesViewModel) IsEmpty() rx.Observable[bool] {
	return vm.isEmpty
}

// SetSearchText re-filters the items
func (vm *RepositoriesViewModel) SetSearchText(text string) {
	vm.filter = uilogic.NewSearchFilter(text)
	vm.items.Reset(vm.filter.Apply(vm.store.All()))
}

// LoadCommand fetches the first page and replaces the list
func (vm *RepositoriesViewModel) LoadCommand() *commands.Command[PageResult] {
	return vm.load
}

// LoadMoreCommand fetches the next page and appends it
func (vm *RepositoriesViewModel) LoadMoreCommand() *commands.Command[PageResult] {
	return vm.loadMore
}

// Load is LoadCommand as an Action
func (vm *RepositoriesViewModel) Load() commands.Action {
	return vm.load
}

// LoadMore is LoadMoreCommand as an Action
func (vm *RepositoriesViewModel) LoadMore() commands.Action {
	return vm.loadMore
}

// HasMore reports whether another page exists
func (vm *RepositoriesViewModel) HasMore() bool {
	return vm.nextPage.Load() > 0
}

// LoadedCount returns how many repositories were loaded, ignoring the filter
func (vm *RepositoriesViewModel) LoadedCount() int {
	return vm.store.Len()
}

// ItemSelected emits every repository passed to SelectItem
func (vm *RepositoriesViewModel) ItemSelected() rx.Observable[domain.Repository] {
	return vm.itemSelected
}

// SelectItem reports that the user picked repo
func (vm *RepositoriesViewModel) SelectItem(repo domain.Repository) {
	vm.itemSelected.Next(repo)
}
