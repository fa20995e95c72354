package screens

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"repohub/internal/config"
	"repohub/internal/domain"
	"repohub/internal/rx"
	"repohub/internal/ui/commands"
	"repohub/internal/ui/viewmodels"
)

type fakeAction struct {
	executing  *rx.Value[bool]
	completed  *rx.Subject[rx.Unit]
	executions int
	cancels    int
}

func newFakeAction() *fakeAction {
	return &fakeAction{executing: rx.NewValue(false), completed: rx.NewSubject[rx.Unit]()}
}

func (a *fakeAction) Execute() bool                     { a.executions++; return true }
func (a *fakeAction) IsExecuting() rx.Observable[bool]  { return a.executing }
func (a *fakeAction) Completed() rx.Observable[rx.Unit] { return a.completed }
func (a *fakeAction) Cancel()                           { a.cancels++ }
func (a *fakeAction) complete()                         { a.completed.Next(rx.Unit{}) }

type fakeViewModel struct {
	items    *rx.List[domain.Repository]
	isEmpty  *rx.Value[bool]
	searches []string
	load     *fakeAction
	loadMore *fakeAction
	selected *rx.Subject[domain.Repository]
}

func newFakeViewModel() *fakeViewModel {
	return &fakeViewModel{
		items:    rx.NewList[domain.Repository](),
		isEmpty:  rx.NewValue(false),
		load:     newFakeAction(),
		loadMore: newFakeAction(),
		selected: rx.NewSubject[domain.Repository](),
	}
}

func (f *fakeViewModel) Items() *rx.List[domain.Repository]             { return f.items }
func (f *fakeViewModel) IsEmpty() rx.Observable[bool]                   { return f.isEmpty }
func (f *fakeViewModel) SetSearchText(text string)                      { f.searches = append(f.searches, text) }
func (f *fakeViewModel) Load() commands.Action                          { return f.load }
func (f *fakeViewModel) LoadMore() commands.Action                      { return f.loadMore }
func (f *fakeViewModel) ItemSelected() rx.Observable[domain.Repository] { return f.selected }
func (f *fakeViewModel) SelectItem(repo domain.Repository)              { f.selected.Next(repo) }
func (f *fakeViewModel) ShowOwner() bool                                { return false }

type fakeNavigator struct {
	pushed []Screen
	pops   int
}

func (n *fakeNavigator) Push(s Screen) { n.pushed = append(n.pushed, s) }
func (n *fakeNavigator) Pop()          { n.pops++ }

type fakeService struct {
	detail *domain.RepositoryDetail
	readme string
}

func (f *fakeService) ListRepositories(ctx context.Context, source domain.ListSource, page, perPage int) (domain.Page, error) {
	return domain.Page{}, nil
}

func (f *fakeService) GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryDetail, error) {
	if f.detail == nil {
		return nil, fmt.Errorf("%s/%s not found", owner, name)
	}
	return f.detail, nil
}

func (f *fakeService) GetReadme(ctx context.Context, owner, name string) (string, error) {
	return f.readme, nil
}

func testEnv(sched rx.Scheduler, svc *fakeService) Env {
	if svc == nil {
		svc = &fakeService{}
	}
	return Env{
		ViewModels: viewmodels.Dependencies{Service: svc, Scheduler: sched},
		UI:         config.UISettings{NearEndThreshold: 2},
	}
}

func namedRepos(n int) []domain.Repository {
	out := make([]domain.Repository, n)
	for i := range out {
		out[i] = domain.Repository{ID: int64(i + 1), Owner: "alice", Name: fmt.Sprintf("repo%d", i+1)}
	}
	return out
}

func waitFlushed(t *testing.T, sched *rx.VirtualScheduler, done func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		sched.Flush()
		return done()
	}, 2*time.Second, 5*time.Millisecond)
}
