package viewmodels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repohub/internal/domain"
	"repohub/internal/rx"
)

func TestRepositoryViewModelLoadsDetailAndReadme(t *testing.T) {
	sched := rx.NewVirtualScheduler()
	svc := &fakeService{
		detail: &domain.RepositoryDetail{
			Repository: domain.Repository{Owner: "alice", Name: "repo1"},
			CloneURL:   "https://github.com/alice/repo1.git",
		},
		readme: "# repo1",
	}
	vm, err := NewRepositoryViewModel(Dependencies{Service: svc, Scheduler: sched}, "alice", "repo1")
	require.NoError(t, err)
	assert.Nil(t, vm.Current())

	require.True(t, vm.LoadCommand().Execute())
	waitFlushed(t, sched, func() bool { return vm.Current() != nil })

	assert.Equal(t, "https://github.com/alice/repo1.git", vm.Current().CloneURL)
	assert.Equal(t, "# repo1", vm.Readme())
	assert.Equal(t, "alice/repo1", vm.FullName())
}

func TestRepositoryViewModelToleratesMissingReadme(t *testing.T) {
	sched := rx.NewVirtualScheduler()
	svc := &fakeService{
		detail:    &domain.RepositoryDetail{Repository: domain.Repository{Owner: "alice", Name: "repo1"}},
		readmeErr: errors.New("forbidden"),
	}
	vm, err := NewRepositoryViewModel(Dependencies{Service: svc, Scheduler: sched}, "alice", "repo1")
	require.NoError(t, err)

	require.True(t, vm.LoadCommand().Execute())
	waitFlushed(t, sched, func() bool { return vm.Current() != nil })
	assert.Empty(t, vm.Readme())
}

func TestRepositoryViewModelReportsFailure(t *testing.T) {
	sched := rx.NewVirtualScheduler()
	vm, err := NewRepositoryViewModel(Dependencies{Service: &fakeService{}, Scheduler: sched}, "alice", "gone")
	require.NoError(t, err)

	var failed bool
	vm.Failed().Subscribe(func(v bool) { failed = v })

	require.True(t, vm.LoadCommand().Execute())
	waitFlushed(t, sched, func() bool { return failed })
	assert.Nil(t, vm.Current())
}

func TestRepositoryViewModelValidatesIdentifiers(t *testing.T) {
	deps := Dependencies{Service: &fakeService{}, Scheduler: rx.NewVirtualScheduler()}
	_, err := NewRepositoryViewModel(deps, "", "repo1")
	assert.Error(t, err)
}
