package viewmodels

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"repohub/internal/domain"
	"repohub/internal/rx"
)

type fakeService struct {
	mu        sync.Mutex
	pages     map[int]domain.Page
	listErr   error
	requests  []int
	detail    *domain.RepositoryDetail
	readme    string
	readmeErr error
}

func (f *fakeService) ListRepositories(ctx context.Context, source domain.ListSource, page, perPage int) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, page)
	if f.listErr != nil {
		return domain.Page{}, f.listErr
	}
	p, ok := f.pages[page]
	if !ok {
		return domain.Page{}, fmt.Errorf("unexpected page %d", page)
	}
	return p, nil
}

func (f *fakeService) GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryDetail, error) {
	if f.detail == nil {
		return nil, errors.New("not found")
	}
	return f.detail, nil
}

func (f *fakeService) GetReadme(ctx context.Context, owner, name string) (string, error) {
	return f.readme, f.readmeErr
}

func (f *fakeService) pageRequests() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.requests...)
}

func repos(names ...string) []domain.Repository {
	out := make([]domain.Repository, len(names))
	for i, n := range names {
		out[i] = domain.Repository{ID: int64(len(n)*100 + i), Owner: "alice", Name: n}
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
