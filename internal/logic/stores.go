package logic

import (
	"sync"

	"repohub/internal/domain"
)

// MemoryRepositoryStore is an in-memory implementation of RepositoryStore.
// Repositories already present (by ID) are skipped on Append, which keeps
// lists stable when a page boundary shifts between requests.
type MemoryRepositoryStore struct {
	mu    sync.RWMutex
	repos []domain.Repository
	seen  map[int64]struct{}
}

// NewMemoryRepositoryStore creates a new memory-based repository store
func NewMemoryRepositoryStore() *MemoryRepositoryStore {
	return &MemoryRepositoryStore{
		seen: make(map[int64]struct{}),
	}
}

// Reset replaces the contents
func (s *MemoryRepositoryStore) Reset(repos []domain.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos = nil
	s.seen = make(map[int64]struct{}, len(repos))
	s.appendLocked(repos)
}

// Append adds repos to the end and returns how many were new
func (s *MemoryRepositoryStore) Append(repos []domain.Repository) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(repos)
}

func (s *MemoryRepositoryStore) appendLocked(repos []domain.Repository) int {
	added := 0
	for _, r := range repos {
		if r.ID != 0 {
			if _, dup := s.seen[r.ID]; dup {
				continue
			}
			s.seen[r.ID] = struct{}{}
		}
		s.repos = append(s.repos, r)
		added++
	}
	return added
}

// All returns a copy of every stored repository
func (s *MemoryRepositoryStore) All() []domain.Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]domain.Repository, len(s.repos))
	copy(result, s.repos)
	return result
}

func (s *MemoryRepositoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.repos)
}

func (s *MemoryRepositoryStore) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[id]
	return ok
}
