package logic

import "repohub/internal/domain"

// RepositoryStore holds every repository loaded for one list, in load order
type RepositoryStore interface {
	Reset(repos []domain.Repository)
	Append(repos []domain.Repository) int
	All() []domain.Repository
	Len() int
	Contains(id int64) bool
}
