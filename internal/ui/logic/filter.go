package logic

import (
	"strings"

	"repohub/internal/domain"
)

// SearchFilter matches repositories against a search query.
//
// A plain query is a case-insensitive substring match over name, owner,
// description and language. "lang:<x>" matches the language only and
// "is:<flag>" matches fork, private or source.
type SearchFilter struct {
	query string
}

// NewSearchFilter creates a filter for query
func NewSearchFilter(query string) *SearchFilter {
	return &SearchFilter{query: strings.ToLower(strings.TrimSpace(query))}
}

// Empty reports whether the filter matches everything
func (sf *SearchFilter) Empty() bool {
	return sf.query == ""
}

// Matches checks if a repo matches the filter query
func (sf *SearchFilter) Matches(repo domain.Repository) bool {
	if sf.query == "" {
		return true
	}

	if lang, ok := strings.CutPrefix(sf.query, "lang:"); ok {
		return strings.EqualFold(repo.Language, lang)
	}
	if flag, ok := strings.CutPrefix(sf.query, "is:"); ok {
		return sf.matchesFlag(repo, flag)
	}

	return strings.Contains(strings.ToLower(repo.Name), sf.query) ||
		strings.Contains(strings.ToLower(repo.Owner), sf.query) ||
		strings.Contains(strings.ToLower(repo.Description), sf.query) ||
		strings.Contains(strings.ToLower(repo.Language), sf.query)
}

func (sf *SearchFilter) matchesFlag(repo domain.Repository, flag string) bool {
	switch flag {
	case "fork":
		return repo.Fork
	case "source":
		return !repo.Fork
	case "private":
		return repo.Private
	case "public":
		return !repo.Private
	default:
		return false
	}
}

// Apply returns the matching repositories in their original order
func (sf *SearchFilter) Apply(repos []domain.Repository) []domain.Repository {
	if sf.Empty() {
		return repos
	}
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if sf.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
