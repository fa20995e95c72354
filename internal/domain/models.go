package domain

import (
	"fmt"
	"strings"
	"time"
)

// Repository represents a GitHub repository as shown in a list
type Repository struct {
	ID          int64
	Owner       string
	Name        string
	Description string
	Language    string
	Private     bool
	Fork        bool
	Stars       int
	Forks       int
	UpdatedAt   time.Time
}

// FullName returns "owner/name"
func (r Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// RepositoryDetail holds everything the detail screen shows for a repository
type RepositoryDetail struct {
	Repository
	Homepage      string
	DefaultBranch string
	CloneURL      string
	HTMLURL       string
	Watchers      int
	OpenIssues    int
	Archived      bool
	Parent        string // "owner/name" of the fork parent, empty if not a fork
}

// ListKind selects which list of repositories a screen shows
type ListKind int

const (
	ListOwn ListKind = iota
	ListUser
	ListStarred
	ListWatched
	ListForks
	ListOrganization
)

func (k ListKind) String() string {
	switch k {
	case ListOwn:
		return "own"
	case ListUser:
		return "user"
	case ListStarred:
		return "starred"
	case ListWatched:
		return "watched"
	case ListForks:
		return "forks"
	case ListOrganization:
		return "organization"
	default:
		return "unknown"
	}
}

// ListSource is an immutable description of a repository list
type ListSource struct {
	Kind  ListKind
	Owner string // user, organization, or owner of the forked repository
	Repo  string // forked repository name (ListForks only)
}

// String returns a short human readable label used in logs
func (s ListSource) String() string {
	switch s.Kind {
	case ListUser, ListOrganization:
		return fmt.Sprintf("%s:%s", s.Kind, s.Owner)
	case ListForks:
		return fmt.Sprintf("%s:%s/%s", s.Kind, s.Owner, s.Repo)
	default:
		return s.Kind.String()
	}
}

// Page is one page of a paginated repository listing
type Page struct {
	Repositories []Repository
	NextPage     int // 0 when there are no more pages
}

// HasMore reports whether another page can be requested
func (p Page) HasMore() bool {
	return p.NextPage > 0
}

// Validate rejects sources whose identifiers are empty or whitespace
func (s ListSource) Validate() error {
	switch s.Kind {
	case ListOwn, ListStarred, ListWatched:
		return nil
	case ListUser, ListOrganization:
		if strings.TrimSpace(s.Owner) == "" {
			return fmt.Errorf("%s list requires a name", s.Kind)
		}
		return nil
	case ListForks:
		if strings.TrimSpace(s.Owner) == "" || strings.TrimSpace(s.Repo) == "" {
			return fmt.Errorf("forks list requires an owner and a repository name")
		}
		return nil
	default:
		return fmt.Errorf("unknown list kind %d", int(s.Kind))
	}
}
