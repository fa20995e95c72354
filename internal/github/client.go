// Package github lists and fetches repositories through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"repohub/internal/domain"
)

// RepositoryService is what the UI needs from GitHub
type RepositoryService interface {
	ListRepositories(ctx context.Context, source domain.ListSource, page, perPage int) (domain.Page, error)
	GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryDetail, error)
	GetReadme(ctx context.Context, owner, name string) (string, error)
}

// Client implements RepositoryService on top of go-github
type Client struct {
	client *github.Client
	retry  *RetryConfig
}

// ClientOption configures a Client
type ClientOption func(*Client) error

// WithBaseURL points the client at another API root (GitHub Enterprise or a test server)
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		if raw == "" {
			return nil
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", raw, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// WithRetryConfig overrides the retry policy
func WithRetryConfig(cfg *RetryConfig) ClientOption {
	return func(c *Client) error {
		c.retry = cfg
		return nil
	}
}

// NewClient creates a new GitHub API client. An empty token gives an
// unauthenticated client, which can only list public user, organization
// and fork lists.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	httpClient := http.DefaultClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	c := &Client{
		client: github.NewClient(httpClient),
		retry:  DefaultRetryConfig(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ListRepositories fetches one page of the list described by source
func (c *Client) ListRepositories(ctx context.Context, source domain.ListSource, page, perPage int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	lo := github.ListOptions{Page: page, PerPage: perPage}

	var (
		repos []*github.Repository
		resp  *github.Response
	)
	err := WithRetry(ctx, c.retry, func() error {
		var err error
		repos, resp, err = c.list(ctx, source, lo)
		return WrapError(err, source.String())
	})
	if err != nil {
		return domain.Page{}, err
	}

	out := domain.Page{Repositories: make([]domain.Repository, 0, len(repos))}
	for _, r := range repos {
		out.Repositories = append(out.Repositories, convertRepository(r))
	}
	if resp != nil {
		out.NextPage = resp.NextPage
	}
	return out, nil
}

func (c *Client) list(ctx context.Context, source domain.ListSource, lo github.ListOptions) ([]*github.Repository, *github.Response, error) {
	switch source.Kind {
	case domain.ListOwn:
		return c.client.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Sort:        "full_name",
			ListOptions: lo,
		})
	case domain.ListUser:
		return c.client.Repositories.ListByUser(ctx, source.Owner, &github.RepositoryListByUserOptions{
			Sort:        "full_name",
			ListOptions: lo,
		})
	case domain.ListStarred:
		starred, resp, err := c.client.Activity.ListStarred(ctx, "", &github.ActivityListStarredOptions{ListOptions: lo})
		if err != nil {
			return nil, resp, err
		}
		repos := make([]*github.Repository, 0, len(starred))
		for _, s := range starred {
			if s.Repository != nil {
				repos = append(repos, s.Repository)
			}
		}
		return repos, resp, nil
	case domain.ListWatched:
		return c.client.Activity.ListWatched(ctx, "", &lo)
	case domain.ListForks:
		return c.client.Repositories.ListForks(ctx, source.Owner, source.Repo, &github.RepositoryListForksOptions{ListOptions: lo})
	case domain.ListOrganization:
		return c.client.Repositories.ListByOrg(ctx, source.Owner, &github.RepositoryListByOrgOptions{ListOptions: lo})
	default:
		return nil, nil, fmt.Errorf("unsupported list kind %s", source.Kind)
	}
}

// GetRepository retrieves a repository by owner and name
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*domain.RepositoryDetail, error) {
	var repo *github.Repository
	err := WithRetry(ctx, c.retry, func() error {
		var err error
		repo, _, err = c.client.Repositories.Get(ctx, owner, name)
		return WrapError(err, fmt.Sprintf("repository %s/%s", owner, name))
	})
	if err != nil {
		return nil, err
	}
	return convertDetail(repo), nil
}

// GetReadme returns the decoded README of a repository, or "" if it has none
func (c *Client) GetReadme(ctx context.Context, owner, name string) (string, error) {
	var content *github.RepositoryContent
	err := WithRetry(ctx, c.retry, func() error {
		var err error
		content, _, err = c.client.Repositories.GetReadme(ctx, owner, name, nil)
		return WrapError(err, fmt.Sprintf("readme %s/%s", owner, name))
	})
	if err != nil {
		if IsType(err, ErrorTypeNotFound) {
			return "", nil
		}
		return "", err
	}
	text, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode readme: %w", err)
	}
	return text, nil
}

func convertRepository(r *github.Repository) domain.Repository {
	return domain.Repository{
		ID:          r.GetID(),
		Owner:       r.GetOwner().GetLogin(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Private:     r.GetPrivate(),
		Fork:        r.GetFork(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

func convertDetail(r *github.Repository) *domain.RepositoryDetail {
	return &domain.RepositoryDetail{
		Repository:    convertRepository(r),
		Homepage:      r.GetHomepage(),
		DefaultBranch: r.GetDefaultBranch(),
		CloneURL:      r.GetCloneURL(),
		HTMLURL:       r.GetHTMLURL(),
		Watchers:      r.GetSubscribersCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Archived:      r.GetArchived(),
		Parent:        r.GetParent().GetFullName(),
	}
}
