// Package github wraps the GitHub REST API for repository discovery and
// metadata enrichment.
//
// All "not found" conditions on auxiliary data (missing README, no releases,
// empty repositories) surface as empty values rather than errors, so a
// partially populated repository still gets scored. Only the primary
// repository lookup reports [integrations.ErrNotFound].
package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/cache"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations"
)

// Client provides access to the GitHub API with caching and automatic retries.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower
// rate limits). Responses are cached in c for ttl.
func NewClient(token string, c cache.Cache, ttl time.Duration) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client:  integrations.NewClient(c, ttl, headers),
		baseURL: "https://api.github.com",
	}
}

// Search executes one bounded repository search for the given term.
// Results are capped at opts.PerPage and sorted by opts.Sort/opts.Order
// (stars descending by default).
func (c *Client) Search(ctx context.Context, term string, opts SearchOptions) ([]RepoSummary, error) {
	if opts.PerPage <= 0 {
		opts.PerPage = 20
	}
	if opts.Sort == "" {
		opts.Sort = "stars"
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}
	query := BuildQuery(term, opts)
	url := fmt.Sprintf("%s/search/repositories?q=%s&sort=%s&order=%s&per_page=%d",
		c.baseURL, integrations.URLEncode(query), opts.Sort, opts.Order, opts.PerPage)

	key := "github:search:" + cache.Hash([]byte(url))
	var resp searchResponse
	err := c.Cached(ctx, key, false, &resp, func() error {
		return c.Get(ctx, url, &resp)
	})
	if err != nil {
		return nil, err
	}

	repos := make([]RepoSummary, 0, len(resp.Items))
	for _, it := range resp.Items {
		repos = append(repos, it.toSummary())
	}
	return repos, nil
}

// GetRepository fetches the metadata of a single repository.
// Returns [integrations.ErrNotFound] if the owner/name pair doesn't resolve.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*RepoSummary, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)

	var it repoItem
	err := c.Cached(ctx, "github:repo:"+owner+"/"+name, false, &it, func() error {
		return c.Get(ctx, url, &it)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github repo %s/%s", err, owner, name)
		}
		return nil, err
	}
	s := it.toSummary()
	return &s, nil
}

// GetReadme fetches the repository README as raw text.
// Returns "" if the repository has no README.
func (c *Client) GetReadme(ctx context.Context, owner, name string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, name)
	text, err := c.GetText(ctx, url, map[string]string{"Accept": "application/vnd.github.v3.raw"})
	if errors.Is(err, integrations.ErrNotFound) {
		return "", nil
	}
	return text, err
}

// GetReleases fetches the most recent releases (up to 20).
// Returns an empty slice if the repository has none.
func (c *Client) GetReleases(ctx context.Context, owner, name string) ([]Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=20", c.baseURL, owner, name)

	var data []releaseResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	releases := make([]Release, 0, len(data))
	for _, r := range data {
		releases = append(releases, Release{
			TagName:     r.TagName,
			Name:        r.Name,
			PublishedAt: r.PublishedAt,
			URL:         r.HTMLURL,
		})
	}
	return releases, nil
}

// GetCommitsSince fetches commits newer than since (up to 100).
// Returns an empty slice for empty or missing repositories.
func (c *Client) GetCommitsSince(ctx context.Context, owner, name string, since time.Time) ([]Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits?since=%s&per_page=100",
		c.baseURL, owner, name, since.UTC().Format(time.RFC3339))

	var data []commitResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	commits := make([]Commit, 0, len(data))
	for _, cr := range data {
		commits = append(commits, Commit{SHA: cr.SHA, Date: cr.Commit.Author.Date})
	}
	return commits, nil
}

// GetContributors fetches the top contributors (up to 30), excluding bots.
// Returns an empty slice if the repository has none.
func (c *Client) GetContributors(ctx context.Context, owner, name string) ([]Contributor, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=30", c.baseURL, owner, name)

	var data []contributorResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var result []Contributor
	for _, cr := range data {
		if cr.Type != "Bot" {
			result = append(result, Contributor{
				Login:         cr.Login,
				Contributions: cr.Contributions,
			})
		}
	}
	return result, nil
}

// HasPath reports whether a file or directory exists at path in the
// repository's default branch.
func (c *Client) HasPath(ctx context.Context, owner, name, path string) (bool, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, name, path)

	var v any
	if err := c.Get(ctx, url, &v); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
