package github

import (
	"fmt"
	"strings"
	"time"
)

// RepoSummary is the raw repository metadata returned by a search or a
// direct repository lookup. It is the input to enrichment and scoring.
type RepoSummary struct {
	Owner       string     `json:"owner"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Homepage    string     `json:"homepage,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	OpenIssues  int        `json:"open_issues"`
	Language    string     `json:"language,omitempty"`
	Topics      []string   `json:"topics,omitempty"`
	HasLicense  bool       `json:"has_license"`
	HasWiki     bool       `json:"has_wiki"`
	HasIssues   bool       `json:"has_issues"`
	Archived    bool       `json:"archived"`
	Fork        bool       `json:"fork"`
	CreatedAt   time.Time  `json:"created_at"`
	PushedAt    *time.Time `json:"pushed_at,omitempty"`
}

// ID returns the stable identifier for the repository ("owner/name").
func (r RepoSummary) ID() string {
	if r.FullName != "" {
		return r.FullName
	}
	return r.Owner + "/" + r.Name
}

// Release is a published release of a repository.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url,omitempty"`
}

// Commit is a single commit reference.
type Commit struct {
	SHA  string    `json:"sha"`
	Date time.Time `json:"date"`
}

// Contributor represents a repository contributor with their contribution count.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// SearchOptions bounds one repository search.
type SearchOptions struct {
	MinStars    int       // stars:>=N filter
	PushedSince time.Time // pushed:>=date filter; zero disables it
	PerPage     int       // result cap for this search
	Sort        string    // sort key (default "stars")
	Order       string    // sort order (default "desc")
}

// BuildQuery composes a search query for one term with the standard
// filters: minimum stars, recent push, no archived repos, no forks.
func BuildQuery(term string, opts SearchOptions) string {
	parts := []string{term}
	if opts.MinStars > 0 {
		parts = append(parts, fmt.Sprintf("stars:>=%d", opts.MinStars))
	}
	if !opts.PushedSince.IsZero() {
		parts = append(parts, "pushed:>="+opts.PushedSince.Format("2006-01-02"))
	}
	parts = append(parts, "archived:false", "fork:false")
	return strings.Join(parts, " ")
}

// --- API response structures ---

type searchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []repoItem `json:"items"`
}

type repoItem struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
	HTMLURL    string `json:"html_url"`
	Homepage   string `json:"homepage"`
	Stars      int    `json:"stargazers_count"`
	Forks      int    `json:"forks_count"`
	OpenIssues int    `json:"open_issues_count"`
	Language   string `json:"language"`
	License    *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
	Topics    []string   `json:"topics"`
	HasWiki   bool       `json:"has_wiki"`
	HasIssues bool       `json:"has_issues"`
	Archived  bool       `json:"archived"`
	Fork      bool       `json:"fork"`
	CreatedAt time.Time  `json:"created_at"`
	PushedAt  *time.Time `json:"pushed_at"`
}

func (it repoItem) toSummary() RepoSummary {
	return RepoSummary{
		Owner:       it.Owner.Login,
		Name:        it.Name,
		FullName:    it.FullName,
		Description: it.Description,
		URL:         it.HTMLURL,
		Homepage:    it.Homepage,
		Stars:       it.Stars,
		Forks:       it.Forks,
		OpenIssues:  it.OpenIssues,
		Language:    it.Language,
		Topics:      it.Topics,
		HasLicense:  it.License != nil && it.License.SPDXID != "",
		HasWiki:     it.HasWiki,
		HasIssues:   it.HasIssues,
		Archived:    it.Archived,
		Fork:        it.Fork,
		CreatedAt:   it.CreatedAt,
		PushedAt:    it.PushedAt,
	}
}

type releaseResponse struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}
