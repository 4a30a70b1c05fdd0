// Package enrich collects the auxiliary repository metadata that feeds
// scoring: README content, releases, recent commits, contributors, and
// probes for CI and contributing guides.
package enrich

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scoring"
)

// Fetcher is the subset of the GitHub client enrichment needs.
type Fetcher interface {
	GetReadme(ctx context.Context, owner, name string) (string, error)
	GetReleases(ctx context.Context, owner, name string) ([]github.Release, error)
	GetCommitsSince(ctx context.Context, owner, name string, since time.Time) ([]github.Commit, error)
	GetContributors(ctx context.Context, owner, name string) ([]github.Contributor, error)
	HasPath(ctx context.Context, owner, name, path string) (bool, error)
}

// ciPaths are probed in order; any hit marks the repository as having CI.
var ciPaths = []string{
	".github/workflows",
	".travis.yml",
	".circleci/config.yml",
	"Jenkinsfile",
	".gitlab-ci.yml",
	"azure-pipelines.yml",
}

// contributingPaths are the conventional locations of a contributing guide.
var contributingPaths = []string{
	"CONTRIBUTING.md",
	".github/CONTRIBUTING.md",
	"docs/CONTRIBUTING.md",
}

// recentCommitWindow bounds the commit activity lookup.
const recentCommitWindow = 30 * 24 * time.Hour

// maxConcurrentFetches bounds parallel metadata requests per repository.
const maxConcurrentFetches = 4

// Enricher fetches per-repository metadata and scores the result.
type Enricher struct {
	fetcher Fetcher
	log     *log.Logger

	now func() time.Time
}

// New returns an Enricher over the given fetcher.
func New(fetcher Fetcher, logger *log.Logger) *Enricher {
	if logger == nil {
		logger = log.Default()
	}
	return &Enricher{fetcher: fetcher, log: logger, now: time.Now}
}

// Enrich fetches the repository's auxiliary metadata concurrently and
// returns the fully scored record. Individual fetch failures degrade
// the record rather than dropping it: a repository whose README request
// failed still gets scored on what was retrieved. Returns nil only for
// candidates with no usable identity.
func (e *Enricher) Enrich(ctx context.Context, raw github.RepoSummary, categoryID string) *scan.RepoRecord {
	if raw.Owner == "" || raw.Name == "" {
		return nil
	}

	scannedAt := e.now().UTC()
	var (
		readme       string
		releases     []github.Release
		commits      []github.Commit
		contributors []github.Contributor
		hasCI        bool
		hasContrib   bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	g.Go(func() error {
		var err error
		if readme, err = e.fetcher.GetReadme(gctx, raw.Owner, raw.Name); err != nil {
			e.log.Debug("readme fetch failed", "repo", raw.FullName, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if releases, err = e.fetcher.GetReleases(gctx, raw.Owner, raw.Name); err != nil {
			e.log.Debug("releases fetch failed", "repo", raw.FullName, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		since := scannedAt.Add(-recentCommitWindow)
		var err error
		if commits, err = e.fetcher.GetCommitsSince(gctx, raw.Owner, raw.Name, since); err != nil {
			e.log.Debug("commits fetch failed", "repo", raw.FullName, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if contributors, err = e.fetcher.GetContributors(gctx, raw.Owner, raw.Name); err != nil {
			e.log.Debug("contributors fetch failed", "repo", raw.FullName, "error", err)
		}
		return nil
	})
	g.Go(func() error {
		hasCI = e.probe(gctx, raw, ciPaths)
		return nil
	})
	g.Go(func() error {
		hasContrib = e.probe(gctx, raw, contributingPaths)
		return nil
	})
	_ = g.Wait()

	extra := scan.ExtraData{
		RecentCommits:    len(commits),
		ReleaseCount:     len(releases),
		ContributorCount: len(contributors),
		HasCI:            hasCI,
		HasContributing:  hasContrib,
		ReadmeLength:     len(readme),
	}
	if len(releases) > 0 {
		extra.LastRelease = &scan.ReleaseInfo{
			TagName:     releases[0].TagName,
			PublishedAt: releases[0].PublishedAt,
			URL:         releases[0].URL,
		}
	}

	releaseTimes := make([]time.Time, len(releases))
	for i, rel := range releases {
		releaseTimes[i] = rel.PublishedAt
	}

	score := scoring.Score(scoring.Input{
		Stars:           raw.Stars,
		Forks:           raw.Forks,
		PushedAt:        raw.PushedAt,
		Topics:          raw.Topics,
		OpenIssues:      raw.OpenIssues,
		HasLicense:      raw.HasLicense,
		HasWiki:         raw.HasWiki,
		HasIssues:       raw.HasIssues,
		Archived:        raw.Archived,
		Readme:          readme,
		HasContributing: hasContrib,
		HasCI:           hasCI,
		Releases:        releaseTimes,
		Now:             scannedAt,
	})

	return &scan.RepoRecord{
		RepoSummary: raw,
		Category:    categoryID,
		Score:       score,
		Extra:       extra,
		ScannedAt:   scannedAt,
	}
}

// probe reports whether any of the candidate paths exists. Probe errors
// count as absence.
func (e *Enricher) probe(ctx context.Context, raw github.RepoSummary, paths []string) bool {
	for _, path := range paths {
		ok, err := e.fetcher.HasPath(ctx, raw.Owner, raw.Name, path)
		if err != nil {
			e.log.Debug("path probe failed", "repo", raw.FullName, "path", path, "error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
