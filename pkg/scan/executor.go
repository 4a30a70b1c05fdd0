package scan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/observability"
)

// Searcher finds candidate repositories for a single search term.
type Searcher interface {
	Search(ctx context.Context, term string, opts github.SearchOptions) ([]github.RepoSummary, error)
}

// Enricher turns a raw search hit into a fully scored record. A nil
// return means the candidate was not usable and should be skipped.
type Enricher interface {
	Enrich(ctx context.Context, raw github.RepoSummary, categoryID string) *RepoRecord
}

// Executor runs the bounded scan of one category: every search term in
// configured order, results deduplicated by repository ID, capped per
// search and per category, with a wall-clock timeout checked between
// units of work.
type Executor struct {
	searcher Searcher
	enricher Enricher
	limits   config.Limits
	log      *log.Logger

	// now is swappable for tests.
	now func() time.Time
	// sleep is swappable for tests; defaults to a context-aware wait.
	sleep func(ctx context.Context, d time.Duration)
}

// NewExecutor builds an Executor over the given search and enrichment
// implementations.
func NewExecutor(searcher Searcher, enricher Enricher, limits config.Limits, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{
		searcher: searcher,
		enricher: enricher,
		limits:   limits,
		log:      logger,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// ScanCategory executes the category's search terms in order and
// returns the enriched records it accumulated. It never returns an
// error: individual term or enrichment failures are logged and
// skipped, the category timeout and context cancellation simply stop
// further work, and whatever was gathered so far is returned.
func (e *Executor) ScanCategory(ctx context.Context, cat config.Category) []RepoRecord {
	started := e.now()
	deadline := started.Add(e.limits.CategoryTimeout.Std())
	hooks := observability.Scan()
	hooks.OnCategoryStart(ctx, cat.ID)

	pushedSince := started.AddDate(0, 0, -e.limits.PushedWithinDays)
	opts := github.SearchOptions{
		MinStars:    e.limits.MinStars,
		PushedSince: pushedSince,
		PerPage:     e.limits.MaxPerSearch,
	}

	var records []RepoRecord
	seen := make(map[string]bool)

	for i, term := range cat.SearchTerms {
		if len(records) >= e.limits.MaxPerCategory {
			break
		}
		if e.expired(ctx, deadline) {
			e.log.Warn("category scan timed out", "category", cat.ID, "term", term)
			break
		}
		if i > 0 {
			e.sleep(ctx, e.limits.RequestDelay.Std())
		}

		hits, err := e.searcher.Search(ctx, term, opts)
		hooks.OnSearchTerm(ctx, cat.ID, term, len(hits), err)
		if err != nil {
			e.log.Warn("search failed, skipping term", "category", cat.ID, "term", term, "error", err)
			continue
		}

		taken := 0
		for _, hit := range hits {
			if taken >= e.limits.MaxPerSearch || len(records) >= e.limits.MaxPerCategory {
				break
			}
			if e.expired(ctx, deadline) {
				e.log.Warn("category scan timed out", "category", cat.ID, "term", term)
				break
			}
			if seen[hit.ID()] {
				continue
			}
			seen[hit.ID()] = true

			enrichStart := e.now()
			rec := e.enricher.Enrich(ctx, hit, cat.ID)
			if rec == nil {
				hooks.OnEnrich(ctx, hit.ID(), 0, e.now().Sub(enrichStart), nil)
				continue
			}
			hooks.OnEnrich(ctx, rec.ID(), rec.Score.Total, e.now().Sub(enrichStart), nil)
			records = append(records, *rec)
			taken++
		}
	}

	hooks.OnCategoryComplete(ctx, cat.ID, len(records), e.now().Sub(started), ctx.Err())
	return records
}

func (e *Executor) expired(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return true
	}
	return !e.now().Before(deadline)
}
