package scan

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
)

type fakeSearcher struct {
	results map[string][]github.RepoSummary
	errs    map[string]error
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, term string, _ github.SearchOptions) ([]github.RepoSummary, error) {
	f.calls = append(f.calls, term)
	if err := f.errs[term]; err != nil {
		return nil, err
	}
	return f.results[term], nil
}

type fakeEnricher struct {
	skip map[string]bool
}

func (f *fakeEnricher) Enrich(_ context.Context, raw github.RepoSummary, categoryID string) *RepoRecord {
	if f.skip[raw.ID()] {
		return nil
	}
	return &RepoRecord{RepoSummary: raw, Category: categoryID}
}

func summaries(names ...string) []github.RepoSummary {
	out := make([]github.RepoSummary, len(names))
	for i, name := range names {
		out[i] = github.RepoSummary{Owner: "octo", Name: name, FullName: "octo/" + name}
	}
	return out
}

func limits(maxPerSearch, maxPerCategory int) config.Limits {
	return config.Limits{
		MinStars:        100,
		MaxPerSearch:    maxPerSearch,
		MaxPerCategory:  maxPerCategory,
		CategoryTimeout: config.Duration(time.Minute),
	}
}

func newTestExecutor(s Searcher, e Enricher, lim config.Limits) *Executor {
	ex := NewExecutor(s, e, lim, nil)
	ex.sleep = func(context.Context, time.Duration) {}
	return ex
}

func TestScanCategoryStopsAtCategoryCap(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium":   summaries("a", "b", "c"),
		"playwright": summaries("d", "e", "f"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(20, 5))

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright"},
	})

	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	want := []string{"octo/a", "octo/b", "octo/c", "octo/d", "octo/e"}
	for i, rec := range records {
		if rec.ID() != want[i] {
			t.Errorf("record %d = %s, want %s", i, rec.ID(), want[i])
		}
		if rec.Category != "web-automation" {
			t.Errorf("record %d category = %s", i, rec.Category)
		}
	}
}

func TestScanCategorySkipsTermsAtCap(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium":   summaries("a", "b"),
		"playwright": summaries("c", "d"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(20, 2))

	ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright"},
	})

	if len(searcher.calls) != 1 {
		t.Errorf("executed %d searches, want 1 (cap reached after first term)", len(searcher.calls))
	}
}

func TestScanCategoryPerSearchCap(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium": summaries("a", "b", "c", "d"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(2, 50))

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium"},
	})

	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}

func TestScanCategoryDeduplicatesAcrossTerms(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium":   summaries("a", "b"),
		"playwright": summaries("b", "c"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(20, 50))

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright"},
	})

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 distinct", len(records))
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		if seen[rec.ID()] {
			t.Errorf("duplicate record %s", rec.ID())
		}
		seen[rec.ID()] = true
	}
}

func TestScanCategorySkipsFailedTerm(t *testing.T) {
	searcher := &fakeSearcher{
		results: map[string][]github.RepoSummary{"playwright": summaries("c")},
		errs:    map[string]error{"selenium": fmt.Errorf("boom")},
	}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(20, 50))

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright"},
	})

	if len(records) != 1 || records[0].ID() != "octo/c" {
		t.Errorf("got %v, want just octo/c", records)
	}
}

func TestScanCategorySkipsNilEnrichment(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium": summaries("a", "b"),
	}}
	enricher := &fakeEnricher{skip: map[string]bool{"octo/a": true}}
	ex := newTestExecutor(searcher, enricher, limits(20, 50))

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium"},
	})

	if len(records) != 1 || records[0].ID() != "octo/b" {
		t.Errorf("got %v, want just octo/b", records)
	}
}

func TestScanCategoryTimeoutStopsBetweenTerms(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium":   summaries("a"),
		"playwright": summaries("b"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, config.Limits{
		MaxPerSearch:    20,
		MaxPerCategory:  50,
		CategoryTimeout: config.Duration(time.Second),
	})
	clock := time.Now()
	ex.now = func() time.Time {
		// Each observation advances the clock past the timeout after
		// the first term finishes.
		clock = clock.Add(400 * time.Millisecond)
		return clock
	}

	records := ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright"},
	})

	if len(searcher.calls) != 1 {
		t.Errorf("executed %d searches, want 1 before timeout", len(searcher.calls))
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want the partial result kept", len(records))
	}
}

func TestScanCategoryCancelledContext(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium": summaries("a"),
	}}
	ex := newTestExecutor(searcher, &fakeEnricher{}, limits(20, 50))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := ex.ScanCategory(ctx, config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium"},
	})

	if len(searcher.calls) != 0 {
		t.Errorf("executed %d searches on cancelled context, want 0", len(searcher.calls))
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestScanCategoryDelaysBetweenSearches(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]github.RepoSummary{
		"selenium":   summaries("a"),
		"playwright": summaries("b"),
		"cypress":    summaries("c"),
	}}
	lim := limits(20, 50)
	lim.RequestDelay = config.Duration(100 * time.Millisecond)
	ex := NewExecutor(searcher, &fakeEnricher{}, lim, nil)

	var sleeps []time.Duration
	ex.sleep = func(_ context.Context, d time.Duration) { sleeps = append(sleeps, d) }

	ex.ScanCategory(context.Background(), config.Category{
		ID:          "web-automation",
		SearchTerms: []string{"selenium", "playwright", "cypress"},
	})

	if len(sleeps) != 2 {
		t.Fatalf("slept %d times, want 2 (between searches only)", len(sleeps))
	}
	for _, d := range sleeps {
		if d != 100*time.Millisecond {
			t.Errorf("slept %v, want 100ms", d)
		}
	}
}
