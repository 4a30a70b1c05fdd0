package scan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
)

// Store persists the scanner's two documents: the repository set and
// the rotation status. Implementations live in pkg/store.
type Store interface {
	// LoadRepos returns all persisted records keyed by repository ID.
	// A store with no prior data returns an empty map, not an error.
	LoadRepos(ctx context.Context) (map[string]RepoRecord, error)

	// SaveRepos replaces the persisted repository set.
	SaveRepos(ctx context.Context, repos map[string]RepoRecord) error

	// LoadStatus returns the rotation status, or a fresh one if none
	// has been persisted yet.
	LoadStatus(ctx context.Context) (*Status, error)

	// SaveStatus replaces the persisted rotation status.
	SaveStatus(ctx context.Context, status *Status) error

	Close(ctx context.Context) error
}

// Merge replaces every record of the given category with the fresh
// scan results and leaves all other categories untouched. An empty
// fresh set therefore removes the category's stale records. The input
// map is not mutated.
func Merge(existing map[string]RepoRecord, categoryID string, fresh []RepoRecord) map[string]RepoRecord {
	merged := make(map[string]RepoRecord, len(existing)+len(fresh))
	for id, rec := range existing {
		if rec.Category == categoryID {
			continue
		}
		merged[id] = rec
	}
	for _, rec := range fresh {
		merged[rec.ID()] = rec
	}
	return merged
}

// StepResult summarizes one coordinator step.
type StepResult struct {
	RunID          string
	Category       config.Category
	RepoCount      int
	TotalRepos     int
	CycleCount     int
	CycleCompleted bool
	Duration       time.Duration
}

// Coordinator drives the incremental scan: each RunStep call scans
// exactly one category and persists the merged result, so repeated
// invocations walk the whole configuration one category at a time.
type Coordinator struct {
	store    Store
	executor *Executor
	selector Selector
	cfg      *config.Config
	log      *log.Logger

	now func() time.Time
}

// NewCoordinator wires a coordinator over the given store and
// executor. A nil selector defaults to the oldest-first rotation.
func NewCoordinator(store Store, executor *Executor, selector Selector, cfg *config.Config, logger *log.Logger) *Coordinator {
	if selector == nil {
		selector = OldestFirst{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		store:    store,
		executor: executor,
		selector: selector,
		cfg:      cfg,
		log:      logger,
		now:      time.Now,
	}
}

// RunStep performs one full scan step: pick a category, scan it, merge
// the results into the persisted set, and record completion. If the
// context is cancelled before both documents are persisted, nothing is
// written and the previous state remains intact.
func (c *Coordinator) RunStep(ctx context.Context) (*StepResult, error) {
	runID := uuid.NewString()
	started := c.now()
	logger := c.log.With("run", runID)

	status, err := c.store.LoadStatus(ctx)
	if err != nil {
		return nil, err
	}
	repos, err := c.store.LoadRepos(ctx)
	if err != nil {
		return nil, err
	}

	if status.BeginCycleIfComplete(c.cfg.Categories) {
		logger.Info("all categories scanned, starting new cycle", "cycle", status.CycleCount)
	}

	cat, err := c.selector.Next(status, c.cfg.Categories)
	if err != nil {
		return nil, err
	}
	logger.Info("scanning category", "category", cat.ID, "terms", len(cat.SearchTerms))

	// A forced rescan of an already completed category must not let the
	// cycle counter advance on the stale completion mark.
	status.ClearCompleted(cat.ID)

	records := c.executor.ScanCategory(ctx, *cat)
	if ctx.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "scan interrupted, state not persisted")
	}

	merged := Merge(repos, cat.ID, records)
	finished := c.now()
	status.MarkCompleted(cat.ID)
	if status.LastScanned == nil {
		status.LastScanned = make(map[string]time.Time)
	}
	status.LastScanned[cat.ID] = finished
	status.LastScanTime = finished
	cycleDone := status.AllCompleted(c.cfg.Categories)
	if cycleDone {
		status.LastFullScanTime = finished
	}

	if err := c.store.SaveRepos(ctx, merged); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "persisting repositories")
	}
	if err := c.store.SaveStatus(ctx, status); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateIO, err, "persisting scan status")
	}

	logger.Info("category scan complete",
		"category", cat.ID,
		"repos", len(records),
		"total", len(merged),
		"duration", finished.Sub(started).Round(time.Millisecond))

	return &StepResult{
		RunID:          runID,
		Category:       *cat,
		RepoCount:      len(records),
		TotalRepos:     len(merged),
		CycleCount:     status.CycleCount,
		CycleCompleted: cycleDone,
		Duration:       finished.Sub(started),
	}, nil
}
