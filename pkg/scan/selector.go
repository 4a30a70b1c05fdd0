package scan

import (
	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
)

// Selector decides which category the coordinator scans next.
// Implementations must be pure: no I/O, no mutation of status.
type Selector interface {
	Next(status *Status, categories []config.Category) (*config.Category, error)
}

// OldestFirst is the standard rotation policy: the category with the
// earliest last-scan timestamp wins; categories never scanned count as
// infinitely old. Ties break by configuration order. Every category is
// eventually revisited and none can be starved.
type OldestFirst struct{}

// Next selects the least recently scanned category.
func (OldestFirst) Next(status *Status, categories []config.Category) (*config.Category, error) {
	if len(categories) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no categories configured")
	}

	best := &categories[0]
	bestTime := status.LastScanned[best.ID]
	for i := 1; i < len(categories); i++ {
		if t := status.LastScanned[categories[i].ID]; t.Before(bestTime) {
			best = &categories[i]
			bestTime = t
		}
	}
	return best, nil
}

// Forced selects one specific category regardless of rotation order,
// for targeted rescans. Other categories' state is untouched.
type Forced struct {
	CategoryID string
}

// Next returns the forced category, or CATEGORY_NOT_FOUND if the ID is
// not configured.
func (f Forced) Next(status *Status, categories []config.Category) (*config.Category, error) {
	for i := range categories {
		if categories[i].ID == f.CategoryID {
			return &categories[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeCategoryNotFound, "unknown category: %s", f.CategoryID)
}
