package scan

import (
	"slices"
	"time"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
)

// Status is the durable coordinator state. It is loaded in full at the
// start of each invocation, mutated once after a successful category scan,
// and persisted in full at the end. Between invocations it is the sole
// source of truth for rotation and freshness.
type Status struct {
	// CompletedCategories lists category IDs scanned in the current cycle.
	// Set semantics: adds are idempotent.
	CompletedCategories []string `json:"completed_categories"`

	// LastScanned maps category ID to the time of its most recent scan.
	// Entries survive cycle boundaries; rotation order depends on them.
	LastScanned map[string]time.Time `json:"last_scanned"`

	// CycleCount counts full rotations through all categories.
	CycleCount int `json:"cycle_count"`

	// LastScanTime is the time of the most recent step, any category.
	LastScanTime time.Time `json:"last_scan_time"`

	// LastFullScanTime is the time the last full cycle completed.
	LastFullScanTime time.Time `json:"last_full_scan_time"`
}

// NewStatus returns an empty status for a first invocation.
func NewStatus() *Status {
	return &Status{LastScanned: make(map[string]time.Time)}
}

// IsCompleted reports whether the category has been scanned this cycle.
func (s *Status) IsCompleted(categoryID string) bool {
	return slices.Contains(s.CompletedCategories, categoryID)
}

// MarkCompleted adds the category to the completed set. Idempotent.
func (s *Status) MarkCompleted(categoryID string) {
	if !s.IsCompleted(categoryID) {
		s.CompletedCategories = append(s.CompletedCategories, categoryID)
	}
}

// ClearCompleted removes the category from the completed set without
// touching its timestamp. Used to force a targeted rescan.
func (s *Status) ClearCompleted(categoryID string) {
	s.CompletedCategories = slices.DeleteFunc(s.CompletedCategories, func(id string) bool {
		return id == categoryID
	})
}

// AllCompleted reports whether every configured category has been scanned
// this cycle.
func (s *Status) AllCompleted(categories []config.Category) bool {
	for _, cat := range categories {
		if !s.IsCompleted(cat.ID) {
			return false
		}
	}
	return true
}

// BeginCycleIfComplete starts a new cycle when the completed set covers
// every configured category: the counter increments and the completed set
// resets. Historical timestamps and repository data are preserved so the
// published dataset never regresses. Returns true if a new cycle began.
//
// The completed set, not timestamp comparison, is the cycle signal; it is
// persisted after every successful step, so a crash between steps cannot
// lose or invent a cycle boundary.
func (s *Status) BeginCycleIfComplete(categories []config.Category) bool {
	if len(categories) == 0 || !s.AllCompleted(categories) {
		return false
	}
	s.CycleCount++
	s.CompletedCategories = nil
	return true
}
