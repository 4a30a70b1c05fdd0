// Package scan implements the staged category scan: the per-category
// executor that runs the bounded search/enrich loop, and the coordinator
// that owns category rotation, cycle detection, and the merge of fresh
// results into the persisted repository map.
package scan

import (
	"time"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scoring"
)

// RepoRecord is the enriched, scored representation of one repository.
// Records are owned by the persisted repository map and replaced wholesale
// when their category is rescanned, never field-patched.
type RepoRecord struct {
	github.RepoSummary

	Category  string               `json:"category"`
	Score     scoring.QualityScore `json:"score"`
	Extra     ExtraData            `json:"extra"`
	ScannedAt time.Time            `json:"scanned_at"`
}

// ExtraData holds the auxiliary enrichment results that feed scoring.
type ExtraData struct {
	RecentCommits    int          `json:"recent_commits"`
	ReleaseCount     int          `json:"release_count"`
	ContributorCount int          `json:"contributor_count"`
	HasCI            bool         `json:"has_ci"`
	HasContributing  bool         `json:"has_contributing"`
	ReadmeLength     int          `json:"readme_length"`
	LastRelease      *ReleaseInfo `json:"last_release,omitempty"`
}

// ReleaseInfo is a snapshot of the most recent release.
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url,omitempty"`
}
