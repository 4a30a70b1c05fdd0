// Package scoring computes deterministic quality scores for repositories.
//
// Score is a pure function of its input: identical metadata and enrichment
// data always produce an identical QualityScore. Missing inputs (no README,
// no releases, no contributors) contribute zero instead of failing.
package scoring

import (
	"regexp"
	"strings"
	"time"
)

// Sub-score caps. Total maximum is 100.
const (
	MaxPopularity    = 25
	MaxActivity      = 20
	MaxDocumentation = 20
	MaxCommunity     = 15
	MaxMaintenance   = 10
	MaxCodeQuality   = 10
)

// QualityScore is the scored breakdown of one repository.
// Total always equals the sum of the six sub-scores.
type QualityScore struct {
	Popularity    int    `json:"popularity"`
	Activity      int    `json:"activity"`
	Documentation int    `json:"documentation"`
	Community     int    `json:"community"`
	Maintenance   int    `json:"maintenance"`
	CodeQuality   int    `json:"code_quality"`
	Total         int    `json:"total"`
	Grade         string `json:"grade"`
}

// Input collects everything the scorer looks at. Fields left at their zero
// value count as "absent" and contribute nothing.
type Input struct {
	Stars      int
	Forks      int
	PushedAt   *time.Time
	Topics     []string
	OpenIssues int

	HasLicense bool
	HasWiki    bool
	HasIssues  bool
	Archived   bool

	Readme          string
	HasContributing bool
	HasCI           bool

	// Releases holds publish timestamps, most recent first.
	Releases []time.Time

	// Now anchors the recency calculations. Callers stamp it once per
	// enrichment so re-scoring identical inputs is bit-identical.
	Now time.Time
}

// Score computes the full quality breakdown for one repository.
func Score(in Input) QualityScore {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	s := QualityScore{
		Popularity:    popularity(in.Stars, in.Forks),
		Activity:      activity(in.PushedAt, in.Releases, now),
		Documentation: documentation(in.Readme, in.HasWiki),
		Community:     community(in.HasLicense, in.HasContributing, in.OpenIssues, in.HasIssues),
		Maintenance:   maintenance(in.Releases),
		CodeQuality:   codeQuality(in.Topics, in.HasCI, in.Archived),
	}
	s.Total = s.Popularity + s.Activity + s.Documentation + s.Community + s.Maintenance + s.CodeQuality
	s.Grade = GradeFor(s.Total)
	return s
}

// GradeFor maps a total score to its letter grade. Thresholds are
// boundary-inclusive: 90 is an A+, 89 an A.
func GradeFor(total int) string {
	switch {
	case total >= 90:
		return "A+"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	case total >= 50:
		return "D"
	default:
		return "F"
	}
}

// popularity scores stars (10 points per 1000, max 20) and forks
// (5 points per 200, max 5).
func popularity(stars, forks int) int {
	starPts := min(20, stars*10/1000)
	forkPts := min(5, forks*5/200)
	return starPts + forkPts
}

// activity scores recency of the last push plus a release-recency bonus.
func activity(pushedAt *time.Time, releases []time.Time, now time.Time) int {
	pts := 0
	if pushedAt != nil {
		switch days := daysSince(*pushedAt, now); {
		case days <= 7:
			pts = 15
		case days <= 30:
			pts = 12
		case days <= 90:
			pts = 8
		case days <= 180:
			pts = 4
		}
	}
	if len(releases) > 0 {
		switch days := daysSince(releases[0], now); {
		case days <= 90:
			pts += 5
		case days <= 180:
			pts += 3
		case days <= 365:
			pts += 1
		}
	}
	return pts
}

var headerPattern = regexp.MustCompile(`(?m)^#{1,6} `)

// documentation scores README length tiers and content indicators
// (capped at 15) plus a flat 5 for an enabled wiki.
func documentation(readme string, hasWiki bool) int {
	pts := 0
	if n := len(readme); n > 500 {
		pts += 5
		if n > 2000 {
			pts += 3
		}
		if n > 5000 {
			pts += 2
		}
	}
	if headerPattern.MatchString(readme) {
		pts += 2
	}
	if strings.Contains(readme, "```") {
		pts += 2
	}
	if strings.Contains(readme, "![") {
		pts += 1
	}
	pts = min(pts, 15)

	if hasWiki {
		pts += 5
	}
	return pts
}

// community scores license, contributing guide, and issue-tracker engagement.
func community(hasLicense, hasContributing bool, openIssues int, hasIssues bool) int {
	pts := 0
	if hasLicense {
		pts += 8
	}
	if hasContributing {
		pts += 4
	}
	if openIssues > 0 && openIssues < 100 {
		pts += 2
	}
	if hasIssues {
		pts += 1
	}
	return pts
}

// maintenance scores release count (1 point each, max 5) plus a regularity
// bonus from the average gap between the most recent releases. The bonus
// requires at least 3 releases.
func maintenance(releases []time.Time) int {
	pts := min(5, len(releases))

	if len(releases) >= 3 {
		recent := releases
		if len(recent) > 5 {
			recent = recent[:5]
		}
		total := 0.0
		for i := 0; i < len(recent)-1; i++ {
			total += recent[i].Sub(recent[i+1]).Hours() / 24
		}
		switch avg := total / float64(len(recent)-1); {
		case avg <= 90:
			pts += 3
		case avg <= 180:
			pts += 2
		default:
			pts += 1
		}
	}
	return min(pts, MaxMaintenance)
}

// codeQuality scores topics (1 point each, max 3), CI presence, and
// not being archived.
func codeQuality(topics []string, hasCI, archived bool) int {
	pts := min(3, len(topics))
	if hasCI {
		pts += 4
	}
	if !archived {
		pts += 3
	}
	return pts
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
