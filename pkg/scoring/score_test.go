package scoring

import (
	"strings"
	"testing"
	"time"
)

var now = time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func richReadme(length int) string {
	base := "# Project\n\nSome description.\n\n```go\nfunc main() {}\n```\n\n![build](badge.svg)\n\n"
	if len(base) < length {
		base += strings.Repeat("x", length-len(base))
	}
	return base
}

func TestScoreFullExample(t *testing.T) {
	pushed := daysAgo(2)
	in := Input{
		Stars:           1000,
		Forks:           200,
		PushedAt:        &pushed,
		Topics:          []string{"testing", "automation", "selenium"},
		OpenIssues:      5,
		HasLicense:      true,
		HasWiki:         true,
		HasIssues:       true,
		Readme:          richReadme(6000),
		HasContributing: true,
		HasCI:           true,
		Releases:        []time.Time{daysAgo(10)},
		Now:             now,
	}

	s := Score(in)

	if s.Popularity != 15 {
		t.Errorf("Popularity = %d, want 15", s.Popularity)
	}
	if s.Activity != 20 {
		t.Errorf("Activity = %d, want 20", s.Activity)
	}
	if s.Documentation != 20 {
		t.Errorf("Documentation = %d, want 20", s.Documentation)
	}
	if s.Community != 15 {
		t.Errorf("Community = %d, want 15", s.Community)
	}
	if s.Maintenance != 1 {
		t.Errorf("Maintenance = %d, want 1 (single release, no regularity bonus)", s.Maintenance)
	}
	if s.CodeQuality != 10 {
		t.Errorf("CodeQuality = %d, want 10", s.CodeQuality)
	}
	if s.Total != 81 {
		t.Errorf("Total = %d, want 81", s.Total)
	}
	if s.Grade != "A" {
		t.Errorf("Grade = %s, want A", s.Grade)
	}
}

func TestScoreTotalEqualsSum(t *testing.T) {
	pushed := daysAgo(45)
	in := Input{
		Stars:      5000,
		Forks:      120,
		PushedAt:   &pushed,
		Topics:     []string{"a", "b", "c", "d", "e"},
		OpenIssues: 40,
		HasLicense: true,
		HasIssues:  true,
		Readme:     richReadme(2500),
		Releases:   []time.Time{daysAgo(20), daysAgo(120), daysAgo(230), daysAgo(350)},
		Now:        now,
	}

	s := Score(in)
	sum := s.Popularity + s.Activity + s.Documentation + s.Community + s.Maintenance + s.CodeQuality
	if s.Total != sum {
		t.Errorf("Total = %d, sum of parts = %d", s.Total, sum)
	}
}

func TestScoreEmptyInput(t *testing.T) {
	s := Score(Input{Now: now})

	// Not archived is the only nonzero contribution.
	if s.CodeQuality != 3 {
		t.Errorf("CodeQuality = %d, want 3", s.CodeQuality)
	}
	if s.Total != 3 {
		t.Errorf("Total = %d, want 3", s.Total)
	}
	if s.Grade != "F" {
		t.Errorf("Grade = %s, want F", s.Grade)
	}
}

func TestScoreBounds(t *testing.T) {
	pushed := daysAgo(1)
	in := Input{
		Stars:           1_000_000,
		Forks:           100_000,
		PushedAt:        &pushed,
		Topics:          []string{"a", "b", "c", "d", "e", "f", "g"},
		OpenIssues:      50,
		HasLicense:      true,
		HasWiki:         true,
		HasIssues:       true,
		Readme:          richReadme(100_000),
		HasContributing: true,
		HasCI:           true,
		Releases: []time.Time{
			daysAgo(10), daysAgo(40), daysAgo(70), daysAgo(100), daysAgo(130),
			daysAgo(160), daysAgo(190),
		},
		Now: now,
	}

	s := Score(in)

	checks := []struct {
		name string
		got  int
		max  int
		want int
	}{
		{"popularity", s.Popularity, MaxPopularity, 25},
		{"activity", s.Activity, MaxActivity, 20},
		{"documentation", s.Documentation, MaxDocumentation, 20},
		{"community", s.Community, MaxCommunity, 15},
		// Release count contributes 5 and regularity 3; 10 is a hard cap,
		// not a reachable value.
		{"maintenance", s.Maintenance, MaxMaintenance, 8},
		{"code_quality", s.CodeQuality, MaxCodeQuality, 10},
	}
	for _, c := range checks {
		if c.got < 0 || c.got > c.max {
			t.Errorf("%s = %d, out of [0,%d]", c.name, c.got, c.max)
		}
		if c.got != c.want {
			t.Errorf("%s = %d, maximal input should score %d", c.name, c.got, c.want)
		}
	}
	if s.Total != 98 {
		t.Errorf("Total = %d, want 98", s.Total)
	}
	if s.Grade != "A+" {
		t.Errorf("Grade = %s, want A+", s.Grade)
	}
}

func TestScoreDeterministic(t *testing.T) {
	pushed := daysAgo(15)
	in := Input{
		Stars:    3000,
		PushedAt: &pushed,
		Readme:   richReadme(1000),
		Releases: []time.Time{daysAgo(30), daysAgo(100), daysAgo(170)},
		Now:      now,
	}

	first := Score(in)
	for range 10 {
		if got := Score(in); got != first {
			t.Fatalf("Score not deterministic: %+v != %+v", got, first)
		}
	}
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"},
		{80, "A"}, {79, "B"},
		{70, "B"}, {69, "C"},
		{60, "C"}, {59, "D"},
		{50, "D"}, {49, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.total); got != tt.want {
			t.Errorf("GradeFor(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestActivitySteps(t *testing.T) {
	tests := []struct {
		pushedDays int
		want       int
	}{
		{3, 15}, {7, 15}, {8, 12}, {30, 12}, {31, 8}, {90, 8}, {91, 4}, {180, 4}, {181, 0},
	}
	for _, tt := range tests {
		pushed := daysAgo(tt.pushedDays)
		s := Score(Input{PushedAt: &pushed, Now: now, Archived: true})
		if s.Activity != tt.want {
			t.Errorf("pushed %d days ago: Activity = %d, want %d", tt.pushedDays, s.Activity, tt.want)
		}
	}
}

func TestReleaseRecencyBonus(t *testing.T) {
	tests := []struct {
		releaseDays int
		want        int
	}{
		{30, 5}, {90, 5}, {91, 3}, {180, 3}, {181, 1}, {365, 1}, {366, 0},
	}
	for _, tt := range tests {
		// No push date, so Activity is exactly the release bonus.
		s := Score(Input{Releases: []time.Time{daysAgo(tt.releaseDays)}, Now: now, Archived: true})
		if got := s.Activity; got != tt.want {
			t.Errorf("release %d days ago: bonus = %d, want %d", tt.releaseDays, got, tt.want)
		}
	}
}

func TestMaintenanceRegularity(t *testing.T) {
	tests := []struct {
		name     string
		releases []time.Time
		want     int
	}{
		{"no releases", nil, 0},
		{"two releases no bonus", []time.Time{daysAgo(10), daysAgo(50)}, 2},
		{"regular monthly cadence", []time.Time{daysAgo(10), daysAgo(40), daysAgo(70)}, 3 + 3},
		{"slow cadence", []time.Time{daysAgo(10), daysAgo(160), daysAgo(310)}, 3 + 2},
		{"yearly cadence", []time.Time{daysAgo(10), daysAgo(370), daysAgo(730)}, 3 + 1},
		{
			"count capped at five",
			[]time.Time{
				daysAgo(5), daysAgo(35), daysAgo(65), daysAgo(95),
				daysAgo(125), daysAgo(155), daysAgo(185),
			},
			5 + 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Score(Input{Releases: tt.releases, Now: now, Archived: true})
			if s.Maintenance != tt.want {
				t.Errorf("Maintenance = %d, want %d", s.Maintenance, tt.want)
			}
		})
	}
}

func TestDocumentationIndicators(t *testing.T) {
	long := strings.Repeat("x", 600)

	tests := []struct {
		name   string
		readme string
		wiki   bool
		want   int
	}{
		{"empty", "", false, 0},
		{"short plain", "hello", false, 0},
		{"long plain", long, false, 5},
		{"long with headers", "# Title\n" + long, false, 7},
		{"long with code", "```\ncode\n```\n" + long, false, 7},
		{"long with badge", "![badge](x.svg)\n" + long, false, 6},
		{"wiki only", "", true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Score(Input{Readme: tt.readme, HasWiki: tt.wiki, Now: now, Archived: true})
			if s.Documentation != tt.want {
				t.Errorf("Documentation = %d, want %d", s.Documentation, tt.want)
			}
		})
	}
}

func TestCommunityIssueEngagement(t *testing.T) {
	tests := []struct {
		openIssues int
		hasIssues  bool
		want       int
	}{
		{0, false, 0},
		{0, true, 1},
		{5, true, 3},
		{99, true, 3},
		{100, true, 1},
		{500, false, 0},
	}
	for _, tt := range tests {
		s := Score(Input{OpenIssues: tt.openIssues, HasIssues: tt.hasIssues, Now: now, Archived: true})
		if s.Community != tt.want {
			t.Errorf("open=%d issues=%v: Community = %d, want %d", tt.openIssues, tt.hasIssues, s.Community, tt.want)
		}
	}
}

func TestArchivedPenalty(t *testing.T) {
	active := Score(Input{Topics: []string{"a"}, HasCI: true, Now: now})
	archived := Score(Input{Topics: []string{"a"}, HasCI: true, Archived: true, Now: now})

	if active.CodeQuality != 8 {
		t.Errorf("active CodeQuality = %d, want 8", active.CodeQuality)
	}
	if archived.CodeQuality != 5 {
		t.Errorf("archived CodeQuality = %d, want 5", archived.CodeQuality)
	}
}
