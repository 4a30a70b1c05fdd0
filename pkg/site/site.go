// Package site renders the static website from the persisted repository
// map and scan status. Output is plain HTML files, one index plus one
// page per category, ready to serve from any static host.
package site

import (
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/config"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/errors"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

// Generator renders the site into an output directory.
type Generator struct {
	outDir string
	tmpl   *template.Template
	now    func() time.Time
}

// New prepares a generator writing into outDir.
func New(outDir string) (*Generator, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"since": humanSince,
	}).Parse(pagesTemplate)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing site templates")
	}
	return &Generator{outDir: outDir, tmpl: tmpl, now: time.Now}, nil
}

// categoryView is the per-category render model.
type categoryView struct {
	config.Category
	Repos       []scan.RepoRecord
	LastScanned time.Time
	Completed   bool
	Now         time.Time
}

// indexView is the landing page render model.
type indexView struct {
	Categories  []categoryView
	TotalRepos  int
	CycleCount  int
	LastScan    time.Time
	LastFull    time.Time
	GeneratedAt time.Time
}

// Render writes the index and one page per configured category.
// Categories with no records still get a page so published links never
// break. Repositories are ordered by score, best first, with the full
// name breaking ties so output is stable across runs.
func (g *Generator) Render(categories []config.Category, repos map[string]scan.RepoRecord, status *scan.Status) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "creating site directory %s", g.outDir)
	}

	now := g.now()
	byCategory := make(map[string][]scan.RepoRecord)
	for _, rec := range repos {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	views := make([]categoryView, 0, len(categories))
	total := 0
	for _, cat := range categories {
		list := byCategory[cat.ID]
		sort.Slice(list, func(i, j int) bool {
			if list[i].Score.Total != list[j].Score.Total {
				return list[i].Score.Total > list[j].Score.Total
			}
			return list[i].FullName < list[j].FullName
		})
		total += len(list)
		views = append(views, categoryView{
			Category:    cat,
			Repos:       list,
			LastScanned: status.LastScanned[cat.ID],
			Completed:   status.IsCompleted(cat.ID),
			Now:         now,
		})
	}

	for _, view := range views {
		if err := g.writePage(view.ID+".html", "category", view); err != nil {
			return err
		}
	}

	return g.writePage("index.html", "index", indexView{
		Categories:  views,
		TotalRepos:  total,
		CycleCount:  status.CycleCount,
		LastScan:    status.LastScanTime,
		LastFull:    status.LastFullScanTime,
		GeneratedAt: now,
	})
}

func (g *Generator) writePage(name, tmplName string, data any) error {
	f, err := os.Create(filepath.Join(g.outDir, name))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateIO, err, "creating %s", name)
	}
	defer f.Close()
	if err := g.tmpl.ExecuteTemplate(f, tmplName, data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rendering %s", name)
	}
	return nil
}

// humanSince formats a timestamp relative to now for freshness display.
func humanSince(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Hour:
		return "less than an hour ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}
