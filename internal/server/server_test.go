package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ankitrathi85/Test-Resources-Github/pkg/integrations/github"
	"github.com/ankitrathi85/Test-Resources-Github/pkg/scan"
)

type memStore struct {
	repos  map[string]scan.RepoRecord
	status *scan.Status
}

func (m *memStore) LoadRepos(context.Context) (map[string]scan.RepoRecord, error) {
	return m.repos, nil
}
func (m *memStore) SaveRepos(context.Context, map[string]scan.RepoRecord) error { return nil }
func (m *memStore) LoadStatus(context.Context) (*scan.Status, error)            { return m.status, nil }
func (m *memStore) SaveStatus(context.Context, *scan.Status) error              { return nil }
func (m *memStore) Close(context.Context) error                                 { return nil }

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>ok</h1>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	store := &memStore{
		repos: map[string]scan.RepoRecord{
			"octo/a": {RepoSummary: github.RepoSummary{FullName: "octo/a"}, Category: "web-automation"},
			"octo/b": {RepoSummary: github.RepoSummary{FullName: "octo/b"}, Category: "api-testing"},
		},
		status: scan.NewStatus(),
	}
	return New(store, dir, nil), dir
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAPIRepos(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/repos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var repos []scan.RepoRecord
	if err := json.NewDecoder(rec.Body).Decode(&repos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(repos) != 2 {
		t.Errorf("got %d repos, want 2", len(repos))
	}
}

func TestAPIReposCategoryFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/repos?category=api-testing", nil))

	var repos []scan.RepoRecord
	if err := json.NewDecoder(rec.Body).Decode(&repos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(repos) != 1 || repos[0].FullName != "octo/b" {
		t.Errorf("got %+v, want just octo/b", repos)
	}
}

func TestAPIStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status scan.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestServesStaticSite(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "<h1>ok</h1>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
