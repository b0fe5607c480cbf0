package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klauern/skillshelf/internal/config"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"laravel-12/SKILL.md": `---
name: laravel-12
description: Laravel 12 backend conventions
---
# Laravel 12

See references/eloquent.md.
`,
		"laravel-12/references/eloquent.md": "# Eloquent relationships\n",
		"pest-testing/SKILL.md": `---
name: pest-testing
description: Pest v4 testing with browser coverage
---
Prefer the expectation API.
`,
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	s, err := New(dir, config.ServerConfig{Addr: ":0"})
	require.NoError(t, err)
	return s, dir
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["build_id"])
}

func TestIndexEndpoint(t *testing.T) {
	s, dir := newTestServer(t)

	rec := doRequest(t, s, "/v1/index")
	require.Equal(t, http.StatusOK, rec.Code)

	var idx struct {
		Version string `json:"version"`
		Root    string `json:"root"`
		Skills  []struct {
			Name string `json:"name"`
		} `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idx))
	assert.Equal(t, "1", idx.Version)
	assert.Equal(t, dir, idx.Root)
	require.Len(t, idx.Skills, 2)
	assert.Equal(t, "laravel-12", idx.Skills[0].Name)
}

func TestSkillsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills")
	require.Equal(t, http.StatusOK, rec.Code)

	var skills []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &skills))
	assert.Len(t, skills, 2)
}

func TestSkillBody(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/laravel-12")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "# Laravel 12")
	// Front matter is not part of the served body.
	assert.NotContains(t, rec.Body.String(), "description:")
}

func TestSkillNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceLazyLoad(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/laravel-12/references/eloquent.md")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Eloquent relationships\n", rec.Body.String())
}

func TestReferenceNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/laravel-12/references/missing.md")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, "/v1/skills/nope/references/eloquent.md")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/search?q=browser")
	require.Equal(t, http.StatusOK, rec.Code)

	var matches []struct {
		Entry struct {
			Name string `json:"name"`
		} `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "pest-testing", matches[0].Entry.Name)
}

func TestSearchRequiresQuery(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchNoMatchesIsEmptyArray(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "/v1/skills/search?q=zzzzz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestReload(t *testing.T) {
	s, dir := newTestServer(t)

	_, before := s.snapshot()

	// Add a skill on disk and reload.
	path := filepath.Join(dir, "tailwind-v4", "SKILL.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("---\nname: tailwind-v4\ndescription: d\n---\nBody\n"), 0o644))
	require.NoError(t, s.Reload(dir))

	bun, after := s.snapshot()
	assert.Equal(t, 3, bun.Len())
	assert.NotEqual(t, before.BuildID, after.BuildID)
}
