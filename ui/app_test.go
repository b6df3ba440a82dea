package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	c, kit := newTestContainer(t)
	return NewApp(c, kit.Logger)
}

func doAdmin(t *testing.T, a *App, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthzReportsLoadedLexicon(t *testing.T) {
	a := newTestApp(t)

	w := doAdmin(t, a, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status       string `json:"status"`
		LexiconChars int    `json:"lexicon_chars"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Greater(t, resp.LexiconChars, 0)
}

func TestCacheStats(t *testing.T) {
	a := newTestApp(t)
	w := doAdmin(t, a, http.MethodGet, "/admin/cache/stats")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLLMStatusUnconfigured(t *testing.T) {
	a := newTestApp(t)

	w := doAdmin(t, a, http.MethodGet, "/admin/llm/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Configured bool `json:"configured"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Configured)
}

func TestLexiconReload(t *testing.T) {
	a := newTestApp(t)

	w := doAdmin(t, a, http.MethodPost, "/admin/lexicon/reload")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status       string `json:"status"`
		LexiconChars int    `json:"lexicon_chars"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reloaded", resp.Status)
	assert.Greater(t, resp.LexiconChars, 0)
}
