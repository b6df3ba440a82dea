package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"poemnames/internal"
	"poemnames/internal/container"
)

// App is the operational surface: health, cache stats, lexicon reload.
// It runs on a separate port so the public API can be exposed alone.
type App struct {
	router    *chi.Mux
	container *container.Container
	log       *internal.Logger
}

// NewApp creates the admin application.
func NewApp(c *container.Container, log *internal.Logger) *App {
	a := &App{
		router:    chi.NewRouter(),
		container: c,
		log:       log,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/admin/cache/stats", a.handleCacheStats)
	a.router.Get("/admin/llm/status", a.handleLLMStatus)
	a.router.Post("/admin/lexicon/reload", a.handleLexiconReload)
}

// Run starts the admin server on the configured admin port.
func (a *App) Run() error {
	return http.ListenAndServe(":"+a.container.Config.Server.AdminPort, a.router)
}

// Handler exposes the router for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if a.container.LexiconSize() == 0 {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        status,
		"lexicon_chars": a.container.LexiconSize(),
	})
}

func (a *App) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": a.container.Cache.Len(),
	})
}

func (a *App) handleLLMStatus(w http.ResponseWriter, r *http.Request) {
	configured := a.container.LLM != nil
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": configured,
		"model":      a.container.Config.LLM.Model,
	})
}

func (a *App) handleLexiconReload(w http.ResponseWriter, r *http.Request) {
	if err := a.container.ReloadLexicon(r.Context()); err != nil {
		a.log.Error("lexicon reload failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "reload failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "reloaded",
		"lexicon_chars": a.container.LexiconSize(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
