package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gametrack/internal/api"
	"gametrack/internal/constants"
	"gametrack/internal/dashboard"
	"gametrack/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type contextKey struct{}

// RateLimitReporter exposes the last rate limit state seen from Riot.
type RateLimitReporter interface {
	GetRateLimitInfo() api.RateLimitInfo
}

type Handler struct {
	sessions *Sessions
	riot     RateLimitReporter
	logger   zerolog.Logger

	// idle answers read-only requests from clients without a session.
	idle *dashboard.Orchestrator
}

// NewHandler builds the dashboard handler. riot may be nil when the
// dashboard runs apart from the backend.
func NewHandler(sessions *Sessions, riot RateLimitReporter, logger zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		riot:     riot,
		logger:   logger,
		idle:     dashboard.NewOrchestrator(nil, logger),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID(h.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", h.index)
		r.Post("/search", h.search)
		r.Post("/stats", h.updateStats)
		r.Post("/reset", h.reset)
	})

	// read-only routes never start a session
	r.Group(func(r chi.Router) {
		r.Use(h.withExistingSession)

		r.Get("/api/dashboard", h.dashboardJSON)
		r.Get("/charts/trend.svg", h.trendChart)
		r.Get("/charts/comparison.svg", h.comparisonChart)
	})

	return r
}

func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orch, err := h.sessions.Acquire(w, r)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to acquire session")
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, orch)))
	})
}

func (h *Handler) withExistingSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orch, ok := h.sessions.Lookup(r)
		if !ok {
			orch = h.idle
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, orch)))
	})
}

func orchestratorFrom(ctx context.Context) *dashboard.Orchestrator {
	return ctx.Value(contextKey{}).(*dashboard.Orchestrator)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":   "healthy",
		"sessions": h.sessions.Len(),
	}
	if h.riot != nil {
		body["riot_rate_limit"] = h.riot.GetRateLimitInfo()
	}
	respondJSON(w, r, http.StatusOK, body)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	view := newPageView(orchestratorFrom(r.Context()).Snapshot(), *log)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		log.Error().Err(err).Msg("failed to render dashboard page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// search starts a fetch that outlives the request; the page polls while
// the session is loading.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	orch := orchestratorFrom(r.Context())

	form := dashboard.NewForm(func(gameName, tagLine string) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), constants.DashboardTimeout)
		done := orch.Start(ctx, gameName, tagLine)
		go func() {
			<-done
			cancel()
		}()
	})
	if !form.Submit(r.PostFormValue("game_name"), r.PostFormValue("tag_line")) {
		zerolog.Ctx(r.Context()).Debug().Msg("ignoring incomplete search")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) updateStats(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	orchestratorFrom(r.Context()).UpdateSelection(dashboard.Sanitize(r.PostForm["stat"]))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	orchestratorFrom(r.Context()).Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) dashboardJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, newDashboardView(orchestratorFrom(r.Context()).Snapshot()))
}

func (h *Handler) trendChart(w http.ResponseWriter, r *http.Request) {
	snap := orchestratorFrom(r.Context()).Snapshot()
	h.writeChart(w, r, func(buf *bytes.Buffer) error {
		return dashboard.RenderTrendSVG(buf, snap.Trend())
	})
}

func (h *Handler) comparisonChart(w http.ResponseWriter, r *http.Request) {
	snap := orchestratorFrom(r.Context()).Snapshot()
	h.writeChart(w, r, func(buf *bytes.Buffer) error {
		return dashboard.RenderComparisonSVG(buf, snap.Comparison())
	})
}

// writeChart answers 204 when there is nothing to draw.
func (h *Handler) writeChart(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	err := render(&buf)
	switch {
	case errors.Is(err, dashboard.ErrNothingToRender):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("error encoding response")
	}
}
