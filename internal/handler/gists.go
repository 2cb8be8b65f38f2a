package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gistrelay/gistrelay/internal/github"
	"github.com/gistrelay/gistrelay/internal/service"
)

// GistHandler handles HTTP requests for gist lookups.
type GistHandler struct {
	svc    *service.GistService
	logger *slog.Logger
}

// NewGistHandler creates a new GistHandler.
func NewGistHandler(svc *service.GistService, logger *slog.Logger) *GistHandler {
	return &GistHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /{username}. On success the upstream gist array is
// relayed as-is with status 200.
func (h *GistHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	gists, err := h.svc.PublicGists(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, username, err)
		return
	}

	h.logger.Debug("gists_relayed",
		"username", username,
		"bytes", len(gists),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gists)
}

// handleServiceError is the sole translator from the error taxonomy to
// HTTP responses. Every error stays scoped to this request.
func (h *GistHandler) handleServiceError(w http.ResponseWriter, username string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyUsername):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, github.ErrUserNotFound):
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("GitHub user '%s' not found or has no public Gists.", username))
	case errors.Is(err, github.ErrRateLimited):
		h.logger.Warn("upstream_rate_limited", "username", username, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, github.ErrUnreachable):
		h.logger.Warn("upstream_unreachable", "username", username, "error", err)
		writeError(w, http.StatusBadGateway, "GitHub API is unreachable.")
	case errors.Is(err, github.ErrUpstream):
		h.logger.Error("upstream_error", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching data from GitHub API.")
	default:
		h.logger.Error("internal_error", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
	}
}
