package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aman-CERP/promptdex/internal/catalog"
	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/query"
)

// Error bodies. Clients match on these strings.
const (
	msgListFailed       = "Failed to fetch prompts"
	msgGetFailed        = "Failed to fetch prompt"
	msgNotFound         = "Prompt not found"
	msgCategoriesFailed = "Failed to fetch categories"
)

type handler struct {
	catalog Catalog
	logger  *slog.Logger
}

// listPrompts handles GET /api/prompts?search=&category=
func (h *handler) listPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	docs, err := h.catalog.List(r.Context(), query.Options{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	if err != nil {
		h.logFailure(r, err)
		h.respondError(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	h.respondJSON(w, http.StatusOK, docs)
}

// getPrompt handles GET /api/prompts/{id}
func (h *handler) getPrompt(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.logFailure(r, err)
		h.respondError(w, http.StatusInternalServerError, msgGetFailed)
		return
	}
	h.respondJSON(w, http.StatusOK, doc)
}

// listCategories handles GET /api/categories
func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logFailure(r, err)
		h.respondError(w, http.StatusInternalServerError, msgCategoriesFailed)
		return
	}
	h.respondJSON(w, http.StatusOK, summaries)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Helper methods

func (h *handler) logFailure(r *http.Request, err error) {
	args := append([]any{
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID(r)),
	}, dexerrors.LogAttrs(err)...)
	h.logger.Error("request failed", args...)
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
