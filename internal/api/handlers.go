package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteadapter"
)

// NoteAdapter is the call surface the handlers expose over HTTP.
type NoteAdapter interface {
	Get(ctx context.Context, opts noteadapter.GetOptions) (*models.Page, error)
	Set(ctx context.Context, opts noteadapter.SetOptions, input models.Note) (*models.Outcome, error)
}

// Handler holds API route handlers.
type Handler struct {
	adapter NoteAdapter
}

// NewHandler creates a new Handler.
func NewHandler(adapter NoteAdapter) *Handler {
	return &Handler{adapter: adapter}
}

// GetNotes handles GET /notes. Query parameters: identity, platform, id,
// url, cursor, limit.
func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	opts := noteadapter.GetOptions{
		Identity: q.Get("identity"),
		Platform: q.Get("platform"),
		Filter: noteadapter.Filter{
			ID:  q.Get("id"),
			URL: q.Get("url"),
		},
		Cursor: q.Get("cursor"),
		Limit:  limit,
	}

	page, err := h.adapter.Get(r.Context(), opts)
	if err != nil {
		slog.Error("get notes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("upstream error"))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// PostNote handles POST /notes with a {options, input} body.
func (h *Handler) PostNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	outcome, err := h.adapter.Set(r.Context(), req.Options, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrUnsupportedAction):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("post note failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadGateway, errorBody("upstream error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
