package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(adapter NoteAdapter, authEnabled bool, token string) chi.Router {
	h := NewHandler(adapter)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/notes", h.GetNotes)
	r.Post("/notes", h.PostNote)

	return r
}
