package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteadapter"
)

// SetRequest is the request body for POST /notes.
type SetRequest struct {
	Options noteadapter.SetOptions `json:"options"`
	Input   models.Note            `json:"input"`
}

// Validate checks the request before it reaches the adapter.
func (r *SetRequest) Validate() error {
	return validation.ValidateStruct(&r.Options,
		validation.Field(&r.Options.Identity, validation.Required),
		validation.Field(&r.Options.Action, validation.In(
			noteadapter.ActionAdd,
			noteadapter.ActionUpdate,
			noteadapter.ActionRemove,
		)),
	)
}

// Page is the paginated read response (aliased from the domain layer).
type Page = models.Page

// Outcome is the write response (aliased from the domain layer).
type Outcome = models.Outcome
