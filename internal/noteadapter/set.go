package noteadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/compat"
	"github.com/starford/ansuz/internal/contentstore"
	"github.com/starford/ansuz/internal/ipfsurl"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteid"
	"github.com/starford/ansuz/internal/registry"
)

// Outcome messages shared by the write actions.
const (
	msgSuccess         = "Success"
	msgProfileNotFound = "Profile not found"
	msgMissingID       = "Missing id"
	msgWrongID         = "Wrong id"
	msgNoteNotFound    = "Note not found"
)

// Set performs one write action. Business failures come back as Outcome
// values with a non-zero code; caller misuse (multiple related_urls, an
// unknown action) and upstream I/O failures come back as errors.
func (a *Adapter) Set(ctx context.Context, opts SetOptions, input models.Note) (*models.Outcome, error) {
	platform := platformOrDefault(opts.Platform)
	action := opts.Action
	if action == "" {
		action = ActionAdd
	}

	handle, ok, err := a.resolver.Resolve(ctx, opts.Identity, platform)
	if err != nil {
		return nil, err
	}
	if !ok {
		return failure(msgProfileNotFound), nil
	}

	norm, err := compat.ToStorage(input)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionAdd:
		return a.add(ctx, opts.Identity, handle, norm)
	case ActionRemove:
		return a.remove(ctx, handle, input.ID)
	case ActionUpdate:
		return a.update(ctx, handle, input.ID, norm)
	default:
		return nil, fmt.Errorf("noteadapter: %q: %w", action, apperr.ErrUnsupportedAction)
	}
}

// add uploads the normalized payload and submits a creation transaction.
// The returned outcome carries the note id assigned by the receipt.
func (a *Adapter) add(ctx context.Context, identity, handle string, norm compat.Normalized) (*models.Outcome, error) {
	raw, err := json.Marshal(norm.Payload)
	if err != nil {
		return nil, fmt.Errorf("noteadapter: encode payload: %w", err)
	}

	address, err := a.store.Put(ctx, raw, contentstore.PutOptions{
		Name:              identity + ".json",
		MaxRetries:        contentstore.DefaultMaxRetries,
		WrapWithDirectory: false,
	})
	if err != nil {
		return nil, err
	}
	uri := ipfsurl.Scheme + address

	var receipt registry.Receipt
	if norm.TargetURL != "" {
		receipt, err = a.ledger.CreateNoteWithTarget(ctx, handle, uri, norm.TargetURL)
	} else {
		receipt, err = a.ledger.CreateNote(ctx, handle, uri)
	}
	if err != nil {
		return nil, err
	}

	return &models.Outcome{Code: models.CodeSuccess, Message: msgSuccess, Data: receipt.NoteID}, nil
}

// remove submits a deletion transaction after the ownership check.
func (a *Adapter) remove(ctx context.Context, handle, id string) (*models.Outcome, error) {
	parsed, outcome := a.checkID(handle, id)
	if outcome != nil {
		return outcome, nil
	}
	if _, err := a.ledger.DeleteNote(ctx, handle, parsed.Note); err != nil {
		return nil, err
	}
	return &models.Outcome{Code: models.CodeSuccess, Message: msgSuccess}, nil
}

// update merges the stored payload with the normalized input, re-uploads
// it under the original composite id, and repoints the note's URI.
func (a *Adapter) update(ctx context.Context, handle, id string, norm compat.Normalized) (*models.Outcome, error) {
	parsed, outcome := a.checkID(handle, id)
	if outcome != nil {
		return outcome, nil
	}

	ev, err := a.index.GetNote(ctx, handle, parsed.Note)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return failure(msgNoteNotFound), nil
	case err != nil:
		return nil, err
	}

	merged := compat.Merge(ev.Metadata.Content, norm.Payload)
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("noteadapter: encode payload: %w", err)
	}
	address, err := a.store.Put(ctx, raw, contentstore.PutOptions{
		Name:              id,
		MaxRetries:        contentstore.DefaultMaxRetries,
		WrapWithDirectory: false,
	})
	if err != nil {
		return nil, err
	}

	if _, err := a.ledger.SetNoteURI(ctx, handle, parsed.Note, ipfsurl.Scheme+address); err != nil {
		return nil, err
	}
	return &models.Outcome{Code: models.CodeSuccess, Message: msgSuccess}, nil
}

// checkID validates presence and ownership of a composite id. Malformed
// ids fold into the ownership mismatch outcome.
func (a *Adapter) checkID(handle, id string) (noteid.ID, *models.Outcome) {
	if id == "" {
		return noteid.ID{}, failure(msgMissingID)
	}
	parsed, err := noteid.Parse(id)
	if err != nil || !parsed.OwnedBy(handle) {
		return noteid.ID{}, failure(msgWrongID)
	}
	return parsed, nil
}

func failure(msg string) *models.Outcome {
	return &models.Outcome{Code: models.CodeFailure, Message: msg}
}
