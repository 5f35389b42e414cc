// Package compat implements the registry's legacy payload compatibility
// rules. Stored payloads use flat `content` and `summary` string fields;
// the adapter schema uses structured blocks. Both directions are pure
// transforms over payload maps so merge semantics stay shallow.
package compat

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// DefaultMimeType is assumed for legacy flat text fields.
const DefaultMimeType = "text/markdown"

// Normalized is the result of preparing caller input for storage.
type Normalized struct {
	// Payload is the storable form of the input: structured body folded
	// into the flat `content` key, summary flattened, id and related_urls
	// stripped.
	Payload map[string]any
	// TargetURL is the single external URL extracted from related_urls,
	// empty when the input carried none.
	TargetURL string
}

// ToStorage converts caller input into the flat wire form expected by the
// registry. At most one related_url is accepted; more is a validation
// error raised before any network work happens.
func ToStorage(input models.Note) (Normalized, error) {
	if len(input.RelatedURLs) > 1 {
		return Normalized{}, fmt.Errorf("compat: only one related_url is allowed: %w", apperr.ErrValidation)
	}

	payload, err := noteToMap(input)
	if err != nil {
		return Normalized{}, err
	}

	if input.Body != nil {
		payload["content"] = input.Body.Content
		delete(payload, "body")
	}
	if input.Summary != nil {
		payload["summary"] = input.Summary.Content
	}

	var target string
	if len(input.RelatedURLs) == 1 {
		target = input.RelatedURLs[0]
	}
	delete(payload, "related_urls")
	delete(payload, "id")

	return Normalized{Payload: payload, TargetURL: target}, nil
}

// FromStorage decodes a stored payload into the structured schema,
// restoring legacy flat fields: a flat `summary` string becomes a
// structured summary and a flat `content` string becomes the body.
func FromStorage(payload map[string]any) (models.Note, error) {
	work := maps.Clone(payload)

	var flatSummary, flatContent string
	var hasSummary, hasContent bool
	if s, ok := work["summary"].(string); ok {
		flatSummary, hasSummary = s, true
		delete(work, "summary")
	}
	if c, ok := work["content"].(string); ok {
		flatContent, hasContent = c, true
		delete(work, "content")
	}

	raw, err := json.Marshal(work)
	if err != nil {
		return models.Note{}, fmt.Errorf("compat: encode payload: %w", err)
	}
	var note models.Note
	if err := json.Unmarshal(raw, &note); err != nil {
		return models.Note{}, fmt.Errorf("compat: decode payload: %w", err)
	}

	if hasSummary {
		note.Summary = &models.Content{Content: flatSummary, MimeType: DefaultMimeType}
	}
	if hasContent {
		note.Body = &models.Content{Content: flatContent, MimeType: DefaultMimeType}
	}
	return note, nil
}

// Merge combines an existing stored payload with normalized new input.
// The merge is shallow and right-biased: update fields override same-named
// existing fields, every other existing field is preserved.
func Merge(existing, update map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(update))
	maps.Copy(out, existing)
	maps.Copy(out, update)
	return out
}

// noteToMap flattens a Note into a JSON object map, dropping empty fields
// the same way the wire encoding does.
func noteToMap(n models.Note) (map[string]any, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("compat: encode input: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("compat: decode input: %w", err)
	}
	return m, nil
}
