package compat

import (
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

func TestToStorageFlattensBody(t *testing.T) {
	n := models.Note{
		Body: &models.Content{Content: "hello", MimeType: "text/markdown"},
	}
	got, err := ToStorage(n)
	if err != nil {
		t.Fatalf("ToStorage: %v", err)
	}
	if got.Payload["content"] != "hello" {
		t.Errorf("content = %v, want %q", got.Payload["content"], "hello")
	}
	if _, ok := got.Payload["body"]; ok {
		t.Error("structured body should be removed from stored payload")
	}
}

func TestToStorageFlattensSummary(t *testing.T) {
	n := models.Note{
		Summary: &models.Content{Content: "tl;dr", MimeType: "text/markdown"},
	}
	got, err := ToStorage(n)
	if err != nil {
		t.Fatalf("ToStorage: %v", err)
	}
	if got.Payload["summary"] != "tl;dr" {
		t.Errorf("summary = %v, want flat string", got.Payload["summary"])
	}
}

func TestToStorageExtractsTargetURL(t *testing.T) {
	n := models.Note{RelatedURLs: []string{"https://example.com/post/1"}}
	got, err := ToStorage(n)
	if err != nil {
		t.Fatalf("ToStorage: %v", err)
	}
	if got.TargetURL != "https://example.com/post/1" {
		t.Errorf("TargetURL = %q", got.TargetURL)
	}
	if _, ok := got.Payload["related_urls"]; ok {
		t.Error("related_urls should be removed from stored payload")
	}
}

func TestToStorageRejectsMultipleURLs(t *testing.T) {
	n := models.Note{RelatedURLs: []string{"https://a.example", "https://b.example"}}
	_, err := ToStorage(n)
	if err == nil {
		t.Fatal("expected validation error for two related_urls")
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("error should wrap ErrValidation, got %v", err)
	}
}

func TestToStorageStripsID(t *testing.T) {
	n := models.Note{ID: "5-10"}
	got, err := ToStorage(n)
	if err != nil {
		t.Fatalf("ToStorage: %v", err)
	}
	if _, ok := got.Payload["id"]; ok {
		t.Error("id should never reach the stored payload")
	}
}

func TestFromStorageRestoresStructuredForms(t *testing.T) {
	payload := map[string]any{
		"content": "body text",
		"summary": "short form",
		"title":   "a title",
	}
	note, err := FromStorage(payload)
	if err != nil {
		t.Fatalf("FromStorage: %v", err)
	}
	if note.Body == nil || note.Body.Content != "body text" {
		t.Errorf("body = %+v", note.Body)
	}
	if note.Body.MimeType != DefaultMimeType {
		t.Errorf("body mime = %q", note.Body.MimeType)
	}
	if note.Summary == nil || note.Summary.Content != "short form" {
		t.Errorf("summary = %+v", note.Summary)
	}
	if note.Title != "a title" {
		t.Errorf("title = %q", note.Title)
	}
}

func TestFromStoragePassesStructuredBodyThrough(t *testing.T) {
	payload := map[string]any{
		"body": map[string]any{"content": "already structured", "mime_type": "text/plain"},
	}
	note, err := FromStorage(payload)
	if err != nil {
		t.Fatalf("FromStorage: %v", err)
	}
	if note.Body == nil || note.Body.Content != "already structured" || note.Body.MimeType != "text/plain" {
		t.Errorf("body = %+v", note.Body)
	}
}

func TestRoundTripBody(t *testing.T) {
	in := models.Note{Body: &models.Content{Content: "X", MimeType: "text/markdown"}}
	norm, err := ToStorage(in)
	if err != nil {
		t.Fatalf("ToStorage: %v", err)
	}
	out, err := FromStorage(norm.Payload)
	if err != nil {
		t.Fatalf("FromStorage: %v", err)
	}
	if out.Body == nil || out.Body.Content != "X" {
		t.Fatalf("round-trip body = %+v", out.Body)
	}
}

func TestMergeIsRightBiasedShallow(t *testing.T) {
	existing := map[string]any{"a": 1, "b": 2}
	update := map[string]any{"b": 3, "c": 4}
	got := Merge(existing, update)

	want := map[string]any{"a": 1, "b": 3, "c": 4}
	if len(got) != len(want) {
		t.Fatalf("merged = %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("merged[%q] = %v, want %v", k, got[k], v)
		}
	}
	// Inputs stay untouched.
	if existing["b"] != 2 {
		t.Error("merge must not mutate the existing payload")
	}
}
