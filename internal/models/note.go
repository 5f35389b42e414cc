// Package models defines the domain types for Ansuz.
package models

import "time"

// Source identifies the note registry this adapter speaks for.
const Source = "Crossbell Note"

// Network is the ledger network name recorded in note metadata.
const Network = "Crossbell"

// Content is a structured content block with an explicit MIME type.
type Content struct {
	Content  string `json:"content"`
	MimeType string `json:"mime_type,omitempty"`
}

// Attachment references a stored blob by its content-store address.
// The address needs gateway rewriting before it is dereferenceable.
type Attachment struct {
	Address  string `json:"address,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// Metadata carries the on-chain provenance of a note.
type Metadata struct {
	Network      string   `json:"network"`
	Proof        string   `json:"proof"`
	BlockNumber  int64    `json:"block_number"`
	Owner        string   `json:"owner,omitempty"`
	Transactions []string `json:"transactions"`
}

// Note is the platform-agnostic note schema exchanged with callers.
//
// ID is the composite `{profile handle}-{per-profile note id}` key; see
// the noteid package for its parse/format rules.
type Note struct {
	ID string `json:"id,omitempty"`

	DateCreated   *time.Time `json:"date_created,omitempty"`
	DateUpdated   *time.Time `json:"date_updated,omitempty"`
	DatePublished *time.Time `json:"date_published,omitempty"`

	Authors []string `json:"authors,omitempty"`

	Title   string   `json:"title,omitempty"`
	Body    *Content `json:"body,omitempty"`
	Summary *Content `json:"summary,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`
	RelatedURLs []string     `json:"related_urls,omitempty"`
	Tags        []string     `json:"tags,omitempty"`

	Source   string    `json:"source,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Page is a paginated read result.
type Page struct {
	Total  int    `json:"total"`
	Cursor string `json:"cursor,omitempty"`
	List   []Note `json:"list"`
}

// Outcome codes for write operations.
const (
	CodeSuccess = 0
	CodeFailure = 1
)

// Outcome is the structured result of a write operation. Code zero means
// success; any other code is a business failure described by Message.
type Outcome struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
