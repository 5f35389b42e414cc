// Package registry defines the contracts of the adapter's external
// collaborators: identity resolution, the note ledger, and the committed
// note index. Implementations in this package are thin HTTP glue; the
// chain client itself lives outside this module.
package registry

import (
	"context"
	"time"
)

// EventMetadata wraps the stored note payload as recorded by the index.
type EventMetadata struct {
	Content map[string]any `json:"content"`
}

// Event is the raw on-chain record of a note as returned by the index.
type Event struct {
	NoteID                 int64         `json:"noteId"`
	CreatedAt              *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt              *time.Time    `json:"updatedAt,omitempty"`
	BlockNumber            int64         `json:"blockNumber"`
	Owner                  string        `json:"owner,omitempty"`
	TransactionHash        string        `json:"transactionHash,omitempty"`
	UpdatedTransactionHash string        `json:"updatedTransactionHash,omitempty"`
	ToURI                  string        `json:"toUri,omitempty"`
	URI                    string        `json:"uri,omitempty"`
	Metadata               EventMetadata `json:"metadata"`
}

// Receipt is returned by ledger submissions. NoteID is only populated for
// creation transactions.
type Receipt struct {
	NoteID          string `json:"noteId,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// IdentityResolver maps a human-readable identity on a platform to a
// numeric profile handle. ok is false when the identity has no profile.
type IdentityResolver interface {
	Resolve(ctx context.Context, identity, platform string) (handle string, ok bool, err error)
}

// Ledger submits signed note transactions.
type Ledger interface {
	CreateNote(ctx context.Context, handle, address string) (Receipt, error)
	CreateNoteWithTarget(ctx context.Context, handle, address, targetURL string) (Receipt, error)
	DeleteNote(ctx context.Context, handle, noteID string) (Receipt, error)
	SetNoteURI(ctx context.Context, handle, noteID, address string) (Receipt, error)
}

// NotesQuery scopes a paginated index query. Cursor and Limit are
// forwarded verbatim to the index.
type NotesQuery struct {
	Handle         string
	TargetURL      string
	Cursor         string
	Limit          int
	IncludeDeleted bool
}

// NotesPage is a page of committed note events. Cursor is non-empty only
// when more pages may exist.
type NotesPage struct {
	Count  int     `json:"count"`
	Cursor string  `json:"cursor,omitempty"`
	List   []Event `json:"list"`
}

// IndexReader queries committed notes. GetNote reports a missing note as
// apperr.ErrNotFound.
type IndexReader interface {
	GetNote(ctx context.Context, handle, noteID string) (*Event, error)
	GetNotes(ctx context.Context, q NotesQuery) (*NotesPage, error)
}
