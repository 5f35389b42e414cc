// Package noteid implements the composite note identifier used by the
// registry adapter: `{profile handle}-{per-profile note id}`.
package noteid

import (
	"fmt"
	"strings"
)

// ID is a parsed composite note identifier. The Handle component names the
// owning profile on the ledger; the Note component is the per-profile
// sequence number assigned by the creation transaction.
type ID struct {
	Handle string
	Note   string
}

// Format builds the composite string form of an ID.
func Format(handle, note string) string {
	return handle + "-" + note
}

// Parse splits a composite id on the first dash. The handle component may
// not be empty; the note component may (malformed ids surface later as an
// ownership mismatch rather than a distinct error class).
func Parse(s string) (ID, error) {
	handle, note, ok := strings.Cut(s, "-")
	if !ok || handle == "" {
		return ID{}, fmt.Errorf("noteid: malformed id %q", s)
	}
	return ID{Handle: handle, Note: note}, nil
}

// String returns the composite form.
func (id ID) String() string {
	return Format(id.Handle, id.Note)
}

// OwnedBy reports whether the id belongs to the given profile handle.
func (id ID) OwnedBy(handle string) bool {
	return id.Handle == handle
}
