package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RelayLedger submits note transactions through a signing relay service.
// The relay holds the keys and talks to the chain; this client only posts
// transaction intents and reads back receipts.
type RelayLedger struct {
	base  string
	token string
	http  *http.Client
}

// NewRelayLedger creates a ledger client for the relay at base. token, if
// non-empty, is sent as a Bearer credential.
func NewRelayLedger(base, token string) *RelayLedger {
	return &RelayLedger{
		base:  trimSlash(base),
		token: token,
		http:  &http.Client{Timeout: 60 * time.Second},
	}
}

// CreateNote submits a plain note creation transaction.
func (l *RelayLedger) CreateNote(ctx context.Context, handle, address string) (Receipt, error) {
	return l.post(ctx, l.base+"/notes", map[string]string{
		"profileId": handle,
		"uri":       address,
	})
}

// CreateNoteWithTarget submits a creation transaction pointing the note at
// an external URI.
func (l *RelayLedger) CreateNoteWithTarget(ctx context.Context, handle, address, targetURL string) (Receipt, error) {
	return l.post(ctx, l.base+"/notes", map[string]string{
		"profileId": handle,
		"uri":       address,
		"toUri":     targetURL,
	})
}

// DeleteNote submits a note deletion transaction.
func (l *RelayLedger) DeleteNote(ctx context.Context, handle, noteID string) (Receipt, error) {
	u := fmt.Sprintf("%s/notes/%s/%s/delete", l.base, url.PathEscape(handle), url.PathEscape(noteID))
	return l.post(ctx, u, map[string]string{})
}

// SetNoteURI submits a transaction replacing the note's content address.
func (l *RelayLedger) SetNoteURI(ctx context.Context, handle, noteID, address string) (Receipt, error) {
	u := fmt.Sprintf("%s/notes/%s/%s/uri", l.base, url.PathEscape(handle), url.PathEscape(noteID))
	return l.post(ctx, u, map[string]string{"uri": address})
}

func (l *RelayLedger) post(ctx context.Context, u string, body map[string]string) (Receipt, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return Receipt{}, fmt.Errorf("registry: encode transaction: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(raw))
	if err != nil {
		return Receipt{}, fmt.Errorf("registry: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("registry: submit transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Receipt{}, fmt.Errorf("registry: submit transaction %s: unexpected status %d", u, resp.StatusCode)
	}
	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return Receipt{}, fmt.Errorf("registry: decode receipt: %w", err)
	}
	return receipt, nil
}
