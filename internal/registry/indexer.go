package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/starford/ansuz/internal/apperr"
)

// IndexerClient is an IndexReader backed by the registry's HTTP index.
type IndexerClient struct {
	base string
	http *http.Client
}

// NewIndexerClient creates a client for the index at base (no trailing
// slash required).
func NewIndexerClient(base string) *IndexerClient {
	return &IndexerClient{
		base: trimSlash(base),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetNote fetches a single committed note by profile handle and note id.
func (c *IndexerClient) GetNote(ctx context.Context, handle, noteID string) (*Event, error) {
	u := fmt.Sprintf("%s/notes/%s/%s", c.base, url.PathEscape(handle), url.PathEscape(noteID))
	var ev Event
	if err := c.getJSON(ctx, u, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// GetNotes runs a paginated query against the index.
func (c *IndexerClient) GetNotes(ctx context.Context, q NotesQuery) (*NotesPage, error) {
	params := url.Values{}
	params.Set("includeDeleted", strconv.FormatBool(q.IncludeDeleted))
	if q.Handle != "" {
		params.Set("profileId", q.Handle)
	}
	if q.TargetURL != "" {
		params.Set("toUri", q.TargetURL)
	}
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var page NotesPage
	if err := c.getJSON(ctx, c.base+"/notes?"+params.Encode(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *IndexerClient) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("registry: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("registry: index query: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("registry: index query %s: unexpected status %d", u, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("registry: decode index response: %w", err)
	}
	return nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
