package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Web3Store uploads blobs to a web3.storage-compatible HTTP endpoint.
// Uploads get a bounded retry with exponential backoff; every other
// failure mode propagates to the caller untouched.
type Web3Store struct {
	base  string
	token string
	http  *http.Client
}

// NewWeb3Store creates a store client for the upload service at base,
// authenticated with the given API token.
func NewWeb3Store(base, token string) *Web3Store {
	return &Web3Store{
		base:  trimSlash(base),
		token: token,
		http:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Put uploads data and returns the content address reported by the
// service. The reported address must parse as a CID.
func (s *Web3Store) Put(ctx context.Context, data []byte, opts PutOptions) (string, error) {
	tries := opts.MaxRetries
	if tries <= 0 {
		tries = DefaultMaxRetries
	}

	address, err := backoff.Retry(ctx, func() (string, error) {
		return s.upload(ctx, data, opts)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(tries)),
	)
	if err != nil {
		return "", fmt.Errorf("contentstore: upload %q: %w", opts.Name, err)
	}
	return address, nil
}

func (s *Web3Store) upload(ctx context.Context, data []byte, opts PutOptions) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/upload", bytes.NewReader(data))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if opts.Name != "" {
		req.Header.Set("X-Name", opts.Name)
	}
	req.Header.Set("X-Wrap-With-Directory", strconv.FormatBool(opts.WrapWithDirectory))

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		// Server-side trouble is worth another try.
		return "", fmt.Errorf("upload: status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("upload: status %d", resp.StatusCode))
	}

	var body struct {
		CID string `json:"cid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if !ValidAddress(body.CID) {
		return "", backoff.Permanent(fmt.Errorf("service returned invalid address %q", body.CID))
	}
	return body.CID, nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
