package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// HTTPResolver resolves identities to profile handles over the registry's
// profile endpoint.
type HTTPResolver struct {
	base string
	http *http.Client
}

// NewHTTPResolver creates a resolver client for the service at base.
func NewHTTPResolver(base string) *HTTPResolver {
	return &HTTPResolver{
		base: trimSlash(base),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Resolve looks up the profile handle for identity on platform. A missing
// profile is reported with ok=false and a nil error.
func (r *HTTPResolver) Resolve(ctx context.Context, identity, platform string) (string, bool, error) {
	params := url.Values{}
	params.Set("identity", identity)
	params.Set("platform", platform)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+"/profiles?"+params.Encode(), nil)
	if err != nil {
		return "", false, fmt.Errorf("registry: build request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("registry: resolve profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode != http.StatusOK:
		return "", false, fmt.Errorf("registry: resolve profile: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		ProfileID string `json:"profileId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false, fmt.Errorf("registry: decode profile response: %w", err)
	}
	if body.ProfileID == "" {
		return "", false, nil
	}
	return body.ProfileID, true, nil
}

// CachedResolver memoizes successful resolutions. Identity-to-handle
// bindings change rarely, so reads tolerate a short TTL; misses are not
// cached so a freshly minted profile shows up on the next call.
type CachedResolver struct {
	next  IdentityResolver
	cache *gocache.Cache
}

// NewCachedResolver wraps next with a TTL cache.
func NewCachedResolver(next IdentityResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Resolve implements IdentityResolver.
func (r *CachedResolver) Resolve(ctx context.Context, identity, platform string) (string, bool, error) {
	key := platform + "\x00" + identity
	if handle, found := r.cache.Get(key); found {
		return handle.(string), true, nil
	}
	handle, ok, err := r.next.Resolve(ctx, identity, platform)
	if err != nil || !ok {
		return "", ok, err
	}
	r.cache.SetDefault(key, handle)
	return handle, true, nil
}
