// Package ipfsurl rewrites content-store locators into dereferenceable
// gateway URLs and infers MIME types from them.
package ipfsurl

import (
	"mime"
	"path"
	"strings"
)

// DefaultGateway is used when no gateway is configured.
const DefaultGateway = "https://ipfs.io/ipfs/"

// Scheme is the locator scheme produced by the content store.
const Scheme = "ipfs://"

// Rewriter turns ipfs:// locators into URLs under a fixed HTTP gateway.
type Rewriter struct {
	gateway string
}

// NewRewriter creates a Rewriter for the given gateway base URL. The base
// should end with a path separator; one is appended if missing.
func NewRewriter(gateway string) *Rewriter {
	if gateway == "" {
		gateway = DefaultGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return &Rewriter{gateway: gateway}
}

// Rewrite converts an ipfs:// locator into a gateway URL. Anything that is
// not an ipfs:// locator is returned unchanged.
func (r *Rewriter) Rewrite(u string) string {
	if !strings.HasPrefix(u, Scheme) {
		return u
	}
	return r.gateway + strings.TrimPrefix(u, Scheme)
}

// MimeType infers a MIME type from the extension of a dereferenceable URL.
// It returns an empty string when nothing can be inferred.
func MimeType(u string) string {
	ext := path.Ext(u)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
