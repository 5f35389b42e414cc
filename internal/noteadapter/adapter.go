// Package noteadapter is the core of Ansuz: it normalizes raw ledger
// events into the platform-agnostic note schema and drives writes through
// the content store and the ledger.
package noteadapter

import (
	"github.com/starford/ansuz/internal/contentstore"
	"github.com/starford/ansuz/internal/ipfsurl"
	"github.com/starford/ansuz/internal/registry"
)

// DefaultPlatform is assumed when caller options omit a platform.
const DefaultPlatform = "Ethereum"

// DefaultExplorerBase builds transaction explorer URLs.
const DefaultExplorerBase = "https://scan.crossbell.io/tx/"

// Action selects the write operation.
type Action string

// Supported write actions. An empty action defaults to ActionAdd; any
// other value is rejected.
const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

// Filter narrows a read to one note or to notes pointing at a URL.
type Filter struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// GetOptions are the caller options for reads.
type GetOptions struct {
	Identity string `json:"identity,omitempty"`
	Platform string `json:"platform,omitempty"`
	Filter   Filter `json:"filter,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// SetOptions are the caller options for writes.
type SetOptions struct {
	Identity string `json:"identity,omitempty"`
	Platform string `json:"platform,omitempty"`
	Action   Action `json:"action,omitempty"`
}

// Adapter mediates reads and writes against the chain-backed note
// registry. All collaborators are injected at construction; the adapter
// itself holds no mutable state.
type Adapter struct {
	resolver registry.IdentityResolver
	index    registry.IndexReader
	ledger   registry.Ledger
	store    contentstore.Store

	rewriter *ipfsurl.Rewriter
	explorer string
	sniff    func(string) string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithGateway sets the content gateway used to rewrite ipfs:// locators.
func WithGateway(gateway string) Option {
	return func(a *Adapter) {
		a.rewriter = ipfsurl.NewRewriter(gateway)
	}
}

// WithExplorerBase sets the transaction explorer URL prefix.
func WithExplorerBase(base string) Option {
	return func(a *Adapter) {
		a.explorer = base
	}
}

// WithMimeSniffer overrides MIME inference for attachment addresses.
func WithMimeSniffer(sniff func(string) string) Option {
	return func(a *Adapter) {
		a.sniff = sniff
	}
}

// New creates an Adapter over the given collaborators.
func New(resolver registry.IdentityResolver, index registry.IndexReader, ledger registry.Ledger, store contentstore.Store, opts ...Option) *Adapter {
	a := &Adapter{
		resolver: resolver,
		index:    index,
		ledger:   ledger,
		store:    store,
		rewriter: ipfsurl.NewRewriter(""),
		explorer: DefaultExplorerBase,
		sniff:    ipfsurl.MimeType,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func platformOrDefault(platform string) string {
	if platform == "" {
		return DefaultPlatform
	}
	return platform
}
