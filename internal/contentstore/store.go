// Package contentstore uploads note payloads to a content-addressed
// store and returns their content addresses.
package contentstore

import (
	"context"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// DefaultMaxRetries bounds upload attempts when PutOptions leaves
// MaxRetries unset.
const DefaultMaxRetries = 3

// PutOptions control a single upload.
type PutOptions struct {
	// Name is the blob name recorded alongside the upload.
	Name string
	// MaxRetries bounds upload attempts (total tries, not re-tries).
	MaxRetries int
	// WrapWithDirectory wraps the blob in a directory object when true.
	// Note payloads are stored bare.
	WrapWithDirectory bool
}

// Store is the content store contract. Put returns the content address
// (a CID string, without the ipfs:// scheme) of the stored bytes.
type Store interface {
	Put(ctx context.Context, data []byte, opts PutOptions) (string, error)
}

// Address computes the CIDv1 (raw codec, sha2-256) content address of
// data. Local backends use it to derive addresses; remote backends use it
// to cross-check what the server reports.
func Address(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("contentstore: hash payload: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// ValidAddress reports whether s parses as a CID.
func ValidAddress(s string) bool {
	_, err := cid.Decode(s)
	return err == nil
}
