package contentstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FS is a Store backed by a local directory, intended for development and
// tests. Blobs are stored under their own content address, so Put is
// idempotent and the directory doubles as a poor man's gateway root.
type FS struct {
	root string
}

// NewFS creates an FS store rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("contentstore: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("contentstore: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("contentstore: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Put writes data under its content address: tmp file → fsync → rename.
func (f *FS) Put(_ context.Context, data []byte, _ PutOptions) (string, error) {
	address, err := Address(data)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(f.root, address)
	if _, err := os.Stat(dst); err == nil {
		// Same bytes, same address; nothing to write.
		return address, nil
	}

	tmp, err := os.CreateTemp(f.root, ".ansuz-tmp-*")
	if err != nil {
		return "", fmt.Errorf("contentstore: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("contentstore: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("contentstore: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("contentstore: close temp: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("contentstore: rename: %w", err)
	}
	success = true
	return address, nil
}

// Get returns the bytes stored under address.
func (f *FS) Get(address string) ([]byte, error) {
	if !ValidAddress(address) {
		return nil, fmt.Errorf("contentstore: invalid address %q", address)
	}
	data, err := os.ReadFile(filepath.Join(f.root, address))
	if err != nil {
		return nil, fmt.Errorf("contentstore: read %s: %w", address, err)
	}
	return data, nil
}

// Has reports whether a blob with the given address is present.
func (f *FS) Has(address string) bool {
	if !ValidAddress(address) {
		return false
	}
	_, err := os.Stat(filepath.Join(f.root, address))
	return err == nil
}
