// Package testutil provides shared in-memory fakes for the adapter's
// external collaborators.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/contentstore"
	"github.com/starford/ansuz/internal/registry"
)

// MemoryStore is an in-memory content store. Addresses are real CIDs so
// round-trips through the adapter look like production traffic.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	puts  int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

// Put stores data under its computed content address.
func (s *MemoryStore) Put(_ context.Context, data []byte, _ contentstore.PutOptions) (string, error) {
	address, err := contentstore.Address(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.blobs[address] = append([]byte(nil), data...)
	return address, nil
}

// Get returns the bytes stored under address.
func (s *MemoryStore) Get(address string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[address]
	return data, ok
}

// Puts reports how many uploads happened.
func (s *MemoryStore) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// StaticResolver resolves identities from a fixed map.
type StaticResolver struct {
	Handles map[string]string // identity -> profile handle
}

// Resolve implements registry.IdentityResolver.
func (r *StaticResolver) Resolve(_ context.Context, identity, _ string) (string, bool, error) {
	handle, ok := r.Handles[identity]
	return handle, ok, nil
}

// FakeIndex is an in-memory registry.IndexReader.
type FakeIndex struct {
	Events map[string]registry.Event // "handle-noteID" -> event
	Page   registry.NotesPage        // returned by GetNotes
	// LastQuery records the most recent paginated query.
	LastQuery registry.NotesQuery
}

// GetNote implements registry.IndexReader.
func (f *FakeIndex) GetNote(_ context.Context, handle, noteID string) (*registry.Event, error) {
	ev, ok := f.Events[handle+"-"+noteID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &ev, nil
}

// GetNotes implements registry.IndexReader.
func (f *FakeIndex) GetNotes(_ context.Context, q registry.NotesQuery) (*registry.NotesPage, error) {
	f.LastQuery = q
	page := f.Page
	return &page, nil
}

// LedgerCall records one submitted transaction.
type LedgerCall struct {
	Op        string
	Handle    string
	NoteID    string
	Address   string
	TargetURL string
}

// FakeLedger records submitted transactions and assigns sequential note
// ids for creations.
type FakeLedger struct {
	mu     sync.Mutex
	nextID int64
	Calls  []LedgerCall
	// Err, when set, is returned by every submission.
	Err error
}

// NewFakeLedger creates a ledger whose first created note gets id 1.
func NewFakeLedger() *FakeLedger {
	return &FakeLedger{}
}

func (l *FakeLedger) record(call LedgerCall) (registry.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return registry.Receipt{}, l.Err
	}
	l.Calls = append(l.Calls, call)
	receipt := registry.Receipt{TransactionHash: fmt.Sprintf("0xfake%d", len(l.Calls))}
	if call.Op == "create" || call.Op == "createWithTarget" {
		l.nextID++
		receipt.NoteID = strconv.FormatInt(l.nextID, 10)
	}
	return receipt, nil
}

// CreateNote implements registry.Ledger.
func (l *FakeLedger) CreateNote(_ context.Context, handle, address string) (registry.Receipt, error) {
	return l.record(LedgerCall{Op: "create", Handle: handle, Address: address})
}

// CreateNoteWithTarget implements registry.Ledger.
func (l *FakeLedger) CreateNoteWithTarget(_ context.Context, handle, address, targetURL string) (registry.Receipt, error) {
	return l.record(LedgerCall{Op: "createWithTarget", Handle: handle, Address: address, TargetURL: targetURL})
}

// DeleteNote implements registry.Ledger.
func (l *FakeLedger) DeleteNote(_ context.Context, handle, noteID string) (registry.Receipt, error) {
	return l.record(LedgerCall{Op: "delete", Handle: handle, NoteID: noteID})
}

// SetNoteURI implements registry.Ledger.
func (l *FakeLedger) SetNoteURI(_ context.Context, handle, noteID, address string) (registry.Receipt, error) {
	return l.record(LedgerCall{Op: "setURI", Handle: handle, NoteID: noteID, Address: address})
}
