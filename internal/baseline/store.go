// Package baseline persists the snapshot accepted by the last successful
// generation of each domain.
//
// Save only stages a snapshot. The caller marks the store dirty and decides
// when to Flush, mirroring how the host editor batches settings writes.
package baseline

import (
	"sync"

	"github.com/simonhull/constgen/internal/snapshot"
)

// Entry is one domain's baseline.
type Entry struct {
	Snapshot snapshot.Snapshot

	// Fingerprint identifies the output settings the file was rendered
	// with. Empty for baselines written before fingerprints were stored.
	Fingerprint string
}

func (e Entry) clone() Entry {
	return Entry{Snapshot: snapshot.Clone(e.Snapshot), Fingerprint: e.Fingerprint}
}

// Store is a keyed baseline store with one slot per domain.
type Store interface {
	// Load returns the baseline for domain. ok is false when none exists.
	Load(domain string) (entry Entry, ok bool, err error)

	// Save stages entry as the new baseline for domain.
	Save(domain string, entry Entry) error

	// MarkDirty records that staged changes need flushing.
	MarkDirty()
}

// MemoryStore keeps baselines in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]Entry
	dirty bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]Entry)}
}

func (m *MemoryStore) Load(domain string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.slots[domain]
	if !ok {
		return Entry{}, false, nil
	}
	return entry.clone(), true, nil
}

func (m *MemoryStore) Save(domain string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[domain] = entry.clone()
	return nil
}

func (m *MemoryStore) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
}

// Dirty reports whether MarkDirty was called since creation.
func (m *MemoryStore) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}
