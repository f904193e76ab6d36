package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/averyquinn/daybook/internal/models"
)

// MemoryStore is the non-durable fallback used when the durable backend
// cannot be opened (read-only filesystems, sandboxes). Same interface,
// process lifetime only; callers are not told about the degradation and
// must not depend on durability.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(accountKey string, snap *models.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	s.mu.Lock()
	s.docs[accountKey] = doc
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(accountKey string) (*models.Snapshot, error) {
	s.mu.Lock()
	doc, ok := s.docs[accountKey]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
