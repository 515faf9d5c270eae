package sink

import (
	"context"
	"sync"
)

// MemoryStore keeps received events in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	purchases []PurchaseRecord
	downloads []DownloadRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) SavePurchase(_ context.Context, record PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.purchases = append(s.purchases, record)
	return nil
}

func (s *MemoryStore) SaveDownload(_ context.Context, record DownloadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.downloads = append(s.downloads, record)
	return nil
}

func (s *MemoryStore) Purchases(_ context.Context) ([]PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PurchaseRecord(nil), s.purchases...), nil
}

func (s *MemoryStore) Downloads(_ context.Context) ([]DownloadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]DownloadRecord(nil), s.downloads...), nil
}
