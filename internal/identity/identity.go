// Package identity manages the stable anonymous user identifier. The id is
// generated once and persisted; whether it survives an app reinstall is a
// property of the backing store, not of this package.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"revenew/internal/storage"
)

type Service struct {
	kv storage.KV
}

func New(kv storage.KV) *Service {
	return &Service{kv: kv}
}

// GetOrCreate returns the device identity, creating and persisting a new one
// on first use. firstLaunch is true only on the call that created the id;
// every later call returns the same id with firstLaunch=false.
func (s *Service) GetOrCreate(ctx context.Context) (id string, firstLaunch bool, err error) {
	existing, err := s.kv.Get(ctx, storage.KeyUserID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", false, fmt.Errorf("read user id: %w", err)
	}

	id = uuid.NewString()
	if err := s.kv.Set(ctx, storage.KeyUserID, id); err != nil {
		return "", false, fmt.Errorf("persist user id: %w", err)
	}
	return id, true, nil
}
