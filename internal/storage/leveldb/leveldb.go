// Package leveldb provides the durable device-local KV slot. A LevelDB file
// database is a heavyweight answer for two scalar keys, but it gives atomic
// writes and crash safety without inventing a file format.
package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"revenew/internal/storage"
)

// Store implements storage.KV on a LevelDB database at a fixed path.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database directory.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	value, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("leveldb get %s: %w", key, err)
	}
	return string(value), nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("leveldb put %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database. The store is unusable afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}
