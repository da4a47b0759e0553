// Package bolt implements the document store on a local BoltDB file,
// for single-node deployments that do not run Redis.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	boltlib "go.etcd.io/bbolt"

	"github.com/tasksync/backend/store"
)

// Store keeps each top-level path segment in its own bucket; the
// remainder of the path is the key within it.
type Store struct {
	db *boltlib.DB
}

// Open initializes the BoltDB file.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltlib.Open(path, 0o600, &boltlib.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

var _ store.Client = (*Store)(nil)

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	bucket, key := store.Split(path)

	var value []byte
	err := s.db.View(func(tx *boltlib.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	return json.RawMessage(value), true, nil
}

func (s *Store) Set(ctx context.Context, path string, value interface{}) error {
	bucket, key := store.Split(path)

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *boltlib.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), payload)
	})
}

func (s *Store) Remove(ctx context.Context, path string) error {
	bucket, key := store.Split(path)

	return s.db.Update(func(tx *boltlib.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func (s *Store) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	docs := make(map[string]json.RawMessage)

	err := s.db.View(func(tx *boltlib.Tx) error {
		b := tx.Bucket([]byte(prefix))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			docs[string(k)] = append(json.RawMessage(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Close closes the underlying Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
