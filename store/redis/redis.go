// Package redis implements the document store over a Redis keyspace.
package redis

import (
	"context"
	"encoding/json"
	"strings"

	redislib "github.com/redis/go-redis/v9"

	"github.com/tasksync/backend/store"
)

const defaultNamespace = "doc:"

// Store maps document paths onto namespaced Redis keys. List walks the
// keyspace with SCAN, so full scans stay incremental on large trees.
type Store struct {
	client    *redislib.Client
	namespace string
}

// New creates a Redis-backed document store.
func New(client *redislib.Client, namespace string) *Store {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Store{
		client:    client,
		namespace: namespace,
	}
}

var _ store.Client = (*Store)(nil)

func (s *Store) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	result, err := s.client.Get(ctx, s.key(path)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(result), true, nil
}

func (s *Store) Set(ctx context.Context, path string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(path), payload, 0).Err()
}

func (s *Store) Remove(ctx context.Context, path string) error {
	return s.client.Del(ctx, s.key(path)).Err()
}

func (s *Store) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	pattern := s.key(prefix) + "/*"
	docs := make(map[string]json.RawMessage)

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			value, err := s.client.Get(ctx, key).Result()
			if err != nil {
				if err == redislib.Nil {
					// expired between SCAN and GET
					continue
				}
				return nil, err
			}
			child := strings.TrimPrefix(key, s.key(prefix)+"/")
			docs[child] = json.RawMessage(value)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return docs, nil
}

func (s *Store) key(path string) string {
	return s.namespace + path
}
