package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store implements ports.Store on top of Redis string keys.
// Every key is stored as prefix+key with no expiry.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps an existing client.
func NewStore(client *redis.Client, prefix string) *Store {
	if client == nil {
		panic("redisstore.NewStore: client is nil")
	}
	return &Store{client: client, prefix: prefix}
}

// Dial creates a client for addr and verifies the connection.
func Dial(ctx context.Context, opts *redis.Options, prefix string) (*Store, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStore(client, prefix), nil
}

// DialRetry is Dial with up to attempts tries, backing off between them.
func DialRetry(ctx context.Context, opts *redis.Options, prefix string, attempts int, initial time.Duration) (*Store, error) {
	if attempts < 1 {
		attempts = 1
	}
	b := newBackoff(initial, 30*initial)
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if werr := b.wait(ctx); werr != nil {
				return nil, werr
			}
		}
		var s *Store
		if s, err = Dial(ctx, opts, prefix); err == nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("redis unreachable after %d attempts: %w", attempts, err)
}

// Get returns the value under key. A missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set overwrites the value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
