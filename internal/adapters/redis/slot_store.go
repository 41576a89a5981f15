package redis

// Package redis provides Redis-based adapters for bookstore-admin.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.SlotStore = (*SlotStore)(nil)

// DefaultPrefix namespaces slot keys.
const DefaultPrefix = "bookstore-admin:"

// SlotStore persists session slots in Redis so several shells share one session.
type SlotStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// SlotStoreOptions configures a SlotStore.
type SlotStoreOptions struct {
	Client redis.UniversalClient
	Prefix string
	// TTL bounds how long a slot survives without being rewritten. Zero keeps slots forever.
	TTL time.Duration
}

// NewSlotStore creates a new Redis-based slot store.
func NewSlotStore(opts SlotStoreOptions) (*SlotStore, error) {
	if opts.Client == nil {
		return nil, errors.New("redis client is required")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SlotStore{client: opts.Client, prefix: prefix, ttl: opts.TTL}, nil
}

func (s *SlotStore) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (s *SlotStore) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("slot key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes keys in one round trip. Missing keys are not an error.
func (s *SlotStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			full = append(full, s.prefix+k)
		}
	}
	if len(full) == 0 {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
