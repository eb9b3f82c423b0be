// Package redis provides a Redis-backed instance catalog store for
// deployments that want entries to expire instead of living for the process
// lifetime.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/diversicloud/cloudcompare/internal/domain"
	"github.com/diversicloud/cloudcompare/internal/observability"
)

const keyPrefix = "catalog:instances:"

// CatalogStore implements domain.CatalogStore over Redis with a TTL.
type CatalogStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogStore creates a catalog store. A zero ttl stores entries without
// expiry, matching the in-memory store's semantics.
func NewCatalogStore(client *redis.Client, ttl time.Duration) *CatalogStore {
	return &CatalogStore{client: client, ttl: ttl}
}

// Get returns the stored entry for a region. Transport or decode failures
// are logged and treated as a miss so callers fall through to a re-fetch.
func (s *CatalogStore) Get(ctx context.Context, region string) (*domain.InstanceCatalogEntry, bool) {
	raw, err := s.client.Get(ctx, keyPrefix+region).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.FromContext(ctx).Warn("catalog store get failed",
				observability.String("region", region),
				observability.Error(err),
			)
		}
		return nil, false
	}

	var entry domain.InstanceCatalogEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		observability.FromContext(ctx).Warn("catalog store entry corrupt",
			observability.String("region", region),
			observability.Error(err),
		)
		return nil, false
	}
	return &entry, true
}

// Set stores the entry for a region, applying the configured TTL.
func (s *CatalogStore) Set(ctx context.Context, region string, entry *domain.InstanceCatalogEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode catalog entry: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+region, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store catalog entry: %w", err)
	}
	return nil
}
