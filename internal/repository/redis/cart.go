package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const cartKey = "cart"

// LocalCartStore implements repository.LocalCartStore on top of the
// device-local Redis instance. The whole cart is stored as a single JSON
// array under the `cart` key.
type LocalCartStore struct {
	client *redis.Client
}

// NewLocalCartStore creates a Redis-backed local cart store.
func NewLocalCartStore(client *redis.Client) *LocalCartStore {
	return &LocalCartStore{client: client}
}

// Add appends an entry to the stored sequence, creating it if absent.
// No deduplication: adding the same product twice yields two lines.
func (s *LocalCartStore) Add(ctx context.Context, item domain.LineItem) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	items = append(items, item)

	return s.write(ctx, items)
}

// Remove filters out all entries whose ProductID matches and writes the
// filtered sequence back. Idempotent when the product is absent.
func (s *LocalCartStore) Remove(ctx context.Context, productID string) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	return s.write(ctx, kept)
}

// List returns the current sequence, or an empty slice when the key is
// missing. A stored value that is not valid JSON yields a MalformedState
// error.
func (s *LocalCartStore) List(ctx context.Context) ([]domain.LineItem, error) {
	data, err := s.client.Get(ctx, cartKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.LineItem{}, nil
		}
		return nil, fmt.Errorf("read local cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.MalformedState(cartKey, err)
	}

	return items, nil
}

// Clear deletes the stored sequence entirely.
func (s *LocalCartStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, cartKey).Err(); err != nil {
		return fmt.Errorf("clear local cart: %w", err)
	}
	return nil
}

func (s *LocalCartStore) write(ctx context.Context, items []domain.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal local cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey, data, 0).Err(); err != nil {
		return fmt.Errorf("write local cart: %w", err)
	}

	return nil
}
