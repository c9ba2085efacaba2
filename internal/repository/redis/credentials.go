package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const (
	userKey   = "user"
	sellerKey = "sellerData"
)

// CredentialStore implements repository.CredentialStore on top of the
// device-local Redis instance. Account records are stored as JSON blobs
// under the `user` and `sellerData` keys.
type CredentialStore struct {
	client *redis.Client
}

// NewCredentialStore creates a Redis-backed credential store.
func NewCredentialStore(client *redis.Client) *CredentialStore {
	return &CredentialStore{client: client}
}

// User returns the stored shopper account, or ErrNotFound.
func (s *CredentialStore) User(ctx context.Context) (*domain.Account, error) {
	return s.read(ctx, userKey)
}

// SetUser stores the shopper account record.
func (s *CredentialStore) SetUser(ctx context.Context, acct *domain.Account) error {
	return s.set(ctx, userKey, acct)
}

// DeleteUser removes the shopper account record.
func (s *CredentialStore) DeleteUser(ctx context.Context) error {
	return s.delete(ctx, userKey)
}

// Seller returns the stored seller account, or ErrNotFound.
func (s *CredentialStore) Seller(ctx context.Context) (*domain.Account, error) {
	return s.read(ctx, sellerKey)
}

// SetSeller stores the seller account record.
func (s *CredentialStore) SetSeller(ctx context.Context, acct *domain.Account) error {
	return s.set(ctx, sellerKey, acct)
}

// DeleteSeller removes the seller account record.
func (s *CredentialStore) DeleteSeller(ctx context.Context) error {
	return s.delete(ctx, sellerKey)
}

func (s *CredentialStore) read(ctx context.Context, key string) (*domain.Account, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("credential record", key)
		}
		return nil, fmt.Errorf("read credential %q: %w", key, err)
	}

	var acct domain.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, apperrors.MalformedState(key, err)
	}

	return &acct, nil
}

func (s *CredentialStore) set(ctx context.Context, key string, acct *domain.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal credential %q: %w", key, err)
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("write credential %q: %w", key, err)
	}

	return nil
}

func (s *CredentialStore) delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}
	return nil
}
