package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// LocalCartStore is the durable device-local cart list used while no
// authenticated session exists. Entries are kept in insertion order and no
// deduplication is performed; adding the same product twice creates two lines.
type LocalCartStore interface {
	// Add appends an entry to the stored sequence, creating it if absent.
	Add(ctx context.Context, item domain.LineItem) error

	// Remove filters out every entry whose ProductID matches. Removing an
	// absent product is not an error.
	Remove(ctx context.Context, productID string) error

	// List returns the current sequence, or an empty slice when no
	// sequence exists.
	List(ctx context.Context) ([]domain.LineItem, error)

	// Clear deletes the stored sequence entirely.
	Clear(ctx context.Context) error
}

// CredentialStore holds the durable account records the session is derived
// from: the `user` record for shoppers and the `sellerData` record for
// sellers.
type CredentialStore interface {
	// User returns the stored shopper account, or ErrNotFound.
	User(ctx context.Context) (*domain.Account, error)

	// SetUser stores the shopper account record.
	SetUser(ctx context.Context, acct *domain.Account) error

	// DeleteUser removes the shopper account record. Deleting an absent
	// record is not an error.
	DeleteUser(ctx context.Context) error

	// Seller returns the stored seller account, or ErrNotFound.
	Seller(ctx context.Context) (*domain.Account, error)

	// SetSeller stores the seller account record.
	SetSeller(ctx context.Context, acct *domain.Account) error

	// DeleteSeller removes the seller account record.
	DeleteSeller(ctx context.Context) error
}
