package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
)

// PersistEntry creates a server-side cart entry and returns the stored entry
// with its server-assigned id.
func (c *Client) PersistEntry(ctx context.Context, entry domain.RemoteEntry) (*domain.RemoteEntry, error) {
	var created domain.RemoteEntry
	if err := c.sendJSON(ctx, http.MethodPost, "cart entry", c.endpoint("/cart", nil), entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListEntries returns all remote cart entries owned by ownerID.
func (c *Client) ListEntries(ctx context.Context, ownerID string) ([]domain.RemoteEntry, error) {
	query := url.Values{"user_id": {ownerID}}

	var entries []domain.RemoteEntry
	if err := c.getJSON(ctx, "cart entries", c.endpoint("/cart", query), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteEntry removes a remote cart entry by its server-assigned id. Deleting
// an entry that no longer exists succeeds.
func (c *Client) DeleteEntry(ctx context.Context, entryID string) error {
	return c.delete(ctx, "cart entry", c.endpoint(fmt.Sprintf("/cart/%s", entryID), nil))
}
