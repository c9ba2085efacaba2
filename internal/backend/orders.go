package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
)

// PlaceOrder submits an order and returns it with its server-assigned id.
func (c *Client) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := c.sendJSON(ctx, http.MethodPost, "place order", c.endpoint("/orders", nil), order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Orders returns all orders owned by ownerID.
func (c *Client) Orders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	query := url.Values{"user_id": {ownerID}}

	var orders []domain.Order
	if err := c.getJSON(ctx, "order list", c.endpoint("/orders", query), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder cancels an order by id. Deleting an order that no longer
// exists succeeds.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	return c.delete(ctx, "delete order", c.endpoint(fmt.Sprintf("/orders/%s", orderID), nil))
}
