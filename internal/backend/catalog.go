package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
)

const (
	popularProductLimit = 3
	trendyProductLimit  = 8
)

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "product list", c.endpoint("/products", nil), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search returns products matching the query string.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	q := url.Values{"q": {query}}

	var products []domain.Product
	if err := c.getJSON(ctx, "product search", c.endpoint("/products", q), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Popular returns the short featured-listing slice of the catalog.
func (c *Client) Popular(ctx context.Context) ([]domain.Product, error) {
	return c.limited(ctx, "popular products", popularProductLimit)
}

// Trendy returns the longer trending slice of the catalog.
func (c *Client) Trendy(ctx context.Context) ([]domain.Product, error) {
	return c.limited(ctx, "trendy products", trendyProductLimit)
}

func (c *Client) limited(ctx context.Context, target string, limit int) ([]domain.Product, error) {
	q := url.Values{"_limit": {strconv.Itoa(limit)}}

	var products []domain.Product
	if err := c.getJSON(ctx, target, c.endpoint("/products", q), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog listing by id.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "product", c.endpoint(fmt.Sprintf("/products/%s", id), nil), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a new catalog listing and returns it with its
// server-assigned id.
func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.sendJSON(ctx, http.MethodPost, "create product", c.endpoint("/products", nil), product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces an existing catalog listing.
func (c *Client) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var updated domain.Product
	rawURL := c.endpoint(fmt.Sprintf("/products/%s", product.ID), nil)
	if err := c.sendJSON(ctx, http.MethodPut, "update product", rawURL, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog listing.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "delete product", c.endpoint(fmt.Sprintf("/products/%s", id), nil))
}
