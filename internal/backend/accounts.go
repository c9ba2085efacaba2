package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Registration is the payload for creating a new user or seller account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials identifies an existing account at login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountRecord is the backend's account shape. The password comes back on
// the wire but never leaves this package.
type accountRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r accountRecord) account() *domain.Account {
	return &domain.Account{ID: r.ID, Name: r.Name, Email: r.Email}
}

// CreateUser registers a new user account and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, reg Registration) (*domain.Account, error) {
	return c.createAccount(ctx, "user signup", "/Users", reg)
}

// LoginUser checks user credentials against the backend. No matching account
// yields an unauthorized error rather than an empty result.
func (c *Client) LoginUser(ctx context.Context, creds Credentials) (*domain.Account, error) {
	return c.loginAccount(ctx, "user login", "/Users", creds)
}

// CreateSeller registers a new seller account and returns the stored record.
func (c *Client) CreateSeller(ctx context.Context, reg Registration) (*domain.Account, error) {
	return c.createAccount(ctx, "seller signup", "/seller", reg)
}

// LoginSeller checks seller credentials against the backend.
func (c *Client) LoginSeller(ctx context.Context, creds Credentials) (*domain.Account, error) {
	return c.loginAccount(ctx, "seller login", "/seller", creds)
}

func (c *Client) createAccount(ctx context.Context, target, path string, reg Registration) (*domain.Account, error) {
	var record accountRecord
	if err := c.sendJSON(ctx, http.MethodPost, target, c.endpoint(path, nil), reg, &record); err != nil {
		return nil, err
	}
	return record.account(), nil
}

func (c *Client) loginAccount(ctx context.Context, target, path string, creds Credentials) (*domain.Account, error) {
	query := url.Values{
		"email":    {creds.Email},
		"password": {creds.Password},
	}

	var records []accountRecord
	if err := c.getJSON(ctx, target, c.endpoint(path, query), &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return records[0].account(), nil
}
