// Package session resolves the active identity from locally persisted
// credential records. A user record takes precedence over a seller record
// when both are present.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Manager derives the current session from stored credentials.
type Manager struct {
	creds  repository.CredentialStore
	logger *slog.Logger
}

func NewManager(creds repository.CredentialStore, logger *slog.Logger) *Manager {
	return &Manager{creds: creds, logger: logger}
}

// Current returns the active session. An absent or unreadable credential
// record degrades to the anonymous session rather than failing the caller.
func (m *Manager) Current(ctx context.Context) domain.Session {
	user, err := m.creds.User(ctx)
	if err == nil {
		return domain.UserSession(user.ID, user.Name)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		m.logger.WarnContext(ctx, "failed to read user credential record", "error", err)
	}

	seller, err := m.creds.Seller(ctx)
	if err == nil {
		return domain.SellerSession(seller.ID, seller.Name)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		m.logger.WarnContext(ctx, "failed to read seller credential record", "error", err)
	}

	return domain.Anonymous()
}
