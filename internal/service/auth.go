package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/validator"
)

// AccountBackend is the slice of the remote API auth flows depend on.
type AccountBackend interface {
	CreateUser(ctx context.Context, reg backend.Registration) (*domain.Account, error)
	LoginUser(ctx context.Context, creds backend.Credentials) (*domain.Account, error)
	CreateSeller(ctx context.Context, reg backend.Registration) (*domain.Account, error)
	LoginSeller(ctx context.Context, creds backend.Credentials) (*domain.Account, error)
}

// SignupInput holds the registration form fields.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput holds the login form fields.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService signs users and sellers in and out. A successful user login or
// signup stores the credential record and then reconciles any cart the user
// built while anonymous.
type AuthService struct {
	backend    AccountBackend
	creds      repository.CredentialStore
	reconciler *Reconciler
	bus        *broadcast.Broadcaster
	logger     *slog.Logger
}

func NewAuthService(accounts AccountBackend, creds repository.CredentialStore, reconciler *Reconciler, bus *broadcast.Broadcaster, logger *slog.Logger) *AuthService {
	return &AuthService{
		backend:    accounts,
		creds:      creds,
		reconciler: reconciler,
		bus:        bus,
		logger:     logger,
	}
}

// SignupUser registers a new shopper account, stores its credential record
// and reconciles the anonymous cart.
//
// The returned account is valid even when the error is non-nil: a failed
// reconciliation does not undo the signup, so callers needing the partial
// detail should check errors.Is(err, apperrors.ErrPartialMigrate).
func (s *AuthService) SignupUser(ctx context.Context, in SignupInput) (*domain.Account, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	acct, err := s.backend.CreateUser(ctx, backend.Registration(in))
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	return s.establishUser(ctx, acct)
}

// LoginUser authenticates an existing shopper, stores its credential record
// and reconciles the anonymous cart. The same partial-failure contract as
// SignupUser applies.
func (s *AuthService) LoginUser(ctx context.Context, in LoginInput) (*domain.Account, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	acct, err := s.backend.LoginUser(ctx, backend.Credentials(in))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return s.establishUser(ctx, acct)
}

func (s *AuthService) establishUser(ctx context.Context, acct *domain.Account) (*domain.Account, error) {
	if err := s.creds.SetUser(ctx, acct); err != nil {
		return nil, fmt.Errorf("store credential record: %w", err)
	}
	s.logger.InfoContext(ctx, "user session established", "owner_id", acct.ID)

	if err := s.reconciler.Reconcile(ctx, acct.ID); err != nil {
		return acct, err
	}
	return acct, nil
}

// LogoutUser removes the shopper credential record and publishes an empty
// snapshot so cart badges reset immediately.
func (s *AuthService) LogoutUser(ctx context.Context) error {
	if err := s.creds.DeleteUser(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.bus.Publish(domain.Snapshot{})
	snapshotPublishesTotal.Inc()
	return nil
}

// SignupSeller registers a new seller account and stores its credential
// record. Sellers own no cart, so nothing is reconciled.
func (s *AuthService) SignupSeller(ctx context.Context, in SignupInput) (*domain.Account, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	acct, err := s.backend.CreateSeller(ctx, backend.Registration(in))
	if err != nil {
		return nil, fmt.Errorf("seller signup: %w", err)
	}

	if err := s.creds.SetSeller(ctx, acct); err != nil {
		return nil, fmt.Errorf("store credential record: %w", err)
	}
	s.logger.InfoContext(ctx, "seller session established", "owner_id", acct.ID)
	return acct, nil
}

// LoginSeller authenticates an existing seller and stores its credential
// record.
func (s *AuthService) LoginSeller(ctx context.Context, in LoginInput) (*domain.Account, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	acct, err := s.backend.LoginSeller(ctx, backend.Credentials(in))
	if err != nil {
		return nil, fmt.Errorf("seller login: %w", err)
	}

	if err := s.creds.SetSeller(ctx, acct); err != nil {
		return nil, fmt.Errorf("store credential record: %w", err)
	}
	return acct, nil
}

// LogoutSeller removes the seller credential record.
func (s *AuthService) LogoutSeller(ctx context.Context) error {
	if err := s.creds.DeleteSeller(ctx); err != nil {
		return fmt.Errorf("seller logout: %w", err)
	}
	return nil
}
