// Package service implements the storefront's business logic: session-routed
// cart mutations, login-time cart reconciliation, catalog reads, orders and
// account auth. Cart state changes are published on the broadcaster so UI
// consumers stay current.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartBackend is the slice of the remote API the cart flows depend on.
type CartBackend interface {
	PersistEntry(ctx context.Context, entry domain.RemoteEntry) (*domain.RemoteEntry, error)
	ListEntries(ctx context.Context, ownerID string) ([]domain.RemoteEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

// SessionSource resolves the currently active session.
type SessionSource interface {
	Current(ctx context.Context) domain.Session
}

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID   string `json:"product_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
	Color       string `json:"color"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
}

func (in AddItemInput) lineItem() domain.LineItem {
	return domain.LineItem{
		ProductID:   in.ProductID,
		Name:        in.Name,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Color:       in.Color,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

// CartService routes cart mutations to the store the active session owns:
// the durable local store while unauthenticated, the backend cart collection
// once a user is signed in.
type CartService struct {
	local    repository.LocalCartStore
	backend  CartBackend
	sessions SessionSource
	bus      *broadcast.Broadcaster
	logger   *slog.Logger
}

func NewCartService(local repository.LocalCartStore, backend CartBackend, sessions SessionSource, bus *broadcast.Broadcaster, logger *slog.Logger) *CartService {
	return &CartService{
		local:    local,
		backend:  backend,
		sessions: sessions,
		bus:      bus,
		logger:   logger,
	}
}

// AddItem adds a line to the active cart and publishes the updated snapshot.
// Adding the same product twice creates two lines; the quantity is fixed at
// add time.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) error {
	if err := validator.Validate(in); err != nil {
		return err
	}

	sess := s.sessions.Current(ctx)
	if sess.IsUser() {
		entry := domain.RemoteEntry{LineItem: in.lineItem(), OwnerID: sess.OwnerID}
		if _, err := s.backend.PersistEntry(ctx, entry); err != nil {
			return fmt.Errorf("add item: %w", err)
		}
	} else {
		if err := s.local.Add(ctx, in.lineItem()); err != nil {
			return fmt.Errorf("add item: %w", err)
		}
	}

	cartMutationsTotal.WithLabelValues("add", string(sess.Kind)).Inc()
	s.publishCurrent(ctx, sess)
	return nil
}

// RemoveItem removes cart lines and publishes the updated snapshot. While
// unauthenticated, ref is a product id and every matching line is removed;
// once a user is signed in, ref is the server-assigned entry id of a single
// line. Removing something already gone succeeds.
func (s *CartService) RemoveItem(ctx context.Context, ref string) error {
	sess := s.sessions.Current(ctx)
	if sess.IsUser() {
		if err := s.backend.DeleteEntry(ctx, ref); err != nil {
			return fmt.Errorf("remove item: %w", err)
		}
	} else {
		if err := s.local.Remove(ctx, ref); err != nil {
			return fmt.Errorf("remove item: %w", err)
		}
	}

	cartMutationsTotal.WithLabelValues("remove", string(sess.Kind)).Inc()
	s.publishCurrent(ctx, sess)
	return nil
}

// Snapshot returns the active cart's current contents. Read failures degrade
// to an empty snapshot so display surfaces never break on a flaky backend.
func (s *CartService) Snapshot(ctx context.Context) domain.Snapshot {
	return s.snapshotFor(ctx, s.sessions.Current(ctx))
}

// Refresh reloads the active cart and publishes it.
func (s *CartService) Refresh(ctx context.Context) {
	s.publishCurrent(ctx, s.sessions.Current(ctx))
}

func (s *CartService) snapshotFor(ctx context.Context, sess domain.Session) domain.Snapshot {
	if sess.IsUser() {
		entries, err := s.backend.ListEntries(ctx, sess.OwnerID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to load remote cart, using empty snapshot", "error", err)
			return domain.Snapshot{}
		}
		return domain.SnapshotOf(entries)
	}

	items, err := s.local.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load local cart, using empty snapshot", "error", err)
		return domain.Snapshot{}
	}
	return domain.Snapshot(items)
}

func (s *CartService) publishCurrent(ctx context.Context, sess domain.Session) {
	snap := s.snapshotFor(ctx, sess)
	s.bus.Publish(snap)
	snapshotPublishesTotal.Inc()
}
