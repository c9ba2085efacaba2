package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// OrderBackend is the slice of the remote API order flows depend on. Cart
// operations are included because checkout empties the cart it was placed
// from.
type OrderBackend interface {
	PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
	Orders(ctx context.Context, ownerID string) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	ListEntries(ctx context.Context, ownerID string) ([]domain.RemoteEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

// PlaceOrderInput holds the checkout form fields.
type PlaceOrderInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// OrderService places and lists orders for signed-in users. Placing an order
// consumes the remote cart: its total is computed from the cart contents and
// the entries are deleted afterwards.
type OrderService struct {
	backend  OrderBackend
	sessions SessionSource
	bus      *broadcast.Broadcaster
	logger   *slog.Logger
}

func NewOrderService(backend OrderBackend, sessions SessionSource, bus *broadcast.Broadcaster, logger *slog.Logger) *OrderService {
	return &OrderService{
		backend:  backend,
		sessions: sessions,
		bus:      bus,
		logger:   logger,
	}
}

// PlaceOrder submits an order for the signed-in user's current cart, then
// deletes the cart entries and publishes an empty snapshot. Cleanup failures
// are logged rather than surfaced since the order itself already succeeded.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := validator.Validate(in); err != nil {
		return nil, err
	}

	sess := s.sessions.Current(ctx)
	if !sess.IsUser() {
		return nil, apperrors.Unauthorized("sign in to place an order")
	}

	entries, err := s.backend.ListEntries(ctx, sess.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}
	if len(entries) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := domain.Order{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		OwnerID: sess.OwnerID,
		Total:   domain.SnapshotOf(entries).TotalAmount(),
	}

	placed, err := s.backend.PlaceOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	for _, entry := range entries {
		if err := s.backend.DeleteEntry(ctx, entry.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete cart entry after checkout",
				"entry_id", entry.ID, "error", err)
		}
	}
	s.bus.Publish(domain.Snapshot{})
	snapshotPublishesTotal.Inc()

	s.logger.InfoContext(ctx, "order placed",
		"order_id", placed.ID, "total", placed.Total, "items", len(entries))
	return placed, nil
}

// Orders returns the signed-in user's order history, or an empty list on
// read failure.
func (s *OrderService) Orders(ctx context.Context) []domain.Order {
	sess := s.sessions.Current(ctx)
	if !sess.IsUser() {
		return []domain.Order{}
	}

	orders, err := s.backend.Orders(ctx, sess.OwnerID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load order history", "error", err)
		return []domain.Order{}
	}
	return orders
}

// CancelOrder removes an order that has not shipped.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) error {
	if err := s.backend.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	return nil
}
