package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/broadcast"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newOrderService(be *mockBackend, sess domain.Session) (*OrderService, *broadcast.Broadcaster) {
	bus := broadcast.New()
	svc := NewOrderService(be, &stubSessions{sess: sess}, bus, newTestLogger())
	return svc, bus
}

func checkoutInput() PlaceOrderInput {
	return PlaceOrderInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Phone:   "555-0100",
		Address: "1 Main St",
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	be := new(mockBackend)
	svc, bus := newOrderService(be, domain.UserSession("u-1", "Ada"))
	latest := latestSnapshot(bus)

	entries := []domain.RemoteEntry{
		{LineItem: domain.LineItem{ID: "e-1", ProductID: "p-1", Price: 1200, Quantity: 2}, OwnerID: "u-1"},
		{LineItem: domain.LineItem{ID: "e-2", ProductID: "p-2", Price: 900, Quantity: 1}, OwnerID: "u-1"},
	}
	be.On("ListEntries", mock.Anything, "u-1").Return(entries, nil)
	be.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.OwnerID == "u-1" && o.Total == 3300
	})).Return(&domain.Order{ID: "o-1", OwnerID: "u-1", Total: 3300}, nil)
	be.On("DeleteEntry", mock.Anything, "e-1").Return(nil)
	be.On("DeleteEntry", mock.Anything, "e-2").Return(nil)

	placed, err := svc.PlaceOrder(context.Background(), checkoutInput())

	require.NoError(t, err)
	assert.Equal(t, "o-1", placed.ID)
	assert.Equal(t, 0, latest.ItemCount(), "checkout publishes an empty snapshot")
	be.AssertExpectations(t)
}

func TestOrderService_PlaceOrder_Anonymous(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.Anonymous())

	_, err := svc.PlaceOrder(context.Background(), checkoutInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.UserSession("u-1", "Ada"))

	be.On("ListEntries", mock.Anything, "u-1").Return([]domain.RemoteEntry{}, nil)

	_, err := svc.PlaceOrder(context.Background(), checkoutInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	be.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_CleanupFailureStillSucceeds(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.UserSession("u-1", "Ada"))

	entries := []domain.RemoteEntry{
		{LineItem: domain.LineItem{ID: "e-1", Price: 1000, Quantity: 1}, OwnerID: "u-1"},
	}
	be.On("ListEntries", mock.Anything, "u-1").Return(entries, nil)
	be.On("PlaceOrder", mock.Anything, mock.Anything).Return(&domain.Order{ID: "o-1"}, nil)
	be.On("DeleteEntry", mock.Anything, "e-1").Return(assert.AnError)

	placed, err := svc.PlaceOrder(context.Background(), checkoutInput())

	require.NoError(t, err, "the order already succeeded, cleanup failure is logged only")
	assert.Equal(t, "o-1", placed.ID)
}

func TestOrderService_Orders(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.UserSession("u-1", "Ada"))

	be.On("Orders", mock.Anything, "u-1").Return([]domain.Order{{ID: "o-1"}}, nil)

	orders := svc.Orders(context.Background())

	require.Len(t, orders, 1)
}

func TestOrderService_Orders_FailureReturnsEmpty(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.UserSession("u-1", "Ada"))

	be.On("Orders", mock.Anything, "u-1").Return(nil, assert.AnError)

	assert.Empty(t, svc.Orders(context.Background()))
}

func TestOrderService_Orders_AnonymousIsEmpty(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.Anonymous())

	assert.Empty(t, svc.Orders(context.Background()))
	be.AssertNotCalled(t, "Orders", mock.Anything, mock.Anything)
}

func TestOrderService_CancelOrder(t *testing.T) {
	be := new(mockBackend)
	svc, _ := newOrderService(be, domain.UserSession("u-1", "Ada"))

	be.On("DeleteOrder", mock.Anything, "o-1").Return(nil)

	require.NoError(t, svc.CancelOrder(context.Background(), "o-1"))
	be.AssertExpectations(t)
}
