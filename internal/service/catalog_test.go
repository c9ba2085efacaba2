package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/validator"
)

func TestCatalogService_Products_FailureReturnsEmpty(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("Products", mock.Anything).Return(nil, assert.AnError)

	products := svc.Products(context.Background())

	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogService_Search(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("Search", mock.Anything, "lamp").Return([]domain.Product{{ID: "p-1", Name: "Desk Lamp"}}, nil)

	results := svc.Search(context.Background(), "lamp")

	require.Len(t, results, 1)
	assert.Equal(t, "Desk Lamp", results[0].Name)
}

func TestCatalogService_Search_FailureReturnsEmpty(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("Search", mock.Anything, "lamp").Return(nil, assert.AnError)

	assert.Empty(t, svc.Search(context.Background(), "lamp"))
}

func TestCatalogService_Product_SurfacesError(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("Product", mock.Anything, "p-missing").Return(nil, assert.AnError)

	_, err := svc.Product(context.Background(), "p-missing")

	require.Error(t, err)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.ID == "" && p.Name == "Desk Lamp"
	})).Return(&domain.Product{ID: "p-1", Name: "Desk Lamp"}, nil)

	created, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:     "Desk Lamp",
		Price:    1200,
		Quantity: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)
}

func TestCatalogService_CreateProduct_Invalid(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	_, err := svc.CreateProduct(context.Background(), ProductInput{Price: 1200})

	require.Error(t, err)
	var verr *validator.ValidationError
	assert.ErrorAs(t, err, &verr)
	be.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCatalogService_UpdateProduct_KeepsID(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p domain.Product) bool {
		return p.ID == "p-1"
	})).Return(&domain.Product{ID: "p-1", Name: "Desk Lamp", Price: 900}, nil)

	updated, err := svc.UpdateProduct(context.Background(), "p-1", ProductInput{
		Name:     "Desk Lamp",
		Price:    900,
		Quantity: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(900), updated.Price)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	be := new(mockBackend)
	svc := NewCatalogService(be, newTestLogger())

	be.On("DeleteProduct", mock.Anything, "p-1").Return(nil)

	require.NoError(t, svc.DeleteProduct(context.Background(), "p-1"))
	be.AssertExpectations(t)
}
