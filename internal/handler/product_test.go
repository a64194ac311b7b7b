package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/meghdad1234/fabric-microservices/internal/handler"
	"github.com/meghdad1234/fabric-microservices/internal/product"
)

type mockProductService struct {
	CreateFunc  func(ctx context.Context, input product.CreateInput) (product.Product, error)
	ListFunc    func(ctx context.Context) ([]product.Product, error)
	GetByIDFunc func(ctx context.Context, id int64) (product.Product, error)
	UpdateFunc  func(ctx context.Context, id int64, upd product.Update) (product.Product, error)
	DeleteFunc  func(ctx context.Context, id int64) (product.Product, error)
}

func (m *mockProductService) Create(ctx context.Context, input product.CreateInput) (product.Product, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockProductService) List(ctx context.Context) ([]product.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockProductService) GetByID(ctx context.Context, id int64) (product.Product, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockProductService) Update(ctx context.Context, id int64, upd product.Update) (product.Product, error) {
	return m.UpdateFunc(ctx, id, upd)
}

func (m *mockProductService) Delete(ctx context.Context, id int64) (product.Product, error) {
	return m.DeleteFunc(ctx, id)
}

func newProductRouter(svc product.Service) *chi.Mux {
	router := chi.NewRouter()
	handler.NewProductHandler(svc).RegisterRoutes(router)
	return router
}

func TestProductHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		create         func(ctx context.Context, input product.CreateInput) (product.Product, error)
		expectedStatus int
		bodyContains   string
	}{
		{
			name: "success",
			body: `{"name":"Raw Silk","price":1000,"category":"silk","minOrder":20}`,
			create: func(ctx context.Context, input product.CreateInput) (product.Product, error) {
				return product.Product{ID: 1, Name: input.Name, Price: input.Price, Category: input.Category, MinOrder: input.MinOrder, InStock: true}, nil
			},
			expectedStatus: http.StatusCreated,
			bodyContains:   `"message":"Product created successfully"`,
		},
		{
			name:           "missing_price",
			body:           `{"name":"Raw Silk","category":"silk"}`,
			create:         nil,
			expectedStatus: http.StatusBadRequest,
			bodyContains:   `"error":"Validation failed"`,
		},
		{
			name:           "unknown_field",
			body:           `{"name":"Raw Silk","price":1000,"category":"silk","sku":"X1"}`,
			create:         nil,
			expectedStatus: http.StatusBadRequest,
			bodyContains:   `"error":"Invalid request payload"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProductRouter(&mockProductService{CreateFunc: tt.create})

			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.bodyContains)
		})
	}
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	var captured product.Update
	router := newProductRouter(&mockProductService{
		UpdateFunc: func(ctx context.Context, id int64, upd product.Update) (product.Product, error) {
			captured = upd
			return product.Product{ID: id, Name: "Raw Silk", Price: 1200, Category: "silk"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/products/1", strings.NewReader(`{"price":1200,"inStock":false}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Product updated successfully"`)
	assert.EqualValues(t, 1200, captured.Price)
	if assert.NotNil(t, captured.InStock) {
		assert.False(t, *captured.InStock)
	}
	assert.Empty(t, captured.Name)
}

func TestProductHandler_DeleteProduct_NotFound(t *testing.T) {
	router := newProductRouter(&mockProductService{
		DeleteFunc: func(ctx context.Context, id int64) (product.Product, error) {
			return product.Product{}, product.ErrNotFound
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/products/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Product not found"`)
}

func TestProductHandler_ListProducts(t *testing.T) {
	router := newProductRouter(&mockProductService{
		ListFunc: func(ctx context.Context) ([]product.Product, error) {
			return []product.Product{
				{ID: 1, Name: "Raw Silk", Price: 1000, Category: "silk", MinOrder: 10, InStock: true},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"minOrder":10`)
	assert.Contains(t, rec.Body.String(), `"inStock":true`)
}
