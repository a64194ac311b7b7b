package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/meghdad1234/fabric-microservices/internal/handler"
	"github.com/meghdad1234/fabric-microservices/internal/order"
)

type mockOrderService struct {
	CreateFunc  func(ctx context.Context, input order.CreateInput) (order.Order, error)
	ListFunc    func(ctx context.Context) ([]order.Order, error)
	GetByIDFunc func(ctx context.Context, id int64) (order.Order, error)
	AdvanceFunc func(ctx context.Context, id int64, next order.Status) (order.Order, error)
}

func (m *mockOrderService) Create(ctx context.Context, input order.CreateInput) (order.Order, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockOrderService) List(ctx context.Context) ([]order.Order, error) {
	return m.ListFunc(ctx)
}

func (m *mockOrderService) GetByID(ctx context.Context, id int64) (order.Order, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockOrderService) Advance(ctx context.Context, id int64, next order.Status) (order.Order, error) {
	return m.AdvanceFunc(ctx, id, next)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	router := chi.NewRouter()
	handler.NewOrderHandler(svc).RegisterRoutes(router)
	return router
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	validBody := `{
		"customerName": "Ana",
		"customerPhone": "09120000000",
		"items": [{"name": "Silk", "price": 1000, "quantity": 2}],
		"totalAmount": 2000
	}`

	tests := []struct {
		name           string
		body           string
		create         func(ctx context.Context, input order.CreateInput) (order.Order, error)
		expectedStatus int
		bodyContains   string
	}{
		{
			name: "success",
			body: validBody,
			create: func(ctx context.Context, input order.CreateInput) (order.Order, error) {
				return order.Order{
					ID:            1,
					CustomerName:  input.CustomerName,
					CustomerPhone: input.CustomerPhone,
					Items:         input.Items,
					TotalAmount:   input.TotalAmount,
					Status:        order.StatusPending,
				}, nil
			},
			expectedStatus: http.StatusCreated,
			bodyContains:   `"status":"pending"`,
		},
		{
			name: "total_mismatch",
			body: validBody,
			create: func(ctx context.Context, input order.CreateInput) (order.Order, error) {
				return order.Order{}, fmt.Errorf("%w: claimed 2000, computed 3000", order.ErrTotalMismatch)
			},
			expectedStatus: http.StatusBadRequest,
			bodyContains:   "total amount does not match",
		},
		{
			name:           "missing_items",
			body:           `{"customerName":"Ana","customerPhone":"09120000000","totalAmount":2000}`,
			create:         nil,
			expectedStatus: http.StatusBadRequest,
			bodyContains:   `"error":"Validation failed"`,
		},
		{
			name:           "invalid_json",
			body:           `{not json}`,
			create:         nil,
			expectedStatus: http.StatusBadRequest,
			bodyContains:   `"error":"Invalid request payload"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&mockOrderService{CreateFunc: tt.create})

			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.bodyContains)
		})
	}
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           string
		advance        func(ctx context.Context, id int64, next order.Status) (order.Order, error)
		expectedStatus int
		bodyContains   string
	}{
		{
			name: "success",
			url:  "/orders/1/status",
			body: `{"status":"confirmed"}`,
			advance: func(ctx context.Context, id int64, next order.Status) (order.Order, error) {
				return order.Order{ID: id, Status: next}, nil
			},
			expectedStatus: http.StatusOK,
			bodyContains:   `"status":"confirmed"`,
		},
		{
			name: "invalid_transition",
			url:  "/orders/1/status",
			body: `{"status":"delivered"}`,
			advance: func(ctx context.Context, id int64, next order.Status) (order.Order, error) {
				return order.Order{}, fmt.Errorf("%w: pending -> delivered", order.ErrInvalidTransition)
			},
			expectedStatus: http.StatusBadRequest,
			bodyContains:   "invalid order status transition",
		},
		{
			name:           "unknown_status",
			url:            "/orders/1/status",
			body:           `{"status":"cancelled"}`,
			advance:        nil,
			expectedStatus: http.StatusBadRequest,
			bodyContains:   `"error":"Unknown order status: cancelled"`,
		},
		{
			name: "not_found",
			url:  "/orders/42/status",
			body: `{"status":"confirmed"}`,
			advance: func(ctx context.Context, id int64, next order.Status) (order.Order, error) {
				return order.Order{}, order.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
			bodyContains:   `"error":"Order not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&mockOrderService{AdvanceFunc: tt.advance})

			req := httptest.NewRequest(http.MethodPut, tt.url, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.bodyContains)
		})
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	router := newOrderRouter(&mockOrderService{
		ListFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{
				{ID: 1, CustomerName: "Ana", Status: order.StatusPending},
				{ID: 2, CustomerName: "Ben", Status: order.StatusShipped},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerName":"Ana"`)
	assert.Contains(t, rec.Body.String(), `"status":"shipped"`)
}
