package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/meghdad1234/fabric-microservices/internal/order"
)

type OrderItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required"`
	CustomerPhone string             `json:"customerPhone" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64              `json:"totalAmount" validate:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{id}", h.handleGetOrderByID)
	router.Post("/orders", h.handleCreateOrder)
	router.Put("/orders/{id}/status", h.handleUpdateOrderStatus)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list orders")
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleGetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error().Err(err).Int64("order_id", id).Msg("Failed to get order by id")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	items := make([]order.Item, 0, len(requestPayload.Items))
	for _, item := range requestPayload.Items {
		items = append(items, order.Item{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	o, err := h.service.Create(r.Context(), order.CreateInput{
		CustomerName:  requestPayload.CustomerName,
		CustomerPhone: requestPayload.CustomerPhone,
		Items:         items,
		TotalAmount:   requestPayload.TotalAmount,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create order via service")

		clientMessage := "Failed to create order"
		if errors.Is(err, order.ErrInvalidInput) || errors.Is(err, order.ErrTotalMismatch) {
			clientMessage = err.Error()
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   o,
	})
}

func (h *OrderHandler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload UpdateOrderStatusRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithValidationErrors(w, err)
		return
	}

	next, err := order.ParseStatus(requestPayload.Status)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown order status: "+requestPayload.Status)
		return
	}

	o, err := h.service.Advance(r.Context(), id, next)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, order.ErrInvalidTransition) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Int64("order_id", id).Msg("Failed to update order status via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update order status")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   o,
	})
}
