package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/meghdad1234/fabric-microservices/internal/product"
)

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required"`
	FabricType  string   `json:"fabricType"`
	Width       string   `json:"width"`
	MinOrder    int      `json:"minOrder"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	InStock     *bool    `json:"inStock"`
}

// UpdateProductRequest is a partial edit: any field left empty keeps its
// stored value. InStock is a pointer because false is a meaningful override.
type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    string   `json:"category"`
	FabricType  string   `json:"fabricType"`
	Width       string   `json:"width"`
	MinOrder    int      `json:"minOrder"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	InStock     *bool    `json:"inStock"`
}

type ProductHandler struct {
	service  product.Service
	validate *validator.Validate
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *ProductHandler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProductByID)
	router.Post("/products", h.handleCreateProduct)
	router.Put("/products/{id}", h.handleUpdateProduct)
	router.Delete("/products/{id}", h.handleDeleteProduct)
}

func (h *ProductHandler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list products")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) handleGetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to get product by id")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateProductRequest

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

	p, err := h.service.Create(r.Context(), product.CreateInput{
		Name:        requestPayload.Name,
		Price:       requestPayload.Price,
		Category:    requestPayload.Category,
		FabricType:  requestPayload.FabricType,
		Width:       requestPayload.Width,
		MinOrder:    requestPayload.MinOrder,
		Description: requestPayload.Description,
		Colors:      requestPayload.Colors,
		InStock:     requestPayload.InStock,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product via service")

		clientMessage := "Failed to create product"
		if errors.Is(err, product.ErrInvalidInput) {
			clientMessage = err.Error()
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHandler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload UpdateProductRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	p, err := h.service.Update(r.Context(), id, product.Update{
		Name:        requestPayload.Name,
		Price:       requestPayload.Price,
		Category:    requestPayload.Category,
		FabricType:  requestPayload.FabricType,
		Width:       requestPayload.Width,
		MinOrder:    requestPayload.MinOrder,
		Description: requestPayload.Description,
		Colors:      requestPayload.Colors,
		InStock:     requestPayload.InStock,
	})
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to update product via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update product")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	p, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Int64("product_id", id).Msg("Failed to delete product via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
		"product": p,
	})
}
