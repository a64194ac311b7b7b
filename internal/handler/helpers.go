// Package handler exposes the HTTP surface of the three backend services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/meghdad1234/fabric-microservices/internal/order"
	"github.com/meghdad1234/fabric-microservices/internal/product"
	"github.com/meghdad1234/fabric-microservices/internal/user"
)

// respondWithError sends a JSON error envelope.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Interface("payload", payload).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, order.ErrInvalidInput),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, order.ErrUnknownStatus),
		errors.Is(err, order.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

// respondWithValidationErrors reports failed validator tags per field, or a
// generic 500 when the error is not a validation result at all.
func respondWithValidationErrors(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Validation failed",
			"details": formatValidationErrors(validationErrors),
		})
		return
	}
	log.Error().Err(err).Msg("Unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
}
