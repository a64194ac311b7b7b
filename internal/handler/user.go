package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/meghdad1234/fabric-microservices/internal/user"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleListUsers)
	router.Get("/users/{id}", h.handleGetUserByID)
	router.Post("/users", h.handleCreateUser)
	router.Put("/users/{id}", h.handleUpdateUser)
	router.Delete("/users/{id}", h.handleDeleteUser)
	router.Post("/users/login", h.handleLogin)
}

func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list users")
		return
	}
	respondWithJSON(w, http.StatusOK, views)
}

func (h *UserHandler) handleGetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	view, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by id")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to get user")
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var requestPayload CreateUserRequest

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

	view, err := h.service.Register(r.Context(), user.RegisterInput{
		Name:     requestPayload.Name,
		Email:    requestPayload.Email,
		Password: requestPayload.Password,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user via service")

		clientMessage := "Failed to create user"
		if errors.Is(err, user.ErrEmailExists) {
			clientMessage = "Email already registered"
		} else if errors.Is(err, user.ErrInvalidInput) {
			clientMessage = err.Error()
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    view,
	})
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	var requestPayload UpdateUserRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	view, err := h.service.Update(r.Context(), id, user.UpdateInput{
		Name:  requestPayload.Name,
		Email: requestPayload.Email,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to update user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    view,
	})
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return
	}

	view, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to delete user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
		"user":    view,
	})
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var requestPayload LoginRequest

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

	view, err := h.service.Login(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			// One generic message for unknown email and wrong password alike.
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("Failed to log user in via service")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    view,
	})
}
