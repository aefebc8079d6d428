// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"productstore/internal/api/types"
	"productstore/internal/domain"
	"productstore/internal/service"
	"productstore/internal/util"
)

// UserHandler handles HTTP requests related to users.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangeEmailRequest represents the request body for an email change.
type ChangeEmailRequest struct {
	Email string `json:"email"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusCreated, user)
}

// List handles GET /users, optionally paginated via page/size query params.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, size, paged, err := pageParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if !paged {
		users, err := h.service.ListUsers(r.Context())
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		respondWithJSON(h.logger, w, http.StatusOK, users)
		return
	}

	users, err := h.service.ListUsersPage(r.Context(), page, size)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.User]{
		Data: users,
		Page: page,
		Size: size,
	})
}

// Get handles GET /users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, user)
}

// ChangeEmail handles PUT /users/{userID}.
func (h *UserHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	var req ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	user, err := h.service.ChangeEmail(r.Context(), id, req.Email)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, user)
}

// Delete handles DELETE /users/{userID}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userID")
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
