package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
	"ecocharge/internal/service"
)

// UsersHandlers groups admin user-management endpoints.
type UsersHandlers struct {
	svc    *service.UserService
	logger *zap.Logger
}

// NewUsersHandlers builds handlers.
func NewUsersHandlers(svc *service.UserService, logger *zap.Logger) *UsersHandlers {
	return &UsersHandlers{svc: svc, logger: logger}
}

type userPayload struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// List handles GET /api/users (admin).
func (h *UsersHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Create handles POST /api/users (admin).
func (h *UsersHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req userPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user := &models.User{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
	}
	if err := h.svc.Create(r.Context(), user, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		writeError(w, http.StatusBadRequest, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      user.ID,
	})
}

// Update handles PUT /api/users/{id} (admin).
func (h *UsersHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req userPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user := &models.User{
		ID:      id,
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := h.svc.Update(r.Context(), user, req.Password); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrEmailInUse):
			writeError(w, http.StatusConflict, "email already registered")
		default:
			h.logger.Error("failed to update user", zap.Int64("user_id", id), zap.Error(err))
			writeError(w, http.StatusBadRequest, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/users/{id} (admin).
func (h *UsersHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to delete user", zap.Int64("user_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
