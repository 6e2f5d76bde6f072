package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ecocharge/internal/service"
)

// NewLoginHandler handles POST /api/login.
func NewLoginHandler(authService *service.AuthService) http.HandlerFunc {
	type sessionUser struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	type response struct {
		Success bool        `json:"success"`
		Token   string      `json:"token"`
		User    sessionUser `json:"user"`
	}
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		session, user, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnknownIdentity):
				writeError(w, http.StatusNotFound, "unknown user")
			case errors.Is(err, service.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid credentials")
			default:
				writeError(w, http.StatusInternalServerError, "failed to login")
			}
			return
		}

		writeJSON(w, http.StatusOK, response{
			Success: true,
			Token:   session.Token,
			User:    sessionUser{ID: user.ID, Role: user.Role},
		})
	}
}
