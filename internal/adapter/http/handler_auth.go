package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/slatrack/slatrack/internal/usecase"
	"github.com/slatrack/slatrack/pkg/apperror"
)

// AuthService is the slice of the auth use case the handler needs
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles login requests
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/login", h.Login).Methods("POST")
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.NewBadRequest("Invalid request body"))
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeError(w, apperror.NewUnauthorized("Invalid email or password"))
			return
		}
		writeError(w, apperror.ErrInternalServer)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
