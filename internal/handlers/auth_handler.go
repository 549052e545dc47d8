package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"wordgrid/internal/service"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.authService.Enabled() {
		respondWithError(w, http.StatusServiceUnavailable, "Admin API is disabled", "", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Username and password are required", "", nil)
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Login failed", "Login failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
