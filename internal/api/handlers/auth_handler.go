package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/usecase"
)

type AuthHandler struct {
	authService *usecase.AuthService
}

func NewAuthHandler(authService *usecase.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.Password == "" {
		RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	response, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrEmailTaken) {
			RespondError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("❌ Ошибка регистрации: %v", err)
		RespondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	RespondJSON(w, http.StatusCreated, response)
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	response, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			RespondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("❌ Ошибка логина: %v", err)
		RespondError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	RespondJSON(w, http.StatusOK, response)
}

// Refresh - POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req entity.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RefreshToken == "" {
		RespondError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	response, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidToken) {
			RespondError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		log.Printf("❌ Ошибка обновления токена: %v", err)
		RespondError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	RespondJSON(w, http.StatusOK, response)
}
