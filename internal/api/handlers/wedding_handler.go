package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/usecase"
)

type WeddingHandler struct {
	weddingService *usecase.WeddingService
}

func NewWeddingHandler(weddingService *usecase.WeddingService) *WeddingHandler {
	return &WeddingHandler{
		weddingService: weddingService,
	}
}

// ListWeddings - GET /api/weddings
func (h *WeddingHandler) ListWeddings(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	weddings, err := h.weddingService.ListWeddings(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Ошибка загрузки свадеб: %v", err)
		RespondError(w, http.StatusInternalServerError, "Failed to load weddings")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"weddings": weddings})
}

// CreateWedding - POST /api/weddings
func (h *WeddingHandler) CreateWedding(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.CreateWeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	wedding, err := h.weddingService.CreateWedding(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, entity.ErrTitleRequired) {
			RespondError(w, http.StatusBadRequest, "Wedding title is required")
			return
		}
		log.Printf("❌ Ошибка создания свадьбы: %v", err)
		RespondError(w, http.StatusInternalServerError, "Failed to create wedding")
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]any{"wedding": wedding})
}
