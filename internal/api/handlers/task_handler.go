package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/wedlux/planner-service/internal/entity"
	"github.com/wedlux/planner-service/internal/usecase"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetTasks - GET /api/tasks?weddingId=
// отдаем свадьбу, задачи с декодированными метаданными и команду
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	weddingID := r.URL.Query().Get("weddingId")

	response, err := h.taskService.ListBoard(r.Context(), userID, weddingID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrWeddingNotFound):
			RespondError(w, http.StatusNotFound, "Wedding not found")
		case errors.Is(err, entity.ErrNoWeddingAvailable):
			RespondError(w, http.StatusNotFound, "No weddings found")
		default:
			log.Printf("❌ Ошибка загрузки задач: %v", err)
			RespondError(w, http.StatusInternalServerError, "Failed to load tasks")
		}
		return
	}

	RespondJSON(w, http.StatusOK, response)
}

// CreateTask - POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTitleRequired):
			RespondError(w, http.StatusBadRequest, "Title is required")
		case errors.Is(err, entity.ErrNoWeddingAvailable):
			RespondError(w, http.StatusBadRequest, "No wedding available for creation")
		default:
			log.Printf("❌ Ошибка создания задачи: %v", err)
			RespondError(w, http.StatusInternalServerError, "Failed to create task")
		}
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"task": task})
}

// UpdateTask - PATCH /api/tasks
// нужен числовой id и хотя бы одно из statusLux/metadata
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTaskIDRequired):
			RespondError(w, http.StatusBadRequest, "Task id is required")
		case errors.Is(err, entity.ErrNoFieldsToUpdate):
			RespondError(w, http.StatusBadRequest, "No updates provided")
		case errors.Is(err, entity.ErrTaskNotFound):
			RespondError(w, http.StatusNotFound, "Task not found")
		default:
			log.Printf("❌ Ошибка обновления задачи: %v", err)
			RespondError(w, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"task": task})
}

// GetInsights - GET /api/tasks/insights?weddingId=
// серверный расчет роллапов борда
func (h *TaskHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	weddingID := r.URL.Query().Get("weddingId")

	response, err := h.taskService.Insights(r.Context(), userID, weddingID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrWeddingNotFound):
			RespondError(w, http.StatusNotFound, "Wedding not found")
		case errors.Is(err, entity.ErrNoWeddingAvailable):
			RespondError(w, http.StatusNotFound, "No weddings found")
		default:
			log.Printf("❌ Ошибка расчета инсайтов: %v", err)
			RespondError(w, http.StatusInternalServerError, "Failed to build insights")
		}
		return
	}

	RespondJSON(w, http.StatusOK, response)
}
