package handlers

import (
	"net/http"

	"coworkadmin/internal/apperrors"
)

// GetScheduledTasksHandler возвращает отложенные задачи, опционально по статусу
func (h *Handler) GetScheduledTasksHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	status := r.URL.Query().Get("status")
	switch status {
	case "", "pending", "running", "done", "failed", "cancelled":
	default:
		h.respondError(w, apperrors.Validation(
			"status должен быть pending, running, done, failed или cancelled"))
		return
	}

	tasks, err := h.Store.GetScheduledTasks(r.Context(), status, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// GetScheduledTaskHandler возвращает задачу по id
func (h *Handler) GetScheduledTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	task, err := h.Store.GetScheduledTask(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CancelScheduledTaskHandler отменяет задачу; отменить можно только pending
func (h *Handler) CancelScheduledTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	task, err := h.Store.CancelScheduledTask(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}
