package handlers

import (
	"net/http"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

// Сколько последних уведомлений возвращать в check-new
const recentNotificationsLimit = 10

// CheckNewNotificationsHandler обрабатывает GET /api/notifications/check-new
func (h *Handler) CheckNewNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Store.GetRecentNotifications(r.Context(), recentNotificationsLimit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, models.CheckNewResponse{
		HasNew:              len(notifications) > 0,
		RecentNotifications: notifications,
	})
}

// MarkNotificationsReadHandler помечает уведомления прочитанными,
// после чего они перестают попадать в check-new
func (h *Handler) MarkNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IDs []int `json:"ids"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		h.respondError(w, err)
		return
	}
	if len(input.IDs) == 0 {
		h.respondError(w, apperrors.Validation("ids не должен быть пустым"))
		return
	}
	if err := h.Store.MarkNotificationsRead(r.Context(), input.IDs); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
