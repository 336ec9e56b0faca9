package handlers

import (
	"net/http"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

// validateAdminRequest проверяет необходимые поля администратора
func validateAdminRequest(a *models.Admin) error {
	if strings.TrimSpace(a.FullName) == "" || len(a.FullName) > 200 {
		return apperrors.Validation("full_name обязателен, не длиннее 200 символов")
	}
	if a.TelegramID <= 0 {
		return apperrors.Validation("telegram_id обязателен")
	}
	switch a.Role {
	case "admin", "superadmin":
		// ok
	default:
		return apperrors.Validation("role должна быть admin или superadmin")
	}
	return nil
}

// CreateAdminHandler обрабатывает POST /api/admins
func (h *Handler) CreateAdminHandler(w http.ResponseWriter, r *http.Request) {
	var admin models.Admin
	if err := decodeBody(w, r, &admin); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateAdminRequest(&admin); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateAdmin(r.Context(), &admin); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, admin)
}

// GetAdminsHandler возвращает всех администраторов
func (h *Handler) GetAdminsHandler(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Store.GetAdmins(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, admins)
}

// GetAdminHandler возвращает администратора по id
func (h *Handler) GetAdminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	admin, err := h.Store.GetAdmin(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, admin)
}

// UpdateAdminHandler обрабатывает PUT /api/admins/{id}
func (h *Handler) UpdateAdminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var admin models.Admin
	if err := decodeBody(w, r, &admin); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateAdminRequest(&admin); err != nil {
		h.respondError(w, err)
		return
	}
	admin.ID = id

	updated, err := h.Store.UpdateAdmin(r.Context(), &admin)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteAdminHandler обрабатывает DELETE /api/admins/{id}
func (h *Handler) DeleteAdminHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteAdmin(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
