package handlers

import (
	"net/http"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

// validateTariffRequest проверяет необходимые поля тарифа
func validateTariffRequest(t *models.Tariff) error {
	if strings.TrimSpace(t.Name) == "" || len(t.Name) > 100 {
		return apperrors.Validation("name обязателен, не длиннее 100 символов")
	}
	if t.Price < 0 {
		return apperrors.Validation("price не может быть отрицательным")
	}
	switch t.Unit {
	case "hour", "day", "month", "meeting_room":
		// ok
	default:
		return apperrors.Validation("unit должен быть hour, day, month или meeting_room")
	}
	return nil
}

// CreateTariffHandler обрабатывает POST /api/tariffs
func (h *Handler) CreateTariffHandler(w http.ResponseWriter, r *http.Request) {
	var tariff models.Tariff
	if err := decodeBody(w, r, &tariff); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateTariffRequest(&tariff); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateTariff(r.Context(), &tariff); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tariff)
}

// GetTariffsHandler возвращает все тарифы
func (h *Handler) GetTariffsHandler(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.Store.GetTariffs(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariffs)
}

// GetTariffHandler возвращает тариф по id
func (h *Handler) GetTariffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	tariff, err := h.Store.GetTariff(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tariff)
}

// UpdateTariffHandler обрабатывает PUT /api/tariffs/{id}
func (h *Handler) UpdateTariffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var tariff models.Tariff
	if err := decodeBody(w, r, &tariff); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateTariffRequest(&tariff); err != nil {
		h.respondError(w, err)
		return
	}
	tariff.ID = id

	updated, err := h.Store.UpdateTariff(r.Context(), &tariff)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTariffHandler обрабатывает DELETE /api/tariffs/{id}
func (h *Handler) DeleteTariffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteTariff(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
