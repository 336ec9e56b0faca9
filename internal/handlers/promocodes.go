package handlers

import (
	"net/http"
	"regexp"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

// Имя промокода: 3-20 символов, латиница, цифры, подчёркивание, дефис
var promocodeNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// validatePromocodeRequest проверяет необходимые поля промокода
func validatePromocodeRequest(p *models.Promocode) error {
	if !promocodeNameRe.MatchString(p.Name) {
		return apperrors.Validation("имя промокода: 3-20 символов из A-Za-z0-9_-")
	}
	if p.DiscountPercent < 1 || p.DiscountPercent > 100 {
		return apperrors.Validation("discount_percent должен быть от 1 до 100")
	}
	if p.UsesLeft < 0 {
		return apperrors.Validation("uses_left не может быть отрицательным")
	}
	return nil
}

// CreatePromocodeHandler обрабатывает POST /api/promocodes
func (h *Handler) CreatePromocodeHandler(w http.ResponseWriter, r *http.Request) {
	var promo models.Promocode
	if err := decodeBody(w, r, &promo); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validatePromocodeRequest(&promo); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreatePromocode(r.Context(), &promo); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, promo)
}

// GetPromocodesHandler возвращает все промокоды
func (h *Handler) GetPromocodesHandler(w http.ResponseWriter, r *http.Request) {
	promos, err := h.Store.GetPromocodes(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, promos)
}

// GetPromocodeHandler возвращает промокод по id
func (h *Handler) GetPromocodeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	promo, err := h.Store.GetPromocode(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, promo)
}

// UpdatePromocodeHandler обрабатывает PUT /api/promocodes/{id}
func (h *Handler) UpdatePromocodeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var promo models.Promocode
	if err := decodeBody(w, r, &promo); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validatePromocodeRequest(&promo); err != nil {
		h.respondError(w, err)
		return
	}
	promo.ID = id

	updated, err := h.Store.UpdatePromocode(r.Context(), &promo)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeletePromocodeHandler обрабатывает DELETE /api/promocodes/{id}
func (h *Handler) DeletePromocodeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeletePromocode(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UsePromocodeHandler списывает одно использование промокода
func (h *Handler) UsePromocodeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	promo, err := h.Store.UsePromocode(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, promo)
}
