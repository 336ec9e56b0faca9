package handlers

import (
	"net/http"
	"time"

	"coworkadmin/internal/apperrors"
	"coworkadmin/internal/pricing"
	"coworkadmin/models"
)

// validateBookingRequest проверяет необходимые поля бронирования
func validateBookingRequest(b *models.Booking) error {
	if b.UserID <= 0 {
		return apperrors.Validation("user_id обязателен")
	}
	if b.TariffID <= 0 {
		return apperrors.Validation("tariff_id обязателен")
	}
	if b.VisitDate.IsZero() {
		return apperrors.Validation("visit_date обязательна")
	}
	if b.DurationHours < 1 {
		return apperrors.Validation("duration_hours должен быть не меньше 1")
	}
	if b.Amount < 0 {
		return apperrors.Validation("amount не может быть отрицательным")
	}
	return nil
}

// CreateBookingHandler обрабатывает POST /api/bookings
func (h *Handler) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := decodeBody(w, r, &booking); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateBookingRequest(&booking); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateBooking(r.Context(), &booking); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

// GetBookingsHandler возвращает бронирования, опционально за дату (date=YYYY-MM-DD)
func (h *Handler) GetBookingsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	var date *time.Time
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.respondError(w, apperrors.Validation("date должна быть в формате YYYY-MM-DD"))
			return
		}
		date = &d
	}

	bookings, err := h.Store.GetBookings(r.Context(), date, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// GetBookingsDetailedHandler - список бронирований с именами для таблицы панели
func (h *Handler) GetBookingsDetailedHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)
	bookings, err := h.Store.GetBookingsDetailed(r.Context(), params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// GetBookingHandler возвращает бронирование по id
func (h *Handler) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	booking, err := h.Store.GetBooking(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// GetBookingFullHandler - бронирование с именами пользователя и тарифа
func (h *Handler) GetBookingFullHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	booking, err := h.Store.GetBookingDetailed(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// UpdateBookingHandler обрабатывает PUT /api/bookings/{id}
func (h *Handler) UpdateBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var booking models.Booking
	if err := decodeBody(w, r, &booking); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateBookingRequest(&booking); err != nil {
		h.respondError(w, err)
		return
	}
	booking.ID = id

	updated, err := h.Store.UpdateBooking(r.Context(), &booking)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteBookingHandler обрабатывает DELETE /api/bookings/{id}
func (h *Handler) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteBooking(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateBookingHandler пересчитывает сумму из тарифа, длительности
// и привязанного промокода, и сохраняет её
func (h *Handler) RecalculateBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	booking, err := h.Store.GetBooking(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	tariff, err := h.Store.GetTariff(r.Context(), booking.TariffID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	discount := 0
	if booking.PromocodeID != nil {
		promo, err := h.Store.GetPromocode(r.Context(), *booking.PromocodeID)
		if err != nil {
			h.respondError(w, err)
			return
		}
		if promo.IsActive {
			discount = promo.DiscountPercent
		}
	}

	amount := pricing.BookingAmount(tariff.Price, booking.DurationHours, discount)
	updated, err := h.Store.SetBookingAmount(r.Context(), id, amount)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
