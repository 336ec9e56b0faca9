package handlers

import (
	"net/http"
	"strings"
	"time"

	"coworkadmin/internal/apperrors"
	"coworkadmin/internal/pricing"
	"coworkadmin/models"

	"go.uber.org/zap"
)

// officeResponse - офис с эффективной ценой месяца после скидки за срок
type officeResponse struct {
	models.Office
	EffectiveMonthlyPrice int `json:"effective_monthly_price"`
}

type officeDetailResponse struct {
	models.OfficeDetail
	EffectiveMonthlyPrice int `json:"effective_monthly_price"`
}

// validateOfficeRequest проверяет необходимые поля офиса
func validateOfficeRequest(o *models.Office) error {
	if strings.TrimSpace(o.OfficeNumber) == "" || len(o.OfficeNumber) > 20 {
		return apperrors.Validation("office_number обязателен, не длиннее 20 символов")
	}
	if o.Capacity < 1 {
		return apperrors.Validation("capacity должен быть не меньше 1")
	}
	if o.PricePerMonth < 0 {
		return apperrors.Validation("price_per_month не может быть отрицательным")
	}
	if o.DurationMonths < 0 {
		return apperrors.Validation("duration_months не может быть отрицательным")
	}
	if o.PaymentDay < 1 || o.PaymentDay > 31 {
		return apperrors.Validation("payment_day должен быть от 1 до 31")
	}
	if o.AdminReminderDays < 0 || o.TenantReminderDays < 0 {
		return apperrors.Validation("срок напоминания не может быть отрицательным")
	}
	return nil
}

// CreateOfficeHandler обрабатывает POST /api/offices
func (h *Handler) CreateOfficeHandler(w http.ResponseWriter, r *http.Request) {
	var office models.Office
	if err := decodeBody(w, r, &office); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateOfficeRequest(&office); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateOffice(r.Context(), &office); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, officeResponse{
		Office:                office,
		EffectiveMonthlyPrice: pricing.MonthlyPrice(office.PricePerMonth, office.DurationMonths),
	})
}

// GetOfficesHandler возвращает список офисов (active=true - только активные)
func (h *Handler) GetOfficesHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)
	onlyActive := r.URL.Query().Get("active") == "true"

	offices, err := h.Store.GetOffices(r.Context(), onlyActive, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}

	out := make([]officeResponse, 0, len(offices))
	for _, o := range offices {
		out = append(out, officeResponse{
			Office:                o,
			EffectiveMonthlyPrice: pricing.MonthlyPrice(o.PricePerMonth, o.DurationMonths),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// GetOfficeHandler возвращает офис с арендаторами
func (h *Handler) GetOfficeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	detail, err := h.Store.GetOfficeDetail(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, officeDetailResponse{
		OfficeDetail:          *detail,
		EffectiveMonthlyPrice: pricing.MonthlyPrice(detail.PricePerMonth, detail.DurationMonths),
	})
}

// UpdateOfficeHandler обрабатывает PUT /api/offices/{id}
func (h *Handler) UpdateOfficeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var office models.Office
	if err := decodeBody(w, r, &office); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateOfficeRequest(&office); err != nil {
		h.respondError(w, err)
		return
	}
	office.ID = id

	updated, err := h.Store.UpdateOffice(r.Context(), &office)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, officeResponse{
		Office:                *updated,
		EffectiveMonthlyPrice: pricing.MonthlyPrice(updated.PricePerMonth, updated.DurationMonths),
	})
}

// DeleteOfficeHandler обрабатывает DELETE /api/offices/{id}
func (h *Handler) DeleteOfficeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteOffice(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearOfficeHandler освобождает офис: арендаторы отвязываются, аренда сбрасывается
func (h *Handler) ClearOfficeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	detail, err := h.Store.ClearOffice(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// RelocateOfficeHandler переселяет арендаторов офиса в другой офис
func (h *Handler) RelocateOfficeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	targetID, err := parseIDParam(r, "targetId")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if id == targetID {
		h.respondError(w, apperrors.Validation("офис-источник и целевой офис совпадают"))
		return
	}

	detail, err := h.Store.RelocateTenants(r.Context(), id, targetID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// RecordPaymentHandler фиксирует оплату офиса. Если включено напоминание
// администратору, ставится отложенная задача к дате следующего платежа.
func (h *Handler) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	office, err := h.Store.RecordOfficePayment(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if office.AdminReminderEnabled && office.NextPayment != nil {
		runAt := office.NextPayment.AddDate(0, 0, -office.AdminReminderDays)
		if runAt.After(time.Now()) {
			task := &models.ScheduledTask{
				Kind:    "payment_reminder",
				Payload: "Приближается оплата офиса " + office.OfficeNumber,
				RunAt:   runAt,
			}
			if err := h.Store.CreateScheduledTask(r.Context(), task); err != nil {
				h.Logger.Error("schedule payment reminder", zap.Error(err))
			}
		}
	}

	respondJSON(w, http.StatusOK, officeResponse{
		Office:                *office,
		EffectiveMonthlyPrice: pricing.MonthlyPrice(office.PricePerMonth, office.DurationMonths),
	})
}
