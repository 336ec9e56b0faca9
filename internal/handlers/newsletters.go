package handlers

import (
	"net/http"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

// SendNewsletterHandler обрабатывает POST /api/newsletters/send:
// создаёт запись рассылки и доставляет её всем получателям
func (h *Handler) SendNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		h.respondError(w, err)
		return
	}
	if strings.TrimSpace(input.Subject) == "" || len(input.Subject) > 200 {
		h.respondError(w, apperrors.Validation("subject обязателен, не длиннее 200 символов"))
		return
	}
	if strings.TrimSpace(input.Body) == "" {
		h.respondError(w, apperrors.Validation("body обязателен"))
		return
	}

	newsletter := &models.Newsletter{Subject: input.Subject, Body: input.Body}
	if err := h.Store.CreateNewsletter(r.Context(), newsletter); err != nil {
		h.respondError(w, err)
		return
	}

	if _, _, err := h.Sender.Send(r.Context(), newsletter); err != nil {
		h.respondError(w, err)
		return
	}

	finished, err := h.Store.GetNewsletter(r.Context(), newsletter.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, finished)
}

// GetNewsletterHistoryHandler возвращает историю рассылок
func (h *Handler) GetNewsletterHistoryHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)
	newsletters, err := h.Store.GetNewsletters(r.Context(), params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newsletters)
}

// GetNewsletterRecipientsHandler возвращает получателей рассылки с результатами
func (h *Handler) GetNewsletterRecipientsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	// Убеждаемся, что рассылка существует
	if _, err := h.Store.GetNewsletter(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	recipients, err := h.Store.GetNewsletterRecipients(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipients)
}
