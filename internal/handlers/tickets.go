package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"

	"github.com/google/uuid"
)

// validateTicketRequest проверяет поля формы тикета
func validateTicketRequest(t *models.Ticket) error {
	if strings.TrimSpace(t.Subject) == "" || len(t.Subject) > 200 {
		return apperrors.Validation("subject обязателен, не длиннее 200 символов")
	}
	if t.Status != "" {
		switch t.Status {
		case "open", "in_progress", "closed":
			// ok
		default:
			return apperrors.Validation("status должен быть open, in_progress или closed")
		}
	}
	return nil
}

// CreateTicketHandler обрабатывает POST /api/tickets
func (h *Handler) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	var ticket models.Ticket
	if err := decodeBody(w, r, &ticket); err != nil {
		h.respondError(w, err)
		return
	}
	if ticket.UserID <= 0 {
		h.respondError(w, apperrors.Validation("user_id обязателен"))
		return
	}
	if err := validateTicketRequest(&ticket); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateTicket(r.Context(), &ticket); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ticket)
}

// GetTicketsHandler возвращает тикеты, опционально по статусу
func (h *Handler) GetTicketsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	status := r.URL.Query().Get("status")
	if status != "" && status != "open" && status != "in_progress" && status != "closed" {
		h.respondError(w, apperrors.Validation("status должен быть open, in_progress или closed"))
		return
	}

	tickets, err := h.Store.GetTickets(r.Context(), status, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tickets)
}

// GetTicketHandler возвращает тикет по id
func (h *Handler) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	ticket, err := h.Store.GetTicket(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// UpdateTicketHandler обрабатывает PUT /api/tickets/{id}
func (h *Handler) UpdateTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var ticket models.Ticket
	if err := decodeBody(w, r, &ticket); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateTicketRequest(&ticket); err != nil {
		h.respondError(w, err)
		return
	}
	ticket.ID = id

	updated, err := h.Store.UpdateTicket(r.Context(), &ticket)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTicketHandler обрабатывает DELETE /api/tickets/{id}
func (h *Handler) DeleteTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteTicket(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadTicketPhotoHandler принимает multipart-фото и привязывает его к тикету
func (h *Handler) UploadTicketPhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.respondError(w, apperrors.Validation("некорректная multipart-форма"))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.respondError(w, apperrors.Validation("поле photo с файлом обязательно"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}
	filename := fmt.Sprintf("ticket_%s%s", uuid.NewString(), ext)

	dir := filepath.Join(h.UploadDir, "tickets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.respondError(w, err)
		return
	}
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		h.respondError(w, err)
		return
	}

	ticket, err := h.Store.SetTicketPhoto(r.Context(), id, filename)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ticket)
}

// GetTicketPhotoBase64Handler отдаёт фото тикета в base64 для встраивания
func (h *Handler) GetTicketPhotoBase64Handler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	ticket, err := h.Store.GetTicket(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if ticket.Photo == nil || *ticket.Photo == "" {
		h.respondError(w, apperrors.NotFound("у тикета нет фотографии"))
		return
	}

	path := filepath.Join(h.UploadDir, "tickets", filepath.Base(*ticket.Photo))
	data, err := os.ReadFile(path)
	if err != nil {
		h.respondError(w, apperrors.NotFound("файл фотографии не найден"))
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"filename":     *ticket.Photo,
		"content_type": contentType,
		"data":         base64.StdEncoding.EncodeToString(data),
	})
}
