package handlers

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"coworkadmin/internal/apperrors"

	"github.com/go-chi/chi/v5"
)

// GetIPBansHandler возвращает действующие IP-баны
func (h *Handler) GetIPBansHandler(w http.ResponseWriter, r *http.Request) {
	bans, err := h.Store.GetIPBans(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bans)
}

// BanIPHandler обрабатывает POST /api/ip-bans/{ip}/ban.
// duration_hours = 0 или отсутствует - бан постоянный.
func (h *Handler) BanIPHandler(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	if net.ParseIP(ip) == nil {
		h.respondError(w, apperrors.Validation("некорректный IP-адрес"))
		return
	}

	var input struct {
		Reason        string `json:"reason"`
		DurationHours int    `json:"duration_hours"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		h.respondError(w, err)
		return
	}
	if input.DurationHours < 0 {
		h.respondError(w, apperrors.Validation("duration_hours не может быть отрицательным"))
		return
	}

	var expiresAt *time.Time
	if input.DurationHours > 0 {
		t := time.Now().Add(time.Duration(input.DurationHours) * time.Hour)
		expiresAt = &t
	}

	ban, err := h.Store.BanIP(r.Context(), ip, input.Reason, expiresAt)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ban)
}

// UnbanIPHandler обрабатывает POST /api/ip-bans/{ip}/unban
func (h *Handler) UnbanIPHandler(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	if net.ParseIP(ip) == nil {
		h.respondError(w, apperrors.Validation("некорректный IP-адрес"))
		return
	}
	if err := h.Store.UnbanIP(r.Context(), ip); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportNginxHandler отдаёт действующие баны в формате deny-директив nginx
func (h *Handler) ExportNginxHandler(w http.ResponseWriter, r *http.Request) {
	bans, err := h.Store.GetIPBans(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ip-bans.conf"`)
	for _, b := range bans {
		fmt.Fprintf(w, "deny %s;\n", b.IP)
	}
}
