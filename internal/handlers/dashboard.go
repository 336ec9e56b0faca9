package handlers

import "net/http"

// GetDashboardStatsHandler возвращает сводные показатели для главной страницы
func (h *Handler) GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
