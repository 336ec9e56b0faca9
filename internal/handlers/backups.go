package handlers

import (
	"net/http"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
	"coworkadmin/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// GetBackupsHandler возвращает список резервных копий
func (h *Handler) GetBackupsHandler(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Store.GetBackups(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, backups)
}

// CreateBackupHandler запускает ручное резервное копирование
func (h *Handler) CreateBackupHandler(w http.ResponseWriter, r *http.Request) {
	b, err := h.Backups.Create(r.Context(), "manual")
	if err != nil {
		metrics.RecordBackupRun("manual", "failed")
		h.respondError(w, apperrors.Wrap(err, apperrors.KindUnavailable,
			"не удалось создать резервную копию"))
		return
	}
	if err := h.Store.CreateBackupRecord(r.Context(), b); err != nil {
		h.respondError(w, err)
		return
	}
	metrics.RecordBackupRun("manual", "done")
	respondJSON(w, http.StatusCreated, b)
}

// RestoreBackupHandler восстанавливает БД из копии по её id
func (h *Handler) RestoreBackupHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		h.respondError(w, err)
		return
	}
	if strings.TrimSpace(input.ID) == "" {
		h.respondError(w, apperrors.Validation("id резервной копии обязателен"))
		return
	}

	backup, err := h.Store.GetBackup(r.Context(), input.ID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Backups.Restore(r.Context(), backup.Filename); err != nil {
		h.respondError(w, apperrors.Wrap(err, apperrors.KindUnavailable,
			"не удалось восстановить резервную копию"))
		return
	}
	respondJSON(w, http.StatusOK, backup)
}

// DeleteBackupHandler удаляет резервную копию: и файл дампа, и запись
func (h *Handler) DeleteBackupHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.respondError(w, apperrors.Validation("некорректный id"))
		return
	}

	backup, err := h.Store.GetBackup(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Backups.Remove(backup.Filename); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteBackupRecord(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBackupSettingsHandler возвращает настройки автобэкапа
func (h *Handler) GetBackupSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetBackupSettings(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateBackupSettingsHandler сохраняет настройки и перечитывает расписание
func (h *Handler) UpdateBackupSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.BackupSettings
	if err := decodeBody(w, r, &settings); err != nil {
		h.respondError(w, err)
		return
	}
	if settings.KeepDays < 1 {
		h.respondError(w, apperrors.Validation("keep_days должен быть не меньше 1"))
		return
	}
	if _, err := cron.ParseStandard(settings.CronExpr); err != nil {
		h.respondError(w, apperrors.Validation("некорректное cron-выражение"))
		return
	}

	updated, err := h.Store.UpdateBackupSettings(r.Context(), &settings)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if h.ReloadBackup != nil {
		if err := h.ReloadBackup(r.Context()); err != nil {
			h.Logger.Error("reload backup schedule", zap.Error(err))
		}
	}
	respondJSON(w, http.StatusOK, updated)
}
