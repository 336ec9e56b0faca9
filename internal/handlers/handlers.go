package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BackupService - операции с дампами БД, нужные обработчикам
type BackupService interface {
	Create(ctx context.Context, kind string) (*models.Backup, error)
	Restore(ctx context.Context, filename string) error
	Remove(filename string) error
}

// NewsletterSender доставляет рассылку и возвращает счётчики доставки
type NewsletterSender interface {
	Send(ctx context.Context, n *models.Newsletter) (sent, failed int, err error)
}

// Handler оборачивает Storage и сервисы для доступа из HTTP-обработчиков
type Handler struct {
	Store  StorageInterface
	Logger *zap.Logger

	Backups   BackupService
	Sender    NewsletterSender
	UploadDir string
	// ReloadBackup дёргается после изменения настроек автобэкапа
	ReloadBackup func(ctx context.Context) error
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Logger: logger}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// respondJSON пишет тело ответа с заданным статусом
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError переводит ошибку в конверт {"kind","detail"}.
// Посторонние ошибки уходят как unknown с общим текстом, детали - в лог.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var e *apperrors.Error
	if !errors.As(err, &e) {
		h.Logger.Error("unhandled error", zap.Error(err))
		e = &apperrors.Error{Kind: apperrors.KindUnknown, Detail: "внутренняя ошибка сервера"}
	}
	respondJSON(w, e.HTTPStatus(), e)
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams парсит limit и offset из query, с дефолтами и ограничениями
func parsePaginationParams(r *http.Request) PaginationParams {
	var params PaginationParams
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	params.Limit = 20 // дефолт
	params.Offset = 0

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			params.Limit = l
		}
	}
	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

// parseIDParam читает целочисленный параметр пути
func parseIDParam(r *http.Request, name string) (int, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("некорректный " + name)
	}
	return id, nil
}

// decodeBody читает JSON тело с ограничением размера
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("некорректный JSON в теле запроса")
	}
	return nil
}
