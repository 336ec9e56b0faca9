package db

import (
	"context"
	"database/sql"
	"errors"

	"coworkadmin/internal/apperrors"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Ping проверяет соединение с БД для health-check
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// errNoRows используется после ExecContext, когда не задето ни одной строки
func errNoRows() error {
	return sql.ErrNoRows
}

// translate переводит sql.ErrNoRows в типизированную ошибку "не найдено".
// Остальные ошибки БД уходят наверх как unknown.
func translate(err error, notFoundDetail string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(notFoundDetail)
	}
	return err
}
