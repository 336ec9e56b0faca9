package db

import (
	"context"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

func (s *Storage) CreatePromocode(ctx context.Context, p *models.Promocode) error {
	query := `
        INSERT INTO promocodes (name, discount_percent, uses_left, expires_at, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.Name, p.DiscountPercent, p.UsesLeft, p.ExpiresAt, p.IsActive).
		Scan(&p.ID, &p.CreatedAt)
}

func (s *Storage) GetPromocode(ctx context.Context, id int) (*models.Promocode, error) {
	p := &models.Promocode{}
	err := s.db.GetContext(ctx, p, `SELECT * FROM promocodes WHERE id=$1`, id)
	return p, translate(err, "промокод не найден")
}

func (s *Storage) UpdatePromocode(ctx context.Context, p *models.Promocode) (*models.Promocode, error) {
	query := `
        UPDATE promocodes
        SET name=$1, discount_percent=$2, uses_left=$3, expires_at=$4, is_active=$5
        WHERE id=$6`
	res, err := s.db.ExecContext(ctx, query,
		p.Name, p.DiscountPercent, p.UsesLeft, p.ExpiresAt, p.IsActive, p.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "промокод не найден")
	}
	return s.GetPromocode(ctx, p.ID)
}

func (s *Storage) DeletePromocode(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM promocodes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "промокод не найден")
	}
	return nil
}

func (s *Storage) GetPromocodes(ctx context.Context) ([]models.Promocode, error) {
	promos := []models.Promocode{}
	err := s.db.SelectContext(ctx, &promos, `SELECT * FROM promocodes ORDER BY created_at DESC`)
	return promos, err
}

// UsePromocode атомарно списывает одно использование.
// Исчерпанный, просроченный или выключенный промокод даёт conflict.
func (s *Storage) UsePromocode(ctx context.Context, id int) (*models.Promocode, error) {
	query := `
        UPDATE promocodes
        SET uses_left = uses_left - 1
        WHERE id=$1 AND is_active=TRUE AND uses_left > 0
          AND (expires_at IS NULL OR expires_at > NOW())`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Различаем "нет такого" и "нельзя использовать"
		if _, err := s.GetPromocode(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("промокод исчерпан, просрочен или отключён")
	}
	return s.GetPromocode(ctx, id)
}
