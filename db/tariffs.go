package db

import (
	"context"

	"coworkadmin/models"
)

func (s *Storage) CreateTariff(ctx context.Context, t *models.Tariff) error {
	query := `
        INSERT INTO tariffs (name, description, price, unit, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Price, t.Unit, t.IsActive).
		Scan(&t.ID, &t.CreatedAt)
}

func (s *Storage) GetTariff(ctx context.Context, id int) (*models.Tariff, error) {
	t := &models.Tariff{}
	err := s.db.GetContext(ctx, t, `SELECT * FROM tariffs WHERE id=$1`, id)
	return t, translate(err, "тариф не найден")
}

func (s *Storage) UpdateTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error) {
	query := `
        UPDATE tariffs
        SET name=$1, description=$2, price=$3, unit=$4, is_active=$5
        WHERE id=$6`
	res, err := s.db.ExecContext(ctx, query, t.Name, t.Description, t.Price, t.Unit, t.IsActive, t.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "тариф не найден")
	}
	return s.GetTariff(ctx, t.ID)
}

func (s *Storage) DeleteTariff(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tariffs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "тариф не найден")
	}
	return nil
}

func (s *Storage) GetTariffs(ctx context.Context) ([]models.Tariff, error) {
	tariffs := []models.Tariff{}
	err := s.db.SelectContext(ctx, &tariffs, `SELECT * FROM tariffs ORDER BY name ASC`)
	return tariffs, err
}
