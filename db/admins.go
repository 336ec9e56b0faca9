package db

import (
	"context"

	"coworkadmin/models"
)

func (s *Storage) CreateAdmin(ctx context.Context, a *models.Admin) error {
	query := `
        INSERT INTO admins (telegram_id, full_name, role, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, a.TelegramID, a.FullName, a.Role, a.IsActive).
		Scan(&a.ID, &a.CreatedAt)
}

func (s *Storage) GetAdmin(ctx context.Context, id int) (*models.Admin, error) {
	a := &models.Admin{}
	err := s.db.GetContext(ctx, a, `SELECT * FROM admins WHERE id=$1`, id)
	return a, translate(err, "администратор не найден")
}

func (s *Storage) UpdateAdmin(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	query := `
        UPDATE admins
        SET telegram_id=$1, full_name=$2, role=$3, is_active=$4
        WHERE id=$5`
	res, err := s.db.ExecContext(ctx, query, a.TelegramID, a.FullName, a.Role, a.IsActive, a.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "администратор не найден")
	}
	return s.GetAdmin(ctx, a.ID)
}

func (s *Storage) DeleteAdmin(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admins WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "администратор не найден")
	}
	return nil
}

func (s *Storage) GetAdmins(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}
	err := s.db.SelectContext(ctx, &admins, `SELECT * FROM admins ORDER BY full_name ASC`)
	return admins, err
}
