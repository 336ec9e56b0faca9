package db

import (
	"context"
	"fmt"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

const officeColumns = `id, office_number, floor, capacity, price_per_month, duration_months,
    rent_start, rent_end, payment_day, payment_type, payment_status,
    last_payment, next_payment,
    admin_reminder_enabled, admin_reminder_days,
    tenant_reminder_enabled, tenant_reminder_days,
    comment, is_active, created_at, updated_at`

func (s *Storage) CreateOffice(ctx context.Context, o *models.Office) error {
	query := `
        INSERT INTO offices
            (office_number, floor, capacity, price_per_month, duration_months,
             rent_start, rent_end, payment_day, payment_type, payment_status,
             admin_reminder_enabled, admin_reminder_days,
             tenant_reminder_enabled, tenant_reminder_days,
             comment, is_active)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		o.OfficeNumber, o.Floor, o.Capacity, o.PricePerMonth, o.DurationMonths,
		o.RentStart, o.RentEnd, o.PaymentDay, o.PaymentType, o.PaymentStatus,
		o.AdminReminderEnabled, o.AdminReminderDays,
		o.TenantReminderEnabled, o.TenantReminderDays,
		o.Comment, o.IsActive).
		Scan(&o.ID, &o.CreatedAt)
}

func (s *Storage) GetOffice(ctx context.Context, id int) (*models.Office, error) {
	o := &models.Office{}
	query := fmt.Sprintf(`SELECT %s FROM offices WHERE id=$1`, officeColumns)
	err := s.db.GetContext(ctx, o, query, id)
	return o, translate(err, "офис не найден")
}

// GetOfficeDetail возвращает офис вместе с арендаторами
func (s *Storage) GetOfficeDetail(ctx context.Context, id int) (*models.OfficeDetail, error) {
	office, err := s.GetOffice(ctx, id)
	if err != nil {
		return nil, err
	}
	tenants, err := s.GetOfficeTenants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OfficeDetail{Office: *office, Tenants: tenants}, nil
}

func (s *Storage) GetOfficeTenants(ctx context.Context, officeID int) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE office_id=$1 ORDER BY full_name ASC`, userColumns)
	tenants := []models.User{}
	err := s.db.SelectContext(ctx, &tenants, query, officeID)
	return tenants, err
}

func (s *Storage) UpdateOffice(ctx context.Context, o *models.Office) (*models.Office, error) {
	query := `
        UPDATE offices
        SET office_number=$1, floor=$2, capacity=$3, price_per_month=$4,
            duration_months=$5, rent_start=$6, rent_end=$7,
            payment_day=$8, payment_type=$9, payment_status=$10,
            admin_reminder_enabled=$11, admin_reminder_days=$12,
            tenant_reminder_enabled=$13, tenant_reminder_days=$14,
            comment=$15, is_active=$16, updated_at=NOW()
        WHERE id=$17`
	res, err := s.db.ExecContext(ctx, query,
		o.OfficeNumber, o.Floor, o.Capacity, o.PricePerMonth,
		o.DurationMonths, o.RentStart, o.RentEnd,
		o.PaymentDay, o.PaymentType, o.PaymentStatus,
		o.AdminReminderEnabled, o.AdminReminderDays,
		o.TenantReminderEnabled, o.TenantReminderDays,
		o.Comment, o.IsActive, o.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "офис не найден")
	}
	return s.GetOffice(ctx, o.ID)
}

func (s *Storage) DeleteOffice(ctx context.Context, id int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE users SET office_id=NULL WHERE office_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM offices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "офис не найден")
	}
	return tx.Commit()
}

func (s *Storage) GetOffices(ctx context.Context, onlyActive bool, limit, offset int) ([]models.Office, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM offices`, officeColumns)
	filter := ""
	if onlyActive {
		filter = " WHERE is_active = TRUE"
	}
	query := baseQuery + filter + " ORDER BY office_number ASC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	offices := []models.Office{}
	err := s.db.SelectContext(ctx, &offices, query)
	if err != nil {
		return nil, err
	}
	return offices, nil
}

// ClearOffice отвязывает арендаторов и сбрасывает аренду.
// Офис перечитывается из БД, переданные вызывающим структуры не трогаются.
func (s *Storage) ClearOffice(ctx context.Context, id int) (*models.OfficeDetail, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE users SET office_id=NULL WHERE office_id=$1`, id); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE offices
        SET duration_months=0, rent_start=NULL, rent_end=NULL,
            payment_status='none', last_payment=NULL, next_payment=NULL,
            is_active=FALSE, updated_at=NOW()
        WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "офис не найден")
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetOfficeDetail(ctx, id)
}

// RelocateTenants переселяет всех арендаторов в другой офис одной транзакцией.
// Отказывает, если вместимость целевого офиса меньше суммарного числа людей.
func (s *Storage) RelocateTenants(ctx context.Context, fromID, toID int) (*models.OfficeDetail, error) {
	if _, err := s.GetOffice(ctx, fromID); err != nil {
		return nil, err
	}
	target, err := s.GetOffice(ctx, toID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var moving, occupied int
	if err := tx.GetContext(ctx, &moving, `SELECT COUNT(1) FROM users WHERE office_id=$1`, fromID); err != nil {
		return nil, err
	}
	if err := tx.GetContext(ctx, &occupied, `SELECT COUNT(1) FROM users WHERE office_id=$1`, toID); err != nil {
		return nil, err
	}
	if moving+occupied > target.Capacity {
		return nil, apperrors.Conflict("вместимость целевого офиса недостаточна для переселения")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET office_id=$1 WHERE office_id=$2`, toID, fromID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetOfficeDetail(ctx, toID)
}

// RecordOfficePayment фиксирует оплату и сдвигает дату следующего платежа на месяц
func (s *Storage) RecordOfficePayment(ctx context.Context, id int) (*models.Office, error) {
	query := `
        UPDATE offices
        SET last_payment=NOW(),
            next_payment=COALESCE(next_payment, NOW()) + INTERVAL '1 month',
            payment_status='paid', updated_at=NOW()
        WHERE id=$1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "офис не найден")
	}
	return s.GetOffice(ctx, id)
}
