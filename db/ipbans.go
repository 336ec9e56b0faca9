package db

import (
	"context"
	"time"

	"coworkadmin/models"
)

// BanIP добавляет или обновляет бан адреса. expiresAt=nil означает постоянный бан.
func (s *Storage) BanIP(ctx context.Context, ip, reason string, expiresAt *time.Time) (*models.IPBan, error) {
	query := `
        INSERT INTO ip_bans (ip, reason, is_permanent, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (ip) DO UPDATE
            SET reason = EXCLUDED.reason,
                is_permanent = EXCLUDED.is_permanent,
                expires_at = EXCLUDED.expires_at`
	_, err := s.db.ExecContext(ctx, query, ip, reason, expiresAt == nil, expiresAt)
	if err != nil {
		return nil, err
	}
	return s.GetIPBan(ctx, ip)
}

func (s *Storage) GetIPBan(ctx context.Context, ip string) (*models.IPBan, error) {
	b := &models.IPBan{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM ip_bans WHERE ip=$1`, ip)
	return b, translate(err, "бан для этого адреса не найден")
}

func (s *Storage) UnbanIP(ctx context.Context, ip string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ip_bans WHERE ip=$1`, ip)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "бан для этого адреса не найден")
	}
	return nil
}

// GetIPBans возвращает действующие баны (просроченные пропускаются)
func (s *Storage) GetIPBans(ctx context.Context) ([]models.IPBan, error) {
	bans := []models.IPBan{}
	query := `
        SELECT * FROM ip_bans
        WHERE is_permanent = TRUE OR expires_at > NOW()
        ORDER BY created_at DESC`
	err := s.db.SelectContext(ctx, &bans, query)
	return bans, err
}

// SweepExpiredIPBans удаляет просроченные временные баны, возвращает число удалённых
func (s *Storage) SweepExpiredIPBans(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ip_bans WHERE is_permanent = FALSE AND expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
