package db

import (
	"context"

	"coworkadmin/models"

	"github.com/jmoiron/sqlx"
)

func (s *Storage) CreateNotification(ctx context.Context, kind, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (kind, message) VALUES ($1, $2)`, kind, message)
	return err
}

// GetRecentNotifications - непрочитанные уведомления, свежие первыми
func (s *Storage) GetRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `
        SELECT * FROM notifications
        WHERE is_read = FALSE
        ORDER BY created_at DESC
        LIMIT $1`
	err := s.db.SelectContext(ctx, &notifications, query, limit)
	return notifications, err
}

func (s *Storage) MarkNotificationsRead(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE notifications SET is_read=TRUE WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}
