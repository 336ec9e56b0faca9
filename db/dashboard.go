package db

import (
	"context"

	"coworkadmin/models"
)

// GetDashboardStats считает агрегаты для дашборда одним запросом
func (s *Storage) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	query := `
        SELECT
            (SELECT COUNT(1) FROM users)                                          AS total_users,
            (SELECT COUNT(1) FROM users WHERE is_banned)                          AS banned_users,
            (SELECT COUNT(1) FROM offices WHERE is_active)                        AS active_offices,
            (SELECT COUNT(1) FROM bookings WHERE visit_date = CURRENT_DATE
                AND NOT is_cancelled)                                             AS bookings_today,
            (SELECT COUNT(1) FROM bookings
                WHERE date_trunc('month', visit_date) = date_trunc('month', NOW())
                AND NOT is_cancelled)                                             AS bookings_month,
            (SELECT COALESCE(SUM(amount), 0) FROM bookings
                WHERE date_trunc('month', visit_date) = date_trunc('month', NOW())
                AND is_paid AND NOT is_cancelled)                                 AS revenue_month,
            (SELECT COUNT(1) FROM tickets WHERE status <> 'closed')               AS open_tickets,
            (SELECT COUNT(1) FROM scheduled_tasks WHERE status = 'pending')       AS pending_tasks,
            (SELECT COUNT(1) FROM ip_bans
                WHERE is_permanent OR expires_at > NOW())                         AS active_ip_bans,
            (SELECT COUNT(1) FROM notifications WHERE NOT is_read)                AS unread_notices,
            (SELECT COUNT(1) FROM promocodes WHERE is_active AND uses_left > 0)   AS active_promos,
            (SELECT COUNT(1) FROM newsletters WHERE status = 'sent')              AS newsletters_sent`
	err := s.db.GetContext(ctx, stats, query)
	return stats, err
}
