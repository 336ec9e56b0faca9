package db

import (
	"context"
	"fmt"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"
)

func (s *Storage) CreateScheduledTask(ctx context.Context, t *models.ScheduledTask) error {
	query := `
        INSERT INTO scheduled_tasks (kind, payload, run_at, status)
        VALUES ($1, $2, $3, 'pending')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query, t.Kind, t.Payload, t.RunAt).
		Scan(&t.ID, &t.Status, &t.CreatedAt)
}

func (s *Storage) GetScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error) {
	t := &models.ScheduledTask{}
	err := s.db.GetContext(ctx, t, `SELECT * FROM scheduled_tasks WHERE id=$1`, id)
	return t, translate(err, "задача не найдена")
}

// GetScheduledTasks возвращает задачи, опционально только с заданным статусом
func (s *Storage) GetScheduledTasks(ctx context.Context, status string, limit, offset int) ([]models.ScheduledTask, error) {
	baseQuery := `SELECT * FROM scheduled_tasks`
	var args []interface{}
	filter := ""
	if status != "" {
		filter = " WHERE status = $1"
		args = append(args, status)
	}
	query := baseQuery + filter + " ORDER BY run_at ASC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	tasks := []models.ScheduledTask{}
	err := s.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CancelScheduledTask отменяет задачу; разрешено только из pending
func (s *Storage) CancelScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error) {
	res, err := s.db.ExecContext(ctx, `
        UPDATE scheduled_tasks
        SET status='cancelled', updated_at=NOW()
        WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := s.GetScheduledTask(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("задачу можно отменить только в статусе pending")
	}
	return s.GetScheduledTask(ctx, id)
}

// ClaimDueTasks атомарно забирает созревшие pending-задачи в работу.
// Повторный вызов не вернёт уже забранные задачи.
func (s *Storage) ClaimDueTasks(ctx context.Context, limit int) ([]models.ScheduledTask, error) {
	query := `
        UPDATE scheduled_tasks
        SET status='running', updated_at=NOW()
        WHERE id IN (
            SELECT id FROM scheduled_tasks
            WHERE status='pending' AND run_at <= NOW()
            ORDER BY run_at ASC
            LIMIT $1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING *`
	tasks := []models.ScheduledTask{}
	err := s.db.SelectContext(ctx, &tasks, query, limit)
	return tasks, err
}

// FinishScheduledTask завершает задачу результатом done/failed
func (s *Storage) FinishScheduledTask(ctx context.Context, id int, status, lastError string) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE scheduled_tasks
        SET status=$1, last_error=$2, updated_at=NOW()
        WHERE id=$3`, status, lastError, id)
	return err
}
