package db

import (
	"context"
	"fmt"

	"coworkadmin/models"
)

const ticketColumns = `id, user_id, subject, message, photo, status, admin_reply, created_at, updated_at`

func (s *Storage) CreateTicket(ctx context.Context, t *models.Ticket) error {
	query := `
        INSERT INTO tickets (user_id, subject, message, status)
        VALUES ($1, $2, $3, 'open')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query, t.UserID, t.Subject, t.Message).
		Scan(&t.ID, &t.Status, &t.CreatedAt)
}

func (s *Storage) GetTicket(ctx context.Context, id int) (*models.Ticket, error) {
	t := &models.Ticket{}
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	err := s.db.GetContext(ctx, t, query, id)
	return t, translate(err, "тикет не найден")
}

func (s *Storage) UpdateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	query := `
        UPDATE tickets
        SET subject=$1, message=$2, status=$3, admin_reply=$4, updated_at=NOW()
        WHERE id=$5`
	res, err := s.db.ExecContext(ctx, query, t.Subject, t.Message, t.Status, t.AdminReply, t.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "тикет не найден")
	}
	return s.GetTicket(ctx, t.ID)
}

func (s *Storage) DeleteTicket(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "тикет не найден")
	}
	return nil
}

// GetTickets возвращает тикеты с опциональным фильтром по статусу
func (s *Storage) GetTickets(ctx context.Context, status string, limit, offset int) ([]models.Ticket, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	var args []interface{}
	filter := ""
	if status != "" {
		filter = " WHERE status = $1"
		args = append(args, status)
	}
	query := baseQuery + filter + " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	tickets := []models.Ticket{}
	err := s.db.SelectContext(ctx, &tickets, query, args...)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// SetTicketPhoto привязывает к тикету загруженный файл фотографии
func (s *Storage) SetTicketPhoto(ctx context.Context, id int, filename string) (*models.Ticket, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET photo=$1, updated_at=NOW() WHERE id=$2`, filename, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "тикет не найден")
	}
	return s.GetTicket(ctx, id)
}
