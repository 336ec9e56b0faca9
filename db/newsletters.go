package db

import (
	"context"

	"coworkadmin/models"
)

func (s *Storage) CreateNewsletter(ctx context.Context, n *models.Newsletter) error {
	query := `
        INSERT INTO newsletters (subject, body, status)
        VALUES ($1, $2, 'pending')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query, n.Subject, n.Body).
		Scan(&n.ID, &n.Status, &n.CreatedAt)
}

func (s *Storage) GetNewsletter(ctx context.Context, id int) (*models.Newsletter, error) {
	n := &models.Newsletter{}
	err := s.db.GetContext(ctx, n, `SELECT * FROM newsletters WHERE id=$1`, id)
	return n, translate(err, "рассылка не найдена")
}

// GetNewsletters - история рассылок, свежие первыми
func (s *Storage) GetNewsletters(ctx context.Context, limit, offset int) ([]models.Newsletter, error) {
	newsletters := []models.Newsletter{}
	query := `SELECT * FROM newsletters ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	err := s.db.SelectContext(ctx, &newsletters, query, limit, offset)
	return newsletters, err
}

// FinishNewsletter фиксирует итог доставки
func (s *Storage) FinishNewsletter(ctx context.Context, id int, status string, sent, failed int) error {
	query := `
        UPDATE newsletters
        SET status=$1, sent_count=$2, failed_count=$3
        WHERE id=$4`
	_, err := s.db.ExecContext(ctx, query, status, sent, failed, id)
	return err
}

// AddNewsletterRecipient записывает результат доставки одному получателю
func (s *Storage) AddNewsletterRecipient(ctx context.Context, r *models.NewsletterRecipient) error {
	query := `
        INSERT INTO newsletter_recipients (newsletter_id, user_id, status, error, sent_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, sent_at`
	return s.db.QueryRowContext(ctx, query, r.NewsletterID, r.UserID, r.Status, r.Error).
		Scan(&r.ID, &r.SentAt)
}

func (s *Storage) GetNewsletterRecipients(ctx context.Context, newsletterID int) ([]models.NewsletterRecipient, error) {
	recipients := []models.NewsletterRecipient{}
	query := `SELECT * FROM newsletter_recipients WHERE newsletter_id=$1 ORDER BY id`
	err := s.db.SelectContext(ctx, &recipients, query, newsletterID)
	return recipients, err
}
