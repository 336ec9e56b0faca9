package notify

import (
	"context"
	"fmt"

	"coworkadmin/models"
	"coworkadmin/pkg/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Store - часть хранилища, нужная для фиксации результатов рассылки
type Store interface {
	GetRecipients(ctx context.Context) ([]models.User, error)
	AddNewsletterRecipient(ctx context.Context, r *models.NewsletterRecipient) error
	FinishNewsletter(ctx context.Context, id int, status string, sent, failed int) error
}

// Sender доставляет рассылки пользователям в Telegram.
// Без токена бота работает вхолостую: все получатели помечаются skipped.
type Sender struct {
	bot    *tgbotapi.BotAPI
	store  Store
	logger *zap.Logger
}

func NewSender(token string, store Store, logger *zap.Logger) (*Sender, error) {
	s := &Sender{store: store, logger: logger}
	if token == "" {
		logger.Warn("TELEGRAM_TOKEN not set, newsletters will be recorded but not delivered")
		return s, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	s.bot = bot
	return s, nil
}

// Send доставляет рассылку всем получателям и записывает итог.
// Возвращает количество доставленных и недоставленных сообщений.
func (s *Sender) Send(ctx context.Context, n *models.Newsletter) (sent, failed int, err error) {
	recipients, err := s.store.GetRecipients(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load recipients: %w", err)
	}

	text := n.Subject + "\n\n" + n.Body

	var skipped int
	for _, u := range recipients {
		rec := &models.NewsletterRecipient{
			NewsletterID: n.ID,
			UserID:       u.ID,
		}
		switch {
		case s.bot == nil:
			rec.Status = "skipped"
			rec.Error = "telegram bot is not configured"
			skipped++
		default:
			msg := tgbotapi.NewMessage(u.TelegramID, text)
			if _, sendErr := s.bot.Send(msg); sendErr != nil {
				rec.Status = "failed"
				rec.Error = sendErr.Error()
				failed++
				s.logger.Warn("newsletter delivery failed",
					zap.Int("user_id", u.ID), zap.Error(sendErr))
			} else {
				rec.Status = "sent"
				sent++
			}
		}
		metrics.RecordNewsletterMessage(rec.Status)
		if recErr := s.store.AddNewsletterRecipient(ctx, rec); recErr != nil {
			s.logger.Error("record newsletter recipient", zap.Error(recErr))
		}
	}

	// Рассылка без единой доставки не считается отправленной
	status := "sent"
	switch {
	case sent == 0 && failed > 0:
		status = "failed"
	case sent == 0 && skipped > 0:
		status = "skipped"
	}
	if err := s.store.FinishNewsletter(ctx, n.ID, status, sent, failed); err != nil {
		return sent, failed, fmt.Errorf("finish newsletter: %w", err)
	}

	s.logger.Info("newsletter finished",
		zap.Int("newsletter_id", n.ID), zap.Int("sent", sent), zap.Int("failed", failed))
	return sent, failed, nil
}
