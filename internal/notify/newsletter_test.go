package notify_test

import (
	"context"
	"testing"

	"coworkadmin/internal/notify"
	"coworkadmin/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockStore struct {
	recipients []models.User

	recorded       []models.NewsletterRecipient
	finishedStatus string
	finishedSent   int
	finishedFailed int
}

func (m *mockStore) GetRecipients(ctx context.Context) ([]models.User, error) {
	return m.recipients, nil
}

func (m *mockStore) AddNewsletterRecipient(ctx context.Context, r *models.NewsletterRecipient) error {
	m.recorded = append(m.recorded, *r)
	return nil
}

func (m *mockStore) FinishNewsletter(ctx context.Context, id int, status string, sent, failed int) error {
	m.finishedStatus = status
	m.finishedSent = sent
	m.finishedFailed = failed
	return nil
}

// Без токена бота доставка не происходит; такая рассылка
// фиксируется как skipped, а не как отправленная
func TestSendWithoutBotFinishesSkipped(t *testing.T) {
	store := &mockStore{recipients: []models.User{
		{ID: 1, TelegramID: 100, FullName: "Иван Петров"},
		{ID: 2, TelegramID: 200, FullName: "Мария Иванова"},
	}}
	sender, err := notify.NewSender("", store, zap.NewNop())
	require.NoError(t, err)

	n := &models.Newsletter{ID: 7, Subject: "Новости коворкинга", Body: "Текст рассылки"}
	sent, failed, err := sender.Send(context.Background(), n)
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Zero(t, failed)

	require.Equal(t, "skipped", store.finishedStatus)
	require.Zero(t, store.finishedSent)
	require.Zero(t, store.finishedFailed)

	require.Len(t, store.recorded, 2)
	for _, rec := range store.recorded {
		require.Equal(t, "skipped", rec.Status)
	}
}

func TestSendWithoutRecipients(t *testing.T) {
	store := &mockStore{}
	sender, err := notify.NewSender("", store, zap.NewNop())
	require.NoError(t, err)

	n := &models.Newsletter{ID: 8, Subject: "Пустая", Body: "Некому"}
	sent, failed, err := sender.Send(context.Background(), n)
	require.NoError(t, err)
	require.Zero(t, sent)
	require.Zero(t, failed)
	require.Equal(t, "sent", store.finishedStatus)
	require.Empty(t, store.recorded)
}
