package apiclient

import (
	"context"
	"time"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"

	"github.com/sethvargo/go-retry"
)

// Poller периодически опрашивает сервер на предмет новых уведомлений
// и передаёт каждый ответ в callback. Один Poller на приложение:
// все заинтересованные места подписываются на его callback, а не
// заводят собственные таймеры.
type Poller struct {
	client   *Client
	interval time.Duration
	done     chan struct{}
}

func NewPoller(client *Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{client: client, interval: interval, done: make(chan struct{})}
}

// Run опрашивает до отмены контекста или вызова Stop.
// Блокируется, запускать в отдельной горутине.
func (p *Poller) Run(ctx context.Context, onUpdate func(models.CheckNewResponse)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.C:
			resp, err := p.client.CheckNewNotifications(ctx)
			if err != nil {
				continue
			}
			onUpdate(resp)
		}
	}
}

func (p *Poller) Stop() {
	close(p.done)
}

// CheckNewNotifications опрашивает сервер на предмет новых уведомлений.
// Опрос фоновый, поэтому при недоступности сервера делается одна повторная
// попытка через 2 секунды, а после неё возвращается пустой ответ без ошибки:
// интерфейс просто не показывает индикатор до следующего опроса.
func (c *Client) CheckNewNotifications(ctx context.Context) (models.CheckNewResponse, error) {
	var out models.CheckNewResponse
	backoff := retry.WithMaxRetries(1, retry.NewConstant(2*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.get(ctx, "/api/notifications/check-new", &out)
		if apperrors.KindOf(err) == apperrors.KindUnavailable {
			return retry.RetryableError(err)
		}
		return err
	})
	if apperrors.KindOf(err) == apperrors.KindUnavailable {
		return models.CheckNewResponse{RecentNotifications: []models.Notification{}}, nil
	}
	if err != nil {
		return models.CheckNewResponse{}, err
	}
	return out, nil
}

// MarkNotificationsRead помечает уведомления прочитанными
func (c *Client) MarkNotificationsRead(ctx context.Context, ids []int) error {
	in := map[string][]int{"ids": ids}
	return c.post(ctx, "/api/notifications/mark-read", in, nil)
}
