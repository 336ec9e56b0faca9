package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"coworkadmin/internal/apperrors"
	"coworkadmin/models"

	"github.com/sethvargo/go-retry"
)

func (c *Client) GetIPBans(ctx context.Context) ([]models.IPBan, error) {
	var out []models.IPBan
	if err := c.get(ctx, "/api/ip-bans", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BanIP блокирует адрес. durationHours == 0 - бан постоянный.
func (c *Client) BanIP(ctx context.Context, ip, reason string, durationHours int) (*models.IPBan, error) {
	in := map[string]interface{}{"reason": reason, "duration_hours": durationHours}
	var out models.IPBan
	path := "/api/ip-bans/" + url.PathEscape(ip) + "/ban"
	if err := c.post(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnbanIP(ctx context.Context, ip string) error {
	return c.post(ctx, "/api/ip-bans/"+url.PathEscape(ip)+"/unban", nil, nil)
}

// ExportIPBansNginx отдаёт deny-директивы для включения в конфиг nginx.
// Закрыть reader обязан вызывающий.
func (c *Client) ExportIPBansNginx(ctx context.Context) (io.ReadCloser, error) {
	return c.doRaw(ctx, "GET", "/api/ip-bans/export/nginx")
}

func (c *Client) GetBackups(ctx context.Context) ([]models.Backup, error) {
	var out []models.Backup
	if err := c.get(ctx, "/api/backups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBackup запускает ручное резервное копирование и ждёт результата
func (c *Client) CreateBackup(ctx context.Context) (*models.Backup, error) {
	var out models.Backup
	if err := c.post(ctx, "/api/backups/create", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreBackup восстанавливает БД из копии по её id
func (c *Client) RestoreBackup(ctx context.Context, id string) (*models.Backup, error) {
	in := map[string]string{"id": id}
	var out models.Backup
	if err := c.post(ctx, "/api/backups/restore", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBackup удаляет копию вместе с файлом дампа
func (c *Client) DeleteBackup(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/backups/"+url.PathEscape(id))
}

func (c *Client) GetBackupSettings(ctx context.Context) (*models.BackupSettings, error) {
	var out models.BackupSettings
	if err := c.get(ctx, "/api/backups/settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBackupSettings(ctx context.Context, bs *models.BackupSettings) (*models.BackupSettings, error) {
	var out models.BackupSettings
	if err := c.put(ctx, "/api/backups/settings", bs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetScheduledTasks(ctx context.Context, status string, limit, offset int) ([]models.ScheduledTask, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.ScheduledTask
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error) {
	var out models.ScheduledTask
	if err := c.post(ctx, fmt.Sprintf("/api/tasks/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDashboardStats возвращает агрегаты для главной страницы.
// Временная недоступность сервера ретраится с бэкоффом.
func (c *Client) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.get(ctx, "/api/dashboard/stats", &out)
		if apperrors.KindOf(err) == apperrors.KindUnavailable {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Health - состояние сервера по данным мониторинга
type Health struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Checks map[string]struct {
		Status string `json:"status"`
		Detail string `json:"detail,omitempty"`
	} `json:"checks"`
}

func (c *Client) GetHealth(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/api/monitoring/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
