package db

import (
	"context"

	"coworkadmin/models"
)

func (s *Storage) CreateBackupRecord(ctx context.Context, b *models.Backup) error {
	query := `
        INSERT INTO backups (id, filename, size_bytes, kind, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query, b.ID, b.Filename, b.SizeBytes, b.Kind, b.Status).
		Scan(&b.CreatedAt)
}

func (s *Storage) GetBackup(ctx context.Context, id string) (*models.Backup, error) {
	b := &models.Backup{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM backups WHERE id=$1`, id)
	return b, translate(err, "резервная копия не найдена")
}

func (s *Storage) GetBackups(ctx context.Context) ([]models.Backup, error) {
	backups := []models.Backup{}
	err := s.db.SelectContext(ctx, &backups, `SELECT * FROM backups ORDER BY created_at DESC`)
	return backups, err
}

func (s *Storage) DeleteBackupRecord(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM backups WHERE id=$1`, id)
	return err
}

// GetBackupSettings читает единственную строку настроек
func (s *Storage) GetBackupSettings(ctx context.Context) (*models.BackupSettings, error) {
	bs := &models.BackupSettings{}
	err := s.db.GetContext(ctx, bs,
		`SELECT auto_enabled, cron_expr, keep_days FROM backup_settings LIMIT 1`)
	return bs, translate(err, "настройки резервного копирования не найдены")
}

func (s *Storage) UpdateBackupSettings(ctx context.Context, bs *models.BackupSettings) (*models.BackupSettings, error) {
	query := `UPDATE backup_settings SET auto_enabled=$1, cron_expr=$2, keep_days=$3`
	if _, err := s.db.ExecContext(ctx, query, bs.AutoEnabled, bs.CronExpr, bs.KeepDays); err != nil {
		return nil, err
	}
	return s.GetBackupSettings(ctx)
}
