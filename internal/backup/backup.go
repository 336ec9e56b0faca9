package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"coworkadmin/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dumpTimeout = 2 * time.Minute

// Service создаёт и восстанавливает дампы Postgres через pg_dump/pg_restore
type Service struct {
	dir    string
	dsn    string
	logger *zap.Logger
}

func NewService(dir, dsn string, logger *zap.Logger) *Service {
	return &Service{dir: dir, dsn: dsn, logger: logger}
}

// Create делает дамп в custom-формате и возвращает метаданные копии
func (s *Service) Create(ctx context.Context, kind string) (*models.Backup, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("%s_backup_%s.dump", kind, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	dctx, cancel := context.WithTimeout(ctx, dumpTimeout)
	defer cancel()
	cmd := exec.CommandContext(dctx, "pg_dump", s.dsn, "-Fc", "-f", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Error("pg_dump failed", zap.Error(err), zap.ByteString("output", out))
		return nil, fmt.Errorf("pg_dump: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dump: %w", err)
	}

	s.logger.Info("backup created",
		zap.String("file", filename), zap.Int64("size", info.Size()), zap.String("kind", kind))

	return &models.Backup{
		ID:        id,
		Filename:  filename,
		SizeBytes: info.Size(),
		Kind:      kind,
		Status:    "done",
	}, nil
}

// Restore восстанавливает БД из ранее созданного дампа
func (s *Service) Restore(ctx context.Context, filename string) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("dump file: %w", err)
	}

	rctx, cancel := context.WithTimeout(ctx, dumpTimeout)
	defer cancel()
	cmd := exec.CommandContext(rctx, "pg_restore", "--clean", "--if-exists", "-d", s.dsn, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Error("pg_restore failed", zap.Error(err), zap.ByteString("output", out))
		return fmt.Errorf("pg_restore: %w", err)
	}

	s.logger.Info("backup restored", zap.String("file", filename))
	return nil
}

// Remove удаляет файл дампа. Отсутствующий файл не считается ошибкой:
// запись могла пережить ручную чистку каталога.
func (s *Service) Remove(filename string) error {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove dump: %w", err)
	}
	return nil
}

// CleanOld удаляет дампы старше keepDays, возвращает удалённые имена файлов
func (s *Service) CleanOld(keepDays int) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*backup_*.dump"))
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	var removed []string
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(f); err != nil {
				s.logger.Warn("remove old dump", zap.String("file", f), zap.Error(err))
				continue
			}
			removed = append(removed, filepath.Base(f))
		}
	}
	return removed, nil
}
