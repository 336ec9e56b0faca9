package scheduler

import (
	"context"
	"sync"
	"time"

	"coworkadmin/models"
	"coworkadmin/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const claimBatch = 20

// Store - часть хранилища, нужная планировщику
type Store interface {
	ClaimDueTasks(ctx context.Context, limit int) ([]models.ScheduledTask, error)
	FinishScheduledTask(ctx context.Context, id int, status, lastError string) error
	SweepExpiredIPBans(ctx context.Context) (int64, error)
	GetBackupSettings(ctx context.Context) (*models.BackupSettings, error)
	CreateBackupRecord(ctx context.Context, b *models.Backup) error
	CreateNotification(ctx context.Context, kind, message string) error
}

// BackupRunner - операции с дампами, нужные планировщику
type BackupRunner interface {
	Create(ctx context.Context, kind string) (*models.Backup, error)
	CleanOld(keepDays int) ([]string, error)
}

// Scheduler управляет фоновыми задачами: выполнение отложенных задач,
// автоматические бэкапы и чистка просроченных IP-банов.
type Scheduler struct {
	cron    *cron.Cron
	store   Store
	backups BackupRunner
	logger  *zap.Logger

	// baseCtx - контекст процесса, из него живут cron-запуски.
	// Контекст вызова ReloadBackupSchedule сюда попадать не должен:
	// HTTP-запрос отменяется сразу после ответа.
	baseCtx context.Context

	mu            sync.Mutex
	backupEntryID cron.EntryID
}

func New(store Store, backups BackupRunner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		store:   store,
		backups: backups,
		logger:  logger,
		baseCtx: context.Background(),
	}
}

// Start регистрирует cron-задачи и запускает планировщик
func (s *Scheduler) Start(ctx context.Context) error {
	s.baseCtx = ctx
	if _, err := s.cron.AddFunc("* * * * *", func() { s.runDueTasks(s.baseCtx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("*/10 * * * *", func() { s.sweepIPBans(s.baseCtx) }); err != nil {
		return err
	}
	if err := s.ReloadBackupSchedule(ctx); err != nil {
		// Без настроек автобэкап просто не регистрируется
		s.logger.Warn("auto-backup schedule not loaded", zap.Error(err))
	}

	s.cron.Start()
	s.logger.Info("background scheduler started")
	return nil
}

// Stop останавливает планировщик и дожидается текущих задач
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("background scheduler stopped")
}

// ReloadBackupSchedule перечитывает настройки автобэкапа из БД.
// Вызывается при старте и после изменения настроек через API.
func (s *Scheduler) ReloadBackupSchedule(ctx context.Context) error {
	settings, err := s.store.GetBackupSettings(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backupEntryID != 0 {
		s.cron.Remove(s.backupEntryID)
		s.backupEntryID = 0
	}
	if !settings.AutoEnabled {
		s.logger.Info("auto-backup disabled")
		return nil
	}

	// Контекст вызова нужен только для чтения настроек: cron-запуск
	// живёт на контексте процесса, иначе первый же автобэкап после
	// изменения настроек упадёт на отменённом контексте запроса.
	id, err := s.cron.AddFunc(settings.CronExpr, func() { s.runAutoBackup(s.baseCtx) })
	if err != nil {
		return err
	}
	s.backupEntryID = id
	s.logger.Info("auto-backup scheduled", zap.String("cron", settings.CronExpr))
	return nil
}

// runDueTasks забирает созревшие задачи и выполняет их по одной
func (s *Scheduler) runDueTasks(ctx context.Context) {
	tasks, err := s.store.ClaimDueTasks(ctx, claimBatch)
	if err != nil {
		s.logger.Error("claim due tasks", zap.Error(err))
		return
	}
	for _, task := range tasks {
		status, lastError := "done", ""
		if err := s.executeTask(ctx, task); err != nil {
			status, lastError = "failed", err.Error()
			s.logger.Error("task execution failed",
				zap.Int("task_id", task.ID), zap.String("kind", task.Kind), zap.Error(err))
		}
		metrics.RecordTaskExecution(task.Kind, status)
		if err := s.store.FinishScheduledTask(ctx, task.ID, status, lastError); err != nil {
			s.logger.Error("finish task", zap.Int("task_id", task.ID), zap.Error(err))
		}
	}
}

// executeTask выполняет одну задачу в зависимости от её вида
func (s *Scheduler) executeTask(ctx context.Context, task models.ScheduledTask) error {
	switch task.Kind {
	case "payment_reminder", "tenant_reminder", "admin_reminder":
		return s.store.CreateNotification(ctx, task.Kind, task.Payload)
	case "backup":
		return s.doBackup(ctx, "scheduled")
	default:
		// Неизвестные виды фиксируются как уведомление, а не теряются молча
		return s.store.CreateNotification(ctx, "task."+task.Kind, task.Payload)
	}
}

func (s *Scheduler) runAutoBackup(ctx context.Context) {
	if err := s.doBackup(ctx, "auto"); err != nil {
		metrics.RecordBackupRun("auto", "failed")
		s.logger.Error("auto backup failed", zap.Error(err))
		return
	}
	metrics.RecordBackupRun("auto", "done")

	settings, err := s.store.GetBackupSettings(ctx)
	if err != nil {
		return
	}
	removed, err := s.backups.CleanOld(settings.KeepDays)
	if err != nil {
		s.logger.Warn("backup cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("old backups removed", zap.Int("count", len(removed)))
	}
}

func (s *Scheduler) doBackup(ctx context.Context, kind string) error {
	bctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	b, err := s.backups.Create(bctx, kind)
	if err != nil {
		return err
	}
	return s.store.CreateBackupRecord(bctx, b)
}

func (s *Scheduler) sweepIPBans(ctx context.Context) {
	n, err := s.store.SweepExpiredIPBans(ctx)
	if err != nil {
		s.logger.Error("sweep expired ip bans", zap.Error(err))
		return
	}
	if n > 0 {
		metrics.IPBansSwept.Add(float64(n))
		s.logger.Info("expired ip bans removed", zap.Int64("count", n))
	}
}
