package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coworkadmin/db"
	"coworkadmin/db/migrations"
	"coworkadmin/internal/app"
	"coworkadmin/internal/backup"
	"coworkadmin/internal/config"
	"coworkadmin/internal/handlers"
	"coworkadmin/internal/notify"
	"coworkadmin/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		logger.Fatal("cannot connect to db", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB, "migrations"); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	store := db.NewStorage(dbConn)
	backups := backup.NewService(cfg.BackupDir, cfg.PostgresConn, logger)

	sender, err := notify.NewSender(cfg.TelegramToken, store, logger)
	if err != nil {
		logger.Fatal("newsletter sender init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(store, backups, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}

	h := handlers.NewHandler(store, logger)
	h.Backups = backups
	h.Sender = sender
	h.UploadDir = cfg.UploadDir
	h.ReloadBackup = sched.ReloadBackupSchedule

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(handlers.RequestLogger(logger))

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.UploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		// пользователи
		r.Post("/users", h.CreateUserHandler)
		r.Get("/users", h.GetUsersHandler)
		r.Get("/users/export/csv", h.ExportUsersCSVHandler)
		r.Get("/users/{id}", h.GetUserHandler)
		r.Put("/users/{id}", h.UpdateUserHandler)
		r.Delete("/users/{id}", h.DeleteUserHandler)
		r.Post("/users/{id}/ban", h.BanUserHandler)
		r.Post("/users/{id}/unban", h.UnbanUserHandler)
		r.Post("/users/{id}/avatar", h.UploadAvatarHandler)
		r.Delete("/users/{id}/avatar", h.DeleteAvatarHandler)

		// офисы
		r.Post("/offices", h.CreateOfficeHandler)
		r.Get("/offices", h.GetOfficesHandler)
		r.Get("/offices/{id}", h.GetOfficeHandler)
		r.Put("/offices/{id}", h.UpdateOfficeHandler)
		r.Delete("/offices/{id}", h.DeleteOfficeHandler)
		r.Post("/offices/{id}/clear", h.ClearOfficeHandler)
		r.Post("/offices/{id}/relocate/{targetId}", h.RelocateOfficeHandler)
		r.Post("/offices/{id}/payment", h.RecordPaymentHandler)

		// бронирования
		r.Post("/bookings", h.CreateBookingHandler)
		r.Get("/bookings", h.GetBookingsHandler)
		r.Get("/bookings/detailed", h.GetBookingsDetailedHandler)
		r.Get("/bookings/{id}", h.GetBookingHandler)
		r.Get("/bookings/{id}/full", h.GetBookingFullHandler)
		r.Put("/bookings/{id}", h.UpdateBookingHandler)
		r.Delete("/bookings/{id}", h.DeleteBookingHandler)
		r.Post("/bookings/{id}/recalculate", h.RecalculateBookingHandler)

		// тарифы
		r.Post("/tariffs", h.CreateTariffHandler)
		r.Get("/tariffs", h.GetTariffsHandler)
		r.Get("/tariffs/{id}", h.GetTariffHandler)
		r.Put("/tariffs/{id}", h.UpdateTariffHandler)
		r.Delete("/tariffs/{id}", h.DeleteTariffHandler)

		// промокоды
		r.Post("/promocodes", h.CreatePromocodeHandler)
		r.Get("/promocodes", h.GetPromocodesHandler)
		r.Get("/promocodes/{id}", h.GetPromocodeHandler)
		r.Put("/promocodes/{id}", h.UpdatePromocodeHandler)
		r.Delete("/promocodes/{id}", h.DeletePromocodeHandler)
		r.Post("/promocodes/{id}/use", h.UsePromocodeHandler)

		// тикеты
		r.Post("/tickets", h.CreateTicketHandler)
		r.Get("/tickets", h.GetTicketsHandler)
		r.Get("/tickets/{id}", h.GetTicketHandler)
		r.Put("/tickets/{id}", h.UpdateTicketHandler)
		r.Delete("/tickets/{id}", h.DeleteTicketHandler)
		r.Post("/tickets/{id}/photo", h.UploadTicketPhotoHandler)
		r.Get("/tickets/{id}/photo", h.GetTicketPhotoBase64Handler)

		// рассылки
		r.Post("/newsletters/send", h.SendNewsletterHandler)
		r.Get("/newsletters/history", h.GetNewsletterHistoryHandler)
		r.Get("/newsletters/{id}/recipients", h.GetNewsletterRecipientsHandler)

		// администраторы
		r.Post("/admins", h.CreateAdminHandler)
		r.Get("/admins", h.GetAdminsHandler)
		r.Get("/admins/{id}", h.GetAdminHandler)
		r.Put("/admins/{id}", h.UpdateAdminHandler)
		r.Delete("/admins/{id}", h.DeleteAdminHandler)

		// IP-баны
		r.Get("/ip-bans", h.GetIPBansHandler)
		r.Get("/ip-bans/export/nginx", h.ExportNginxHandler)
		r.Post("/ip-bans/{ip}/ban", h.BanIPHandler)
		r.Post("/ip-bans/{ip}/unban", h.UnbanIPHandler)

		// отложенные задачи
		r.Get("/tasks", h.GetScheduledTasksHandler)
		r.Get("/tasks/{id}", h.GetScheduledTaskHandler)
		r.Post("/tasks/{id}/cancel", h.CancelScheduledTaskHandler)

		// резервные копии
		r.Get("/backups", h.GetBackupsHandler)
		r.Post("/backups/create", h.CreateBackupHandler)
		r.Post("/backups/restore", h.RestoreBackupHandler)
		r.Delete("/backups/{id}", h.DeleteBackupHandler)
		r.Get("/backups/settings", h.GetBackupSettingsHandler)
		r.Put("/backups/settings", h.UpdateBackupSettingsHandler)

		// дашборд и мониторинг
		r.Get("/dashboard/stats", h.GetDashboardStatsHandler)
		r.Get("/monitoring/health", h.HealthHandler)
		r.Get("/notifications/check-new", h.CheckNewNotificationsHandler)
		r.Post("/notifications/mark-read", h.MarkNotificationsReadHandler)
	})

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("address", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	sched.Stop()
}
