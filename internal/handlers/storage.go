package handlers

import (
	"context"
	"time"

	"coworkadmin/models"
)

type StorageInterface interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
	GetUsers(ctx context.Context, banned *bool, limit, offset int) ([]models.User, error)
	SearchUsers(ctx context.Context, q string, limit, offset int) ([]models.User, error)
	BanUser(ctx context.Context, id int, reason string) (*models.User, error)
	UnbanUser(ctx context.Context, id int) (*models.User, error)
	SetUserAvatar(ctx context.Context, id int, filename *string) (*models.User, error)

	CreateOffice(ctx context.Context, o *models.Office) error
	GetOffice(ctx context.Context, id int) (*models.Office, error)
	GetOfficeDetail(ctx context.Context, id int) (*models.OfficeDetail, error)
	UpdateOffice(ctx context.Context, o *models.Office) (*models.Office, error)
	DeleteOffice(ctx context.Context, id int) error
	GetOffices(ctx context.Context, onlyActive bool, limit, offset int) ([]models.Office, error)
	ClearOffice(ctx context.Context, id int) (*models.OfficeDetail, error)
	RelocateTenants(ctx context.Context, fromID, toID int) (*models.OfficeDetail, error)
	RecordOfficePayment(ctx context.Context, id int) (*models.Office, error)

	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id int) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int) error
	GetBookings(ctx context.Context, date *time.Time, limit, offset int) ([]models.Booking, error)
	GetBookingsDetailed(ctx context.Context, limit, offset int) ([]models.BookingDetailed, error)
	GetBookingDetailed(ctx context.Context, id int) (*models.BookingDetailed, error)
	SetBookingAmount(ctx context.Context, id, amount int) (*models.Booking, error)

	CreateTariff(ctx context.Context, t *models.Tariff) error
	GetTariff(ctx context.Context, id int) (*models.Tariff, error)
	UpdateTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error)
	DeleteTariff(ctx context.Context, id int) error
	GetTariffs(ctx context.Context) ([]models.Tariff, error)

	CreatePromocode(ctx context.Context, p *models.Promocode) error
	GetPromocode(ctx context.Context, id int) (*models.Promocode, error)
	UpdatePromocode(ctx context.Context, p *models.Promocode) (*models.Promocode, error)
	DeletePromocode(ctx context.Context, id int) error
	GetPromocodes(ctx context.Context) ([]models.Promocode, error)
	UsePromocode(ctx context.Context, id int) (*models.Promocode, error)

	CreateTicket(ctx context.Context, t *models.Ticket) error
	GetTicket(ctx context.Context, id int) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	DeleteTicket(ctx context.Context, id int) error
	GetTickets(ctx context.Context, status string, limit, offset int) ([]models.Ticket, error)
	SetTicketPhoto(ctx context.Context, id int, filename string) (*models.Ticket, error)

	CreateNewsletter(ctx context.Context, n *models.Newsletter) error
	GetNewsletter(ctx context.Context, id int) (*models.Newsletter, error)
	GetNewsletters(ctx context.Context, limit, offset int) ([]models.Newsletter, error)
	GetNewsletterRecipients(ctx context.Context, newsletterID int) ([]models.NewsletterRecipient, error)

	CreateAdmin(ctx context.Context, a *models.Admin) error
	GetAdmin(ctx context.Context, id int) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, a *models.Admin) (*models.Admin, error)
	DeleteAdmin(ctx context.Context, id int) error
	GetAdmins(ctx context.Context) ([]models.Admin, error)

	BanIP(ctx context.Context, ip, reason string, expiresAt *time.Time) (*models.IPBan, error)
	UnbanIP(ctx context.Context, ip string) error
	GetIPBans(ctx context.Context) ([]models.IPBan, error)

	CreateScheduledTask(ctx context.Context, t *models.ScheduledTask) error
	GetScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error)
	GetScheduledTasks(ctx context.Context, status string, limit, offset int) ([]models.ScheduledTask, error)
	CancelScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error)

	CreateBackupRecord(ctx context.Context, b *models.Backup) error
	GetBackup(ctx context.Context, id string) (*models.Backup, error)
	DeleteBackupRecord(ctx context.Context, id string) error
	GetBackups(ctx context.Context) ([]models.Backup, error)
	GetBackupSettings(ctx context.Context) (*models.BackupSettings, error)
	UpdateBackupSettings(ctx context.Context, bs *models.BackupSettings) (*models.BackupSettings, error)

	GetRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, ids []int) error

	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}
