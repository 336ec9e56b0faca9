package models

import "time"

// Сущность Пользователя (резидент коворкинга)
type User struct {
	ID                 int        `db:"id" json:"id"`
	TelegramID         int64      `db:"telegram_id" json:"telegram_id"`
	FullName           string     `db:"full_name" json:"full_name" validate:"required,max=200"`
	Username           string     `db:"username" json:"username"`
	Phone              string     `db:"phone" json:"phone"`
	Email              string     `db:"email" json:"email"`
	LanguageCode       string     `db:"language_code" json:"language_code"`
	Avatar             *string    `db:"avatar" json:"avatar"`
	OfficeID           *int       `db:"office_id" json:"office_id"`
	IsBanned           bool       `db:"is_banned" json:"is_banned"`
	BanReason          string     `db:"ban_reason" json:"ban_reason"`
	AdminComment       string     `db:"admin_comment" json:"admin_comment"`
	SuccessfulBookings int        `db:"successful_bookings" json:"successful_bookings"`
	InvitedCount       int        `db:"invited_count" json:"invited_count"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Сущность Офиса (арендуемое помещение)
type Office struct {
	ID                    int        `db:"id" json:"id"`
	OfficeNumber          string     `db:"office_number" json:"office_number" validate:"required,max=20"`
	Floor                 int        `db:"floor" json:"floor"`
	Capacity              int        `db:"capacity" json:"capacity" validate:"required,min=1"`
	PricePerMonth         int        `db:"price_per_month" json:"price_per_month"`
	DurationMonths        int        `db:"duration_months" json:"duration_months"`
	RentStart             *time.Time `db:"rent_start" json:"rent_start"`
	RentEnd               *time.Time `db:"rent_end" json:"rent_end"`
	PaymentDay            int        `db:"payment_day" json:"payment_day"`
	PaymentType           string     `db:"payment_type" json:"payment_type"`
	PaymentStatus         string     `db:"payment_status" json:"payment_status"`
	LastPayment           *time.Time `db:"last_payment" json:"last_payment"`
	NextPayment           *time.Time `db:"next_payment" json:"next_payment"`
	AdminReminderEnabled  bool       `db:"admin_reminder_enabled" json:"admin_reminder_enabled"`
	AdminReminderDays     int        `db:"admin_reminder_days" json:"admin_reminder_days"`
	TenantReminderEnabled bool       `db:"tenant_reminder_enabled" json:"tenant_reminder_enabled"`
	TenantReminderDays    int        `db:"tenant_reminder_days" json:"tenant_reminder_days"`
	Comment               string     `db:"comment" json:"comment"`
	IsActive              bool       `db:"is_active" json:"is_active"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// OfficeDetail - офис вместе со списком арендаторов
type OfficeDetail struct {
	Office
	Tenants []User `json:"tenants"`
}

// Сущность Бронирования
type Booking struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id" validate:"required"`
	TariffID      int       `db:"tariff_id" json:"tariff_id" validate:"required"`
	VisitDate     time.Time `db:"visit_date" json:"visit_date"`
	VisitTime     string    `db:"visit_time" json:"visit_time"`
	DurationHours int       `db:"duration_hours" json:"duration_hours"`
	Amount        int       `db:"amount" json:"amount"`
	IsPaid        bool      `db:"is_paid" json:"is_paid"`
	IsConfirmed   bool      `db:"is_confirmed" json:"is_confirmed"`
	IsCancelled   bool      `db:"is_cancelled" json:"is_cancelled"`
	PromocodeID   *int      `db:"promocode_id" json:"promocode_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// BookingDetailed - бронирование с именами пользователя и тарифа для списков
type BookingDetailed struct {
	Booking
	UserFullName string `db:"user_full_name" json:"user_full_name"`
	TariffName   string `db:"tariff_name" json:"tariff_name"`
}

// Сущность Тарифа
type Tariff struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required,max=100"`
	Description string    `db:"description" json:"description"`
	Price       int       `db:"price" json:"price"`
	Unit        string    `db:"unit" json:"unit" validate:"required,oneof=hour day month meeting_room"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Сущность Промокода
type Promocode struct {
	ID              int        `db:"id" json:"id"`
	Name            string     `db:"name" json:"name" validate:"required,min=3,max=20"`
	DiscountPercent int        `db:"discount_percent" json:"discount_percent"`
	UsesLeft        int        `db:"uses_left" json:"uses_left"`
	ExpiresAt       *time.Time `db:"expires_at" json:"expires_at"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Сущность Тикета (обращение в поддержку)
type Ticket struct {
	ID         int        `db:"id" json:"id"`
	UserID     int        `db:"user_id" json:"user_id"`
	Subject    string     `db:"subject" json:"subject" validate:"required,max=200"`
	Message    string     `db:"message" json:"message"`
	Photo      *string    `db:"photo" json:"photo"`
	Status     string     `db:"status" json:"status" validate:"oneof=open in_progress closed"`
	AdminReply string     `db:"admin_reply" json:"admin_reply"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Сущность Рассылки
type Newsletter struct {
	ID          int       `db:"id" json:"id"`
	Subject     string    `db:"subject" json:"subject" validate:"required,max=200"`
	Body        string    `db:"body" json:"body" validate:"required"`
	Status      string    `db:"status" json:"status"`
	SentCount   int       `db:"sent_count" json:"sent_count"`
	FailedCount int       `db:"failed_count" json:"failed_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Получатель рассылки с результатом доставки
type NewsletterRecipient struct {
	ID           int       `db:"id" json:"id"`
	NewsletterID int       `db:"newsletter_id" json:"newsletter_id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Status       string    `db:"status" json:"status"` // sent | failed | skipped
	Error        string    `db:"error" json:"error"`
	SentAt       time.Time `db:"sent_at" json:"sent_at"`
}

// Сущность Администратора панели
type Admin struct {
	ID         int       `db:"id" json:"id"`
	TelegramID int64     `db:"telegram_id" json:"telegram_id"`
	FullName   string    `db:"full_name" json:"full_name" validate:"required,max=200"`
	Role       string    `db:"role" json:"role" validate:"oneof=admin superadmin"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Сущность IP-бана
type IPBan struct {
	IP          string     `db:"ip" json:"ip"`
	Reason      string     `db:"reason" json:"reason"`
	IsPermanent bool       `db:"is_permanent" json:"is_permanent"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Сущность Отложенной задачи
type ScheduledTask struct {
	ID        int        `db:"id" json:"id"`
	Kind      string     `db:"kind" json:"kind"`
	Payload   string     `db:"payload" json:"payload"`
	RunAt     time.Time  `db:"run_at" json:"run_at"`
	Status    string     `db:"status" json:"status"` // pending | running | done | failed | cancelled
	LastError string     `db:"last_error" json:"last_error"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Метаданные резервной копии БД
type Backup struct {
	ID        string    `db:"id" json:"id"`
	Filename  string    `db:"filename" json:"filename"`
	SizeBytes int64     `db:"size_bytes" json:"size_bytes"`
	Kind      string    `db:"kind" json:"kind"` // manual | auto | scheduled
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Настройки автоматического резервного копирования (единственная строка)
type BackupSettings struct {
	AutoEnabled bool   `db:"auto_enabled" json:"auto_enabled"`
	CronExpr    string `db:"cron_expr" json:"cron_expr"`
	KeepDays    int    `db:"keep_days" json:"keep_days"`
}

// Сущность Уведомления для панели
type Notification struct {
	ID        int       `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Ответ на опрос новых уведомлений
type CheckNewResponse struct {
	HasNew              bool           `json:"has_new"`
	RecentNotifications []Notification `json:"recent_notifications"`
}

// Агрегаты для дашборда, считаются на сервере
type DashboardStats struct {
	TotalUsers      int `db:"total_users" json:"total_users"`
	BannedUsers     int `db:"banned_users" json:"banned_users"`
	ActiveOffices   int `db:"active_offices" json:"active_offices"`
	BookingsToday   int `db:"bookings_today" json:"bookings_today"`
	BookingsMonth   int `db:"bookings_month" json:"bookings_month"`
	RevenueMonth    int `db:"revenue_month" json:"revenue_month"`
	OpenTickets     int `db:"open_tickets" json:"open_tickets"`
	PendingTasks    int `db:"pending_tasks" json:"pending_tasks"`
	ActiveIPBans    int `db:"active_ip_bans" json:"active_ip_bans"`
	UnreadNotices   int `db:"unread_notices" json:"unread_notices"`
	ActivePromos    int `db:"active_promos" json:"active_promos"`
	NewslettersSent int `db:"newsletters_sent" json:"newsletters_sent"`
}
