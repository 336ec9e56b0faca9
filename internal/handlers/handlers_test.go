package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coworkadmin/internal/apperrors"
	"coworkadmin/internal/handlers"
	"coworkadmin/internal/handlers/testutils"
	"coworkadmin/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStorage реализует StorageInterface
type MockStorage struct {
	createUserCalled      bool
	createPromocodeCalled bool
	pingErr               error

	GetUserFunc              func(ctx context.Context, id int) (*models.User, error)
	GetBookingFunc           func(ctx context.Context, id int) (*models.Booking, error)
	GetPromocodeFunc         func(ctx context.Context, id int) (*models.Promocode, error)
	CancelScheduledTaskFunc  func(ctx context.Context, id int) (*models.ScheduledTask, error)
	GetRecentNotificationsFn func(ctx context.Context, limit int) ([]models.Notification, error)
	SetBookingAmountFunc     func(ctx context.Context, id, amount int) (*models.Booking, error)
}

func (m *MockStorage) Ping(ctx context.Context) error { return m.pingErr }

func (m *MockStorage) CreateUser(ctx context.Context, u *models.User) error {
	m.createUserCalled = true
	u.ID = 1
	return nil
}
func (m *MockStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return &models.User{ID: id, FullName: "Иван Петров"}, nil
}
func (m *MockStorage) UpdateUser(ctx context.Context, u *models.User) (*models.User, error) {
	out := *u
	return &out, nil
}
func (m *MockStorage) DeleteUser(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetUsers(ctx context.Context, banned *bool, limit, offset int) ([]models.User, error) {
	return []models.User{{ID: 1, FullName: "Иван Петров"}}, nil
}
func (m *MockStorage) SearchUsers(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return []models.User{{ID: 2, FullName: "Мария Сидорова"}}, nil
}
func (m *MockStorage) BanUser(ctx context.Context, id int, reason string) (*models.User, error) {
	return &models.User{ID: id, FullName: "Иван Петров", IsBanned: true, BanReason: reason}, nil
}
func (m *MockStorage) UnbanUser(ctx context.Context, id int) (*models.User, error) {
	return &models.User{ID: id, FullName: "Иван Петров"}, nil
}
func (m *MockStorage) SetUserAvatar(ctx context.Context, id int, filename *string) (*models.User, error) {
	return &models.User{ID: id, FullName: "Иван Петров", Avatar: filename}, nil
}

func (m *MockStorage) CreateOffice(ctx context.Context, o *models.Office) error {
	o.ID = 1
	return nil
}
func (m *MockStorage) GetOffice(ctx context.Context, id int) (*models.Office, error) {
	return &models.Office{ID: id, OfficeNumber: "101", Capacity: 4, PricePerMonth: 1000, DurationMonths: 12}, nil
}
func (m *MockStorage) GetOfficeDetail(ctx context.Context, id int) (*models.OfficeDetail, error) {
	return &models.OfficeDetail{
		Office:  models.Office{ID: id, OfficeNumber: "101", Capacity: 4, PricePerMonth: 1000, DurationMonths: 12},
		Tenants: []models.User{{ID: 1, FullName: "Иван Петров"}},
	}, nil
}
func (m *MockStorage) UpdateOffice(ctx context.Context, o *models.Office) (*models.Office, error) {
	out := *o
	return &out, nil
}
func (m *MockStorage) DeleteOffice(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetOffices(ctx context.Context, onlyActive bool, limit, offset int) ([]models.Office, error) {
	return []models.Office{{ID: 1, OfficeNumber: "101", PricePerMonth: 1000, DurationMonths: 12}}, nil
}
func (m *MockStorage) ClearOffice(ctx context.Context, id int) (*models.OfficeDetail, error) {
	return &models.OfficeDetail{
		Office:  models.Office{ID: id, OfficeNumber: "101"},
		Tenants: []models.User{},
	}, nil
}
func (m *MockStorage) RelocateTenants(ctx context.Context, fromID, toID int) (*models.OfficeDetail, error) {
	return &models.OfficeDetail{
		Office:  models.Office{ID: toID, OfficeNumber: "202"},
		Tenants: []models.User{{ID: 1, FullName: "Иван Петров"}},
	}, nil
}
func (m *MockStorage) RecordOfficePayment(ctx context.Context, id int) (*models.Office, error) {
	next := time.Now().AddDate(0, 1, 0)
	return &models.Office{
		ID: id, OfficeNumber: "101", PaymentStatus: "paid",
		NextPayment: &next, AdminReminderEnabled: true, AdminReminderDays: 3,
	}, nil
}

func (m *MockStorage) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.ID = 1
	return nil
}
func (m *MockStorage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(ctx, id)
	}
	return &models.Booking{ID: id, UserID: 1, TariffID: 1, DurationHours: 4}, nil
}
func (m *MockStorage) UpdateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	out := *b
	return &out, nil
}
func (m *MockStorage) DeleteBooking(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetBookings(ctx context.Context, date *time.Time, limit, offset int) ([]models.Booking, error) {
	return []models.Booking{{ID: 1, UserID: 1, TariffID: 1}}, nil
}
func (m *MockStorage) GetBookingsDetailed(ctx context.Context, limit, offset int) ([]models.BookingDetailed, error) {
	return []models.BookingDetailed{{
		Booking:      models.Booking{ID: 1, UserID: 1, TariffID: 1},
		UserFullName: "Иван Петров",
		TariffName:   "Час в опенспейсе",
	}}, nil
}
func (m *MockStorage) GetBookingDetailed(ctx context.Context, id int) (*models.BookingDetailed, error) {
	return &models.BookingDetailed{
		Booking:      models.Booking{ID: id, UserID: 1, TariffID: 1},
		UserFullName: "Иван Петров",
		TariffName:   "Час в опенспейсе",
	}, nil
}
func (m *MockStorage) SetBookingAmount(ctx context.Context, id, amount int) (*models.Booking, error) {
	if m.SetBookingAmountFunc != nil {
		return m.SetBookingAmountFunc(ctx, id, amount)
	}
	return &models.Booking{ID: id, UserID: 1, TariffID: 1, Amount: amount}, nil
}

func (m *MockStorage) CreateTariff(ctx context.Context, t *models.Tariff) error {
	t.ID = 1
	return nil
}
func (m *MockStorage) GetTariff(ctx context.Context, id int) (*models.Tariff, error) {
	return &models.Tariff{ID: id, Name: "Час в опенспейсе", Price: 500, Unit: "hour"}, nil
}
func (m *MockStorage) UpdateTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error) {
	out := *t
	return &out, nil
}
func (m *MockStorage) DeleteTariff(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetTariffs(ctx context.Context) ([]models.Tariff, error) {
	return []models.Tariff{{ID: 1, Name: "Час в опенспейсе", Price: 500, Unit: "hour"}}, nil
}

func (m *MockStorage) CreatePromocode(ctx context.Context, p *models.Promocode) error {
	m.createPromocodeCalled = true
	p.ID = 1
	return nil
}
func (m *MockStorage) GetPromocode(ctx context.Context, id int) (*models.Promocode, error) {
	if m.GetPromocodeFunc != nil {
		return m.GetPromocodeFunc(ctx, id)
	}
	return &models.Promocode{ID: id, Name: "WELCOME10", DiscountPercent: 10, UsesLeft: 5, IsActive: true}, nil
}
func (m *MockStorage) UpdatePromocode(ctx context.Context, p *models.Promocode) (*models.Promocode, error) {
	out := *p
	return &out, nil
}
func (m *MockStorage) DeletePromocode(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetPromocodes(ctx context.Context) ([]models.Promocode, error) {
	return []models.Promocode{{ID: 1, Name: "WELCOME10", DiscountPercent: 10}}, nil
}
func (m *MockStorage) UsePromocode(ctx context.Context, id int) (*models.Promocode, error) {
	return &models.Promocode{ID: id, Name: "WELCOME10", DiscountPercent: 10, UsesLeft: 4, IsActive: true}, nil
}

func (m *MockStorage) CreateTicket(ctx context.Context, t *models.Ticket) error {
	t.ID = 1
	return nil
}
func (m *MockStorage) GetTicket(ctx context.Context, id int) (*models.Ticket, error) {
	return &models.Ticket{ID: id, UserID: 1, Subject: "Сломался кондиционер", Status: "open"}, nil
}
func (m *MockStorage) UpdateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	out := *t
	return &out, nil
}
func (m *MockStorage) DeleteTicket(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetTickets(ctx context.Context, status string, limit, offset int) ([]models.Ticket, error) {
	return []models.Ticket{{ID: 1, UserID: 1, Subject: "Сломался кондиционер", Status: "open"}}, nil
}
func (m *MockStorage) SetTicketPhoto(ctx context.Context, id int, filename string) (*models.Ticket, error) {
	return &models.Ticket{ID: id, UserID: 1, Subject: "Сломался кондиционер", Photo: &filename}, nil
}

func (m *MockStorage) CreateNewsletter(ctx context.Context, n *models.Newsletter) error {
	n.ID = 1
	return nil
}
func (m *MockStorage) GetNewsletter(ctx context.Context, id int) (*models.Newsletter, error) {
	return &models.Newsletter{ID: id, Subject: "Новости недели", Status: "finished", SentCount: 2}, nil
}
func (m *MockStorage) GetNewsletters(ctx context.Context, limit, offset int) ([]models.Newsletter, error) {
	return []models.Newsletter{{ID: 1, Subject: "Новости недели", Status: "finished"}}, nil
}
func (m *MockStorage) GetNewsletterRecipients(ctx context.Context, newsletterID int) ([]models.NewsletterRecipient, error) {
	return []models.NewsletterRecipient{{ID: 1, NewsletterID: newsletterID, UserID: 1, Status: "sent"}}, nil
}

func (m *MockStorage) CreateAdmin(ctx context.Context, a *models.Admin) error {
	a.ID = 1
	return nil
}
func (m *MockStorage) GetAdmin(ctx context.Context, id int) (*models.Admin, error) {
	return &models.Admin{ID: id, TelegramID: 100, FullName: "Админ", Role: "admin"}, nil
}
func (m *MockStorage) UpdateAdmin(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	out := *a
	return &out, nil
}
func (m *MockStorage) DeleteAdmin(ctx context.Context, id int) error { return nil }
func (m *MockStorage) GetAdmins(ctx context.Context) ([]models.Admin, error) {
	return []models.Admin{{ID: 1, TelegramID: 100, FullName: "Админ", Role: "admin"}}, nil
}

func (m *MockStorage) BanIP(ctx context.Context, ip, reason string, expiresAt *time.Time) (*models.IPBan, error) {
	return &models.IPBan{IP: ip, Reason: reason, IsPermanent: expiresAt == nil, ExpiresAt: expiresAt}, nil
}
func (m *MockStorage) UnbanIP(ctx context.Context, ip string) error { return nil }
func (m *MockStorage) GetIPBans(ctx context.Context) ([]models.IPBan, error) {
	return []models.IPBan{{IP: "10.0.0.5", IsPermanent: true}, {IP: "192.168.1.7"}}, nil
}

func (m *MockStorage) CreateScheduledTask(ctx context.Context, t *models.ScheduledTask) error {
	t.ID = 1
	return nil
}
func (m *MockStorage) GetScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error) {
	return &models.ScheduledTask{ID: id, Kind: "payment_reminder", Status: "pending"}, nil
}
func (m *MockStorage) GetScheduledTasks(ctx context.Context, status string, limit, offset int) ([]models.ScheduledTask, error) {
	return []models.ScheduledTask{{ID: 1, Kind: "payment_reminder", Status: "pending"}}, nil
}
func (m *MockStorage) CancelScheduledTask(ctx context.Context, id int) (*models.ScheduledTask, error) {
	if m.CancelScheduledTaskFunc != nil {
		return m.CancelScheduledTaskFunc(ctx, id)
	}
	return &models.ScheduledTask{ID: id, Kind: "payment_reminder", Status: "cancelled"}, nil
}

func (m *MockStorage) CreateBackupRecord(ctx context.Context, b *models.Backup) error { return nil }
func (m *MockStorage) DeleteBackupRecord(ctx context.Context, id string) error        { return nil }
func (m *MockStorage) GetBackup(ctx context.Context, id string) (*models.Backup, error) {
	return &models.Backup{ID: id, Filename: "backup_20260101.dump", Kind: "manual", Status: "done"}, nil
}
func (m *MockStorage) GetBackups(ctx context.Context) ([]models.Backup, error) {
	return []models.Backup{{ID: "b1", Filename: "backup_20260101.dump", Kind: "auto", Status: "done"}}, nil
}
func (m *MockStorage) GetBackupSettings(ctx context.Context) (*models.BackupSettings, error) {
	return &models.BackupSettings{AutoEnabled: true, CronExpr: "0 3 * * *", KeepDays: 31}, nil
}
func (m *MockStorage) UpdateBackupSettings(ctx context.Context, bs *models.BackupSettings) (*models.BackupSettings, error) {
	out := *bs
	return &out, nil
}

func (m *MockStorage) GetRecentNotifications(ctx context.Context, limit int) ([]models.Notification, error) {
	if m.GetRecentNotificationsFn != nil {
		return m.GetRecentNotificationsFn(ctx, limit)
	}
	return []models.Notification{{ID: 1, Kind: "payment_reminder", Message: "Оплата офиса 101"}}, nil
}
func (m *MockStorage) MarkNotificationsRead(ctx context.Context, ids []int) error { return nil }

func (m *MockStorage) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{TotalUsers: 42, ActiveOffices: 7, OpenTickets: 3}, nil
}

func newTestHandler(store *MockStorage) *handlers.Handler {
	return handlers.NewHandler(store, zap.NewNop())
}

func TestCreateUserHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	reqBody := `{"full_name": "Иван Петров", "telegram_id": 12345}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Contains(t, string(body), "Иван Петров")
	require.True(t, mockStore.createUserCalled)
}

// Пустое обязательное поле должно отсекаться до обращения к хранилищу
func TestCreateUserEmptyNameNotPersisted(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"full_name": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, string(body), "validation")
	require.False(t, mockStore.createUserCalled)
}

func TestGetUserNotFound(t *testing.T) {
	mockStore := &MockStorage{
		GetUserFunc: func(ctx context.Context, id int) (*models.User, error) {
			return nil, apperrors.NotFound("пользователь не найден")
		},
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/users/99", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "99"})
	w := httptest.NewRecorder()

	handler.GetUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Contains(t, string(body), "not_found")
}

// Аватар не задан - в ответе путь к заглушке
func TestGetUserPlaceholderAvatar(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.GetUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "/static/avatars/placeholder.png")
}

func TestBanUserRequiresReason(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/ban", strings.NewReader(`{"reason": ""}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBanUserHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/ban", strings.NewReader(`{"reason": "спам"}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"is_banned":true`)
	require.Contains(t, string(body), "спам")
}

// Офис с арендой от 12 месяцев получает скидку 15%
func TestGetOfficeEffectivePrice(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/offices/1", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.GetOfficeHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"effective_monthly_price":850`)
}

func TestRelocateOfficeToItself(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/offices/3/relocate/3", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "3", "targetId": "3"})
	w := httptest.NewRecorder()

	handler.RelocateOfficeHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestClearOfficeHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/offices/1/clear", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.ClearOfficeHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"tenants":[]`)
}

// Пересчёт: тариф 500/час * 4 часа со скидкой 10% = 1800
func TestRecalculateBookingHandler(t *testing.T) {
	promoID := 1
	mockStore := &MockStorage{
		GetBookingFunc: func(ctx context.Context, id int) (*models.Booking, error) {
			return &models.Booking{ID: id, UserID: 1, TariffID: 1, DurationHours: 4, PromocodeID: &promoID}, nil
		},
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/1/recalculate", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	handler.RecalculateBookingHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"amount":1800`)
}

func TestCreatePromocodeHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	reqBody := `{"name": "SUMMER_25", "discount_percent": 25, "uses_left": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/promocodes", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreatePromocodeHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Contains(t, string(body), "SUMMER_25")
	require.True(t, mockStore.createPromocodeCalled)
}

func TestCreatePromocodeInvalidName(t *testing.T) {
	cases := []struct {
		label string
		body  string
	}{
		{"too short", `{"name": "AB", "discount_percent": 10}`},
		{"too long", `{"name": "ABCDEFGHIJKLMNOPQRSTU", "discount_percent": 10}`},
		{"bad chars", `{"name": "ЛЕТО-2026", "discount_percent": 10}`},
		{"spaces", `{"name": "SUMMER 25", "discount_percent": 10}`},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			mockStore := &MockStorage{}
			handler := newTestHandler(mockStore)

			req := httptest.NewRequest(http.MethodPost, "/api/promocodes", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreatePromocodeHandler(w, req)

			res := w.Result()
			defer res.Body.Close()
			require.Equal(t, http.StatusBadRequest, res.StatusCode)
			require.False(t, mockStore.createPromocodeCalled)
		})
	}
}

func TestBanIPInvalidAddress(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/ip-bans/not-an-ip/ban", strings.NewReader(`{"reason": "брутфорс"}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"ip": "not-an-ip"})
	w := httptest.NewRecorder()

	handler.BanIPHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestExportNginxHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/ip-bans/export/nginx", nil)
	w := httptest.NewRecorder()

	handler.ExportNginxHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "deny 10.0.0.5;\n")
	require.Contains(t, string(body), "deny 192.168.1.7;\n")
}

// Исполняемые в данный момент задачи тоже видны через фильтр
func TestGetScheduledTasksRunningFilter(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=running", nil)
	w := httptest.NewRecorder()

	handler.GetScheduledTasksHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetScheduledTasksUnknownStatus(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=paused", nil)
	w := httptest.NewRecorder()

	handler.GetScheduledTasksHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCancelScheduledTaskConflict(t *testing.T) {
	mockStore := &MockStorage{
		CancelScheduledTaskFunc: func(ctx context.Context, id int) (*models.ScheduledTask, error) {
			return nil, apperrors.Conflict("отменить можно только задачу в статусе pending")
		},
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/5/cancel", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"id": "5"})
	w := httptest.NewRecorder()

	handler.CancelScheduledTaskHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Contains(t, string(body), "conflict")
}

func TestCheckNewNotificationsHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/check-new", nil)
	w := httptest.NewRecorder()

	handler.CheckNewNotificationsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"has_new":true`)
	require.Contains(t, string(body), "Оплата офиса 101")
}

func TestCheckNewNotificationsEmpty(t *testing.T) {
	mockStore := &MockStorage{
		GetRecentNotificationsFn: func(ctx context.Context, limit int) ([]models.Notification, error) {
			return nil, nil
		},
	}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/check-new", nil)
	w := httptest.NewRecorder()

	handler.CheckNewNotificationsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"has_new":false`)
	require.Contains(t, string(body), `"recent_notifications":[]`)
}

func TestGetDashboardStatsHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()

	handler.GetDashboardStatsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"total_users":42`)
}

func TestHealthHandlerDatabaseDown(t *testing.T) {
	mockStore := &MockStorage{pingErr: context.DeadlineExceeded}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/monitoring/health", nil)
	w := httptest.NewRecorder()

	handler.HealthHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	require.Contains(t, string(body), `"status":"unavailable"`)
}

func TestHealthHandlerOK(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/monitoring/health", nil)
	w := httptest.NewRecorder()

	handler.HealthHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"database":{"status":"ok"}`)
}

func TestUpdateBackupSettingsInvalidCron(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	reqBody := `{"auto_enabled": true, "cron_expr": "not a cron", "keep_days": 7}`
	req := httptest.NewRequest(http.MethodPut, "/api/backups/settings", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.UpdateBackupSettingsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSendNewsletterValidation(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/newsletters/send", strings.NewReader(`{"subject": "", "body": "текст"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SendNewsletterHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
