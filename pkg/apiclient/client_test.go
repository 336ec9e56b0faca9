package apiclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"coworkadmin/internal/apperrors"
	"coworkadmin/pkg/apiclient"

	"github.com/stretchr/testify/require"
)

func TestErrorEnvelopeDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"kind":"not_found","detail":"пользователь не найден"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.GetUser(context.Background(), 99)
	require.Error(t, err)

	var e *apperrors.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, apperrors.KindNotFound, e.Kind)
	require.Equal(t, "пользователь не найден", e.Detail)
}

func TestErrorEnvelopeFallbackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("plain text, not json"))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.UsePromocode(context.Background(), 1)
	require.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestUploadAvatarMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/3/avatar", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "photo.png", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "png-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"full_name":"Иван Петров","avatar_url":"/static/avatars/a1b2.png"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	user, err := c.UploadAvatar(context.Background(), 3, "photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, 3, user.ID)
	require.Equal(t, "/static/avatars/a1b2.png", user.AvatarURL)
}

func TestUploadTicketPhotoMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tickets/5/photo", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "leak.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"subject":"Протечка","photo":"ticket_5_leak.jpg","status":"open"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	ticket, err := c.UploadTicketPhoto(context.Background(), 5, "leak.jpg", strings.NewReader("jpg-bytes"))
	require.NoError(t, err)
	require.Equal(t, 5, ticket.ID)
	require.NotNil(t, ticket.Photo)
}

func TestUploadAvatarValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"kind":"validation","detail":"файл не является изображением"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.UploadAvatar(context.Background(), 3, "notes.txt", strings.NewReader("text"))
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetUserOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"full_name":"Иван Петров","avatar_url":"/static/avatars/placeholder.png"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	user, err := c.GetUser(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 7, user.ID)
	require.Equal(t, "/static/avatars/placeholder.png", user.AvatarURL)
}

// Фоновый опрос уведомлений не должен ронять интерфейс:
// при недоступном сервере возвращается пустой ответ без ошибки
func TestCheckNewNotificationsDegradesOnUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"kind":"unavailable","detail":"БД недоступна"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	resp, err := c.CheckNewNotifications(context.Background())
	require.NoError(t, err)
	require.False(t, resp.HasNew)
	require.NotNil(t, resp.RecentNotifications)
	require.Empty(t, resp.RecentNotifications)
	// одна повторная попытка после первой неудачи
	require.Equal(t, int32(2), calls.Load())
}

func TestCheckNewNotificationsRecoversOnRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"kind":"unavailable","detail":"БД недоступна"}`))
			return
		}
		w.Write([]byte(`{"has_new":true,"recent_notifications":[{"id":1,"kind":"ticket","message":"Новый тикет"}]}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	resp, err := c.CheckNewNotifications(context.Background())
	require.NoError(t, err)
	require.True(t, resp.HasNew)
	require.Len(t, resp.RecentNotifications, 1)
}

func TestGetDashboardStatsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"kind":"unavailable","detail":"БД недоступна"}`))
			return
		}
		w.Write([]byte(`{"total_users":42,"active_offices":7}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	stats, err := c.GetDashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, stats.TotalUsers)
	require.Equal(t, int32(2), calls.Load())
}

// Ошибки валидации не ретраятся
func TestValidationErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"kind":"validation","detail":"имя промокода: 3-20 символов из A-Za-z0-9_-"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.GetDashboardStats(context.Background())
	require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	require.Equal(t, int32(1), calls.Load())
}

func TestBanUserSendsReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/5/ban", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"full_name":"Иван Петров","is_banned":true,"ban_reason":"спам","avatar_url":"/static/avatars/placeholder.png"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	user, err := c.BanUser(context.Background(), 5, "спам")
	require.NoError(t, err)
	require.True(t, user.IsBanned)
	require.Equal(t, "спам", user.BanReason)
}
