package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"coworkadmin/internal/apperrors"
	"coworkadmin/internal/avatar"
	"coworkadmin/models"
)

// userResponse - пользователь с разрешённым адресом аватара
type userResponse struct {
	models.User
	AvatarURL string `json:"avatar_url"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{User: *u, AvatarURL: avatar.URL(u.Avatar)}
}

// validateUserRequest проверяет необходимые поля пользователя
func validateUserRequest(u *models.User) error {
	name := strings.TrimSpace(u.FullName)
	if name == "" || len(name) > 200 {
		return apperrors.Validation("full_name обязателен, не длиннее 200 символов")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return apperrors.Validation("некорректный email")
	}
	if len(u.Phone) > 30 {
		return apperrors.Validation("телефон не длиннее 30 символов")
	}
	return nil
}

// CreateUserHandler обрабатывает POST /api/users
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(w, r, &user); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateUserRequest(&user); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.Store.CreateUser(r.Context(), &user); err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(&user))
}

// GetUsersHandler возвращает список пользователей.
// Параметры: banned=true|false, q=<поиск>, limit, offset.
func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		users, err := h.Store.SearchUsers(r.Context(), q, params.Limit, params.Offset)
		if err != nil {
			h.respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, usersToResponse(users))
		return
	}

	var banned *bool
	if v := r.URL.Query().Get("banned"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.respondError(w, apperrors.Validation("banned должен быть true или false"))
			return
		}
		banned = &b
	}

	users, err := h.Store.GetUsers(r.Context(), banned, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, usersToResponse(users))
}

func usersToResponse(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

// GetUserHandler возвращает пользователя по id
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUserHandler обрабатывает PUT /api/users/{id}
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var user models.User
	if err := decodeBody(w, r, &user); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validateUserRequest(&user); err != nil {
		h.respondError(w, err)
		return
	}
	user.ID = id

	updated, err := h.Store.UpdateUser(r.Context(), &user)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(updated))
}

// DeleteUserHandler обрабатывает DELETE /api/users/{id}
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.Store.DeleteUser(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BanUserHandler обрабатывает POST /api/users/{id}/ban
func (h *Handler) BanUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		h.respondError(w, err)
		return
	}
	if strings.TrimSpace(input.Reason) == "" {
		h.respondError(w, apperrors.Validation("причина бана обязательна"))
		return
	}

	user, err := h.Store.BanUser(r.Context(), id, input.Reason)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// UnbanUserHandler обрабатывает POST /api/users/{id}/unban
func (h *Handler) UnbanUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	user, err := h.Store.UnbanUser(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// UploadAvatarHandler принимает multipart-файл и сохраняет его под новым именем
func (h *Handler) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.respondError(w, apperrors.Validation("некорректная multipart-форма"))
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.respondError(w, apperrors.Validation("поле avatar с файлом обязательно"))
		return
	}
	defer file.Close()

	filename := avatar.NewFilename(header.Filename)
	dir := filepath.Join(h.UploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.respondError(w, err)
		return
	}
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.Store.SetUserAvatar(r.Context(), id, &filename)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// DeleteAvatarHandler сбрасывает аватар пользователя к заглушке
func (h *Handler) DeleteAvatarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondError(w, err)
		return
	}
	user, err := h.Store.SetUserAvatar(r.Context(), id, nil)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

// ExportUsersCSVHandler отдаёт всех пользователей одним CSV-файлом
func (h *Handler) ExportUsersCSVHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.GetUsers(r.Context(), nil, 100000, 0)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "telegram_id", "full_name", "username", "phone", "email",
		"is_banned", "successful_bookings", "invited_count", "created_at"})
	for _, u := range users {
		cw.Write([]string{
			strconv.Itoa(u.ID),
			strconv.FormatInt(u.TelegramID, 10),
			u.FullName,
			u.Username,
			u.Phone,
			u.Email,
			fmt.Sprintf("%t", u.IsBanned),
			strconv.Itoa(u.SuccessfulBookings),
			strconv.Itoa(u.InvitedCount),
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
}
