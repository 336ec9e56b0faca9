package db

import (
	"context"
	"fmt"
	"strings"

	"coworkadmin/models"
)

const userColumns = `id, telegram_id, full_name, username, phone, email, language_code,
    avatar, office_id, is_banned, ban_reason, admin_comment,
    successful_bookings, invited_count, created_at, updated_at`

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users
            (telegram_id, full_name, username, phone, email, language_code, admin_comment)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		u.TelegramID, u.FullName, u.Username, u.Phone, u.Email, u.LanguageCode, u.AdminComment).
		Scan(&u.ID, &u.CreatedAt)
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	err := s.db.GetContext(ctx, u, query, id)
	return u, translate(err, "пользователь не найден")
}

func (s *Storage) UpdateUser(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
        UPDATE users
        SET full_name=$1, username=$2, phone=$3, email=$4, language_code=$5,
            admin_comment=$6, updated_at=NOW()
        WHERE id=$7`
	res, err := s.db.ExecContext(ctx, query,
		u.FullName, u.Username, u.Phone, u.Email, u.LanguageCode, u.AdminComment, u.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "пользователь не найден")
	}
	return s.GetUser(ctx, u.ID)
}

func (s *Storage) DeleteUser(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "пользователь не найден")
	}
	return nil
}

// GetUsers возвращает пользователей с опциональным фильтром по бану
func (s *Storage) GetUsers(ctx context.Context, banned *bool, limit, offset int) ([]models.User, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM users`, userColumns)
	var args []interface{}
	filter := ""
	if banned != nil {
		filter = " WHERE is_banned = $1"
		args = append(args, *banned)
	}
	query := baseQuery + filter + " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// BanUser выставляет флаг бана с причиной; повторный бан безопасен
func (s *Storage) BanUser(ctx context.Context, id int, reason string) (*models.User, error) {
	query := `
        UPDATE users
        SET is_banned=TRUE, ban_reason=$1, updated_at=NOW()
        WHERE id=$2`
	res, err := s.db.ExecContext(ctx, query, reason, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "пользователь не найден")
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) UnbanUser(ctx context.Context, id int) (*models.User, error) {
	query := `
        UPDATE users
        SET is_banned=FALSE, ban_reason='', updated_at=NOW()
        WHERE id=$1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "пользователь не найден")
	}
	return s.GetUser(ctx, id)
}

// SetUserAvatar меняет имя файла аватара; nil сбрасывает к заглушке
func (s *Storage) SetUserAvatar(ctx context.Context, id int, filename *string) (*models.User, error) {
	query := `UPDATE users SET avatar=$1, updated_at=NOW() WHERE id=$2`
	res, err := s.db.ExecContext(ctx, query, filename, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "пользователь не найден")
	}
	return s.GetUser(ctx, id)
}

// GetRecipients - получатели рассылки: не забанены и привязаны к Telegram
func (s *Storage) GetRecipients(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE is_banned=FALSE AND telegram_id <> 0 ORDER BY id`,
		userColumns)
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, query)
	return users, err
}

// SearchUsers - поиск по имени/логину/телефону для списков панели
func (s *Storage) SearchUsers(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	query := fmt.Sprintf(`
        SELECT %s FROM users
        WHERE LOWER(full_name) LIKE $1 OR LOWER(username) LIKE $1 OR phone LIKE $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, userColumns)
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, query, pattern, limit, offset)
	return users, err
}
