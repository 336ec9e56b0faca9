package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"coworkadmin/models"
)

// UserListParams - фильтры списка пользователей
type UserListParams struct {
	Banned *bool
	Query  string
	Limit  int
	Offset int
}

func (p UserListParams) encode() string {
	q := url.Values{}
	if p.Banned != nil {
		q.Set("banned", strconv.FormatBool(*p.Banned))
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// User - пользователь с разрешённым адресом аватара
type User struct {
	models.User
	AvatarURL string `json:"avatar_url"`
}

func (c *Client) CreateUser(ctx context.Context, u *models.User) (*User, error) {
	var out User
	if err := c.post(ctx, "/api/users", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	var out User
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUsers(ctx context.Context, params UserListParams) ([]User, error) {
	var out []User
	if err := c.get(ctx, "/api/users"+params.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, u *models.User) (*User, error) {
	var out User
	if err := c.put(ctx, fmt.Sprintf("/api/users/%d", id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d", id))
}

func (c *Client) BanUser(ctx context.Context, id int, reason string) (*User, error) {
	var out User
	in := map[string]string{"reason": reason}
	if err := c.post(ctx, fmt.Sprintf("/api/users/%d/ban", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnbanUser(ctx context.Context, id int) (*User, error) {
	var out User
	if err := c.post(ctx, fmt.Sprintf("/api/users/%d/unban", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar загружает аватар пользователя multipart-формой (поле avatar)
// и возвращает пользователя с обновлённым адресом аватара.
func (c *Client) UploadAvatar(ctx context.Context, id int, filename string, file io.Reader) (*User, error) {
	var out User
	path := fmt.Sprintf("/api/users/%d/avatar", id)
	if err := c.postMultipart(ctx, path, "avatar", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUserAvatar(ctx context.Context, id int) (*User, error) {
	var out User
	if err := c.do(ctx, "DELETE", fmt.Sprintf("/api/users/%d/avatar", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportUsersCSV отдаёт CSV-выгрузку пользователей. Закрыть reader
// обязан вызывающий.
func (c *Client) ExportUsersCSV(ctx context.Context) (io.ReadCloser, error) {
	return c.doRaw(ctx, "GET", "/api/users/export/csv")
}
