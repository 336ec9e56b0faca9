package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"coworkadmin/models"
)

// TicketPhoto - фото тикета в base64 для встраивания в интерфейс
type TicketPhoto struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

func (c *Client) CreateTicket(ctx context.Context, t *models.Ticket) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.post(ctx, "/api/tickets", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTicket(ctx context.Context, id int) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.get(ctx, fmt.Sprintf("/api/tickets/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTickets(ctx context.Context, status string, limit, offset int) ([]models.Ticket, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/tickets"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []models.Ticket
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTicket(ctx context.Context, id int, t *models.Ticket) (*models.Ticket, error) {
	var out models.Ticket
	if err := c.put(ctx, fmt.Sprintf("/api/tickets/%d", id), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTicket(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/tickets/%d", id))
}

// UploadTicketPhoto прикладывает фото к тикету multipart-формой (поле photo)
func (c *Client) UploadTicketPhoto(ctx context.Context, id int, filename string, file io.Reader) (*models.Ticket, error) {
	var out models.Ticket
	path := fmt.Sprintf("/api/tickets/%d/photo", id)
	if err := c.postMultipart(ctx, path, "photo", filename, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTicketPhoto(ctx context.Context, id int) (*TicketPhoto, error) {
	var out TicketPhoto
	if err := c.get(ctx, fmt.Sprintf("/api/tickets/%d/photo", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendNewsletter создаёт рассылку и доставляет её всем получателям.
// Возвращает запись рассылки с итоговыми счётчиками.
func (c *Client) SendNewsletter(ctx context.Context, subject, body string) (*models.Newsletter, error) {
	in := map[string]string{"subject": subject, "body": body}
	var out models.Newsletter
	if err := c.post(ctx, "/api/newsletters/send", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNewsletterHistory(ctx context.Context, limit, offset int) ([]models.Newsletter, error) {
	var out []models.Newsletter
	path := fmt.Sprintf("/api/newsletters/history?limit=%d&offset=%d", limit, offset)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNewsletterRecipients(ctx context.Context, id int) ([]models.NewsletterRecipient, error) {
	var out []models.NewsletterRecipient
	if err := c.get(ctx, fmt.Sprintf("/api/newsletters/%d/recipients", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAdmin(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	var out models.Admin
	if err := c.post(ctx, "/api/admins", a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAdmin(ctx context.Context, id int) (*models.Admin, error) {
	var out models.Admin
	if err := c.get(ctx, fmt.Sprintf("/api/admins/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAdmins(ctx context.Context) ([]models.Admin, error) {
	var out []models.Admin
	if err := c.get(ctx, "/api/admins", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAdmin(ctx context.Context, id int, a *models.Admin) (*models.Admin, error) {
	var out models.Admin
	if err := c.put(ctx, fmt.Sprintf("/api/admins/%d", id), a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAdmin(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/admins/%d", id))
}
