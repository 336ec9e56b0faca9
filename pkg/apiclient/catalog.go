package apiclient

import (
	"context"
	"fmt"

	"coworkadmin/models"
)

func (c *Client) CreateTariff(ctx context.Context, t *models.Tariff) (*models.Tariff, error) {
	var out models.Tariff
	if err := c.post(ctx, "/api/tariffs", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTariff(ctx context.Context, id int) (*models.Tariff, error) {
	var out models.Tariff
	if err := c.get(ctx, fmt.Sprintf("/api/tariffs/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTariffs(ctx context.Context) ([]models.Tariff, error) {
	var out []models.Tariff
	if err := c.get(ctx, "/api/tariffs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTariff(ctx context.Context, id int, t *models.Tariff) (*models.Tariff, error) {
	var out models.Tariff
	if err := c.put(ctx, fmt.Sprintf("/api/tariffs/%d", id), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTariff(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/tariffs/%d", id))
}

func (c *Client) CreatePromocode(ctx context.Context, p *models.Promocode) (*models.Promocode, error) {
	var out models.Promocode
	if err := c.post(ctx, "/api/promocodes", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPromocode(ctx context.Context, id int) (*models.Promocode, error) {
	var out models.Promocode
	if err := c.get(ctx, fmt.Sprintf("/api/promocodes/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPromocodes(ctx context.Context) ([]models.Promocode, error) {
	var out []models.Promocode
	if err := c.get(ctx, "/api/promocodes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdatePromocode(ctx context.Context, id int, p *models.Promocode) (*models.Promocode, error) {
	var out models.Promocode
	if err := c.put(ctx, fmt.Sprintf("/api/promocodes/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePromocode(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/promocodes/%d", id))
}

// UsePromocode атомарно списывает одно использование промокода.
// Исчерпанный или просроченный промокод - ошибка conflict.
func (c *Client) UsePromocode(ctx context.Context, id int) (*models.Promocode, error) {
	var out models.Promocode
	if err := c.post(ctx, fmt.Sprintf("/api/promocodes/%d/use", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
