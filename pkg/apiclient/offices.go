package apiclient

import (
	"context"
	"fmt"

	"coworkadmin/models"
)

// Office - офис с эффективной ценой месяца после скидки за срок
type Office struct {
	models.Office
	EffectiveMonthlyPrice int `json:"effective_monthly_price"`
}

// OfficeDetail - офис с арендаторами
type OfficeDetail struct {
	models.OfficeDetail
	EffectiveMonthlyPrice int `json:"effective_monthly_price"`
}

func (c *Client) CreateOffice(ctx context.Context, o *models.Office) (*Office, error) {
	var out Office
	if err := c.post(ctx, "/api/offices", o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOffice(ctx context.Context, id int) (*OfficeDetail, error) {
	var out OfficeDetail
	if err := c.get(ctx, fmt.Sprintf("/api/offices/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOffices(ctx context.Context, onlyActive bool) ([]Office, error) {
	path := "/api/offices"
	if onlyActive {
		path += "?active=true"
	}
	var out []Office
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOffice(ctx context.Context, id int, o *models.Office) (*Office, error) {
	var out Office
	if err := c.put(ctx, fmt.Sprintf("/api/offices/%d", id), o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOffice(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/offices/%d", id))
}

// ClearOffice освобождает офис: арендаторы отвязываются, аренда сбрасывается
func (c *Client) ClearOffice(ctx context.Context, id int) (*models.OfficeDetail, error) {
	var out models.OfficeDetail
	if err := c.post(ctx, fmt.Sprintf("/api/offices/%d/clear", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RelocateOffice переселяет арендаторов офиса id в офис targetID
func (c *Client) RelocateOffice(ctx context.Context, id, targetID int) (*models.OfficeDetail, error) {
	var out models.OfficeDetail
	path := fmt.Sprintf("/api/offices/%d/relocate/%d", id, targetID)
	if err := c.post(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordOfficePayment фиксирует оплату офиса
func (c *Client) RecordOfficePayment(ctx context.Context, id int) (*Office, error) {
	var out Office
	if err := c.post(ctx, fmt.Sprintf("/api/offices/%d/payment", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
