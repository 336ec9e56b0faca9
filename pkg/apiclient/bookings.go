package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"coworkadmin/models"
)

// BookingListParams - фильтры списка бронирований
type BookingListParams struct {
	Date   *time.Time
	Limit  int
	Offset int
}

func (p BookingListParams) encode() string {
	q := url.Values{}
	if p.Date != nil {
		q.Set("date", p.Date.Format("2006-01-02"))
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

func (c *Client) CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	var out models.Booking
	if err := c.post(ctx, "/api/bookings", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	var out models.Booking
	if err := c.get(ctx, fmt.Sprintf("/api/bookings/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBookingFull возвращает бронирование с именами пользователя и тарифа
func (c *Client) GetBookingFull(ctx context.Context, id int) (*models.BookingDetailed, error) {
	var out models.BookingDetailed
	if err := c.get(ctx, fmt.Sprintf("/api/bookings/%d/full", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBookings(ctx context.Context, params BookingListParams) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.get(ctx, "/api/bookings"+params.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBookingsDetailed(ctx context.Context, limit, offset int) ([]models.BookingDetailed, error) {
	var out []models.BookingDetailed
	path := fmt.Sprintf("/api/bookings/detailed?limit=%d&offset=%d", limit, offset)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int, b *models.Booking) (*models.Booking, error) {
	var out models.Booking
	if err := c.put(ctx, fmt.Sprintf("/api/bookings/%d", id), b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/bookings/%d", id))
}

// RecalculateBooking пересчитывает сумму по тарифу и промокоду на сервере
func (c *Client) RecalculateBooking(ctx context.Context, id int) (*models.Booking, error) {
	var out models.Booking
	if err := c.post(ctx, fmt.Sprintf("/api/bookings/%d/recalculate", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
