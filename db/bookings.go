package db

import (
	"context"
	"fmt"
	"time"

	"coworkadmin/models"
)

const bookingColumns = `id, user_id, tariff_id, visit_date, visit_time, duration_hours,
    amount, is_paid, is_confirmed, is_cancelled, promocode_id, created_at`

func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) error {
	query := `
        INSERT INTO bookings
            (user_id, tariff_id, visit_date, visit_time, duration_hours,
             amount, is_paid, is_confirmed, promocode_id)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		b.UserID, b.TariffID, b.VisitDate, b.VisitTime, b.DurationHours,
		b.Amount, b.IsPaid, b.IsConfirmed, b.PromocodeID).
		Scan(&b.ID, &b.CreatedAt)
}

func (s *Storage) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	b := &models.Booking{}
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id=$1`, bookingColumns)
	err := s.db.GetContext(ctx, b, query, id)
	return b, translate(err, "бронирование не найдено")
}

func (s *Storage) UpdateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query := `
        UPDATE bookings
        SET visit_date=$1, visit_time=$2, duration_hours=$3, amount=$4,
            is_paid=$5, is_confirmed=$6, is_cancelled=$7, promocode_id=$8
        WHERE id=$9`
	res, err := s.db.ExecContext(ctx, query,
		b.VisitDate, b.VisitTime, b.DurationHours, b.Amount,
		b.IsPaid, b.IsConfirmed, b.IsCancelled, b.PromocodeID, b.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "бронирование не найдено")
	}
	return s.GetBooking(ctx, b.ID)
}

func (s *Storage) DeleteBooking(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return translate(errNoRows(), "бронирование не найдено")
	}
	return nil
}

// GetBookings возвращает бронирования, опционально за конкретную дату
func (s *Storage) GetBookings(ctx context.Context, date *time.Time, limit, offset int) ([]models.Booking, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM bookings`, bookingColumns)
	var args []interface{}
	filter := ""
	if date != nil {
		filter = " WHERE visit_date = $1"
		args = append(args, *date)
	}
	query := baseQuery + filter + " ORDER BY visit_date DESC, visit_time DESC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	bookings := []models.Booking{}
	err := s.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsDetailed - бронирования с именами пользователя и тарифа
func (s *Storage) GetBookingsDetailed(ctx context.Context, limit, offset int) ([]models.BookingDetailed, error) {
	query := `
        SELECT b.id, b.user_id, b.tariff_id, b.visit_date, b.visit_time,
               b.duration_hours, b.amount, b.is_paid, b.is_confirmed,
               b.is_cancelled, b.promocode_id, b.created_at,
               u.full_name AS user_full_name, t.name AS tariff_name
        FROM bookings b
        JOIN users u ON b.user_id = u.id
        JOIN tariffs t ON b.tariff_id = t.id
        ORDER BY b.visit_date DESC, b.visit_time DESC
        LIMIT $1 OFFSET $2`
	bookings := []models.BookingDetailed{}
	err := s.db.SelectContext(ctx, &bookings, query, limit, offset)
	return bookings, err
}

// GetBookingDetailed - одно бронирование с именами для детального просмотра
func (s *Storage) GetBookingDetailed(ctx context.Context, id int) (*models.BookingDetailed, error) {
	query := `
        SELECT b.id, b.user_id, b.tariff_id, b.visit_date, b.visit_time,
               b.duration_hours, b.amount, b.is_paid, b.is_confirmed,
               b.is_cancelled, b.promocode_id, b.created_at,
               u.full_name AS user_full_name, t.name AS tariff_name
        FROM bookings b
        JOIN users u ON b.user_id = u.id
        JOIN tariffs t ON b.tariff_id = t.id
        WHERE b.id = $1`
	b := &models.BookingDetailed{}
	err := s.db.GetContext(ctx, b, query, id)
	return b, translate(err, "бронирование не найдено")
}

// SetBookingAmount записывает пересчитанную сумму и возвращает свежую строку
func (s *Storage) SetBookingAmount(ctx context.Context, id, amount int) (*models.Booking, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE bookings SET amount=$1 WHERE id=$2`, amount, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, translate(errNoRows(), "бронирование не найдено")
	}
	return s.GetBooking(ctx, id)
}
