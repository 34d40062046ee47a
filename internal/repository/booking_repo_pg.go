package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create inserts the booking and removes its seats from the inventory's
	// availability in one transaction. The removal is computed inside the
	// UPDATE from the row's current state, guarded so it only applies while
	// every booked seat is still available; otherwise ErrConflict.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// UpdateWithSeatSwap persists a seat change: availability becomes
	// (current ∪ released) minus the booking's new seats, computed from the
	// row's current state and guarded so the swap only applies while the new
	// seats are coverable by availability plus the seats being released.
	UpdateWithSeatSwap(ctx context.Context, booking *domain.Booking, released []string) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE inventories
		SET available_seats = (SELECT coalesce(array_agg(s), '{}') FROM unnest(available_seats) AS s WHERE s <> ALL($2::text[])),
		    updated_at = now()
		WHERE id=$1 AND available_seats @> $2::text[]`,
		booking.FlightID, booking.SeatNumbers)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: some selected seats are unavailable", domain.ErrConflict)
	}

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, pnr, flight_id, email, name, passengers, seat_numbers, meal_veg, booked_at, journey_date, canceled, canceled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		booking.ID, booking.PNR, booking.FlightID, booking.Email, booking.Name, booking.Passengers, booking.SeatNumbers, booking.MealVeg, booking.BookedAt, booking.JourneyDate, booking.Canceled, booking.CanceledAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, pnr, flight_id, email, name, passengers, seat_numbers, meal_veg, booked_at, journey_date, canceled, canceled_at FROM bookings WHERE pnr=$1`, pnr)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pnr %s", domain.ErrNotFound, pnr)
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, pnr, flight_id, email, name, passengers, seat_numbers, meal_veg, booked_at, journey_date, canceled, canceled_at FROM bookings WHERE lower(email)=lower($1) ORDER BY booked_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET name=$2, passengers=$3, seat_numbers=$4, meal_veg=$5, canceled=$6, canceled_at=$7 WHERE id=$1`,
		booking.ID, booking.Name, booking.Passengers, booking.SeatNumbers, booking.MealVeg, booking.Canceled, booking.CanceledAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", domain.ErrNotFound, booking.ID)
	}
	return nil
}

func (r *PGBookingRepository) UpdateWithSeatSwap(ctx context.Context, booking *domain.Booking, released []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE inventories
		SET available_seats = (SELECT coalesce(array_agg(DISTINCT s), '{}') FROM unnest(available_seats || $2::text[]) AS s WHERE s <> ALL($3::text[])),
		    updated_at = now()
		WHERE id=$1 AND (available_seats || $2::text[]) @> $3::text[]`,
		booking.FlightID, released, booking.SeatNumbers)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: one or more requested seats are not available", domain.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `UPDATE bookings SET name=$2, passengers=$3, seat_numbers=$4, meal_veg=$5 WHERE id=$1`,
		booking.ID, booking.Name, booking.Passengers, booking.SeatNumbers, booking.MealVeg); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.FlightID, &b.Email, &b.Name, &b.Passengers, &b.SeatNumbers, &b.MealVeg, &b.BookedAt, &b.JourneyDate, &b.Canceled, &b.CanceledAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
