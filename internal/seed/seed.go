// Package seed prepares the database on startup: schema, the search index
// on (origin, destination, departure), and a sample inventory record when
// the table is empty.
package seed

import (
	"context"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/flightapp/flightbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventories (
	id TEXT PRIMARY KEY,
	airline TEXT NOT NULL,
	airline_logo_url TEXT NOT NULL DEFAULT '',
	flight_number TEXT NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	departure TIMESTAMPTZ NOT NULL,
	arrival TIMESTAMPTZ NOT NULL,
	total_seats INT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	available_seats TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_inventories_route_departure ON inventories (origin, destination, departure);
CREATE INDEX IF NOT EXISTS idx_inventories_flight_number ON inventories (flight_number);

CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	pnr TEXT NOT NULL,
	flight_id TEXT NOT NULL REFERENCES inventories(id),
	email TEXT NOT NULL,
	name TEXT NOT NULL,
	passengers JSONB NOT NULL,
	seat_numbers TEXT[] NOT NULL,
	meal_veg BOOLEAN NOT NULL DEFAULT false,
	booked_at TIMESTAMPTZ NOT NULL,
	journey_date TIMESTAMPTZ NOT NULL,
	canceled BOOLEAN NOT NULL DEFAULT false,
	canceled_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_bookings_pnr ON bookings (pnr);
CREATE INDEX IF NOT EXISTS idx_bookings_email ON bookings (lower(email));
`

// Run applies the schema and, when requested, inserts a sample flight so a
// fresh instance has something searchable.
func Run(ctx context.Context, pool *pgxpool.Pool, inventories repository.InventoryRepository, sampleData bool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return err
	}
	if !sampleData {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM inventories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	departure := time.Now().AddDate(0, 0, 2).Truncate(time.Hour)
	sample := &domain.Inventory{
		Airline:        "Indigo",
		FlightNumber:   "IN123",
		Origin:         "HYD",
		Destination:    "BLR",
		Departure:      departure,
		Arrival:        departure.Add(90 * time.Minute),
		TotalSeats:     30,
		Price:          4500,
		AvailableSeats: domain.GenerateSeats(30),
	}
	if err := inventories.Create(ctx, sample); err != nil {
		return err
	}
	log.Info().Str("flight_number", sample.FlightNumber).Str("id", sample.ID).Msg("seeded sample inventory")
	return nil
}
