package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository interface {
	Create(ctx context.Context, inv *domain.Inventory) error
	GetByID(ctx context.Context, id string) (*domain.Inventory, error)
	SearchByRoute(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error)
}

type PGInventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) InventoryRepository {
	return &PGInventoryRepository{db: db}
}

func (r *PGInventoryRepository) Create(ctx context.Context, inv *domain.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `INSERT INTO inventories (id, airline, airline_logo_url, flight_number, origin, destination, departure, arrival, total_seats, price, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		inv.ID, inv.Airline, inv.AirlineLogoURL, inv.FlightNumber, inv.Origin, inv.Destination, inv.Departure, inv.Arrival, inv.TotalSeats, inv.Price, inv.AvailableSeats)
	return row.Scan(&inv.CreatedAt, &inv.UpdatedAt)
}

func (r *PGInventoryRepository) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	row := r.db.QueryRow(ctx, `SELECT id, airline, airline_logo_url, flight_number, origin, destination, departure, arrival, total_seats, price, available_seats, created_at, updated_at FROM inventories WHERE id=$1`, id)
	var inv domain.Inventory
	if err := row.Scan(&inv.ID, &inv.Airline, &inv.AirlineLogoURL, &inv.FlightNumber, &inv.Origin, &inv.Destination, &inv.Departure, &inv.Arrival, &inv.TotalSeats, &inv.Price, &inv.AvailableSeats, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return &inv, nil
}

// SearchByRoute matches origin and destination exactly (case-sensitive) and
// departure within the inclusive [from, to] window.
func (r *PGInventoryRepository) SearchByRoute(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, airline, airline_logo_url, flight_number, origin, destination, departure, arrival, total_seats, price, available_seats, created_at, updated_at
		FROM inventories
		WHERE origin=$1 AND destination=$2 AND departure BETWEEN $3 AND $4
		ORDER BY departure`, origin, destination, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inventories := make([]domain.Inventory, 0)
	for rows.Next() {
		var inv domain.Inventory
		if err := rows.Scan(&inv.ID, &inv.Airline, &inv.AirlineLogoURL, &inv.FlightNumber, &inv.Origin, &inv.Destination, &inv.Departure, &inv.Arrival, &inv.TotalSeats, &inv.Price, &inv.AvailableSeats, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

var _ InventoryRepository = (*PGInventoryRepository)(nil)
