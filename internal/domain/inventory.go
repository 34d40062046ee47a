package domain

import "time"

// Inventory is a bookable flight instance with its seat map. AvailableSeats
// holds the seat identifiers not currently held by any active booking.
type Inventory struct {
	ID             string    `json:"id"`
	Airline        string    `json:"airline"`
	AirlineLogoURL string    `json:"airline_logo_url,omitempty"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	TotalSeats     int       `json:"total_seats"`
	Price          float64   `json:"price"`
	AvailableSeats []string  `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
