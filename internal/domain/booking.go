package domain

import "time"

type Passenger struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Age    int    `json:"age"`
}

// Booking is a reservation against one Inventory record, addressed publicly
// by its PNR. Bookings are never deleted; cancellation only flips the flag.
type Booking struct {
	ID          string      `json:"id"`
	PNR         string      `json:"pnr"`
	FlightID    string      `json:"flight_id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Passengers  []Passenger `json:"passengers"`
	SeatNumbers []string    `json:"seat_numbers"`
	MealVeg     bool        `json:"meal_veg"`
	BookedAt    time.Time   `json:"booked_at"`
	JourneyDate time.Time   `json:"journey_date"`
	Canceled    bool        `json:"canceled"`
	CanceledAt  *time.Time  `json:"canceled_at,omitempty"`
}
