package email

import (
	"context"

	"github.com/flightapp/flightbooking/internal/kafka"
	"github.com/rs/zerolog/log"
)

// Sender delivers booking notifications. Delivery is a log line for now; a
// real SMTP integration slots in behind the same method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Info().
		Str("email", event.Email).
		Str("type", event.Type).
		Str("pnr", event.PNR).
		Str("flight_id", event.FlightID).
		Msg("send booking notification")
	return nil
}
