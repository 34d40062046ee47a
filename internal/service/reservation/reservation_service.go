package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/flightapp/flightbooking/internal/kafka"
	"github.com/flightapp/flightbooking/internal/pnr"
	"github.com/flightapp/flightbooking/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReservationUseCase is the engine surface consumed by the transport layer.
type ReservationUseCase interface {
	AddInventory(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error)
	Search(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error)
	Book(ctx context.Context, flightID string, input BookingInput) (*domain.Booking, error)
	FindByPNR(ctx context.Context, pnrCode string) (*domain.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	CancelByPNRAndEmail(ctx context.Context, pnrCode, email string) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, pnrCode string, input BookingUpdate) (*domain.Booking, error)
}

type Cache interface {
	GetSearch(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error)
	SetSearch(ctx context.Context, origin, destination string, from, to time.Time, result []domain.Inventory) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingInput struct {
	Name        string
	Email       string
	Passengers  []domain.Passenger
	SeatNumbers []string
	MealVeg     bool
}

// BookingUpdate carries optional field changes; nil/empty fields are left
// untouched. A non-empty SeatNumbers triggers the seat-swap flow.
type BookingUpdate struct {
	Email       string
	Name        *string
	Passengers  []domain.Passenger
	SeatNumbers []string
	MealVeg     *bool
}

type ReservationService struct {
	inventories        repository.InventoryRepository
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	locator            *pnr.Generator
	eventsTopic        string
	notificationsTopic string
	cancelWindow       time.Duration
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func NewReservationService(
	inventories repository.InventoryRepository,
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	locator *pnr.Generator,
	eventsTopic string,
	cancelWindow time.Duration,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		inventories:  inventories,
		bookings:     bookings,
		cache:        cache,
		producer:     producer,
		locator:      locator,
		eventsTopic:  eventsTopic,
		cancelWindow: cancelWindow,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *ReservationService) AddInventory(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	if strings.EqualFold(inv.Origin, inv.Destination) {
		return nil, fmt.Errorf("%w: origin and destination cannot be the same", domain.ErrConflict)
	}
	if !inv.Arrival.After(inv.Departure) {
		return nil, fmt.Errorf("%w: arrival must be after departure", domain.ErrConflict)
	}
	if inv.TotalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be > 0", domain.ErrConflict)
	}

	inv.AvailableSeats = domain.GenerateSeats(inv.TotalSeats)

	if err := s.inventories.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *ReservationService) Search(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, origin, destination, from, to); err == nil && cached != nil {
			return cached, nil
		}
	}

	result, err := s.inventories.SearchByRoute(ctx, origin, destination, from, to)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, origin, destination, from, to, result); err != nil {
			log.Warn().Err(err).Msg("failed to cache search result")
		}
	}
	return result, nil
}

func (s *ReservationService) Book(ctx context.Context, flightID string, input BookingInput) (*domain.Booking, error) {
	inv, err := s.inventories.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !inv.Departure.After(now) {
		return nil, fmt.Errorf("%w: cannot book a flight that already departed", domain.ErrConflict)
	}
	if len(input.SeatNumbers) == 0 {
		return nil, fmt.Errorf("%w: at least one seat must be selected", domain.ErrInvalidInput)
	}
	if domain.NewSeatSet(input.SeatNumbers...).Len() != len(input.SeatNumbers) {
		return nil, fmt.Errorf("%w: duplicate seats selected", domain.ErrInvalidInput)
	}

	available := domain.NewSeatSet(inv.AvailableSeats...)
	if !available.ContainsAll(input.SeatNumbers) {
		return nil, fmt.Errorf("%w: some selected seats are unavailable", domain.ErrConflict)
	}
	if len(input.Passengers) != len(input.SeatNumbers) {
		return nil, fmt.Errorf("%w: passenger count must match selected seats", domain.ErrInvalidInput)
	}

	locator, err := s.locator.Generate()
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PNR:         locator,
		FlightID:    inv.ID,
		Email:       input.Email,
		Name:        input.Name,
		Passengers:  input.Passengers,
		SeatNumbers: input.SeatNumbers,
		MealVeg:     input.MealVeg,
		BookedAt:    now,
		JourneyDate: inv.Departure,
		Canceled:    false,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *ReservationService) FindByPNR(ctx context.Context, pnrCode string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnrCode)
}

func (s *ReservationService) FindByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

func (s *ReservationService) CancelByPNRAndEmail(ctx context.Context, pnrCode, email string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByPNR(ctx, pnrCode)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(booking.Email, email) {
		return nil, fmt.Errorf("%w: only the booking owner can cancel the booking", domain.ErrConflict)
	}
	if booking.Canceled {
		return nil, fmt.Errorf("%w: booking already cancelled", domain.ErrConflict)
	}
	now := time.Now()
	if !booking.JourneyDate.Add(-s.cancelWindow).After(now) {
		return nil, fmt.Errorf("%w: cancellation allowed only %d hrs before journey", domain.ErrConflict, int(s.cancelWindow.Hours()))
	}

	booking.Canceled = true
	booking.CanceledAt = &now

	// Seats are NOT returned to the inventory's available set. Cancelled
	// seats stay sold; whether that is policy or an omission upstream is
	// unresolved, so the behaviour is kept as-is.
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", booking)
	return booking, nil
}

func (s *ReservationService) UpdateBooking(ctx context.Context, pnrCode string, input BookingUpdate) (*domain.Booking, error) {
	booking, err := s.bookings.GetByPNR(ctx, pnrCode)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(booking.Email, input.Email) {
		return nil, fmt.Errorf("%w: only the booking owner can perform this update", domain.ErrConflict)
	}
	if booking.Canceled {
		return nil, fmt.Errorf("%w: cannot update a booking that is already cancelled", domain.ErrConflict)
	}
	now := time.Now()
	if !booking.JourneyDate.Add(-s.cancelWindow).After(now) {
		return nil, fmt.Errorf("%w: updates are not allowed within %d hrs of the journey", domain.ErrConflict, int(s.cancelWindow.Hours()))
	}

	if len(input.SeatNumbers) == 0 {
		applyFieldUpdates(booking, input)
		if err := s.bookings.Update(ctx, booking); err != nil {
			return nil, err
		}
		s.publish(ctx, "booking_updated", booking)
		return booking, nil
	}

	return s.swapSeats(ctx, booking, input, input.SeatNumbers)
}

// swapSeats replaces the booking's held seats with newSeats. The booking's
// current seats count as available for the swap since they are released by
// the same write.
func (s *ReservationService) swapSeats(ctx context.Context, booking *domain.Booking, input BookingUpdate, newSeats []string) (*domain.Booking, error) {
	if domain.NewSeatSet(newSeats...).Len() != len(newSeats) {
		return nil, fmt.Errorf("%w: duplicate seats selected", domain.ErrInvalidInput)
	}

	passengers := input.Passengers
	if passengers == nil {
		passengers = booking.Passengers
	}
	if len(passengers) != len(newSeats) {
		return nil, fmt.Errorf("%w: passenger count must match the number of requested seats", domain.ErrInvalidInput)
	}

	inv, err := s.inventories.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	tempAvailable := domain.NewSeatSet(inv.AvailableSeats...)
	tempAvailable.Add(booking.SeatNumbers...)
	if !tempAvailable.ContainsAll(newSeats) {
		return nil, fmt.Errorf("%w: one or more requested seats are not available", domain.ErrConflict)
	}

	released := booking.SeatNumbers
	applyFieldUpdates(booking, input)
	booking.SeatNumbers = newSeats

	if err := s.bookings.UpdateWithSeatSwap(ctx, booking, released); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_updated", booking)
	return booking, nil
}

func applyFieldUpdates(booking *domain.Booking, input BookingUpdate) {
	if input.Passengers != nil {
		booking.Passengers = input.Passengers
	}
	if input.Name != nil {
		booking.Name = *input.Name
	}
	if input.MealVeg != nil {
		booking.MealVeg = *input.MealVeg
	}
}

func (s *ReservationService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		PNR:         booking.PNR,
		FlightID:    booking.FlightID,
		Email:       booking.Email,
		SeatNumbers: booking.SeatNumbers,
		JourneyDate: booking.JourneyDate,
		Canceled:    booking.Canceled,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.PNR, event); err != nil {
		log.Warn().Err(err).Str("pnr", booking.PNR).Str("type", eventType).Msg("failed to publish booking event")
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			log.Warn().Err(err).Str("pnr", booking.PNR).Str("type", eventType).Msg("failed to publish notification event")
		}
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
