package api

import (
	"net/http"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/flightapp/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service reservation.ReservationUseCase
}

type passengerPayload struct {
	Name   string `json:"name" binding:"required"`
	Gender string `json:"gender" binding:"required,oneof=M F Other"`
	Age    int    `json:"age" binding:"min=0"`
}

type bookRequest struct {
	Name        string             `json:"name" binding:"required"`
	Email       string             `json:"email" binding:"required,email"`
	Passengers  []passengerPayload `json:"passengers" binding:"required,dive"`
	SeatNumbers []string           `json:"seat_numbers" binding:"required"`
	MealVeg     bool               `json:"meal_veg"`
}

type updateBookingRequest struct {
	Email       string             `json:"email" binding:"required,email"`
	Name        *string            `json:"name"`
	Passengers  []passengerPayload `json:"passengers" binding:"omitempty,dive"`
	SeatNumbers []string           `json:"seat_numbers"`
	MealVeg     *bool              `json:"meal_veg"`
}

type bookingResponse struct {
	ID          string             `json:"id"`
	PNR         string             `json:"pnr"`
	FlightID    string             `json:"flight_id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Passengers  []domain.Passenger `json:"passengers"`
	SeatNumbers []string           `json:"seat_numbers"`
	MealVeg     bool               `json:"meal_veg"`
	BookedAt    string             `json:"booked_at"`
	JourneyDate string             `json:"journey_date"`
	Canceled    bool               `json:"canceled"`
	CanceledAt  string             `json:"canceled_at,omitempty"`
}

type cancelResponse struct {
	Message string `json:"message"`
	PNR     string `json:"pnr"`
}

func NewBookingHandler(service reservation.ReservationUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/booking/:flightId", h.book)
	router.GET("/ticket/:pnr", h.ticket)
	router.GET("/booking/history/:email", h.history)
	router.DELETE("/booking/cancel/:pnr", h.cancel)
	router.PUT("/booking/update/:pnr", h.update)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	booking, err := h.service.Book(c.Request.Context(), c.Param("flightId"), reservation.BookingInput{
		Name:        req.Name,
		Email:       req.Email,
		Passengers:  toPassengers(req.Passengers),
		SeatNumbers: req.SeatNumbers,
		MealVeg:     req.MealVeg,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/flight/ticket/"+booking.PNR)
	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) ticket(c *gin.Context) {
	booking, err := h.service.FindByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) history(c *gin.Context) {
	includeCancelled := c.DefaultQuery("includeCancelled", "false") == "true"

	bookings, err := h.service.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, err)
		return
	}

	result := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		if !includeCancelled && bookings[i].Canceled {
			continue
		}
		result = append(result, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	booking, err := h.service.CancelByPNRAndEmail(c.Request.Context(), c.Param("pnr"), email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelResponse{Message: "Booking cancelled successfully", PNR: booking.PNR})
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var passengers []domain.Passenger
	if req.Passengers != nil {
		passengers = toPassengers(req.Passengers)
	}

	booking, err := h.service.UpdateBooking(c.Request.Context(), c.Param("pnr"), reservation.BookingUpdate{
		Email:       req.Email,
		Name:        req.Name,
		Passengers:  passengers,
		SeatNumbers: req.SeatNumbers,
		MealVeg:     req.MealVeg,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func toPassengers(payload []passengerPayload) []domain.Passenger {
	passengers := make([]domain.Passenger, 0, len(payload))
	for _, p := range payload {
		passengers = append(passengers, domain.Passenger{Name: p.Name, Gender: p.Gender, Age: p.Age})
	}
	return passengers
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID,
		PNR:         b.PNR,
		FlightID:    b.FlightID,
		Email:       b.Email,
		Name:        b.Name,
		Passengers:  b.Passengers,
		SeatNumbers: b.SeatNumbers,
		MealVeg:     b.MealVeg,
		BookedAt:    b.BookedAt.Format(time.RFC3339),
		JourneyDate: b.JourneyDate.Format(time.RFC3339),
		Canceled:    b.Canceled,
	}
	if b.CanceledAt != nil {
		resp.CanceledAt = b.CanceledAt.Format(time.RFC3339)
	}
	return resp
}
