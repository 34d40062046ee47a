package api

import (
	"net/http"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/flightapp/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service reservation.ReservationUseCase
}

type addInventoryRequest struct {
	Airline        string    `json:"airline" binding:"required"`
	AirlineLogoURL string    `json:"airline_logo_url"`
	FlightNumber   string    `json:"flight_number" binding:"required"`
	Origin         string    `json:"origin" binding:"required"`
	Destination    string    `json:"destination" binding:"required"`
	Departure      time.Time `json:"departure" binding:"required"`
	Arrival        time.Time `json:"arrival" binding:"required"`
	// total_seats is not marked required so a zero value reaches the engine
	// and is rejected there, the same way negatives are.
	TotalSeats int     `json:"total_seats"`
	Price      float64 `json:"price" binding:"min=0"`
}

func NewInventoryHandler(service reservation.ReservationUseCase) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) Register(router *gin.RouterGroup) {
	router.POST("/airline/inventory/add", h.add)
	router.POST("/search", h.search)
}

func (h *InventoryHandler) add(c *gin.Context) {
	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	saved, err := h.service.AddInventory(c.Request.Context(), &domain.Inventory{
		Airline:        req.Airline,
		AirlineLogoURL: req.AirlineLogoURL,
		FlightNumber:   req.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Departure:      req.Departure,
		Arrival:        req.Arrival,
		TotalSeats:     req.TotalSeats,
		Price:          req.Price,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/flight/airline/inventory/"+saved.ID)
	c.JSON(http.StatusCreated, saved)
}

func (h *InventoryHandler) search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "origin and destination are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid 'from' timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid 'to' timestamp"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), origin, destination, from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
