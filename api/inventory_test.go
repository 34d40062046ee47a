package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flightapp/flightbooking/internal/domain"
	"github.com/flightapp/flightbooking/internal/service/reservation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReservationUseCase is a mock implementation of reservation.ReservationUseCase
type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) AddInventory(ctx context.Context, inv *domain.Inventory) (*domain.Inventory, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockReservationUseCase) Search(ctx context.Context, origin, destination string, from, to time.Time) ([]domain.Inventory, error) {
	args := m.Called(ctx, origin, destination, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Inventory), args.Error(1)
}

func (m *MockReservationUseCase) Book(ctx context.Context, flightID string, input reservation.BookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, flightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) FindByPNR(ctx context.Context, pnrCode string) (*domain.Booking, error) {
	args := m.Called(ctx, pnrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) FindByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) CancelByPNRAndEmail(ctx context.Context, pnrCode, email string) (*domain.Booking, error) {
	args := m.Called(ctx, pnrCode, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockReservationUseCase) UpdateBooking(ctx context.Context, pnrCode string, input reservation.BookingUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, pnrCode, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestInventoryHandler_add(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	departure := time.Now().Add(48 * time.Hour).UTC()
	body := fmt.Sprintf(`{"airline":"Indigo","flight_number":"IN123","origin":"HYD","destination":"BLR","departure":%q,"arrival":%q,"total_seats":5,"price":4500}`,
		departure.Format(time.RFC3339), departure.Add(time.Hour).Format(time.RFC3339))
	c.Request = httptest.NewRequest("POST", "/api/flight/airline/inventory/add", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	saved := &domain.Inventory{ID: "inv-1", Origin: "HYD", Destination: "BLR", TotalSeats: 5, AvailableSeats: domain.GenerateSeats(5)}
	mockService.On("AddInventory", mock.Anything, mock.Anything).Return(saved, nil)

	handler.add(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/flight/airline/inventory/inv-1", w.Header().Get("Location"))
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_addValidationConflict(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	departure := time.Now().Add(48 * time.Hour).UTC()
	body := fmt.Sprintf(`{"airline":"Indigo","flight_number":"IN123","origin":"HYD","destination":"HYD","departure":%q,"arrival":%q,"total_seats":5,"price":4500}`,
		departure.Format(time.RFC3339), departure.Add(time.Hour).Format(time.RFC3339))
	c.Request = httptest.NewRequest("POST", "/api/flight/airline/inventory/add", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("AddInventory", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: origin and destination cannot be the same", domain.ErrConflict))

	handler.add(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "origin and destination")
}

func TestInventoryHandler_addZeroSeatsConflict(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// zero seats must pass binding and be classified by the engine like any
	// other non-positive seat count
	departure := time.Now().Add(48 * time.Hour).UTC()
	body := fmt.Sprintf(`{"airline":"Indigo","flight_number":"IN123","origin":"HYD","destination":"BLR","departure":%q,"arrival":%q,"total_seats":0,"price":4500}`,
		departure.Format(time.RFC3339), departure.Add(time.Hour).Format(time.RFC3339))
	c.Request = httptest.NewRequest("POST", "/api/flight/airline/inventory/add", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("AddInventory", mock.Anything, mock.MatchedBy(func(inv *domain.Inventory) bool {
		return inv.TotalSeats == 0
	})).Return(nil, fmt.Errorf("%w: total seats must be > 0", domain.ErrConflict))

	handler.add(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "total seats")
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_addMissingFields(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/flight/airline/inventory/add", strings.NewReader(`{"airline":"Indigo"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.add(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "AddInventory", mock.Anything, mock.Anything)
}

func TestInventoryHandler_search(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	from := time.Now().UTC().Truncate(time.Second)
	to := from.Add(24 * time.Hour)
	url := fmt.Sprintf("/api/flight/search?origin=HYD&destination=BLR&from=%s&to=%s",
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	c.Request = httptest.NewRequest("POST", url, nil)

	result := []domain.Inventory{{ID: "inv-1", Origin: "HYD", Destination: "BLR"}}
	mockService.On("Search", mock.Anything, "HYD", "BLR", mock.Anything, mock.Anything).Return(result, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inv-1")
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_searchBadWindow(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewInventoryHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/api/flight/search?origin=HYD&destination=BLR&from=not-a-time&to=also-not", nil)

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
