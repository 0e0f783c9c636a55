package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safar/internal/directory"
	"safar/internal/domain"
	"safar/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService     *service.TripService
	routeService    *service.RouteService
	locationService *service.LocationService
	directory       *directory.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(
	tripService *service.TripService,
	routeService *service.RouteService,
	locationService *service.LocationService,
	dir *directory.Service,
) *TripHandler {
	return &TripHandler{
		tripService:     tripService,
		routeService:    routeService,
		locationService: locationService,
		directory:       dir,
	}
}

// TripRequest is the HTTP request body for requesting a trip. The passenger
// is the authenticated caller, never part of the payload.
type TripRequest struct {
	RouteID    string  `json:"route_id"`
	DistanceKm float64 `json:"distance_km"`
}

// TripUpdateRequest is the HTTP request body for updating a trip. Absent
// fields are left untouched; which present fields are honored depends on
// the caller's role.
type TripUpdateRequest struct {
	RouteID    *string  `json:"route_id"`
	Fare       *float64 `json:"fare"`
	DistanceKm *float64 `json:"distance_km"`
	DriverID   *string  `json:"driver_id"`
	VehicleID  *string  `json:"vehicle_id"`
	Status     *string  `json:"status"`
}

// TripResponse is the HTTP response for trip data, with passenger/driver
// names and pickup/drop display names flattened in.
type TripResponse struct {
	ID            string  `json:"id"`
	PassengerID   string  `json:"passenger_id"`
	PassengerName string  `json:"passenger_name,omitempty"`
	DriverID      string  `json:"driver_id,omitempty"`
	DriverName    string  `json:"driver_name,omitempty"`
	VehicleID     string  `json:"vehicle_id,omitempty"`
	RouteID       string  `json:"route_id"`
	Pickup        string  `json:"pickup,omitempty"`
	Drop          string  `json:"drop,omitempty"`
	DistanceKm    float64 `json:"distance_km"`
	Fare          float64 `json:"fare"`
	Status        string  `json:"status"`
	RequestTime   string  `json:"request_time"`
	StartTime     string  `json:"start_time,omitempty"`
	EndTime       string  `json:"end_time,omitempty"`
}

func (h *TripHandler) tripResponse(c *gin.Context, trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:          trip.ID,
		PassengerID: trip.PassengerID,
		DriverID:    trip.DriverID,
		VehicleID:   trip.VehicleID,
		RouteID:     trip.RouteID,
		DistanceKm:  trip.DistanceKm,
		Fare:        trip.Fare,
		Status:      string(trip.Status),
		RequestTime: trip.RequestTime.Format(time.RFC3339),
	}

	if !trip.StartTime.IsZero() {
		resp.StartTime = trip.StartTime.Format(time.RFC3339)
	}
	if !trip.EndTime.IsZero() {
		resp.EndTime = trip.EndTime.Format(time.RFC3339)
	}

	ctx := c.Request.Context()
	if passenger, err := h.directory.GetUser(ctx, trip.PassengerID); err == nil {
		resp.PassengerName = passenger.Name
	}
	if trip.DriverID != "" {
		if driver, err := h.directory.GetUser(ctx, trip.DriverID); err == nil {
			resp.DriverName = driver.Name
		}
	}
	if route, err := h.routeService.GetRoute(ctx, trip.RouteID); err == nil {
		if pickup, err := h.locationService.GetLocation(ctx, route.PickupID); err == nil {
			resp.Pickup = pickup.Name
		}
		if drop, err := h.locationService.GetLocation(ctx, route.DropID); err == nil {
			resp.Drop = drop.Name
		}
	}

	return resp
}

func (h *TripHandler) tripListResponse(c *gin.Context, trips []*domain.Trip) []TripResponse {
	response := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, h.tripResponse(c, t))
	}
	return response
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req TripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), id, service.CreateTripRequest{
		RouteID:    req.RouteID,
		DistanceKm: req.DistanceKm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, h.tripResponse(c, trip))
}

// GetOwn handles GET /v1/trips
func (h *TripHandler) GetOwn(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListOwnTrips(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.tripListResponse(c, trips))
}

// GetAssigned handles GET /v1/driver/trips
func (h *TripHandler) GetAssigned(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListAssignedTrips(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.tripListResponse(c, trips))
}

// GetAllAdmin handles GET /v1/admin/trips
func (h *TripHandler) GetAllAdmin(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListAllTrips(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.tripListResponse(c, trips))
}

// Get handles GET /v1/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.tripResponse(c, trip))
}

// Update handles PUT /v1/trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req TripUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	update := service.UpdateTripRequest{
		RouteID:    req.RouteID,
		Fare:       req.Fare,
		DistanceKm: req.DistanceKm,
		DriverID:   req.DriverID,
		VehicleID:  req.VehicleID,
	}
	if req.Status != nil {
		s := domain.TripStatus(*req.Status)
		update.Status = &s
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), id, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.tripResponse(c, trip))
}

// Delete handles DELETE /v1/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if err := h.tripService.DeleteTrip(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
