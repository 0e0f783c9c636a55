package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safar/internal/domain"
	"safar/internal/service"
)

// RouteHandler handles HTTP requests for routes.
type RouteHandler struct {
	routeService    *service.RouteService
	locationService *service.LocationService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routeService *service.RouteService, locationService *service.LocationService) *RouteHandler {
	return &RouteHandler{routeService: routeService, locationService: locationService}
}

// RouteRequest is the HTTP request body for route writes.
type RouteRequest struct {
	PickupID string   `json:"pickup_id"`
	DropID   string   `json:"drop_id"`
	Price    float64  `json:"price"`
	Drivers  []string `json:"drivers"`
	Vehicles []string `json:"vehicles"`
}

// RouteResponse is the HTTP response for route data, with pickup/drop names
// flattened in.
type RouteResponse struct {
	ID         string   `json:"id"`
	PickupID   string   `json:"pickup_id"`
	PickupName string   `json:"pickup,omitempty"`
	DropID     string   `json:"drop_id"`
	DropName   string   `json:"drop,omitempty"`
	Price      float64  `json:"price"`
	Drivers    []string `json:"drivers"`
	Vehicles   []string `json:"vehicles"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

func (h *RouteHandler) routeResponse(c *gin.Context, route *domain.Route) RouteResponse {
	resp := RouteResponse{
		ID:        route.ID,
		PickupID:  route.PickupID,
		DropID:    route.DropID,
		Price:     route.Price,
		Drivers:   route.DriverIDs,
		Vehicles:  route.VehicleIDs,
		CreatedAt: route.CreatedAt.Format(time.RFC3339),
		UpdatedAt: route.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Drivers == nil {
		resp.Drivers = []string{}
	}
	if resp.Vehicles == nil {
		resp.Vehicles = []string{}
	}

	if pickup, err := h.locationService.GetLocation(c.Request.Context(), route.PickupID); err == nil {
		resp.PickupName = pickup.Name
	}
	if drop, err := h.locationService.GetLocation(c.Request.Context(), route.DropID); err == nil {
		resp.DropName = drop.Name
	}

	return resp
}

// Create handles POST /v1/routes
func (h *RouteHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req RouteRequest
	if !bindJSON(c, &req) {
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), id, service.RouteRequest{
		PickupID:   req.PickupID,
		DropID:     req.DropID,
		Price:      req.Price,
		DriverIDs:  req.Drivers,
		VehicleIDs: req.Vehicles,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, h.routeResponse(c, route))
}

// GetAll handles GET /v1/routes
func (h *RouteHandler) GetAll(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	routes, err := h.routeService.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		response = append(response, h.routeResponse(c, r))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	route, err := h.routeService.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.routeResponse(c, route))
}

// Update handles PUT /v1/routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req RouteRequest
	if !bindJSON(c, &req) {
		return
	}

	route, err := h.routeService.UpdateRoute(c.Request.Context(), id, c.Param("id"), service.RouteRequest{
		PickupID:   req.PickupID,
		DropID:     req.DropID,
		Price:      req.Price,
		DriverIDs:  req.Drivers,
		VehicleIDs: req.Vehicles,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.routeResponse(c, route))
}

// Delete handles DELETE /v1/routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if err := h.routeService.DeleteRoute(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
