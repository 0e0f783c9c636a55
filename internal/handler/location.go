package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safar/internal/domain"
	"safar/internal/service"
)

// LocationHandler handles HTTP requests for locations.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// LocationRequest is the HTTP request body for location writes.
type LocationRequest struct {
	Name string `json:"name"`
}

// LocationResponse is the HTTP response for location data.
type LocationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func locationResponse(location *domain.Location) LocationResponse {
	return LocationResponse{
		ID:        location.ID,
		Name:      location.Name,
		CreatedAt: location.CreatedAt.Format(time.RFC3339),
		UpdatedAt: location.UpdatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, locationResponse(location))
}

// GetAll handles GET /v1/locations
func (h *LocationHandler) GetAll(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		response = append(response, locationResponse(l))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, locationResponse(location))
}

// Update handles PUT /v1/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), id, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, locationResponse(location))
}

// Delete handles DELETE /v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
