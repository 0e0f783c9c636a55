package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safar/internal/directory"
	"safar/internal/domain"
	"safar/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
	directory      *directory.Service
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService, dir *directory.Service) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, directory: dir}
}

// VehicleRequest is the HTTP request body for creating a vehicle.
type VehicleRequest struct {
	DriverID    string `json:"driver_id"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	License     string `json:"license"`
	Type        string `json:"type"`
}

// VehicleUpdateRequest is the HTTP request body for updating a vehicle.
type VehicleUpdateRequest struct {
	DriverID    *string `json:"driver_id"`
	Model       *string `json:"model"`
	PlateNumber *string `json:"plate_number"`
	License     *string `json:"license"`
	Type        *string `json:"type"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID          string `json:"id"`
	DriverID    string `json:"driver_id"`
	DriverName  string `json:"driver_name,omitempty"`
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	License     string `json:"license,omitempty"`
	Type        string `json:"type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (h *VehicleHandler) vehicleResponse(c *gin.Context, vehicle *domain.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:          vehicle.ID,
		DriverID:    vehicle.DriverID,
		Model:       vehicle.Model,
		PlateNumber: vehicle.PlateNumber,
		License:     vehicle.LicenseRef,
		Type:        string(vehicle.Type),
		CreatedAt:   vehicle.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   vehicle.UpdatedAt.Format(time.RFC3339),
	}

	if driver, err := h.directory.GetUser(c.Request.Context(), vehicle.DriverID); err == nil {
		resp.DriverName = driver.Name
	}

	return resp
}

// Create handles POST /v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req VehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), id, service.CreateVehicleRequest{
		DriverID:    req.DriverID,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		LicenseRef:  req.License,
		Type:        domain.VehicleType(req.Type),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, h.vehicleResponse(c, vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, h.vehicleResponse(c, v))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	if _, ok := caller(c); !ok {
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.vehicleResponse(c, vehicle))
}

// Update handles PUT /v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req VehicleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	update := service.UpdateVehicleRequest{
		DriverID:    req.DriverID,
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		LicenseRef:  req.License,
	}
	if req.Type != nil {
		t := domain.VehicleType(*req.Type)
		update.Type = &t
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.vehicleResponse(c, vehicle))
}

// Delete handles DELETE /v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
