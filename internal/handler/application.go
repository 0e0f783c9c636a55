package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"safar/internal/directory"
	"safar/internal/domain"
	"safar/internal/service"
)

// ApplicationHandler handles HTTP requests for driver applications.
type ApplicationHandler struct {
	appService *service.ApplicationService
	directory  *directory.Service
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(appService *service.ApplicationService, dir *directory.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService, directory: dir}
}

// ReviewRequest is the HTTP request body for reviewing an application.
type ReviewRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ApplicationResponse is the HTTP response for application data.
type ApplicationResponse struct {
	ID            string `json:"id"`
	ApplicantID   string `json:"applicant_id"`
	ApplicantName string `json:"applicant_name,omitempty"`
	Status        string `json:"status"`
	Note          string `json:"note,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (h *ApplicationHandler) applicationResponse(c *gin.Context, app *domain.DriverApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		ApplicantID: app.ApplicantID,
		Status:      string(app.Status),
		Note:        app.Note,
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   app.UpdatedAt.Format(time.RFC3339),
	}

	if applicant, err := h.directory.GetUser(c.Request.Context(), app.ApplicantID); err == nil {
		resp.ApplicantName = applicant.Name
	}

	return resp
}

// Create handles POST /v1/driver-applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	app, err := h.appService.Apply(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, h.applicationResponse(c, app))
}

// GetAll handles GET /v1/admin/applications
func (h *ApplicationHandler) GetAll(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	apps, err := h.appService.ListApplications(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		response = append(response, h.applicationResponse(c, a))
	}

	respondJSON(c, http.StatusOK, response)
}

// Get handles GET /v1/admin/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	app, err := h.appService.GetApplication(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.applicationResponse(c, app))
}

// Review handles PUT /v1/admin/applications/:id
func (h *ApplicationHandler) Review(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appService.Review(c.Request.Context(), id, c.Param("id"), service.ReviewRequest{
		Status: domain.ApplicationStatus(req.Status),
		Note:   req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, h.applicationResponse(c, app))
}
