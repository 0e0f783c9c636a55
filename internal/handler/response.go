package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"safar/internal/middleware"
	"safar/internal/policy"
	"safar/internal/repository"
	"safar/internal/service"
)

// DetailResponse carries a single non-field error message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// respondError maps service/repository errors to HTTP responses. Validation
// failures come back field-keyed, the way clients submitted the payload;
// permission and not-found failures are single-detail bodies.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, verr.Fields)
		return
	}

	var rerr *service.InvalidRoleError
	if errors.As(err, &rerr) {
		c.JSON(http.StatusBadRequest, map[string][]string{
			rerr.Field: {rerr.Error()},
		})
		return
	}

	var ferr *service.FieldNotEditableError
	if errors.As(err, &ferr) {
		fields := make(map[string][]string, len(ferr.Fields))
		for _, f := range ferr.Fields {
			fields[f] = []string{"this field is not editable for your role"}
		}
		c.JSON(http.StatusBadRequest, fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, DetailResponse{Detail: "you do not have permission to perform this action"})

	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, DetailResponse{Detail: "not found"})

	// Constraint violations that raced past service pre-checks surface in
	// the same shape as ordinary validation failures.
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusBadRequest, map[string][]string{
			service.NonFieldErrors: {"a conflicting record already exists"},
		})

	case errors.Is(err, repository.ErrReferenced):
		c.JSON(http.StatusBadRequest, map[string][]string{
			service.NonFieldErrors: {"the record is referenced by other records"},
		})

	default:
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "internal server error"})
	}
}

// caller returns the identity resolved by the auth middleware, aborting
// with 401 when it is absent.
func caller(c *gin.Context) (policy.Identity, bool) {
	id, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "authentication required"})
	}
	return id, ok
}

// bindJSON decodes the request body, reporting malformed payloads in the
// field-keyed error shape.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, map[string][]string{
			service.NonFieldErrors: {"invalid request body"},
		})
		return false
	}
	return true
}
