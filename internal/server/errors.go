package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMissingAPIKey = errors.New("missing_api_key")
	ErrInternal      = errors.New("internal_error")
)

// ErrorHandlingMiddleware maps errors collected on the context to the
// response taxonomy after the handler chain ran.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return vErr
	}
	return nil
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey):
		// Missing credential header is a request-shape problem, not an
		// authorization verdict.
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "validation_error",
			Message: "missing " + HeaderAPIKey + " header",
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isPreconditionError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "precondition_failed",
			Message: err.Error(),
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	return errors.Is(err, activitydomain.ErrNotFound) ||
		errors.Is(err, buildingdomain.ErrNotFound) ||
		errors.Is(err, organizationdomain.ErrNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}

// isPreconditionError covers deletes blocked by dependents and writes
// referencing entities that must exist first.
func isPreconditionError(err error) bool {
	return errors.Is(err, activitydomain.ErrHasChildren) ||
		errors.Is(err, activitydomain.ErrInUse) ||
		errors.Is(err, activitydomain.ErrParentNotFound) ||
		errors.Is(err, organizationdomain.ErrBuildingNotFound)
}

func isValidationError(err error) bool {
	return errors.Is(err, activitydomain.ErrInvalidName) ||
		errors.Is(err, activitydomain.ErrInvalidParent) ||
		errors.Is(err, activitydomain.ErrInvalidDepth) ||
		errors.Is(err, buildingdomain.ErrInvalidAddress) ||
		errors.Is(err, buildingdomain.ErrInvalidRadius) ||
		errors.Is(err, organizationdomain.ErrInvalidName) ||
		errors.Is(err, organizationdomain.ErrInvalidArea) ||
		errors.Is(err, pagination.ErrInvalidWindow)
}
