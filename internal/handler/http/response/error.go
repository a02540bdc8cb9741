package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	"github.com/sony/gobreaker"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Actor and scope errors
	case errors.Is(err, actor.ErrInvalidRole):
		Forbidden(w, "Unrecognized role")
	case errors.Is(err, actor.ErrActorIDRequired), errors.Is(err, actor.ErrCompanyIDRequired):
		Unauthorized(w, "Token is missing actor claims")
	case errors.Is(err, actor.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, scope.ErrScopeViolation):
		Forbidden(w, "Requested employee is outside your scope")

	// Dashboard and analytics errors
	case errors.Is(err, dashboard.ErrAnalyticsForbidden):
		Forbidden(w, "Analytics are not available for your role")
	case errors.Is(err, dashboard.ErrNoStrategy):
		Forbidden(w, "No dashboard for your role")
	case errors.Is(err, analytics.ErrForbiddenView):
		Forbidden(w, "View is not available for your role")
	case errors.Is(err, analytics.ErrUnknownView):
		NotFound(w, "Unknown analytics view")

	// Record errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmployeeID):
		BadRequest(w, "Invalid employee id", nil)
	case errors.Is(err, window.ErrInvalidRange):
		BadRequest(w, "Start must not be after end", nil)

	// Store errors
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		ServiceUnavailable(w, "Record store is temporarily unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
