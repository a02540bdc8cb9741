package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid role", actor.ErrInvalidRole, http.StatusForbidden, "FORBIDDEN"},
		{"missing company", actor.ErrCompanyIDRequired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"scope violation", scope.ErrScopeViolation, http.StatusForbidden, "FORBIDDEN"},
		{"analytics for employees", dashboard.ErrAnalyticsForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"wrapped forbidden view", fmt.Errorf("%w: payroll for employee", analytics.ErrForbiddenView), http.StatusForbidden, "FORBIDDEN"},
		{"unknown view", analytics.ErrUnknownView, http.StatusNotFound, "NOT_FOUND"},
		{"invalid employee id", employee.ErrInvalidEmployeeID, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation errors", validator.ValidationErrors{{Field: "employeeId", Message: "must be a UUID"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"breaker open", fmt.Errorf("%w: %w", analytics.ErrUpstreamQuery, gobreaker.ErrOpenState), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"upstream failure", fmt.Errorf("%w: relation missing", analytics.ErrUpstreamQuery), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			rr := httptest.NewRecorder()

			// Act
			HandleError(rr, tt.err)

			// Assert
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_DoesNotLeakInternals(t *testing.T) {
	rr := httptest.NewRecorder()

	HandleError(rr, errors.New(`pq: password authentication failed for user "hris"`))

	assert.NotContains(t, rr.Body.String(), "password")
}

func TestSuccessForRole(t *testing.T) {
	rr := httptest.NewRecorder()

	SuccessForRole(rr, map[string]int{"present": 3}, "team_leader", "week")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"present":3},"userRole":"team_leader","period":"week"}`, rr.Body.String())
}
