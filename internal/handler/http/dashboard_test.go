package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	analyticsService "github.com/cmlabs-hris/hris-analytics-go/internal/service/analytics"
	dashboardService "github.com/cmlabs-hris/hris-analytics-go/internal/service/dashboard"
	scopeService "github.com/cmlabs-hris/hris-analytics-go/internal/service/scope"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Data     json.RawMessage       `json:"data"`
	UserRole string                `json:"userRole"`
	Period   string                `json:"period"`
	Error    *response.ErrorDetail `json:"error"`
}

type handlerTestEnv struct {
	router     *chi.Mux
	jwtService jwt.Service
	ids        fixtures.DemoIDs
}

func newHandlerTestEnv(t *testing.T, limiter *middleware.RateLimiter) handlerTestEnv {
	t.Helper()
	store := memory.NewStore()
	ids := fixtures.SeedDemo(store, handlerTestNow)

	svc := dashboardService.NewDashboardService(
		scopeService.NewScopeResolver(store, nil),
		analyticsService.NewAnalyticsEngine(store, store, nil, analyticsService.Options{}),
		dashboardService.NewStrategies(dashboard.DefaultAlertThresholds()),
		nil,
		dashboardService.DefaultRecentLimit,
	)
	jwtSvc := jwt.NewJWTService(handlerTestSecret)
	router := NewRouter(jwtSvc, NewDashboardHandler(svc, clock.Fixed(handlerTestNow)), RouterOptions{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimiter:    limiter,
		RequestTimeout: 5 * time.Second,
	})
	return handlerTestEnv{router: router, jwtService: jwtSvc, ids: ids}
}

func (e handlerTestEnv) token(t *testing.T, id string, role actor.Role) string {
	t.Helper()
	token, _, err := e.jwtService.GenerateAccessToken(actor.Actor{ID: id, CompanyID: e.ids.CompanyID, Role: role}, time.Hour)
	require.NoError(t, err)
	return token
}

func (e handlerTestEnv) do(t *testing.T, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return rr, body
}

// ===== AUTHENTICATION =====

// Test Dashboard - Missing token
func TestDashboardHandler_GetDashboard_NoToken(t *testing.T) {
	env := newHandlerTestEnv(t, nil)

	rr, body := env.do(t, "/api/v1/dashboard", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

// Test Dashboard - Token signed with another secret
func TestDashboardHandler_GetDashboard_ForeignToken(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	foreign, _, err := jwt.NewJWTService("another-secret").GenerateAccessToken(
		actor.Actor{ID: env.ids.AdminID, CompanyID: env.ids.CompanyID, Role: actor.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	rr, _ := env.do(t, "/api/v1/dashboard", foreign)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Test Dashboard - Refresh tokens are not accepted
func TestDashboardHandler_GetDashboard_WrongTokenType(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	_, token, err := env.jwtService.JWTAuth().Encode(map[string]interface{}{
		"employee_id": env.ids.AdminID,
		"company_id":  env.ids.CompanyID,
		"role":        "admin",
		"type":        "refresh",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	rr, body := env.do(t, "/api/v1/dashboard", token)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid token type", body.Message)
}

// Test Dashboard - Unknown role claim
func TestDashboardHandler_GetDashboard_UnknownRole(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	_, token, err := env.jwtService.JWTAuth().Encode(map[string]interface{}{
		"employee_id": env.ids.AdminID,
		"company_id":  env.ids.CompanyID,
		"role":        "intern",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	rr, body := env.do(t, "/api/v1/dashboard", token)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

// ===== DASHBOARD =====

// Test Dashboard - Success
func TestDashboardHandler_GetDashboard_Success(t *testing.T) {
	// Setup
	env := newHandlerTestEnv(t, nil)
	token := env.token(t, env.ids.AdminID, actor.RoleAdmin)

	// Act
	rr, body := env.do(t, "/api/v1/dashboard?period=week", token)

	// Assert
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "admin", body.UserRole)
	assert.Equal(t, "week", body.Period)
	assert.NotEmpty(t, rr.Header().Get(middleware.TraceIDHeader))

	var resp dashboard.DashboardResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.Equal(t, actor.RoleAdmin, resp.UserRole)
	assert.NotNil(t, resp.Payroll)
	assert.NotNil(t, resp.Alerts)
}

// Test Dashboard - Unknown period falls back to the default
func TestDashboardHandler_GetDashboard_UnknownPeriod(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	token := env.token(t, env.ids.EmployeeIDs[0], actor.RoleEmployee)

	rr, body := env.do(t, "/api/v1/dashboard?period=decade", token)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "month", body.Period)

	var resp dashboard.DashboardResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.True(t, resp.PeriodRecovered)
	assert.NotNil(t, resp.Self)
}

// Test Dashboard - Trace id is echoed
func TestDashboardHandler_TraceID(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	traceID := "6f1c0b8e-4b7e-4c39-9a34-0d1f2f0a5c11"

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set(middleware.TraceIDHeader, traceID)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, traceID, rr.Header().Get(middleware.TraceIDHeader))
}

// ===== ANALYTICS =====

// Test Analytics - Employees lack the permission
func TestDashboardHandler_GetAnalytics_Forbidden(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	token := env.token(t, env.ids.EmployeeIDs[0], actor.RoleEmployee)

	rr, body := env.do(t, "/api/v1/analytics", token)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, body.Message, string(actor.PermissionAnalyticsView))
}

// Test Analytics - Success
func TestDashboardHandler_GetAnalytics_Success(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	token := env.token(t, env.ids.HRManagerID, actor.RoleHRManager)

	rr, body := env.do(t, "/api/v1/analytics?period=quarter", token)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hr_manager", body.UserRole)
	assert.Equal(t, "quarter", body.Period)

	var resp dashboard.AnalyticsResponse
	require.NoError(t, json.Unmarshal(body.Data, &resp))
	assert.NotNil(t, resp.DepartmentDistribution)
}

// Test View - Unknown and forbidden views
func TestDashboardHandler_GetView(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	admin := env.token(t, env.ids.AdminID, actor.RoleAdmin)
	hr := env.token(t, env.ids.HRManagerID, actor.RoleHRManager)

	rr, body := env.do(t, "/api/v1/analytics/views/assets", admin)
	require.Equal(t, http.StatusOK, rr.Code)
	var bundle analytics.Bundle
	require.NoError(t, json.Unmarshal(body.Data, &bundle))
	assert.Equal(t, analytics.ViewAssets, bundle.View)

	rr, body = env.do(t, "/api/v1/analytics/views/headcount", admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	rr, _ = env.do(t, "/api/v1/analytics/views/assets", hr)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// ===== EMPLOYEE ATTENDANCE =====

func TestDashboardHandler_GetEmployeeAttendance(t *testing.T) {
	env := newHandlerTestEnv(t, nil)
	leader := env.token(t, env.ids.LeaderID, actor.RoleTeamLeader)

	tests := []struct {
		name       string
		employeeID string
		wantStatus int
	}{
		{"team member", env.ids.EmployeeIDs[0], http.StatusOK},
		{"outside the team", env.ids.HRManagerID, http.StatusForbidden},
		{"malformed id", "not-a-uuid", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := env.do(t, "/api/v1/employees/"+tt.employeeID+"/attendance", leader)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Success)
		})
	}
}

// ===== TEAM AND NOTICES =====

func TestDashboardHandler_GetTeamMembers(t *testing.T) {
	env := newHandlerTestEnv(t, nil)

	rr, body := env.do(t, "/api/v1/team/members", env.token(t, env.ids.LeaderID, actor.RoleTeamLeader))
	require.Equal(t, http.StatusOK, rr.Code)
	var team analytics.TeamPerformance
	require.NoError(t, json.Unmarshal(body.Data, &team))
	assert.Equal(t, 4, team.TeamSize)

	rr, _ = env.do(t, "/api/v1/team/members", env.token(t, env.ids.HRManagerID, actor.RoleHRManager))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDashboardHandler_GetVisibleNotices(t *testing.T) {
	env := newHandlerTestEnv(t, nil)

	rr, body := env.do(t, "/api/v1/notices/visible", env.token(t, env.ids.EmployeeIDs[0], actor.RoleEmployee))

	require.Equal(t, http.StatusOK, rr.Code)
	var notices []analytics.NoticeItem
	require.NoError(t, json.Unmarshal(body.Data, &notices))
	assert.Len(t, notices, 2)
}

// ===== RATE LIMITING =====

func TestDashboardHandler_RateLimited(t *testing.T) {
	env := newHandlerTestEnv(t, middleware.NewRateLimiter(0.001, 1))
	token := env.token(t, env.ids.LeaderID, actor.RoleTeamLeader)

	rr, _ := env.do(t, "/api/v1/notices/visible", token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, body := env.do(t, "/api/v1/notices/visible", token)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Error.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	// Other callers keep their own budget.
	rr, _ = env.do(t, "/api/v1/notices/visible", env.token(t, env.ids.AdminID, actor.RoleAdmin))
	assert.Equal(t, http.StatusOK, rr.Code)
}
