package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytics-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetDashboard returns the role dashboard
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// GetAnalytics returns trends and department distribution
	GetAnalytics(w http.ResponseWriter, r *http.Request)
	// GetView returns a single analytics view
	GetView(w http.ResponseWriter, r *http.Request)
	// GetEmployeeAttendance returns attendance for one in-scope employee
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	// GetTeamMembers returns the team with per-member performance
	GetTeamMembers(w http.ResponseWriter, r *http.Request)
	// GetVisibleNotices returns notices the caller may read
	GetVisibleNotices(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	clock            clock.Clock
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, clk clock.Clock) DashboardHandler {
	if clk == nil {
		clk = clock.New(nil)
	}
	return &dashboardHandlerImpl{dashboardService: dashboardService, clock: clk}
}

// query reads the advisory period and pins "now" once for the whole request.
func (h *dashboardHandlerImpl) query(r *http.Request) dashboard.Query {
	return dashboard.Query{
		Period: r.URL.Query().Get("period"), // today|week|month|quarter|year, default: month
		Now:    h.clock.Now(),
	}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), a, h.query(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), string(result.Window.Period))
}

// GetAnalytics handles GET /analytics
func (h *dashboardHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	result, err := h.dashboardService.GetAnalytics(r.Context(), a, h.query(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), string(result.Window.Period))
}

// GetView handles GET /analytics/views/{view}
func (h *dashboardHandlerImpl) GetView(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	result, err := h.dashboardService.GetView(r.Context(), a, chi.URLParam(r, "view"), h.query(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), string(result.Window.Period))
}

// GetEmployeeAttendance handles GET /employees/{employeeID}/attendance
func (h *dashboardHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	req := dashboard.EmployeeAttendanceRequest{EmployeeID: chi.URLParam(r, "employeeID")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetEmployeeAttendance(r.Context(), a, req.EmployeeID, h.query(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), string(result.Window.Period))
}

// GetTeamMembers handles GET /team/members
func (h *dashboardHandlerImpl) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	result, err := h.dashboardService.GetTeamMembers(r.Context(), a, h.query(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), "")
}

// GetVisibleNotices handles GET /notices/visible
func (h *dashboardHandlerImpl) GetVisibleNotices(w http.ResponseWriter, r *http.Request) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor")
		return
	}

	result, err := h.dashboardService.GetVisibleNotices(r.Context(), a)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessForRole(w, result, string(a.Role), "")
}
