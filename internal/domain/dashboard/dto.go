package dashboard

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
)

// Query carries the request inputs. Now is taken once per request and
// threaded through every window and aggregation.
type Query struct {
	Period string
	Now    time.Time
}

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the role-shaped dashboard. Sections a role did not
// request are omitted.
type DashboardResponse struct {
	UserRole        actor.Role                 `json:"userRole"`
	Window          window.TimeWindow          `json:"window"`
	PeriodRecovered bool                       `json:"periodRecovered,omitempty"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
	Self            *SelfSummary               `json:"self,omitempty"`
	TodayAttendance *analytics.AttendanceStats `json:"todayAttendance,omitempty"`
	Attendance      *analytics.AttendanceStats `json:"attendance,omitempty"`
	AttendanceTrend *analytics.AttendanceTrend `json:"attendanceTrend,omitempty"`
	Leaves          *analytics.LeaveStats      `json:"leaves,omitempty"`
	LeaveTrend      *analytics.LeaveTrend      `json:"leaveTrend,omitempty"`
	Growth          *analytics.GrowthStats     `json:"growth,omitempty"`
	Payroll         *analytics.PayrollStats    `json:"payroll,omitempty"`
	Assets          *analytics.AssetStats      `json:"assets,omitempty"`
	Departments     *analytics.DepartmentStats `json:"departments,omitempty"`
	Salary          *analytics.SalaryStats     `json:"salary,omitempty"`
	Overtime        *analytics.OvertimeStats   `json:"overtime,omitempty"`
	Team            *analytics.TeamPerformance `json:"team,omitempty"`
	Notices         *analytics.NoticeStats     `json:"notices,omitempty"`
	RecentActivity  *analytics.RecentActivity  `json:"recentActivity,omitempty"`
	Alerts          []Alert                    `json:"alerts"`
	MissingViews    []string                   `json:"missingViews,omitempty"`
}

// SelfSummary is the employee's own status for today and the year.
type SelfSummary struct {
	TodayStatus     string  `json:"todayStatus"`
	WorkHours       float64 `json:"workHours"`
	ApprovedLeave   float64 `json:"approvedLeaveDays"`
	PendingLeaves   int64   `json:"pendingLeaves"`
	RemainingLeaves float64 `json:"remainingLeaves"`
}

// ========== ANALYTICS ==========

type AnalyticsResponse struct {
	UserRole               actor.Role                 `json:"userRole"`
	Window                 window.TimeWindow          `json:"window"`
	AttendanceTrend        *analytics.AttendanceTrend `json:"attendanceTrend,omitempty"`
	DepartmentDistribution *analytics.DepartmentStats `json:"departmentDistribution,omitempty"`
	LeaveTrend             *analytics.LeaveTrend      `json:"leaveTrend,omitempty"`
	MissingViews           []string                   `json:"missingViews,omitempty"`
}

// ========== EMPLOYEE ATTENDANCE ==========

type EmployeeAttendanceRequest struct {
	EmployeeID string
}

func (r *EmployeeAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employee id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employee id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
