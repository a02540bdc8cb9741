package dashboard

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// Composition is everything gathered for one dashboard call.
type Composition struct {
	Window          window.TimeWindow
	PeriodRecovered bool
	Now             time.Time
	Bundles         *analytics.BundleSet
	Activity        *analytics.RecentActivity
	ActivityErr     error
}

// Compose maps bundles to response sections and evaluates alerts. It does no
// I/O, so the same inputs always give the same dashboard.
func Compose(strategy dashboard.Strategy, c Composition) *dashboard.DashboardResponse {
	set := c.Bundles
	if set == nil {
		set = analytics.NewBundleSet()
	}

	resp := &dashboard.DashboardResponse{
		UserRole:        strategy.Role(),
		Window:          c.Window,
		PeriodRecovered: c.PeriodRecovered,
		GeneratedAt:     c.Now,
		Alerts:          []dashboard.Alert{},
	}

	resp.TodayAttendance, _ = analytics.Lookup[*analytics.AttendanceStats](set, dashboard.KeyTodayAttendance)
	resp.Attendance, _ = analytics.Lookup[*analytics.AttendanceStats](set, dashboard.KeyAttendance)
	resp.AttendanceTrend, _ = analytics.Lookup[*analytics.AttendanceTrend](set, dashboard.KeyAttendanceTrend)
	resp.Leaves, _ = analytics.Lookup[*analytics.LeaveStats](set, dashboard.KeyLeave)
	resp.LeaveTrend, _ = analytics.Lookup[*analytics.LeaveTrend](set, dashboard.KeyLeaveTrend)
	resp.Growth, _ = analytics.Lookup[*analytics.GrowthStats](set, dashboard.KeyGrowth)
	resp.Payroll, _ = analytics.Lookup[*analytics.PayrollStats](set, dashboard.KeyPayroll)
	resp.Assets, _ = analytics.Lookup[*analytics.AssetStats](set, dashboard.KeyAssets)
	resp.Departments, _ = analytics.Lookup[*analytics.DepartmentStats](set, dashboard.KeyDepartment)
	resp.Salary, _ = analytics.Lookup[*analytics.SalaryStats](set, dashboard.KeySalary)
	resp.Overtime, _ = analytics.Lookup[*analytics.OvertimeStats](set, dashboard.KeyOvertime)
	resp.Team, _ = analytics.Lookup[*analytics.TeamPerformance](set, dashboard.KeyTeamPerformance)
	resp.Notices, _ = analytics.Lookup[*analytics.NoticeStats](set, dashboard.KeyNotices)

	if yearLeaves, ok := analytics.Lookup[*analytics.LeaveStats](set, dashboard.KeyLeaveYear); ok {
		resp.Self = selfSummary(resp.TodayAttendance, yearLeaves)
	}

	for _, rule := range strategy.AlertRules() {
		if alert, fired := rule.Evaluate(set); fired {
			resp.Alerts = append(resp.Alerts, alert)
		}
	}

	missing := set.Missing()
	if c.ActivityErr != nil {
		missing = append(missing, dashboard.KeyRecentActivity)
	} else {
		resp.RecentActivity = c.Activity
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		resp.MissingViews = missing
	}
	return resp
}

// selfSummary reads the employee's own day from a single-person scope.
func selfSummary(today *analytics.AttendanceStats, year *analytics.LeaveStats) *dashboard.SelfSummary {
	s := &dashboard.SelfSummary{
		TodayStatus:     string(attendance.StatusAbsent),
		ApprovedLeave:   year.ApprovedDays,
		PendingLeaves:   year.PendingBacklog,
		RemainingLeaves: leave.Remaining(year.ApprovedDays),
	}
	if today == nil {
		s.TodayStatus = ""
		return s
	}
	switch {
	case today.Present > 0:
		s.TodayStatus = string(attendance.StatusPresent)
	case today.Late > 0:
		s.TodayStatus = string(attendance.StatusLate)
	case today.HalfDay > 0:
		s.TodayStatus = string(attendance.StatusHalfDay)
	}
	s.WorkHours = today.TotalHours
	return s
}
