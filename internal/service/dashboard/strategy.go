package dashboard

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

const (
	trendDays   = 30
	trendMonths = 6
)

// todayWindow is always today, independent of the requested period.
func todayWindow(now time.Time) window.TimeWindow {
	w, _ := window.Build(string(window.PeriodToday), now)
	return w
}

func yearWindow(now time.Time) window.TimeWindow {
	w, _ := window.Build(string(window.PeriodYear), now)
	return w
}

// ========== ADMIN ==========

type adminStrategy struct {
	rules []dashboard.AlertRule
}

func (s *adminStrategy) Role() actor.Role { return actor.RoleAdmin }

func (s *adminStrategy) BuildBundleRequests(_ actor.Actor, sc *scope.ScopeSet, win window.TimeWindow, now time.Time) []analytics.BundleRequest {
	return []analytics.BundleRequest{
		analytics.NewRequest(analytics.ViewAttendance, sc, todayWindow(now)).WithKey(dashboard.KeyTodayAttendance),
		analytics.NewRequest(analytics.ViewLeave, sc, win).WithKey(dashboard.KeyLeave),
		analytics.NewRequest(analytics.ViewGrowth, sc, win).WithKey(dashboard.KeyGrowth),
		analytics.NewRequest(analytics.ViewPayroll, sc, win).WithKey(dashboard.KeyPayroll),
		analytics.NewRequest(analytics.ViewAssets, sc, win).WithKey(dashboard.KeyAssets),
		analytics.NewRequest(analytics.ViewDepartment, sc, win).WithKey(dashboard.KeyDepartment),
		analytics.NewRequest(analytics.ViewSalary, sc, win).WithKey(dashboard.KeySalary),
		analytics.NewRequest(analytics.ViewOvertime, sc, win).WithKey(dashboard.KeyOvertime),
		analytics.NewRequest(analytics.ViewAttendanceTrend, sc, window.TrailingDays(now, trendDays)).WithKey(dashboard.KeyAttendanceTrend),
		analytics.NewRequest(analytics.ViewLeaveTrend, sc, window.TrailingMonths(now, trendMonths)).WithKey(dashboard.KeyLeaveTrend),
	}
}

func (s *adminStrategy) AlertRules() []dashboard.AlertRule { return s.rules }

func (s *adminStrategy) AllowsView(analytics.View) bool { return true }

// ========== HR MANAGER ==========

var hrManagerViews = []analytics.View{
	analytics.ViewAttendance,
	analytics.ViewAttendanceTrend,
	analytics.ViewLeave,
	analytics.ViewLeaveTrend,
	analytics.ViewGrowth,
	analytics.ViewDepartment,
	analytics.ViewPayroll,
	analytics.ViewSalary,
	analytics.ViewOvertime,
}

type hrManagerStrategy struct {
	rules []dashboard.AlertRule
}

func (s *hrManagerStrategy) Role() actor.Role { return actor.RoleHRManager }

func (s *hrManagerStrategy) BuildBundleRequests(_ actor.Actor, sc *scope.ScopeSet, win window.TimeWindow, now time.Time) []analytics.BundleRequest {
	return []analytics.BundleRequest{
		analytics.NewRequest(analytics.ViewAttendance, sc, todayWindow(now)).WithKey(dashboard.KeyTodayAttendance),
		analytics.NewRequest(analytics.ViewAttendance, sc, win).WithKey(dashboard.KeyAttendance),
		analytics.NewRequest(analytics.ViewLeave, sc, win).WithKey(dashboard.KeyLeave),
		analytics.NewRequest(analytics.ViewGrowth, sc, win).WithKey(dashboard.KeyGrowth),
		analytics.NewRequest(analytics.ViewDepartment, sc, win).WithKey(dashboard.KeyDepartment),
		analytics.NewRequest(analytics.ViewPayroll, sc, win).WithKey(dashboard.KeyPayroll),
		analytics.NewRequest(analytics.ViewAttendanceTrend, sc, win).WithKey(dashboard.KeyAttendanceTrend),
		analytics.NewRequest(analytics.ViewLeaveTrend, sc, window.TrailingMonths(now, trendMonths)).WithKey(dashboard.KeyLeaveTrend),
	}
}

func (s *hrManagerStrategy) AlertRules() []dashboard.AlertRule { return s.rules }

func (s *hrManagerStrategy) AllowsView(v analytics.View) bool {
	return slices.Contains(hrManagerViews, v)
}

// ========== TEAM LEADER ==========

var teamLeaderViews = []analytics.View{
	analytics.ViewAttendance,
	analytics.ViewAttendanceTrend,
	analytics.ViewLeave,
	analytics.ViewLeaveTrend,
	analytics.ViewTeamPerformance,
	analytics.ViewSalary,
	analytics.ViewOvertime,
	analytics.ViewNotices,
}

type teamLeaderStrategy struct {
	rules []dashboard.AlertRule
}

func (s *teamLeaderStrategy) Role() actor.Role { return actor.RoleTeamLeader }

func (s *teamLeaderStrategy) BuildBundleRequests(_ actor.Actor, sc *scope.ScopeSet, win window.TimeWindow, now time.Time) []analytics.BundleRequest {
	return []analytics.BundleRequest{
		analytics.NewRequest(analytics.ViewAttendance, sc, todayWindow(now)).WithKey(dashboard.KeyTodayAttendance),
		analytics.NewRequest(analytics.ViewAttendance, sc, win).WithKey(dashboard.KeyAttendance),
		analytics.NewRequest(analytics.ViewLeave, sc, win).WithKey(dashboard.KeyLeave),
		analytics.NewRequest(analytics.ViewTeamPerformance, sc, win).WithKey(dashboard.KeyTeamPerformance),
		analytics.NewRequest(analytics.ViewSalary, sc, win).WithKey(dashboard.KeySalary),
		analytics.NewRequest(analytics.ViewNotices, sc, win).WithKey(dashboard.KeyNotices),
		analytics.NewRequest(analytics.ViewAttendanceTrend, sc, win).WithKey(dashboard.KeyAttendanceTrend),
	}
}

func (s *teamLeaderStrategy) AlertRules() []dashboard.AlertRule { return s.rules }

func (s *teamLeaderStrategy) AllowsView(v analytics.View) bool {
	return slices.Contains(teamLeaderViews, v)
}

// ========== EMPLOYEE ==========

var employeeViews = []analytics.View{
	analytics.ViewAttendance,
	analytics.ViewAttendanceTrend,
	analytics.ViewLeave,
}

type employeeStrategy struct{}

func (s *employeeStrategy) Role() actor.Role { return actor.RoleEmployee }

// BuildBundleRequests keeps the trend on the calendar month so the employee
// sees one point per day regardless of the requested period.
func (s *employeeStrategy) BuildBundleRequests(_ actor.Actor, sc *scope.ScopeSet, win window.TimeWindow, now time.Time) []analytics.BundleRequest {
	month, _ := window.Build(string(window.PeriodMonth), now)
	return []analytics.BundleRequest{
		analytics.NewRequest(analytics.ViewAttendance, sc, todayWindow(now)).WithKey(dashboard.KeyTodayAttendance),
		analytics.NewRequest(analytics.ViewAttendance, sc, win).WithKey(dashboard.KeyAttendance),
		analytics.NewRequest(analytics.ViewLeave, sc, yearWindow(now)).WithKey(dashboard.KeyLeaveYear),
		analytics.NewRequest(analytics.ViewAttendanceTrend, sc, month).WithKey(dashboard.KeyAttendanceTrend),
	}
}

func (s *employeeStrategy) AlertRules() []dashboard.AlertRule { return nil }

func (s *employeeStrategy) AllowsView(v analytics.View) bool {
	return slices.Contains(employeeViews, v)
}

// ========== REGISTRY ==========

// Strategies maps each role to its dashboard strategy.
type Strategies map[actor.Role]dashboard.Strategy

// NewStrategies binds the alert thresholds into one strategy per role.
func NewStrategies(t dashboard.AlertThresholds) Strategies {
	return Strategies{
		actor.RoleAdmin:      &adminStrategy{rules: adminRules(t.Admin)},
		actor.RoleHRManager:  &hrManagerStrategy{rules: hrManagerRules(t.HRManager)},
		actor.RoleTeamLeader: &teamLeaderStrategy{rules: teamLeaderRules(t.TeamLeader)},
		actor.RoleEmployee:   &employeeStrategy{},
	}
}

func (s Strategies) For(role actor.Role) (dashboard.Strategy, error) {
	strategy, ok := s[role]
	if !ok {
		return nil, dashboard.ErrNoStrategy
	}
	return strategy, nil
}
