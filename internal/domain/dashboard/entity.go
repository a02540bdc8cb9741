package dashboard

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// Severity is one of three levels; clients render nothing finer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityHigh    Severity = "high"
)

// Alert is derived from the current bundles on every call and never stored.
type Alert struct {
	Type            string   `json:"type"`
	Severity        Severity `json:"severity"`
	Message         string   `json:"message"`
	SuggestedAction string   `json:"action"`
}

// AlertRule inspects a joined bundle set. Rules are independent; each one
// either fires or not and results are simply appended.
type AlertRule interface {
	Evaluate(set *analytics.BundleSet) (Alert, bool)
}

// Well-known bundle keys shared by strategies and the composer.
const (
	KeyTodayAttendance = "attendance_today"
	KeyAttendance      = "attendance"
	KeyAttendanceTrend = "attendance_trend"
	KeyLeave           = "leave"
	KeyLeaveYear       = "leave_year"
	KeyLeaveTrend      = "leave_trend"
	KeyGrowth          = "growth"
	KeyPayroll         = "payroll"
	KeyAssets          = "assets"
	KeyDepartment      = "department"
	KeySalary          = "salary"
	KeyOvertime        = "overtime"
	KeyTeamPerformance = "team_performance"
	KeyNotices         = "notices"
	KeyRecentActivity  = "recent_activity"
)

// Strategy captures everything role specific about a dashboard, so the
// composer and the service never branch on role.
type Strategy interface {
	Role() actor.Role
	// BuildBundleRequests lists the independent views the dashboard needs.
	BuildBundleRequests(a actor.Actor, sc *scope.ScopeSet, win window.TimeWindow, now time.Time) []analytics.BundleRequest
	// AlertRules returns the role's alert rules with their thresholds bound.
	AlertRules() []AlertRule
	// AllowsView reports whether the role may request a single view directly.
	AllowsView(v analytics.View) bool
}
