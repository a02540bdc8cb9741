package dashboard

import (
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
)

// absenceRule fires when today's absentees exceed a share of the population.
type absenceRule struct {
	ratio    float64
	severity dashboard.Severity
	subject  string
}

func (r absenceRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	today, ok := analytics.Lookup[*analytics.AttendanceStats](set, dashboard.KeyTodayAttendance)
	if !ok || today.TotalEmployees == 0 {
		return dashboard.Alert{}, false
	}
	if float64(today.Absent) <= float64(today.TotalEmployees)*r.ratio {
		return dashboard.Alert{}, false
	}
	return dashboard.Alert{
		Type:            "attendance",
		Severity:        r.severity,
		Message:         fmt.Sprintf("High absenteeism today: %d of %d %s absent", today.Absent, today.TotalEmployees, r.subject),
		SuggestedAction: "Review attendance patterns and contact absent employees",
	}, true
}

type lateRule struct {
	ratio    float64
	severity dashboard.Severity
}

func (r lateRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	today, ok := analytics.Lookup[*analytics.AttendanceStats](set, dashboard.KeyTodayAttendance)
	if !ok || today.TotalEmployees == 0 {
		return dashboard.Alert{}, false
	}
	if float64(today.Late) <= float64(today.TotalEmployees)*r.ratio {
		return dashboard.Alert{}, false
	}
	return dashboard.Alert{
		Type:            "punctuality",
		Severity:        r.severity,
		Message:         fmt.Sprintf("%d late arrivals today", today.Late),
		SuggestedAction: "Follow up on late arrivals",
	}, true
}

// pendingLeavesRule compares the pending backlog with a fixed limit.
type pendingLeavesRule struct {
	limit    int64
	severity dashboard.Severity
}

func (r pendingLeavesRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	stats, ok := analytics.Lookup[*analytics.LeaveStats](set, dashboard.KeyLeave)
	if !ok || stats.PendingBacklog <= r.limit {
		return dashboard.Alert{}, false
	}
	return pendingLeavesAlert(stats.PendingBacklog, r.severity), true
}

// teamPendingLeavesRule compares the pending backlog with a share of the team.
type teamPendingLeavesRule struct {
	ratio    float64
	severity dashboard.Severity
}

func (r teamPendingLeavesRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	stats, ok := analytics.Lookup[*analytics.LeaveStats](set, dashboard.KeyLeave)
	if !ok {
		return dashboard.Alert{}, false
	}
	team, ok := analytics.Lookup[*analytics.TeamPerformance](set, dashboard.KeyTeamPerformance)
	if !ok || team.TeamSize == 0 {
		return dashboard.Alert{}, false
	}
	if float64(stats.PendingBacklog) <= float64(team.TeamSize)*r.ratio {
		return dashboard.Alert{}, false
	}
	return pendingLeavesAlert(stats.PendingBacklog, r.severity), true
}

func pendingLeavesAlert(pending int64, severity dashboard.Severity) dashboard.Alert {
	return dashboard.Alert{
		Type:            "leaves",
		Severity:        severity,
		Message:         fmt.Sprintf("%d leave requests pending approval", pending),
		SuggestedAction: "Review and process pending leave requests",
	}
}

type assetRequestsRule struct {
	limit    int64
	severity dashboard.Severity
}

func (r assetRequestsRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	stats, ok := analytics.Lookup[*analytics.AssetStats](set, dashboard.KeyAssets)
	if !ok || stats.Requests.Pending <= r.limit {
		return dashboard.Alert{}, false
	}
	return dashboard.Alert{
		Type:            "assets",
		Severity:        r.severity,
		Message:         fmt.Sprintf("%d asset requests pending", stats.Requests.Pending),
		SuggestedAction: "Review asset requests and check inventory",
	}, true
}

type inactiveRule struct {
	ratio    float64
	severity dashboard.Severity
}

func (r inactiveRule) Evaluate(set *analytics.BundleSet) (dashboard.Alert, bool) {
	growth, ok := analytics.Lookup[*analytics.GrowthStats](set, dashboard.KeyGrowth)
	if !ok || growth.TotalEmployees == 0 {
		return dashboard.Alert{}, false
	}
	if float64(growth.InactiveEmployees) <= float64(growth.TotalEmployees)*r.ratio {
		return dashboard.Alert{}, false
	}
	return dashboard.Alert{
		Type:            "employees",
		Severity:        r.severity,
		Message:         fmt.Sprintf("%d inactive employees in the system", growth.InactiveEmployees),
		SuggestedAction: "Review inactive employee accounts",
	}, true
}

// A zero threshold disables its rule.

func adminRules(t dashboard.RoleThresholds) []dashboard.AlertRule {
	var rules []dashboard.AlertRule
	if t.AbsentRatio > 0 {
		rules = append(rules, absenceRule{ratio: t.AbsentRatio, severity: dashboard.SeverityHigh, subject: "employees"})
	}
	if t.PendingLeaves > 0 {
		rules = append(rules, pendingLeavesRule{limit: t.PendingLeaves, severity: dashboard.SeverityWarning})
	}
	if t.PendingAssetRequests > 0 {
		rules = append(rules, assetRequestsRule{limit: t.PendingAssetRequests, severity: dashboard.SeverityWarning})
	}
	if t.InactiveRatio > 0 {
		rules = append(rules, inactiveRule{ratio: t.InactiveRatio, severity: dashboard.SeverityInfo})
	}
	if t.LateRatio > 0 {
		rules = append(rules, lateRule{ratio: t.LateRatio, severity: dashboard.SeverityWarning})
	}
	return rules
}

func hrManagerRules(t dashboard.RoleThresholds) []dashboard.AlertRule {
	var rules []dashboard.AlertRule
	if t.AbsentRatio > 0 {
		rules = append(rules, absenceRule{ratio: t.AbsentRatio, severity: dashboard.SeverityWarning, subject: "employees"})
	}
	if t.PendingLeaves > 0 {
		rules = append(rules, pendingLeavesRule{limit: t.PendingLeaves, severity: dashboard.SeverityInfo})
	}
	if t.LateRatio > 0 {
		rules = append(rules, lateRule{ratio: t.LateRatio, severity: dashboard.SeverityWarning})
	}
	return rules
}

func teamLeaderRules(t dashboard.RoleThresholds) []dashboard.AlertRule {
	var rules []dashboard.AlertRule
	if t.AbsentRatio > 0 {
		rules = append(rules, absenceRule{ratio: t.AbsentRatio, severity: dashboard.SeverityWarning, subject: "team members"})
	}
	if t.PendingLeavesRatio > 0 {
		rules = append(rules, teamPendingLeavesRule{ratio: t.PendingLeavesRatio, severity: dashboard.SeverityInfo})
	}
	if t.LateRatio > 0 {
		rules = append(rules, lateRule{ratio: t.LateRatio, severity: dashboard.SeverityWarning})
	}
	return rules
}
