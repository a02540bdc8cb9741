package analytics

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

const (
	standardShiftHours = 8
	baseEfficiency     = 10
)

func (e *EngineImpl) overtime(ctx context.Context, req analytics.BundleRequest) (any, error) {
	totals, err := e.repo.GetAttendanceTotals(ctx, req.Scope.IDs(), req.Window.DayStart(), req.Window.End)
	if err != nil {
		return nil, err
	}

	stats := &analytics.OvertimeStats{
		TotalOvertime:         analytics.Round1(totals.OvertimeHours),
		EmployeesWithOvertime: totals.OvertimeMembers,
	}
	if totals.OvertimeRecords > 0 {
		stats.AverageOvertime = analytics.Round1(totals.OvertimeHours / float64(totals.OvertimeRecords))
	}
	return stats, nil
}

// teamPerformance reports on the actor's active members; the actor is not
// their own team.
func (e *EngineImpl) teamPerformance(ctx context.Context, req analytics.BundleRequest) (any, error) {
	memberIDs := req.Scope.Members()
	perf := &analytics.TeamPerformance{Members: []analytics.MemberPerformance{}}
	if len(memberIDs) == 0 {
		return perf, nil
	}

	employees, err := e.repo.ListEmployees(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	rows, err := e.repo.GroupAttendanceByEmployee(ctx, memberIDs, req.Window.DayStart(), req.Window.End)
	if err != nil {
		return nil, err
	}
	byEmployee := make(map[string]analytics.MemberAttendanceRow, len(rows))
	for _, r := range rows {
		byEmployee[r.EmployeeID] = r
	}

	workingDays := int64(req.Window.WorkingDays())
	var effective, slots int64
	var hours, overtime float64
	for _, emp := range employees {
		if !emp.IsActive || !req.Scope.Contains(emp.ID) {
			continue
		}
		r := byEmployee[emp.ID]
		present := r.Present + r.Late + r.HalfDay
		absent := workingDays - present
		if absent < 0 {
			absent = 0
		}

		m := analytics.MemberPerformance{
			EmployeeID:     emp.ID,
			Name:           emp.Name,
			Email:          emp.Email,
			IsActive:       emp.IsActive,
			Present:        r.Present,
			Late:           r.Late,
			HalfDay:        r.HalfDay,
			Absent:         absent,
			AttendanceRate: analytics.Round1(analytics.Percent(float64(present), float64(workingDays))),
			TotalOvertime:  analytics.Round1(r.OvertimeHours),
		}
		if present > 0 {
			m.AvgHoursPerDay = analytics.Round1(r.TotalHours / float64(present))
		}
		perf.Members = append(perf.Members, m)

		effective += present
		slots += workingDays
		hours += r.TotalHours
		overtime += r.OvertimeHours
	}

	slices.SortFunc(perf.Members, func(a, b analytics.MemberPerformance) int {
		return cmp.Or(cmp.Compare(b.AttendanceRate, a.AttendanceRate), cmp.Compare(a.Name, b.Name))
	})

	perf.TeamSize = len(perf.Members)
	var avgHours float64
	if effective > 0 {
		avgHours = hours / float64(effective)
	}
	perf.ProductivityScore = productivityScore(effective, slots, avgHours, overtime)
	return perf, nil
}

// productivityScore weighs attendance share (40), hours against a standard
// shift (30), absence of overtime (30, or 20 with overtime) and a flat 10.
func productivityScore(effective, slots int64, avgHours, overtime float64) int {
	if slots == 0 {
		return 0
	}
	share := math.Min(float64(effective)/float64(slots), 1)
	overtimeScore := 30.0
	if overtime > 0 {
		overtimeScore = 20
	}
	return int(math.Round(share*40 + avgHours/standardShiftHours*30 + overtimeScore + baseEfficiency))
}

// notices counts what the actor itself published; teamMembers excludes the actor.
func (e *EngineImpl) notices(ctx context.Context, req analytics.BundleRequest) (any, error) {
	a := req.Scope.Actor()
	counts, err := e.repo.CountNotices(ctx, []string{a.ID}, req.Window.Start, req.Window.End, req.Window.End)
	if err != nil {
		return nil, err
	}
	return &analytics.NoticeStats{
		TotalSent:   counts.Total,
		Active:      counts.Active,
		TeamMembers: len(req.Scope.Members()),
	}, nil
}
