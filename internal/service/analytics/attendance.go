package analytics

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

func (e *EngineImpl) attendance(ctx context.Context, req analytics.BundleRequest) (any, error) {
	active, err := e.activeScope(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	ids := active.IDs()
	size := active.Size()

	totals, err := e.repo.GetAttendanceTotals(ctx, ids, req.Window.DayStart(), req.Window.End)
	if err != nil {
		return nil, err
	}
	stats := buildAttendanceStats(totals, size, req.Window.WorkingDays())

	prevWindow := req.Window.Previous()
	prevTotals, err := e.repo.GetAttendanceTotals(ctx, ids, prevWindow.DayStart(), prevWindow.End)
	if err != nil {
		return nil, err
	}
	prev := buildAttendanceStats(prevTotals, size, prevWindow.WorkingDays())
	stats.Change = &analytics.Change{
		Previous: prev.Rate,
		Delta:    analytics.Round1(stats.Rate - prev.Rate),
	}
	return stats, nil
}

// buildAttendanceStats derives absence from the employee-day slots of the
// scope: a slot without Present, Late or Half Day is absent, recorded or not.
func buildAttendanceStats(t *analytics.AttendanceTotals, size, workingDays int) *analytics.AttendanceStats {
	slots := int64(size) * int64(workingDays)
	effective := t.Present + t.Late + t.HalfDay

	absent := slots - effective
	if absent < 0 {
		absent = 0
	}

	var avgHours float64
	if t.Records > 0 {
		avgHours = analytics.Round1(t.TotalHours / float64(t.Records))
	}

	return &analytics.AttendanceStats{
		Present:        t.Present,
		Late:           t.Late,
		HalfDay:        t.HalfDay,
		Absent:         absent,
		TotalEmployees: size,
		WorkingDays:    workingDays,
		ExpectedSlots:  slots,
		Rate:           analytics.Round1(analytics.Percent(float64(effective), float64(slots))),
		TotalHours:     analytics.Round1(t.TotalHours),
		OvertimeHours:  analytics.Round1(t.OvertimeHours),
		AvgHoursWorked: avgHours,
	}
}

func (e *EngineImpl) attendanceTrend(ctx context.Context, req analytics.BundleRequest) (any, error) {
	win := req.Window
	active, err := e.activeScope(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	rows, err := e.repo.GroupAttendanceByBucket(ctx, active.IDs(), win.DayStart(), win.End, win.Granularity)
	if err != nil {
		return nil, err
	}

	byBucket := make(map[string]analytics.AttendanceBucketRow, len(rows))
	for _, r := range rows {
		byBucket[window.BucketLabel(r.Bucket, win.Granularity)] = r
	}

	size := int64(active.Size())
	buckets := win.Buckets()
	points := make([]analytics.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		label := window.BucketLabel(b, win.Granularity)
		r := byBucket[label]

		expected := size * int64(win.BucketWorkingDays(b))
		effective := r.Present + r.Late + r.HalfDay
		absent := expected - effective
		if absent < 0 {
			absent = 0
		}
		total := expected
		if effective > total {
			// weekend shifts
			total = effective
		}

		points = append(points, analytics.TrendPoint{
			Date:    label,
			Present: effective,
			Absent:  absent,
			Late:    r.Late,
			Total:   total,
		})
	}

	return &analytics.AttendanceTrend{Granularity: win.Granularity, Points: points}, nil
}
