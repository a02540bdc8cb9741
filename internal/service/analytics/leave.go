package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// leaveDaysPerEmployee is the per-employee allowance utilization is measured against.
const leaveDaysPerEmployee = 2

// leave counts the requests of active employees by filing date. The backlog
// ignores the window.
func (e *EngineImpl) leave(ctx context.Context, req analytics.BundleRequest) (any, error) {
	active, err := e.activeScope(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	ids := active.IDs()
	size := active.Size()

	rows, err := e.repo.GroupLeaves(ctx, ids, req.Window.DayStart(), req.Window.End)
	if err != nil {
		return nil, err
	}
	stats := foldLeaves(rows, size)

	stats.PendingBacklog, err = e.repo.CountPendingLeaves(ctx, ids)
	if err != nil {
		return nil, err
	}

	prevWindow := req.Window.Previous()
	prevRows, err := e.repo.GroupLeaves(ctx, ids, prevWindow.DayStart(), prevWindow.End)
	if err != nil {
		return nil, err
	}
	prev := foldLeaves(prevRows, size)
	stats.Change = &analytics.Change{
		Previous: prev.Utilization,
		Delta:    analytics.Round1(stats.Utilization - prev.Utilization),
	}
	return stats, nil
}

func foldLeaves(rows []analytics.LeaveGroupRow, size int) *analytics.LeaveStats {
	stats := &analytics.LeaveStats{}
	for _, r := range rows {
		switch r.Status {
		case leave.StatusPending:
			stats.Pending += r.Count
		case leave.StatusApproved:
			stats.Approved += r.Count
			stats.ApprovedDays += r.Days
		case leave.StatusRejected:
			stats.Rejected += r.Count
		}
		stats.Total += r.Count
		stats.TotalDays += r.Days
	}
	stats.ApprovalRate = analytics.Round1(analytics.Percent(float64(stats.Approved), float64(stats.Total)))
	stats.Utilization = analytics.Round1(analytics.Percent(stats.TotalDays, float64(size*leaveDaysPerEmployee)))
	return stats
}

func (e *EngineImpl) leaveTrend(ctx context.Context, req analytics.BundleRequest) (any, error) {
	win := req.Window
	active, err := e.activeScope(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	rows, err := e.repo.GroupLeaves(ctx, active.IDs(), win.DayStart(), win.End)
	if err != nil {
		return nil, err
	}

	months := monthBuckets(win)
	index := make(map[string]int, len(months))
	trend := make([]analytics.LeaveMonth, 0, len(months))
	for i, m := range months {
		index[monthKey(m.Year(), int(m.Month()))] = i
		trend = append(trend, analytics.LeaveMonth{
			Month:       analytics.MonthLabel(int(m.Month())),
			MonthNumber: int(m.Month()),
			Year:        m.Year(),
		})
	}

	for _, r := range rows {
		i, ok := index[monthKey(r.Year, r.Month)]
		if !ok {
			continue
		}
		switch r.Status {
		case leave.StatusPending:
			trend[i].Pending += r.Count
		case leave.StatusApproved:
			trend[i].Approved += r.Count
		case leave.StatusRejected:
			trend[i].Rejected += r.Count
		}
		trend[i].Total += r.Count
	}
	for i := range trend {
		trend[i].ApprovalRate = analytics.Round1(analytics.Percent(float64(trend[i].Approved), float64(trend[i].Total)))
	}

	return &analytics.LeaveTrend{Months: trend}, nil
}

// monthBuckets lists the calendar months the window touches, whatever its granularity.
func monthBuckets(win window.TimeWindow) []time.Time {
	var months []time.Time
	for m := window.StartOfMonth(win.Start); !m.After(win.End); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
