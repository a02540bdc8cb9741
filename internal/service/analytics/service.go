package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/observability"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Concurrency bounds the views computed at once per request; 0 means unbounded.
	Concurrency int
	// Timeout bounds one AggregateAll call; 0 means the caller's deadline only.
	Timeout time.Duration
}

type viewFunc func(ctx context.Context, req analytics.BundleRequest) (any, error)

type EngineImpl struct {
	repo     analytics.Repository
	labels   analytics.LabelRepository
	observer observability.Observer
	opts     Options
	views    map[analytics.View]viewFunc
}

func NewAnalyticsEngine(repo analytics.Repository, labels analytics.LabelRepository, observer observability.Observer, opts Options) analytics.Engine {
	if observer == nil {
		observer = observability.Nop()
	}
	e := &EngineImpl{
		repo:     repo,
		labels:   labels,
		observer: observer,
		opts:     opts,
	}
	e.views = map[analytics.View]viewFunc{
		analytics.ViewAttendance:      e.attendance,
		analytics.ViewAttendanceTrend: e.attendanceTrend,
		analytics.ViewLeave:           e.leave,
		analytics.ViewLeaveTrend:      e.leaveTrend,
		analytics.ViewGrowth:          e.growth,
		analytics.ViewPayroll:         e.payroll,
		analytics.ViewAssets:          e.assets,
		analytics.ViewDepartment:      e.department,
		analytics.ViewSalary:          e.salary,
		analytics.ViewOvertime:        e.overtime,
		analytics.ViewTeamPerformance: e.teamPerformance,
		analytics.ViewNotices:         e.notices,
	}
	return e
}

// Aggregate implements analytics.Engine
func (e *EngineImpl) Aggregate(ctx context.Context, req analytics.BundleRequest) (analytics.Bundle, error) {
	started := time.Now()
	b, err := e.aggregate(ctx, req)
	e.observer.BundleComputed(ctx, req.ID(), string(req.View), time.Since(started), err)
	return b, err
}

func (e *EngineImpl) aggregate(ctx context.Context, req analytics.BundleRequest) (analytics.Bundle, error) {
	if req.Scope == nil {
		return analytics.Bundle{}, scope.ErrNilScope
	}
	compute, ok := e.views[req.View]
	if !ok {
		return analytics.Bundle{}, analytics.ErrUnknownView
	}

	bundle := analytics.Bundle{Key: req.ID(), View: req.View, Window: req.Window}
	if req.Scope.IsEmpty() {
		bundle.Data = zeroData(req.View)
		return bundle, nil
	}

	data, err := compute(ctx, req)
	if err != nil {
		return analytics.Bundle{}, fmt.Errorf("%w: %s: %w", analytics.ErrUpstreamQuery, req.View, err)
	}
	bundle.Data = data
	return bundle, nil
}

type outcome struct {
	bundle analytics.Bundle
	err    error
}

// AggregateAll implements analytics.Engine. Requests are independent reads, so
// they run in parallel and are joined by key regardless of completion order.
func (e *EngineImpl) AggregateAll(ctx context.Context, reqs []analytics.BundleRequest) (*analytics.BundleSet, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	results := make([]outcome, len(reqs))

	// Closures never return an error: one failed view must not cancel its siblings.
	g, gCtx := errgroup.WithContext(ctx)
	if e.opts.Concurrency > 0 {
		g.SetLimit(e.opts.Concurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			b, err := e.Aggregate(gCtx, req)
			results[i] = outcome{bundle: b, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregation aborted: %w", err)
	}

	set := analytics.NewBundleSet()
	for i, req := range reqs {
		if results[i].err != nil {
			set.MarkMissing(req.ID())
			continue
		}
		set.Put(results[i].bundle)
	}
	return set, nil
}

// activeScope narrows a scope to its active employees for the attendance and
// leave views. Growth still counts inactive employees.
func (e *EngineImpl) activeScope(ctx context.Context, sc *scope.ScopeSet) (*scope.ScopeSet, error) {
	ids, err := e.repo.ListActiveIDs(ctx, sc.IDs())
	if err != nil {
		return nil, err
	}
	return sc.Subset(ids...)
}

// zeroData is the renderable bundle for an empty scope: zero numbers, empty series.
func zeroData(view analytics.View) any {
	switch view {
	case analytics.ViewAttendance:
		return &analytics.AttendanceStats{}
	case analytics.ViewAttendanceTrend:
		return &analytics.AttendanceTrend{Points: []analytics.TrendPoint{}}
	case analytics.ViewLeave:
		return &analytics.LeaveStats{}
	case analytics.ViewLeaveTrend:
		return &analytics.LeaveTrend{Months: []analytics.LeaveMonth{}}
	case analytics.ViewGrowth:
		return &analytics.GrowthStats{}
	case analytics.ViewPayroll:
		return &analytics.PayrollStats{ByStatus: []analytics.StatusCount{}, ByMonth: []analytics.PayrollMonth{}}
	case analytics.ViewAssets:
		return &analytics.AssetStats{ByCategory: []analytics.CategoryCount{}}
	case analytics.ViewDepartment:
		return &analytics.DepartmentStats{Departments: []analytics.DepartmentStat{}, Designations: []analytics.DesignationStat{}}
	case analytics.ViewSalary:
		return &analytics.SalaryStats{Buckets: []analytics.SalaryBucket{}}
	case analytics.ViewOvertime:
		return &analytics.OvertimeStats{}
	case analytics.ViewTeamPerformance:
		return &analytics.TeamPerformance{Members: []analytics.MemberPerformance{}}
	case analytics.ViewNotices:
		return &analytics.NoticeStats{}
	}
	return nil
}
