package dashboard

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/observability"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// DefaultRecentLimit is how many joiners, leaves and notices the activity feed shows.
const DefaultRecentLimit = 5

// noticeListLimit caps the visible notices endpoint.
const noticeListLimit = 50

type DashboardServiceImpl struct {
	resolver    scope.Resolver
	engine      analytics.Engine
	strategies  Strategies
	observer    observability.Observer
	recentLimit int
}

func NewDashboardService(resolver scope.Resolver, engine analytics.Engine, strategies Strategies, observer observability.Observer, recentLimit int) dashboard.DashboardService {
	if observer == nil {
		observer = observability.Nop()
	}
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &DashboardServiceImpl{
		resolver:    resolver,
		engine:      engine,
		strategies:  strategies,
		observer:    observer,
		recentLimit: recentLimit,
	}
}

// prepare fails fast on role and scope before any aggregation runs.
func (s *DashboardServiceImpl) prepare(ctx context.Context, a actor.Actor) (dashboard.Strategy, *scope.ScopeSet, error) {
	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	strategy, err := s.strategies.For(a.Role)
	if err != nil {
		return nil, nil, err
	}
	sc, err := s.resolver.Resolve(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	return strategy, sc, nil
}

// buildWindow treats the period as advisory: an unknown token falls back to the default.
func (s *DashboardServiceImpl) buildWindow(ctx context.Context, q dashboard.Query) (window.TimeWindow, bool) {
	w, recovered := window.BuildOrDefault(q.Period, q.Now)
	s.observer.WindowBuilt(ctx, w, recovered)
	return w, recovered
}

// visibility reuses the resolved scope for every role that reads within it.
func (s *DashboardServiceImpl) visibility(ctx context.Context, a actor.Actor, sc *scope.ScopeSet) (*scope.VisibilityScope, error) {
	if a.Role == actor.RoleEmployee {
		return s.resolver.ResolveVisibility(ctx, a)
	}
	return scope.NewVisibility(a, sc.IDs()), nil
}

// GetDashboard implements dashboard.DashboardService. Bundles and the activity
// feed are fetched concurrently; failures surface as missing views.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, a actor.Actor, q dashboard.Query) (*dashboard.DashboardResponse, error) {
	strategy, sc, err := s.prepare(ctx, a)
	if err != nil {
		return nil, err
	}
	win, recovered := s.buildWindow(ctx, q)

	vis, err := s.visibility(ctx, a, sc)
	if err != nil {
		return nil, err
	}

	var (
		set         *analytics.BundleSet
		activity    *analytics.RecentActivity
		activityErr error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		set, err = s.engine.AggregateAll(gCtx, strategy.BuildBundleRequests(a, sc, win, q.Now))
		return err
	})
	g.Go(func() error {
		activity, activityErr = s.engine.RecentActivity(gCtx, sc, vis, s.recentLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compose(strategy, Composition{
		Window:          win,
		PeriodRecovered: recovered,
		Now:             q.Now,
		Bundles:         set,
		Activity:        activity,
		ActivityErr:     activityErr,
	}), nil
}

// GetAnalytics implements dashboard.DashboardService
func (s *DashboardServiceImpl) GetAnalytics(ctx context.Context, a actor.Actor, q dashboard.Query) (*dashboard.AnalyticsResponse, error) {
	if a.Role == actor.RoleEmployee {
		return nil, dashboard.ErrAnalyticsForbidden
	}
	strategy, sc, err := s.prepare(ctx, a)
	if err != nil {
		return nil, err
	}
	win, _ := s.buildWindow(ctx, q)

	reqs := []analytics.BundleRequest{
		analytics.NewRequest(analytics.ViewAttendanceTrend, sc, win).WithKey(dashboard.KeyAttendanceTrend),
		analytics.NewRequest(analytics.ViewLeaveTrend, sc, window.TrailingMonths(q.Now, trendMonths)).WithKey(dashboard.KeyLeaveTrend),
	}
	if strategy.AllowsView(analytics.ViewDepartment) {
		reqs = append(reqs, analytics.NewRequest(analytics.ViewDepartment, sc, win).WithKey(dashboard.KeyDepartment))
	}

	set, err := s.engine.AggregateAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	resp := &dashboard.AnalyticsResponse{
		UserRole: a.Role,
		Window:   win,
	}
	resp.AttendanceTrend, _ = analytics.Lookup[*analytics.AttendanceTrend](set, dashboard.KeyAttendanceTrend)
	resp.LeaveTrend, _ = analytics.Lookup[*analytics.LeaveTrend](set, dashboard.KeyLeaveTrend)
	resp.DepartmentDistribution, _ = analytics.Lookup[*analytics.DepartmentStats](set, dashboard.KeyDepartment)
	if missing := set.Missing(); len(missing) > 0 {
		resp.MissingViews = missing
	}
	return resp, nil
}

// GetView implements dashboard.DashboardService
func (s *DashboardServiceImpl) GetView(ctx context.Context, a actor.Actor, view string, q dashboard.Query) (*analytics.Bundle, error) {
	v, err := analytics.ParseView(view)
	if err != nil {
		return nil, err
	}
	strategy, sc, err := s.prepare(ctx, a)
	if err != nil {
		return nil, err
	}
	if !strategy.AllowsView(v) {
		return nil, fmt.Errorf("%w: %s for %s", analytics.ErrForbiddenView, v, a.Role)
	}
	win, _ := s.buildWindow(ctx, q)

	bundle, err := s.engine.Aggregate(ctx, analytics.NewRequest(v, sc, win))
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

// GetEmployeeAttendance implements dashboard.DashboardService. The filter is
// checked against the scope and rejected rather than narrowed.
func (s *DashboardServiceImpl) GetEmployeeAttendance(ctx context.Context, a actor.Actor, employeeID string, q dashboard.Query) (*analytics.Bundle, error) {
	if validator.IsEmpty(employeeID) {
		return nil, employee.ErrInvalidEmployeeID
	}
	_, sc, err := s.prepare(ctx, a)
	if err != nil {
		return nil, err
	}
	sub, err := sc.Subset(employeeID)
	if err != nil {
		return nil, err
	}
	win, _ := s.buildWindow(ctx, q)

	bundle, err := s.engine.Aggregate(ctx, analytics.NewRequest(analytics.ViewAttendance, sub, win))
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

// GetTeamMembers implements dashboard.DashboardService
func (s *DashboardServiceImpl) GetTeamMembers(ctx context.Context, a actor.Actor, q dashboard.Query) (*analytics.TeamPerformance, error) {
	strategy, sc, err := s.prepare(ctx, a)
	if err != nil {
		return nil, err
	}
	if !strategy.AllowsView(analytics.ViewTeamPerformance) {
		return nil, fmt.Errorf("%w: %s for %s", analytics.ErrForbiddenView, analytics.ViewTeamPerformance, a.Role)
	}
	win, _ := s.buildWindow(ctx, q)

	bundle, err := s.engine.Aggregate(ctx, analytics.NewRequest(analytics.ViewTeamPerformance, sc, win))
	if err != nil {
		return nil, err
	}
	team, ok := bundle.Data.(*analytics.TeamPerformance)
	if !ok {
		return nil, fmt.Errorf("unexpected bundle data %T for %s", bundle.Data, bundle.View)
	}
	return team, nil
}

// GetVisibleNotices implements dashboard.DashboardService
func (s *DashboardServiceImpl) GetVisibleNotices(ctx context.Context, a actor.Actor) ([]analytics.NoticeItem, error) {
	vis, err := s.resolver.ResolveVisibility(ctx, a)
	if err != nil {
		return nil, err
	}
	return s.engine.VisibleNotices(ctx, vis, noticeListLimit)
}
