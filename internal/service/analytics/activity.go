package analytics

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"golang.org/x/sync/errgroup"
)

// RecentActivity implements analytics.Engine. Rows are filtered again in
// memory so a store that ignores the ID filter still cannot leak records.
func (e *EngineImpl) RecentActivity(ctx context.Context, sc *scope.ScopeSet, vis *scope.VisibilityScope, limit int) (*analytics.RecentActivity, error) {
	if sc == nil || vis == nil {
		return nil, scope.ErrNilScope
	}
	activity := &analytics.RecentActivity{
		Joiners: []analytics.JoinerItem{},
		Leaves:  []analytics.LeaveItem{},
		Notices: []analytics.NoticeItem{},
	}
	if limit <= 0 {
		return activity, nil
	}

	g, gCtx := errgroup.WithContext(ctx)

	if !sc.IsEmpty() {
		g.Go(func() error {
			employees, err := e.repo.ListRecentJoiners(gCtx, sc.IDs(), limit)
			if err != nil {
				return fmt.Errorf("%w: recent joiners: %w", analytics.ErrUpstreamQuery, err)
			}
			for _, emp := range employees {
				if sc.Contains(emp.ID) {
					activity.Joiners = append(activity.Joiners, analytics.JoinerItem{
						EmployeeID:    emp.ID,
						Name:          emp.Name,
						DateOfJoining: emp.DateOfJoining,
					})
				}
			}
			return nil
		})

		g.Go(func() error {
			leaves, err := e.repo.ListRecentLeaves(gCtx, sc.IDs(), limit)
			if err != nil {
				return fmt.Errorf("%w: recent leaves: %w", analytics.ErrUpstreamQuery, err)
			}
			for _, l := range leaves {
				if sc.Contains(l.EmployeeID) {
					activity.Leaves = append(activity.Leaves, analytics.LeaveItem{
						ID:         l.ID,
						EmployeeID: l.EmployeeID,
						LeaveType:  l.LeaveType,
						Status:     string(l.Status),
						StartDate:  l.StartDate,
						Days:       l.Days,
					})
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		notices, err := e.VisibleNotices(gCtx, vis, limit)
		if err != nil {
			return err
		}
		activity.Notices = notices
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return activity, nil
}

// VisibleNotices implements analytics.Engine
func (e *EngineImpl) VisibleNotices(ctx context.Context, vis *scope.VisibilityScope, limit int) ([]analytics.NoticeItem, error) {
	if vis == nil {
		return nil, scope.ErrNilScope
	}
	items := []analytics.NoticeItem{}
	authors := vis.AuthorIDs()
	if len(authors) == 0 || limit <= 0 {
		return items, nil
	}

	notices, err := e.repo.ListRecentNotices(ctx, authors, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent notices: %w", analytics.ErrUpstreamQuery, err)
	}
	for _, n := range notices {
		if !vis.CanRead(n.CreatedBy) {
			continue
		}
		items = append(items, analytics.NoticeItem{
			ID:        n.ID,
			Title:     n.Title,
			CreatedBy: n.CreatedBy,
			ExpiresAt: n.ExpiresAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return items, nil
}
