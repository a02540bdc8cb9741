package analytics

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
)

type Engine interface {
	// Aggregate computes one view. An empty scope yields a zero bundle without touching the store.
	Aggregate(ctx context.Context, req BundleRequest) (Bundle, error)
	// AggregateAll computes independent views concurrently and joins them by key.
	// A failing view is marked missing; only cancellation fails the whole call.
	AggregateAll(ctx context.Context, reqs []BundleRequest) (*BundleSet, error)
	// RecentActivity lists the latest joiners, leave requests and notices.
	RecentActivity(ctx context.Context, sc *scope.ScopeSet, vis *scope.VisibilityScope, limit int) (*RecentActivity, error)
	// VisibleNotices lists notices authored by the visibility scope, newest first.
	VisibleNotices(ctx context.Context, vis *scope.VisibilityScope, limit int) ([]NoticeItem, error)
}
