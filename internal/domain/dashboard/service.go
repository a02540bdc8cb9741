package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
)

type DashboardService interface {
	// GetDashboard returns the role dashboard for the query period
	GetDashboard(ctx context.Context, a actor.Actor, q Query) (*DashboardResponse, error)
	// GetAnalytics returns attendance trend, department distribution and leave trend
	GetAnalytics(ctx context.Context, a actor.Actor, q Query) (*AnalyticsResponse, error)
	// GetView computes a single view over the actor's scope
	GetView(ctx context.Context, a actor.Actor, view string, q Query) (*analytics.Bundle, error)
	// GetEmployeeAttendance computes attendance for one employee inside the actor's scope
	GetEmployeeAttendance(ctx context.Context, a actor.Actor, employeeID string, q Query) (*analytics.Bundle, error)
	// GetTeamMembers lists the actor's team with per-member performance
	GetTeamMembers(ctx context.Context, a actor.Actor, q Query) (*analytics.TeamPerformance, error)
	// GetVisibleNotices lists notices the actor may read
	GetVisibleNotices(ctx context.Context, a actor.Actor) ([]analytics.NoticeItem, error)
}
