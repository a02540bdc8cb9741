package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/observability"
)

type ResolverImpl struct {
	repo     scope.Repository
	observer observability.Observer
}

func NewScopeResolver(repo scope.Repository, observer observability.Observer) scope.Resolver {
	if observer == nil {
		observer = observability.Nop()
	}
	return &ResolverImpl{
		repo:     repo,
		observer: observer,
	}
}

// Resolve implements scope.Resolver. Edges are followed one level deep only,
// so a cyclic addedBy/manager graph cannot loop.
func (r *ResolverImpl) Resolve(ctx context.Context, a actor.Actor) (*scope.ScopeSet, error) {
	sc, err := r.resolve(ctx, a)
	if err != nil {
		r.observer.ScopeResolved(ctx, a, 0, err)
		return nil, err
	}
	r.observer.ScopeResolved(ctx, a, sc.Size(), nil)
	return sc, nil
}

func (r *ResolverImpl) resolve(ctx context.Context, a actor.Actor) (*scope.ScopeSet, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	var (
		members []string
		err     error
	)
	switch a.Role {
	case actor.RoleAdmin:
		members, err = r.repo.ListCompanyEmployees(ctx, a.CompanyID)
	case actor.RoleHRManager:
		members, err = r.repo.ListAddedBy(ctx, a.CompanyID, a.ID)
	case actor.RoleTeamLeader:
		members, err = r.repo.ListTeam(ctx, a.CompanyID, a.ID)
	case actor.RoleEmployee:
		// self only
	default:
		return nil, actor.ErrInvalidRole
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve scope for %s: %w", analytics.ErrUpstreamQuery, a.Role, err)
	}

	return scope.New(a, members), nil
}

// ResolveVisibility implements scope.Resolver. Employees read what their
// onboarder and manager published; everyone else reads within their scope.
func (r *ResolverImpl) ResolveVisibility(ctx context.Context, a actor.Actor) (*scope.VisibilityScope, error) {
	if a.Role != actor.RoleEmployee {
		sc, err := r.Resolve(ctx, a)
		if err != nil {
			return nil, err
		}
		return scope.NewVisibility(a, sc.IDs()), nil
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	rel, err := r.repo.GetRelations(ctx, a.CompanyID, a.ID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return scope.NewVisibility(a, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve visibility: %w", analytics.ErrUpstreamQuery, err)
	}

	var authors []string
	if rel.AddedBy != nil {
		authors = append(authors, *rel.AddedBy)
	}
	if rel.ManagerID != nil {
		authors = append(authors, *rel.ManagerID)
	}
	return scope.NewVisibility(a, authors), nil
}
