package scope

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "co-1"

func strPtr(s string) *string { return &s }

// seedOrg builds: admin -> hr (added) -> tl (added by hr) -> e1, e2 (managed
// by tl, added by hr), e3 inactive under tl, and x1 in another company.
func seedOrg(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	joined := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	add := func(id string, addedBy, manager *string, active bool, company string) {
		s.AddEmployee(employee.Employee{
			ID:            id,
			CompanyID:     company,
			Name:          id,
			AddedBy:       addedBy,
			ManagerID:     manager,
			IsActive:      active,
			DateOfJoining: joined,
		})
	}
	add("admin", nil, nil, true, companyID)
	add("hr", strPtr("admin"), nil, true, companyID)
	add("tl", strPtr("hr"), nil, true, companyID)
	add("e1", strPtr("hr"), strPtr("tl"), true, companyID)
	add("e2", strPtr("hr"), strPtr("tl"), true, companyID)
	add("e3", strPtr("hr"), strPtr("tl"), false, companyID)
	add("x1", nil, nil, true, "co-2")
	return s
}

func TestResolver_Resolve_Roles(t *testing.T) {
	resolver := NewScopeResolver(seedOrg(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		a    actor.Actor
		want []string
	}{
		{"admin sees the company", actor.Actor{ID: "admin", CompanyID: companyID, Role: actor.RoleAdmin}, []string{"admin", "e1", "e2", "e3", "hr", "tl"}},
		{"hr manager sees onboarded", actor.Actor{ID: "hr", CompanyID: companyID, Role: actor.RoleHRManager}, []string{"e1", "e2", "e3", "hr", "tl"}},
		{"team leader sees active team", actor.Actor{ID: "tl", CompanyID: companyID, Role: actor.RoleTeamLeader}, []string{"e1", "e2", "tl"}},
		{"employee sees self", actor.Actor{ID: "e1", CompanyID: companyID, Role: actor.RoleEmployee}, []string{"e1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := resolver.Resolve(ctx, tt.a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sc.IDs())
			assert.False(t, sc.Contains("x1"))
		})
	}
}

func TestResolver_Resolve_InvalidActor(t *testing.T) {
	resolver := NewScopeResolver(seedOrg(t), nil)

	_, err := resolver.Resolve(context.Background(), actor.Actor{ID: "e1", CompanyID: companyID, Role: "intern"})
	assert.ErrorIs(t, err, actor.ErrInvalidRole)

	_, err = resolver.Resolve(context.Background(), actor.Actor{CompanyID: companyID, Role: actor.RoleAdmin})
	assert.ErrorIs(t, err, actor.ErrActorIDRequired)
}

func TestResolver_Resolve_LeaderWithoutTeam(t *testing.T) {
	resolver := NewScopeResolver(seedOrg(t), nil)

	sc, err := resolver.Resolve(context.Background(), actor.Actor{ID: "e2", CompanyID: companyID, Role: actor.RoleTeamLeader})
	require.NoError(t, err)
	assert.Equal(t, []string{"e2"}, sc.IDs())
	assert.Empty(t, sc.Members())
}

type failingScopeRepo struct {
	scope.Repository
	err error
}

func (r failingScopeRepo) ListCompanyEmployees(context.Context, string) ([]string, error) {
	return nil, r.err
}

func (r failingScopeRepo) GetRelations(context.Context, string, string) (*employee.Relations, error) {
	return nil, r.err
}

func TestResolver_Resolve_UpstreamFailure(t *testing.T) {
	boom := errors.New("connection reset")
	resolver := NewScopeResolver(failingScopeRepo{err: boom}, nil)

	_, err := resolver.Resolve(context.Background(), actor.Actor{ID: "admin", CompanyID: companyID, Role: actor.RoleAdmin})
	assert.ErrorIs(t, err, analytics.ErrUpstreamQuery)
	assert.ErrorIs(t, err, boom)
}

func TestResolver_ResolveVisibility(t *testing.T) {
	resolver := NewScopeResolver(seedOrg(t), nil)
	ctx := context.Background()

	// Employees read their onboarder and manager.
	v, err := resolver.ResolveVisibility(ctx, actor.Actor{ID: "e1", CompanyID: companyID, Role: actor.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "hr", "tl"}, v.AuthorIDs())
	assert.False(t, v.CanRead("admin"))

	// Others read within their scope.
	v, err = resolver.ResolveVisibility(ctx, actor.Actor{ID: "tl", CompanyID: companyID, Role: actor.RoleTeamLeader})
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2", "tl"}, v.AuthorIDs())

	// An employee without a record still reads their own notices.
	v, err = resolver.ResolveVisibility(ctx, actor.Actor{ID: "ghost", CompanyID: companyID, Role: actor.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, v.AuthorIDs())
}

func TestResolver_ResolveVisibility_UpstreamFailure(t *testing.T) {
	resolver := NewScopeResolver(failingScopeRepo{err: errors.New("timeout")}, nil)

	_, err := resolver.ResolveVisibility(context.Background(), actor.Actor{ID: "e1", CompanyID: companyID, Role: actor.RoleEmployee})
	assert.ErrorIs(t, err, analytics.ErrUpstreamQuery)
}
