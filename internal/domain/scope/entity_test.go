package scope

import (
	"testing"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leader = actor.Actor{ID: "tl-1", CompanyID: "co-1", Role: actor.RoleTeamLeader}

func TestNew_AddsActorAndDeduplicates(t *testing.T) {
	sc := New(leader, []string{"e-2", "e-1", "e-2", ""})

	assert.Equal(t, []string{"e-1", "e-2", "tl-1"}, sc.IDs())
	assert.Equal(t, 3, sc.Size())
	assert.True(t, sc.Contains("tl-1"))
	assert.False(t, sc.Contains("e-9"))
	assert.Equal(t, []string{"e-1", "e-2"}, sc.Members())
	assert.Equal(t, actor.RoleTeamLeader, sc.Role())
	assert.Equal(t, "co-1", sc.CompanyID())
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	members := []string{"e-1"}
	sc := New(leader, members)

	members[0] = "e-9"
	ids := sc.IDs()
	ids[0] = "mutated"

	assert.True(t, sc.Contains("e-1"))
	assert.False(t, sc.Contains("e-9"))
	assert.Equal(t, "e-1", sc.IDs()[0])
}

func TestEmpty(t *testing.T) {
	sc := Empty(leader)

	assert.True(t, sc.IsEmpty())
	assert.Empty(t, sc.IDs())
	assert.Empty(t, sc.Members())
	assert.False(t, sc.Contains(leader.ID))
}

func TestScopeSet_Subset(t *testing.T) {
	sc := New(leader, []string{"e-1", "e-2"})

	sub, err := sc.Subset("e-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"e-2"}, sub.IDs())
	assert.Equal(t, leader, sub.Actor())

	_, err = sc.Subset("e-2", "e-3")
	assert.ErrorIs(t, err, ErrScopeViolation)
}

func TestAuthorize(t *testing.T) {
	sc := New(leader, []string{"e-1"})

	assert.NoError(t, Authorize(sc, "e-1"))
	assert.ErrorIs(t, Authorize(sc, "e-2"), ErrScopeViolation)
	assert.ErrorIs(t, Authorize(nil, "e-1"), ErrNilScope)
}

func TestVisibilityScope(t *testing.T) {
	emp := actor.Actor{ID: "e-1", CompanyID: "co-1", Role: actor.RoleEmployee}
	v := NewVisibility(emp, []string{"hr-1", "tl-1"})

	assert.True(t, v.CanRead("hr-1"))
	assert.True(t, v.CanRead("tl-1"))
	assert.True(t, v.CanRead("e-1"))
	assert.False(t, v.CanRead("e-2"))
	assert.Equal(t, []string{"e-1", "hr-1", "tl-1"}, v.AuthorIDs())
}
