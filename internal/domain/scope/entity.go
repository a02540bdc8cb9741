package scope

import (
	"slices"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
)

// ScopeSet is the immutable set of employee IDs an actor may see. Every
// aggregation filters by it and by nothing wider.
type ScopeSet struct {
	actor actor.Actor
	ids   []string
	index map[string]struct{}
}

// New builds a scope for a from the resolved member IDs. The actor's own ID is
// always added, and duplicates collapse.
func New(a actor.Actor, memberIDs []string) *ScopeSet {
	return build(a, append(slices.Clone(memberIDs), a.ID))
}

// Empty is a scope with no members at all. Aggregations over it return zero bundles.
func Empty(a actor.Actor) *ScopeSet {
	return build(a, nil)
}

func build(a actor.Actor, ids []string) *ScopeSet {
	index := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := index[id]; ok {
			continue
		}
		index[id] = struct{}{}
		unique = append(unique, id)
	}
	slices.Sort(unique)
	return &ScopeSet{actor: a, ids: unique, index: index}
}

func (s *ScopeSet) Actor() actor.Actor { return s.actor }

func (s *ScopeSet) Role() actor.Role { return s.actor.Role }

func (s *ScopeSet) CompanyID() string { return s.actor.CompanyID }

// IDs returns a sorted copy of the member IDs.
func (s *ScopeSet) IDs() []string { return slices.Clone(s.ids) }

func (s *ScopeSet) Size() int { return len(s.ids) }

func (s *ScopeSet) IsEmpty() bool { return len(s.ids) == 0 }

func (s *ScopeSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Members returns the IDs other than the actor's own.
func (s *ScopeSet) Members() []string {
	members := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if id != s.actor.ID {
			members = append(members, id)
		}
	}
	return members
}

// Subset narrows the scope to exactly ids. Any id outside the scope is a
// violation; the scope is never widened.
func (s *ScopeSet) Subset(ids ...string) (*ScopeSet, error) {
	for _, id := range ids {
		if !s.Contains(id) {
			return nil, ErrScopeViolation
		}
	}
	return build(s.actor, ids), nil
}

// Authorize rejects an explicit employee filter that falls outside the scope.
func Authorize(s *ScopeSet, employeeID string) error {
	if s == nil {
		return ErrNilScope
	}
	if !s.Contains(employeeID) {
		return ErrScopeViolation
	}
	return nil
}

// VisibilityScope lists the authors whose notices and announcements an actor
// may read. It is never used for write authorization.
type VisibilityScope struct {
	actor   actor.Actor
	authors []string
	index   map[string]struct{}
}

func NewVisibility(a actor.Actor, authorIDs []string) *VisibilityScope {
	set := build(a, append(slices.Clone(authorIDs), a.ID))
	return &VisibilityScope{actor: a, authors: set.ids, index: set.index}
}

func (v *VisibilityScope) Actor() actor.Actor { return v.actor }

func (v *VisibilityScope) AuthorIDs() []string { return slices.Clone(v.authors) }

func (v *VisibilityScope) CanRead(authorID string) bool {
	_, ok := v.index[authorID]
	return ok
}
