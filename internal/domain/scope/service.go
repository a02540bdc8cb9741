package scope

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/actor"
)

type Resolver interface {
	// Resolve computes the scope set for a. Fails with actor.ErrInvalidRole for unknown roles.
	Resolve(ctx context.Context, a actor.Actor) (*ScopeSet, error)
	// ResolveVisibility computes the notice/announcement author set for a.
	ResolveVisibility(ctx context.Context, a actor.Actor) (*VisibilityScope, error)
}
