package scope

import (
	"context"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
)

// Repository exposes the ownership and management edges scoping is built from.
type Repository interface {
	// ListCompanyEmployees returns every employee ID of the company.
	ListCompanyEmployees(ctx context.Context, companyID string) ([]string, error)
	// ListAddedBy returns employees onboarded by actorID.
	ListAddedBy(ctx context.Context, companyID string, actorID string) ([]string, error)
	// ListTeam returns active employees managed or onboarded by leaderID.
	ListTeam(ctx context.Context, companyID string, leaderID string) ([]string, error)
	// GetRelations returns the edges of one employee or employee.ErrEmployeeNotFound.
	GetRelations(ctx context.Context, companyID string, employeeID string) (*employee.Relations, error)
}
