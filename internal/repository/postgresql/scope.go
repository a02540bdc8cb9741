package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is raised when an id is not a valid uuid.
const invalidTextRepresentation = "22P02"

type scopeRepositoryImpl struct {
	db    database.Querier
	guard *database.Guard
}

func NewScopeRepository(db database.Querier, guard *database.Guard) scope.Repository {
	return &scopeRepositoryImpl{db: db, guard: guard}
}

// ListCompanyEmployees returns every employee of the company
func (r *scopeRepositoryImpl) ListCompanyEmployees(ctx context.Context, companyID string) ([]string, error) {
	query := `
		SELECT id::text
		FROM employees
		WHERE company_id = $1
		ORDER BY id
	`
	ids, err := r.listIDs(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company employees: %w", err)
	}
	return ids, nil
}

// ListAddedBy returns employees onboarded by the actor
func (r *scopeRepositoryImpl) ListAddedBy(ctx context.Context, companyID string, actorID string) ([]string, error) {
	query := `
		SELECT id::text
		FROM employees
		WHERE company_id = $1 AND added_by = $2
		ORDER BY id
	`
	ids, err := r.listIDs(ctx, query, companyID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees added by actor: %w", err)
	}
	return ids, nil
}

// ListTeam returns active employees managed or onboarded by the leader
func (r *scopeRepositoryImpl) ListTeam(ctx context.Context, companyID string, leaderID string) ([]string, error) {
	query := `
		SELECT id::text
		FROM employees
		WHERE company_id = $1
		AND is_active = true
		AND (manager_id = $2 OR added_by = $2)
		ORDER BY id
	`
	ids, err := r.listIDs(ctx, query, companyID, leaderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return ids, nil
}

func (r *scopeRepositoryImpl) listIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	var ids []string
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// GetRelations returns the onboarding and management edges of one employee
func (r *scopeRepositoryImpl) GetRelations(ctx context.Context, companyID string, employeeID string) (*employee.Relations, error) {
	query := `
		SELECT id::text, added_by::text, manager_id::text
		FROM employees
		WHERE company_id = $1 AND id = $2
	`

	var rel employee.Relations
	var notFound bool
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, companyID, employeeID).Scan(&rel.EmployeeID, &rel.AddedBy, &rel.ManagerID)
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			// not a store failure, so not retried
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get employee relations: %w", err)
	}
	if notFound {
		return nil, employee.ErrEmployeeNotFound
	}
	return &rel, nil
}

func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}
