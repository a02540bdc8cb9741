package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type labelRepositoryImpl struct {
	db    database.Querier
	guard *database.Guard
}

func NewLabelRepository(db database.Querier, guard *database.Guard) analytics.LabelRepository {
	return &labelRepositoryImpl{db: db, guard: guard}
}

func (r *labelRepositoryImpl) DepartmentNames(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	query := `
		SELECT id::text, name
		FROM departments
		WHERE company_id = $1 AND id = ANY($2::uuid[])
	`
	labels, err := r.lookup(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get department names: %w", err)
	}
	return labels, nil
}

func (r *labelRepositoryImpl) DesignationTitles(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	query := `
		SELECT id::text, title
		FROM designations
		WHERE company_id = $1 AND id = ANY($2::uuid[])
	`
	labels, err := r.lookup(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get designation titles: %w", err)
	}
	return labels, nil
}

func (r *labelRepositoryImpl) lookup(ctx context.Context, query, companyID string, ids []string) (map[string]string, error) {
	labels := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, companyID, ids)
		if err != nil {
			return err
		}
		clear(labels)
		var id, name string
		_, err = pgx.ForEachRow(rows, []any{&id, &name}, func() error {
			labels[id] = name
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}
