package postgresql

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelRepository_DepartmentNames(t *testing.T) {
	// Setup
	mock := newMockPool(t)
	repo := NewLabelRepository(mock, nil)
	ids := []string{"dept-eng", "dept-ppl"}
	mock.ExpectQuery(`FROM departments\s+WHERE company_id = \$1 AND id = ANY\(\$2::uuid\[\]\)`).
		WithArgs("co-1", ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow("dept-eng", "Engineering").
			AddRow("dept-ppl", "People"))

	// Act
	names, err := repo.DepartmentNames(context.Background(), "co-1", ids)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"dept-eng": "Engineering", "dept-ppl": "People"}, names)
}

func TestLabelRepository_DesignationTitles_NoIDs(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLabelRepository(mock, nil)

	titles, err := repo.DesignationTitles(context.Background(), "co-1", nil)

	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestLabelRepository_DesignationTitles_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLabelRepository(mock, nil)
	boom := errors.New("canceling statement due to statement timeout")
	mock.ExpectQuery(`FROM designations`).
		WithArgs("co-1", []string{"des-1"}).
		WillReturnError(boom)

	_, err := repo.DesignationTitles(context.Background(), "co-1", []string{"des-1"})

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to get designation titles")
}
