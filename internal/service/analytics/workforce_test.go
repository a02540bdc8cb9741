package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSalaryStats(t *testing.T) {
	salaries := []decimal.Decimal{
		decimal.NewFromInt(29999),
		decimal.NewFromInt(30000),
		decimal.NewFromInt(74999),
		decimal.NewFromInt(150000),
		decimal.NewFromInt(1200000),
	}

	stats := buildSalaryStats(salaries)

	assert.Equal(t, int64(5), stats.Employees)
	assert.Equal(t, 29999.0, stats.Min)
	assert.Equal(t, 1200000.0, stats.Max)
	assert.Equal(t, 296999.6, stats.Average)

	require.Len(t, stats.Buckets, 7)
	counts := map[string]int64{}
	for _, b := range stats.Buckets {
		counts[b.Range] = b.Count
	}
	assert.Equal(t, map[string]int64{
		"0-30000":       1,
		"30000-50000":   1,
		"50000-75000":   1,
		"75000-100000":  0,
		"100000-150000": 0,
		"150000-999999": 1,
		"999999+":       1,
	}, counts)
	assert.Equal(t, 0.0, stats.Buckets[6].Max)
}

func TestBuildSalaryStats_Empty(t *testing.T) {
	stats := buildSalaryStats(nil)

	assert.Equal(t, int64(0), stats.Employees)
	assert.Len(t, stats.Buckets, 7)
	assert.Equal(t, 0.0, stats.Average)
}

func TestProductivityScore(t *testing.T) {
	assert.Equal(t, 0, productivityScore(0, 0, 0, 0))
	// perfect attendance, standard shift, no overtime
	assert.Equal(t, 110, productivityScore(10, 10, 8, 0))
	// overtime costs ten points
	assert.Equal(t, 100, productivityScore(10, 10, 8, 2))
	// share is capped at one
	assert.Equal(t, productivityScore(10, 10, 4, 0), productivityScore(12, 10, 4, 0))
	// nobody showed up
	assert.Equal(t, 40, productivityScore(0, 10, 0, 0))
}
