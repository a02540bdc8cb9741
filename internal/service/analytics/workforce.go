package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/shopspring/decimal"
)

const unassignedLabel = "Unassigned"

// salaryBoundaries are the lower edges of the salary distribution buckets.
var salaryBoundaries = []int64{0, 30000, 50000, 75000, 100000, 150000, 999999}

func (e *EngineImpl) growth(ctx context.Context, req analytics.BundleRequest) (any, error) {
	ids := req.Scope.IDs()
	now := req.Window.End

	counts, err := e.repo.CountEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}

	thisMonth := window.StartOfMonth(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	thisYear := window.StartOfYear(now)
	lastYear := thisYear.AddDate(-1, 0, 0)

	ranges := [4][2]time.Time{
		{thisMonth, now},
		{lastMonth, thisMonth.Add(-time.Nanosecond)},
		{thisYear, now},
		{lastYear, thisYear.Add(-time.Nanosecond)},
	}
	var joined [4]int64
	for i, r := range ranges {
		joined[i], err = e.repo.CountJoinings(ctx, ids, r[0], r[1])
		if err != nil {
			return nil, err
		}
	}

	return &analytics.GrowthStats{
		TotalEmployees:    counts.Total,
		ActiveEmployees:   counts.Active,
		InactiveEmployees: counts.Inactive,
		ThisMonth:         joined[0],
		LastMonth:         joined[1],
		MonthlyChange:     analytics.GrowthPercent(joined[1], joined[0]),
		ThisYear:          joined[2],
		LastYear:          joined[3],
		GrowthPercentage:  analytics.GrowthPercent(joined[3], joined[2]),
	}, nil
}

func (e *EngineImpl) department(ctx context.Context, req analytics.BundleRequest) (any, error) {
	ids := req.Scope.IDs()
	companyID := req.Scope.CompanyID()

	deptRows, err := e.repo.GroupByDepartment(ctx, ids)
	if err != nil {
		return nil, err
	}
	desigRows, err := e.repo.GroupByDesignation(ctx, ids)
	if err != nil {
		return nil, err
	}

	deptIDs := make([]string, 0, len(deptRows))
	for _, r := range deptRows {
		if r.DepartmentID != nil {
			deptIDs = append(deptIDs, *r.DepartmentID)
		}
	}
	desigIDs := make([]string, 0, len(desigRows))
	for _, r := range desigRows {
		if r.DesignationID != nil {
			desigIDs = append(desigIDs, *r.DesignationID)
		}
	}

	names, err := e.departmentNames(ctx, companyID, deptIDs)
	if err != nil {
		return nil, err
	}
	titles, err := e.designationTitles(ctx, companyID, desigIDs)
	if err != nil {
		return nil, err
	}

	stats := &analytics.DepartmentStats{
		Departments:  make([]analytics.DepartmentStat, 0, len(deptRows)),
		Designations: make([]analytics.DesignationStat, 0, len(desigRows)),
	}
	for _, r := range deptRows {
		stat := analytics.DepartmentStat{Name: unassignedLabel, Count: r.Count}
		if r.DepartmentID != nil {
			stat.ID = *r.DepartmentID
			stat.Name = labelOr(names, stat.ID)
		}
		if r.Count > 0 {
			stat.AvgSalary = r.TotalSalary.DivRound(decimal.NewFromInt(r.Count), 2).InexactFloat64()
		}
		stats.Departments = append(stats.Departments, stat)
	}
	for _, r := range desigRows {
		stat := analytics.DesignationStat{Title: unassignedLabel, Count: r.Count}
		if r.DesignationID != nil {
			stat.ID = *r.DesignationID
			stat.Title = labelOr(titles, stat.ID)
		}
		stats.Designations = append(stats.Designations, stat)
	}

	slices.SortFunc(stats.Departments, func(a, b analytics.DepartmentStat) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Name, b.Name))
	})
	slices.SortFunc(stats.Designations, func(a, b analytics.DesignationStat) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Title, b.Title))
	})
	return stats, nil
}

func (e *EngineImpl) departmentNames(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	if e.labels == nil || len(ids) == 0 {
		return map[string]string{}, nil
	}
	return e.labels.DepartmentNames(ctx, companyID, ids)
}

func (e *EngineImpl) designationTitles(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	if e.labels == nil || len(ids) == 0 {
		return map[string]string{}, nil
	}
	return e.labels.DesignationTitles(ctx, companyID, ids)
}

func labelOr(labels map[string]string, id string) string {
	if name, ok := labels[id]; ok && name != "" {
		return name
	}
	return id
}

func (e *EngineImpl) salary(ctx context.Context, req analytics.BundleRequest) (any, error) {
	salaries, err := e.repo.ListSalaries(ctx, req.Scope.IDs())
	if err != nil {
		return nil, err
	}
	return buildSalaryStats(salaries), nil
}

func buildSalaryStats(salaries []decimal.Decimal) *analytics.SalaryStats {
	stats := &analytics.SalaryStats{Buckets: salaryBuckets()}
	if len(salaries) == 0 {
		return stats
	}

	total := decimal.Zero
	lowest, highest := salaries[0], salaries[0]
	for _, s := range salaries {
		total = total.Add(s)
		if s.LessThan(lowest) {
			lowest = s
		}
		if s.GreaterThan(highest) {
			highest = s
		}
		stats.Buckets[bucketIndex(s)].Count++
	}

	stats.Employees = int64(len(salaries))
	stats.Total = total.Round(2).InexactFloat64()
	stats.Average = total.DivRound(decimal.NewFromInt(stats.Employees), 2).InexactFloat64()
	stats.Min = lowest.Round(2).InexactFloat64()
	stats.Max = highest.Round(2).InexactFloat64()
	return stats
}

func salaryBuckets() []analytics.SalaryBucket {
	buckets := make([]analytics.SalaryBucket, 0, len(salaryBoundaries))
	for i, lo := range salaryBoundaries {
		if i+1 < len(salaryBoundaries) {
			hi := salaryBoundaries[i+1]
			buckets = append(buckets, analytics.SalaryBucket{
				Range: fmt.Sprintf("%d-%d", lo, hi),
				Min:   float64(lo),
				Max:   float64(hi),
			})
			continue
		}
		buckets = append(buckets, analytics.SalaryBucket{
			Range: fmt.Sprintf("%d+", lo),
			Min:   float64(lo),
		})
	}
	return buckets
}

// bucketIndex finds the bucket whose range holds s; lower edges are inclusive.
func bucketIndex(s decimal.Decimal) int {
	idx := 0
	for i, lo := range salaryBoundaries {
		if s.GreaterThanOrEqual(decimal.NewFromInt(lo)) {
			idx = i
		}
	}
	return idx
}
