package analytics

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/asset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/shopspring/decimal"
)

func (e *EngineImpl) payroll(ctx context.Context, req analytics.BundleRequest) (any, error) {
	// Payrolls are monthly: a payroll belongs to the window when its month starts inside it.
	rows, err := e.repo.GroupPayrolls(ctx, req.Scope.IDs(), window.StartOfMonth(req.Window.Start), req.Window.End)
	if err != nil {
		return nil, err
	}

	type monthAcc struct {
		year, month int
		count       int64
		total       decimal.Decimal
	}

	total := decimal.Zero
	var count int64
	byStatus := map[string]int64{}
	byMonth := map[string]*monthAcc{}
	for _, r := range rows {
		count += r.Count
		total = total.Add(r.Total)
		byStatus[string(r.Status)] += r.Count

		key := monthKey(r.Year, r.Month)
		acc, ok := byMonth[key]
		if !ok {
			acc = &monthAcc{year: r.Year, month: r.Month, total: decimal.Zero}
			byMonth[key] = acc
		}
		acc.count += r.Count
		acc.total = acc.total.Add(r.Total)
	}

	stats := &analytics.PayrollStats{
		Count:    count,
		Total:    total.Round(2).InexactFloat64(),
		ByStatus: make([]analytics.StatusCount, 0, len(byStatus)),
		ByMonth:  make([]analytics.PayrollMonth, 0, len(byMonth)),
	}
	if count > 0 {
		stats.Average = total.DivRound(decimal.NewFromInt(count), 2).InexactFloat64()
	}
	for status, n := range byStatus {
		stats.ByStatus = append(stats.ByStatus, analytics.StatusCount{Status: status, Count: n})
	}
	slices.SortFunc(stats.ByStatus, func(a, b analytics.StatusCount) int {
		return cmp.Compare(a.Status, b.Status)
	})

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		acc := byMonth[k]
		stats.ByMonth = append(stats.ByMonth, analytics.PayrollMonth{
			Month: analytics.MonthLabel(acc.month),
			Year:  acc.year,
			Count: acc.count,
			Total: acc.total.Round(2).InexactFloat64(),
		})
	}
	return stats, nil
}

func (e *EngineImpl) assets(ctx context.Context, req analytics.BundleRequest) (any, error) {
	ids := req.Scope.IDs()

	rows, err := e.repo.GroupAssets(ctx, ids)
	if err != nil {
		return nil, err
	}
	reqRows, err := e.repo.GroupAssetRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	stats := &analytics.AssetStats{ByCategory: []analytics.CategoryCount{}}
	categories := map[string]*analytics.CategoryCount{}
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case asset.StatusAssigned:
			stats.Assigned += r.Count
		case asset.StatusAvailable:
			stats.Available += r.Count
		case asset.StatusMaintenance:
			stats.Maintenance += r.Count
		case asset.StatusRetired:
			stats.Retired += r.Count
		}

		c, ok := categories[r.Category]
		if !ok {
			c = &analytics.CategoryCount{Category: r.Category}
			categories[r.Category] = c
		}
		c.Count += r.Count
		if r.Status == asset.StatusAssigned {
			c.Assigned += r.Count
		}
	}
	stats.Utilization = analytics.Round1(analytics.Percent(float64(stats.Assigned), float64(stats.Total)))

	for _, c := range categories {
		stats.ByCategory = append(stats.ByCategory, *c)
	}
	slices.SortFunc(stats.ByCategory, func(a, b analytics.CategoryCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Category, b.Category))
	})

	for _, r := range reqRows {
		stats.Requests.Total += r.Count
		switch r.Status {
		case asset.RequestPending:
			stats.Requests.Pending += r.Count
		case asset.RequestApproved:
			stats.Requests.Approved += r.Count
		case asset.RequestRejected:
			stats.Requests.Rejected += r.Count
		case asset.RequestFulfilled:
			stats.Requests.Fulfilled += r.Count
		}
	}
	return stats, nil
}
