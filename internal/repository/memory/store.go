package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/asset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/shopspring/decimal"
)

type label struct {
	companyID string
	name      string
}

// Store is an in-process record store. It answers the same questions as the
// PostgreSQL repositories and is safe for concurrent readers.
type Store struct {
	mu sync.RWMutex

	departments   map[string]label
	designations  map[string]label
	employees     map[string]employee.Employee
	attendances   []attendance.Attendance
	leaves        []leave.Leave
	payrolls      []payroll.Payroll
	assets        []asset.Asset
	assetRequests []asset.Request
	notices       []notice.Notice
}

var (
	_ scope.Repository          = (*Store)(nil)
	_ analytics.Repository      = (*Store)(nil)
	_ analytics.LabelRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		departments:  make(map[string]label),
		designations: make(map[string]label),
		employees:    make(map[string]employee.Employee),
	}
}

// ========== SEEDING ==========

func (s *Store) AddDepartment(companyID, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[id] = label{companyID: companyID, name: name}
}

func (s *Store) AddDesignation(companyID, id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.designations[id] = label{companyID: companyID, name: title}
}

func (s *Store) AddEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// AddAttendance stores a record, replacing any existing one for the same employee and day.
func (s *Store) AddAttendance(a attendance.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := window.StartOfDay(a.Date)
	s.attendances = slices.DeleteFunc(s.attendances, func(x attendance.Attendance) bool {
		return x.EmployeeID == a.EmployeeID && window.StartOfDay(x.Date).Equal(day)
	})
	s.attendances = append(s.attendances, a)
}

func (s *Store) AddLeave(l leave.Leave) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves = append(s.leaves, l)
}

func (s *Store) AddPayroll(p payroll.Payroll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payrolls = append(s.payrolls, p)
}

func (s *Store) AddAsset(a asset.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, a)
}

func (s *Store) AddAssetRequest(r asset.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assetRequests = append(s.assetRequests, r)
}

func (s *Store) AddNotice(n notice.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// ========== SCOPE ==========

func (s *Store) ListCompanyEmployees(ctx context.Context, companyID string) ([]string, error) {
	return s.employeeIDs(ctx, func(e employee.Employee) bool {
		return e.CompanyID == companyID
	})
}

func (s *Store) ListAddedBy(ctx context.Context, companyID string, actorID string) ([]string, error) {
	return s.employeeIDs(ctx, func(e employee.Employee) bool {
		return e.CompanyID == companyID && e.AddedBy != nil && *e.AddedBy == actorID
	})
}

func (s *Store) ListTeam(ctx context.Context, companyID string, leaderID string) ([]string, error) {
	return s.employeeIDs(ctx, func(e employee.Employee) bool {
		return e.CompanyID == companyID && e.IsActive && e.ReportsTo(leaderID)
	})
}

func (s *Store) GetRelations(ctx context.Context, companyID string, employeeID string) (*employee.Relations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.employees[employeeID]
	if !ok || e.CompanyID != companyID {
		return nil, employee.ErrEmployeeNotFound
	}
	rel := e.RelationsOf()
	return &rel, nil
}

func (s *Store) employeeIDs(ctx context.Context, match func(employee.Employee) bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, e := range s.employees {
		if match(e) {
			ids = append(ids, e.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// ========== EMPLOYEES ==========

// inScope returns the stored employees whose IDs are listed. Caller holds the read lock.
func (s *Store) inScope(ids []string) []employee.Employee {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) CountEmployees(ctx context.Context, employeeIDs []string) (*analytics.EmployeeCounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := &analytics.EmployeeCounts{}
	for _, e := range s.inScope(employeeIDs) {
		counts.Total++
		if e.IsActive {
			counts.Active++
		} else {
			counts.Inactive++
		}
	}
	return counts, nil
}

func (s *Store) ListActiveIDs(ctx context.Context, employeeIDs []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, e := range s.inScope(employeeIDs) {
		if e.IsActive {
			ids = append(ids, e.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) CountJoinings(ctx context.Context, employeeIDs []string, from, to time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	span := window.TimeWindow{Start: from, End: to}
	for _, e := range s.inScope(employeeIDs) {
		if span.ContainsDate(e.DateOfJoining) {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.inScope(employeeIDs)
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *Store) ListSalaries(ctx context.Context, employeeIDs []string) ([]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []decimal.Decimal{}
	for _, e := range s.inScope(employeeIDs) {
		if e.IsActive {
			out = append(out, e.Salary)
		}
	}
	return out, nil
}

func (s *Store) GroupByDepartment(ctx context.Context, employeeIDs []string) ([]analytics.DepartmentRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := map[string]*analytics.DepartmentRow{}
	for _, e := range s.inScope(employeeIDs) {
		if !e.IsActive {
			continue
		}
		key := deref(e.DepartmentID)
		row, ok := groups[key]
		if !ok {
			row = &analytics.DepartmentRow{DepartmentID: e.DepartmentID, TotalSalary: decimal.Zero}
			groups[key] = row
		}
		row.Count++
		row.TotalSalary = row.TotalSalary.Add(e.Salary)
	}
	rows := make([]analytics.DepartmentRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	return rows, nil
}

func (s *Store) GroupByDesignation(ctx context.Context, employeeIDs []string) ([]analytics.DesignationRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := map[string]*analytics.DesignationRow{}
	for _, e := range s.inScope(employeeIDs) {
		if !e.IsActive {
			continue
		}
		key := deref(e.DesignationID)
		row, ok := groups[key]
		if !ok {
			row = &analytics.DesignationRow{DesignationID: e.DesignationID}
			groups[key] = row
		}
		row.Count++
	}
	rows := make([]analytics.DesignationRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	return rows, nil
}

// ========== ATTENDANCE ==========

// attendanceIn returns the records of employeeIDs whose calendar day falls in [from, to]. Caller holds the read lock.
func (s *Store) attendanceIn(employeeIDs []string, from, to time.Time) []attendance.Attendance {
	ids := index(employeeIDs)
	span := window.TimeWindow{Start: from, End: to}
	var out []attendance.Attendance
	for _, a := range s.attendances {
		if _, ok := ids[a.EmployeeID]; ok && span.ContainsDate(a.Date) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) GetAttendanceTotals(ctx context.Context, employeeIDs []string, from, to time.Time) (*analytics.AttendanceTotals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := &analytics.AttendanceTotals{}
	overtimeMembers := map[string]struct{}{}
	for _, a := range s.attendanceIn(employeeIDs, from, to) {
		totals.Records++
		countStatus(a.Status, &totals.Present, &totals.Late, &totals.HalfDay, &totals.Absent)
		totals.TotalHours += a.WorkHours
		if a.OvertimeHours > 0 {
			totals.OvertimeHours += a.OvertimeHours
			totals.OvertimeRecords++
			overtimeMembers[a.EmployeeID] = struct{}{}
		}
	}
	totals.OvertimeMembers = int64(len(overtimeMembers))
	return totals, nil
}

func (s *Store) GroupAttendanceByBucket(ctx context.Context, employeeIDs []string, from, to time.Time, granularity window.Granularity) ([]analytics.AttendanceBucketRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := map[time.Time]*analytics.AttendanceBucketRow{}
	for _, a := range s.attendanceIn(employeeIDs, from, to) {
		bucket := window.BucketOf(window.DateIn(a.Date, from.Location()), granularity)
		row, ok := groups[bucket]
		if !ok {
			row = &analytics.AttendanceBucketRow{Bucket: bucket}
			groups[bucket] = row
		}
		countStatus(a.Status, &row.Present, &row.Late, &row.HalfDay, &row.Absent)
	}
	rows := make([]analytics.AttendanceBucketRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b analytics.AttendanceBucketRow) int {
		return a.Bucket.Compare(b.Bucket)
	})
	return rows, nil
}

func (s *Store) GroupAttendanceByEmployee(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.MemberAttendanceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := map[string]*analytics.MemberAttendanceRow{}
	for _, a := range s.attendanceIn(employeeIDs, from, to) {
		row, ok := groups[a.EmployeeID]
		if !ok {
			row = &analytics.MemberAttendanceRow{EmployeeID: a.EmployeeID}
			groups[a.EmployeeID] = row
		}
		countStatus(a.Status, &row.Present, &row.Late, &row.HalfDay, &row.Absent)
		row.TotalHours += a.WorkHours
		row.OvertimeHours += a.OvertimeHours
	}
	rows := make([]analytics.MemberAttendanceRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b analytics.MemberAttendanceRow) int {
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
	return rows, nil
}

func countStatus(status attendance.Status, present, late, halfDay, absent *int64) {
	switch status {
	case attendance.StatusPresent:
		*present++
	case attendance.StatusLate:
		*late++
	case attendance.StatusHalfDay:
		*halfDay++
	case attendance.StatusAbsent:
		*absent++
	}
}

// ========== LEAVE / PAYROLL ==========

func (s *Store) GroupLeaves(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.LeaveGroupRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	type key struct {
		year, month int
		status      leave.Status
	}
	groups := map[key]*analytics.LeaveGroupRow{}
	for _, l := range s.leaves {
		if _, ok := ids[l.EmployeeID]; !ok || !between(l.CreatedAt, from, to) {
			continue
		}
		filed := l.CreatedAt.In(from.Location())
		k := key{year: filed.Year(), month: int(filed.Month()), status: l.Status}
		row, ok := groups[k]
		if !ok {
			row = &analytics.LeaveGroupRow{Year: k.year, Month: k.month, Status: k.status}
			groups[k] = row
		}
		row.Count++
		row.Days += l.Days
	}
	rows := make([]analytics.LeaveGroupRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b analytics.LeaveGroupRow) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month), cmp.Compare(a.Status, b.Status))
	})
	return rows, nil
}

func (s *Store) CountPendingLeaves(ctx context.Context, employeeIDs []string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	var n int64
	for _, l := range s.leaves {
		if _, ok := ids[l.EmployeeID]; ok && l.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}

func (s *Store) GroupPayrolls(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.PayrollGroupRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	type key struct {
		year, month int
		status      payroll.Status
	}
	groups := map[key]*analytics.PayrollGroupRow{}
	for _, p := range s.payrolls {
		if _, ok := ids[p.EmployeeID]; !ok || !between(p.PeriodStart(from.Location()), from, to) {
			continue
		}
		k := key{year: p.Year, month: p.Month, status: p.Status}
		row, ok := groups[k]
		if !ok {
			row = &analytics.PayrollGroupRow{Year: k.year, Month: k.month, Status: k.status, Total: decimal.Zero}
			groups[k] = row
		}
		row.Count++
		row.Total = row.Total.Add(p.NetSalary)
	}
	rows := make([]analytics.PayrollGroupRow, 0, len(groups))
	for _, r := range groups {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b analytics.PayrollGroupRow) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month), cmp.Compare(a.Status, b.Status))
	})
	return rows, nil
}

// ========== ASSETS ==========

func (s *Store) GroupAssets(ctx context.Context, employeeIDs []string) ([]analytics.AssetGroupRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	type key struct {
		category string
		status   asset.Status
	}
	groups := map[key]int64{}
	for _, a := range s.assets {
		_, assigned := ids[deref(a.AssignedTo)]
		_, added := ids[deref(a.AddedBy)]
		if !assigned && !added {
			continue
		}
		groups[key{category: a.Category, status: a.Status}]++
	}
	rows := make([]analytics.AssetGroupRow, 0, len(groups))
	for k, n := range groups {
		rows = append(rows, analytics.AssetGroupRow{Category: k.category, Status: k.status, Count: n})
	}
	slices.SortFunc(rows, func(a, b analytics.AssetGroupRow) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Status, b.Status))
	})
	return rows, nil
}

func (s *Store) GroupAssetRequests(ctx context.Context, employeeIDs []string) ([]analytics.AssetRequestGroupRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	groups := map[asset.RequestStatus]int64{}
	for _, r := range s.assetRequests {
		if _, ok := ids[r.EmployeeID]; ok {
			groups[r.Status]++
		}
	}
	rows := make([]analytics.AssetRequestGroupRow, 0, len(groups))
	for status, n := range groups {
		rows = append(rows, analytics.AssetRequestGroupRow{Status: status, Count: n})
	}
	slices.SortFunc(rows, func(a, b analytics.AssetRequestGroupRow) int {
		return cmp.Compare(a.Status, b.Status)
	})
	return rows, nil
}

// ========== NOTICES / RECENT ==========

func (s *Store) CountNotices(ctx context.Context, authorIDs []string, from, to time.Time, at time.Time) (*analytics.NoticeCounts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	authors := index(authorIDs)
	counts := &analytics.NoticeCounts{}
	for _, n := range s.notices {
		if _, ok := authors[n.CreatedBy]; !ok {
			continue
		}
		if between(n.CreatedAt, from, to) {
			counts.Total++
		}
		if n.ActiveAt(at) {
			counts.Active++
		}
	}
	return counts, nil
}

func (s *Store) ListRecentJoiners(ctx context.Context, employeeIDs []string, limit int) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.inScope(employeeIDs)
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return cmp.Or(b.DateOfJoining.Compare(a.DateOfJoining), cmp.Compare(a.ID, b.ID))
	})
	return head(out, limit), nil
}

func (s *Store) ListRecentLeaves(ctx context.Context, employeeIDs []string, limit int) ([]leave.Leave, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := index(employeeIDs)
	var out []leave.Leave
	for _, l := range s.leaves {
		if _, ok := ids[l.EmployeeID]; ok {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b leave.Leave) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return head(out, limit), nil
}

func (s *Store) ListRecentNotices(ctx context.Context, authorIDs []string, limit int) ([]notice.Notice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	authors := index(authorIDs)
	var out []notice.Notice
	for _, n := range s.notices {
		if _, ok := authors[n.CreatedBy]; ok {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b notice.Notice) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return head(out, limit), nil
}

// ========== LABELS ==========

func (s *Store) DepartmentNames(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	return s.labels(ctx, s.departments, companyID, ids)
}

func (s *Store) DesignationTitles(ctx context.Context, companyID string, ids []string) (map[string]string, error) {
	return s.labels(ctx, s.designations, companyID, ids)
}

func (s *Store) labels(ctx context.Context, source map[string]label, companyID string, ids []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if l, ok := source[id]; ok && l.companyID == companyID {
			out[id] = l.name
		}
	}
	return out, nil
}

// ========== HELPERS ==========

func between(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func index(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func head[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	if items == nil {
		return []T{}
	}
	return items
}
