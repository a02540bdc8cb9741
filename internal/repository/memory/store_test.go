package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newStore() *Store {
	s := NewStore()
	s.AddDepartment("co-1", "d1", "Engineering")
	s.AddDepartment("co-2", "d2", "Sales")
	s.AddEmployee(employee.Employee{ID: "tl", CompanyID: "co-1", IsActive: true, Salary: decimal.NewFromInt(100)})
	s.AddEmployee(employee.Employee{ID: "e1", CompanyID: "co-1", ManagerID: strPtr("tl"), DepartmentID: strPtr("d1"), IsActive: true, Salary: decimal.NewFromInt(50)})
	s.AddEmployee(employee.Employee{ID: "e2", CompanyID: "co-1", AddedBy: strPtr("tl"), IsActive: true, Salary: decimal.NewFromInt(40)})
	s.AddEmployee(employee.Employee{ID: "x1", CompanyID: "co-2", ManagerID: strPtr("tl"), IsActive: true})
	return s
}

func TestStore_ListTeam_StaysInCompany(t *testing.T) {
	s := newStore()

	ids, err := s.ListTeam(context.Background(), "co-1", "tl")

	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, ids)
}

func TestStore_GetRelations(t *testing.T) {
	s := newStore()

	rel, err := s.GetRelations(context.Background(), "co-1", "e1")
	require.NoError(t, err)
	assert.Equal(t, "tl", *rel.ManagerID)

	_, err = s.GetRelations(context.Background(), "co-2", "e1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestStore_RespectsCancellation(t *testing.T) {
	s := newStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListCompanyEmployees(ctx, "co-1")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.GroupLeaves(ctx, []string{"e1"}, time.Time{}, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_DepartmentNames_ScopedByCompany(t *testing.T) {
	s := newStore()

	names, err := s.DepartmentNames(context.Background(), "co-1", []string{"d1", "d2"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"d1": "Engineering"}, names)
}

func TestStore_GroupByDepartment_ActiveOnly(t *testing.T) {
	s := newStore()
	s.AddEmployee(employee.Employee{ID: "e3", CompanyID: "co-1", DepartmentID: strPtr("d1"), IsActive: false, Salary: decimal.NewFromInt(999)})

	rows, err := s.GroupByDepartment(context.Background(), []string{"e1", "e2", "e3"})

	require.NoError(t, err)
	total := int64(0)
	for _, r := range rows {
		total += r.Count
	}
	assert.Equal(t, int64(2), total)
}

func TestStore_GroupAttendanceByBucket_Months(t *testing.T) {
	s := newStore()
	for i, d := range []time.Time{
		time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	} {
		s.AddAttendance(attendance.Attendance{ID: string(rune('a' + i)), EmployeeID: "e1", Date: d, Status: attendance.StatusPresent})
	}

	rows, err := s.GroupAttendanceByBucket(context.Background(), []string{"e1"},
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		window.GranularityMonth)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, time.January, rows[0].Bucket.Month())
	assert.Equal(t, int64(1), rows[0].Present)
	assert.Equal(t, time.March, rows[1].Bucket.Month())
	assert.Equal(t, int64(2), rows[1].Present)
}

func TestStore_GetAttendanceTotals_WestOfUTC(t *testing.T) {
	// Setup
	s := newStore()
	bogota := time.FixedZone("COT", -5*3600)
	s.AddAttendance(attendance.Attendance{ID: "a1", EmployeeID: "e1", Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent})
	s.AddAttendance(attendance.Attendance{ID: "a2", EmployeeID: "e1", Date: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), Status: attendance.StatusLate})

	// Act
	totals, err := s.GetAttendanceTotals(context.Background(), []string{"e1"},
		time.Date(2024, time.March, 1, 0, 0, 0, 0, bogota),
		time.Date(2024, time.March, 10, 23, 59, 59, 0, bogota))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Present)
	assert.Equal(t, int64(0), totals.Late)
}

func TestStore_ListActiveIDs(t *testing.T) {
	s := newStore()
	s.AddEmployee(employee.Employee{ID: "e3", CompanyID: "co-1", IsActive: false})

	ids, err := s.ListActiveIDs(context.Background(), []string{"tl", "e3", "e1", "ghost"})

	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "tl"}, ids)
}

func TestStore_GroupLeaves(t *testing.T) {
	// Setup
	s := newStore()
	march := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	s.AddLeave(leave.Leave{ID: "l1", EmployeeID: "e1", StartDate: march, CreatedAt: march.AddDate(0, 0, -1), Days: 2, Status: leave.StatusApproved})
	// filed in March for a May start: counted in March
	s.AddLeave(leave.Leave{ID: "l2", EmployeeID: "e2", StartDate: march.AddDate(0, 2, 0), CreatedAt: march.AddDate(0, 0, 3), Days: 1, Status: leave.StatusApproved})
	// March start filed in February: outside the range
	s.AddLeave(leave.Leave{ID: "l3", EmployeeID: "e2", StartDate: march, CreatedAt: march.AddDate(0, -1, 0), Days: 4, Status: leave.StatusApproved})
	s.AddLeave(leave.Leave{ID: "l4", EmployeeID: "x1", StartDate: march, CreatedAt: march, Days: 5, Status: leave.StatusApproved})

	// Act
	rows, err := s.GroupLeaves(context.Background(), []string{"e1", "e2"}, march.AddDate(0, 0, -3), march.AddDate(0, 1, 0))

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 3, rows[0].Month)
	assert.Equal(t, int64(2), rows[0].Count)
	assert.Equal(t, 3.0, rows[0].Days)
}

func TestStore_CountPendingLeaves(t *testing.T) {
	s := newStore()
	filed := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	s.AddLeave(leave.Leave{ID: "l1", EmployeeID: "e1", CreatedAt: filed, Status: leave.StatusPending})
	s.AddLeave(leave.Leave{ID: "l2", EmployeeID: "e2", CreatedAt: filed.AddDate(1, 0, 0), Status: leave.StatusPending})
	s.AddLeave(leave.Leave{ID: "l3", EmployeeID: "e2", CreatedAt: filed, Status: leave.StatusApproved})
	s.AddLeave(leave.Leave{ID: "l4", EmployeeID: "x1", CreatedAt: filed, Status: leave.StatusPending})

	n, err := s.CountPendingLeaves(context.Background(), []string{"e1", "e2"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
