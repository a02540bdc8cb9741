package analytics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/asset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/shopspring/decimal"
)

// EmployeeCounts combines total/active/inactive counts in a single query
type EmployeeCounts struct {
	Total    int64
	Active   int64
	Inactive int64
}

// AttendanceTotals are raw status counts over a range of days
type AttendanceTotals struct {
	Present         int64
	Late            int64
	HalfDay         int64
	Absent          int64 // records explicitly marked Absent
	Records         int64
	TotalHours      float64
	OvertimeHours   float64
	OvertimeRecords int64
	OvertimeMembers int64 // distinct employees with overtime
}

// AttendanceBucketRow is one day or month of status counts
type AttendanceBucketRow struct {
	Bucket  time.Time
	Present int64
	Late    int64
	HalfDay int64
	Absent  int64
}

// MemberAttendanceRow is one employee's status counts over a range
type MemberAttendanceRow struct {
	EmployeeID    string
	Present       int64
	Late          int64
	HalfDay       int64
	Absent        int64
	TotalHours    float64
	OvertimeHours float64
}

type LeaveGroupRow struct {
	Year   int
	Month  int
	Status leave.Status
	Count  int64
	Days   float64
}

type PayrollGroupRow struct {
	Year   int
	Month  int
	Status payroll.Status
	Count  int64
	Total  decimal.Decimal
}

type AssetGroupRow struct {
	Category string
	Status   asset.Status
	Count    int64
}

type AssetRequestGroupRow struct {
	Status asset.RequestStatus
	Count  int64
}

type DepartmentRow struct {
	DepartmentID *string
	Count        int64
	TotalSalary  decimal.Decimal
}

type DesignationRow struct {
	DesignationID *string
	Count         int64
}

type NoticeCounts struct {
	Total  int64 // created inside the range
	Active int64 // not expired, any creation date
}

// Repository is the read side of the record store. Every method filters by
// the supplied employee (or author) IDs and nothing wider; date ranges are
// inclusive on both ends.
type Repository interface {
	CountEmployees(ctx context.Context, employeeIDs []string) (*EmployeeCounts, error)
	// ListActiveIDs narrows employeeIDs to the active employees, sorted.
	ListActiveIDs(ctx context.Context, employeeIDs []string) ([]string, error)
	CountJoinings(ctx context.Context, employeeIDs []string, from, to time.Time) (int64, error)
	ListEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error)
	ListSalaries(ctx context.Context, employeeIDs []string) ([]decimal.Decimal, error)
	GroupByDepartment(ctx context.Context, employeeIDs []string) ([]DepartmentRow, error)
	GroupByDesignation(ctx context.Context, employeeIDs []string) ([]DesignationRow, error)

	GetAttendanceTotals(ctx context.Context, employeeIDs []string, from, to time.Time) (*AttendanceTotals, error)
	GroupAttendanceByBucket(ctx context.Context, employeeIDs []string, from, to time.Time, granularity window.Granularity) ([]AttendanceBucketRow, error)
	GroupAttendanceByEmployee(ctx context.Context, employeeIDs []string, from, to time.Time) ([]MemberAttendanceRow, error)

	// GroupLeaves buckets leave requests by the month they were filed in.
	GroupLeaves(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LeaveGroupRow, error)
	// CountPendingLeaves counts every pending request, whenever it was filed.
	CountPendingLeaves(ctx context.Context, employeeIDs []string) (int64, error)
	GroupPayrolls(ctx context.Context, employeeIDs []string, from, to time.Time) ([]PayrollGroupRow, error)
	GroupAssets(ctx context.Context, employeeIDs []string) ([]AssetGroupRow, error)
	GroupAssetRequests(ctx context.Context, employeeIDs []string) ([]AssetRequestGroupRow, error)

	// CountNotices counts notices created in [from, to] and notices still active at at.
	CountNotices(ctx context.Context, authorIDs []string, from, to time.Time, at time.Time) (*NoticeCounts, error)

	ListRecentJoiners(ctx context.Context, employeeIDs []string, limit int) ([]employee.Employee, error)
	ListRecentLeaves(ctx context.Context, employeeIDs []string, limit int) ([]leave.Leave, error)
	ListRecentNotices(ctx context.Context, authorIDs []string, limit int) ([]notice.Notice, error)
}

// LabelRepository resolves foreign keys to display labels as a separate lookup.
type LabelRepository interface {
	DepartmentNames(ctx context.Context, companyID string, ids []string) (map[string]string, error)
	DesignationTitles(ctx context.Context, companyID string, ids []string) (map[string]string, error)
}
