package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/analytics"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/asset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const employeeColumns = `
	id::text, company_id::text, name, email, role,
	added_by::text, manager_id::text, department_id::text, designation_id::text,
	is_active, date_of_joining, salary::text
`

type analyticsRepositoryImpl struct {
	db    database.Querier
	guard *database.Guard
}

func NewAnalyticsRepository(db database.Querier, guard *database.Guard) analytics.Repository {
	return &analyticsRepositoryImpl{db: db, guard: guard}
}

// collect runs a multi-row query through the guard and maps every row with fn.
func collect[T any](ctx context.Context, r *analyticsRepositoryImpl, fn pgx.RowToFunc[T], query string, args ...any) ([]T, error) {
	var out []T
	err := r.guard.Do(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, fn)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// queryRow runs a single-row query through the guard.
func (r *analyticsRepositoryImpl) queryRow(ctx context.Context, query string, args []any, dest ...any) error {
	return r.guard.Do(ctx, func(ctx context.Context) error {
		return r.db.QueryRow(ctx, query, args...).Scan(dest...)
	})
}

// ========== EMPLOYEES ==========

// CountEmployees returns total, active and inactive in a single query
func (r *analyticsRepositoryImpl) CountEmployees(ctx context.Context, employeeIDs []string) (*analytics.EmployeeCounts, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN is_active = true THEN 1 ELSE 0 END), 0) as active,
			COALESCE(SUM(CASE WHEN is_active = false THEN 1 ELSE 0 END), 0) as inactive
		FROM employees
		WHERE id = ANY($1::uuid[])
	`

	var counts analytics.EmployeeCounts
	if err := r.queryRow(ctx, query, []any{employeeIDs}, &counts.Total, &counts.Active, &counts.Inactive); err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	return &counts, nil
}

// ListActiveIDs keeps the active employees among employeeIDs
func (r *analyticsRepositoryImpl) ListActiveIDs(ctx context.Context, employeeIDs []string) ([]string, error) {
	query := `
		SELECT id::text
		FROM employees
		WHERE id = ANY($1::uuid[]) AND is_active = true
		ORDER BY id
	`
	out, err := collect(ctx, r, pgx.RowTo[string], query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return out, nil
}

// CountJoinings counts employees whose joining date falls in the range
func (r *analyticsRepositoryImpl) CountJoinings(ctx context.Context, employeeIDs []string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM employees
		WHERE id = ANY($1::uuid[])
		AND date_of_joining BETWEEN $2::date AND $3::date
	`

	var n int64
	if err := r.queryRow(ctx, query, []any{employeeIDs, from, to}, &n); err != nil {
		return 0, fmt.Errorf("failed to count joinings: %w", err)
	}
	return n, nil
}

func (r *analyticsRepositoryImpl) ListEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = ANY($1::uuid[])
		ORDER BY name, id
	`
	out, err := collect(ctx, r, scanEmployee, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return out, nil
}

func scanEmployee(row pgx.CollectableRow) (employee.Employee, error) {
	var e employee.Employee
	var salary string
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.Email, &e.Role,
		&e.AddedBy, &e.ManagerID, &e.DepartmentID, &e.DesignationID,
		&e.IsActive, &e.DateOfJoining, &salary,
	)
	if err != nil {
		return e, err
	}
	e.Salary, err = decimal.NewFromString(salary)
	return e, err
}

// ListSalaries returns the salaries of active employees
func (r *analyticsRepositoryImpl) ListSalaries(ctx context.Context, employeeIDs []string) ([]decimal.Decimal, error) {
	query := `
		SELECT salary::text
		FROM employees
		WHERE id = ANY($1::uuid[]) AND is_active = true
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (decimal.Decimal, error) {
		var s string
		if err := row.Scan(&s); err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(s)
	}, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	return out, nil
}

func (r *analyticsRepositoryImpl) GroupByDepartment(ctx context.Context, employeeIDs []string) ([]analytics.DepartmentRow, error) {
	query := `
		SELECT department_id::text, COUNT(*), COALESCE(SUM(salary), 0)::text
		FROM employees
		WHERE id = ANY($1::uuid[]) AND is_active = true
		GROUP BY department_id
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.DepartmentRow, error) {
		var d analytics.DepartmentRow
		var total string
		if err := row.Scan(&d.DepartmentID, &d.Count, &total); err != nil {
			return d, err
		}
		var err error
		d.TotalSalary, err = decimal.NewFromString(total)
		return d, err
	}, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group employees by department: %w", err)
	}
	return out, nil
}

func (r *analyticsRepositoryImpl) GroupByDesignation(ctx context.Context, employeeIDs []string) ([]analytics.DesignationRow, error) {
	query := `
		SELECT designation_id::text, COUNT(*)
		FROM employees
		WHERE id = ANY($1::uuid[]) AND is_active = true
		GROUP BY designation_id
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.DesignationRow, error) {
		var d analytics.DesignationRow
		err := row.Scan(&d.DesignationID, &d.Count)
		return d, err
	}, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group employees by designation: %w", err)
	}
	return out, nil
}

// ========== ATTENDANCE ==========

const attendanceStatusColumns = `
	COALESCE(SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END), 0) as present,
	COALESCE(SUM(CASE WHEN status = 'Late' THEN 1 ELSE 0 END), 0) as late,
	COALESCE(SUM(CASE WHEN status = 'Half Day' THEN 1 ELSE 0 END), 0) as half_day,
	COALESCE(SUM(CASE WHEN status = 'Absent' THEN 1 ELSE 0 END), 0) as absent
`

// GetAttendanceTotals returns status counts, hours and overtime in a single query
func (r *analyticsRepositoryImpl) GetAttendanceTotals(ctx context.Context, employeeIDs []string, from, to time.Time) (*analytics.AttendanceTotals, error) {
	query := `
		SELECT ` + attendanceStatusColumns + `,
			COUNT(*) as records,
			COALESCE(SUM(work_hours), 0)::float8 as total_hours,
			COALESCE(SUM(overtime_hours) FILTER (WHERE overtime_hours > 0), 0)::float8 as overtime_hours,
			COUNT(*) FILTER (WHERE overtime_hours > 0) as overtime_records,
			COUNT(DISTINCT employee_id) FILTER (WHERE overtime_hours > 0) as overtime_members
		FROM attendances
		WHERE employee_id = ANY($1::uuid[])
		AND date BETWEEN $2::date AND $3::date
	`

	var t analytics.AttendanceTotals
	err := r.queryRow(ctx, query, []any{employeeIDs, from, to},
		&t.Present, &t.Late, &t.HalfDay, &t.Absent,
		&t.Records, &t.TotalHours, &t.OvertimeHours, &t.OvertimeRecords, &t.OvertimeMembers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance totals: %w", err)
	}
	return &t, nil
}

// GroupAttendanceByBucket returns status counts per day or month
func (r *analyticsRepositoryImpl) GroupAttendanceByBucket(ctx context.Context, employeeIDs []string, from, to time.Time, granularity window.Granularity) ([]analytics.AttendanceBucketRow, error) {
	query := `
		SELECT date_trunc($4, date)::date as bucket, ` + attendanceStatusColumns + `
		FROM attendances
		WHERE employee_id = ANY($1::uuid[])
		AND date BETWEEN $2::date AND $3::date
		GROUP BY bucket
		ORDER BY bucket
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.AttendanceBucketRow, error) {
		var b analytics.AttendanceBucketRow
		err := row.Scan(&b.Bucket, &b.Present, &b.Late, &b.HalfDay, &b.Absent)
		return b, err
	}, query, employeeIDs, from, to, string(granularity))
	if err != nil {
		return nil, fmt.Errorf("failed to group attendance by %s: %w", granularity, err)
	}
	return out, nil
}

// GroupAttendanceByEmployee returns status counts and hours per employee
func (r *analyticsRepositoryImpl) GroupAttendanceByEmployee(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.MemberAttendanceRow, error) {
	query := `
		SELECT employee_id::text, ` + attendanceStatusColumns + `,
			COALESCE(SUM(work_hours), 0)::float8 as total_hours,
			COALESCE(SUM(overtime_hours), 0)::float8 as overtime_hours
		FROM attendances
		WHERE employee_id = ANY($1::uuid[])
		AND date BETWEEN $2::date AND $3::date
		GROUP BY employee_id
		ORDER BY employee_id
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.MemberAttendanceRow, error) {
		var m analytics.MemberAttendanceRow
		err := row.Scan(&m.EmployeeID, &m.Present, &m.Late, &m.HalfDay, &m.Absent, &m.TotalHours, &m.OvertimeHours)
		return m, err
	}, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group attendance by employee: %w", err)
	}
	return out, nil
}

// ========== LEAVE / PAYROLL ==========

// GroupLeaves returns counts and days per filing month and status
func (r *analyticsRepositoryImpl) GroupLeaves(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.LeaveGroupRow, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM created_at)::int as year,
			EXTRACT(MONTH FROM created_at)::int as month,
			status,
			COUNT(*),
			COALESCE(SUM(days), 0)::float8
		FROM leaves
		WHERE employee_id = ANY($1::uuid[])
		AND created_at BETWEEN $2 AND $3
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.LeaveGroupRow, error) {
		var l analytics.LeaveGroupRow
		var status string
		err := row.Scan(&l.Year, &l.Month, &status, &l.Count, &l.Days)
		l.Status = leave.Status(status)
		return l, err
	}, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group leaves: %w", err)
	}
	return out, nil
}

// CountPendingLeaves counts the pending backlog regardless of filing date
func (r *analyticsRepositoryImpl) CountPendingLeaves(ctx context.Context, employeeIDs []string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM leaves
		WHERE employee_id = ANY($1::uuid[]) AND status = 'Pending'
	`

	var n int64
	if err := r.queryRow(ctx, query, []any{employeeIDs}, &n); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return n, nil
}

// GroupPayrolls returns counts and net totals per payroll month and status
func (r *analyticsRepositoryImpl) GroupPayrolls(ctx context.Context, employeeIDs []string, from, to time.Time) ([]analytics.PayrollGroupRow, error) {
	query := `
		SELECT year, month, status, COUNT(*), COALESCE(SUM(net_salary), 0)::text
		FROM payrolls
		WHERE employee_id = ANY($1::uuid[])
		AND make_date(year, month, 1) BETWEEN $2::date AND $3::date
		GROUP BY year, month, status
		ORDER BY year, month, status
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.PayrollGroupRow, error) {
		var p analytics.PayrollGroupRow
		var status, total string
		if err := row.Scan(&p.Year, &p.Month, &status, &p.Count, &total); err != nil {
			return p, err
		}
		p.Status = payroll.Status(status)
		var err error
		p.Total, err = decimal.NewFromString(total)
		return p, err
	}, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group payrolls: %w", err)
	}
	return out, nil
}

// ========== ASSETS ==========

// GroupAssets counts assets assigned to or added by the employees
func (r *analyticsRepositoryImpl) GroupAssets(ctx context.Context, employeeIDs []string) ([]analytics.AssetGroupRow, error) {
	query := `
		SELECT category, status, COUNT(*)
		FROM assets
		WHERE assigned_to = ANY($1::uuid[]) OR added_by = ANY($1::uuid[])
		GROUP BY category, status
		ORDER BY category, status
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.AssetGroupRow, error) {
		var a analytics.AssetGroupRow
		var status string
		err := row.Scan(&a.Category, &status, &a.Count)
		a.Status = asset.Status(status)
		return a, err
	}, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group assets: %w", err)
	}
	return out, nil
}

// GroupAssetRequests counts every asset request of the employees by status
func (r *analyticsRepositoryImpl) GroupAssetRequests(ctx context.Context, employeeIDs []string) ([]analytics.AssetRequestGroupRow, error) {
	query := `
		SELECT status, COUNT(*)
		FROM asset_requests
		WHERE employee_id = ANY($1::uuid[])
		GROUP BY status
		ORDER BY status
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (analytics.AssetRequestGroupRow, error) {
		var a analytics.AssetRequestGroupRow
		var status string
		err := row.Scan(&status, &a.Count)
		a.Status = asset.RequestStatus(status)
		return a, err
	}, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to group asset requests: %w", err)
	}
	return out, nil
}

// ========== NOTICES / RECENT ==========

// CountNotices counts notices created in range and notices still active at the given instant
func (r *analyticsRepositoryImpl) CountNotices(ctx context.Context, authorIDs []string, from, to time.Time, at time.Time) (*analytics.NoticeCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE created_at BETWEEN $2 AND $3) as total,
			COUNT(*) FILTER (WHERE expires_at IS NULL OR expires_at > $4) as active
		FROM notices
		WHERE created_by = ANY($1::uuid[])
	`

	var c analytics.NoticeCounts
	if err := r.queryRow(ctx, query, []any{authorIDs, from, to, at}, &c.Total, &c.Active); err != nil {
		return nil, fmt.Errorf("failed to count notices: %w", err)
	}
	return &c, nil
}

func (r *analyticsRepositoryImpl) ListRecentJoiners(ctx context.Context, employeeIDs []string, limit int) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = ANY($1::uuid[])
		ORDER BY date_of_joining DESC, id
		LIMIT $2
	`
	out, err := collect(ctx, r, scanEmployee, query, employeeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent joiners: %w", err)
	}
	return out, nil
}

func (r *analyticsRepositoryImpl) ListRecentLeaves(ctx context.Context, employeeIDs []string, limit int) ([]leave.Leave, error) {
	query := `
		SELECT id::text, company_id::text, employee_id::text, leave_type,
			start_date, end_date, days::float8, status, created_at
		FROM leaves
		WHERE employee_id = ANY($1::uuid[])
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (leave.Leave, error) {
		var l leave.Leave
		var status string
		err := row.Scan(&l.ID, &l.CompanyID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Days, &status, &l.CreatedAt)
		l.Status = leave.Status(status)
		return l, err
	}, query, employeeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent leaves: %w", err)
	}
	return out, nil
}

func (r *analyticsRepositoryImpl) ListRecentNotices(ctx context.Context, authorIDs []string, limit int) ([]notice.Notice, error) {
	query := `
		SELECT id::text, company_id::text, title, created_by::text, expires_at, created_at
		FROM notices
		WHERE created_by = ANY($1::uuid[])
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	out, err := collect(ctx, r, func(row pgx.CollectableRow) (notice.Notice, error) {
		var n notice.Notice
		err := row.Scan(&n.ID, &n.CompanyID, &n.Title, &n.CreatedBy, &n.ExpiresAt, &n.CreatedAt)
		return n, err
	}, query, authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent notices: %w", err)
	}
	return out, nil
}
