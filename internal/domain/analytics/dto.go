package analytics

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// ========== ATTENDANCE ==========

// AttendanceStats counts employee-day slots. Absent is derived from the slots
// that have no effective presence, so employees without a record are absent.
type AttendanceStats struct {
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	HalfDay        int64   `json:"halfDay"`
	Absent         int64   `json:"absent"`
	TotalEmployees int     `json:"totalEmployees"`
	WorkingDays    int     `json:"workingDays"`
	ExpectedSlots  int64   `json:"expectedSlots"`
	Rate           float64 `json:"rate"`
	TotalHours     float64 `json:"totalHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	AvgHoursWorked float64 `json:"avgHoursWorked"`
	Change         *Change `json:"change,omitempty"`
}

// EffectivePresent is present + late + half day.
func (a *AttendanceStats) EffectivePresent() int64 {
	return a.Present + a.Late + a.HalfDay
}

// Change compares a rate against the previous window, in percentage points.
type Change struct {
	Previous float64 `json:"previous"`
	Delta    float64 `json:"delta"`
}

type TrendPoint struct {
	Date    string `json:"date"`
	Present int64  `json:"present"` // effective presence
	Absent  int64  `json:"absent"`
	Late    int64  `json:"late"`
	Total   int64  `json:"total"`
}

type AttendanceTrend struct {
	Granularity window.Granularity `json:"granularity"`
	Points      []TrendPoint       `json:"points"`
}

// ========== LEAVE ==========

// LeaveStats counts requests filed inside the window. PendingBacklog is every
// request still awaiting a decision, whenever it was filed.
type LeaveStats struct {
	Pending        int64   `json:"pending"`
	PendingBacklog int64   `json:"pendingBacklog"`
	Approved     int64   `json:"approved"`
	Rejected     int64   `json:"rejected"`
	Total        int64   `json:"total"`
	ApprovalRate float64 `json:"approvalRate"`
	TotalDays    float64 `json:"totalDays"`
	ApprovedDays float64 `json:"approvedDays"`
	Utilization  float64 `json:"utilization"`
	Change       *Change `json:"change,omitempty"`
}

type LeaveMonth struct {
	Month        string  `json:"month"` // Jan..Dec
	MonthNumber  int     `json:"monthNumber"`
	Year         int     `json:"year"`
	Pending      int64   `json:"pending"`
	Approved     int64   `json:"approved"`
	Rejected     int64   `json:"rejected"`
	Total        int64   `json:"total"`
	ApprovalRate float64 `json:"approvalRate"`
}

type LeaveTrend struct {
	Months []LeaveMonth `json:"months"`
}

// ========== GROWTH ==========

type GrowthStats struct {
	TotalEmployees    int64   `json:"totalEmployees"`
	ActiveEmployees   int64   `json:"activeEmployees"`
	InactiveEmployees int64   `json:"inactiveEmployees"`
	ThisMonth         int64   `json:"thisMonth"`
	LastMonth         int64   `json:"lastMonth"`
	MonthlyChange     float64 `json:"monthlyChange"`
	ThisYear          int64   `json:"thisYear"`
	LastYear          int64   `json:"lastYear"`
	GrowthPercentage  float64 `json:"growthPercentage"`
}

// ========== PAYROLL ==========

type PayrollStats struct {
	Count    int64          `json:"count"`
	Total    float64        `json:"total"`
	Average  float64        `json:"average"`
	ByStatus []StatusCount  `json:"byStatus"`
	ByMonth  []PayrollMonth `json:"byMonth"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PayrollMonth struct {
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// ========== ASSETS ==========

type AssetStats struct {
	Total       int64             `json:"total"`
	Assigned    int64             `json:"assigned"`
	Available   int64             `json:"available"`
	Maintenance int64             `json:"maintenance"`
	Retired     int64             `json:"retired"`
	Utilization float64           `json:"utilization"`
	ByCategory  []CategoryCount   `json:"byCategory"`
	Requests    AssetRequestStats `json:"requests"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Assigned int64  `json:"assigned"`
}

type AssetRequestStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Fulfilled int64 `json:"fulfilled"`
}

// ========== DEPARTMENT / SALARY ==========

type DepartmentStats struct {
	Departments  []DepartmentStat  `json:"departments"`
	Designations []DesignationStat `json:"designations"`
}

type DepartmentStat struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Count     int64   `json:"count"`
	AvgSalary float64 `json:"avgSalary"`
}

type DesignationStat struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Count int64  `json:"count"`
}

type SalaryStats struct {
	Employees int64          `json:"employees"`
	Total     float64        `json:"total"`
	Average   float64        `json:"average"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Buckets   []SalaryBucket `json:"buckets"`
}

type SalaryBucket struct {
	Range string  `json:"range"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// ========== TEAM ==========

type OvertimeStats struct {
	TotalOvertime         float64 `json:"totalOvertime"`
	AverageOvertime       float64 `json:"averageOvertime"`
	EmployeesWithOvertime int64   `json:"employeesWithOvertime"`
}

type MemberPerformance struct {
	EmployeeID     string  `json:"employeeId"`
	Name           string  `json:"name"`
	Email          string  `json:"email,omitempty"`
	IsActive       bool    `json:"isActive"`
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	HalfDay        int64   `json:"halfDay"`
	Absent         int64   `json:"absent"`
	AttendanceRate float64 `json:"attendanceRate"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
	TotalOvertime  float64 `json:"totalOvertime"`
}

type TeamPerformance struct {
	TeamSize          int                 `json:"teamSize"`
	Members           []MemberPerformance `json:"members"`
	ProductivityScore int                 `json:"productivityScore"`
}

type NoticeStats struct {
	TotalSent   int64 `json:"totalNoticesSent"`
	Active      int64 `json:"activeNotices"`
	TeamMembers int   `json:"teamMembers"`
}

// ========== RECENT ACTIVITY ==========

type RecentActivity struct {
	Joiners []JoinerItem `json:"recentEmployees"`
	Leaves  []LeaveItem  `json:"recentLeaves"`
	Notices []NoticeItem `json:"recentNotices"`
}

type JoinerItem struct {
	EmployeeID    string    `json:"employeeId"`
	Name          string    `json:"name"`
	DateOfJoining time.Time `json:"dateOfJoining"`
}

type LeaveItem struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	LeaveType  string    `json:"leaveType"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"startDate"`
	Days       float64   `json:"days"`
}

type NoticeItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedBy string     `json:"createdBy"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
