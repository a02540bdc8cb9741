package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/asset"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

// Seeder is the write surface of the in-memory record store.
type Seeder interface {
	AddDepartment(companyID, id, name string)
	AddDesignation(companyID, id, title string)
	AddEmployee(e employee.Employee)
	AddAttendance(a attendance.Attendance)
	AddLeave(l leave.Leave)
	AddPayroll(p payroll.Payroll)
	AddAsset(a asset.Asset)
	AddAssetRequest(r asset.Request)
	AddNotice(n notice.Notice)
}

// DemoIDs holds the ids of the seeded actors, one per role.
type DemoIDs struct {
	CompanyID   string
	AdminID     string
	HRManagerID string
	LeaderID    string
	EmployeeIDs []string
}

type demoMember struct {
	name        string
	department  string
	designation string
	salary      int64
	joinedAgo   int // days before now
	active      bool
}

var demoDepartments = []string{"Engineering", "People", "Finance"}

var demoDesignations = []string{"Software Engineer", "HR Generalist", "Accountant", "Engineering Lead"}

var demoMembers = []demoMember{
	{"Ayu Lestari", "Engineering", "Software Engineer", 42000, 400, true},
	{"Bima Saputra", "Engineering", "Software Engineer", 58000, 210, true},
	{"Citra Dewi", "Engineering", "Software Engineer", 61000, 45, true},
	{"Dimas Pratama", "Finance", "Accountant", 35000, 300, false},
	{"Eka Putri", "People", "HR Generalist", 28000, 3, true},
}

// SeedDemo loads a small company into s: an admin, an HR manager who
// onboarded a team leader, and the leader's team with two weeks of
// attendance, leaves, payrolls, assets and notices ending at now.
func SeedDemo(s Seeder, now time.Time) DemoIDs {
	ids := DemoIDs{
		CompanyID:   uuid.NewString(),
		AdminID:     uuid.NewString(),
		HRManagerID: uuid.NewString(),
		LeaderID:    uuid.NewString(),
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	departments := make(map[string]string, len(demoDepartments))
	for _, name := range demoDepartments {
		departments[name] = uuid.NewString()
		s.AddDepartment(ids.CompanyID, departments[name], name)
	}
	designations := make(map[string]string, len(demoDesignations))
	for _, title := range demoDesignations {
		designations[title] = uuid.NewString()
		s.AddDesignation(ids.CompanyID, designations[title], title)
	}

	s.AddEmployee(employee.Employee{
		ID:            ids.AdminID,
		CompanyID:     ids.CompanyID,
		Name:          "Organization Admin",
		Email:         "admin@demo.test",
		Role:          "admin",
		IsActive:      true,
		DateOfJoining: today.AddDate(-3, 0, 0),
		Salary:        decimal.NewFromInt(160000),
	})
	s.AddEmployee(employee.Employee{
		ID:            ids.HRManagerID,
		CompanyID:     ids.CompanyID,
		Name:          "Hana Wijaya",
		Email:         "hana@demo.test",
		Role:          "hr_manager",
		AddedBy:       strPtr(ids.AdminID),
		DepartmentID:  strPtr(departments["People"]),
		DesignationID: strPtr(designations["HR Generalist"]),
		IsActive:      true,
		DateOfJoining: today.AddDate(-2, 0, 0),
		Salary:        decimal.NewFromInt(80000),
	})
	s.AddEmployee(employee.Employee{
		ID:            ids.LeaderID,
		CompanyID:     ids.CompanyID,
		Name:          "Rizky Hidayat",
		Email:         "rizky@demo.test",
		Role:          "team_leader",
		AddedBy:       strPtr(ids.HRManagerID),
		DepartmentID:  strPtr(departments["Engineering"]),
		DesignationID: strPtr(designations["Engineering Lead"]),
		IsActive:      true,
		DateOfJoining: today.AddDate(-1, -6, 0),
		Salary:        decimal.NewFromInt(110000),
	})

	for _, m := range demoMembers {
		id := uuid.NewString()
		ids.EmployeeIDs = append(ids.EmployeeIDs, id)
		s.AddEmployee(employee.Employee{
			ID:            id,
			CompanyID:     ids.CompanyID,
			Name:          m.name,
			Role:          "employee",
			AddedBy:       strPtr(ids.HRManagerID),
			ManagerID:     strPtr(ids.LeaderID),
			DepartmentID:  strPtr(departments[m.department]),
			DesignationID: strPtr(designations[m.designation]),
			IsActive:      m.active,
			DateOfJoining: today.AddDate(0, 0, -m.joinedAgo),
			Salary:        decimal.NewFromInt(m.salary),
		})
	}

	everyone := append([]string{ids.HRManagerID, ids.LeaderID}, ids.EmployeeIDs...)
	statuses := []attendance.Status{
		attendance.StatusPresent, attendance.StatusPresent, attendance.StatusLate,
		attendance.StatusPresent, attendance.StatusHalfDay, attendance.StatusAbsent,
	}
	for d := 13; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for i, id := range everyone {
			status := statuses[(i+d)%len(statuses)]
			hours, overtime := 8.0, 0.0
			switch status {
			case attendance.StatusAbsent:
				hours = 0
			case attendance.StatusHalfDay:
				hours = 4
			case attendance.StatusLate:
				hours = 7.5
			}
			if status == attendance.StatusPresent && i%3 == 0 {
				overtime = 1.5
			}
			s.AddAttendance(attendance.Attendance{
				ID:            uuid.NewString(),
				CompanyID:     ids.CompanyID,
				EmployeeID:    id,
				Date:          day,
				Status:        status,
				WorkHours:     hours + overtime,
				OvertimeHours: overtime,
			})
		}
	}

	leaves := []struct {
		employee int
		startAgo int
		days     float64
		kind     string
		status   leave.Status
	}{
		{0, 20, 2, "Annual", leave.StatusApproved},
		{1, 5, 1, "Sick", leave.StatusApproved},
		{2, -3, 3, "Annual", leave.StatusPending},
		{3, -10, 1, "Personal", leave.StatusPending},
		{4, 40, 2, "Annual", leave.StatusRejected},
	}
	for _, l := range leaves {
		start := today.AddDate(0, 0, -l.startAgo)
		s.AddLeave(leave.Leave{
			ID:         uuid.NewString(),
			CompanyID:  ids.CompanyID,
			EmployeeID: ids.EmployeeIDs[l.employee],
			LeaveType:  l.kind,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, int(l.days)-1),
			Days:       l.days,
			Status:     l.status,
			CreatedAt:  start.AddDate(0, 0, -7),
		})
	}

	for back := 2; back >= 0; back-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -back, 0)
		status := payroll.StatusPaid
		if back == 0 {
			status = payroll.StatusPending
		}
		for i, id := range ids.EmployeeIDs {
			s.AddPayroll(payroll.Payroll{
				ID:         uuid.NewString(),
				CompanyID:  ids.CompanyID,
				EmployeeID: id,
				Month:      int(month.Month()),
				Year:       month.Year(),
				NetSalary:  decimal.NewFromInt(demoMembers[i].salary).Div(decimal.NewFromInt(12)).Round(2),
				Status:     status,
				CreatedAt:  month,
			})
		}
	}

	assets := []struct {
		name, category string
		status         asset.Status
		holder         int // index into EmployeeIDs, -1 for none
	}{
		{"MacBook Pro 14", "Laptop", asset.StatusAssigned, 0},
		{"ThinkPad X1", "Laptop", asset.StatusAssigned, 1},
		{"ThinkPad T14", "Laptop", asset.StatusAvailable, -1},
		{"Dell U2723QE", "Monitor", asset.StatusAssigned, 2},
		{"Pixel 8", "Phone", asset.StatusMaintenance, -1},
	}
	for _, a := range assets {
		item := asset.Asset{
			ID:        uuid.NewString(),
			CompanyID: ids.CompanyID,
			Name:      a.name,
			Category:  a.category,
			Status:    a.status,
			AddedBy:   strPtr(ids.HRManagerID),
			Price:     decimal.NewFromInt(1500),
		}
		if a.holder >= 0 {
			item.AssignedTo = strPtr(ids.EmployeeIDs[a.holder])
		}
		s.AddAsset(item)
	}
	for i, status := range []asset.RequestStatus{asset.RequestPending, asset.RequestApproved, asset.RequestPending} {
		s.AddAssetRequest(asset.Request{
			ID:         uuid.NewString(),
			CompanyID:  ids.CompanyID,
			EmployeeID: ids.EmployeeIDs[i+2],
			Status:     status,
			CreatedAt:  today.AddDate(0, 0, -i),
		})
	}

	expired := today.AddDate(0, 0, -1)
	s.AddNotice(notice.Notice{
		ID:        uuid.NewString(),
		CompanyID: ids.CompanyID,
		Title:     "Office closed for maintenance",
		CreatedBy: ids.AdminID,
		CreatedAt: today.AddDate(0, 0, -2),
	})
	s.AddNotice(notice.Notice{
		ID:        uuid.NewString(),
		CompanyID: ids.CompanyID,
		Title:     "Sprint review moved to Thursday",
		CreatedBy: ids.LeaderID,
		CreatedAt: today.AddDate(0, 0, -4),
	})
	s.AddNotice(notice.Notice{
		ID:        uuid.NewString(),
		CompanyID: ids.CompanyID,
		Title:     "Submit timesheets",
		CreatedBy: ids.LeaderID,
		ExpiresAt: &expired,
		CreatedAt: today.AddDate(0, 0, -9),
	})

	return ids
}
