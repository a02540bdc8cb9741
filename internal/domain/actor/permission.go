package actor

type Permission string

const (
	// Self
	PermissionDashboardViewOwn Permission = "dashboard.view_own"

	// Team
	PermissionDashboardViewTeam Permission = "dashboard.view_team"
	PermissionTeamMembersView   Permission = "team.members_view"

	// Organization
	PermissionDashboardViewOrg Permission = "dashboard.view_org"
	PermissionAnalyticsView    Permission = "analytics.view"
	PermissionPayrollView      Permission = "payroll.view"
	PermissionAssetsView       Permission = "assets.view"

	// Shared
	PermissionNoticesView Permission = "notices.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionDashboardViewOwn,
		PermissionDashboardViewTeam,
		PermissionTeamMembersView,
		PermissionDashboardViewOrg,
		PermissionAnalyticsView,
		PermissionPayrollView,
		PermissionAssetsView,
		PermissionNoticesView,
	},
	RoleHRManager: {
		PermissionDashboardViewOwn,
		PermissionDashboardViewOrg,
		PermissionAnalyticsView,
		PermissionPayrollView,
		PermissionAssetsView,
		PermissionNoticesView,
	},
	RoleTeamLeader: {
		PermissionDashboardViewOwn,
		PermissionDashboardViewTeam,
		PermissionTeamMembersView,
		PermissionAnalyticsView,
		PermissionNoticesView,
	},
	RoleEmployee: {
		PermissionDashboardViewOwn,
		PermissionNoticesView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
