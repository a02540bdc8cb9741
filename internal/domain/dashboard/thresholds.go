package dashboard

// RoleThresholds are the alert trip points for one dashboard. Ratios are
// fractions of the relevant population; zero disables a check.
type RoleThresholds struct {
	AbsentRatio          float64 `yaml:"absent_ratio"`
	LateRatio            float64 `yaml:"late_ratio"`
	PendingLeaves        int64   `yaml:"pending_leaves"`
	PendingLeavesRatio   float64 `yaml:"pending_leaves_ratio"`
	PendingAssetRequests int64   `yaml:"pending_asset_requests"`
	InactiveRatio        float64 `yaml:"inactive_ratio"`
}

type AlertThresholds struct {
	Admin      RoleThresholds `yaml:"admin"`
	HRManager  RoleThresholds `yaml:"hr_manager"`
	TeamLeader RoleThresholds `yaml:"team_leader"`
}

// DefaultAlertThresholds returns the thresholds each dashboard shipped with.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		Admin: RoleThresholds{
			AbsentRatio:          0.15,
			LateRatio:            0.10,
			PendingLeaves:        10,
			PendingAssetRequests: 5,
			InactiveRatio:        0.05,
		},
		HRManager: RoleThresholds{
			AbsentRatio:   0.10,
			LateRatio:     0.15,
			PendingLeaves: 10,
		},
		TeamLeader: RoleThresholds{
			AbsentRatio:        0.30,
			LateRatio:          0.20,
			PendingLeavesRatio: 0.50,
		},
	}
}
