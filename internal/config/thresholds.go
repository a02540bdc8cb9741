package config

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/dashboard"
	"gopkg.in/yaml.v3"
)

// LoadAlertThresholds reads per-role alert thresholds from a YAML file. An
// empty path keeps the defaults; keys missing from the file keep theirs too.
func LoadAlertThresholds(path string) (dashboard.AlertThresholds, error) {
	thresholds := dashboard.DefaultAlertThresholds()
	if path == "" {
		return thresholds, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return thresholds, fmt.Errorf("failed to read ALERT_THRESHOLDS_FILE: %w", err)
	}
	if err := ParseAlertThresholds(raw, &thresholds); err != nil {
		return thresholds, err
	}
	return thresholds, nil
}

// ParseAlertThresholds decodes YAML over t, leaving absent keys untouched.
func ParseAlertThresholds(raw []byte, t *dashboard.AlertThresholds) error {
	if err := yaml.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("failed to parse alert thresholds: %w", err)
	}
	for name, rt := range map[string]dashboard.RoleThresholds{
		"admin":       t.Admin,
		"hr_manager":  t.HRManager,
		"team_leader": t.TeamLeader,
	} {
		if rt.AbsentRatio < 0 || rt.LateRatio < 0 || rt.InactiveRatio < 0 || rt.PendingLeavesRatio < 0 ||
			rt.PendingLeaves < 0 || rt.PendingAssetRequests < 0 {
			return fmt.Errorf("alert thresholds for %s must not be negative", name)
		}
	}
	return nil
}
