package analytics

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/scope"
	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/window"
)

// View names a fixed aggregation.
type View string

const (
	ViewAttendance      View = "attendance"
	ViewAttendanceTrend View = "attendance_trend"
	ViewLeave           View = "leave"
	ViewLeaveTrend      View = "leave_trend"
	ViewGrowth          View = "growth"
	ViewPayroll         View = "payroll"
	ViewAssets          View = "assets"
	ViewDepartment      View = "department"
	ViewSalary          View = "salary"
	ViewOvertime        View = "overtime"
	ViewTeamPerformance View = "team_performance"
	ViewNotices         View = "notices"
)

var allViews = []View{
	ViewAttendance,
	ViewAttendanceTrend,
	ViewLeave,
	ViewLeaveTrend,
	ViewGrowth,
	ViewPayroll,
	ViewAssets,
	ViewDepartment,
	ViewSalary,
	ViewOvertime,
	ViewTeamPerformance,
	ViewNotices,
}

func AllViews() []View { return slices.Clone(allViews) }

func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(allViews, v) {
		return v, nil
	}
	return "", ErrUnknownView
}

// BundleRequest asks for one view over one scope and window. Key names the
// result in the joined set; it defaults to the view name so a dashboard can
// request the same view twice under different keys.
type BundleRequest struct {
	Key    string
	View   View
	Scope  *scope.ScopeSet
	Window window.TimeWindow
}

func NewRequest(view View, sc *scope.ScopeSet, win window.TimeWindow) BundleRequest {
	return BundleRequest{View: view, Scope: sc, Window: win}
}

func (r BundleRequest) WithKey(key string) BundleRequest {
	r.Key = key
	return r
}

func (r BundleRequest) ID() string {
	if r.Key != "" {
		return r.Key
	}
	return string(r.View)
}

// Bundle is the output of one view. Data holds the view's typed statistics,
// e.g. *AttendanceStats for ViewAttendance.
type Bundle struct {
	Key    string            `json:"key"`
	View   View              `json:"view"`
	Window window.TimeWindow `json:"window"`
	Data   any               `json:"data"`
}

// BundleSet joins fanned-out results by key. Failed views are kept as missing
// instead of failing the whole set; their errors go to the observer.
type BundleSet struct {
	bundles map[string]Bundle
	missing map[string]struct{}
}

func NewBundleSet() *BundleSet {
	return &BundleSet{
		bundles: make(map[string]Bundle),
		missing: make(map[string]struct{}),
	}
}

func (s *BundleSet) Put(b Bundle) {
	delete(s.missing, b.Key)
	s.bundles[b.Key] = b
}

func (s *BundleSet) MarkMissing(key string) {
	delete(s.bundles, key)
	s.missing[key] = struct{}{}
}

// Missing returns the keys of failed views, sorted.
func (s *BundleSet) Missing() []string {
	keys := make([]string, 0, len(s.missing))
	for k := range s.missing {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the typed data of the bundle stored under key.
func Lookup[T any](s *BundleSet, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	b, ok := s.bundles[key]
	if !ok {
		return zero, false
	}
	data, ok := b.Data.(T)
	return data, ok
}
