package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		prior, current int64
		want           float64
	}{
		{0, 0, 0},
		{0, 5, 100},
		{10, 15, 50},
		{10, 5, -50},
		{3, 4, 33.3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GrowthPercent(tt.prior, tt.current), "prior=%d current=%d", tt.prior, tt.current)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 33.3, Round1(Percent(1, 3)))
	assert.Equal(t, 0.67, Round2(2.0/3.0))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(1))
	assert.Equal(t, "Dec", MonthLabel(12))
	assert.Panics(t, func() { MonthLabel(0) })
	assert.Panics(t, func() { MonthLabel(13) })
}

func TestParseView(t *testing.T) {
	v, err := ParseView(" Team_Performance ")
	require.NoError(t, err)
	assert.Equal(t, ViewTeamPerformance, v)

	_, err = ParseView("headcount")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestBundleSet(t *testing.T) {
	set := NewBundleSet()
	set.Put(Bundle{Key: "leave", View: ViewLeave, Data: &LeaveStats{Pending: 3}})
	set.MarkMissing("payroll")

	stats, ok := Lookup[*LeaveStats](set, "leave")
	require.True(t, ok)
	assert.Equal(t, int64(3), stats.Pending)

	_, ok = Lookup[*PayrollStats](set, "leave")
	assert.False(t, ok, "wrong type")
	_, ok = Lookup[*PayrollStats](nil, "payroll")
	assert.False(t, ok)

	assert.Equal(t, []string{"payroll"}, set.Missing())

	// A late success replaces the failure.
	set.Put(Bundle{Key: "payroll", View: ViewPayroll, Data: &PayrollStats{}})
	assert.Empty(t, set.Missing())
	_, ok = Lookup[*PayrollStats](set, "payroll")
	assert.True(t, ok)

	// and a late failure replaces the success
	set.MarkMissing("leave")
	_, ok = Lookup[*LeaveStats](set, "leave")
	assert.False(t, ok)
	assert.Equal(t, []string{"leave"}, set.Missing())
}

func TestBundleRequest_ID(t *testing.T) {
	req := BundleRequest{View: ViewAttendance}
	assert.Equal(t, "attendance", req.ID())
	assert.Equal(t, "today_attendance", req.WithKey("today_attendance").ID())
}
