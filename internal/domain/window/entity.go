package window

import (
	"strings"
	"time"
)

type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// DefaultPeriod is used when a period is advisory and the caller sent none or garbage.
const DefaultPeriod = PeriodMonth

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// explicitDayLimit is the longest explicit range still bucketed per day.
const explicitDayLimit = 62

// TimeWindow is a closed range: both Start and End are included.
type TimeWindow struct {
	Period      Period      `json:"period"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	}
	return "", ErrInvalidPeriod
}

// Contains reports whether t falls inside the window, ends included.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ContainsDate reports whether the calendar day of d is touched by the window.
// Used for date-valued records such as attendance days, whose instant carries
// no meaning beyond the day.
func (w TimeWindow) ContainsDate(d time.Time) bool {
	day := DateIn(d, w.Start.Location())
	return !day.Before(w.DayStart()) && !day.After(w.End)
}

// DayStart is the midnight of the first day the window touches.
func (w TimeWindow) DayStart() time.Time {
	return StartOfDay(w.Start)
}

func (w TimeWindow) SingleDay() bool {
	return StartOfDay(w.Start).Equal(StartOfDay(w.End))
}

// Days returns the days touched by the window, in order.
func (w TimeWindow) Days() []time.Time {
	var days []time.Time
	for d := StartOfDay(w.Start); !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays counts the Monday to Friday days touched by the window.
// A single-day window always counts as one working day.
func (w TimeWindow) WorkingDays() int {
	if w.SingleDay() {
		return 1
	}
	return countWorkingDays(w.Days())
}

// Buckets returns the bucket start of every bucket the window touches at its granularity.
func (w TimeWindow) Buckets() []time.Time {
	if w.Granularity != GranularityMonth {
		return w.Days()
	}
	var buckets []time.Time
	for m := StartOfMonth(w.Start); !m.After(w.End); m = m.AddDate(0, 1, 0) {
		buckets = append(buckets, m)
	}
	return buckets
}

// BucketWorkingDays counts working days of bucket that are inside the window.
func (w TimeWindow) BucketWorkingDays(bucket time.Time) int {
	if w.SingleDay() {
		return 1
	}
	var days []time.Time
	next := bucket.AddDate(0, 0, 1)
	if w.Granularity == GranularityMonth {
		next = bucket.AddDate(0, 1, 0)
	}
	for _, d := range w.Days() {
		if !d.Before(bucket) && d.Before(next) {
			days = append(days, d)
		}
	}
	return countWorkingDays(days)
}

// BucketOf truncates t to the bucket it belongs to at granularity g.
func BucketOf(t time.Time, g Granularity) time.Time {
	if g == GranularityMonth {
		return StartOfMonth(t)
	}
	return StartOfDay(t)
}

// BucketLabel formats a bucket start the way trend series expose it.
func BucketLabel(t time.Time, g Granularity) string {
	if g == GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// DateIn places the calendar day of d at midnight in loc without converting
// the instant, so a date stored as UTC midnight keeps its day anywhere.
func DateIn(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func countWorkingDays(days []time.Time) int {
	count := 0
	for _, d := range days {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
