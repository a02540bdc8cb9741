package window

import "time"

// Build resolves a period token against now. The window always ends at now.
func Build(token string, now time.Time) (TimeWindow, error) {
	period, err := ParsePeriod(token)
	if err != nil {
		return TimeWindow{}, err
	}

	w := TimeWindow{Period: period, End: now, Granularity: GranularityDay}
	switch period {
	case PeriodToday:
		w.Start = StartOfDay(now)
	case PeriodWeek:
		w.Start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		w.Start = StartOfMonth(now)
	case PeriodQuarter:
		w.Start = addMonthsClamped(now, -3)
		w.Granularity = GranularityMonth
	case PeriodYear:
		w.Start = StartOfYear(now)
		w.Granularity = GranularityMonth
	}
	return w, nil
}

// BuildOrDefault is Build for advisory periods: an empty or unknown token falls
// back to DefaultPeriod. recovered is true when the fallback was taken.
func BuildOrDefault(token string, now time.Time) (w TimeWindow, recovered bool) {
	w, err := Build(token, now)
	if err == nil {
		return w, false
	}
	w, _ = Build(string(DefaultPeriod), now)
	return w, token != ""
}

// Explicit builds a custom window from caller supplied bounds.
func Explicit(start, end time.Time) (TimeWindow, error) {
	if start.After(end) {
		return TimeWindow{}, ErrInvalidRange
	}
	w := TimeWindow{Period: PeriodCustom, Start: start, End: end, Granularity: GranularityDay}
	if len(w.Days()) > explicitDayLimit {
		w.Granularity = GranularityMonth
	}
	return w, nil
}

// TrailingDays covers the last n calendar days including today, per day.
func TrailingDays(now time.Time, n int) TimeWindow {
	if n < 1 {
		n = 1
	}
	return TimeWindow{
		Period:      PeriodCustom,
		Start:       StartOfDay(now).AddDate(0, 0, -(n - 1)),
		End:         now,
		Granularity: GranularityDay,
	}
}

// TrailingMonths covers the last n calendar months including the current one, per month.
func TrailingMonths(now time.Time, n int) TimeWindow {
	if n < 1 {
		n = 1
	}
	return TimeWindow{
		Period:      PeriodCustom,
		Start:       StartOfMonth(now).AddDate(0, -(n - 1), 0),
		End:         now,
		Granularity: GranularityMonth,
	}
}

// Previous returns the comparable window one period earlier. Calendar periods
// shift by their calendar unit, so month-to-date compares against the same
// span of the previous month. Custom windows shift by their own length.
func (w TimeWindow) Previous() TimeWindow {
	prev := w
	switch w.Period {
	case PeriodToday:
		prev.Start, prev.End = w.Start.AddDate(0, 0, -1), w.End.AddDate(0, 0, -1)
	case PeriodWeek:
		prev.Start, prev.End = w.Start.AddDate(0, 0, -7), w.End.AddDate(0, 0, -7)
	case PeriodMonth:
		prev.Start, prev.End = addMonthsClamped(w.Start, -1), addMonthsClamped(w.End, -1)
	case PeriodQuarter:
		prev.Start, prev.End = addMonthsClamped(w.Start, -3), addMonthsClamped(w.End, -3)
	case PeriodYear:
		prev.Start, prev.End = w.Start.AddDate(-1, 0, 0), addMonthsClamped(w.End, -12)
	default:
		span := w.End.Sub(w.Start)
		prev.End = w.Start.Add(-time.Nanosecond)
		prev.Start = prev.End.Add(-span)
	}
	if !prev.End.Before(w.Start) {
		prev.End = w.Start.Add(-time.Nanosecond)
	}
	if prev.Start.After(prev.End) {
		prev.Start = prev.End
	}
	return prev
}

// addMonthsClamped moves t by n months keeping the day inside the target month,
// so March 31 minus one month is the last day of February rather than March 3.
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
