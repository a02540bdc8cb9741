package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthLabel maps a 1-indexed calendar month to its three letter label.
// Out of range months are a programming error.
func MonthLabel(month int) string {
	if month < 1 || month > 12 {
		panic("analytics: month out of range")
	}
	return monthLabels[month-1]
}

// GrowthPercent is (current-prior)/prior*100 rounded to one decimal. A zero
// prior gives 100 when current grew and 0 otherwise. This is an approximation
// for dashboards, not a general percentage-change law.
func GrowthPercent(prior, current int64) float64 {
	if prior == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Round1(float64(current-prior) / float64(prior) * 100)
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func Round1(v float64) float64 { return roundPlaces(v, 1) }

func Round2(v float64) float64 { return roundPlaces(v, 2) }

func roundPlaces(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
