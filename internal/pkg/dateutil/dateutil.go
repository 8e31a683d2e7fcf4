package dateutil

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Day truncates t to its civil date in t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same civil date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// WorkingDays counts the Monday-Friday dates in [start, end] inclusive,
// skipping dates for which isHoliday returns true. A nil isHoliday counts
// every weekday.
func WorkingDays(start, end time.Time, isHoliday func(time.Time) bool) int {
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		if isHoliday != nil && isHoliday(d) {
			continue
		}
		count++
	}
	return count
}

// MonthsBetween returns the number of whole months elapsed from hire to now,
// never negative.
func MonthsBetween(hire, now time.Time) int {
	years := now.Year() - hire.Year()
	months := int(now.Month()) - int(hire.Month())

	totalMonths := years*12 + months

	// Adjust if the day-of-month hasn't passed yet
	if now.Day() < hire.Day() {
		totalMonths--
	}

	if totalMonths < 0 {
		totalMonths = 0
	}

	return totalMonths
}
