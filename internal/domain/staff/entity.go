package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is a read model of the platform staff directory. This service never
// mutates staff records; it only consults them for scheduling decisions.
type Staff struct {
	ID              string
	FullName        string
	Department      string
	Active          bool
	EmploymentType  EmploymentType
	MaxHoursPerWeek int
	HourlyRate      decimal.Decimal
	HireDate        time.Time
	Availability    []AvailabilityWindow
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
	EmploymentTypeCasual   EmploymentType = "casual"
)

// AvailabilityWindow is a weekly recurring window during which the staff
// member can be scheduled. Minutes are measured from local midnight.
type AvailabilityWindow struct {
	DayOfWeek   time.Weekday
	StartMinute int
	EndMinute   int
}

// Covers reports whether the window fully contains [start, end) on the
// window's weekday. Shifts that cross midnight are not covered by a single
// window.
func (w AvailabilityWindow) Covers(start, end time.Time) bool {
	if start.Weekday() != w.DayOfWeek {
		return false
	}
	if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
		return false
	}
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	return startMin >= w.StartMinute && endMin <= w.EndMinute
}

// Available reports whether any of the staff member's windows covers
// [start, end).
func (s Staff) Available(start, end time.Time) bool {
	for _, w := range s.Availability {
		if w.Covers(start, end) {
			return true
		}
	}
	return false
}
