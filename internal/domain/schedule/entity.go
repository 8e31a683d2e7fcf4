package schedule

import "time"

// Schedule is a single shift owned by one staff member. Schedules are never
// deleted, only cancelled, so history stays reconstructable.
type Schedule struct {
	ID               string
	StaffID          string
	Type             string
	StartTime        time.Time
	EndTime          time.Time
	Status           Status
	RecurrenceRule   *string
	ParentScheduleID *string
	Location         *string
	Notes            *string

	// Generation counters, maintained on templates only.
	GeneratedCount int
	CancelledCount int

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCancelled),
}

// Active reports whether the schedule occupies its staff member's time for
// conflict purposes.
func (s Schedule) Active() bool {
	return s.Status == StatusScheduled || s.Status == StatusInProgress
}

// IsTemplate reports whether the schedule is a recurring template: it carries
// a recurrence rule and is not itself a generated child.
func (s Schedule) IsTemplate() bool {
	return s.RecurrenceRule != nil && *s.RecurrenceRule != "" && s.ParentScheduleID == nil
}

// Duration returns the shift length.
func (s Schedule) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// CanTransitionTo reports whether moving to next is a legal status change:
// scheduled->in_progress->completed, and scheduled/in_progress->cancelled.
func (s Schedule) CanTransitionTo(next Status) bool {
	switch s.Status {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}
