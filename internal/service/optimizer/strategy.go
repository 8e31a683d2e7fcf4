package optimizer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
)

// Strategy produces bulk shift-to-staff assignments. Implementations never
// write schedules; committing an assignment goes through the schedule service
// so the conflict invariant cannot be bypassed.
type Strategy interface {
	Optimize(ctx context.Context, input OptimizeInput) (OptimizeResult, error)
}

// Interval is a half-open [Start, End) time window.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// StaffProfile is the optimizer's view of one staff member: who they are,
// when they can work, and when they are already committed.
type StaffProfile struct {
	StaffID         string                     `json:"staff_id"`
	FullName        string                     `json:"full_name"`
	Department      string                     `json:"department"`
	EmploymentType  staff.EmploymentType       `json:"employment_type"`
	MaxHoursPerWeek int                        `json:"max_hours_per_week"`
	HourlyRate      decimal.Decimal            `json:"hourly_rate"`
	Availability    []staff.AvailabilityWindow `json:"availability,omitempty"`
	Busy            []Interval                 `json:"busy,omitempty"`
	TimeOff         []Interval                 `json:"time_off,omitempty"`
}

// ShiftRequirement is one shift that needs an owner.
type ShiftRequirement struct {
	ShiftID  string    `json:"shift_id"`
	Type     string    `json:"type"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location *string   `json:"location,omitempty"`
}

type Constraints struct {
	MaxHoursPerWeek    int `json:"max_hours_per_week"`
	MinRestHours       int `json:"min_rest_between_shifts"`
	MaxConsecutiveDays int `json:"max_consecutive_days"`
}

// DefaultConstraints mirrors the optimization backend's defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxHoursPerWeek:    38,
		MinRestHours:       11,
		MaxConsecutiveDays: 6,
	}
}

type OptimizeInput struct {
	Staff       []StaffProfile
	Shifts      []ShiftRequirement
	Constraints Constraints
}

// Assignment pairs a shift with a staff member and a suitability score in
// [0, 1].
type Assignment struct {
	StaffID string  `json:"staff_id"`
	ShiftID string  `json:"shift_id"`
	Score   float64 `json:"score"`
}

type OptimizeResult struct {
	Assignments []Assignment       `json:"assignments"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Violations  []string           `json:"violations,omitempty"`
}
