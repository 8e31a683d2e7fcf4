package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleNotActive = errors.New("schedule is not active")
	ErrScheduleConflict  = errors.New("schedule conflicts with an existing schedule")
	ErrInvalidTransition = errors.New("invalid schedule status transition")
	ErrNotTemplate       = errors.New("schedule is not a recurring template")
)

// ConflictError names every active schedule that overlaps the requested
// window. It unwraps to ErrScheduleConflict so callers can match with
// errors.Is.
type ConflictError struct {
	StaffID        string
	ConflictingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("staff %s already has overlapping schedules: %s",
		e.StaffID, strings.Join(e.ConflictingIDs, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrScheduleConflict
}
