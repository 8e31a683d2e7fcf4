package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/domain/swap"
	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/recurrence"
	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Conflicts carry the overlapping schedule ids
	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		ConflictWithDetails(w, conflict.Error(), map[string]string{
			"staff_id":        conflict.StaffID,
			"conflicting_ids": strings.Join(conflict.ConflictingIDs, ","),
		})
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrStaffInactive):
		UnprocessableEntity(w, "Staff member is not active")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrScheduleNotActive):
		UnprocessableEntity(w, "Schedule is not active")
	case errors.Is(err, schedule.ErrScheduleConflict):
		Conflict(w, err.Error())
	case errors.Is(err, schedule.ErrInvalidTransition):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, schedule.ErrNotTemplate):
		UnprocessableEntity(w, "Schedule has no recurrence rule")
	case errors.Is(err, recurrence.ErrInvalidRule):
		BadRequest(w, err.Error(), nil)

	// Shift swap domain errors
	case errors.Is(err, swap.ErrSwapRequestNotFound):
		NotFound(w, "Swap request not found")
	case errors.Is(err, swap.ErrSwapAlreadyProcessed):
		Conflict(w, "Swap request already processed")

	// Time-off domain errors
	case errors.Is(err, timeoff.ErrTimeOffNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, timeoff.ErrTimeOffAlreadyProcessed):
		Conflict(w, "Time-off request already processed")
	case errors.Is(err, timeoff.ErrOverlappingTimeOff):
		Conflict(w, "An overlapping time-off request already exists")
	case errors.Is(err, timeoff.ErrInsufficientBalance):
		UnprocessableEntity(w, "Insufficient vacation balance")
	case errors.Is(err, timeoff.ErrCancelNotPending):
		Conflict(w, "Only pending time-off requests can be cancelled")
	case errors.Is(err, timeoff.ErrBalanceNotFound):
		NotFound(w, "Vacation balance not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
