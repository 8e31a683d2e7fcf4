package swap

import (
	"strings"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
)

type RequestSwapRequest struct {
	FromScheduleID string `json:"from_schedule_id"`
	ToStaffID      string `json:"to_staff_id"`
	Reason         string `json:"reason"`

	RequestedBy string `json:"-"`
}

func (r *RequestSwapRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FromScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_schedule_id",
			Message: "from_schedule_id is required",
		})
	}
	if validator.IsEmpty(r.ToStaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_staff_id",
			Message: "to_staff_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessSwapRequest struct {
	Decision string `json:"decision"`

	ProcessedBy string `json:"-"`
}

func (r *ProcessSwapRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Decision, DecisionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: " + strings.Join(DecisionValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SwapRequestResponse struct {
	ID             string  `json:"id"`
	FromScheduleID string  `json:"from_schedule_id"`
	FromStaffID    string  `json:"from_staff_id"`
	ToStaffID      string  `json:"to_staff_id"`
	RequestedBy    string  `json:"requested_by"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ProcessedBy    *string `json:"processed_by,omitempty"`
	ProcessedAt    *string `json:"processed_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func ToResponse(r ShiftSwapRequest) SwapRequestResponse {
	resp := SwapRequestResponse{
		ID:             r.ID,
		FromScheduleID: r.FromScheduleID,
		FromStaffID:    r.FromStaffID,
		ToStaffID:      r.ToStaffID,
		RequestedBy:    r.RequestedBy,
		Reason:         r.Reason,
		Status:         string(r.Status),
		ProcessedBy:    r.ProcessedBy,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		processedAt := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}
