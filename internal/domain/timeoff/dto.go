package timeoff

import (
	"strings"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
)

type RequestTimeOffRequest struct {
	StaffID   string `json:"staff_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`

	RequestedBy string `json:"-"`
}

func (r *RequestTimeOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a YYYY-MM-DD date",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a YYYY-MM-DD date",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed inclusive date range. Valid only after Validate.
func (r *RequestTimeOffRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type ProcessTimeOffRequest struct {
	Decision string  `json:"decision"`
	Notes    *string `json:"notes,omitempty"`

	ProcessedBy string `json:"-"`
}

func (r *ProcessTimeOffRequest) Validate() error {
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

type TimeOffResponse struct {
	ID          string  `json:"id"`
	StaffID     string  `json:"staff_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Type        string  `json:"type"`
	WorkingDays int     `json:"working_days"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason"`
	RequestedBy string  `json:"requested_by"`
	ProcessedBy *string `json:"processed_by,omitempty"`
	ProcessedAt *string `json:"processed_at,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func ToResponse(r TimeOffRequest) TimeOffResponse {
	resp := TimeOffResponse{
		ID:          r.ID,
		StaffID:     r.StaffID,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		Type:        string(r.Type),
		WorkingDays: r.WorkingDays,
		Status:      string(r.Status),
		Reason:      r.Reason,
		RequestedBy: r.RequestedBy,
		ProcessedBy: r.ProcessedBy,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		processedAt := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}

type VacationBalanceResponse struct {
	StaffID     string `json:"staff_id"`
	Year        int    `json:"year"`
	TotalDays   int    `json:"total_days"`
	UsedDays    int    `json:"used_days"`
	CarriedOver int    `json:"carried_over"`
	Remaining   int    `json:"remaining"`
}
