package schedule

import (
	"strings"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	StaffID        string  `json:"staff_id"`
	Type           string  `json:"type"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`

	// CreatedBy is taken from the authenticated caller, not the body.
	CreatedBy string `json:"-"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an ISO8601 timestamp with timezone",
		})
	}
	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an ISO8601 timestamp with timezone",
		})
	}
	if startOK && endOK && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Times returns the parsed start and end instants. Valid only after Validate.
func (r *CreateScheduleRequest) Times() (time.Time, time.Time) {
	start, _ := validator.IsValidDateTime(r.StartTime)
	end, _ := validator.IsValidDateTime(r.EndTime)
	return start, end
}

type TransitionRequest struct {
	Status string `json:"status"`

	UpdatedBy string `json:"-"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !validator.IsInSlice(r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID               string  `json:"id"`
	StaffID          string  `json:"staff_id"`
	Type             string  `json:"type"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Status           string  `json:"status"`
	RecurrenceRule   *string `json:"recurrence_rule,omitempty"`
	ParentScheduleID *string `json:"parent_schedule_id,omitempty"`
	Location         *string `json:"location,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	GeneratedCount   int     `json:"generated_count,omitempty"`
	CreatedBy        string  `json:"created_by"`
	UpdatedBy        string  `json:"updated_by"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func ToResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:               s.ID,
		StaffID:          s.StaffID,
		Type:             s.Type,
		StartTime:        s.StartTime.Format(time.RFC3339),
		EndTime:          s.EndTime.Format(time.RFC3339),
		Status:           string(s.Status),
		RecurrenceRule:   s.RecurrenceRule,
		ParentScheduleID: s.ParentScheduleID,
		Location:         s.Location,
		Notes:            s.Notes,
		GeneratedCount:   s.GeneratedCount,
		CreatedBy:        s.CreatedBy,
		UpdatedBy:        s.UpdatedBy,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
	}
}

// GenerationResult is the per-occurrence outcome of materializing a recurring
// template. One occurrence failing does not abort the batch.
type GenerationResult struct {
	Date     time.Time
	Schedule *Schedule
	Err      error
}

type GenerationResultResponse struct {
	Date     string            `json:"date"`
	Success  bool              `json:"success"`
	Schedule *ScheduleResponse `json:"schedule,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func ToGenerationResponse(results []GenerationResult) []GenerationResultResponse {
	out := make([]GenerationResultResponse, 0, len(results))
	for _, r := range results {
		item := GenerationResultResponse{
			Date:    r.Date.Format("2006-01-02"),
			Success: r.Err == nil,
		}
		if r.Schedule != nil {
			resp := ToResponse(*r.Schedule)
			item.Schedule = &resp
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	return out
}
