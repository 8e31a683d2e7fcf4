package optimizer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/validator"
)

// assembleLimit bounds concurrent per-staff data loads.
const assembleLimit = 8

// ScheduleService is the slice of the schedule service the optimizer needs.
// Committing an assignment goes through Create, so every optimizer write is
// subject to the same conflict check as a manual one.
type ScheduleService interface {
	ListByStaffInRange(ctx context.Context, staffID string, from, to time.Time) ([]schedule.Schedule, error)
	Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.Schedule, error)
}

type Service struct {
	staffRepo   staff.StaffRepository
	timeOffRepo timeoff.TimeOffRequestRepository
	schedules   ScheduleService
	strategy    Strategy
}

func NewService(
	staffRepo staff.StaffRepository,
	timeOffRepo timeoff.TimeOffRequestRepository,
	schedules ScheduleService,
	strategy Strategy,
) *Service {
	return &Service{
		staffRepo:   staffRepo,
		timeOffRepo: timeOffRepo,
		schedules:   schedules,
		strategy:    strategy,
	}
}

type OptimizeAssignmentsRequest struct {
	WindowStart time.Time          `json:"window_start"`
	WindowEnd   time.Time          `json:"window_end"`
	Department  string             `json:"department,omitempty"`
	Shifts      []ShiftRequirement `json:"shifts"`
	Constraints *Constraints       `json:"constraints,omitempty"`
}

func (r *OptimizeAssignmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WindowStart.IsZero() || r.WindowEnd.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "window_start",
			Message: "window_start and window_end are required",
		})
	} else if !r.WindowStart.Before(r.WindowEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "window_start",
			Message: "window_start must be before window_end",
		})
	}

	if len(r.Shifts) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "shifts",
			Message: "at least one shift is required",
		})
	}
	for i, shift := range r.Shifts {
		if validator.IsEmpty(shift.ShiftID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("shifts[%d].shift_id", i),
				Message: "shift_id is required",
			})
		}
		if !shift.Start.Before(shift.End) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("shifts[%d].start", i),
				Message: "start must be before end",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// OptimizeAssignments assembles each candidate's commitments for the window
// and runs the configured strategy over them. It proposes assignments; it
// writes nothing.
func (s *Service) OptimizeAssignments(ctx context.Context, req OptimizeAssignmentsRequest) (OptimizeResult, error) {
	if err := req.Validate(); err != nil {
		return OptimizeResult{}, err
	}

	var (
		members []staff.Staff
		err     error
	)
	if req.Department != "" {
		members, err = s.staffRepo.ListActiveByDepartment(ctx, req.Department)
	} else {
		members, err = s.staffRepo.ListActive(ctx)
	}
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("failed to list staff: %w", err)
	}

	profiles := make([]StaffProfile, len(members))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(assembleLimit)
	for i, member := range members {
		i, member := i, member
		g.Go(func() error {
			profile, err := s.assembleProfile(gctx, member, req.WindowStart, req.WindowEnd)
			if err != nil {
				return err
			}
			profiles[i] = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return OptimizeResult{}, err
	}

	constraints := DefaultConstraints()
	if req.Constraints != nil {
		constraints = *req.Constraints
	}

	return s.strategy.Optimize(ctx, OptimizeInput{
		Staff:       profiles,
		Shifts:      req.Shifts,
		Constraints: constraints,
	})
}

func (s *Service) assembleProfile(ctx context.Context, member staff.Staff, from, to time.Time) (StaffProfile, error) {
	profile := StaffProfile{
		StaffID:         member.ID,
		FullName:        member.FullName,
		Department:      member.Department,
		EmploymentType:  member.EmploymentType,
		MaxHoursPerWeek: member.MaxHoursPerWeek,
		HourlyRate:      member.HourlyRate,
		Availability:    member.Availability,
	}

	schedules, err := s.schedules.ListByStaffInRange(ctx, member.ID, from, to)
	if err != nil {
		return StaffProfile{}, fmt.Errorf("failed to load schedules for %s: %w", member.ID, err)
	}
	for _, sched := range schedules {
		if !sched.Active() {
			continue
		}
		profile.Busy = append(profile.Busy, Interval{Start: sched.StartTime, End: sched.EndTime})
	}

	timeOff, err := s.timeOffRepo.ListOverlapping(ctx, member.ID, from, to, []timeoff.Status{timeoff.StatusApproved})
	if err != nil {
		return StaffProfile{}, fmt.Errorf("failed to load time off for %s: %w", member.ID, err)
	}
	for _, off := range timeOff {
		// End date is inclusive; cover it through end of day.
		profile.TimeOff = append(profile.TimeOff, Interval{
			Start: off.StartDate,
			End:   off.EndDate.AddDate(0, 0, 1),
		})
	}

	return profile, nil
}

// CommitResult is the per-assignment outcome of committing a proposal. One
// assignment failing its conflict check does not abort the rest.
type CommitResult struct {
	Assignment Assignment         `json:"assignment"`
	Schedule   *schedule.Schedule `json:"-"`
	Err        error              `json:"-"`
}

// CommitAssignments turns accepted proposals into real schedules through the
// schedule service, one by one.
func (s *Service) CommitAssignments(ctx context.Context, shifts []ShiftRequirement, assignments []Assignment, createdBy string) []CommitResult {
	byID := make(map[string]ShiftRequirement, len(shifts))
	for _, shift := range shifts {
		byID[shift.ShiftID] = shift
	}

	results := make([]CommitResult, 0, len(assignments))
	for _, a := range assignments {
		shift, ok := byID[a.ShiftID]
		if !ok {
			results = append(results, CommitResult{
				Assignment: a,
				Err:        fmt.Errorf("unknown shift %s", a.ShiftID),
			})
			continue
		}

		shiftType := shift.Type
		if shiftType == "" {
			shiftType = "shift"
		}

		created, err := s.schedules.Create(ctx, schedule.CreateScheduleRequest{
			StaffID:   a.StaffID,
			Type:      shiftType,
			StartTime: shift.Start.Format(time.RFC3339),
			EndTime:   shift.End.Format(time.RFC3339),
			Location:  shift.Location,
			CreatedBy: createdBy,
		})
		if err != nil {
			results = append(results, CommitResult{Assignment: a, Err: err})
			continue
		}
		results = append(results, CommitResult{Assignment: a, Schedule: &created})
	}
	return results
}
