package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wellura/staff-scheduling-go/internal/domain/notification"
	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/calendarsync"
	"github.com/wellura/staff-scheduling-go/internal/pkg/dateutil"
	"github.com/wellura/staff-scheduling-go/internal/pkg/recurrence"
)

// Config holds the generation policy for this service.
type Config struct {
	// GenerationHorizonDays bounds materialization when no explicit end date
	// is supplied.
	GenerationHorizonDays int
	// MaxOccurrences caps recurrence expansion per template.
	MaxOccurrences int
}

type Service struct {
	scheduleRepo schedule.ScheduleRepository
	staffRepo    staff.StaffRepository
	notifier     notification.Service
	calendar     *calendarsync.Publisher
	cfg          Config
}

func NewService(
	scheduleRepo schedule.ScheduleRepository,
	staffRepo staff.StaffRepository,
	notifier notification.Service,
	calendar *calendarsync.Publisher,
	cfg Config,
) *Service {
	if cfg.GenerationHorizonDays <= 0 {
		cfg.GenerationHorizonDays = 30
	}
	if cfg.MaxOccurrences <= 0 || cfg.MaxOccurrences > recurrence.MaxOccurrences {
		cfg.MaxOccurrences = recurrence.MaxOccurrences
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		notifier:     notifier,
		calendar:     calendar,
		cfg:          cfg,
	}
}

// Create validates and persists a new schedule. The conflict check and the
// insert run under the staff member's lock so two concurrent creations for
// overlapping windows cannot both pass. When the request carries a recurrence
// rule the new schedule becomes a template and its children are materialized
// up to the configured horizon.
func (s *Service) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.Schedule, error) {
	if err := req.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if !member.Active {
		return schedule.Schedule{}, staff.ErrStaffInactive
	}

	if req.RecurrenceRule != nil && *req.RecurrenceRule != "" {
		if err := recurrence.Validate(*req.RecurrenceRule); err != nil {
			return schedule.Schedule{}, err
		}
	}

	start, end := req.Times()

	entity := schedule.Schedule{
		ID:             uuid.NewString(),
		StaffID:        req.StaffID,
		Type:           req.Type,
		StartTime:      start,
		EndTime:        end,
		Status:         schedule.StatusScheduled,
		RecurrenceRule: req.RecurrenceRule,
		Location:       req.Location,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
		UpdatedBy:      req.CreatedBy,
	}

	var created schedule.Schedule
	err = s.scheduleRepo.WithStaffLock(ctx, req.StaffID, func(lockCtx context.Context) error {
		if err := s.CheckConflict(lockCtx, req.StaffID, start, end, ""); err != nil {
			return err
		}
		var createErr error
		created, createErr = s.scheduleRepo.Create(lockCtx, entity)
		if createErr != nil {
			return fmt.Errorf("failed to create schedule: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return schedule.Schedule{}, err
	}

	if created.IsTemplate() {
		results, genErr := s.Materialize(ctx, created.ID, nil)
		if genErr != nil {
			slog.Error("recurring generation failed", "template_id", created.ID, "error", genErr)
		}
		for _, r := range results {
			if r.Err != nil {
				slog.Warn("occurrence not generated",
					"template_id", created.ID,
					"date", r.Date.Format("2006-01-02"),
					"error", r.Err)
			}
		}
	}

	s.notifier.Publish(ctx, notification.Event{
		Type:    notification.EventShiftAssigned,
		StaffID: created.StaffID,
		Payload: map[string]any{
			"schedule_id": created.ID,
			"start_time":  created.StartTime.Format(time.RFC3339),
			"end_time":    created.EndTime.Format(time.RFC3339),
		},
	})
	s.calendar.PushSnapshot(created)

	return created, nil
}

// CheckConflict returns a *schedule.ConflictError naming every schedule with
// status scheduled or in_progress that overlaps [start, end) for the staff
// member, excluding excludeID.
func (s *Service) CheckConflict(ctx context.Context, staffID string, start, end time.Time, excludeID string) error {
	active, err := s.scheduleRepo.ListActiveByStaff(ctx, staffID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	var conflicting []string
	for _, existing := range active {
		if dateutil.Overlaps(existing.StartTime, existing.EndTime, start, end) {
			conflicting = append(conflicting, existing.ID)
		}
	}
	if len(conflicting) > 0 {
		return &schedule.ConflictError{StaffID: staffID, ConflictingIDs: conflicting}
	}
	return nil
}

// Transition moves a schedule along its status machine. On cancellation of a
// generated child the parent template's cancelled counter is bumped.
func (s *Service) Transition(ctx context.Context, scheduleID string, next schedule.Status, updatedBy string) (schedule.Schedule, error) {
	current, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return schedule.Schedule{}, err
	}

	if !current.CanTransitionTo(next) {
		return schedule.Schedule{}, fmt.Errorf("%w: %s -> %s",
			schedule.ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.scheduleRepo.UpdateStatus(ctx, scheduleID, next, updatedBy)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to update schedule status: %w", err)
	}

	if next == schedule.StatusCancelled && updated.ParentScheduleID != nil {
		if err := s.scheduleRepo.AddCancelled(ctx, *updated.ParentScheduleID, 1); err != nil {
			slog.Warn("failed to bump template cancelled counter",
				"template_id", *updated.ParentScheduleID, "error", err)
		}
	}

	return updated, nil
}

// Reassign moves a schedule to a new staff member. Used by the shift swap
// workflow only; the conflict check runs under the new owner's lock.
func (s *Service) Reassign(ctx context.Context, scheduleID string, newStaffID string, updatedBy string) (schedule.Schedule, error) {
	current, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if !current.Active() {
		return schedule.Schedule{}, schedule.ErrScheduleNotActive
	}

	member, err := s.staffRepo.GetByID(ctx, newStaffID)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if !member.Active {
		return schedule.Schedule{}, staff.ErrStaffInactive
	}

	var updated schedule.Schedule
	err = s.scheduleRepo.WithStaffLock(ctx, newStaffID, func(lockCtx context.Context) error {
		if err := s.CheckConflict(lockCtx, newStaffID, current.StartTime, current.EndTime, scheduleID); err != nil {
			return err
		}
		var updateErr error
		updated, updateErr = s.scheduleRepo.UpdateStaff(lockCtx, scheduleID, newStaffID, updatedBy)
		if updateErr != nil {
			return fmt.Errorf("failed to reassign schedule: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return schedule.Schedule{}, err
	}

	s.calendar.PushSnapshot(updated)

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, scheduleID string) (schedule.Schedule, error) {
	return s.scheduleRepo.GetByID(ctx, scheduleID)
}

func (s *Service) ListByStaffInRange(ctx context.Context, staffID string, from, to time.Time) ([]schedule.Schedule, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListByStaffInRange(ctx, staffID, from, to)
}
