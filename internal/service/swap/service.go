package swap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellura/staff-scheduling-go/internal/domain/notification"
	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/domain/swap"
)

// ScheduleService is the slice of the schedule service the swap workflow
// needs: ownership moves and conflict checks always go through it so the
// non-overlap invariant stays in one place.
type ScheduleService interface {
	GetByID(ctx context.Context, scheduleID string) (schedule.Schedule, error)
	CheckConflict(ctx context.Context, staffID string, start, end time.Time, excludeID string) error
	Reassign(ctx context.Context, scheduleID string, newStaffID string, updatedBy string) (schedule.Schedule, error)
}

type Service struct {
	swapRepo  swap.SwapRequestRepository
	staffRepo staff.StaffRepository
	schedules ScheduleService
	notifier  notification.Service
}

func NewService(
	swapRepo swap.SwapRequestRepository,
	staffRepo staff.StaffRepository,
	schedules ScheduleService,
	notifier notification.Service,
) *Service {
	return &Service{
		swapRepo:  swapRepo,
		staffRepo: staffRepo,
		schedules: schedules,
		notifier:  notifier,
	}
}

// Request opens a pending swap for the schedule, which must still be active.
// The current owner is derived from the schedule at request time; the target
// must be active and free for the schedule's window.
func (s *Service) Request(ctx context.Context, req swap.RequestSwapRequest) (swap.ShiftSwapRequest, error) {
	if err := req.Validate(); err != nil {
		return swap.ShiftSwapRequest{}, err
	}

	sched, err := s.schedules.GetByID(ctx, req.FromScheduleID)
	if err != nil {
		return swap.ShiftSwapRequest{}, err
	}
	if !sched.Active() {
		return swap.ShiftSwapRequest{}, schedule.ErrScheduleNotActive
	}

	target, err := s.staffRepo.GetByID(ctx, req.ToStaffID)
	if err != nil {
		return swap.ShiftSwapRequest{}, err
	}
	if !target.Active {
		return swap.ShiftSwapRequest{}, staff.ErrStaffInactive
	}

	if err := s.schedules.CheckConflict(ctx, req.ToStaffID, sched.StartTime, sched.EndTime, ""); err != nil {
		return swap.ShiftSwapRequest{}, err
	}

	created, err := s.swapRepo.Create(ctx, swap.ShiftSwapRequest{
		ID:             uuid.NewString(),
		FromScheduleID: sched.ID,
		FromStaffID:    sched.StaffID,
		ToStaffID:      req.ToStaffID,
		RequestedBy:    req.RequestedBy,
		Reason:         req.Reason,
		Status:         swap.StatusPending,
	})
	if err != nil {
		return swap.ShiftSwapRequest{}, fmt.Errorf("failed to create swap request: %w", err)
	}

	s.notifier.Publish(ctx, notification.Event{
		Type:    notification.EventSwapRequested,
		StaffID: created.ToStaffID,
		Payload: map[string]any{
			"swap_request_id": created.ID,
			"schedule_id":     created.FromScheduleID,
			"from_staff_id":   created.FromStaffID,
		},
	})

	return created, nil
}

// Process settles a pending swap. Approval re-validates the schedule and the
// target's availability before reassigning, since either may have changed
// since the request was made; a conflict (or a schedule cancelled in the
// meantime) surfaces to the approver and the request stays pending. Approved
// and rejected requests are terminal.
func (s *Service) Process(ctx context.Context, requestID string, req swap.ProcessSwapRequest) (swap.ShiftSwapRequest, error) {
	if err := req.Validate(); err != nil {
		return swap.ShiftSwapRequest{}, err
	}

	request, err := s.swapRepo.GetByID(ctx, requestID)
	if err != nil {
		return swap.ShiftSwapRequest{}, err
	}
	if request.Status != swap.StatusPending {
		return swap.ShiftSwapRequest{}, swap.ErrSwapAlreadyProcessed
	}

	if swap.Decision(req.Decision) == swap.DecisionApprove {
		if _, err := s.schedules.Reassign(ctx, request.FromScheduleID, request.ToStaffID, req.ProcessedBy); err != nil {
			return swap.ShiftSwapRequest{}, err
		}
		request.Status = swap.StatusApproved
	} else {
		request.Status = swap.StatusRejected
	}

	now := time.Now()
	request.ProcessedBy = &req.ProcessedBy
	request.ProcessedAt = &now

	updated, err := s.swapRepo.Update(ctx, request)
	if err != nil {
		return swap.ShiftSwapRequest{}, fmt.Errorf("failed to update swap request: %w", err)
	}

	eventType := notification.EventSwapApproved
	if updated.Status == swap.StatusRejected {
		eventType = notification.EventSwapRejected
	}
	s.notifier.Publish(ctx, notification.Event{
		Type:    eventType,
		StaffID: updated.FromStaffID,
		Payload: map[string]any{
			"swap_request_id": updated.ID,
			"schedule_id":     updated.FromScheduleID,
			"to_staff_id":     updated.ToStaffID,
		},
	})

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, requestID string) (swap.ShiftSwapRequest, error) {
	return s.swapRepo.GetByID(ctx, requestID)
}

func (s *Service) ListByStaff(ctx context.Context, staffID string) ([]swap.ShiftSwapRequest, error) {
	return s.swapRepo.ListByStaff(ctx, staffID)
}
