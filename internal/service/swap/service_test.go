package swap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scheduledomain "github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	swapdomain "github.com/wellura/staff-scheduling-go/internal/domain/swap"
	"github.com/wellura/staff-scheduling-go/internal/repository/memory"
	"github.com/wellura/staff-scheduling-go/internal/service/notification"
	schedulesvc "github.com/wellura/staff-scheduling-go/internal/service/schedule"
	"github.com/wellura/staff-scheduling-go/internal/service/swap"
)

type fixture struct {
	staffRepo    *memory.StaffRepository
	scheduleRepo *memory.ScheduleRepository
	schedules    *schedulesvc.Service
	svc          *swap.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	staffRepo := memory.NewStaffRepository()
	staffRepo.Put(staff.Staff{ID: "staff-anna", FullName: "Anna", Active: true})
	staffRepo.Put(staff.Staff{ID: "staff-ben", FullName: "Ben", Active: true})
	staffRepo.Put(staff.Staff{ID: "staff-gone", FullName: "Former", Active: false})

	scheduleRepo := memory.NewScheduleRepository()
	schedules := schedulesvc.NewService(scheduleRepo, staffRepo, notification.Noop(), nil, schedulesvc.Config{})

	return &fixture{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		schedules:    schedules,
		svc:          swap.NewService(memory.NewSwapRequestRepository(), staffRepo, schedules, notification.Noop()),
	}
}

func (f *fixture) createSchedule(t *testing.T, staffID, start, end string) scheduledomain.Schedule {
	t.Helper()
	s, err := f.schedules.Create(context.Background(), scheduledomain.CreateScheduleRequest{
		StaffID:   staffID,
		Type:      "shift",
		StartTime: start,
		EndTime:   end,
		CreatedBy: "manager-1",
	})
	require.NoError(t, err)
	return s
}

func TestRequestDerivesOwnerFromSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	assert.Equal(t, "staff-anna", req.FromStaffID)
	assert.Equal(t, "staff-ben", req.ToStaffID)
	assert.Equal(t, swapdomain.StatusPending, req.Status)
}

func TestRequestRejectsBusyTarget(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")
	f.createSchedule(t, "staff-ben", "2024-07-01T12:00:00Z", "2024-07-01T20:00:00Z")

	_, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	assert.ErrorIs(t, err, scheduledomain.ErrScheduleConflict)
}

func TestRequestRejectsInactiveTarget(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	_, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-gone",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	assert.ErrorIs(t, err, staff.ErrStaffInactive)
}

func TestRequestRejectsCancelledSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	_, err := f.schedules.Transition(context.Background(), sched.ID, scheduledomain.StatusCancelled, "manager-1")
	require.NoError(t, err)

	_, err = f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	assert.ErrorIs(t, err, scheduledomain.ErrScheduleNotActive)
}

func TestApproveRejectsCancelledSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	// The schedule is cancelled between request and approval.
	_, err = f.schedules.Transition(context.Background(), sched.ID, scheduledomain.StatusCancelled, "manager-1")
	require.NoError(t, err)

	_, err = f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	assert.ErrorIs(t, err, scheduledomain.ErrScheduleNotActive)

	// The request stays pending and the cancelled schedule keeps its owner.
	current, err := f.svc.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, swapdomain.StatusPending, current.Status)

	unchanged, err := f.schedules.GetByID(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff-anna", unchanged.StaffID)
	assert.Equal(t, scheduledomain.StatusCancelled, unchanged.Status)
}

func TestApproveReassignsSchedule(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	processed, err := f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)
	assert.Equal(t, swapdomain.StatusApproved, processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, "manager-1", *processed.ProcessedBy)

	moved, err := f.schedules.GetByID(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff-ben", moved.StaffID)
}

func TestApproveRevalidatesConflict(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	// Ben picks up an overlapping shift between request and approval.
	f.createSchedule(t, "staff-ben", "2024-07-01T16:00:00Z", "2024-07-01T22:00:00Z")

	_, err = f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	assert.ErrorIs(t, err, scheduledomain.ErrScheduleConflict)

	// The request stays pending and the schedule stays with Anna.
	current, err := f.svc.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, swapdomain.StatusPending, current.Status)

	unchanged, err := f.schedules.GetByID(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff-anna", unchanged.StaffID)
}

func TestRejectLeavesScheduleAlone(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	processed, err := f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "reject",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)
	assert.Equal(t, swapdomain.StatusRejected, processed.Status)

	unchanged, err := f.schedules.GetByID(context.Background(), sched.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff-anna", unchanged.StaffID)
}

func TestProcessTwiceFails(t *testing.T) {
	f := newFixture(t)
	sched := f.createSchedule(t, "staff-anna", "2024-07-01T09:00:00Z", "2024-07-01T17:00:00Z")

	req, err := f.svc.Request(context.Background(), swapdomain.RequestSwapRequest{
		FromScheduleID: sched.ID,
		ToStaffID:      "staff-ben",
		Reason:         "appointment",
		RequestedBy:    "staff-anna",
	})
	require.NoError(t, err)

	_, err = f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "reject",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Process(context.Background(), req.ID, swapdomain.ProcessSwapRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	assert.ErrorIs(t, err, swapdomain.ErrSwapAlreadyProcessed)
}
