package optimizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scheduledomain "github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	timeoffdomain "github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/repository/memory"
	"github.com/wellura/staff-scheduling-go/internal/service/notification"
	"github.com/wellura/staff-scheduling-go/internal/service/optimizer"
	schedulesvc "github.com/wellura/staff-scheduling-go/internal/service/schedule"
	timeoffsvc "github.com/wellura/staff-scheduling-go/internal/service/timeoff"
)

type optimizerFixture struct {
	staffRepo *memory.StaffRepository
	schedules *schedulesvc.Service
	timeOff   *timeoffsvc.Service
	svc       *optimizer.Service
}

func newOptimizerFixture(t *testing.T) *optimizerFixture {
	t.Helper()

	staffRepo := memory.NewStaffRepository()
	staffRepo.Put(staff.Staff{ID: "staff-a", FullName: "Ada", Department: "front", Active: true})
	staffRepo.Put(staff.Staff{ID: "staff-b", FullName: "Bo", Department: "front", Active: true})

	scheduleRepo := memory.NewScheduleRepository()
	schedules := schedulesvc.NewService(scheduleRepo, staffRepo, notification.Noop(), nil, schedulesvc.Config{})

	timeOffRepo := memory.NewTimeOffRequestRepository()
	timeOff := timeoffsvc.NewService(
		timeOffRepo,
		memory.NewVacationBalanceRepository(),
		staffRepo,
		nil,
		notification.Noop(),
		timeoffsvc.Config{},
	)

	return &optimizerFixture{
		staffRepo: staffRepo,
		schedules: schedules,
		timeOff:   timeOff,
		svc: optimizer.NewService(
			staffRepo,
			timeOffRepo,
			schedules,
			optimizer.NewFallbackStrategy(nil, optimizer.NewLocalStrategy()),
		),
	}
}

func timeOffRequest(staffID, start, end string) timeoffdomain.RequestTimeOffRequest {
	return timeoffdomain.RequestTimeOffRequest{
		StaffID:     staffID,
		StartDate:   start,
		EndDate:     end,
		Type:        "vacation",
		Reason:      "holiday",
		RequestedBy: staffID,
	}
}

func processApprove(by string) timeoffdomain.ProcessTimeOffRequest {
	return timeoffdomain.ProcessTimeOffRequest{Decision: "approve", ProcessedBy: by}
}

func TestOptimizeAssignmentsAssemblesCommitments(t *testing.T) {
	f := newOptimizerFixture(t)
	ctx := context.Background()

	// staff-a already works the shift's window; staff-b is on approved
	// vacation that day. Nobody is left.
	_, err := f.schedules.Create(ctx, scheduledomain.CreateScheduleRequest{
		StaffID:   "staff-a",
		Type:      "shift",
		StartTime: "2024-06-03T09:00:00Z",
		EndTime:   "2024-06-03T17:00:00Z",
		CreatedBy: "manager-1",
	})
	require.NoError(t, err)

	offReq, err := f.timeOff.Request(ctx, timeOffRequest("staff-b", "2024-06-03", "2024-06-03"))
	require.NoError(t, err)
	_, err = f.timeOff.Process(ctx, offReq.ID, processApprove("manager-1"))
	require.NoError(t, err)

	result, err := f.svc.OptimizeAssignments(ctx, optimizer.OptimizeAssignmentsRequest{
		WindowStart: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Department:  "front",
		Shifts: []optimizer.ShiftRequirement{
			shift("shift-1",
				time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)),
		},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "shift-1")
}

func TestOptimizeAssignmentsProposesFreeStaff(t *testing.T) {
	f := newOptimizerFixture(t)

	result, err := f.svc.OptimizeAssignments(context.Background(), optimizer.OptimizeAssignmentsRequest{
		WindowStart: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Shifts: []optimizer.ShiftRequirement{
			shift("shift-1",
				time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
				time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC)),
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "staff-a", result.Assignments[0].StaffID)
}

func TestCommitAssignmentsKeepsConflictInvariant(t *testing.T) {
	f := newOptimizerFixture(t)
	ctx := context.Background()

	shifts := []optimizer.ShiftRequirement{
		shift("shift-1",
			time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC)),
	}
	assignments := []optimizer.Assignment{
		{StaffID: "staff-a", ShiftID: "shift-1", Score: 1},
	}

	first := f.svc.CommitAssignments(ctx, shifts, assignments, "manager-1")
	require.Len(t, first, 1)
	require.NoError(t, first[0].Err)
	require.NotNil(t, first[0].Schedule)

	// Committing the same proposal again trips the conflict check.
	second := f.svc.CommitAssignments(ctx, shifts, assignments, "manager-1")
	require.Len(t, second, 1)
	assert.ErrorIs(t, second[0].Err, scheduledomain.ErrScheduleConflict)
}

func TestCommitAssignmentsUnknownShift(t *testing.T) {
	f := newOptimizerFixture(t)

	results := f.svc.CommitAssignments(context.Background(), nil, []optimizer.Assignment{
		{StaffID: "staff-a", ShiftID: "shift-missing"},
	}, "manager-1")

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
