package timeoff_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	timeoffdomain "github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/holiday"
	"github.com/wellura/staff-scheduling-go/internal/repository/memory"
	"github.com/wellura/staff-scheduling-go/internal/service/notification"
	"github.com/wellura/staff-scheduling-go/internal/service/timeoff"
)

func newService(t *testing.T, holidays []string) (*timeoff.Service, *memory.StaffRepository) {
	t.Helper()

	provider, err := holiday.NewStatic(holidays)
	require.NoError(t, err)

	staffRepo := memory.NewStaffRepository()
	staffRepo.Put(staff.Staff{
		ID:       "staff-anna",
		FullName: "Anna",
		Active:   true,
		HireDate: time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	staffRepo.Put(staff.Staff{ID: "staff-gone", FullName: "Former", Active: false})

	return timeoff.NewService(
		memory.NewTimeOffRequestRepository(),
		memory.NewVacationBalanceRepository(),
		staffRepo,
		provider,
		notification.Noop(),
		timeoff.Config{AnnualVacationDays: 25},
	), staffRepo
}

func requestVacation(t *testing.T, svc *timeoff.Service, staffID, start, end string) (timeoffdomain.TimeOffRequest, error) {
	t.Helper()
	return svc.Request(context.Background(), timeoffdomain.RequestTimeOffRequest{
		StaffID:     staffID,
		StartDate:   start,
		EndDate:     end,
		Type:        "vacation",
		Reason:      "holiday",
		RequestedBy: staffID,
	})
}

func TestRequestComputesWorkingDays(t *testing.T) {
	// 2024-04-29 (Mon) through 2024-05-03 (Fri) with May 1st a holiday.
	svc, _ := newService(t, []string{"2024-05-01"})

	req, err := requestVacation(t, svc, "staff-anna", "2024-04-29", "2024-05-03")
	require.NoError(t, err)

	assert.Equal(t, 4, req.WorkingDays)
	assert.Equal(t, timeoffdomain.StatusPending, req.Status)
}

func TestRequestRejectsInactiveStaff(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := requestVacation(t, svc, "staff-gone", "2024-04-29", "2024-05-03")
	assert.ErrorIs(t, err, staff.ErrStaffInactive)
}

func TestRequestRejectsOverlap(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)

	_, err = requestVacation(t, svc, "staff-anna", "2024-07-05", "2024-07-08")
	assert.ErrorIs(t, err, timeoffdomain.ErrOverlappingTimeOff)
}

func TestRequestAllowsOverlapWithRejected(t *testing.T) {
	svc, _ := newService(t, nil)

	first, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), first.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "reject",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)

	_, err = requestVacation(t, svc, "staff-anna", "2024-07-03", "2024-07-08")
	assert.NoError(t, err)
}

func TestRequestRejectsInsufficientBalance(t *testing.T) {
	svc, _ := newService(t, nil)

	// 2024-07-01 through 2024-08-09 spans 30 working days, more than the
	// 25-day annual entitlement.
	_, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-08-09")
	assert.ErrorIs(t, err, timeoffdomain.ErrInsufficientBalance)
}

func TestSickLeaveIgnoresVacationBalance(t *testing.T) {
	svc, _ := newService(t, nil)

	req, err := svc.Request(context.Background(), timeoffdomain.RequestTimeOffRequest{
		StaffID:     "staff-anna",
		StartDate:   "2024-07-01",
		EndDate:     "2024-08-09",
		Type:        "sick",
		Reason:      "surgery recovery",
		RequestedBy: "staff-anna",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, req.WorkingDays)
}

func TestApproveChargesBalance(t *testing.T) {
	svc, _ := newService(t, nil)

	req, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)
	assert.Equal(t, 5, req.WorkingDays)

	approved, err := svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)
	assert.Equal(t, timeoffdomain.StatusApproved, approved.Status)

	balance, err := svc.Balance(context.Background(), "staff-anna", 2024)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.UsedDays)
	assert.Equal(t, 20, balance.Remaining())
}

func TestApproveCannotOverdrawBalance(t *testing.T) {
	svc, _ := newService(t, nil)

	// Two 15-working-day requests each fit the 25-day entitlement on their
	// own, but not together.
	first, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-19")
	require.NoError(t, err)
	assert.Equal(t, 15, first.WorkingDays)

	second, err := requestVacation(t, svc, "staff-anna", "2024-08-05", "2024-08-23")
	require.NoError(t, err)
	assert.Equal(t, 15, second.WorkingDays)

	_, err = svc.Process(context.Background(), first.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), second.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	assert.ErrorIs(t, err, timeoffdomain.ErrInsufficientBalance)

	// The failed approval charges nothing and the request stays pending.
	balance, err := svc.Balance(context.Background(), "staff-anna", 2024)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.UsedDays)

	current, err := svc.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, timeoffdomain.StatusPending, current.Status)
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	svc, _ := newService(t, nil)

	req, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "reject",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)

	balance, err := svc.Balance(context.Background(), "staff-anna", 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.UsedDays)
}

func TestProcessTwiceFails(t *testing.T) {
	svc, _ := newService(t, nil)

	req, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "approve",
		ProcessedBy: "manager-1",
	})
	assert.ErrorIs(t, err, timeoffdomain.ErrTimeOffAlreadyProcessed)
}

func TestCancelRequiresPending(t *testing.T) {
	svc, _ := newService(t, nil)

	req, err := requestVacation(t, svc, "staff-anna", "2024-07-01", "2024-07-05")
	require.NoError(t, err)

	cancelled, err := svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "cancel",
		ProcessedBy: "staff-anna",
	})
	require.NoError(t, err)
	assert.Equal(t, timeoffdomain.StatusCancelled, cancelled.Status)

	_, err = svc.Process(context.Background(), req.ID, timeoffdomain.ProcessTimeOffRequest{
		Decision:    "cancel",
		ProcessedBy: "staff-anna",
	})
	assert.ErrorIs(t, err, timeoffdomain.ErrCancelNotPending)
}

func TestBalanceProRatedForMidYearHire(t *testing.T) {
	svc, staffRepo := newService(t, nil)
	staffRepo.Put(staff.Staff{
		ID:       "staff-new",
		FullName: "New Hire",
		Active:   true,
		HireDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	balance, err := svc.Balance(context.Background(), "staff-new", 2024)
	require.NoError(t, err)

	// At most six months of the year remain after a July 1st hire, so the
	// accrued entitlement stays strictly below the full 25 days.
	assert.Less(t, balance.TotalDays, 25)
}
