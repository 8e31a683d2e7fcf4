package timeoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellura/staff-scheduling-go/internal/domain/notification"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/dateutil"
	"github.com/wellura/staff-scheduling-go/internal/pkg/holiday"
)

// Config holds the vacation accrual policy.
type Config struct {
	// AnnualVacationDays is a full year's vacation entitlement. Staff hired
	// during the year accrue a pro-rated share of it.
	AnnualVacationDays int
}

type Service struct {
	timeOffRepo timeoff.TimeOffRequestRepository
	balanceRepo timeoff.VacationBalanceRepository
	staffRepo   staff.StaffRepository
	holidays    holiday.Provider
	notifier    notification.Service
	cfg         Config

	now func() time.Time
}

func NewService(
	timeOffRepo timeoff.TimeOffRequestRepository,
	balanceRepo timeoff.VacationBalanceRepository,
	staffRepo staff.StaffRepository,
	holidays holiday.Provider,
	notifier notification.Service,
	cfg Config,
) *Service {
	if cfg.AnnualVacationDays <= 0 {
		cfg.AnnualVacationDays = 25
	}
	return &Service{
		timeOffRepo: timeOffRepo,
		balanceRepo: balanceRepo,
		staffRepo:   staffRepo,
		holidays:    holidays,
		notifier:    notifier,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Request files a pending time-off request. The working-day cost is computed
// once here, against the holiday calendar, and reused unchanged at approval.
// Vacation requests are checked against the remaining balance up front so
// staff learn about a shortfall immediately rather than at approval.
func (s *Service) Request(ctx context.Context, req timeoff.RequestTimeOffRequest) (timeoff.TimeOffRequest, error) {
	if err := req.Validate(); err != nil {
		return timeoff.TimeOffRequest{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return timeoff.TimeOffRequest{}, err
	}
	if !member.Active {
		return timeoff.TimeOffRequest{}, staff.ErrStaffInactive
	}

	start, end := req.Dates()

	overlapping, err := s.timeOffRepo.ListOverlapping(ctx, req.StaffID, start, end, []timeoff.Status{
		timeoff.StatusPending,
		timeoff.StatusApproved,
	})
	if err != nil {
		return timeoff.TimeOffRequest{}, fmt.Errorf("failed to check overlapping time off: %w", err)
	}
	if len(overlapping) > 0 {
		return timeoff.TimeOffRequest{}, timeoff.ErrOverlappingTimeOff
	}

	workingDays := dateutil.WorkingDays(start, end, s.isHoliday)

	if timeoff.Type(req.Type) == timeoff.TypeVacation {
		balance, err := s.ensureBalance(ctx, member, start.Year())
		if err != nil {
			return timeoff.TimeOffRequest{}, err
		}
		if workingDays > balance.Remaining() {
			return timeoff.TimeOffRequest{}, timeoff.ErrInsufficientBalance
		}
	}

	created, err := s.timeOffRepo.Create(ctx, timeoff.TimeOffRequest{
		ID:          uuid.NewString(),
		StaffID:     req.StaffID,
		StartDate:   start,
		EndDate:     end,
		Type:        timeoff.Type(req.Type),
		WorkingDays: workingDays,
		Status:      timeoff.StatusPending,
		Reason:      req.Reason,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		return timeoff.TimeOffRequest{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	s.notifier.Publish(ctx, notification.Event{
		Type:    notification.EventTimeOffRequested,
		StaffID: created.StaffID,
		Payload: map[string]any{
			"time_off_request_id": created.ID,
			"type":                string(created.Type),
			"working_days":        created.WorkingDays,
		},
	})

	return created, nil
}

// Process settles a pending request. Approving a vacation request charges its
// working days to the year's ledger; the ledger row is created on first use.
// Cancel is reserved for pending requests, since an approved request has
// already been charged.
func (s *Service) Process(ctx context.Context, requestID string, req timeoff.ProcessTimeOffRequest) (timeoff.TimeOffRequest, error) {
	if err := req.Validate(); err != nil {
		return timeoff.TimeOffRequest{}, err
	}

	request, err := s.timeOffRepo.GetByID(ctx, requestID)
	if err != nil {
		return timeoff.TimeOffRequest{}, err
	}

	decision := timeoff.Decision(req.Decision)

	if request.Status != timeoff.StatusPending {
		if decision == timeoff.DecisionCancel {
			return timeoff.TimeOffRequest{}, timeoff.ErrCancelNotPending
		}
		return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffAlreadyProcessed
	}

	var eventType notification.EventType
	switch decision {
	case timeoff.DecisionApprove:
		request.Status = timeoff.StatusApproved
		eventType = notification.EventTimeOffApproved
	case timeoff.DecisionReject:
		request.Status = timeoff.StatusRejected
		eventType = notification.EventTimeOffRejected
	case timeoff.DecisionCancel:
		request.Status = timeoff.StatusCancelled
		eventType = notification.EventTimeOffCancelled
	}

	now := s.now()
	request.ProcessedBy = &req.ProcessedBy
	request.ProcessedAt = &now
	request.Notes = req.Notes

	// The ledger charge and the pending-guarded status update execute as one
	// atomic unit per staff member: a failed update takes the charge down
	// with it, and concurrent approvals cannot overdraw the balance.
	var updated timeoff.TimeOffRequest
	err = s.timeOffRepo.WithStaffLock(ctx, request.StaffID, func(lockCtx context.Context) error {
		if decision == timeoff.DecisionApprove && request.Type == timeoff.TypeVacation {
			if err := s.chargeVacation(lockCtx, request); err != nil {
				return err
			}
		}
		var updateErr error
		updated, updateErr = s.timeOffRepo.Update(lockCtx, request)
		if updateErr != nil {
			return fmt.Errorf("failed to update time-off request: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return timeoff.TimeOffRequest{}, err
	}

	s.notifier.Publish(ctx, notification.Event{
		Type:    eventType,
		StaffID: updated.StaffID,
		Payload: map[string]any{
			"time_off_request_id": updated.ID,
			"type":                string(updated.Type),
			"working_days":        updated.WorkingDays,
		},
	})

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, requestID string) (timeoff.TimeOffRequest, error) {
	return s.timeOffRepo.GetByID(ctx, requestID)
}

func (s *Service) ListByStaff(ctx context.Context, staffID string) ([]timeoff.TimeOffRequest, error) {
	return s.timeOffRepo.ListByStaff(ctx, staffID)
}

// Balance returns the staff member's vacation ledger for the year, creating
// the row with the accrued entitlement if it does not exist yet.
func (s *Service) Balance(ctx context.Context, staffID string, year int) (timeoff.VacationBalance, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return timeoff.VacationBalance{}, err
	}
	return s.ensureBalance(ctx, member, year)
}

func (s *Service) chargeVacation(ctx context.Context, request timeoff.TimeOffRequest) error {
	member, err := s.staffRepo.GetByID(ctx, request.StaffID)
	if err != nil {
		return err
	}

	balance, err := s.ensureBalance(ctx, member, request.StartDate.Year())
	if err != nil {
		return err
	}

	// The entitlement bound is enforced inside ChargeDays itself.
	if err := s.balanceRepo.ChargeDays(ctx, balance.ID, request.WorkingDays); err != nil {
		if errors.Is(err, timeoff.ErrInsufficientBalance) {
			return err
		}
		return fmt.Errorf("failed to charge vacation balance: %w", err)
	}
	return nil
}

func (s *Service) ensureBalance(ctx context.Context, member staff.Staff, year int) (timeoff.VacationBalance, error) {
	balance, err := s.balanceRepo.GetByStaffAndYear(ctx, member.ID, year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, timeoff.ErrBalanceNotFound) {
		return timeoff.VacationBalance{}, fmt.Errorf("failed to load vacation balance: %w", err)
	}

	balance, err = s.balanceRepo.Create(ctx, timeoff.VacationBalance{
		ID:        uuid.NewString(),
		StaffID:   member.ID,
		Year:      year,
		TotalDays: s.accruedDays(member, year),
	})
	if err != nil {
		return timeoff.VacationBalance{}, fmt.Errorf("failed to create vacation balance: %w", err)
	}
	return balance, nil
}

// accruedDays pro-rates the annual entitlement for staff hired during the
// year, rounding down. Anyone hired before the year starts gets the full
// amount.
func (s *Service) accruedDays(member staff.Staff, year int) int {
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	if ref := s.now(); ref.Year() == year && ref.Before(yearEnd) {
		yearEnd = ref
	}

	months := dateutil.MonthsBetween(member.HireDate, yearEnd)
	if months >= 12 || member.HireDate.Year() < year {
		return s.cfg.AnnualVacationDays
	}
	return s.cfg.AnnualVacationDays * months / 12
}

func (s *Service) isHoliday(t time.Time) bool {
	if s.holidays == nil {
		return false
	}
	return s.holidays.IsHoliday(t)
}
