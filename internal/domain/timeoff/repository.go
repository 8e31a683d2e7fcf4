package timeoff

import (
	"context"
	"time"
)

type TimeOffRequestRepository interface {
	Create(ctx context.Context, req TimeOffRequest) (TimeOffRequest, error)
	GetByID(ctx context.Context, id string) (TimeOffRequest, error)
	Update(ctx context.Context, req TimeOffRequest) (TimeOffRequest, error)

	// ListOverlapping returns the staff member's requests in the given
	// statuses whose [StartDate, EndDate] range intersects [start, end].
	ListOverlapping(ctx context.Context, staffID string, start, end time.Time, statuses []Status) ([]TimeOffRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]TimeOffRequest, error)

	// WithStaffLock runs fn while holding an exclusive per-staff lock so a
	// ledger charge and the status update it pairs with execute as one
	// atomic unit.
	WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error
}

type VacationBalanceRepository interface {
	GetByStaffAndYear(ctx context.Context, staffID string, year int) (VacationBalance, error)
	Create(ctx context.Context, balance VacationBalance) (VacationBalance, error)

	// ChargeDays adds days to the ledger's used total. The charge is bounded:
	// it fails with ErrInsufficientBalance rather than driving used days past
	// total_days + carried_over.
	ChargeDays(ctx context.Context, id string, days int) error
}
