package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)

	// ListActiveByStaff returns the staff member's schedules with status
	// scheduled or in_progress, excluding excludeID when non-empty.
	ListActiveByStaff(ctx context.Context, staffID string, excludeID string) ([]Schedule, error)
	ListByStaffInRange(ctx context.Context, staffID string, from, to time.Time) ([]Schedule, error)

	UpdateStatus(ctx context.Context, id string, status Status, updatedBy string) (Schedule, error)
	UpdateStaff(ctx context.Context, id string, staffID string, updatedBy string) (Schedule, error)

	// ChildExistsOnDate reports whether a child of template already starts on
	// the civil date of day. This is the generator's idempotency key.
	ChildExistsOnDate(ctx context.Context, templateID string, day time.Time) (bool, error)
	AddGenerated(ctx context.Context, templateID string, n int) error
	AddCancelled(ctx context.Context, templateID string, n int) error
	ListActiveTemplates(ctx context.Context) ([]Schedule, error)

	// WithStaffLock runs fn while holding an exclusive per-staff lock so a
	// conflict check and the write it guards execute as one atomic unit.
	WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error
}
