package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleColumns = `
	id, staff_id, type, start_time, end_time, status, recurrence_rule,
	parent_schedule_id, location, notes, generated_count, cancelled_count,
	created_by, updated_by, created_at, updated_at`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var s schedule.Schedule
	err := row.Scan(
		&s.ID,
		&s.StaffID,
		&s.Type,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.RecurrenceRule,
		&s.ParentScheduleID,
		&s.Location,
		&s.Notes,
		&s.GeneratedCount,
		&s.CancelledCount,
		&s.CreatedBy,
		&s.UpdatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (
			id, staff_id, type, start_time, end_time, status, recurrence_rule,
			parent_schedule_id, location, notes, created_by, updated_by,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING` + scheduleColumns

	return scanSchedule(q.QueryRow(ctx, query,
		s.ID,
		s.StaffID,
		s.Type,
		s.StartTime,
		s.EndTime,
		s.Status,
		s.RecurrenceRule,
		s.ParentScheduleID,
		s.Location,
		s.Notes,
		s.CreatedBy,
		s.UpdatedBy,
	))
}

func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + scheduleColumns + ` FROM schedules WHERE id = $1`

	s, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, err
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) ListActiveByStaff(ctx context.Context, staffID string, excludeID string) ([]schedule.Schedule, error) {
	query := `
		SELECT` + scheduleColumns + `
		FROM schedules
		WHERE staff_id = $1
		  AND status IN ('scheduled', 'in_progress')
		  AND ($2 = '' OR id <> $2)
		ORDER BY start_time`

	return r.list(ctx, query, staffID, excludeID)
}

func (r *scheduleRepositoryImpl) ListByStaffInRange(ctx context.Context, staffID string, from, to time.Time) ([]schedule.Schedule, error) {
	query := `
		SELECT` + scheduleColumns + `
		FROM schedules
		WHERE staff_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`

	return r.list(ctx, query, staffID, from, to)
}

func (r *scheduleRepositoryImpl) UpdateStatus(ctx context.Context, id string, status schedule.Status, updatedBy string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET status = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING` + scheduleColumns

	s, err := scanSchedule(q.QueryRow(ctx, query, id, status, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, err
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) UpdateStaff(ctx context.Context, id string, staffID string, updatedBy string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET staff_id = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING` + scheduleColumns

	s, err := scanSchedule(q.QueryRow(ctx, query, id, staffID, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, err
	}
	return s, nil
}

func (r *scheduleRepositoryImpl) ChildExistsOnDate(ctx context.Context, templateID string, day time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE parent_schedule_id = $1
			  AND start_time >= $2
			  AND start_time < $3
		)`

	var exists bool
	err := q.QueryRow(ctx, query, templateID, day, day.AddDate(0, 0, 1)).Scan(&exists)
	return exists, err
}

func (r *scheduleRepositoryImpl) AddGenerated(ctx context.Context, templateID string, n int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE schedules
		SET generated_count = generated_count + $2, updated_at = NOW()
		WHERE id = $1`, templateID, n)
	return err
}

func (r *scheduleRepositoryImpl) AddCancelled(ctx context.Context, templateID string, n int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE schedules
		SET cancelled_count = cancelled_count + $2, updated_at = NOW()
		WHERE id = $1`, templateID, n)
	return err
}

func (r *scheduleRepositoryImpl) ListActiveTemplates(ctx context.Context) ([]schedule.Schedule, error) {
	query := `
		SELECT` + scheduleColumns + `
		FROM schedules
		WHERE recurrence_rule IS NOT NULL
		  AND parent_schedule_id IS NULL
		  AND status IN ('scheduled', 'in_progress')
		ORDER BY created_at`

	return r.list(ctx, query)
}

// WithStaffLock serializes all schedule writes for one staff member through a
// transaction-scoped advisory lock, so the conflict check and the insert it
// guards act as one atomic unit.
func (r *scheduleRepositoryImpl) WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock(hashtext($1))`, staffID); err != nil {
			return err
		}
		return fn(txCtx)
	})
}

func (r *scheduleRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
