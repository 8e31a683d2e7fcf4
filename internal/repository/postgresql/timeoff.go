package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
)

type timeOffRequestRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRequestRepository(db *database.DB) timeoff.TimeOffRequestRepository {
	return &timeOffRequestRepositoryImpl{db: db}
}

const timeOffColumns = `
	id, staff_id, start_date, end_date, type, working_days, status, reason,
	requested_by, processed_by, processed_at, notes, created_at, updated_at`

func scanTimeOffRequest(row pgx.Row) (timeoff.TimeOffRequest, error) {
	var req timeoff.TimeOffRequest
	err := row.Scan(
		&req.ID,
		&req.StaffID,
		&req.StartDate,
		&req.EndDate,
		&req.Type,
		&req.WorkingDays,
		&req.Status,
		&req.Reason,
		&req.RequestedBy,
		&req.ProcessedBy,
		&req.ProcessedAt,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func (r *timeOffRequestRepositoryImpl) Create(ctx context.Context, req timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (
			id, staff_id, start_date, end_date, type, working_days, status,
			reason, requested_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING` + timeOffColumns

	return scanTimeOffRequest(q.QueryRow(ctx, query,
		req.ID,
		req.StaffID,
		req.StartDate,
		req.EndDate,
		req.Type,
		req.WorkingDays,
		req.Status,
		req.Reason,
		req.RequestedBy,
	))
}

func (r *timeOffRequestRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + timeOffColumns + ` FROM time_off_requests WHERE id = $1`

	req, err := scanTimeOffRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffNotFound
		}
		return timeoff.TimeOffRequest{}, err
	}
	return req, nil
}

func (r *timeOffRequestRepositoryImpl) Update(ctx context.Context, req timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Terminal requests never transition again; the status guard enforces it
	// at the row level as well.
	query := `
		UPDATE time_off_requests
		SET status = $2, processed_by = $3, processed_at = $4, notes = $5,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING` + timeOffColumns

	updated, err := scanTimeOffRequest(q.QueryRow(ctx, query,
		req.ID,
		req.Status,
		req.ProcessedBy,
		req.ProcessedAt,
		req.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffAlreadyProcessed
		}
		return timeoff.TimeOffRequest{}, err
	}
	return updated, nil
}

func (r *timeOffRequestRepositoryImpl) ListOverlapping(ctx context.Context, staffID string, start, end time.Time, statuses []timeoff.Status) ([]timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + timeOffColumns + `
		FROM time_off_requests
		WHERE staff_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
		  AND status = ANY($4)
		ORDER BY start_date`

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := q.Query(ctx, query, staffID, start, end, statusStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimeOffRequests(rows)
}

func (r *timeOffRequestRepositoryImpl) ListByStaff(ctx context.Context, staffID string) ([]timeoff.TimeOffRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + timeOffColumns + `
		FROM time_off_requests
		WHERE staff_id = $1
		ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTimeOffRequests(rows)
}

// WithStaffLock serializes time-off processing for one staff member through a
// transaction-scoped advisory lock, so the ledger charge and the status
// update it pairs with commit or roll back together.
func (r *timeOffRequestRepositoryImpl) WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock(hashtext($1))`, staffID); err != nil {
			return err
		}
		return fn(txCtx)
	})
}

func collectTimeOffRequests(rows pgx.Rows) ([]timeoff.TimeOffRequest, error) {
	var requests []timeoff.TimeOffRequest
	for rows.Next() {
		req, err := scanTimeOffRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
