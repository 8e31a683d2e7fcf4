package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/wellura/staff-scheduling-go/internal/domain/swap"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
)

type swapRequestRepositoryImpl struct {
	db *database.DB
}

func NewSwapRequestRepository(db *database.DB) swap.SwapRequestRepository {
	return &swapRequestRepositoryImpl{db: db}
}

const swapColumns = `
	id, from_schedule_id, from_staff_id, to_staff_id, requested_by, reason,
	status, processed_by, processed_at, created_at, updated_at`

func scanSwapRequest(row pgx.Row) (swap.ShiftSwapRequest, error) {
	var req swap.ShiftSwapRequest
	err := row.Scan(
		&req.ID,
		&req.FromScheduleID,
		&req.FromStaffID,
		&req.ToStaffID,
		&req.RequestedBy,
		&req.Reason,
		&req.Status,
		&req.ProcessedBy,
		&req.ProcessedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

func (r *swapRequestRepositoryImpl) Create(ctx context.Context, req swap.ShiftSwapRequest) (swap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_swap_requests (
			id, from_schedule_id, from_staff_id, to_staff_id, requested_by,
			reason, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING` + swapColumns

	return scanSwapRequest(q.QueryRow(ctx, query,
		req.ID,
		req.FromScheduleID,
		req.FromStaffID,
		req.ToStaffID,
		req.RequestedBy,
		req.Reason,
		req.Status,
	))
}

func (r *swapRequestRepositoryImpl) GetByID(ctx context.Context, id string) (swap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + swapColumns + ` FROM shift_swap_requests WHERE id = $1`

	req, err := scanSwapRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.ShiftSwapRequest{}, swap.ErrSwapRequestNotFound
		}
		return swap.ShiftSwapRequest{}, err
	}
	return req, nil
}

func (r *swapRequestRepositoryImpl) Update(ctx context.Context, req swap.ShiftSwapRequest) (swap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Only pending rows may change; terminal requests are immutable.
	query := `
		UPDATE shift_swap_requests
		SET status = $2, processed_by = $3, processed_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING` + swapColumns

	updated, err := scanSwapRequest(q.QueryRow(ctx, query,
		req.ID,
		req.Status,
		req.ProcessedBy,
		req.ProcessedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.ShiftSwapRequest{}, swap.ErrSwapAlreadyProcessed
		}
		return swap.ShiftSwapRequest{}, err
	}
	return updated, nil
}

func (r *swapRequestRepositoryImpl) ListByStaff(ctx context.Context, staffID string) ([]swap.ShiftSwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + swapColumns + `
		FROM shift_swap_requests
		WHERE from_staff_id = $1 OR to_staff_id = $1
		ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []swap.ShiftSwapRequest
	for rows.Next() {
		req, err := scanSwapRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
