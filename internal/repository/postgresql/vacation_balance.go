package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
)

type vacationBalanceRepositoryImpl struct {
	db *database.DB
}

func NewVacationBalanceRepository(db *database.DB) timeoff.VacationBalanceRepository {
	return &vacationBalanceRepositoryImpl{db: db}
}

const balanceColumns = `
	id, staff_id, year, total_days, used_days, carried_over, created_at, updated_at`

func scanBalance(row pgx.Row) (timeoff.VacationBalance, error) {
	var b timeoff.VacationBalance
	err := row.Scan(
		&b.ID,
		&b.StaffID,
		&b.Year,
		&b.TotalDays,
		&b.UsedDays,
		&b.CarriedOver,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *vacationBalanceRepositoryImpl) GetByStaffAndYear(ctx context.Context, staffID string, year int) (timeoff.VacationBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + balanceColumns + ` FROM vacation_balances WHERE staff_id = $1 AND year = $2`

	b, err := scanBalance(q.QueryRow(ctx, query, staffID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.VacationBalance{}, timeoff.ErrBalanceNotFound
		}
		return timeoff.VacationBalance{}, err
	}
	return b, nil
}

func (r *vacationBalanceRepositoryImpl) Create(ctx context.Context, balance timeoff.VacationBalance) (timeoff.VacationBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Ledger rows are created lazily; a concurrent creation for the same
	// (staff, year) resolves to the existing row.
	query := `
		INSERT INTO vacation_balances (
			id, staff_id, year, total_days, used_days, carried_over,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (staff_id, year) DO UPDATE SET updated_at = NOW()
		RETURNING` + balanceColumns

	return scanBalance(q.QueryRow(ctx, query,
		balance.ID,
		balance.StaffID,
		balance.Year,
		balance.TotalDays,
		balance.UsedDays,
		balance.CarriedOver,
	))
}

// ChargeDays refuses any charge that would push used_days past the ledger's
// entitlement, enforced in the statement itself.
func (r *vacationBalanceRepositoryImpl) ChargeDays(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE vacation_balances
		SET used_days = used_days + $2, updated_at = NOW()
		WHERE id = $1
		  AND used_days + $2 <= total_days + carried_over`, id, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeoff.ErrInsufficientBalance
	}
	return nil
}
