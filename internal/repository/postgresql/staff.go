package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/pkg/database"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `
	id, full_name, department, active, employment_type, max_hours_per_week,
	hourly_rate, hire_date, availability, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	var availability []byte
	err := row.Scan(
		&s.ID,
		&s.FullName,
		&s.Department,
		&s.Active,
		&s.EmploymentType,
		&s.MaxHoursPerWeek,
		&s.HourlyRate,
		&s.HireDate,
		&availability,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return staff.Staff{}, err
	}
	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &s.Availability); err != nil {
			return staff.Staff{}, fmt.Errorf("decode availability: %w", err)
		}
	}
	return s, nil
}

func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + staffColumns + ` FROM staff WHERE id = $1`

	s, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}
	return s, nil
}

func (r *staffRepositoryImpl) ListActive(ctx context.Context) ([]staff.Staff, error) {
	return r.list(ctx, `SELECT`+staffColumns+` FROM staff WHERE active ORDER BY full_name`)
}

func (r *staffRepositoryImpl) ListActiveByDepartment(ctx context.Context, department string) ([]staff.Staff, error) {
	return r.list(ctx,
		`SELECT`+staffColumns+` FROM staff WHERE active AND department = $1 ORDER BY full_name`,
		department)
}

func (r *staffRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return members, rows.Err()
}
