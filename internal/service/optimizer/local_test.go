package optimizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
	"github.com/wellura/staff-scheduling-go/internal/service/optimizer"
)

func shift(id string, start, end time.Time) optimizer.ShiftRequirement {
	return optimizer.ShiftRequirement{ShiftID: id, Type: "shift", Start: start, End: end}
}

func TestLocalStrategyRoundRobins(t *testing.T) {
	local := optimizer.NewLocalStrategy()

	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	input := optimizer.OptimizeInput{
		Staff: []optimizer.StaffProfile{
			{StaffID: "staff-a"},
			{StaffID: "staff-b"},
		},
		Shifts: []optimizer.ShiftRequirement{
			shift("shift-1", day.Add(9*time.Hour), day.Add(13*time.Hour)),
			shift("shift-2", day.AddDate(0, 0, 1).Add(9*time.Hour), day.AddDate(0, 0, 1).Add(13*time.Hour)),
			shift("shift-3", day.AddDate(0, 0, 2).Add(9*time.Hour), day.AddDate(0, 0, 2).Add(13*time.Hour)),
		},
		Constraints: optimizer.DefaultConstraints(),
	}

	result, err := local.Optimize(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, result.Assignments, 3)
	assert.Equal(t, "staff-a", result.Assignments[0].StaffID)
	assert.Equal(t, "staff-b", result.Assignments[1].StaffID)
	assert.Equal(t, "staff-a", result.Assignments[2].StaffID)
	assert.Empty(t, result.Violations)
	assert.Equal(t, float64(1), result.Metrics["fallback"])

	// Same input, same output.
	again, err := local.Optimize(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, result.Assignments, again.Assignments)
}

func TestLocalStrategySkipsBusyStaff(t *testing.T) {
	local := optimizer.NewLocalStrategy()

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	result, err := local.Optimize(context.Background(), optimizer.OptimizeInput{
		Staff: []optimizer.StaffProfile{
			{StaffID: "staff-a", Busy: []optimizer.Interval{{Start: start, End: end}}},
			{StaffID: "staff-b"},
		},
		Shifts: []optimizer.ShiftRequirement{shift("shift-1", start, end)},
	})
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "staff-b", result.Assignments[0].StaffID)
}

func TestLocalStrategySkipsApprovedTimeOff(t *testing.T) {
	local := optimizer.NewLocalStrategy()

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	result, err := local.Optimize(context.Background(), optimizer.OptimizeInput{
		Staff: []optimizer.StaffProfile{
			{StaffID: "staff-a", TimeOff: []optimizer.Interval{{
				Start: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			}}},
		},
		Shifts: []optimizer.ShiftRequirement{shift("shift-1", start, end)},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "shift-1")
}

func TestLocalStrategyHonorsAvailabilityWindows(t *testing.T) {
	local := optimizer.NewLocalStrategy()

	// Monday 09:00-13:00 shift; staff-a only works Monday afternoons,
	// staff-b covers Monday mornings.
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	result, err := local.Optimize(context.Background(), optimizer.OptimizeInput{
		Staff: []optimizer.StaffProfile{
			{StaffID: "staff-a", Availability: []staff.AvailabilityWindow{
				{DayOfWeek: time.Monday, StartMinute: 14 * 60, EndMinute: 20 * 60},
			}},
			{StaffID: "staff-b", Availability: []staff.AvailabilityWindow{
				{DayOfWeek: time.Monday, StartMinute: 8 * 60, EndMinute: 16 * 60},
			}},
		},
		Shifts: []optimizer.ShiftRequirement{shift("shift-1", start, end)},
	})
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "staff-b", result.Assignments[0].StaffID)
	assert.Equal(t, 1.0, result.Assignments[0].Score)
}
