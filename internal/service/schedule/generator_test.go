package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scheduledomain "github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/repository/memory"
)

// seedTemplate inserts a recurring template directly, bypassing Create's
// horizon-bound generation, so tests control materialization explicitly.
func seedTemplate(t *testing.T, repo *memory.ScheduleRepository, staffID, rule string) scheduledomain.Schedule {
	t.Helper()
	created, err := repo.Create(context.Background(), scheduledomain.Schedule{
		ID:             "template-1",
		StaffID:        staffID,
		Type:           "shift",
		StartTime:      time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC),
		Status:         scheduledomain.StatusScheduled,
		RecurrenceRule: &rule,
		CreatedBy:      "manager-1",
		UpdatedBy:      "manager-1",
	})
	require.NoError(t, err)
	return created
}

func horizon(year, month, day int) *time.Time {
	h := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &h
}

func TestMaterializeSkipsFirstOccurrence(t *testing.T) {
	svc, repo := newService(t)
	// Mondays and Wednesdays from Mon 2024-06-03, ten occurrences total.
	template := seedTemplate(t, repo, "staff-anna", "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=10")

	results, err := svc.Materialize(context.Background(), template.ID, horizon(2024, 12, 31))
	require.NoError(t, err)

	// The template covers the first occurrence itself.
	require.Len(t, results, 9)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Schedule)
		assert.Equal(t, "staff-anna", r.Schedule.StaffID)
		require.NotNil(t, r.Schedule.ParentScheduleID)
		assert.Equal(t, template.ID, *r.Schedule.ParentScheduleID)
		assert.Equal(t, 8*time.Hour, r.Schedule.Duration())
	}

	assert.Equal(t, time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC), results[0].Date)
	assert.Equal(t, time.Date(2024, 7, 3, 9, 0, 0, 0, time.UTC), results[8].Date)

	updated, err := repo.GetByID(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.GeneratedCount)
}

func TestMaterializeReportsConflictsAndContinues(t *testing.T) {
	svc, repo := newService(t)
	template := seedTemplate(t, repo, "staff-anna", "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=10")

	// A manually created shift already occupies Mon 2024-06-10.
	create(t, svc, "staff-anna", "2024-06-10T09:00:00Z", "2024-06-10T17:00:00Z")

	results, err := svc.Materialize(context.Background(), template.ID, horizon(2024, 12, 31))
	require.NoError(t, err)
	require.Len(t, results, 9)

	var failed, created int
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.ErrorIs(t, r.Err, scheduledomain.ErrScheduleConflict)
			assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), r.Date)
		} else {
			created++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 8, created)

	updated, err := repo.GetByID(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.GeneratedCount)
}

func TestMaterializeIsIdempotent(t *testing.T) {
	svc, repo := newService(t)
	template := seedTemplate(t, repo, "staff-anna", "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=10")

	first, err := svc.Materialize(context.Background(), template.ID, horizon(2024, 12, 31))
	require.NoError(t, err)
	require.Len(t, first, 9)

	// A second run finds every date already covered and creates nothing.
	second, err := svc.Materialize(context.Background(), template.ID, horizon(2024, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, second)

	updated, err := repo.GetByID(context.Background(), template.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.GeneratedCount)
}

func TestMaterializeCapsOccurrences(t *testing.T) {
	svc, repo := newService(t)
	template := seedTemplate(t, repo, "staff-anna", "FREQ=DAILY")

	results, err := svc.Materialize(context.Background(), template.ID, horizon(2030, 1, 1))
	require.NoError(t, err)

	// An unbounded daily rule stops at the expansion cap.
	assert.Len(t, results, 99)
}

func TestMaterializeRejectsNonTemplate(t *testing.T) {
	svc, _ := newService(t)

	plain := create(t, svc, "staff-anna", "2024-06-03T09:00:00Z", "2024-06-03T17:00:00Z")

	_, err := svc.Materialize(context.Background(), plain.ID, nil)
	assert.ErrorIs(t, err, scheduledomain.ErrNotTemplate)
}

func TestMaterializeAllCoversEveryTemplate(t *testing.T) {
	svc, repo := newService(t)

	rule := "FREQ=WEEKLY;COUNT=3"
	for _, id := range []string{"template-a", "template-b"} {
		_, err := repo.Create(context.Background(), scheduledomain.Schedule{
			ID:             id,
			StaffID:        "staff-" + id,
			Type:           "shift",
			StartTime:      time.Now().Add(24 * time.Hour),
			EndTime:        time.Now().Add(32 * time.Hour),
			Status:         scheduledomain.StatusScheduled,
			RecurrenceRule: &rule,
			CreatedBy:      "manager-1",
			UpdatedBy:      "manager-1",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MaterializeAll(context.Background()))

	for _, id := range []string{"template-a", "template-b"} {
		updated, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.GeneratedCount)
	}
}
