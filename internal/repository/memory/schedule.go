package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/pkg/dateutil"
)

type ScheduleRepository struct {
	mu        sync.Mutex
	schedules map[string]schedule.Schedule

	lockMu     sync.Mutex
	staffLocks map[string]*sync.Mutex
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{
		schedules:  make(map[string]schedule.Schedule),
		staffLocks: make(map[string]*sync.Mutex),
	}
}

func (r *ScheduleRepository) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.schedules[s.ID] = s
	return s, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (r *ScheduleRepository) ListActiveByStaff(ctx context.Context, staffID string, excludeID string) ([]schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []schedule.Schedule
	for _, s := range r.schedules {
		if s.StaffID != staffID || !s.Active() {
			continue
		}
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		out = append(out, s)
	}
	sortByStart(out)
	return out, nil
}

func (r *ScheduleRepository) ListByStaffInRange(ctx context.Context, staffID string, from, to time.Time) ([]schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []schedule.Schedule
	for _, s := range r.schedules {
		if s.StaffID == staffID && dateutil.Overlaps(s.StartTime, s.EndTime, from, to) {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id string, status schedule.Status, updatedBy string) (schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	s.Status = status
	s.UpdatedBy = updatedBy
	s.UpdatedAt = time.Now()
	r.schedules[id] = s
	return s, nil
}

func (r *ScheduleRepository) UpdateStaff(ctx context.Context, id string, staffID string, updatedBy string) (schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	s.StaffID = staffID
	s.UpdatedBy = updatedBy
	s.UpdatedAt = time.Now()
	r.schedules[id] = s
	return s, nil
}

func (r *ScheduleRepository) ChildExistsOnDate(ctx context.Context, templateID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.schedules {
		if s.ParentScheduleID != nil && *s.ParentScheduleID == templateID && dateutil.SameDay(s.StartTime, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ScheduleRepository) AddGenerated(ctx context.Context, templateID string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[templateID]
	if !ok {
		return schedule.ErrScheduleNotFound
	}
	s.GeneratedCount += n
	s.UpdatedAt = time.Now()
	r.schedules[templateID] = s
	return nil
}

func (r *ScheduleRepository) AddCancelled(ctx context.Context, templateID string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.schedules[templateID]
	if !ok {
		return schedule.ErrScheduleNotFound
	}
	s.CancelledCount += n
	s.UpdatedAt = time.Now()
	r.schedules[templateID] = s
	return nil
}

func (r *ScheduleRepository) ListActiveTemplates(ctx context.Context) ([]schedule.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []schedule.Schedule
	for _, s := range r.schedules {
		if s.IsTemplate() && s.Active() {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *ScheduleRepository) WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error {
	r.lockMu.Lock()
	lock, ok := r.staffLocks[staffID]
	if !ok {
		lock = &sync.Mutex{}
		r.staffLocks[staffID] = lock
	}
	r.lockMu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

func sortByStart(schedules []schedule.Schedule) {
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].StartTime.Equal(schedules[j].StartTime) {
			return schedules[i].ID < schedules[j].ID
		}
		return schedules[i].StartTime.Before(schedules[j].StartTime)
	})
}
