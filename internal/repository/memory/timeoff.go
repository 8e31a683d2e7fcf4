package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/domain/timeoff"
)

type TimeOffRequestRepository struct {
	mu       sync.Mutex
	requests map[string]timeoff.TimeOffRequest

	lockMu     sync.Mutex
	staffLocks map[string]*sync.Mutex
}

func NewTimeOffRequestRepository() *TimeOffRequestRepository {
	return &TimeOffRequestRepository{
		requests:   make(map[string]timeoff.TimeOffRequest),
		staffLocks: make(map[string]*sync.Mutex),
	}
}

func (r *TimeOffRequestRepository) Create(ctx context.Context, req timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID] = req
	return req, nil
}

func (r *TimeOffRequestRepository) GetByID(ctx context.Context, id string) (timeoff.TimeOffRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffNotFound
	}
	return req, nil
}

func (r *TimeOffRequestRepository) Update(ctx context.Context, req timeoff.TimeOffRequest) (timeoff.TimeOffRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.requests[req.ID]
	if !ok {
		return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffNotFound
	}
	if existing.Status != timeoff.StatusPending {
		return timeoff.TimeOffRequest{}, timeoff.ErrTimeOffAlreadyProcessed
	}
	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *TimeOffRequestRepository) ListOverlapping(ctx context.Context, staffID string, start, end time.Time, statuses []timeoff.Status) ([]timeoff.TimeOffRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[timeoff.Status]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	var out []timeoff.TimeOffRequest
	for _, req := range r.requests {
		if req.StaffID != staffID {
			continue
		}
		if _, ok := wanted[req.Status]; !ok {
			continue
		}
		// Inclusive date ranges: [StartDate, EndDate] vs [start, end].
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			out = append(out, req)
		}
	}
	sortByStartDate(out)
	return out, nil
}

func (r *TimeOffRequestRepository) ListByStaff(ctx context.Context, staffID string) ([]timeoff.TimeOffRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []timeoff.TimeOffRequest
	for _, req := range r.requests {
		if req.StaffID == staffID {
			out = append(out, req)
		}
	}
	sortByStartDate(out)
	return out, nil
}

func (r *TimeOffRequestRepository) WithStaffLock(ctx context.Context, staffID string, fn func(ctx context.Context) error) error {
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

func sortByStartDate(requests []timeoff.TimeOffRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].StartDate.Before(requests[j].StartDate)
	})
}

type VacationBalanceRepository struct {
	mu       sync.Mutex
	balances map[string]timeoff.VacationBalance // keyed by id
}

func NewVacationBalanceRepository() *VacationBalanceRepository {
	return &VacationBalanceRepository{balances: make(map[string]timeoff.VacationBalance)}
}

func (r *VacationBalanceRepository) GetByStaffAndYear(ctx context.Context, staffID string, year int) (timeoff.VacationBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.balances {
		if b.StaffID == staffID && b.Year == year {
			return b, nil
		}
	}
	return timeoff.VacationBalance{}, timeoff.ErrBalanceNotFound
}

func (r *VacationBalanceRepository) Create(ctx context.Context, balance timeoff.VacationBalance) (timeoff.VacationBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the unique (staff_id, year) constraint: a concurrent create
	// resolves to the existing row.
	for _, b := range r.balances {
		if b.StaffID == balance.StaffID && b.Year == balance.Year {
			return b, nil
		}
	}

	now := time.Now()
	balance.CreatedAt = now
	balance.UpdatedAt = now
	r.balances[balance.ID] = balance
	return balance, nil
}

func (r *VacationBalanceRepository) ChargeDays(ctx context.Context, id string, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.balances[id]
	if !ok {
		return timeoff.ErrBalanceNotFound
	}
	if b.UsedDays+days > b.TotalDays+b.CarriedOver {
		return timeoff.ErrInsufficientBalance
	}
	b.UsedDays += days
	b.UpdatedAt = time.Now()
	r.balances[id] = b
	return nil
}
