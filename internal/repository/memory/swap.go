package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/domain/swap"
)

type SwapRequestRepository struct {
	mu       sync.Mutex
	requests map[string]swap.ShiftSwapRequest
}

func NewSwapRequestRepository() *SwapRequestRepository {
	return &SwapRequestRepository{requests: make(map[string]swap.ShiftSwapRequest)}
}

func (r *SwapRequestRepository) Create(ctx context.Context, req swap.ShiftSwapRequest) (swap.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.requests[req.ID] = req
	return req, nil
}

func (r *SwapRequestRepository) GetByID(ctx context.Context, id string) (swap.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return swap.ShiftSwapRequest{}, swap.ErrSwapRequestNotFound
	}
	return req, nil
}

func (r *SwapRequestRepository) Update(ctx context.Context, req swap.ShiftSwapRequest) (swap.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.requests[req.ID]
	if !ok {
		return swap.ShiftSwapRequest{}, swap.ErrSwapRequestNotFound
	}
	if existing.Status != swap.StatusPending {
		return swap.ShiftSwapRequest{}, swap.ErrSwapAlreadyProcessed
	}
	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *SwapRequestRepository) ListByStaff(ctx context.Context, staffID string) ([]swap.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []swap.ShiftSwapRequest
	for _, req := range r.requests {
		if req.FromStaffID == staffID || req.ToStaffID == staffID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
