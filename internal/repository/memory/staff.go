// Package memory provides in-memory repository implementations. They back
// the service tests and local development runs; production wiring uses the
// postgresql package.
package memory

import (
	"context"
	"sync"

	"github.com/wellura/staff-scheduling-go/internal/domain/staff"
)

type StaffRepository struct {
	mu      sync.RWMutex
	members map[string]staff.Staff
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{members: make(map[string]staff.Staff)}
}

// Put seeds or replaces a staff member.
func (r *StaffRepository) Put(s staff.Staff) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[s.ID] = s
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (r *StaffRepository) ListActive(ctx context.Context) ([]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []staff.Staff
	for _, s := range r.members {
		if s.Active {
			members = append(members, s)
		}
	}
	return members, nil
}

func (r *StaffRepository) ListActiveByDepartment(ctx context.Context, department string) ([]staff.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []staff.Staff
	for _, s := range r.members {
		if s.Active && s.Department == department {
			members = append(members, s)
		}
	}
	return members, nil
}
