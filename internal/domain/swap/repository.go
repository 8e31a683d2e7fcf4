package swap

import "context"

type SwapRequestRepository interface {
	Create(ctx context.Context, req ShiftSwapRequest) (ShiftSwapRequest, error)
	GetByID(ctx context.Context, id string) (ShiftSwapRequest, error)
	Update(ctx context.Context, req ShiftSwapRequest) (ShiftSwapRequest, error)
	ListByStaff(ctx context.Context, staffID string) ([]ShiftSwapRequest, error)
}
