package notification

import "time"

// Event is a fire-and-forget notification to the platform notification
// service. Delivery failures never roll back the state change that produced
// the event.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	StaffID    string         `json:"staff_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type EventType string

const (
	EventShiftAssigned    EventType = "shift_assigned"
	EventSwapRequested    EventType = "shift_swap_requested"
	EventSwapApproved     EventType = "shift_swap_approved"
	EventSwapRejected     EventType = "shift_swap_rejected"
	EventTimeOffRequested EventType = "time_off_requested"
	EventTimeOffApproved  EventType = "time_off_approved"
	EventTimeOffRejected  EventType = "time_off_rejected"
	EventTimeOffCancelled EventType = "time_off_cancelled"
)
