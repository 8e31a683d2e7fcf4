package swap

import "time"

// ShiftSwapRequest asks to move a schedule from its current owner to another
// staff member. A request is created once per swap attempt and becomes
// immutable once approved or rejected.
type ShiftSwapRequest struct {
	ID             string
	FromScheduleID string
	FromStaffID    string
	ToStaffID      string
	RequestedBy    string
	Reason         string
	Status         Status
	ProcessedBy    *string
	ProcessedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

var DecisionValues = []string{
	string(DecisionApprove),
	string(DecisionReject),
}
