package timeoff

import "time"

// TimeOffRequest covers an inclusive range of civil dates. WorkingDays is
// computed once at creation against the public-holiday calendar and is the
// amount charged to the vacation ledger on approval.
type TimeOffRequest struct {
	ID          string
	StaffID     string
	StartDate   time.Time
	EndDate     time.Time
	Type        Type
	WorkingDays int
	Status      Status
	Reason      string
	RequestedBy string
	ProcessedBy *string
	ProcessedAt *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeUnpaid   Type = "unpaid"
)

var TypeValues = []string{
	string(TypeVacation),
	string(TypeSick),
	string(TypePersonal),
	string(TypeUnpaid),
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionCancel  Decision = "cancel"
)

var DecisionValues = []string{
	string(DecisionApprove),
	string(DecisionReject),
	string(DecisionCancel),
}

// VacationBalance is the per-staff, per-calendar-year vacation ledger row.
// UsedDays only ever grows, and only through approval of vacation requests.
type VacationBalance struct {
	ID          string
	StaffID     string
	Year        int
	TotalDays   int
	UsedDays    int
	CarriedOver int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Remaining returns the days still available this year, floored at 0.
func (b VacationBalance) Remaining() int {
	remaining := b.TotalDays + b.CarriedOver - b.UsedDays
	if remaining < 0 {
		return 0
	}
	return remaining
}
