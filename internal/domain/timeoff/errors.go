package timeoff

import "errors"

var (
	ErrTimeOffNotFound         = errors.New("time-off request not found")
	ErrTimeOffAlreadyProcessed = errors.New("time-off request already processed")
	ErrOverlappingTimeOff      = errors.New("overlapping time-off request exists")
	ErrInsufficientBalance     = errors.New("insufficient vacation balance")
	ErrCancelNotPending        = errors.New("only pending time-off requests can be cancelled")
	ErrBalanceNotFound         = errors.New("vacation balance not found")
)
