package swap

import "errors"

var (
	ErrSwapRequestNotFound  = errors.New("shift swap request not found")
	ErrSwapAlreadyProcessed = errors.New("shift swap request already processed")
)
