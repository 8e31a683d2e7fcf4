package optimizer

import (
	"context"
	"fmt"
	"sort"
)

// LocalStrategy is the deterministic fallback used when the optimization
// backend is unreachable. It round-robins shifts over eligible staff, where
// eligible means no overlapping commitment, no overlapping time off, and an
// availability window covering the shift. It makes no attempt at optimality.
type LocalStrategy struct{}

func NewLocalStrategy() *LocalStrategy {
	return &LocalStrategy{}
}

func (l *LocalStrategy) Optimize(ctx context.Context, input OptimizeInput) (OptimizeResult, error) {
	staff := make([]StaffProfile, len(input.Staff))
	copy(staff, input.Staff)
	sort.Slice(staff, func(i, j int) bool { return staff[i].StaffID < staff[j].StaffID })

	shifts := make([]ShiftRequirement, len(input.Shifts))
	copy(shifts, input.Shifts)
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Start.Before(shifts[j].Start) })

	// Assignments made in this run count as commitments for later shifts.
	busy := make(map[string][]Interval, len(staff))
	for _, p := range staff {
		busy[p.StaffID] = append([]Interval(nil), p.Busy...)
	}

	result := OptimizeResult{
		Metrics: map[string]float64{"fallback": 1},
	}

	cursor := 0
	for _, shift := range shifts {
		if err := ctx.Err(); err != nil {
			return OptimizeResult{}, err
		}

		window := Interval{Start: shift.Start, End: shift.End}
		assigned := false

		for offset := 0; offset < len(staff); offset++ {
			candidate := staff[(cursor+offset)%len(staff)]
			score, ok := l.eligible(candidate, window, busy[candidate.StaffID])
			if !ok {
				continue
			}

			result.Assignments = append(result.Assignments, Assignment{
				StaffID: candidate.StaffID,
				ShiftID: shift.ShiftID,
				Score:   score,
			})
			busy[candidate.StaffID] = append(busy[candidate.StaffID], window)
			cursor = (cursor + offset + 1) % len(staff)
			assigned = true
			break
		}

		if !assigned {
			result.Violations = append(result.Violations,
				fmt.Sprintf("no eligible staff for shift %s", shift.ShiftID))
		}
	}

	result.Metrics["assigned"] = float64(len(result.Assignments))
	result.Metrics["unfilled"] = float64(len(result.Violations))

	return result, nil
}

func (l *LocalStrategy) eligible(p StaffProfile, window Interval, busy []Interval) (float64, bool) {
	for _, b := range busy {
		if window.Overlaps(b) {
			return 0, false
		}
	}
	for _, off := range p.TimeOff {
		if window.Overlaps(off) {
			return 0, false
		}
	}

	// Staff with no declared windows are treated as generally available, at a
	// lower score than an explicit fit.
	if len(p.Availability) == 0 {
		return 0.5, true
	}
	for _, w := range p.Availability {
		if w.Covers(window.Start, window.End) {
			return 1.0, true
		}
	}
	return 0, false
}
