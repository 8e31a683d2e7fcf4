package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// MaxOccurrences is the hard cap on expansion, enforced regardless of any
// caller-supplied horizon or count so a rule can never materialize unbounded.
const MaxOccurrences = 100

// ErrInvalidRule indicates the rule text is not a valid RFC 5545 RRULE.
var ErrInvalidRule = errors.New("invalid recurrence rule")

func parse(rule string, seed time.Time) (*rrule.RRule, error) {
	text := strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if text == "" {
		return nil, ErrInvalidRule
	}

	opt, err := rrule.StrToROption(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	opt.Dtstart = seed

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return r, nil
}

// Validate parses rule text without expanding it.
func Validate(rule string) error {
	_, err := parse(rule, time.Now())
	return err
}

// Expand returns the ordered occurrence start times of rule seeded at seed.
// Expansion stops at until (when non-zero), at maxCount occurrences (when
// positive), and always at MaxOccurrences.
func Expand(rule string, seed time.Time, until time.Time, maxCount int) ([]time.Time, error) {
	r, err := parse(rule, seed)
	if err != nil {
		return nil, err
	}

	limit := MaxOccurrences
	if maxCount > 0 && maxCount < limit {
		limit = maxCount
	}

	var occurrences []time.Time
	next := r.Iterator()
	for len(occurrences) < limit {
		occ, ok := next()
		if !ok {
			break
		}
		if !until.IsZero() && occ.After(until) {
			break
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
