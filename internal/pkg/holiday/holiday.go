package holiday

import (
	"fmt"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/pkg/dateutil"
)

// Provider answers whether a date is a public holiday. The authoritative
// calendar lives in the platform's holiday service; this service only needs
// membership checks against the dates it was handed.
type Provider interface {
	IsHoliday(t time.Time) bool
}

// Static is a fixed set of holiday dates, keyed by civil date.
type Static struct {
	dates map[string]struct{}
}

// NewStatic builds a Static provider from YYYY-MM-DD date strings.
func NewStatic(dates []string) (*Static, error) {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
		set[parsed.Format("2006-01-02")] = struct{}{}
	}
	return &Static{dates: set}, nil
}

func (s *Static) IsHoliday(t time.Time) bool {
	_, ok := s.dates[dateutil.Day(t).Format("2006-01-02")]
	return ok
}
