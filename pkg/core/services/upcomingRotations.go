package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// UpcomingRotations lists the next count dates, on or after from, on which the groups are due to
// be rearranged according to an RRULE such as "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO"
func UpcomingRotations(rule string, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	parsed, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	parsed.DTStart(from)

	dates := make([]time.Time, 0, count)
	next := parsed.After(from, true)
	for !next.IsZero() && len(dates) < count {
		dates = append(dates, next)
		next = parsed.After(next, false)
	}
	return dates, nil
}
