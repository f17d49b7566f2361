package availability

import (
	"fmt"
	"sort"

	"praktis-service/internal/app/models"
)

// Overlaps reports whether two half-open minute intervals collide. Touching
// endpoints do not conflict, so a slot may start exactly when another ends.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindInternalOverlap sorts the intervals by start and scans adjacent pairs
// for a collision. It returns the first offending pair so settings writes can
// tell the caller exactly which two intervals clash. An unparseable interval
// or one with start >= end is reported as an error instead.
func FindInternalOverlap(intervals []models.TimeInterval) (first, second models.TimeInterval, found bool, err error) {
	type parsed struct {
		span     span
		interval models.TimeInterval
	}

	items := make([]parsed, 0, len(intervals))
	for _, iv := range intervals {
		sp, parseErr := parseSpan(iv)
		if parseErr != nil {
			return models.TimeInterval{}, models.TimeInterval{}, false, parseErr
		}
		items = append(items, parsed{span: sp, interval: iv})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].span.start < items[j].span.start })

	for i := 1; i < len(items); i++ {
		prev, curr := items[i-1], items[i]
		if Overlaps(prev.span.start, prev.span.end, curr.span.start, curr.span.end) {
			return prev.interval, curr.interval, true, nil
		}
	}
	return models.TimeInterval{}, models.TimeInterval{}, false, nil
}

func parseSpan(interval models.TimeInterval) (span, error) {
	start, err := parseClock(interval.Start)
	if err != nil {
		return span{}, err
	}
	end, err := parseClock(interval.End)
	if err != nil {
		return span{}, err
	}
	if start >= end {
		return span{}, fmt.Errorf("interval start >= end (%s >= %s)", interval.Start, interval.End)
	}
	return span{start: start, end: end}, nil
}
