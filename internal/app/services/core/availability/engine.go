package availability

import (
	"fmt"
	"sort"
	"time"

	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
)

// GenerateSlots walks every calendar date in the inclusive [from, to] range
// and derives the bookable slots for each. Resolution order per date: an
// active vacation wins over everything, then a date exception fully replaces
// the weekly template, then the template's day rule applies. The inputs are
// read-only; generation is a pure function of its arguments.
func GenerateSlots(
	template *models.WeeklyTemplate,
	scheduleExceptions []models.ScheduleException,
	vacations []models.VacationWindow,
	policy *models.BookingPolicy,
	from, to string,
	loc *time.Location,
) ([]models.Slot, error) {
	fromDay, err := parseDate(from, loc)
	if err != nil {
		return nil, err
	}
	toDay, err := parseDate(to, loc)
	if err != nil {
		return nil, err
	}
	if policy == nil || policy.SessionDurationMinutes <= 0 || policy.BufferMinutes < 0 {
		return nil, fmt.Errorf("invalid booking policy")
	}

	for _, v := range vacations {
		if v.Start > v.End {
			return nil, fmt.Errorf("%w: start %s after end %s", ErrMalformedVacationWindow, v.Start, v.End)
		}
	}

	exceptionsByDate := make(map[string]models.ScheduleException, len(scheduleExceptions))
	for _, exc := range scheduleExceptions {
		if exc.Date < from || exc.Date > to {
			return nil, fmt.Errorf("%w: date %s outside requested range [%s, %s]", ErrMalformedException, exc.Date, from, to)
		}
		if _, dup := exceptionsByDate[exc.Date]; dup {
			return nil, fmt.Errorf("%w: duplicate exception for date %s", ErrMalformedException, exc.Date)
		}
		exceptionsByDate[exc.Date] = exc
	}

	var slots []models.Slot
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		date := day.Format(constvars.DateOnlyFormat)

		open, source, err := openIntervalsForDate(template, exceptionsByDate, vacations, date, day.Weekday())
		if err != nil {
			return nil, err
		}

		for _, interval := range open {
			for _, sp := range tile(interval, policy.SessionDurationMinutes, policy.BufferMinutes) {
				slots = append(slots, models.Slot{
					Date:   date,
					Start:  formatClock(sp.start),
					End:    formatClock(sp.end),
					Source: source,
				})
			}
		}
	}
	return slots, nil
}

// openIntervalsForDate resolves the day's open, non-break intervals. It fails
// fast on colliding intervals so bad settings data never turns into slots.
func openIntervalsForDate(
	template *models.WeeklyTemplate,
	exceptionsByDate map[string]models.ScheduleException,
	vacations []models.VacationWindow,
	date string,
	weekday time.Weekday,
) ([]span, string, error) {
	for _, v := range vacations {
		if v.Covers(date) {
			return nil, "", nil
		}
	}

	if exc, ok := exceptionsByDate[date]; ok {
		if exc.FullDayBlock {
			return nil, "", nil
		}
		open, err := openSpans(exc.CustomIntervals)
		if err != nil {
			return nil, "", fmt.Errorf("%w: date %s: %v", ErrMalformedException, date, err)
		}
		return open, models.SlotSourceException, nil
	}

	if template == nil {
		return nil, "", nil
	}
	for _, rule := range template.Days {
		if rule.Weekday != int(weekday) {
			continue
		}
		if !rule.IsAvailable {
			return nil, "", nil
		}
		open, err := openSpans(rule.Intervals)
		if err != nil {
			return nil, "", fmt.Errorf("%w: weekday %d: %v", ErrMalformedTemplate, rule.Weekday, err)
		}
		return open, models.SlotSourceTemplate, nil
	}
	return nil, "", nil
}

// openSpans parses the interval list, verifies it is collision-free and
// returns the non-break members sorted by start. Break intervals count for
// the overlap check but never become open time.
func openSpans(intervals []models.TimeInterval) ([]span, error) {
	first, second, found, err := FindInternalOverlap(intervals)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, fmt.Errorf("intervals %s-%s and %s-%s collide", first.Start, first.End, second.Start, second.End)
	}

	var open []span
	for _, iv := range intervals {
		if iv.IsBreak {
			continue
		}
		sp, err := parseSpan(iv)
		if err != nil {
			return nil, err
		}
		open = append(open, sp)
	}
	sort.Slice(open, func(i, j int) bool { return open[i].start < open[j].start })
	return open, nil
}

// tile cuts an open interval into back-to-back sessions with a buffer after
// each one. Trailing space shorter than a full session is discarded, so an
// interval of length L yields floor((L+B)/(S+B)) slots.
func tile(open span, sessionMinutes, bufferMinutes int) []span {
	var out []span
	step := sessionMinutes + bufferMinutes
	for start := open.start; start+sessionMinutes <= open.end; start += step {
		out = append(out, span{start: start, end: start + sessionMinutes})
	}
	return out
}

// FilterBookable removes generated slots that clash with existing
// appointments, then removes every remaining slot of a date once that date's
// non-cancelled appointment count has reached the policy's daily cap. The
// overlap pass runs first so conflicts are never masked by the cap.
func FilterBookable(slots []models.Slot, appointments []models.Appointment, policy *models.BookingPolicy) ([]models.Slot, error) {
	occupiedByDate := make(map[string][]span)
	activeCount := make(map[string]int)
	for _, appt := range appointments {
		if !appt.OccupiesSlot() {
			continue
		}
		sp, err := appointmentSpan(appt)
		if err != nil {
			return nil, err
		}
		occupiedByDate[appt.Date] = append(occupiedByDate[appt.Date], sp)
		activeCount[appt.Date]++
	}

	var out []models.Slot
	for _, slot := range slots {
		if policy != nil && activeCount[slot.Date] >= policy.MaxDailyAppointments {
			continue
		}

		start, err := parseClock(slot.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(slot.End)
		if err != nil {
			return nil, err
		}

		clashes := false
		for _, occ := range occupiedByDate[slot.Date] {
			if Overlaps(start, end, occ.start, occ.end) {
				clashes = true
				break
			}
		}
		if !clashes {
			out = append(out, slot)
		}
	}
	return out, nil
}

func appointmentSpan(appt models.Appointment) (span, error) {
	start, err := parseClock(appt.Start)
	if err != nil {
		return span{}, fmt.Errorf("appointment %s: %v", appt.ID, err)
	}
	end, err := parseClock(appt.End)
	if err != nil {
		return span{}, fmt.Errorf("appointment %s: %v", appt.ID, err)
	}
	return span{start: start, end: end}, nil
}

