package availability

import (
	"fmt"
	"time"

	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
)

// BookingRequest is the slice of an incoming booking that the validator
// needs. The caller resolves the practitioner's settings and occupancy before
// invoking ValidateBooking.
type BookingRequest struct {
	Date  string
	Start string
	End   string
}

// ValidateBooking runs the ordered acceptance checks for a booking request.
// The first failing check wins and is returned as a Rejection; a nil
// Rejection with a nil error means the request is accepted. Errors are
// reserved for malformed inputs. The function is pure and safe to re-run
// under a lock right before the insert commits.
func ValidateBooking(
	request BookingRequest,
	template *models.WeeklyTemplate,
	scheduleExceptions []models.ScheduleException,
	vacations []models.VacationWindow,
	policy *models.BookingPolicy,
	occupancy []models.Appointment,
	now time.Time,
	loc *time.Location,
) (*Rejection, error) {
	if policy == nil {
		return nil, fmt.Errorf("invalid booking policy")
	}

	day, err := parseDate(request.Date, loc)
	if err != nil {
		return nil, err
	}
	start, err := parseClock(request.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(request.End)
	if err != nil {
		return nil, err
	}

	today := now.In(loc).Format(constvars.DateOnlyFormat)
	horizon := now.In(loc).AddDate(0, 0, policy.AdvanceBookingDays).Format(constvars.DateOnlyFormat)
	if request.Date < today || request.Date > horizon {
		return &Rejection{
			Reason: RejectedOutOfWindow,
			Detail: fmt.Sprintf("date %s outside booking window [%s, %s]", request.Date, today, horizon),
		}, nil
	}

	for _, v := range vacations {
		if v.Start > v.End {
			return nil, fmt.Errorf("%w: start %s after end %s", ErrMalformedVacationWindow, v.Start, v.End)
		}
		if v.Covers(request.Date) {
			return &Rejection{
				Reason: RejectedVacation,
				Detail: fmt.Sprintf("practitioner is on vacation from %s to %s", v.Start, v.End),
			}, nil
		}
	}

	if end-start != policy.SessionDurationMinutes {
		return &Rejection{
			Reason: RejectedDurationMismatch,
			Detail: fmt.Sprintf("requested %d minutes, sessions last %d minutes", end-start, policy.SessionDurationMinutes),
		}, nil
	}

	exceptionsByDate := make(map[string]models.ScheduleException, 1)
	for _, exc := range scheduleExceptions {
		if exc.Date == request.Date {
			exceptionsByDate[exc.Date] = exc
		}
	}
	open, _, err := openIntervalsForDate(template, exceptionsByDate, nil, request.Date, day.Weekday())
	if err != nil {
		return nil, err
	}
	inside := false
	for _, iv := range open {
		if iv.start <= start && end <= iv.end {
			inside = true
			break
		}
	}
	if !inside {
		return &Rejection{
			Reason: RejectedOutsideAvailability,
			Detail: fmt.Sprintf("%s-%s is outside the practitioner's open hours on %s", request.Start, request.End, request.Date),
		}, nil
	}

	occupiedOnDate := 0
	for _, appt := range occupancy {
		if appt.Date != request.Date || !appt.OccupiesSlot() {
			continue
		}
		occupiedOnDate++
		sp, err := appointmentSpan(appt)
		if err != nil {
			return nil, err
		}
		if Overlaps(start, end, sp.start, sp.end) {
			return &Rejection{
				Reason: RejectedConflict,
				Detail: fmt.Sprintf("%s-%s overlaps an existing appointment on %s", request.Start, request.End, request.Date),
			}, nil
		}
	}

	if occupiedOnDate >= policy.MaxDailyAppointments {
		return &Rejection{
			Reason: RejectedCapacityReached,
			Detail: fmt.Sprintf("daily cap of %d appointments reached on %s", policy.MaxDailyAppointments, request.Date),
		}, nil
	}

	return nil, nil
}
