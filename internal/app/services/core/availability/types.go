package availability

import (
	"errors"
	"fmt"
	"time"

	"praktis-service/internal/pkg/constvars"
)

// Malformed-input kinds. Settings writes guard against these, so reaching one
// here means a legacy or hand-edited record slipped through; the engine fails
// fast instead of producing wrong slots.
var (
	ErrMalformedTemplate       = errors.New("malformed weekly template")
	ErrMalformedException      = errors.New("malformed schedule exception")
	ErrMalformedVacationWindow = errors.New("malformed vacation window")
)

// RejectionReason identifies why a booking request was turned down. These are
// expected outcomes carried as values, not errors.
type RejectionReason string

const (
	RejectedOutOfWindow         RejectionReason = "out_of_window"
	RejectedVacation            RejectionReason = "vacation"
	RejectedDurationMismatch    RejectionReason = "duration_mismatch"
	RejectedOutsideAvailability RejectionReason = "outside_availability"
	RejectedConflict            RejectionReason = "conflict"
	RejectedCapacityReached     RejectionReason = "capacity_reached"
)

// Rejection is the typed verdict of ValidateBooking when a request fails one
// of the ordered checks. A nil *Rejection means the request was accepted.
type Rejection struct {
	Reason RejectionReason
	Detail string
}

// span is a half-open [start, end) interval in minutes since midnight. All
// engine arithmetic happens on spans; HH:MM strings only exist at the edges.
type span struct {
	start int
	end   int
}

func parseClock(value string) (int, error) {
	t, err := time.Parse(constvars.ClockTimeFormat, value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time '%s'", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constvars.DateOnlyFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s'", value)
	}
	return t, nil
}
