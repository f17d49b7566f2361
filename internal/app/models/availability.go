package models

// TimeInterval is a half-open [Start, End) wall-clock window inside a single
// day. Start and End use the HH:MM wire format; IsBreak marks intervals that
// are carved out of the surrounding working hours instead of adding to them.
type TimeInterval struct {
	Start   string `json:"start" bson:"start"`
	End     string `json:"end" bson:"end"`
	IsBreak bool   `json:"isBreak,omitempty" bson:"is_break,omitempty"`
}

// DayRule describes one weekday of the recurring schedule. Weekday follows
// time.Weekday numbering (0 = Sunday). When IsAvailable is false the interval
// list is ignored entirely.
type DayRule struct {
	Weekday     int            `json:"weekday" bson:"weekday"`
	IsAvailable bool           `json:"isAvailable" bson:"is_available"`
	Intervals   []TimeInterval `json:"intervals,omitempty" bson:"intervals,omitempty"`
}

// WeeklyTemplate is the recurring weekly availability of one practitioner.
// Days always carries exactly seven rules, one per weekday.
type WeeklyTemplate struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	PractitionerID string    `json:"practitionerId" bson:"practitioner_id"`
	Days           []DayRule `json:"days" bson:"days"`
	TimeModel      `bson:",inline"`
}

// ScheduleException overrides the weekly template on a single calendar date.
// A full-day block removes the date entirely; otherwise CustomIntervals
// replace the template's intervals for that date. They never merge.
type ScheduleException struct {
	ID              string         `json:"id,omitempty" bson:"_id,omitempty"`
	PractitionerID  string         `json:"practitionerId" bson:"practitioner_id"`
	Date            string         `json:"date" bson:"date"`
	Reason          string         `json:"reason,omitempty" bson:"reason,omitempty"`
	FullDayBlock    bool           `json:"fullDayBlock" bson:"full_day_block"`
	CustomIntervals []TimeInterval `json:"customIntervals,omitempty" bson:"custom_intervals,omitempty"`
	TimeModel       `bson:",inline"`
}

// VacationWindow blocks an inclusive range of calendar dates. An active
// vacation dominates templates and exceptions alike.
type VacationWindow struct {
	ID             string `json:"id,omitempty" bson:"_id,omitempty"`
	PractitionerID string `json:"practitionerId" bson:"practitioner_id"`
	Start          string `json:"start" bson:"start"`
	End            string `json:"end" bson:"end"`
	Message        string `json:"message,omitempty" bson:"message,omitempty"`
	TimeModel      `bson:",inline"`
}

// Covers reports whether the given calendar date falls inside the window.
// Dates compare lexicographically because they share the YYYY-MM-DD format.
func (v VacationWindow) Covers(date string) bool {
	return v.Start <= date && date <= v.End
}

// BookingPolicy holds the scalar booking rules of one practitioner.
type BookingPolicy struct {
	ID                     string `json:"id,omitempty" bson:"_id,omitempty"`
	PractitionerID         string `json:"practitionerId" bson:"practitioner_id"`
	SessionDurationMinutes int    `json:"sessionDurationMinutes" bson:"session_duration_minutes"`
	BufferMinutes          int    `json:"bufferMinutes" bson:"buffer_minutes"`
	MaxDailyAppointments   int    `json:"maxDailyAppointments" bson:"max_daily_appointments"`
	AdvanceBookingDays     int    `json:"advanceBookingDays" bson:"advance_booking_days"`
	TimeModel              `bson:",inline"`
}

// Slot sources tell the client whether a bookable slot came from the
// recurring template or from an exception's replacement intervals.
const (
	SlotSourceTemplate  = "template"
	SlotSourceException = "exception"
)

// Slot is a derived bookable interval on a concrete date. Slots are computed
// on demand and never persisted.
type Slot struct {
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Source string `json:"source"`
}
