package requests

type TimeInterval struct {
	Start   string `json:"start" validate:"required,hhmm"`
	End     string `json:"end" validate:"required,hhmm"`
	IsBreak bool   `json:"isBreak"`
}

type WeeklyDayRule struct {
	Weekday     int            `json:"weekday" validate:"gte=0,lte=6"`
	IsAvailable bool           `json:"isAvailable"`
	Intervals   []TimeInterval `json:"intervals" validate:"dive"`
}

type SaveWeeklyTemplate struct {
	PractitionerID string          `json:"practitionerId" validate:"required"`
	Days           []WeeklyDayRule `json:"days" validate:"required,len=7,dive"`
}

type SaveScheduleException struct {
	PractitionerID  string         `json:"practitionerId" validate:"required"`
	Date            string         `json:"date" validate:"required,dateonly"`
	Reason          string         `json:"reason"`
	FullDayBlock    bool           `json:"fullDayBlock"`
	CustomIntervals []TimeInterval `json:"customIntervals" validate:"dive"`
	// Replace must be set explicitly to overwrite an exception already stored
	// for the same date.
	Replace bool `json:"replace"`
}

type SaveVacationWindow struct {
	PractitionerID string `json:"practitionerId" validate:"required"`
	Start          string `json:"start" validate:"required,dateonly"`
	End            string `json:"end" validate:"required,dateonly"`
	Message        string `json:"message"`
}

type SaveBookingPolicy struct {
	PractitionerID         string `json:"practitionerId" validate:"required"`
	SessionDurationMinutes int    `json:"sessionDurationMinutes" validate:"required,gt=0"`
	BufferMinutes          int    `json:"bufferMinutes" validate:"gte=0"`
	MaxDailyAppointments   int    `json:"maxDailyAppointments" validate:"required,gt=0"`
	AdvanceBookingDays     int    `json:"advanceBookingDays" validate:"required,gt=0"`
}
