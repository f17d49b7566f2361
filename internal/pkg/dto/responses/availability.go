package responses

type BookableSlot struct {
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Source string `json:"source"`
}

type BookableSlots struct {
	PractitionerID string         `json:"practitionerId"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	Slots          []BookableSlot `json:"slots"`
}

type ScheduleExport struct {
	PractitionerID string `json:"practitionerId"`
	ObjectName     string `json:"objectName"`
	DownloadURL    string `json:"downloadUrl"`
	SlotCount      int    `json:"slotCount"`
}

type WeeklyTemplate struct {
	PractitionerID string          `json:"practitionerId"`
	Days           []WeeklyDayRule `json:"days"`
}

type WeeklyDayRule struct {
	Weekday     int            `json:"weekday"`
	IsAvailable bool           `json:"isAvailable"`
	Intervals   []TimeInterval `json:"intervals,omitempty"`
}

type TimeInterval struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	IsBreak bool   `json:"isBreak,omitempty"`
}
