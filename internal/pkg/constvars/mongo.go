package constvars

const (
	MongoCollectionPractitioners      = "practitioners"
	MongoCollectionWeeklyTemplates    = "weekly_templates"
	MongoCollectionScheduleExceptions = "schedule_exceptions"
	MongoCollectionVacationWindows    = "vacation_windows"
	MongoCollectionBookingPolicies    = "booking_policies"
	MongoCollectionAppointments       = "appointments"
)
