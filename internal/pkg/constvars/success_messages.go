package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Availability messages
	GetBookableSlotsSuccessMessage = "get bookable slots successfully"
	ExportScheduleSuccessMessage   = "schedule export created successfully"

	// Appointment messages
	AppointmentCreatedSuccess   = "appointment booked successfully"
	AppointmentCancelledSuccess = "appointment cancelled successfully"

	// Settings messages
	WeeklyTemplateSavedSuccess = "weekly template saved successfully"
	ExceptionSavedSuccess      = "schedule exception saved successfully"
	VacationSavedSuccess       = "vacation window saved successfully"
	VacationDeletedSuccess     = "vacation window deleted successfully"
	BookingPolicySavedSuccess  = "booking policy saved successfully"
)
