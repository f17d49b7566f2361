package constvars

type ContextKey string

const (
	ResourcePractitioners = "practitioners"
	ResourceAppointments  = "appointments"
	ResourceSettings      = "settings"
	ResourceSlots         = "slots"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "PRKTS_SVC_"
)

const (
	PraktisRoleGuest        = "Guest"
	PraktisRolePatient      = "Patient"
	PraktisRolePractitioner = "Practitioner"
	PraktisRoleClinicAdmin  = "Clinic Admin"
	PraktisRoleSuperadmin   = "Superadmin"
)

// Wire formats for provider-local dates and wall-clock times.
const (
	DateOnlyFormat  = "2006-01-02"
	ClockTimeFormat = "15:04"
)

const (
	AppointmentStatusBooked    = "booked"
	AppointmentStatusFulfilled = "fulfilled"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "noshow"
)

const (
	BookingEventConfirmed = "booking.confirmed"
	BookingEventCancelled = "booking.cancelled"
	BookingEventReminder  = "booking.reminder"
)
