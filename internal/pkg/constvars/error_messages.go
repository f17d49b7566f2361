package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"numeric":     "must be a number",
	"len":         "must be %s characters long",
	"oneof":       "must be one of [%s]",
	"gt":          "must be greater than %s",
	"gte":         "must be greater than or equal to %s",
	"lt":          "must be less than %s",
	"lte":         "must be less than or equal to %s",
	"uuid":        "must be a valid UUID",
	"hhmm":        "must be a wall-clock time in HH:MM format",
	"dateonly":    "must be a calendar date in YYYY-MM-DD format",
	"required_if": "is required when %s is %s",
	"dive":        "contains an invalid element",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":         true,
	"max":         true,
	"len":         true,
	"gt":          true,
	"gte":         true,
	"lt":          true,
	"lte":         true,
	"oneof":       true,
	"required_if": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientPractitionerNotFound          = "the practitioner you requested does not exist"
	ErrClientAppointmentNotFound           = "the appointment you requested does not exist"
	ErrClientAppointmentAlreadyCancelled   = "the appointment is already cancelled"
	ErrClientBookingBusy                   = "the schedule is being updated, please retry in a moment"

	// Booking rejection messages. Each maps to exactly one rejection reason so
	// the client can tell the user what to change.
	ErrClientBookingOutOfWindow      = "the requested date is outside the bookable window"
	ErrClientBookingVacation         = "the practitioner is on vacation on the requested date"
	ErrClientBookingDurationMismatch = "the requested time does not match the session duration"
	ErrClientBookingOutsideHours     = "the requested time is outside the practitioner's available hours"
	ErrClientBookingConflict         = "the requested time is no longer available"
	ErrClientBookingCapacityReached  = "the practitioner is fully booked on the requested date"

	// Settings guard messages
	ErrClientTemplateOverlap      = "the weekly template contains overlapping intervals"
	ErrClientExceptionOverlap     = "the exception contains overlapping intervals"
	ErrClientExceptionDateTaken   = "an exception already exists for that date"
	ErrClientVacationInvalidRange = "the vacation end date is before its start date"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat            = "invalid %s format"
	ErrDevBuildRequest             = "encountering error while building request DTO"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"

	// Scheduling domain messages
	ErrDevPractitionerNotFound        = "practitioner not exists in our system"
	ErrDevAppointmentNotFound         = "appointment not exists in our system"
	ErrDevAppointmentAlreadyCancelled = "appointment already transitioned to cancelled"
	ErrDevBookingDayLockNotAcquired   = "could not acquire the booking day lock"
	ErrDevBookingRejected             = "booking request rejected: %s"
	ErrDevMalformedTemplate           = "weekly template failed structural validation"
	ErrDevMalformedException          = "schedule exception failed structural validation"
	ErrDevMalformedVacationWindow     = "vacation window failed structural validation"
	ErrDevTemplateIntervalOverlap     = "weekly template has colliding intervals on weekday %d: %s and %s"
	ErrDevExceptionIntervalOverlap    = "schedule exception has colliding intervals: %s and %s"
	ErrDevExceptionDuplicateDate      = "exception already stored for date %s and replace was not requested"

	// Validation messages
	ErrDevValidationFailed = "validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthPermissionDenied      = "permission denied"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthInvalidAPIKey         = "invalid superadmin API key"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"
	ErrDevDBDuplicateKey             = "unique index rejected the document"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData        = "failed to SET data into redis"
	ErrDevRedisGetData        = "failed to GET data from redis"
	ErrDevRedisGetNoData      = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData     = "failed to DELETE data from redis"
	ErrDevRedisIncrementValue = "failed to INCR data in redis"
	ErrDevRedisExpireKey      = "failed to EXPIRE key in redis"
	ErrDevRedisUnlock         = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"

	// Server messages
	ErrDevMissingRequestID       = "request ID not found in context"
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerParseSessionData = "failed to parse session data"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
