package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOperationKey      = "operation"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingPractitionerIDKey = "practitioner_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingDateKey           = "date"
	LoggingWeekdayKey        = "weekday"
	LoggingSlotCountKey      = "slot_count"
	LoggingQueueNameKey      = "queue_name"

	LoggingRedisKey                  = "redis_key"
	LoggingLockValueKey              = "lock_value"
	LoggingLockStoredValueKey        = "lock_stored_value"
	LoggingLockExpectedValueKey      = "lock_expected_value"
	LoggingLockExpirationTimeKey     = "lock_expiration_time"
	LoggingAvailabilityVersionKey    = "availability_version"
	LoggingRejectionReasonKey        = "rejection_reason"
	LoggingObjectNameKey             = "object_name"
	LoggingBucketNameKey             = "bucket_name"
	LoggingPresignedURLExpiryTimeKey = "presigned_url_expiry_time"
)
