package constvars

// Redis key formats. Availability reads are cached under a per-practitioner
// version stamp; any settings or occupancy mutation bumps the version so stale
// slot lists fall out of reach without explicit deletes.
const (
	RedisKeySessionPrefix              = "session:"
	RedisKeyAvailabilityVersionFormat  = "availability:version:%s"
	RedisKeyBookableSlotsFormat        = "availability:slots:%s:v%s:%s:%s"
	RedisKeyBookingDayLockFormat       = "booking:lock:day:%s:%s"
	RedisKeyReminderWorkerLeaderFormat = "reminder:leader"
)
