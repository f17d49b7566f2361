package config

type InternalConfig struct {
	App   App
	JWT   AppJWT
	Minio AppMinio
}

type App struct {
	Env                            string
	Port                           string
	Version                        string
	Address                        string
	Timezone                       string
	EndpointPrefix                 string
	MaxRequests                    int
	MaxTimeRequestsPerSeconds      int
	// BookingMaxRequests caps booking attempts per IP within the
	// MaxTimeRequestsPerSeconds window; offenders are blocked for
	// BookingBlockTimeInMinutes.
	BookingMaxRequests             int
	BookingBlockTimeInMinutes      int
	ShutdownTimeoutInSeconds       int
	RequestBodyLimitInMegabyte     int
	LoginSessionExpiredTimeInHours int
	SlotCacheTTLInSeconds          int
	BookingLockTTLInSeconds        int
	// ReminderWorkerCronSpec is the cron expression driving the reminder
	// worker (e.g. "@hourly").
	ReminderWorkerCronSpec  string
	ReminderWorkerBatchSize int
	SuperadminAPIKey        string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMinio struct {
	BucketName                    string
	PreSignedUrlExpiryTimeInHours int
}
