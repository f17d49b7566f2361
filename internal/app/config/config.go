package config

import (
	"praktis-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "praktis"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", "development"),
			Port:                           utils.GetEnvString("APP_PORT", ":8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Address:                        utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 10),
			MaxTimeRequestsPerSeconds:      utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			BookingMaxRequests:             utils.GetEnvInt("APP_BOOKING_MAX_REQUEST", 5),
			BookingBlockTimeInMinutes:      utils.GetEnvInt("APP_BOOKING_BLOCK_TIME_IN_MINUTES", 5),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte:     utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			SlotCacheTTLInSeconds:          utils.GetEnvInt("APP_SLOT_CACHE_TTL_IN_SECONDS", 60),
			BookingLockTTLInSeconds:        utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 30),
			ReminderWorkerCronSpec:         utils.GetEnvString("APP_REMINDER_WORKER_CRON_SPEC", "@hourly"),
			ReminderWorkerBatchSize:        utils.GetEnvInt("APP_REMINDER_WORKER_BATCH_SIZE", 50),
			SuperadminAPIKey:               utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Minio: AppMinio{
			BucketName:                    utils.GetEnvString("MINIO_BUCKET_NAME", "praktis-exports"),
			PreSignedUrlExpiryTimeInHours: utils.GetEnvInt("MINIO_PRESIGNED_URL_EXPIRY_TIME_IN_HOURS", 24),
		},
	}
}
