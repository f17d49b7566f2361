package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"praktis-service/internal/app/config"
	"praktis-service/internal/app/delivery/http/controllers"
	"praktis-service/internal/app/delivery/http/middlewares"
	"praktis-service/internal/app/delivery/http/routers"
	"praktis-service/internal/app/drivers/database"
	"praktis-service/internal/app/drivers/logger"
	"praktis-service/internal/app/drivers/messaging"
	minioDriver "praktis-service/internal/app/drivers/storage"
	"praktis-service/internal/app/services/core/appointments"
	"praktis-service/internal/app/services/core/availability"
	"praktis-service/internal/app/services/core/practitioners"
	"praktis-service/internal/app/services/core/session"
	"praktis-service/internal/app/services/core/settings"
	"praktis-service/internal/app/services/shared/bookingqueue"
	"praktis-service/internal/app/services/shared/locker"
	"praktis-service/internal/app/services/shared/redis"
	"praktis-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := minioDriver.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	// Shared services
	redisRepository := redis.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	minioStorage := storage.NewMinioStorage(minioClient)
	sessionService := session.NewSessionService(redisRepository)

	bookingQueue, err := bookingqueue.NewService(rabbitMQ, zapLogger)
	if err != nil {
		log.Fatalf("Failed to initialize booking queue: %v", err)
	}

	// Repositories
	dbName := driverConfig.MongoDB.DbName
	settingsRepository := settings.NewSettingsMongoRepository(mongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(mongoDB, dbName)
	practitionerRepository := practitioners.NewPractitionerMongoRepository(mongoDB, dbName)

	// Usecases. Availability first: settings and appointments depend on it for
	// cache invalidation and booking validation.
	availabilityUsecase, err := availability.NewAvailabilityUsecase(
		settingsRepository,
		appointmentRepository,
		practitionerRepository,
		redisRepository,
		minioStorage,
		internalConfig,
		zapLogger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize availability usecase: %v", err)
	}

	settingsUsecase := settings.NewSettingsUsecase(settingsRepository, availabilityUsecase, zapLogger)

	appointmentUsecase, err := appointments.NewAppointmentUsecase(
		appointmentRepository,
		settingsRepository,
		practitionerRepository,
		availabilityUsecase,
		lockerService,
		bookingQueue,
		internalConfig,
		zapLogger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize appointment usecase: %v", err)
	}

	// Reminder worker
	reminderWorker := appointments.NewReminderWorker(
		zapLogger,
		internalConfig,
		lockerService,
		appointmentRepository,
		bookingQueue,
		location,
	)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	reminderWorker.Start(workerCtx)
	bootstrap.WorkerStop = func() {
		workerCancel()
		reminderWorker.Stop()
	}

	// Controllers
	availabilityController := controllers.NewAvailabilityController(zapLogger, availabilityUsecase)
	appointmentController := controllers.NewAppointmentController(zapLogger, appointmentUsecase)
	settingsController := controllers.NewSettingsController(zapLogger, settingsUsecase)

	mws := &middlewares.Middlewares{
		Log:            zapLogger,
		SessionService: sessionService,
		InternalConfig: internalConfig,
	}

	routers.SetupRoutes(
		chiRouter,
		internalConfig,
		mws,
		availabilityController,
		appointmentController,
		settingsController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing application drivers: %v", err)
	}

	log.Println("Server exiting")
}
