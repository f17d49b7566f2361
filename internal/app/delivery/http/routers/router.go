package routers

import (
	"fmt"
	"praktis-service/internal/app/config"
	"praktis-service/internal/app/delivery/http/controllers"
	mw "praktis-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *mw.Middlewares,
	availabilityController *controllers.AvailabilityController,
	appointmentController *controllers.AppointmentController,
	settingsController *controllers.SettingsController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/practitioners/{practitionerID}", func(r chi.Router) {
				attachAvailabilityRoutes(r, middlewares, availabilityController)
				attachSettingsRoutes(r, middlewares, settingsController)
			})

			// Booking gets a stricter per-IP limiter with a temporary block
			// list on top of the global httprate limit.
			bookingLimiter := mw.NewRateLimiter(
				internalConfig.App.BookingMaxRequests,
				time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
				time.Duration(internalConfig.App.BookingBlockTimeInMinutes)*time.Minute,
			)

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, bookingLimiter, appointmentController)
			})
		})
	})
}
