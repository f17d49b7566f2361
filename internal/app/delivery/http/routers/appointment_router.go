package routers

import (
	"praktis-service/internal/app/delivery/http/controllers"
	"praktis-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingLimiter *middlewares.RateLimiter, appointmentController *controllers.AppointmentController) {
	router.Group(func(r chi.Router) {
		r.Use(bookingLimiter.Limit)
		r.Use(middlewares.APIKeyAuth)
		r.Use(middlewares.Authenticate)

		r.Post("/", appointmentController.Book)
		r.Delete("/{appointmentID}", appointmentController.Cancel)
	})
}
