package routers

import (
	"praktis-service/internal/app/delivery/http/controllers"
	"praktis-service/internal/app/delivery/http/middlewares"
	"praktis-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	// Slot listing is public: patients browse availability before logging in.
	router.Get("/slots", availabilityController.GetBookableSlots)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.APIKeyAuth)
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRoles(
			constvars.PraktisRolePractitioner,
			constvars.PraktisRoleClinicAdmin,
			constvars.PraktisRoleSuperadmin,
		))

		r.Get("/schedule/export", availabilityController.ExportSchedule)
	})
}
