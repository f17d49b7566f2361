package routers

import (
	"praktis-service/internal/app/delivery/http/controllers"
	"praktis-service/internal/app/delivery/http/middlewares"
	"praktis-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSettingsRoutes(router chi.Router, middlewares *middlewares.Middlewares, settingsController *controllers.SettingsController) {
	router.Route("/settings", func(r chi.Router) {
		r.Use(middlewares.APIKeyAuth)
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireRoles(
			constvars.PraktisRolePractitioner,
			constvars.PraktisRoleClinicAdmin,
			constvars.PraktisRoleSuperadmin,
		))

		r.Put("/template", settingsController.SaveWeeklyTemplate)
		r.Put("/exceptions", settingsController.SaveException)
		r.Put("/vacations", settingsController.SaveVacation)
		r.Delete("/vacations/{vacationID}", settingsController.DeleteVacation)
		r.Put("/policy", settingsController.SaveBookingPolicy)
	})
}
