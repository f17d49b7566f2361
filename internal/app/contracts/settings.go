package contracts

import (
	"context"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/dto/requests"
)

type SettingsRepository interface {
	FindWeeklyTemplate(ctx context.Context, practitionerID string) (*models.WeeklyTemplate, error)
	SaveWeeklyTemplate(ctx context.Context, template *models.WeeklyTemplate) error

	FindExceptionByDate(ctx context.Context, practitionerID, date string) (*models.ScheduleException, error)
	FindExceptionsInRange(ctx context.Context, practitionerID, from, to string) ([]models.ScheduleException, error)
	SaveException(ctx context.Context, exception *models.ScheduleException, replace bool) error

	FindVacations(ctx context.Context, practitionerID string) ([]models.VacationWindow, error)
	SaveVacation(ctx context.Context, vacation *models.VacationWindow) error
	DeleteVacation(ctx context.Context, practitionerID, vacationID string) error

	FindBookingPolicy(ctx context.Context, practitionerID string) (*models.BookingPolicy, error)
	SaveBookingPolicy(ctx context.Context, policy *models.BookingPolicy) error
}

type SettingsUsecase interface {
	SaveWeeklyTemplate(ctx context.Context, request *requests.SaveWeeklyTemplate) error
	SaveException(ctx context.Context, request *requests.SaveScheduleException) error
	SaveVacation(ctx context.Context, request *requests.SaveVacationWindow) error
	DeleteVacation(ctx context.Context, practitionerID, vacationID string) error
	SaveBookingPolicy(ctx context.Context, request *requests.SaveBookingPolicy) error
}
