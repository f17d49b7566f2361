package contracts

import (
	"context"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	Insert(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// FindOccupyingInRange returns non-cancelled appointments whose date falls
	// in the inclusive [from, to] range.
	FindOccupyingInRange(ctx context.Context, practitionerID, from, to string) ([]models.Appointment, error)
	FindBookedOnDate(ctx context.Context, date string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) error
}

type AppointmentUsecase interface {
	Book(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error)
	Cancel(ctx context.Context, appointmentID string) (*responses.Appointment, error)
}
