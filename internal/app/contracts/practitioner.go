package contracts

import (
	"context"
	"praktis-service/internal/app/models"
)

type PractitionerRepository interface {
	FindByID(ctx context.Context, practitionerID string) (*models.Practitioner, error)
}
