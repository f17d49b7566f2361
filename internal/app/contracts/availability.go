package contracts

import (
	"context"
	"praktis-service/internal/pkg/dto/responses"
)

type AvailabilityUsecase interface {
	// GetBookableSlots computes the open, unoccupied slots of a practitioner
	// for the inclusive [from, to] date range.
	GetBookableSlots(ctx context.Context, practitionerID, from, to string) (*responses.BookableSlots, error)
	// ExportSchedule renders the bookable slots as CSV, stores the file and
	// returns a presigned download URL.
	ExportSchedule(ctx context.Context, practitionerID, from, to string) (*responses.ScheduleExport, error)
	// BumpVersion invalidates every cached slot list of the practitioner.
	BumpVersion(ctx context.Context, practitionerID string) error
}
