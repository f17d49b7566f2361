package exceptions

import (
	"fmt"
	"praktis-service/internal/pkg/constvars"
)

// Booking rejections are business outcomes, not faults. Each reason keeps its
// own constructor so the HTTP status and client message stay paired with the
// reason they describe.
var (
	ErrBookingOutOfWindow = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientBookingOutOfWindow, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
	ErrBookingVacation = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientBookingVacation, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
	ErrBookingDurationMismatch = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientBookingDurationMismatch, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
	ErrBookingOutsideAvailability = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientBookingOutsideHours, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
	ErrBookingConflict = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientBookingConflict, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
	ErrBookingCapacityReached = func(detail string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientBookingCapacityReached, fmt.Sprintf(constvars.ErrDevBookingRejected, detail))
	}
)
