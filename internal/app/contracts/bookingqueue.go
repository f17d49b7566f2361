package contracts

import "context"

// BookingEvent is the payload published to the notification queue. Delivery
// to patients and practitioners is owned by the external notification system.
type BookingEvent struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	AppointmentID  string `json:"appointment_id"`
	PractitionerID string `json:"practitioner_id"`
	PatientID      string `json:"patient_id"`
	Date           string `json:"date"`
	Start          string `json:"start"`
}

type BookingEventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}
