package models

import "praktis-service/internal/pkg/constvars"

// Appointment is a booked session. Date/Start/End use the provider-local wire
// formats; the (practitioner, date, start) triple is unique among non-cancelled
// rows via a partial index.
type Appointment struct {
	ID             string `json:"id,omitempty" bson:"_id,omitempty"`
	PractitionerID string `json:"practitionerId" bson:"practitioner_id"`
	PatientID      string `json:"patientId" bson:"patient_id"`
	Date           string `json:"date" bson:"date"`
	Start          string `json:"start" bson:"start"`
	End            string `json:"end" bson:"end"`
	Status         string `json:"status" bson:"status"`
	TimeModel      `bson:",inline"`
}

// OccupiesSlot reports whether the appointment still consumes schedule
// capacity. Cancelled appointments free their slot; every other status keeps
// it occupied.
func (a Appointment) OccupiesSlot() bool {
	return a.Status != constvars.AppointmentStatusCancelled
}
