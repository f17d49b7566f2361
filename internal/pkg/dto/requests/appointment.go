package requests

type CreateAppointment struct {
	PractitionerID string `json:"practitionerId" validate:"required"`
	PatientID      string `json:"patientId" validate:"required"`
	Date           string `json:"date" validate:"required,dateonly"`
	Start          string `json:"start" validate:"required,hhmm"`
	End            string `json:"end" validate:"required,hhmm"`
}
