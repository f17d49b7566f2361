package responses

type Appointment struct {
	ID             string `json:"id"`
	PractitionerID string `json:"practitionerId"`
	PatientID      string `json:"patientId"`
	Date           string `json:"date"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Status         string `json:"status"`
}
