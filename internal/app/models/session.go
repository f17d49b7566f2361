package models

import "time"

// Session is the payload cached in Redis for a logged-in user. The JWT only
// carries the session ID; everything else lives here so revoking the Redis
// entry invalidates the token immediately.
type Session struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	PractitionerID string    `json:"practitioner_id,omitempty"`
	PatientID      string    `json:"patient_id,omitempty"`
	ExpiresAt      time.Time `json:"expires_at"`
}
