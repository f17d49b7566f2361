package models

import "time"

// TimeModel carries the audit timestamps embedded by every persisted document.
type TimeModel struct {
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt() {
	currentTime := time.Now()
	m.CreatedAt = currentTime
	m.UpdatedAt = currentTime
}

func (m *TimeModel) SetUpdatedAt() {
	m.UpdatedAt = time.Now()
}

func (m *TimeModel) SetDeletedAt() {
	currentTime := time.Now()
	m.DeletedAt = &currentTime
	m.SetUpdatedAt()
}
