package models

type Practitioner struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Specialty string `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Timezone  string `json:"timezone,omitempty" bson:"timezone,omitempty"`
	Active    bool   `json:"active" bson:"active"`
	TimeModel `bson:",inline"`
}
