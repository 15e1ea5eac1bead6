package models

import (
	"gorm.io/gorm"
)

// Preference is one participant's ranked choices for one event. A zero value
// in a slot means the participant declined to rank it. At most one record
// exists per (event, voter); resubmission overwrites.
type Preference struct {
	gorm.Model
	EventID uint   `gorm:"column:event_id;not null;uniqueIndex:idx_pref_event_voter" json:"event_id"`
	VoterID uint   `gorm:"column:voter_id;not null;uniqueIndex:idx_pref_event_voter" json:"voter_id"`
	First   uint   `gorm:"column:first_choice" json:"first"`
	Second  uint   `gorm:"column:second_choice" json:"second"`
	Third   uint   `gorm:"column:third_choice" json:"third"`
	Message string `gorm:"column:message;type:text" json:"message"`
}

// TableName specifies the table name for Preference
func (Preference) TableName() string {
	return "preferences"
}

// SubmitPreferenceRequest defines the input for submitting a ranking
type SubmitPreferenceRequest struct {
	First   uint   `json:"first"`
	Second  uint   `json:"second"`
	Third   uint   `json:"third"`
	Message string `json:"message"`
}

// PreferenceMessage is the payload published to Kafka after a submission
type PreferenceMessage struct {
	EventID uint `json:"event_id"`
	VoterID uint `json:"voter_id"`
}
