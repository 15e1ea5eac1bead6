package models

import (
	"gorm.io/gorm"
)

// Application statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
)

// Genders partition participants into the two ranked categories
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Application represents one participant's admission record for one event.
// Nickname stays empty until the allocator assigns one; assignment is one-way.
type Application struct {
	gorm.Model
	AppKey   string `gorm:"column:app_key;size:36;uniqueIndex;not null" json:"app_key"`
	EventID  uint   `gorm:"column:event_id;not null;uniqueIndex:idx_app_event_uid" json:"event_id"`
	UID      uint   `gorm:"column:uid;not null;uniqueIndex:idx_app_event_uid" json:"uid"`
	Gender   string `gorm:"column:gender;size:10;not null" json:"gender"`
	Status   string `gorm:"column:status;size:20;not null;default:pending" json:"status"`
	Nickname string `gorm:"column:nickname;size:50" json:"nickname"`
}

// TableName specifies the table name for Application
func (Application) TableName() string {
	return "applications"
}

// ValidStatusTransition reports whether an organizer may move an application
// from one status to another. Rejection is terminal; paid is terminal.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusPaid || to == StatusRejected
	default:
		return false
	}
}

// ApplyRequest defines the input for applying to an event
type ApplyRequest struct {
	Gender string `json:"gender" binding:"required,oneof=male female"`
}

// UpdateStatusRequest defines the input for an organizer status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved paid rejected"`
}
