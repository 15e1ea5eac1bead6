package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
)

// User represents a registered account
type User struct {
	gorm.Model
	Username  string    `gorm:"column:username;size:100;not null" json:"username"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Role      string    `gorm:"column:role;size:20;not null;default:participant" json:"role"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	LastLogin time.Time `gorm:"column:last_login" json:"last_login"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// RegisterRequest defines the input for account registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the input for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT
type LoginResponse struct {
	Token string `json:"token"`
}
