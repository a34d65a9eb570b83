package model

import "time"

// DefaultTrainerPassword seeds the credential row on first boot.
const DefaultTrainerPassword = "123456"

// TrainerCredential is the single shared trainer secret. Stored as plain
// text by product decision: this is an internal deterrent, not a security
// boundary, and trainers rotate it from the settings panel.
type TrainerCredential struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (TrainerCredential) TableName() string {
	return "trainer_credentials"
}

// UserRole portal role carried in JWT claims
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTrainer UserRole = "trainer"
)
