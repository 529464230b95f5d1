package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUnknownUser is returned when a referenced user id does not exist.
var ErrUnknownUser = errors.New("the given user is unknown to us")

// User is an account that can take part in appointments, either as the
// patient or as the therapist. Authentication owns the email/password
// fields; the scheduler only ever reads ID and the name parts.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// FullName is the display name used as the appointment title.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
