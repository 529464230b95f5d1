package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TomTom4/kin/models"
)

// UserDirectory is the gorm-backed user lookup handed to the scheduler.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

// GetUser fetches a user by id. A missing row surfaces as
// models.ErrUnknownUser so callers don't depend on gorm error types.
func (d *UserDirectory) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.ErrUnknownUser
		}
		return models.User{}, err
	}
	return user, nil
}
