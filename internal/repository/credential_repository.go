package repository

import (
	"campus_backend/internal/model"

	"gorm.io/gorm"
)

type CredentialRepository struct {
	DB *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{DB: db}
}

// GetTrainerPassword returns the shared trainer secret, falling back to the
// built-in default if the row was never seeded.
func (r *CredentialRepository) GetTrainerPassword() (string, error) {
	var cred model.TrainerCredential
	err := r.DB.First(&cred, 1).Error
	if err == gorm.ErrRecordNotFound {
		return model.DefaultTrainerPassword, nil
	}
	if err != nil {
		return "", err
	}
	return cred.Password, nil
}

func (r *CredentialRepository) SetTrainerPassword(password string) error {
	return r.DB.Save(&model.TrainerCredential{ID: 1, Password: password}).Error
}
