package repository

import (
	"campus_backend/internal/model"

	"gorm.io/gorm"
)

type ManualRepository struct {
	DB *gorm.DB
}

func NewManualRepository(db *gorm.DB) *ManualRepository {
	return &ManualRepository{DB: db}
}

func (r *ManualRepository) List() ([]model.Manual, error) {
	var manuals []model.Manual
	err := r.DB.Order("category asc, id asc").Find(&manuals).Error
	return manuals, err
}

func (r *ManualRepository) ListByCategory(category model.ManualCategory) ([]model.Manual, error) {
	var manuals []model.Manual
	err := r.DB.Where("category = ?", category).Order("id asc").Find(&manuals).Error
	return manuals, err
}

func (r *ManualRepository) FindByID(id string) (*model.Manual, error) {
	var m model.Manual
	err := r.DB.First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ManualRepository) Create(m *model.Manual) error {
	return r.DB.Create(m).Error
}

// Delete removes a manual by id. Deleting an absent id is a no-op.
func (r *ManualRepository) Delete(id string) error {
	return r.DB.Delete(&model.Manual{}, "id = ?", id).Error
}

// Reset replaces the whole catalog with the built-in default library.
// Destructive: uploaded manuals are gone after this.
func (r *ManualRepository) Reset() error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Manual{}).Error; err != nil {
			return err
		}
		for _, m := range model.DefaultManuals() {
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
