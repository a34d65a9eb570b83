package repository

import (
	"campus_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

// ListAll returns every student's results in one flat list. O(total results);
// fine for a single organization, revisit with pagination if the student
// count ever grows past a few hundred.
func (r *ResultRepository) ListAll() ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Order("date asc").Find(&results).Error
	return results, err
}

// ListByStudent returns one student's history, most recent first. An unknown
// student yields an empty list, not an error.
func (r *ResultRepository) ListByStudent(studentName string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("student_name = ?", studentName).Order("date desc").Find(&results).Error
	return results, err
}

// Delete removes a single result. Idempotent: deleting an id that is already
// gone changes nothing.
func (r *ResultRepository) Delete(studentName, resultID string) error {
	return r.DB.Where("student_name = ? AND id = ?", studentName, resultID).
		Delete(&model.QuizResult{}).Error
}

// ClearStudent empties a student's history.
func (r *ResultRepository) ClearStudent(studentName string) error {
	return r.DB.Where("student_name = ?", studentName).Delete(&model.QuizResult{}).Error
}

// DeleteStudent removes the student's whole record set from the store.
func (r *ResultRepository) DeleteStudent(studentName string) error {
	return r.DB.Where("student_name = ?", studentName).Delete(&model.QuizResult{}).Error
}

// UpdateCertificateName sets the one post-creation mutable field of a result.
// Single-column update, so concurrent trainers cannot clobber the rest of
// the record.
func (r *ResultRepository) UpdateCertificateName(studentName, resultID, certificateName string) error {
	res := r.DB.Model(&model.QuizResult{}).
		Where("student_name = ? AND id = ?", studentName, resultID).
		Update("certificate_name", certificateName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
