package service

import (
	"campus_backend/internal/model"
	"campus_backend/internal/repository"
	"campus_backend/internal/util"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResultService is the trainer-facing record management surface. Reads go
// through StatsService; this layer only mutates.
type ResultService struct {
	ResultRepo *repository.ResultRepository
	logger     *zap.Logger
}

func NewResultService(resultRepo *repository.ResultRepository, logger *zap.Logger) *ResultService {
	return &ResultService{ResultRepo: resultRepo, logger: logger}
}

func (s *ResultService) ListByStudent(studentName string) ([]model.QuizResult, error) {
	results, err := s.ResultRepo.ListByStudent(studentName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	return results, nil
}

// DeleteResult removes one attempt from a student's history. Idempotent.
func (s *ResultService) DeleteResult(studentName, resultID string) error {
	if err := s.ResultRepo.Delete(studentName, resultID); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("result deleted", zap.String("student", studentName), zap.String("result", resultID))
	return nil
}

// ClearHistory empties a student's result list without removing the student
// from dashboards that derive from live sessions.
func (s *ResultService) ClearHistory(studentName string) error {
	if err := s.ResultRepo.ClearStudent(studentName); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("student history cleared", zap.String("student", studentName))
	return nil
}

// DeleteStudent removes every trace of the student from the record store.
func (s *ResultService) DeleteStudent(studentName string) error {
	if err := s.ResultRepo.DeleteStudent(studentName); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("student deleted", zap.String("student", studentName))
	return nil
}

// SetCertificateName records the full legal name for diploma issuance on one
// result. The only field of a result that changes after creation.
func (s *ResultService) SetCertificateName(studentName, resultID, certificateName string) error {
	certificateName = strings.TrimSpace(certificateName)
	if certificateName == "" {
		return fmt.Errorf("%w: el nombre del certificado está vacío", util.ErrValidation)
	}
	err := s.ResultRepo.UpdateCertificateName(studentName, resultID, certificateName)
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("%w: resultado %s", util.ErrNotFound, resultID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("certificate name set", zap.String("student", studentName), zap.String("result", resultID))
	return nil
}
