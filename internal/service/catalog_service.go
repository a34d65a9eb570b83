package service

import (
	"campus_backend/internal/model"
	"campus_backend/internal/repository"
	"campus_backend/internal/util"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
	"text/markdown":   true,
}

// CatalogService manages the manual library: the seeded defaults plus
// trainer uploads.
type CatalogService struct {
	ManualRepo *repository.ManualRepository
	Storage    *StorageService
	logger     *zap.Logger
}

func NewCatalogService(manualRepo *repository.ManualRepository, storage *StorageService, logger *zap.Logger) *CatalogService {
	return &CatalogService{ManualRepo: manualRepo, Storage: storage, logger: logger}
}

// ManualSummary is the listing shape: everything except the document body.
type ManualSummary struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	UploadDate string               `json:"uploadDate"`
	Category   model.ManualCategory `json:"category"`
	MimeType   string               `json:"mimeType"`
}

func (s *CatalogService) List() ([]ManualSummary, error) {
	manuals, err := s.ManualRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]ManualSummary, len(manuals))
	for i, m := range manuals {
		out[i] = ManualSummary{ID: m.ID, Name: m.Name, UploadDate: m.UploadDate, Category: m.Category, MimeType: m.MimeType}
	}
	return out, nil
}

func (s *CatalogService) Get(id string) (*model.Manual, error) {
	m, err := s.ManualRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: manual %s", util.ErrNotFound, id)
	}
	return m, err
}

type UploadManualInput struct {
	Name     string               `json:"name" binding:"required"`
	Category model.ManualCategory `json:"category" binding:"required"`
	FileData string               `json:"fileData" binding:"required"`
	MimeType string               `json:"mimeType" binding:"required"`
}

// Upload adds a trainer-provided manual to the library. The body must be
// base64; a payload that does not decode, an unknown mime type or category
// is rejected before anything is stored.
func (s *CatalogService) Upload(ctx context.Context, in UploadManualInput) (*model.Manual, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: el nombre del manual está vacío", util.ErrValidation)
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: categoría desconocida %q", util.ErrValidation, in.Category)
	}
	if !allowedMimeTypes[in.MimeType] {
		return nil, fmt.Errorf("%w: tipo de documento no soportado %q", util.ErrValidation, in.MimeType)
	}
	if strings.TrimSpace(in.FileData) == "" {
		return nil, fmt.Errorf("%w: el documento está vacío", util.ErrValidation)
	}
	if _, err := base64.StdEncoding.DecodeString(in.FileData); err != nil {
		return nil, fmt.Errorf("%w: el documento no es base64 válido", util.ErrValidation)
	}

	now := time.Now()
	m := &model.Manual{
		ID:         fmt.Sprintf("manual_%d", now.UnixMilli()),
		Name:       strings.TrimSpace(in.Name),
		UploadDate: now.Format("2006-01-02"),
		Category:   in.Category,
		FileData:   in.FileData,
		MimeType:   in.MimeType,
	}
	if err := s.ManualRepo.Create(m); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.Storage.ArchiveManual(ctx, m)
	s.logger.Info("manual uploaded", zap.String("manual", m.ID), zap.String("category", string(m.Category)))
	return m, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	m, err := s.ManualRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.ManualRepo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.Storage.RemoveManual(ctx, id, m.MimeType)
	s.logger.Info("manual deleted", zap.String("manual", id))
	return nil
}

// Reset restores the built-in default library, discarding uploads.
func (s *CatalogService) Reset() error {
	if err := s.ManualRepo.Reset(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrStorage, err)
	}
	s.logger.Info("manual library reset to defaults")
	return nil
}

// ResolveLaunch maps a launch target to its display name, category and
// grounding documents. Targets are a manual id, "block_<category>" for a
// block certification, or "all_manuals" for the global one.
func (s *CatalogService) ResolveLaunch(manualID string) (string, model.ManualCategory, []model.ManualFile, error) {
	switch {
	case manualID == model.AllManualsID:
		files, err := s.CollectFiles(manualID)
		if err != nil {
			return "", "", nil, err
		}
		return "Certificación Global", model.CategoryGlobal, files, nil

	case strings.HasPrefix(manualID, model.BlockManualPrefix):
		category := model.ManualCategory(strings.TrimPrefix(manualID, model.BlockManualPrefix))
		if !category.Valid() {
			return "", "", nil, fmt.Errorf("%w: bloque desconocido %q", util.ErrValidation, manualID)
		}
		files, err := s.CollectFiles(manualID)
		if err != nil {
			return "", "", nil, err
		}
		return "Certificación de Bloque: " + string(category), category, files, nil

	default:
		m, err := s.Get(manualID)
		if err != nil {
			return "", "", nil, err
		}
		return m.Name, m.Category, []model.ManualFile{{Data: m.FileData, MimeType: m.MimeType}}, nil
	}
}

// CollectFiles gathers the document payloads behind a launch target.
func (s *CatalogService) CollectFiles(manualID string) ([]model.ManualFile, error) {
	var (
		manuals []model.Manual
		err     error
	)
	switch {
	case manualID == model.AllManualsID:
		manuals, err = s.ManualRepo.List()
	case strings.HasPrefix(manualID, model.BlockManualPrefix):
		category := model.ManualCategory(strings.TrimPrefix(manualID, model.BlockManualPrefix))
		manuals, err = s.ManualRepo.ListByCategory(category)
	default:
		m, ferr := s.Get(manualID)
		if ferr != nil {
			return nil, ferr
		}
		manuals = []model.Manual{*m}
	}
	if err != nil {
		return nil, err
	}
	if len(manuals) == 0 {
		return nil, fmt.Errorf("%w: no hay manuales para %q", util.ErrNotFound, manualID)
	}

	files := make([]model.ManualFile, len(manuals))
	for i, m := range manuals {
		files[i] = model.ManualFile{Data: m.FileData, MimeType: m.MimeType}
	}
	return files, nil
}
