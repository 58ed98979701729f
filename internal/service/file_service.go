package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/storage"
)

// FileUpload is one incoming file before storage.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
	Purpose     domain.FilePurpose
	Notes       string
}

// FileService handles customer file uploads: content-type resolution,
// filename sanitizing, storage, record keeping and the image aggregates on
// the owning customer.
type FileService struct {
	fileRepo     *repository.FileRepository
	customerRepo *repository.CustomerRepository
	storage      storage.Storage
	baseURL      string
	logger       *zap.Logger
}

// NewFileService creates a new FileService instance
func NewFileService(
	fileRepo *repository.FileRepository,
	customerRepo *repository.CustomerRepository,
	store storage.Storage,
	baseURL string,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:     fileRepo,
		customerRepo: customerRepo,
		storage:      store,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// UploadToCustomer stores one file for a customer and appends it after the
// customer's existing files.
func (s *FileService) UploadToCustomer(ctx context.Context, customerID uuid.UUID, upload FileUpload) (*domain.CustomerFileDTO, error) {
	dtos, err := s.UploadBatch(ctx, customerID, []FileUpload{upload})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// UploadBatch stores several files for a customer in submission order and
// updates the customer's image aggregates once at the end. Files get
// sequential display orders continuing after the existing ones.
func (s *FileService) UploadBatch(ctx context.Context, customerID uuid.UUID, uploads []FileUpload) ([]domain.CustomerFileDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	nextOrder, err := s.fileRepo.MaxDisplayOrder(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine display order: %w", err)
	}

	dtos := make([]domain.CustomerFileDTO, 0, len(uploads))
	for _, upload := range uploads {
		nextOrder++
		file, err := s.storeOne(ctx, customerID, upload, nextOrder)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, s.toDTO(file))
	}

	// The stored files stay in place; there is no rollback. The caller
	// sees the error and the aggregates catch up on the next write.
	if err := s.refreshImageAggregates(ctx, customerID); err != nil {
		return nil, fmt.Errorf("failed to refresh image aggregates: %w", err)
	}

	return dtos, nil
}

func (s *FileService) storeOne(ctx context.Context, customerID uuid.UUID, upload FileUpload, displayOrder int) (*domain.CustomerFile, error) {
	contentType, data, err := storage.DetectContentType(upload.ContentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content type: %w", err)
	}

	filename := storage.SanitizeFilename(upload.Filename, storage.ExtensionFor(contentType))

	storagePath, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	purpose := upload.Purpose
	if !purpose.IsValid() {
		purpose = domain.FilePurposeOther
	}

	file := &domain.CustomerFile{
		CustomerID:   &customerID,
		CustomerRef:  customerID.String(),
		Filename:     filename,
		ContentType:  contentType,
		Size:         size,
		StoragePath:  storagePath,
		Purpose:      purpose,
		DisplayOrder: displayOrder,
		Notes:        upload.Notes,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Try to delete from storage (best effort cleanup)
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to cleanup file from storage after DB error",
				zap.Error(delErr),
				zap.String("storagePath", storagePath),
			)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("customerID", customerID.String()),
		zap.String("filename", filename),
		zap.String("contentType", contentType),
		zap.Int64("size", size))

	return file, nil
}

// ListByCustomer returns a customer's files in display order.
func (s *FileService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerFileDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	files, err := s.fileRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer files: %w", err)
	}

	dtos := make([]domain.CustomerFileDTO, len(files))
	for i := range files {
		dtos[i] = s.toDTO(&files[i])
	}
	return dtos, nil
}

// Download retrieves a file's content.
// Returns: reader, filename, content-type, error
func (s *FileService) Download(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, string, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrNotFound
		}
		return nil, "", "", fmt.Errorf("failed to get file: %w", err)
	}

	reader, err := s.storage.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to download file: %w", err)
	}

	return reader, file.Filename, file.ContentType, nil
}

// Delete removes a file from storage and database and refreshes the
// owner's image aggregates.
func (s *FileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get file: %w", err)
	}

	// Delete from storage (log warning if fails, continue)
	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		s.logger.Warn("failed to delete file from storage",
			zap.Error(err),
			zap.String("storagePath", file.StoragePath),
			zap.String("fileID", id.String()),
		)
	}

	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	if file.CustomerID != nil {
		if err := s.refreshImageAggregates(ctx, *file.CustomerID); err != nil {
			s.logger.Warn("failed to refresh image aggregates",
				zap.Error(err),
				zap.String("customerID", file.CustomerID.String()))
		}
	}

	return nil
}

// DeleteAllForCustomer removes every file of a customer: blobs best-effort,
// records transactionally. Used by the customer delete path.
func (s *FileService) DeleteAllForCustomer(ctx context.Context, customerID uuid.UUID) error {
	files, err := s.fileRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to list customer files: %w", err)
	}

	for _, file := range files {
		if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
			s.logger.Warn("failed to delete file from storage",
				zap.Error(err),
				zap.String("storagePath", file.StoragePath))
		}
	}

	return s.fileRepo.DeleteByCustomer(ctx, customerID)
}

// refreshImageAggregates recomputes image_count and has_images from the
// actual file records.
func (s *FileService) refreshImageAggregates(ctx context.Context, customerID uuid.UUID) error {
	count, err := s.fileRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	return s.customerRepo.UpdateFields(ctx, customerID, map[string]interface{}{
		"image_count": count,
		"has_images":  count > 0,
	})
}

func (s *FileService) toDTO(file *domain.CustomerFile) domain.CustomerFileDTO {
	base := fmt.Sprintf("%s/api/v2/files/%s", s.baseURL, file.ID)
	return domain.CustomerFileDTO{
		ID:           file.ID,
		CustomerID:   file.OwnerID(),
		Filename:     file.Filename,
		ContentType:  file.ContentType,
		Size:         file.Size,
		Purpose:      file.Purpose,
		DisplayOrder: file.DisplayOrder,
		Notes:        file.Notes,
		ViewURL:      base + "/view",
		PreviewURL:   base + "/preview",
		DownloadURL:  base + "/download",
		CreatedAt:    file.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
