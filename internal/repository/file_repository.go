package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/domain"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.CustomerFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerFile, error) {
	var file domain.CustomerFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByCustomer returns a customer's files ordered by display order, with
// the legacy ref-column fallback.
func (r *FileRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.CustomerFile, error) {
	var files []domain.CustomerFile
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("display_order ASC, created_at ASC").
		Find(&files).Error
	if isUnknownColumnErr(err, "customer_id") {
		files = files[:0]
		err = r.db.WithContext(ctx).
			Where("customer_ref = ?", customerID.String()).
			Order("display_order ASC, created_at ASC").
			Find(&files).Error
	}
	return files, err
}

// CountByCustomer counts a customer's files.
func (r *FileRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CustomerFile{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if isUnknownColumnErr(err, "customer_id") {
		err = r.db.WithContext(ctx).Model(&domain.CustomerFile{}).
			Where("customer_ref = ?", customerID.String()).
			Count(&count).Error
	}
	return int(count), err
}

// MaxDisplayOrder returns the highest display order of a customer's files,
// 0 when none exist.
func (r *FileRepository) MaxDisplayOrder(ctx context.Context, customerID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&domain.CustomerFile{}).
		Where("customer_id = ?", customerID).
		Select("MAX(display_order)").
		Scan(&max).Error
	if isUnknownColumnErr(err, "customer_id") {
		err = r.db.WithContext(ctx).Model(&domain.CustomerFile{}).
			Where("customer_ref = ?", customerID.String()).
			Select("MAX(display_order)").
			Scan(&max).Error
	}
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CustomerFile{}, "id = ?", id).Error
}

// DeleteByCustomer removes all file records of one customer.
func (r *FileRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&domain.CustomerFile{}).Error
	if isUnknownColumnErr(err, "customer_id") {
		err = r.db.WithContext(ctx).
			Where("customer_ref = ?", customerID.String()).
			Delete(&domain.CustomerFile{}).Error
	}
	return err
}
