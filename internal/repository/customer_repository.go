package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByNumber(ctx context.Context, number string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Where("customer_number = ?", number).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// UpdateFields applies a partial update without touching the other columns.
func (r *CustomerRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

// ListFilter narrows the customer list. Zero values mean "no constraint".
type ListFilter struct {
	Status domain.CustomerStatus
	Year   int
	Search string
}

// List returns customers newest-first, optionally filtered by status, year
// and a case-insensitive substring over name, email and phone.
func (r *CustomerRepository) List(ctx context.Context, filter ListFilter) ([]domain.Customer, error) {
	var customers []domain.Customer

	query := r.db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			pattern, pattern, pattern)
	}

	err := query.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error
	return int(count), err
}

// CountByStatus returns per-status counts for the dashboard.
func (r *CustomerRepository) CountByStatus(ctx context.Context) (map[domain.CustomerStatus]int, error) {
	type row struct {
		Status domain.CustomerStatus
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.CustomerStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
