package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/domain"
)

type ServiceOrderRepository struct {
	db *gorm.DB
}

func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db}
}

// Create stores one service order. Both reference columns are populated by
// the caller so the row is readable from either schema generation.
func (r *ServiceOrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if isUnknownColumnErr(err, "customer_id") {
		// Old schema: only the ref column exists.
		legacy := *order
		legacy.CustomerID = nil
		if err := r.db.WithContext(ctx).
			Omit("customer_id").
			Create(&legacy).Error; err != nil {
			return err
		}
		order.ID = legacy.ID
		order.CreatedAt = legacy.CreatedAt
		order.UpdatedAt = legacy.UpdatedAt
		return nil
	}
	return err
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns the service orders of one customer, trying the
// relation column first and the legacy ref column when it is missing.
func (r *ServiceOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.ServiceOrder, error) {
	var orders []domain.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&orders).Error
	if isUnknownColumnErr(err, "customer_id") {
		orders = orders[:0]
		err = r.db.WithContext(ctx).
			Where("customer_ref = ?", customerID.String()).
			Order("created_at ASC").
			Find(&orders).Error
	}
	return orders, err
}

// ListByCustomers loads the service orders of many customers in one query,
// grouped by owning customer id.
func (r *ServiceOrderRepository) ListByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[string][]domain.ServiceOrder, error) {
	grouped := make(map[string][]domain.ServiceOrder, len(customerIDs))
	if len(customerIDs) == 0 {
		return grouped, nil
	}

	var orders []domain.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("customer_id IN ?", customerIDs).
		Order("created_at ASC").
		Find(&orders).Error
	if isUnknownColumnErr(err, "customer_id") {
		refs := make([]string, len(customerIDs))
		for i, id := range customerIDs {
			refs[i] = id.String()
		}
		orders = orders[:0]
		err = r.db.WithContext(ctx).
			Where("customer_ref IN ?", refs).
			Order("created_at ASC").
			Find(&orders).Error
	}
	if err != nil {
		return nil, err
	}

	for i := range orders {
		owner := orders[i].OwnerID()
		grouped[owner] = append(grouped[owner], orders[i])
	}
	return grouped, nil
}

func (r *ServiceOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ServiceOrderStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.ServiceOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByCustomer removes all service orders of one customer.
func (r *ServiceOrderRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&domain.ServiceOrder{}).Error
	if isUnknownColumnErr(err, "customer_id") {
		err = r.db.WithContext(ctx).
			Where("customer_ref = ?", customerID.String()).
			Delete(&domain.ServiceOrder{}).Error
	}
	return err
}
