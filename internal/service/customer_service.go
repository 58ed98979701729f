package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
)

// CustomerService covers the staff-facing customer operations: reads with
// merged service orders, allow-listed updates, status changes and the
// delete path with explicit dependent cleanup.
type CustomerService struct {
	customerRepo *repository.CustomerRepository
	orderRepo    *repository.ServiceOrderRepository
	files        *FileService
	snapshots    *cache.Snapshots
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	orderRepo *repository.ServiceOrderRepository,
	files *FileService,
	snapshots *cache.Snapshots,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		files:        files,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// GetByID returns one customer with its service orders merged in.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	if dto, ok := s.snapshots.Customer(id.String()); ok {
		return &dto, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load service orders: %w", err)
	}

	dto := domain.ToCustomerDTO(customer)
	dto.Services = domain.ToServiceOrderDTOs(orders)
	s.snapshots.SetCustomer(id.String(), dto)
	return &dto, nil
}

// CreateLegacy creates a bare customer through the old admin form: no
// services, no intake photos, but a proper customer number.
func (s *CustomerService) CreateLegacy(ctx context.Context, req *domain.CreateCustomerRequest, numbering *NumberingService) (*domain.CustomerDTO, error) {
	number, year, err := numbering.NextCustomerNumber(ctx)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		CustomerNumber: number,
		Year:           year,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		FullName:       domain.DeriveFullName(req.FirstName, req.LastName),
		Street:         req.Street,
		HouseNumber:    req.HouseNumber,
		ZipCode:        req.ZipCode,
		City:           req.City,
		FullAddress:    domain.DeriveFullAddress(req.Street, req.HouseNumber, req.ZipCode, req.City),
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         domain.CustomerStatusReceived,
		Notes:          req.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.snapshots.InvalidateCustomer(customer.ID.String())

	dto := domain.ToCustomerDTO(customer)
	return &dto, nil
}

// Update applies an allow-listed partial update. Contact field changes
// re-derive full_name and full_address; a status change is validated
// against the closed status set.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	fields := map[string]interface{}{}
	apply := func(column string, target *string, value *string) {
		if value != nil {
			*target = *value
			fields[column] = *value
		}
	}
	apply("first_name", &customer.FirstName, req.FirstName)
	apply("last_name", &customer.LastName, req.LastName)
	apply("street", &customer.Street, req.Street)
	apply("house_number", &customer.HouseNumber, req.HouseNumber)
	apply("zip_code", &customer.ZipCode, req.ZipCode)
	apply("city", &customer.City, req.City)
	apply("email", &customer.Email, req.Email)
	apply("phone", &customer.Phone, req.Phone)
	apply("notes", &customer.Notes, req.Notes)

	if req.FirstName != nil || req.LastName != nil {
		fields["full_name"] = domain.DeriveFullName(customer.FirstName, customer.LastName)
	}
	if req.Street != nil || req.HouseNumber != nil || req.ZipCode != nil || req.City != nil {
		fields["full_address"] = domain.DeriveFullAddress(customer.Street, customer.HouseNumber, customer.ZipCode, customer.City)
	}

	if req.Status != nil {
		status := domain.CustomerStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		fields["status"] = status
	}

	if len(fields) > 0 {
		if err := s.customerRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	s.snapshots.InvalidateCustomer(id.String())
	return s.GetByID(ctx, id)
}

// UpdateStatus moves a customer to any status of the closed set. There is
// no enforced forward-only ordering; staff corrections go backwards too.
func (s *CustomerService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.CustomerStatus) (*domain.CustomerDTO, error) {
	str := string(status)
	return s.Update(ctx, id, &domain.UpdateCustomerRequest{Status: &str})
}

// UpdateServiceOrderStatus moves one service order to a status of its
// closed set, independent of the owning customer's status.
func (s *CustomerService) UpdateServiceOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.ServiceOrderStatus) (*domain.ServiceOrderDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update service order: %w", err)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload service order: %w", err)
	}

	s.snapshots.InvalidateCustomer(order.OwnerID())
	dto := domain.ToServiceOrderDTO(order)
	return &dto, nil
}

// AddServiceOrder attaches one service order to an existing customer, for
// walk-in follow-up orders outside the intake form.
func (s *CustomerService) AddServiceOrder(ctx context.Context, customerID uuid.UUID, req *domain.CreateServiceOrderRequest) (*domain.ServiceOrderDTO, error) {
	if !req.ServiceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown service type %s", ErrInvalidInput, req.ServiceType)
	}
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	order := &domain.ServiceOrder{
		CustomerID:  &customerID,
		CustomerRef: customerID.String(),
		ServiceType: req.ServiceType,
		Data:        req.Data,
		Status:      domain.ServiceOrderStatusOpen,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create service order: %w", err)
	}

	s.snapshots.InvalidateCustomer(customerID.String())
	dto := domain.ToServiceOrderDTO(order)
	return &dto, nil
}

// ListServiceOrders returns a customer's service orders.
func (s *CustomerService) ListServiceOrders(ctx context.Context, customerID uuid.UUID) ([]domain.ServiceOrderDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service orders: %w", err)
	}
	return domain.ToServiceOrderDTOs(orders), nil
}

// Delete removes a customer and its dependents: service orders and file
// records explicitly, blobs best-effort. The order matters so a failure
// never leaves orphaned rows pointing at a deleted customer.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	if err := s.files.DeleteAllForCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer files: %w", err)
	}
	if err := s.orderRepo.DeleteByCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service orders: %w", err)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.snapshots.InvalidateCustomer(id.String())

	s.logger.Info("customer deleted", zap.String("customerID", id.String()))
	return nil
}
