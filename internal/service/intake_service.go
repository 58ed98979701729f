package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/intake"
	"github.com/radwerk/intake-api/internal/repository"
)

// IntakePhoto is one photo attached to a submission.
type IntakePhoto struct {
	FileUpload
	Size int64
}

// IntakeService runs the intake submission pipeline. The steps are ordered
// and not compensated: validation happens before any write, and a failure
// mid-pipeline surfaces to the caller with the work done so far persisted.
// Cleanup of a partial submission is the admin delete path.
type IntakeService struct {
	customerRepo *repository.CustomerRepository
	orderRepo    *repository.ServiceOrderRepository
	numbering    *NumberingService
	files        *FileService
	snapshots    *cache.Snapshots
	logger       *zap.Logger
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(
	customerRepo *repository.CustomerRepository,
	orderRepo *repository.ServiceOrderRepository,
	numbering *NumberingService,
	files *FileService,
	snapshots *cache.Snapshots,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		numbering:    numbering,
		files:        files,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// Submit processes a complete intake form. Returns field errors when the
// form is invalid (nothing written), or the created customer with its
// service orders and uploaded files.
func (s *IntakeService) Submit(ctx context.Context, req *domain.IntakeRequest, photos []IntakePhoto) (*domain.IntakeResultDTO, []domain.FieldError, error) {
	// 1. Whole-form validation before any write.
	metas := make([]domain.PhotoMeta, len(photos))
	for i, p := range photos {
		metas[i] = domain.PhotoMeta{Filename: p.Filename, ContentType: p.ContentType, Size: p.Size}
	}
	if fieldErrs := intake.ValidateSubmission(req, metas); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	// 2. Build the payloads up front so a malformed detail block aborts
	// before the number is burned.
	selected := intake.ServiceSteps(req.SelectedServices)
	payloads := make(map[domain.ServiceType]string, len(selected))
	for _, kind := range selected {
		payload, err := intake.BuildPayload(kind, req)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		payloads[kind] = payload
	}

	// 3. Allocate the customer number.
	number, year, err := s.numbering.NextCustomerNumber(ctx)
	if err != nil {
		return nil, nil, err
	}

	// 4. Create the customer.
	contact := req.Contact
	customer := &domain.Customer{
		CustomerNumber:   number,
		Year:             year,
		FirstName:        contact.FirstName,
		LastName:         contact.LastName,
		FullName:         domain.DeriveFullName(contact.FirstName, contact.LastName),
		Street:           contact.Street,
		HouseNumber:      contact.HouseNumber,
		ZipCode:          contact.ZipCode,
		City:             contact.City,
		FullAddress:      domain.DeriveFullAddress(contact.Street, contact.HouseNumber, contact.ZipCode, contact.City),
		Email:            contact.Email,
		Phone:            contact.Phone,
		SelectedServices: serviceTypeStrings(selected),
		Status:           domain.CustomerStatusReceived,
		ImageCount:       0,
		HasImages:        false,
		Notes:            req.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, nil, fmt.Errorf("failed to create customer: %w", err)
	}

	log := s.logger.With(
		zap.String("customerID", customer.ID.String()),
		zap.String("customerNumber", number))

	// 5. One service order per selected service, canonical order.
	orders := make([]domain.ServiceOrder, 0, len(selected))
	for _, kind := range selected {
		order := &domain.ServiceOrder{
			CustomerID:  &customer.ID,
			CustomerRef: customer.ID.String(),
			ServiceType: kind,
			Data:        payloads[kind],
			Status:      domain.ServiceOrderStatusOpen,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			log.Error("failed to create service order", zap.String("serviceType", string(kind)), zap.Error(err))
			return nil, nil, fmt.Errorf("failed to create service order: %w", err)
		}
		orders = append(orders, *order)
	}

	// 6. Upload the photo batch.
	var uploaded []domain.CustomerFileDTO
	if len(photos) > 0 {
		uploads := make([]FileUpload, len(photos))
		for i, p := range photos {
			upload := p.FileUpload
			if upload.Purpose == "" {
				upload.Purpose = domain.FilePurposeRim
			}
			uploads[i] = upload
		}
		uploaded, err = s.files.UploadBatch(ctx, customer.ID, uploads)
		if err != nil {
			log.Error("failed to upload intake photos", zap.Error(err))
			return nil, nil, fmt.Errorf("failed to upload photos: %w", err)
		}

		// 7. The aggregates were bumped by the upload; re-read for the response.
		refreshed, err := s.customerRepo.GetByID(ctx, customer.ID)
		if err == nil {
			customer = refreshed
		}
	}

	// 8. Drop stale snapshots.
	s.snapshots.InvalidateCustomer(customer.ID.String())

	log.Info("intake submission completed",
		zap.Int("services", len(orders)),
		zap.Int("photos", len(uploaded)))

	dto := domain.ToCustomerDTO(customer)
	dto.Services = domain.ToServiceOrderDTOs(orders)
	return &domain.IntakeResultDTO{
		Customer:      dto,
		Services:      dto.Services,
		UploadedFiles: uploaded,
	}, nil, nil
}

// Steps computes the wizard step layout for a selection, for the
// form frontend.
func (s *IntakeService) Steps(selected []domain.ServiceType) (*domain.WizardStepsDTO, []domain.FieldError) {
	if fieldErrs := intake.ValidateSelection(selected); len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return &domain.WizardStepsDTO{
		TotalSteps:   intake.TotalSteps(selected),
		ServiceSteps: intake.ServiceSteps(selected),
	}, nil
}

func serviceTypeStrings(types []domain.ServiceType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
