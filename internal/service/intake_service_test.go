package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/storage"
	"github.com/radwerk/intake-api/internal/testutil"
)

// testEnv wires the full service graph onto an isolated SQLite database
// and a throwaway local storage directory.
type testEnv struct {
	db           *gorm.DB
	customerRepo *repository.CustomerRepository
	orderRepo    *repository.ServiceOrderRepository
	fileRepo     *repository.FileRepository
	snapshots    *cache.Snapshots
	numbering    *NumberingService
	files        *FileService
	customers    *CustomerService
	intake       *IntakeService
	dashboard    *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	log := zap.NewNop()
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	snapshots := cache.NewSnapshots(time.Minute)
	numbering := NewNumberingService(repository.NewCounterRepository(db), log)
	files := NewFileService(fileRepo, customerRepo, store, "http://localhost:8080", log)

	return &testEnv{
		db:           db,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		fileRepo:     fileRepo,
		snapshots:    snapshots,
		numbering:    numbering,
		files:        files,
		customers:    NewCustomerService(customerRepo, orderRepo, files, snapshots, log),
		intake:       NewIntakeService(customerRepo, orderRepo, numbering, files, snapshots, log),
		dashboard:    NewDashboardService(customerRepo, orderRepo, snapshots, log),
	}
}

func validIntakeRequest() *domain.IntakeRequest {
	return &domain.IntakeRequest{
		Contact: domain.ContactData{
			FirstName:   "Lena",
			LastName:    "Vogel",
			Street:      "Ruhrallee",
			HouseNumber: "12a",
			ZipCode:     "44139",
			City:        "Dortmund",
			Email:       "lena.vogel@example.com",
			Phone:       "+49 231 555123",
		},
		// Deliberately out of canonical order; the pipeline reorders.
		SelectedServices: []domain.ServiceType{
			domain.ServiceTypeTiresPurchase,
			domain.ServiceTypeRims,
		},
		Rims: &domain.RimDetails{
			Count:   "4",
			HasBent: "nein",
			Finish:  string(domain.RimFinishGloss),
			Color:   "anthrazit",
			Sticker: string(domain.RimStickerNone),
		},
		TiresPurchase: &domain.TiresPurchaseDetails{
			Quantity:        "4",
			Size:            "225/45 R17",
			Usage:           "sommer",
			BrandPreference: string(domain.BrandPreferencePremium),
		},
		Notes: "Abholung am Freitag",
	}
}

func intakePhoto(filename string) IntakePhoto {
	content := []byte("fake jpeg bytes")
	return IntakePhoto{
		FileUpload: FileUpload{
			Filename:    filename,
			ContentType: "image/jpeg",
			Data:        bytes.NewReader(content),
			Purpose:     domain.FilePurposeRim,
		},
		Size: int64(len(content)),
	}
}

func TestIntakeService_Submit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, fieldErrs, err := env.intake.Submit(ctx, validIntakeRequest(), []IntakePhoto{
		intakePhoto("felge-vorne.jpg"),
		intakePhoto("felge-hinten.jpg"),
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, result)

	customer := result.Customer
	assert.Equal(t, "C-"+time.Now().UTC().Format("2006")+"-000001", customer.CustomerNumber)
	assert.Equal(t, "Lena Vogel", customer.FullName)
	assert.Equal(t, "Ruhrallee 12a, 44139 Dortmund", customer.FullAddress)
	assert.Equal(t, domain.CustomerStatusReceived, customer.Status)

	// One order per selected service, canonical order, all open.
	require.Len(t, result.Services, 2)
	assert.Equal(t, domain.ServiceTypeRims, result.Services[0].ServiceType)
	assert.Equal(t, domain.ServiceTypeTiresPurchase, result.Services[1].ServiceType)
	for _, order := range result.Services {
		assert.Equal(t, domain.ServiceOrderStatusOpen, order.Status)
		assert.Equal(t, customer.ID.String(), order.CustomerID)
	}

	// Photos landed and the image aggregates were refreshed.
	require.Len(t, result.UploadedFiles, 2)
	assert.Equal(t, 1, result.UploadedFiles[0].DisplayOrder)
	assert.Equal(t, 2, result.UploadedFiles[1].DisplayOrder)
	assert.Equal(t, 2, customer.ImageCount)
	assert.True(t, customer.HasImages)
}

func TestIntakeService_Submit_SequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, _, err := env.intake.Submit(ctx, validIntakeRequest(), nil)
	require.NoError(t, err)
	second, _, err := env.intake.Submit(ctx, validIntakeRequest(), nil)
	require.NoError(t, err)

	year := time.Now().UTC().Format("2006")
	assert.Equal(t, "C-"+year+"-000001", first.Customer.CustomerNumber)
	assert.Equal(t, "C-"+year+"-000002", second.Customer.CustomerNumber)
}

func TestIntakeService_Submit_InvalidWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := validIntakeRequest()
	req.Contact.Email = "keine-mail"
	req.Rims.HasBent = "ja" // damagedCount missing

	result, fieldErrs, err := env.intake.Submit(ctx, req, nil)
	require.NoError(t, err)
	assert.Nil(t, result)

	byField := domain.FieldErrorMap(fieldErrs)
	assert.Contains(t, byField, "contact.email")
	assert.Contains(t, byField, "rims.damagedCount")

	var count int64
	require.NoError(t, env.db.Model(&domain.Customer{}).Count(&count).Error)
	assert.Zero(t, count, "rejected submission must not create a customer")

	// The number was not burned either.
	number, _, err := env.numbering.NextCustomerNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C-"+time.Now().UTC().Format("2006")+"-000001", number)
}

func TestIntakeService_Submit_MissingDetailBlock(t *testing.T) {
	env := newTestEnv(t)

	req := validIntakeRequest()
	req.SelectedServices = append(req.SelectedServices, domain.ServiceTypeTireService)
	// No TireService block attached.

	result, fieldErrs, err := env.intake.Submit(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Contains(t, domain.FieldErrorMap(fieldErrs), "tireService")
}

func TestIntakeService_Submit_TooManyPhotos(t *testing.T) {
	env := newTestEnv(t)

	photos := make([]IntakePhoto, 6)
	for i := range photos {
		photos[i] = intakePhoto("foto.jpg")
	}

	result, fieldErrs, err := env.intake.Submit(context.Background(), validIntakeRequest(), photos)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Contains(t, domain.FieldErrorMap(fieldErrs), "photos")
}

func TestIntakeService_Steps(t *testing.T) {
	env := newTestEnv(t)

	steps, fieldErrs := env.intake.Steps([]domain.ServiceType{
		domain.ServiceTypeTireService,
		domain.ServiceTypeRims,
	})
	require.Empty(t, fieldErrs)
	assert.Equal(t, 4, steps.TotalSteps)
	assert.Equal(t, []domain.ServiceType{
		domain.ServiceTypeRims,
		domain.ServiceTypeTireService,
	}, steps.ServiceSteps)
}

func TestIntakeService_Steps_EmptySelection(t *testing.T) {
	env := newTestEnv(t)

	steps, fieldErrs := env.intake.Steps(nil)
	assert.Nil(t, steps)
	assert.Contains(t, domain.FieldErrorMap(fieldErrs), "selectedServices")
}
