package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/service"
	"github.com/radwerk/intake-api/internal/settings"
	"github.com/radwerk/intake-api/internal/storage"
	"github.com/radwerk/intake-api/internal/testutil"
)

func newIntakeHandler(t *testing.T) (*IntakeHandler, *settings.Store) {
	t.Helper()

	db := testutil.NewTestDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	log := zap.NewNop()
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	snapshots := cache.NewSnapshots(time.Minute)
	numbering := service.NewNumberingService(repository.NewCounterRepository(db), log)
	files := service.NewFileService(fileRepo, customerRepo, store, "http://localhost:8080", log)
	intakeService := service.NewIntakeService(customerRepo, orderRepo, numbering, files, snapshots, log)

	settingsStore := settings.NewStore(repository.NewSettingsRepository(db), log)
	require.NoError(t, settingsStore.Init(context.Background()))

	return NewIntakeHandler(intakeService, settingsStore, 10*1024*1024, 5, log), settingsStore
}

func intakeRequestBody() string {
	return `{
		"contact": {
			"firstName": "Lena", "lastName": "Vogel",
			"street": "Ruhrallee", "houseNumber": "12a",
			"zipCode": "44139", "city": "Dortmund",
			"email": "lena.vogel@example.com", "phone": "+49 231 555123"
		},
		"selectedServices": ["rims"],
		"rims": {"count": "4", "hasBent": "nein", "finish": "glanz", "color": "anthrazit", "sticker": "keine"}
	}`
}

func TestIntakeHandler_Submit_JSON(t *testing.T) {
	h, _ := newIntakeHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/customers", strings.NewReader(intakeRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result domain.IntakeResultDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Regexp(t, `^C-\d{4}-000001$`, result.Customer.CustomerNumber)
	assert.Equal(t, domain.CustomerStatusReceived, result.Customer.Status)
	require.Len(t, result.Services, 1)
	assert.Equal(t, domain.ServiceTypeRims, result.Services[0].ServiceType)
}

func TestIntakeHandler_Submit_ValidationErrors(t *testing.T) {
	h, _ := newIntakeHandler(t)

	body := `{"contact": {"firstName": "Lena"}, "selectedServices": ["rims"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v2/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Contains(t, apiErr.Errors, "contact.email")
	assert.Contains(t, apiErr.Errors, "rims")
}

func TestIntakeHandler_Submit_IntakeDisabled(t *testing.T) {
	h, store := newIntakeHandler(t)
	require.NoError(t, store.Set(context.Background(), settings.KeyIntakeEnabled, "false"))

	req := httptest.NewRequest(http.MethodPost, "/api/v2/customers", strings.NewReader(intakeRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIntakeHandler_Submit_Multipart(t *testing.T) {
	h, _ := newIntakeHandler(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("data", intakeRequestBody()))
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photos"; filename="felge.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v2/customers", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result domain.IntakeResultDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.UploadedFiles, 1)
	assert.Equal(t, "felge.jpg", result.UploadedFiles[0].Filename)
	assert.Equal(t, 1, result.Customer.ImageCount)
}

func TestIntakeHandler_Submit_MalformedJSON(t *testing.T) {
	h, _ := newIntakeHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/customers", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntakeHandler_Steps(t *testing.T) {
	h, _ := newIntakeHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/intake/steps?services=tire-service,rims", nil)
	rec := httptest.NewRecorder()
	h.Steps(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var steps domain.WizardStepsDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&steps))
	assert.Equal(t, 4, steps.TotalSteps)
	assert.Equal(t, []domain.ServiceType{domain.ServiceTypeRims, domain.ServiceTypeTireService}, steps.ServiceSteps)
}

func TestIntakeHandler_Steps_EmptySelection(t *testing.T) {
	h, _ := newIntakeHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v2/intake/steps", nil)
	rec := httptest.NewRecorder()
	h.Steps(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
