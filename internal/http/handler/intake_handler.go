package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/service"
	"github.com/radwerk/intake-api/internal/settings"
)

// IntakeHandler serves the public intake form endpoints: submission and
// the wizard step layout.
type IntakeHandler struct {
	intakeService *service.IntakeService
	settings      *settings.Store
	maxPhotoBytes int64
	maxPhotos     int
	logger        *zap.Logger
}

func NewIntakeHandler(
	intakeService *service.IntakeService,
	settings *settings.Store,
	maxPhotoBytes int64,
	maxPhotos int,
	logger *zap.Logger,
) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
		settings:      settings,
		maxPhotoBytes: maxPhotoBytes,
		maxPhotos:     maxPhotos,
		logger:        logger,
	}
}

// @Summary Submit intake form
// @Description Creates the customer, its service orders and uploads the
// @Description attached photos in one request. Accepts JSON or
// @Description multipart/form-data with a "data" JSON field and "photos" files.
// @Tags Intake
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param data body domain.IntakeRequest true "Assembled intake form"
// @Success 201 {object} domain.IntakeResultDTO
// @Failure 400 {object} domain.APIError
// @Router /customers [post]
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	// Intake is open unless staff switched it off explicitly.
	if !h.settings.GetBoolDefault(settings.KeyIntakeEnabled, true) {
		respondWithError(w, http.StatusServiceUnavailable, "Die Annahme neuer Aufträge ist derzeit deaktiviert")
		return
	}

	req, photos, err := h.parseSubmission(w, r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, fieldErrs, err := h.intakeService.Submit(r.Context(), req, photos)
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, fieldErrs)
		return
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("intake submission failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to process submission")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// @Summary Get wizard step layout
// @Description Computes the step count and the per-service detail step order
// @Description for a comma-separated service selection.
// @Tags Intake
// @Produce json
// @Param services query string true "Comma-separated service selection"
// @Success 200 {object} domain.WizardStepsDTO
// @Failure 400 {object} domain.APIError
// @Router /intake/steps [get]
func (h *IntakeHandler) Steps(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("services")
	var selected []domain.ServiceType
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			selected = append(selected, domain.ServiceType(part))
		}
	}

	steps, fieldErrs := h.intakeService.Steps(selected)
	if len(fieldErrs) > 0 {
		respondFieldErrors(w, fieldErrs)
		return
	}
	respondJSON(w, http.StatusOK, steps)
}

// parseSubmission decodes either a plain JSON body or a multipart form with
// a "data" field and attached "photos" files.
func (h *IntakeHandler) parseSubmission(w http.ResponseWriter, r *http.Request) (*domain.IntakeRequest, []service.IntakePhoto, error) {
	contentType := r.Header.Get("Content-Type")

	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req domain.IntakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, nil, fmt.Errorf("invalid request body")
		}
		return &req, nil, nil
	}

	maxBody := h.maxPhotoBytes*int64(h.maxPhotos) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxBody); err != nil {
		return nil, nil, fmt.Errorf("request too large or malformed multipart body")
	}

	data := r.FormValue("data")
	if data == "" {
		return nil, nil, fmt.Errorf("missing data field")
	}
	var req domain.IntakeRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, nil, fmt.Errorf("invalid data field: not valid JSON")
	}

	var photos []service.IntakePhoto
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read photo %s", header.Filename)
			}
			// Oversized photos are rejected by validation; read at most one
			// byte past the cap so the size check can see the overflow.
			content, err := io.ReadAll(io.LimitReader(file, h.maxPhotoBytes+1))
			file.Close()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read photo %s", header.Filename)
			}
			photos = append(photos, service.IntakePhoto{
				FileUpload: service.FileUpload{
					Filename:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Data:        bytes.NewReader(content),
					Purpose:     domain.FilePurposeRim,
				},
				Size: int64(len(content)),
			})
		}
	}
	return &req, photos, nil
}
