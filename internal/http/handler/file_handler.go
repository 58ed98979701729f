package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/auth"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/service"
	"github.com/radwerk/intake-api/internal/settings"
)

// FileHandler serves customer file uploads and the derived view, preview
// and download endpoints.
type FileHandler struct {
	fileService *service.FileService
	settings    *settings.Store
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, settingsStore *settings.Store, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		settings:    settingsStore,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary List customer files
// @Tags Files
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {array} domain.CustomerFileDTO
// @Security BearerAuth
// @Router /customers/{id}/files [get]
func (h *FileHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(w, r)
	if !ok {
		return
	}

	files, err := h.fileService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to list files", zap.Error(err), zap.String("customer_id", customerID.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to list files")
		return
	}
	respondJSON(w, http.StatusOK, files)
}

// @Summary Upload customer files
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Customer ID"
// @Param files formData file true "Files to upload"
// @Param purpose formData string false "File purpose (rim, invoice, profile, other)"
// @Param notes formData string false "Notes attached to all uploaded files"
// @Success 201 {array} domain.CustomerFileDTO
// @Security BearerAuth
// @Router /customers/{id}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		// Single-file clients send "file" instead.
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid upload: files field is required")
		return
	}

	purpose := domain.FilePurpose(r.FormValue("purpose"))
	notes := r.FormValue("notes")

	uploads := make([]service.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read file %s", header.Filename))
			return
		}
		defer file.Close()
		uploads = append(uploads, service.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
			Purpose:     purpose,
			Notes:       notes,
		})
	}

	dtos, err := h.fileService.UploadBatch(r.Context(), customerID, uploads)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to upload files", zap.Error(err), zap.String("customer_id", customerID.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to upload files")
		return
	}
	respondJSON(w, http.StatusCreated, dtos)
}

// @Summary View file inline
// @Tags Files
// @Param id path string true "File ID"
// @Success 200
// @Router /files/{id}/view [get]
func (h *FileHandler) View(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "inline")
}

// @Summary Preview file
// @Tags Files
// @Param id path string true "File ID"
// @Success 200
// @Router /files/{id}/preview [get]
func (h *FileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "inline")
}

// @Summary Download file
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "File ID"
// @Success 200
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "attachment")
}

// @Summary Delete file
// @Tags Files
// @Param id path string true "File ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	if err := h.fileService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to delete file", zap.Error(err), zap.String("file_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FileHandler) serve(w http.ResponseWriter, r *http.Request, disposition string) {
	// Anonymous reads are a runtime setting; staff sessions always pass.
	if _, ok := auth.FromContext(r.Context()); !ok {
		if !h.settings.GetBool(settings.KeyPublicUploads) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	reader, filename, contentType, err := h.fileService.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to serve file", zap.Error(err), zap.String("file_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to serve file")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	if disposition == "attachment" {
		w.Header().Set("Content-Type", "application/octet-stream")
	} else {
		w.Header().Set("Content-Type", contentType)
	}

	_, _ = io.Copy(w, reader)
}
