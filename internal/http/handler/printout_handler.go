package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/printout"
	"github.com/radwerk/intake-api/internal/service"
)

// PrintoutHandler renders the printable order sheet for a customer.
type PrintoutHandler struct {
	customerService *service.CustomerService
	fileService     *service.FileService
	logger          *zap.Logger
}

func NewPrintoutHandler(
	customerService *service.CustomerService,
	fileService *service.FileService,
	logger *zap.Logger,
) *PrintoutHandler {
	return &PrintoutHandler{
		customerService: customerService,
		fileService:     fileService,
		logger:          logger,
	}
}

// @Summary Print order sheet
// @Description Renders the single-page order sheet as HTML. Query flags
// @Description toggle the contact, services and description blocks; images
// @Description selects up to four file ids to print.
// @Tags Customers
// @Produce html
// @Param id path string true "Customer ID"
// @Param hideContact query bool false "Hide the contact block"
// @Param hideServices query bool false "Hide the services block"
// @Param hideDescription query bool false "Hide the notes block"
// @Param showQR query bool false "Show the QR code placeholder"
// @Param images query string false "Comma-separated file ids to print"
// @Success 200 {string} string
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id}/print [get]
func (h *PrintoutHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to load customer for printout", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to load customer")
		return
	}

	files, err := h.fileService.ListByCustomer(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load files for printout", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to load files")
		return
	}

	q := r.URL.Query()
	opts := printout.Options{
		HideContact:     q.Get("hideContact") == "true",
		HideServices:    q.Get("hideServices") == "true",
		HideDescription: q.Get("hideDescription") == "true",
		ShowQRCode:      q.Get("showQR") == "true",
	}
	if images := q.Get("images"); images != "" {
		for _, part := range strings.Split(images, ",") {
			if part = strings.TrimSpace(part); part != "" {
				opts.ImageIDs = append(opts.ImageIDs, part)
			}
		}
	}

	html, err := printout.Compose(printout.Input{
		Customer: *customer,
		Files:    files,
		Options:  opts,
	})
	if err != nil {
		h.logger.Error("failed to compose printout", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to compose printout")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
