package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/service"
)

// CustomerHandler serves the staff customer endpoints, both the current v2
// surface and the legacy /api/customers routes kept for older clients.
type CustomerHandler struct {
	customerService  *service.CustomerService
	dashboardService *service.DashboardService
	numbering        *service.NumberingService
	logger           *zap.Logger
}

func NewCustomerHandler(
	customerService *service.CustomerService,
	dashboardService *service.DashboardService,
	numbering *service.NumberingService,
	logger *zap.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:  customerService,
		dashboardService: dashboardService,
		numbering:        numbering,
		logger:           logger,
	}
}

// @Summary List customers
// @Tags Customers
// @Produce json
// @Param status query string false "Filter by status"
// @Param year query int false "Filter by intake year"
// @Param search query string false "Substring match over name, email, phone"
// @Success 200 {array} domain.CustomerDTO
// @Security BearerAuth
// @Router /customers [get]
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListFilter{
		Search: r.URL.Query().Get("search"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		cs := domain.CustomerStatus(status)
		if !cs.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = cs
	}
	if year := r.URL.Query().Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year filter")
			return
		}
		filter.Year = y
	}

	customers, err := h.dashboardService.ListCustomers(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// @Summary Get customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.CustomerDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("failed to get customer", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// @Summary Create customer (legacy)
// @Description Creates a customer without service orders. The current intake
// @Description flow uses POST /api/v2/customers instead.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body domain.CreateCustomerRequest true "Customer data"
// @Success 201 {object} domain.CustomerDTO
// @Security BearerAuth
// @Router /customers [post]
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.CreateLegacy(r.Context(), &req, h.numbering)
	if err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// @Summary Update customer
// @Description Applies the allow-listed fields of the patch body. Derived
// @Description fields (fullName, fullAddress) are recomputed server-side.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body domain.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} domain.CustomerDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [patch]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status value")
		default:
			h.logger.Error("failed to update customer", zap.Error(err), zap.String("customer_id", id.String()))
			respondWithError(w, http.StatusInternalServerError, "Failed to update customer")
		}
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// @Summary Delete customer
// @Description Deletes the customer together with its service orders and
// @Description files. Stored blobs are removed best-effort.
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to delete customer", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List customer service orders
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {array} domain.ServiceOrderDTO
// @Security BearerAuth
// @Router /customers/{id}/services [get]
func (h *CustomerHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	orders, err := h.customerService.ListServiceOrders(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to list service orders", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to list service orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// @Summary Add service order
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param order body domain.CreateServiceOrderRequest true "Service order"
// @Success 201 {object} domain.ServiceOrderDTO
// @Security BearerAuth
// @Router /customers/{id}/services [post]
func (h *CustomerHandler) AddService(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.CreateServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.ServiceType.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Invalid service type")
		return
	}

	order, err := h.customerService.AddServiceOrder(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.Error("failed to add service order", zap.Error(err), zap.String("customer_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to add service order")
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// updateServiceOrderStatusRequest is the body of the status patch endpoint.
type updateServiceOrderStatusRequest struct {
	Status domain.ServiceOrderStatus `json:"status"`
}

// @Summary Update service order status
// @Tags Customers
// @Accept json
// @Produce json
// @Param serviceId path string true "Service order ID"
// @Success 200 {object} domain.ServiceOrderDTO
// @Security BearerAuth
// @Router /services/{serviceId}/status [patch]
func (h *CustomerHandler) UpdateServiceStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "serviceId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid service order ID: must be a valid UUID")
		return
	}

	var req updateServiceOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.customerService.UpdateServiceOrderStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Service order not found")
		case errors.Is(err, service.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, "Invalid status value")
		default:
			h.logger.Error("failed to update service order status", zap.Error(err), zap.String("service_order_id", orderID.String()))
			respondWithError(w, http.StatusInternalServerError, "Failed to update service order")
		}
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID: must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
