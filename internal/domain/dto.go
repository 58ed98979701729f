package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse is the generic error body returned by handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ContactData carries the contact step of the intake form.
type ContactData struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Street      string `json:"street" validate:"required,max=200"`
	HouseNumber string `json:"houseNumber" validate:"required,max=20"`
	ZipCode     string `json:"zipCode" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
}

// IntakeRequest is the fully assembled multi-step intake form as submitted.
// Service detail blocks are only read for services present in SelectedServices.
type IntakeRequest struct {
	Contact          ContactData           `json:"contact"`
	SelectedServices []ServiceType         `json:"selectedServices"`
	Rims             *RimDetails           `json:"rims,omitempty"`
	TiresPurchase    *TiresPurchaseDetails `json:"tiresPurchase,omitempty"`
	TireService      *TireServiceDetails   `json:"tireService,omitempty"`
	Notes            string                `json:"notes,omitempty"`
}

// PhotoMeta describes one attached photo for validation purposes.
type PhotoMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// CreateCustomerRequest is the legacy create shape (no services, no numbering).
type CreateCustomerRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Street      string `json:"street" validate:"max=200"`
	HouseNumber string `json:"houseNumber" validate:"max=20"`
	ZipCode     string `json:"zipCode" validate:"max=10"`
	City        string `json:"city" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,max=50"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest is the allow-listed patch shape for v2 updates.
// Nil fields are left untouched.
type UpdateCustomerRequest struct {
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Street      *string `json:"street,omitempty" validate:"omitempty,max=200"`
	HouseNumber *string `json:"houseNumber,omitempty" validate:"omitempty,max=20"`
	ZipCode     *string `json:"zipCode,omitempty" validate:"omitempty,max=10"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// CreateServiceOrderRequest adds one service order to an existing customer.
type CreateServiceOrderRequest struct {
	ServiceType ServiceType `json:"serviceType" validate:"required"`
	Data        string      `json:"data"`
}

// CustomerDTO is the wire representation of a customer.
type CustomerDTO struct {
	ID               uuid.UUID         `json:"id"`
	CustomerNumber   string            `json:"customerNumber"`
	Year             int               `json:"year"`
	FirstName        string            `json:"firstName"`
	LastName         string            `json:"lastName"`
	FullName         string            `json:"fullName"`
	Street           string            `json:"street"`
	HouseNumber      string            `json:"houseNumber"`
	ZipCode          string            `json:"zipCode"`
	City             string            `json:"city"`
	FullAddress      string            `json:"fullAddress"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	SelectedServices []string          `json:"selectedServices"`
	Status           CustomerStatus    `json:"status"`
	ImageCount       int               `json:"imageCount"`
	HasImages        bool              `json:"hasImages"`
	Notes            string            `json:"notes,omitempty"`
	Services         []ServiceOrderDTO `json:"services,omitempty"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
}

// ServiceOrderDTO is the wire representation of one service order.
type ServiceOrderDTO struct {
	ID          uuid.UUID          `json:"id"`
	CustomerID  string             `json:"customerId"`
	ServiceType ServiceType        `json:"serviceType"`
	Data        string             `json:"data"`
	Status      ServiceOrderStatus `json:"status"`
	CreatedAt   string             `json:"createdAt"`
}

// CustomerFileDTO is the wire representation of an uploaded file, enriched
// with URLs derived from the storage endpoint.
type CustomerFileDTO struct {
	ID           uuid.UUID   `json:"id"`
	CustomerID   string      `json:"customerId"`
	Filename     string      `json:"filename"`
	ContentType  string      `json:"contentType"`
	Size         int64       `json:"size"`
	Purpose      FilePurpose `json:"purpose"`
	DisplayOrder int         `json:"order"`
	Notes        string      `json:"notes,omitempty"`
	ViewURL      string      `json:"viewUrl"`
	PreviewURL   string      `json:"previewUrl"`
	DownloadURL  string      `json:"downloadUrl"`
	CreatedAt    string      `json:"createdAt"`
}

// IntakeResultDTO is returned after a successful intake submission.
type IntakeResultDTO struct {
	Customer      CustomerDTO       `json:"customer"`
	Services      []ServiceOrderDTO `json:"services"`
	UploadedFiles []CustomerFileDTO `json:"uploadedFiles"`
}

// DashboardStats holds the derived per-status counts of the customer list.
type DashboardStats struct {
	TotalCustomers int                    `json:"totalCustomers"`
	ByStatus       map[CustomerStatus]int `json:"byStatus"`
	ComputedAt     time.Time              `json:"computedAt"`
}

// WizardStepsDTO describes the computed step sequence for a service selection.
type WizardStepsDTO struct {
	TotalSteps   int           `json:"totalSteps"`
	ServiceSteps []ServiceType `json:"serviceSteps"`
}

// LoginRequest carries staff credentials for session creation.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO describes an issued staff session.
type SessionDTO struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ToCustomerDTO converts Customer to CustomerDTO
func ToCustomerDTO(c *Customer) CustomerDTO {
	services := c.SelectedServices
	if services == nil {
		services = []string{}
	}
	return CustomerDTO{
		ID:               c.ID,
		CustomerNumber:   c.CustomerNumber,
		Year:             c.Year,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		FullName:         c.FullName,
		Street:           c.Street,
		HouseNumber:      c.HouseNumber,
		ZipCode:          c.ZipCode,
		City:             c.City,
		FullAddress:      c.FullAddress,
		Email:            c.Email,
		Phone:            c.Phone,
		SelectedServices: services,
		Status:           c.Status,
		ImageCount:       c.ImageCount,
		HasImages:        c.HasImages,
		Notes:            c.Notes,
		CreatedAt:        formatTime(c.CreatedAt),
		UpdatedAt:        formatTime(c.UpdatedAt),
	}
}

// ToServiceOrderDTO converts ServiceOrder to ServiceOrderDTO
func ToServiceOrderDTO(so *ServiceOrder) ServiceOrderDTO {
	return ServiceOrderDTO{
		ID:          so.ID,
		CustomerID:  so.OwnerID(),
		ServiceType: so.ServiceType,
		Data:        so.Data,
		Status:      so.Status,
		CreatedAt:   formatTime(so.CreatedAt),
	}
}

// ToServiceOrderDTOs converts a slice of ServiceOrder to DTOs
func ToServiceOrderDTOs(orders []ServiceOrder) []ServiceOrderDTO {
	dtos := make([]ServiceOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = ToServiceOrderDTO(&orders[i])
	}
	return dtos
}
