package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the id application-side so the same models work on
// Postgres and the SQLite test databases.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CustomerStatus represents the processing status of an intake customer.
// Staff normally move customers forward through the sequence, but any
// status may be set at any time.
type CustomerStatus string

const (
	CustomerStatusReceived   CustomerStatus = "eingegangen"
	CustomerStatusInProgress CustomerStatus = "in-bearbeitung"
	CustomerStatusCompleted  CustomerStatus = "fertiggestellt"
	CustomerStatusPickedUp   CustomerStatus = "abgeholt"
)

// IsValid checks if the CustomerStatus is a valid enum value
func (cs CustomerStatus) IsValid() bool {
	switch cs {
	case CustomerStatusReceived, CustomerStatusInProgress, CustomerStatusCompleted, CustomerStatusPickedUp:
		return true
	}
	return false
}

// AllCustomerStatuses lists the statuses in their normal lifecycle order.
var AllCustomerStatuses = []CustomerStatus{
	CustomerStatusReceived,
	CustomerStatusInProgress,
	CustomerStatusCompleted,
	CustomerStatusPickedUp,
}

// ServiceType represents one of the three offerings a customer can request.
type ServiceType string

const (
	ServiceTypeRims          ServiceType = "rims"
	ServiceTypeTiresPurchase ServiceType = "tires-purchase"
	ServiceTypeTireService   ServiceType = "tire-service"
)

// IsValid checks if the ServiceType is a valid enum value
func (st ServiceType) IsValid() bool {
	switch st {
	case ServiceTypeRims, ServiceTypeTiresPurchase, ServiceTypeTireService:
		return true
	}
	return false
}

// CanonicalServiceOrder is the fixed ordering used by the intake wizard to
// map selected services onto detail steps.
var CanonicalServiceOrder = []ServiceType{
	ServiceTypeRims,
	ServiceTypeTiresPurchase,
	ServiceTypeTireService,
}

// ServiceOrderStatus represents the status of a single service order,
// independent of the owning customer's status.
type ServiceOrderStatus string

const (
	ServiceOrderStatusOpen       ServiceOrderStatus = "offen"
	ServiceOrderStatusInProgress ServiceOrderStatus = "in-bearbeitung"
	ServiceOrderStatusDone       ServiceOrderStatus = "fertig"
	ServiceOrderStatusCancelled  ServiceOrderStatus = "storniert"
)

// IsValid checks if the ServiceOrderStatus is a valid enum value
func (s ServiceOrderStatus) IsValid() bool {
	switch s {
	case ServiceOrderStatusOpen, ServiceOrderStatusInProgress, ServiceOrderStatusDone, ServiceOrderStatusCancelled:
		return true
	}
	return false
}

// FilePurpose classifies an uploaded customer file.
type FilePurpose string

const (
	FilePurposeRim     FilePurpose = "rim"
	FilePurposeInvoice FilePurpose = "invoice"
	FilePurposeProfile FilePurpose = "profile"
	FilePurposeOther   FilePurpose = "other"
)

// IsValid checks if the FilePurpose is a valid enum value
func (fp FilePurpose) IsValid() bool {
	switch fp {
	case FilePurposeRim, FilePurposeInvoice, FilePurposeProfile, FilePurposeOther:
		return true
	}
	return false
}

// Customer represents one intake submission
type Customer struct {
	BaseModel
	CustomerNumber   string         `gorm:"type:varchar(20);not null;unique;index;column:customer_number"`
	Year             int            `gorm:"not null;index"`
	FirstName        string         `gorm:"type:varchar(100);not null;column:first_name"`
	LastName         string         `gorm:"type:varchar(100);not null;column:last_name"`
	FullName         string         `gorm:"type:varchar(200);not null;index;column:full_name"`
	Street           string         `gorm:"type:varchar(200);not null"`
	HouseNumber      string         `gorm:"type:varchar(20);not null;column:house_number"`
	ZipCode          string         `gorm:"type:varchar(10);not null;column:zip_code"`
	City             string         `gorm:"type:varchar(100);not null"`
	FullAddress      string         `gorm:"type:varchar(500);not null;column:full_address"`
	Email            string         `gorm:"type:varchar(255);not null"`
	Phone            string         `gorm:"type:varchar(50);not null"`
	SelectedServices pq.StringArray `gorm:"type:text[];column:selected_services"`
	Status           CustomerStatus `gorm:"type:varchar(50);not null;default:'eingegangen';index"`
	ImageCount       int            `gorm:"not null;default:0;column:image_count"`
	HasImages        bool           `gorm:"not null;default:false;column:has_images"`
	Notes            string         `gorm:"type:text"`
}

// DeriveFullName builds the display name from the contact fields.
func DeriveFullName(firstName, lastName string) string {
	return trimJoin(" ", firstName, lastName)
}

// DeriveFullAddress builds the single-line address from the contact fields.
func DeriveFullAddress(street, houseNumber, zipCode, city string) string {
	return trimJoin(", ", trimJoin(" ", street, houseNumber), trimJoin(" ", zipCode, city))
}

func trimJoin(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// ServiceOrder represents one requested service for a customer.
// Created during intake submission and immutable afterwards apart from its status.
//
// CustomerID is the relation column of the current schema. Deployments migrated
// from the old collection layout only have a plain customer_ref string column;
// the repository falls back to it when the relation column is missing.
type ServiceOrder struct {
	BaseModel
	CustomerID  *uuid.UUID         `gorm:"type:uuid;index;column:customer_id"`
	Customer    *Customer          `gorm:"foreignKey:CustomerID"`
	CustomerRef string             `gorm:"type:varchar(100);index;column:customer_ref"`
	ServiceType ServiceType        `gorm:"type:varchar(50);not null;index;column:service_type"`
	Data        string             `gorm:"type:jsonb"`
	Status      ServiceOrderStatus `gorm:"type:varchar(50);not null;default:'offen'"`
}

// OwnerID returns the owning customer id regardless of which reference
// column the backing schema carries.
func (so *ServiceOrder) OwnerID() string {
	if so.CustomerID != nil {
		return so.CustomerID.String()
	}
	return so.CustomerRef
}

// CustomerFile represents an uploaded image or document attached to a customer.
type CustomerFile struct {
	BaseModel
	CustomerID   *uuid.UUID  `gorm:"type:uuid;index;column:customer_id"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID"`
	CustomerRef  string      `gorm:"type:varchar(100);index;column:customer_ref"`
	Filename     string      `gorm:"type:varchar(255);not null"`
	ContentType  string      `gorm:"type:varchar(100);not null;column:content_type"`
	Size         int64       `gorm:"not null"`
	StoragePath  string      `gorm:"type:varchar(500);not null;unique;column:storage_path"`
	Purpose      FilePurpose `gorm:"type:varchar(50);not null;default:'rim'"`
	DisplayOrder int         `gorm:"not null;default:0;column:display_order"`
	Notes        string      `gorm:"type:text"`
}

// OwnerID returns the owning customer id regardless of which reference
// column the backing schema carries.
func (cf *CustomerFile) OwnerID() string {
	if cf.CustomerID != nil {
		return cf.CustomerID.String()
	}
	return cf.CustomerRef
}

// Counter holds the last issued sequence number for a (scope, year) pair.
// Scopes are entity names, e.g. "customers".
type Counter struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Scope     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_counter_scope_year"`
	Year      int       `gorm:"not null;uniqueIndex:idx_counter_scope_year"`
	LastValue int       `gorm:"not null;default:0;column:last_value"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the id application-side, same as BaseModel.
func (c *Counter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Setting is one persisted key/value pair of the runtime settings store.
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// RimFinish represents the surface finish of a rim refurbishment.
type RimFinish string

const (
	RimFinishGloss       RimFinish = "glanz"
	RimFinishMatte       RimFinish = "matt"
	RimFinishSatin       RimFinish = "seidenmatt"
	RimFinishPolished    RimFinish = "poliert"
	RimFinishCombination RimFinish = "kombination"
)

// RimSticker represents the sticker option for refurbished rims.
type RimSticker string

const (
	RimStickerNone     RimSticker = "keine"
	RimStickerStandard RimSticker = "standard"
	RimStickerColored  RimSticker = "farbig"
)

// TireUsage represents the seasonal usage of purchased tires.
type TireUsage string

const (
	TireUsageSummer    TireUsage = "sommer"
	TireUsageWinter    TireUsage = "winter"
	TireUsageAllSeason TireUsage = "ganzjahres"
)

// BrandPreference represents the tire brand preference of a purchase.
type BrandPreference string

const (
	BrandPreferencePremium   BrandPreference = "premium"
	BrandPreferenceBasic     BrandPreference = "basic"
	BrandPreferenceLowBudget BrandPreference = "low-budget"
	BrandPreferenceTargeted  BrandPreference = "targeted"
)

// RimDetails is the service-specific payload of a rim refurbishment order.
type RimDetails struct {
	Count        string `json:"count,omitempty"`
	HasBent      string `json:"hasBent,omitempty"`
	DamagedCount string `json:"damagedCount,omitempty"`
	Finish       string `json:"finish,omitempty"`
	Color        string `json:"color,omitempty"`
	Combination  string `json:"combination,omitempty"`
	Sticker      string `json:"sticker,omitempty"`
	StickerColor string `json:"stickerColor,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// TiresPurchaseDetails is the service-specific payload of a tire purchase order.
type TiresPurchaseDetails struct {
	Quantity        string `json:"quantity,omitempty"`
	Size            string `json:"size,omitempty"`
	Usage           string `json:"usage,omitempty"`
	BrandPreference string `json:"brandPreference,omitempty"`
	TargetBrand     string `json:"targetBrand,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// TireServiceDetails is the service-specific payload of a tire mounting order.
type TireServiceDetails struct {
	MountService string `json:"mountService,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
