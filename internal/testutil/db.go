// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/radwerk/intake-api/internal/domain"
)

// NewTestDB opens an in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database with a shared cache: every pooled
	// connection sees the same data, but tests stay isolated from each other.
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// SQLite cannot DROP a column that appears in a foreign key
		// clause, which the legacy-schema tests rely on; constraints are
		// not enforced in these in-memory databases anyway.
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// SQLite allows one writer; a single pooled connection serializes
	// concurrent test transactions instead of failing them with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.Customer{},
		&domain.ServiceOrder{},
		&domain.CustomerFile{},
		&domain.Counter{},
		&domain.Setting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SeedCustomer inserts a customer with sane defaults, applying overrides.
func SeedCustomer(t *testing.T, db *gorm.DB, overrides func(*domain.Customer)) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{
		BaseModel:      domain.BaseModel{ID: uuid.New()},
		CustomerNumber: "C-2026-" + uuid.New().String()[:6],
		Year:           2026,
		FirstName:      "Max",
		LastName:       "Mustermann",
		FullName:       "Max Mustermann",
		Street:         "Hauptstraße",
		HouseNumber:    "1",
		ZipCode:        "44135",
		City:           "Dortmund",
		FullAddress:    "Hauptstraße 1, 44135 Dortmund",
		Email:          "max@example.com",
		Phone:          "0231 123456",
		Status:         domain.CustomerStatusReceived,
	}
	if overrides != nil {
		overrides(customer)
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}
