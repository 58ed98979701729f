package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/legacy"
	"github.com/radwerk/intake-api/internal/repository"
)

// ImportResult summarizes one legacy import run.
type ImportResult struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// LegacyImportService copies customers from the previous workshop software
// into this system. Triggered by staff, idempotent per run: customers whose
// email already exists are skipped.
type LegacyImportService struct {
	client       *legacy.Client
	customerRepo *repository.CustomerRepository
	numbering    *NumberingService
	snapshots    *cache.Snapshots
	logger       *zap.Logger
}

// NewLegacyImportService creates a new LegacyImportService. client may be
// nil when the legacy connection is disabled.
func NewLegacyImportService(
	client *legacy.Client,
	customerRepo *repository.CustomerRepository,
	numbering *NumberingService,
	snapshots *cache.Snapshots,
	logger *zap.Logger,
) *LegacyImportService {
	return &LegacyImportService{
		client:       client,
		customerRepo: customerRepo,
		numbering:    numbering,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// Available reports whether the legacy connection is configured.
func (s *LegacyImportService) Available() bool {
	return s.client.IsEnabled()
}

// Import fetches legacy customers created after the cutoff and creates
// them here with freshly allocated customer numbers.
func (s *LegacyImportService) Import(ctx context.Context, since time.Time) (*ImportResult, error) {
	if !s.client.IsEnabled() {
		return nil, ErrLegacyDisabled
	}

	legacyCustomers, err := s.client.FetchCustomers(ctx, since)
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	knownEmails := make(map[string]bool, len(existing))
	for _, c := range existing {
		knownEmails[strings.ToLower(c.Email)] = true
	}

	result := &ImportResult{Fetched: len(legacyCustomers)}
	for _, lc := range legacyCustomers {
		if lc.Email != "" && knownEmails[strings.ToLower(lc.Email)] {
			result.Skipped++
			continue
		}

		number, year, err := s.numbering.NextCustomerNumber(ctx)
		if err != nil {
			return result, err
		}

		// The old system stored street and house number in one field.
		street, houseNumber := splitStreet(lc.Street)

		customer := &domain.Customer{
			CustomerNumber: number,
			Year:           year,
			FirstName:      lc.FirstName,
			LastName:       lc.LastName,
			FullName:       domain.DeriveFullName(lc.FirstName, lc.LastName),
			Street:         street,
			HouseNumber:    houseNumber,
			ZipCode:        lc.ZipCode,
			City:           lc.City,
			FullAddress:    domain.DeriveFullAddress(street, houseNumber, lc.ZipCode, lc.City),
			Email:          lc.Email,
			Phone:          lc.Phone,
			Status:         domain.CustomerStatusReceived,
			Notes:          lc.Notes,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			s.logger.Warn("failed to import legacy customer",
				zap.String("email", lc.Email),
				zap.Error(err))
			result.Skipped++
			continue
		}
		if lc.Email != "" {
			knownEmails[strings.ToLower(lc.Email)] = true
		}
		result.Imported++
	}

	s.snapshots.InvalidateAll()

	s.logger.Info("legacy import completed",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

// splitStreet separates a combined "Hauptstraße 12a" value into street and
// house number on the last space before a digit.
func splitStreet(combined string) (string, string) {
	combined = strings.TrimSpace(combined)
	idx := strings.LastIndex(combined, " ")
	if idx <= 0 || idx == len(combined)-1 {
		return combined, ""
	}
	rest := combined[idx+1:]
	if rest[0] >= '0' && rest[0] <= '9' {
		return combined[:idx], rest
	}
	return combined, ""
}
