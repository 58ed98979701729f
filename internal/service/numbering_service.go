package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/repository"
)

// CustomerNumberScope is the counter scope used for customer numbers.
const CustomerNumberScope = "customers"

var customerNumberPattern = regexp.MustCompile(`^C-\d{4}-\d{6}$`)

// NumberingService issues the year-scoped customer numbers shown on
// printouts and used by staff on the phone.
//
// Format: C-{YEAR}-{SEQUENCE}, sequence zero-padded to 6 digits.
// Example: C-2026-000041. The sequence restarts at 1 each year.
type NumberingService struct {
	repo   *repository.CounterRepository
	logger *zap.Logger
	// now is swappable for tests
	now func() time.Time
}

// NewNumberingService creates a new NumberingService
func NewNumberingService(repo *repository.CounterRepository, logger *zap.Logger) *NumberingService {
	return &NumberingService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// NextCustomerNumber allocates the next customer number for the current
// year. The underlying counter increment is atomic, so concurrent intake
// submissions always get distinct numbers.
func (s *NumberingService) NextCustomerNumber(ctx context.Context) (string, int, error) {
	year := s.now().Year()

	seq, err := s.repo.NextValue(ctx, CustomerNumberScope, year)
	if err != nil {
		s.logger.Error("failed to allocate customer number",
			zap.Int("year", year),
			zap.Error(err))
		return "", 0, fmt.Errorf("failed to allocate customer number: %w", err)
	}

	number := fmt.Sprintf("C-%d-%06d", year, seq)

	s.logger.Info("allocated customer number",
		zap.String("number", number),
		zap.Int("year", year),
		zap.Int("sequence", seq))

	return number, year, nil
}

// CurrentSequence returns the last issued sequence for a year without
// allocating. Returns 0 when nothing has been issued yet.
func (s *NumberingService) CurrentSequence(ctx context.Context, year int) (int, error) {
	return s.repo.CurrentValue(ctx, CustomerNumberScope, year)
}

// InitializeSequence raises the counter for a year, used when importing
// already-numbered customers from the legacy system. The value is the LAST
// USED sequence number.
func (s *NumberingService) InitializeSequence(ctx context.Context, year, value int) error {
	return s.repo.SetValue(ctx, CustomerNumberScope, year, value)
}

// ValidateCustomerNumber checks the C-YYYY-NNNNNN format.
func ValidateCustomerNumber(number string) bool {
	return customerNumberPattern.MatchString(number)
}
