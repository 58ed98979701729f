package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/cache"
	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/repository"
)

// DashboardService serves the admin customer list and the derived stats.
type DashboardService struct {
	customerRepo *repository.CustomerRepository
	orderRepo    *repository.ServiceOrderRepository
	snapshots    *cache.Snapshots
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	customerRepo *repository.CustomerRepository,
	orderRepo *repository.ServiceOrderRepository,
	snapshots *cache.Snapshots,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// ListCustomers returns customers newest-first with their service orders
// merged in, optionally narrowed by status and year. The unfiltered list is
// served from the snapshot cache when warm.
func (s *DashboardService) ListCustomers(ctx context.Context, filter repository.ListFilter) ([]domain.CustomerDTO, error) {
	unfiltered := filter == (repository.ListFilter{})
	if unfiltered {
		if list, ok := s.snapshots.List(); ok {
			return list, nil
		}
	}

	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	ids := make([]uuid.UUID, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
	}
	grouped, err := s.orderRepo.ListByCustomers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load service orders: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i := range customers {
		dto := domain.ToCustomerDTO(&customers[i])
		dto.Services = domain.ToServiceOrderDTOs(grouped[customers[i].ID.String()])
		dtos[i] = dto
	}

	if unfiltered {
		s.snapshots.SetList(dtos)
	}
	return dtos, nil
}

// Stats returns the per-status counts, served from the snapshot when warm.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if stats, ok := s.snapshots.Stats(); ok {
		return stats, nil
	}
	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the stats from the database and stores the
// snapshot. The cron job calls this periodically.
func (s *DashboardService) RefreshStats(ctx context.Context) (*domain.DashboardStats, error) {
	counts, err := s.customerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	stats := &domain.DashboardStats{
		ByStatus:   make(map[domain.CustomerStatus]int, len(domain.AllCustomerStatuses)),
		ComputedAt: time.Now().UTC(),
	}
	// Every status appears in the result, zero or not.
	for _, status := range domain.AllCustomerStatuses {
		stats.ByStatus[status] = counts[status]
		stats.TotalCustomers += counts[status]
	}

	s.snapshots.SetStats(stats)
	return stats, nil
}

// ComputeStats is the pure reduction over a customer list, for callers
// that already hold the list.
func ComputeStats(customers []domain.CustomerDTO) *domain.DashboardStats {
	stats := &domain.DashboardStats{
		ByStatus:   make(map[domain.CustomerStatus]int, len(domain.AllCustomerStatuses)),
		ComputedAt: time.Now().UTC(),
	}
	for _, status := range domain.AllCustomerStatuses {
		stats.ByStatus[status] = 0
	}
	for _, c := range customers {
		stats.TotalCustomers++
		stats.ByStatus[c.Status]++
	}
	return stats
}

// FilterCustomers narrows an already-loaded list: case-insensitive
// substring match over name, email and phone, AND-combined with an exact
// status match. Empty criteria pass everything.
func FilterCustomers(customers []domain.CustomerDTO, search string, status domain.CustomerStatus) []domain.CustomerDTO {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.CustomerDTO, 0, len(customers))
	for _, c := range customers {
		if status != "" && c.Status != status {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(c.FullName + " " + c.Email + " " + c.Phone)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
