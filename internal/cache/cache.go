// Package cache holds the invalidatable read-side snapshots of the back
// office: the customer list, per-customer details and the dashboard stats.
// Writers invalidate after every mutation; readers fall through to the
// database on a miss.
package cache

import (
	"sync"
	"time"

	"github.com/radwerk/intake-api/internal/domain"
)

// Snapshots is a process-local cache. All methods are safe for concurrent use.
type Snapshots struct {
	mu        sync.RWMutex
	list      []domain.CustomerDTO
	listSet   bool
	customers map[string]domain.CustomerDTO
	stats     *domain.DashboardStats
	statsTTL  time.Duration
}

// NewSnapshots creates an empty cache. statsTTL bounds how stale the
// dashboard stats snapshot may get between cron refreshes.
func NewSnapshots(statsTTL time.Duration) *Snapshots {
	return &Snapshots{
		customers: make(map[string]domain.CustomerDTO),
		statsTTL:  statsTTL,
	}
}

// List returns the cached customer list, if set.
func (c *Snapshots) List() ([]domain.CustomerDTO, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.listSet {
		return nil, false
	}
	out := make([]domain.CustomerDTO, len(c.list))
	copy(out, c.list)
	return out, true
}

// SetList stores the customer list snapshot.
func (c *Snapshots) SetList(list []domain.CustomerDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = make([]domain.CustomerDTO, len(list))
	copy(c.list, list)
	c.listSet = true
}

// Customer returns the cached detail snapshot of one customer.
func (c *Snapshots) Customer(id string) (domain.CustomerDTO, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dto, ok := c.customers[id]
	return dto, ok
}

// SetCustomer stores one customer detail snapshot.
func (c *Snapshots) SetCustomer(id string, dto domain.CustomerDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers[id] = dto
}

// Stats returns the cached dashboard stats unless expired.
func (c *Snapshots) Stats() (*domain.DashboardStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return nil, false
	}
	if c.statsTTL > 0 && time.Since(c.stats.ComputedAt) > c.statsTTL {
		return nil, false
	}
	stats := *c.stats
	return &stats, true
}

// SetStats stores the dashboard stats snapshot.
func (c *Snapshots) SetStats(stats *domain.DashboardStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := *stats
	c.stats = &s
}

// InvalidateCustomer drops one customer's detail snapshot along with the
// list and stats, which both derive from customer rows.
func (c *Snapshots) InvalidateCustomer(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.customers, id)
	c.list = nil
	c.listSet = false
	c.stats = nil
}

// InvalidateAll drops every snapshot.
func (c *Snapshots) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customers = make(map[string]domain.CustomerDTO)
	c.list = nil
	c.listSet = false
	c.stats = nil
}
