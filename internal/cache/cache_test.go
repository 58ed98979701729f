package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/radwerk/intake-api/internal/domain"
)

func TestSnapshots_ListRoundTrip(t *testing.T) {
	c := NewSnapshots(0)

	_, ok := c.List()
	assert.False(t, ok)

	c.SetList([]domain.CustomerDTO{{CustomerNumber: "C-2026-000001"}})
	list, ok := c.List()
	assert.True(t, ok)
	assert.Len(t, list, 1)

	// An empty list is still a valid snapshot.
	c.SetList(nil)
	list, ok = c.List()
	assert.True(t, ok)
	assert.Empty(t, list)
}

func TestSnapshots_InvalidateCustomerDropsDerived(t *testing.T) {
	c := NewSnapshots(0)
	c.SetList([]domain.CustomerDTO{{CustomerNumber: "C-2026-000001"}})
	c.SetCustomer("a", domain.CustomerDTO{CustomerNumber: "C-2026-000001"})
	c.SetCustomer("b", domain.CustomerDTO{CustomerNumber: "C-2026-000002"})
	c.SetStats(&domain.DashboardStats{TotalCustomers: 2, ComputedAt: time.Now()})

	c.InvalidateCustomer("a")

	_, ok := c.Customer("a")
	assert.False(t, ok)
	_, ok = c.Customer("b")
	assert.True(t, ok)
	_, ok = c.List()
	assert.False(t, ok)
	_, ok = c.Stats()
	assert.False(t, ok)
}

func TestSnapshots_StatsTTL(t *testing.T) {
	c := NewSnapshots(50 * time.Millisecond)

	c.SetStats(&domain.DashboardStats{TotalCustomers: 1, ComputedAt: time.Now().Add(-time.Second)})
	_, ok := c.Stats()
	assert.False(t, ok)

	c.SetStats(&domain.DashboardStats{TotalCustomers: 1, ComputedAt: time.Now()})
	stats, ok := c.Stats()
	assert.True(t, ok)
	assert.Equal(t, 1, stats.TotalCustomers)
}
