package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radwerk/intake-api/internal/repository"
	"github.com/radwerk/intake-api/internal/testutil"
)

func TestNumberingService_NextCustomerNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewNumberingService(repository.NewCounterRepository(db), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	number, year, err := svc.NextCustomerNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C-2026-000001", number)
	assert.Equal(t, 2026, year)

	number, _, err = svc.NextCustomerNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C-2026-000002", number)
}

func TestNumberingService_YearRollover(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewNumberingService(repository.NewCounterRepository(db), zap.NewNop())
	ctx := context.Background()

	svc.now = func() time.Time { return time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC) }
	number, _, err := svc.NextCustomerNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C-2026-000001", number)

	// The sequence restarts with the new year.
	svc.now = func() time.Time { return time.Date(2027, 1, 1, 0, 1, 0, 0, time.UTC) }
	number, _, err = svc.NextCustomerNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C-2027-000001", number)
}

func TestNumberingService_UniqueUnderConcurrency(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewNumberingService(repository.NewCounterRepository(db), zap.NewNop())
	ctx := context.Background()

	const n = 20
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			number, _, err := svc.NextCustomerNumber(ctx)
			if err != nil {
				results <- fmt.Sprintf("error: %v", err)
				return
			}
			results <- number
		}()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		number := <-results
		assert.False(t, seen[number], "duplicate number issued: %s", number)
		seen[number] = true
	}
}

func TestValidateCustomerNumber(t *testing.T) {
	assert.True(t, ValidateCustomerNumber("C-2026-000001"))
	assert.True(t, ValidateCustomerNumber("C-2026-999999"))
	assert.False(t, ValidateCustomerNumber("C-26-000001"))
	assert.False(t, ValidateCustomerNumber("K-2026-000001"))
	assert.False(t, ValidateCustomerNumber("C-2026-1"))
	assert.False(t, ValidateCustomerNumber(""))
}
