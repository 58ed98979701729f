package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwerk/intake-api/internal/testutil"
)

func TestCounterRepository_NextValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	t.Run("first call creates counter at 1", func(t *testing.T) {
		v, err := repo.NextValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("subsequent calls increment", func(t *testing.T) {
		v, err := repo.NextValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 2, v)

		v, err = repo.NextValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("years have independent counters", func(t *testing.T) {
		v, err := repo.NextValue(ctx, "customers", 2027)
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = repo.NextValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	})

	t.Run("scopes have independent counters", func(t *testing.T) {
		v, err := repo.NextValue(ctx, "invoices", 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
}

func TestCounterRepository_CurrentValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	v, err := repo.CurrentValue(ctx, "customers", 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = repo.NextValue(ctx, "customers", 2026)
	require.NoError(t, err)

	v, err = repo.CurrentValue(ctx, "customers", 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestCounterRepository_SetValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	t.Run("creates counter at value", func(t *testing.T) {
		require.NoError(t, repo.SetValue(ctx, "customers", 2026, 40))
		v, err := repo.NextValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 41, v)
	})

	t.Run("never lowers an existing counter", func(t *testing.T) {
		require.NoError(t, repo.SetValue(ctx, "customers", 2026, 5))
		v, err := repo.CurrentValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 41, v)
	})

	t.Run("raises an existing counter", func(t *testing.T) {
		require.NoError(t, repo.SetValue(ctx, "customers", 2026, 100))
		v, err := repo.CurrentValue(ctx, "customers", 2026)
		require.NoError(t, err)
		assert.Equal(t, 100, v)
	})
}
