package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRememberLoadsOnce(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	calls := 0
	load := func(context.Context) ([]brand, error) {
		calls++
		return []brand{{ID: "1", Name: "Fiat"}}, nil
	}

	first, err := Remember(ctx, c, zap.NewNop(), "brands:all", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(ctx, c, zap.NewNop(), "brands:all", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRememberReloadsAfterDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = Remember(ctx, c, zap.NewNop(), "k", 0, load)
	require.NoError(t, c.Delete(ctx, "k"))
	v, err := Remember(ctx, c, zap.NewNop(), "k", 0, load)

	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	boom := errors.New("db down")

	_, err := Remember(ctx, c, zap.NewNop(), "k", time.Minute, func(context.Context) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}
