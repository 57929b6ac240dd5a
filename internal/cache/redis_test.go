package cache

import (
	"context"
	"testing"

	"aquabot_telemetry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowKey(t *testing.T) {
	assert.Equal(t, "aquabot:window:10", windowKey(10))
	assert.NotEqual(t, windowKey(10), windowKey(5))
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	c, err := New(Options{Enabled: false, Addr: "does-not-matter:6379"})
	require.NoError(t, err)
	require.IsType(t, Noop{}, c)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 10, []models.StoredReading{{ID: "x"}}))

	got, ok, err := c.Get(ctx, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx))
	assert.NoError(t, c.Close())
}

func TestNew_UnreachableRedisFails(t *testing.T) {
	// port 1 is never a redis server
	_, err := New(Options{Enabled: true, Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
