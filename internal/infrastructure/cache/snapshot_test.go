package cache

import (
	"context"
	"os"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

func TestNoopSnapshotStore(t *testing.T) {
	var s NoopSnapshotStore
	require.NoError(t, s.Save(context.Background(), "productos", []byte(`[]`)))

	_, _, err := s.Load(context.Background(), "productos")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisSnapshotStore_RejectsNonJSON(t *testing.T) {
	s := NewRedisSnapshotStore("127.0.0.1:1", "", 0, time.Minute)
	defer s.Close()

	err := s.Save(context.Background(), "productos", []byte("no-json"))
	assert.ErrorContains(t, err, "no es JSON")
}

func TestRedisSnapshotStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	s := newRedisSnapshotStoreWithClient(client, time.Minute)
	defer s.Close()

	_, _, err := s.Load(context.Background(), "productos")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// Requiere REDIS_ADDR apuntando a una instancia desechable.
func TestRedisSnapshotStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	s := NewRedisSnapshotStore(addr, os.Getenv("REDIS_PASSWORD"), 0, time.Minute)
	defer s.Close()
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	table := "test-" + time.Now().Format("150405.000")
	require.NoError(t, s.Save(ctx, table, []byte(`[{"Name":"Efectivo"}]`)))

	data, savedAt, err := s.Load(ctx, table)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Name":"Efectivo"}]`, string(data))
	assert.WithinDuration(t, time.Now(), savedAt, time.Minute)

	_, _, err = s.Load(ctx, "no-existe-"+table)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
