package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

var _ ports.SnapshotStore = (*RedisSnapshotStore)(nil)

const keyPrefix = "umo:catalogo:"

// envelope lo que se guarda por tabla.
type envelope struct {
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// RedisSnapshotStore copias del catálogo en Redis con expiración.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore crea el cliente. ttl cero = sin expiración.
func NewRedisSnapshotStore(addr, password string, db int, ttl time.Duration) *RedisSnapshotStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

// newRedisSnapshotStoreWithClient para pruebas.
func newRedisSnapshotStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

// Save guarda payload (JSON) con la hora actual.
func (s *RedisSnapshotStore) Save(ctx context.Context, table string, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("snapshot %s: payload no es JSON", table)
	}
	b, err := json.Marshal(envelope{SavedAt: time.Now().UTC(), Data: payload})
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+table, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot %s: %w", table, err)
	}
	return nil
}

// Load devuelve domain.ErrNotFound si la llave no existe o expiró.
func (s *RedisSnapshotStore) Load(ctx context.Context, table string) ([]byte, time.Time, error) {
	val, err := s.client.Get(ctx, keyPrefix+table).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, time.Time{}, fmt.Errorf("snapshot %s: %w", table, domain.ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("snapshot %s: %w", table, err)
	}
	var env envelope
	if err := json.Unmarshal(val, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("snapshot %s: %w", table, err)
	}
	return env.Data, env.SavedAt, nil
}
