// Package cache guarda copias del catálogo fuera del proceso.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

var _ ports.SnapshotStore = NoopSnapshotStore{}

// NoopSnapshotStore se usa cuando no hay Redis: no guarda nada y nunca encuentra copia.
type NoopSnapshotStore struct{}

func (NoopSnapshotStore) Save(context.Context, string, []byte) error { return nil }

func (NoopSnapshotStore) Load(_ context.Context, table string) ([]byte, time.Time, error) {
	return nil, time.Time{}, fmt.Errorf("snapshot %s: %w", table, domain.ErrNotFound)
}
