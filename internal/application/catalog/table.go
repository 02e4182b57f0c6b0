package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/ports"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// Origen de los datos de una tabla.
const (
	SourceStore    = "appsheet"
	SourceSnapshot = "snapshot"
)

// TableStatus estado de una tabla del caché.
type TableStatus struct {
	Name     string    `json:"tabla"`
	Loaded   bool      `json:"cargada"`
	Count    int       `json:"registros"`
	LoadedAt time.Time `json:"actualizada"`
	Source   string    `json:"origen,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// table una entrada del caché. La carga sobrescribe la lista completa.
type table[T any] struct {
	name string
	load func(ctx context.Context) ([]T, error)

	mu       sync.RWMutex
	items    []T
	loaded   bool
	loadedAt time.Time
	source   string
	lastErr  string
}

func newTable[T any](name string, load func(ctx context.Context) ([]T, error)) *table[T] {
	return &table[T]{name: name, load: load}
}

// get devuelve la lista en memoria o la carga. Dos lecturas simultáneas en frío
// pueden disparar dos cargas; la segunda sobrescribe a la primera.
func (t *table[T]) get(ctx context.Context, snaps ports.SnapshotStore, log *logger.Logger) ([]T, error) {
	t.mu.RLock()
	if t.loaded {
		items := t.items
		t.mu.RUnlock()
		return items, nil
	}
	t.mu.RUnlock()
	return t.reload(ctx, snaps, log)
}

// reload trae la tabla del almacén. Una respuesta que no es lista cuenta como
// tabla vacía. Si el almacén falla y la tabla está fría, se intenta la copia.
func (t *table[T]) reload(ctx context.Context, snaps ports.SnapshotStore, log *logger.Logger) ([]T, error) {
	items, err := t.load(ctx)
	if errors.Is(err, domain.ErrMalformedResponse) {
		log.Warn().Err(err).Str("table", t.name).Msg("respuesta no es lista, se usa tabla vacía")
		items, err = []T{}, nil
	}
	if err != nil {
		t.mu.Lock()
		t.lastErr = err.Error()
		warm, current := t.loaded, t.items
		t.mu.Unlock()
		if warm {
			return current, err
		}
		if fallback, ok := t.fromSnapshot(ctx, snaps, log); ok {
			return fallback, nil
		}
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	t.mu.Lock()
	t.items = items
	t.loaded = true
	t.loadedAt = time.Now()
	t.source = SourceStore
	t.lastErr = ""
	t.mu.Unlock()

	if payload, err := json.Marshal(items); err == nil {
		if err := snaps.Save(ctx, t.name, payload); err != nil {
			log.Warn().Err(err).Str("table", t.name).Msg("no se guardó la copia del catálogo")
		}
	}
	return items, nil
}

// fromSnapshot sirve la última copia sin marcar la tabla como cargada, así la
// siguiente lectura vuelve a intentar con el almacén.
func (t *table[T]) fromSnapshot(ctx context.Context, snaps ports.SnapshotStore, log *logger.Logger) ([]T, bool) {
	payload, savedAt, err := snaps.Load(ctx, t.name)
	if err != nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		log.Warn().Err(err).Str("table", t.name).Msg("copia del catálogo ilegible")
		return nil, false
	}
	log.Warn().Str("table", t.name).Time("saved_at", savedAt).Msg("almacén no disponible, se sirve la copia")

	t.mu.Lock()
	t.source = SourceSnapshot
	t.mu.Unlock()
	return items, true
}

// appendIfWarm agrega item solo si la tabla ya está cargada.
func (t *table[T]) appendIfWarm(item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return
	}
	next := make([]T, len(t.items), len(t.items)+1)
	copy(next, t.items)
	t.items = append(next, item)
}

func (t *table[T]) status() TableStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TableStatus{
		Name:     t.name,
		Loaded:   t.loaded,
		Count:    len(t.items),
		LoadedAt: t.loadedAt,
		Source:   t.source,
		Error:    t.lastErr,
	}
}
