package ports

import (
	"context"
	"time"
)

// SnapshotStore define el puerto de salida para guardar la última copia buena
// de cada tabla del catálogo. Si el almacén principal no responde al arrancar,
// el caché sirve la tabla desde aquí.
type SnapshotStore interface {
	// Save reemplaza la copia de table.
	Save(ctx context.Context, table string, payload []byte) error
	// Load devuelve la copia y cuándo se guardó; domain.ErrNotFound si no hay.
	Load(ctx context.Context, table string) ([]byte, time.Time, error)
}
