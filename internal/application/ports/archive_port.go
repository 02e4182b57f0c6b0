package ports

import (
	"context"
	"time"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

// ClosureEvent tipo de registro en el historial de cortes.
type ClosureEvent string

const (
	EventClosed   ClosureEvent = "cierre"
	EventReopened ClosureEvent = "reapertura"
)

// ClosureRecord una entrada del historial de un turno.
type ClosureRecord struct {
	ShiftID  string
	Event    ClosureEvent
	Branch   string
	Operator string
	Date     string
	Counted  entity.Balances
	Figures  entity.ReconciliationFigures
	By       string // quien autorizó (vacío si no hubo credencial)
	At       time.Time
}

// ClosureArchive historial de cierres y reaperturas. El almacén tabular solo
// guarda el último cierre de cada turno; aquí queda cada intento.
type ClosureArchive interface {
	SaveClosure(ctx context.Context, rec ClosureRecord) error
	RecordReopen(ctx context.Context, shiftID, by string, at time.Time) error
	ListClosures(ctx context.Context, shiftID string) ([]ClosureRecord, error)
}
