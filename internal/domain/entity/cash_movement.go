package entity

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/pkg/textfold"
)

// MovementKind clasificación de un movimiento de caja.
type MovementKind string

const (
	MovementIncome  MovementKind = "Ingreso"
	MovementOutcome MovementKind = "Egreso"
	MovementExpense MovementKind = "Gasto"
	MovementOther   MovementKind = ""
)

// ClassifyMovement clasifica el tipo capturado a mano por subcadena.
// "Gasto" se revisa antes que "Egreso" porque hay tipos como "Egreso por gasto".
func ClassifyMovement(kind string) MovementKind {
	switch {
	case textfold.ContainsAny(kind, "gasto", "expense"):
		return MovementExpense
	case textfold.ContainsAny(kind, "ingreso", "entrada", "income"):
		return MovementIncome
	case textfold.ContainsAny(kind, "egreso", "salida", "retiro", "outcome"):
		return MovementOutcome
	default:
		return MovementOther
	}
}

// CashMovement movimiento manual de efectivo (solo se agregan, nunca se editan).
type CashMovement struct {
	ID          string
	Type        string
	Date        string // MM/DD/YYYY
	Time        string
	Amount      decimal.Decimal
	FromAccount string
	ToAccount   string
	Branch      string
	Category    string
	Concept     string
	Operator    string
	Notes       string
	ShiftID     string
}

// Kind devuelve la clasificación del tipo.
func (m *CashMovement) Kind() MovementKind { return ClassifyMovement(m.Type) }
