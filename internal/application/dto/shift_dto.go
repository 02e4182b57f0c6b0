package dto

import (
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
)

// DenominationCounts piezas contadas por denominación. Acepta números, cadenas o vacío.
type DenominationCounts struct {
	Monedas1     money.Lenient `json:"monedas1"`
	Monedas2     money.Lenient `json:"monedas2"`
	Monedas5     money.Lenient `json:"monedas5"`
	Monedas10    money.Lenient `json:"monedas10"`
	Monedas20    money.Lenient `json:"monedas20"`
	Billetes20   money.Lenient `json:"billetes20"`
	Billetes50   money.Lenient `json:"billetes50"`
	Billetes100  money.Lenient `json:"billetes100"`
	Billetes200  money.Lenient `json:"billetes200"`
	Billetes500  money.Lenient `json:"billetes500"`
	Billetes1000 money.Lenient `json:"billetes1000"`
}

// Counts conteo indexado por clave de denominación.
func (d DenominationCounts) Counts() money.Counts {
	return money.Counts{
		"monedas1":     d.Monedas1.Value(),
		"monedas2":     d.Monedas2.Value(),
		"monedas5":     d.Monedas5.Value(),
		"monedas10":    d.Monedas10.Value(),
		"monedas20":    d.Monedas20.Value(),
		"billetes20":   d.Billetes20.Value(),
		"billetes50":   d.Billetes50.Value(),
		"billetes100":  d.Billetes100.Value(),
		"billetes200":  d.Billetes200.Value(),
		"billetes500":  d.Billetes500.Value(),
		"billetes1000": d.Billetes1000.Value(),
	}
}

// ClosingCount conteo de cierre: denominaciones, divisas y canales.
type ClosingCount struct {
	DenominationCounts
	ConteoUSD         money.Lenient `json:"conteoUSD"`
	ConteoCAD         money.Lenient `json:"conteoCAD"`
	ConteoEUR         money.Lenient `json:"conteoEUR"`
	BBVANacional      money.Lenient `json:"bbvaNacional"`
	BBVAInternacional money.Lenient `json:"bbvaInternacional"`
	ClipNacional      money.Lenient `json:"clipNacional"`
	ClipInternacional money.Lenient `json:"clipInternacional"`
	Transferencia     money.Lenient `json:"transferencia"`
	Observaciones     string        `json:"observaciones"`
}

func (c ClosingCount) Foreign() entity.ForeignCounts {
	return entity.ForeignCounts{USD: c.ConteoUSD.Value(), CAD: c.ConteoCAD.Value(), EUR: c.ConteoEUR.Value()}
}

func (c ClosingCount) Channels() entity.ChannelTotals {
	return entity.ChannelTotals{
		BBVANacional:      c.BBVANacional.Value(),
		BBVAInternacional: c.BBVAInternacional.Value(),
		ClipNacional:      c.ClipNacional.Value(),
		ClipInternacional: c.ClipInternacional.Value(),
		Transferencia:     c.Transferencia.Value(),
	}
}

// OpenShiftRequest body para POST /api/turnos/abrir.
type OpenShiftRequest struct {
	Usuario         Text                `json:"usuario" validate:"required"`
	EmpleadoID      Text                `json:"empleadoId"`
	Sucursal        string              `json:"sucursal" validate:"required"`
	EfectivoInicial money.Lenient       `json:"efectivoInicial"`
	USDInicial      money.Lenient       `json:"usdInicial"`
	CADInicial      money.Lenient       `json:"cadInicial"`
	EURInicial      money.Lenient       `json:"eurInicial"`
	TasaUSD         money.Lenient       `json:"tasaUSD"`
	TasaCAD         money.Lenient       `json:"tasaCAD"`
	TasaEUR         money.Lenient       `json:"tasaEUR"`
	Denominaciones  *DenominationCounts `json:"denominaciones,omitempty"`
}

// OpenShiftResponse turno creado.
type OpenShiftResponse struct {
	Success bool   `json:"success"`
	TurnoID string `json:"turnoId"`
	Mensaje string `json:"mensaje"`
}

// CloseShiftRequest body para POST /api/turnos/cerrar.
type CloseShiftRequest struct {
	TurnoID Text `json:"turnoId" validate:"required"`
	ClosingCount
}

// CloseShiftResponse total contado en pesos.
type CloseShiftResponse struct {
	Success  bool            `json:"success"`
	TotalMXN decimal.Decimal `json:"totalMXN"`
	Mensaje  string          `json:"mensaje"`
}

// ShiftDTO turno con los nombres de columna del almacén, que es lo que el
// punto de venta lee de turnoActivo.
type ShiftDTO struct {
	ID         string          `json:"ID"`
	Fecha      string          `json:"Fecha"`
	Apertura   string          `json:"Hora Apertura"`
	Cierre     string          `json:"Hora de Cierre"`
	Usuario    string          `json:"Usuario"`
	EmpleadoID string          `json:"ID Empleado"`
	Sucursal   string          `json:"Sucursal"`
	Estado     string          `json:"Estado"`
	Efectivo   decimal.Decimal `json:"Efectivo"`
	USD        decimal.Decimal `json:"USD"`
	CAD        decimal.Decimal `json:"CAD"`
	EUR        decimal.Decimal `json:"EUR"`
	TasaUSD    decimal.Decimal `json:"USD a MXN"`
	TasaCAD    decimal.Decimal `json:"CAD a MXN"`
	TasaEUR    decimal.Decimal `json:"EUR a MXN"`
}

func NewShiftDTO(s *entity.Shift) *ShiftDTO {
	if s == nil {
		return nil
	}
	return &ShiftDTO{
		ID:         s.ID,
		Fecha:      s.Date,
		Apertura:   s.OpenedAt,
		Cierre:     s.ClosedAt,
		Usuario:    s.Operator,
		EmpleadoID: s.OperatorID,
		Sucursal:   s.Branch,
		Estado:     string(s.State),
		Efectivo:   s.Opening.CashMXN,
		USD:        s.Opening.USD,
		CAD:        s.Opening.CAD,
		EUR:        s.Opening.EUR,
		TasaUSD:    s.Rates.USD,
		TasaCAD:    s.Rates.CAD,
		TasaEUR:    s.Rates.EUR,
	}
}

// ActiveShiftResponse respuesta de GET /api/turnos/activo; turnoActivo null si no hay.
type ActiveShiftResponse struct {
	Success     bool      `json:"success"`
	TurnoActivo *ShiftDTO `json:"turnoActivo"`
}
