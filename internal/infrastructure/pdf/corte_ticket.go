// Package pdf genera el ticket imprimible del corte de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sucursal + Operador  │  Turno + Fecha               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FONDO INICIAL y TIPOS DE CAMBIO                             │
//	│  RESUMEN DE VENTAS                                           │
//	│  FORMAS DE PAGO                                              │
//	│  MOVIMIENTOS DE EFECTIVO                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EFECTIVO ESPERADO                                           │
//	│  TABLA: Venta | Hora | Cliente | Estado | Total              │
//	│  FOOTER: QR con el ID del turno                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"errors"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/reconciliation"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa ports.ReportRenderer usando Maroto v2.
type MarotoReportRenderer struct {
	title string
}

// NewMarotoReportRenderer construye el renderer. title aparece en el encabezado
// y en los metadatos del PDF.
func NewMarotoReportRenderer(title string) *MarotoReportRenderer {
	return &MarotoReportRenderer{title: nonEmpty(title, "Corte de caja")}
}

// RenderReport genera el PDF del corte y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderReport(r *reconciliation.Report) ([]byte, error) {
	if r == nil || r.Shift == nil {
		return nil, errors.New("pdf: reporte sin turno")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" "+r.Shift.ID, true).
		WithAuthor(nonEmpty(r.Shift.Operator, "UMO POS"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r.Shift))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("FONDO INICIAL"))
	m.AddRows(balanceRows(r.Opening)...)
	m.AddRows(pairRow("Tipo de cambio USD / CAD / EUR", fmt.Sprintf("%s / %s / %s",
		r.Rates.USD.StringFixed(2), r.Rates.CAD.StringFixed(2), r.Rates.EUR.StringFixed(2))))

	m.AddRows(sectionTitle("RESUMEN DE VENTAS"))
	m.AddRows(salesRows(r.Sales)...)

	m.AddRows(sectionTitle("FORMAS DE PAGO"))
	m.AddRows(paymentRows(r.Payments)...)

	m.AddRows(sectionTitle("MOVIMIENTOS DE EFECTIVO"))
	m.AddRows(movementRows(r.Movements)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("EFECTIVO ESPERADO"))
	m.AddRows(balanceRows(r.Expected)...)

	if len(r.SaleList) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(tableHeaderRow())
		m.AddRows(saleRows(r.SaleList)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r.Shift))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sucursal + operador (izq) y turno + fecha (der).
func (g *MarotoReportRenderer) headerRow(s *entity.Shift) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(s.Branch, "Sin sucursal"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Operador: "+nonEmpty(s.Operator, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(g.title), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   Apertura: %s   Cierre: %s",
				nonEmpty(s.Date, "-"), nonEmpty(s.OpenedAt, "-"), nonEmpty(s.ClosedAt, "-"),
			), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

// pairRow etiqueta a la izquierda, valor alineado a la derecha.
func pairRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Left: 2, Top: 0.5})),
		col.New(4).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
	)
}

func balanceRows(b entity.Balances) []core.Row {
	return []core.Row{
		pairRow("Efectivo MXN", money.Format(b.CashMXN, money.MXN)),
		pairRow("Dólares", money.Format(b.USD, money.USD)),
		pairRow("Dólares canadienses", money.Format(b.CAD, money.CAD)),
		pairRow("Euros", money.Format(b.EUR, money.EUR)),
	}
}

func salesRows(s reconciliation.SalesSummary) []core.Row {
	mxn := func(d decimal.Decimal) string { return money.Format(d, money.MXN) }
	return []core.Row{
		pairRow("Ventas brutas", mxn(s.Gross)),
		pairRow("Descuentos", mxn(s.Discounts)),
		pairRow(fmt.Sprintf("Cancelaciones (%d)", s.NumCancelled), mxn(s.Cancellations)),
		pairRow(fmt.Sprintf("Ventas netas (%d)", s.NumSales), mxn(s.Net)),
		pairRow(fmt.Sprintf("Cerradas (%d) / Abiertas (%d)", s.NumClosed, s.NumOpen),
			mxn(s.ClosedTotal)+" / "+mxn(s.OpenTotal)),
		pairRow("Ticket promedio", mxn(s.AverageTicket)),
	}
}

// paymentRows: el efectivo va en su divisa, lo demás ya convertido a pesos.
func paymentRows(p reconciliation.PaymentBreakdown) []core.Row {
	mxn := func(d decimal.Decimal) string { return money.Format(d, money.MXN) }
	return []core.Row{
		pairRow("Efectivo MXN", mxn(p.CashMXN)),
		pairRow("Efectivo USD", money.Format(p.CashUSD, money.USD)),
		pairRow("Efectivo CAD", money.Format(p.CashCAD, money.CAD)),
		pairRow("Efectivo EUR", money.Format(p.CashEUR, money.EUR)),
		pairRow("BBVA nacional", mxn(p.BBVANacional)),
		pairRow("BBVA internacional", mxn(p.BBVAInternacional)),
		pairRow("Clip nacional", mxn(p.ClipNacional)),
		pairRow("Clip internacional", mxn(p.ClipInternacional)),
		pairRow("Transferencias", mxn(p.Transfer)),
		pairRow("Otras tarjetas", mxn(p.OtherCard)),
		pairRow(fmt.Sprintf("Total cobrado (%d pagos)", p.Count), mxn(p.TotalMXN)),
	}
}

func movementRows(s reconciliation.MovementSummary) []core.Row {
	mxn := func(d decimal.Decimal) string { return money.Format(d, money.MXN) }
	rows := make([]core.Row, 0, len(s.Movements)+4)
	for _, mv := range s.Movements {
		label := fmt.Sprintf("%s  %s  %s", nonEmpty(mv.Time, "-"), mv.Type, nonEmpty(mv.Concept, ""))
		rows = append(rows, row.New(4).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 7, Left: 4, Color: colorGray})),
			col.New(4).Add(text.New(mxn(mv.Amount), props.Text{Size: 7, Align: align.Right, Right: 1, Color: colorGray})),
		))
	}
	rows = append(rows,
		pairRow("Ingresos", mxn(s.Income)),
		pairRow("Retiros", mxn(s.Outcome)),
		pairRow("Gastos", mxn(s.Expense)),
		pairRow("Neto", mxn(s.Net)),
	)
	return rows
}

// tableHeaderRow: cabecera de la lista de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Venta", 3, align.Left),
		h("Hora", 2, align.Center),
		h("Cliente", 3, align.Left),
		h("Estado", 2, align.Center),
		h("Total", 2, align.Right),
	)
}

// saleRows: una fila por venta; las canceladas en rojo.
func saleRows(sales []*entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		var c *props.Color
		if s.IsCancelled() {
			c = colorRed
		}
		cell := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(s.ID, 3, align.Left),
			cell(nonEmpty(s.Time, "-"), 2, align.Center),
			cell(nonEmpty(s.Client, entity.DefaultClient), 3, align.Left),
			cell(nonEmpty(s.StateLabel, string(s.State)), 2, align.Center),
			cell(money.Format(s.Total, money.MXN), 2, align.Right),
		))
	}
	return result
}

// footerRow: QR con el ID del turno para ubicarlo desde la app.
func footerRow(s *entity.Shift) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(s.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Firma del operador: ______________________________", props.Text{
				Size: 8, Top: 8, Left: 3,
			}),
			text.New("Firma del supervisor: ____________________________", props.Text{
				Size: 8, Top: 18, Left: 3,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
