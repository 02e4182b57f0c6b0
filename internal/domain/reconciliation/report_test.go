package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openShift(cash string) *entity.Shift {
	return &entity.Shift{
		ID:      "TRN-1",
		Branch:  "Centro",
		Date:    "10/16/2026",
		State:   entity.ShiftOpen,
		Opening: entity.Balances{CashMXN: dec(cash)},
		Rates:   entity.ExchangeRates{USD: dec("17.5"), CAD: dec("13"), EUR: dec("19")},
	}
}

func TestClassifyPayment(t *testing.T) {
	cases := []struct {
		method, currency string
		want             Bucket
	}{
		{"Efectivo", "MXN", BucketCashMXN},
		{"efectivo", "usd", BucketCashUSD},
		{"Efectivo", "CAD", BucketCashCAD},
		{"EFECTIVO", "EUR", BucketCashEUR},
		{"", "", BucketCashMXN},
		{"Tarjeta BBVA", "MXN", BucketBBVANacional},
		{"BBVA Internacional", "MXN", BucketBBVAInternacional},
		{"Clip Nacional", "MXN", BucketClipNacional},
		{"CLIP INTERNACIONAL", "MXN", BucketClipInternacional},
		{"Transferencia electrónica", "MXN", BucketTransfer},
		{"Vale de despensa", "MXN", BucketOtherCard},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyPayment(c.method, c.currency), c.method)
	}
	assert.True(t, BucketCashEUR.IsCash())
	assert.False(t, BucketTransfer.IsCash())
}

func TestBuild_EfectivoEsperado(t *testing.T) {
	in := Inputs{
		Shift: openShift("1000"),
		Sales: []*entity.Sale{{ID: "V1", State: entity.SaleClosed, Total: dec("500")}},
		Payments: []*entity.Payment{
			{ID: "P1", SaleID: "V1", Amount: dec("500"), Currency: "MXN", Method: "Efectivo", Rate: dec("1")},
		},
		Movements: []*entity.CashMovement{
			{ID: "M1", Type: "Ingreso", Amount: dec("200")},
			{ID: "M2", Type: "Gasto", Amount: dec("50")},
		},
	}

	r := Build(in)

	assert.True(t, dec("1650").Equal(r.Expected.CashMXN), r.Expected.CashMXN.String())
	assert.True(t, dec("150").Equal(r.Movements.Net))

	exact := Compare(entity.Balances{CashMXN: dec("1650")}, r.Expected)
	assert.True(t, exact.MXN.Variance.IsZero())

	short := Compare(entity.Balances{CashMXN: dec("1600")}, r.Expected)
	assert.True(t, dec("-50").Equal(short.MXN.Variance))
	assert.False(t, short.Balanced())
}

func TestBuild_VentasYCancelaciones(t *testing.T) {
	in := Inputs{
		Shift: openShift("0"),
		Sales: []*entity.Sale{
			{ID: "V1", State: entity.SaleClosed, Total: dec("300")},
			{ID: "V2", State: entity.SaleOpen, Total: dec("100")},
			{ID: "V3", State: entity.SaleCancelled, Total: dec("80")},
		},
		Items: []*entity.SaleItem{
			{ID: "I1", SaleID: "V1", Discount: dec("30"), Status: entity.LineActive},
			{ID: "I2", SaleID: "V1", Discount: dec("5"), Status: entity.LineCancelled},
			{ID: "I3", SaleID: "V2", Discount: dec("10"), Status: entity.LineActive},
			{ID: "I4", SaleID: "V3", Discount: dec("99"), Status: entity.LineActive},
		},
	}

	r := Build(in)

	assert.True(t, dec("400").Equal(r.Sales.Gross))
	assert.True(t, dec("400").Equal(r.Sales.Net), "las cancelaciones no se restan")
	assert.True(t, dec("80").Equal(r.Sales.Cancellations))
	assert.True(t, dec("40").Equal(r.Sales.Discounts))
	assert.Equal(t, 2, r.Sales.NumSales)
	assert.Equal(t, 1, r.Sales.NumOpen)
	assert.Equal(t, 1, r.Sales.NumClosed)
	assert.Equal(t, 1, r.Sales.NumCancelled)
	assert.True(t, dec("200").Equal(r.Sales.AverageTicket))
}

func TestBuild_SinVentasTicketCero(t *testing.T) {
	r := Build(Inputs{Shift: openShift("500")})

	assert.True(t, r.Sales.AverageTicket.IsZero())
	assert.True(t, dec("500").Equal(r.Expected.CashMXN))
}

func TestBuild_PagosPorCubo(t *testing.T) {
	in := Inputs{
		Shift: openShift("0"),
		Sales: []*entity.Sale{
			{ID: "V1", State: entity.SaleClosed, Total: dec("1000")},
			{ID: "V2", State: entity.SaleCancelled, Total: dec("70")},
		},
		Payments: []*entity.Payment{
			{ID: "P1", SaleID: "V1", Amount: dec("20"), Currency: "USD", Method: "Efectivo", Rate: dec("17.5")},
			{ID: "P2", SaleID: "V1", Amount: dec("10"), Currency: "USD", Method: "BBVA Internacional", Rate: dec("18")},
			{ID: "P3", SaleID: "V1", Amount: dec("100"), Currency: "MXN", Method: "Clip", Rate: decimal.Zero},
			{ID: "P4", SaleID: "V1", Amount: dec("50"), Currency: "MXN", Method: "Transferencia"},
			{ID: "P5", SaleID: "V1", Amount: dec("40"), Currency: "MXN", Method: "Efectivo", Status: entity.LineCancelled},
			{ID: "P6", SaleID: "V2", Amount: dec("70"), Currency: "MXN", Method: "Efectivo"},
			{ID: "P7", SaleID: "OTRA", Amount: dec("999"), Currency: "MXN", Method: "Efectivo"},
		},
	}

	r := Build(in)

	assert.True(t, dec("20").Equal(r.Payments.CashUSD), "el efectivo conserva su divisa")
	assert.True(t, dec("180").Equal(r.Payments.BBVAInternacional), "las terminales se convierten")
	assert.True(t, dec("100").Equal(r.Payments.ClipNacional))
	assert.True(t, dec("50").Equal(r.Payments.Transfer))
	assert.True(t, r.Payments.CashMXN.IsZero(), "pagos cancelados, de ventas canceladas o ajenas no cuentan")
	assert.True(t, dec("680").Equal(r.Payments.TotalMXN), r.Payments.TotalMXN.String())
	assert.Equal(t, 4, r.Payments.Count)
	assert.True(t, dec("20").Equal(r.Expected.USD))
}

func TestBuild_MovimientoSinClasificar(t *testing.T) {
	in := Inputs{
		Shift: openShift("100"),
		Movements: []*entity.CashMovement{
			{Type: "Ajuste de inventario", Amount: dec("10")},
			{Type: "Retiro", Amount: dec("30")},
		},
	}
	r := Build(in)

	assert.Equal(t, 1, r.Movements.Unclassified)
	assert.True(t, dec("70").Equal(r.Expected.CashMXN))
}

func TestCount_Balances(t *testing.T) {
	c := Count{
		Denominations: money.Counts{"billetes500": dec("3"), "billetes100": dec("1"), "monedas10": dec("5")},
		Foreign:       entity.ForeignCounts{USD: dec("20")},
	}
	b := c.Balances()
	assert.True(t, dec("1650").Equal(b.CashMXN))
	assert.True(t, dec("20").Equal(b.USD))
}

func TestBuildYComparar_IdaYVuelta(t *testing.T) {
	in := Inputs{
		Shift: &entity.Shift{
			ID: "T", Opening: entity.Balances{CashMXN: dec("1000"), USD: dec("10"), CAD: dec("5"), EUR: dec("0")},
		},
		Sales: []*entity.Sale{{ID: "V", State: entity.SaleClosed, Total: dec("200")}},
		Payments: []*entity.Payment{
			{SaleID: "V", Amount: dec("150"), Currency: "MXN", Method: "Efectivo"},
			{SaleID: "V", Amount: dec("3"), Currency: "USD", Method: "Efectivo", Rate: dec("17.5")},
		},
	}
	r := Build(in)

	cmp := Compare(r.Expected, r.Figures().Expected)
	assert.True(t, cmp.Balanced())
	assert.True(t, dec("1150").Equal(cmp.MXN.Counted))
	assert.True(t, dec("13").Equal(cmp.USD.Expected))
}
