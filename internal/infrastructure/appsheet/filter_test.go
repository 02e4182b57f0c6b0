package appsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	assert.Equal(t, `[Estado] = "Abierto"`, Render(Eq("Estado", "Abierto")))
	assert.Equal(t,
		`AND([Sucursal] = "Centro", [Estado] = "Abierto")`,
		Render(And(Eq("Sucursal", "Centro"), nil, Eq("Estado", "Abierto"))))
	assert.Equal(t, `[ID] = "1"`, Render(Or(Eq("ID", "1"))))
	assert.Equal(t, "TRUE", Render(And()))
}

func TestRender_EscapesValuesAndColumns(t *testing.T) {
	e := Eq("Cli]ente", `x", TRUE, "`)
	assert.Equal(t, `[Cliente] = "x"", TRUE, """`, Render(e))
}

func TestIn(t *testing.T) {
	assert.Equal(t,
		`OR([Ventas] = "V1", [Ventas] = "V2")`,
		Render(In("Ventas", []string{"V1", "V2", "V1"})))
	assert.Equal(t, "FALSE", Render(In("Ventas", nil)))
}

func TestSelector(t *testing.T) {
	assert.Equal(t,
		`Filter("Detalle Venta", [Ventas] = "V1")`,
		Selector(TableSaleItems, Eq("Ventas", "V1")))
}
