package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Método de Pago ", "metodo de pago"},
		{"METODO DE PAGO", "metodo de pago"},
		{"Público General", "publico general"},
		{"", ""},
		{"   ", ""},
		{"Transferencia electrónica de fondos", "transferencia electronica de fondos"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Fold(c.in), c.in)
	}
}

func TestEqualYContains(t *testing.T) {
	assert.True(t, Equal("VIP", " vip "))
	assert.True(t, Equal("Método", "metodo"))
	assert.False(t, Equal("VIP", "Mayoreo"))

	assert.True(t, Contains("Tarjeta BBVA Internacional", "internacional"))
	assert.True(t, ContainsAny("Gasto de papelería", "egreso", "gasto"))
	assert.False(t, ContainsAny("Efectivo", "tarjeta", ""))
}
