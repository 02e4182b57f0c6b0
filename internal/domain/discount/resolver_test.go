package discount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain/entity"
)

func rule(id, group, method string, pct int64) entity.DiscountRule {
	return entity.DiscountRule{ID: id, Group: group, Method: method, Percentage: decimal.NewFromInt(pct)}
}

func TestResolve_Prioridad(t *testing.T) {
	rules := []entity.DiscountRule{
		rule("D1", "VIP", "Cash", 10),
		rule("D2", "VIP", "", 5),
	}

	tests := []struct {
		name        string
		group       string
		method      string
		wantPct     int64
		wantRule    string
		wantDescrip string
	}{
		{"grupo y método", "VIP", "Cash", 10, "D1", "VIP + Cash"},
		{"solo grupo", "VIP", "Card", 5, "D2", "Grupo: VIP"},
		{"sin coincidencia", "Other", "Cash", 0, "", NoDiscount},
		{"sin distinguir mayúsculas", " vip ", "CASH", 10, "D1", "VIP + Cash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(rules, tt.group, tt.method)
			assert.True(t, decimal.NewFromInt(tt.wantPct).Equal(got.Percentage))
			assert.Equal(t, tt.wantRule, got.RuleID)
			assert.Equal(t, tt.wantDescrip, got.Description)
		})
	}
}

func TestResolve_SoloMetodo(t *testing.T) {
	rules := []entity.DiscountRule{
		rule("M1", "", "Efectivo", 3),
		rule("G1", "Mayoreo", "", 8),
	}
	got := Resolve(rules, "Menudeo", "efectivo")
	assert.Equal(t, "M1", got.RuleID)
	assert.Equal(t, "Método: Efectivo", got.Description)

	got = Resolve(rules, "Mayoreo", "Efectivo")
	assert.Equal(t, "G1", got.RuleID, "el grupo tiene prioridad sobre el método")
}

func TestResolve_EmpateGanaElPrimero(t *testing.T) {
	rules := []entity.DiscountRule{
		rule("A", "VIP", "", 5),
		rule("B", "VIP", "", 20),
	}
	assert.Equal(t, "A", Resolve(rules, "VIP", "").RuleID)
}

func TestResolve_SinReglas(t *testing.T) {
	got := Resolve(nil, "VIP", "Cash")
	assert.False(t, got.Found())
	assert.Equal(t, NoDiscount, got.Description)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "VIP + Efectivo (10%)", Label(rule("1", "VIP", "Efectivo", 10)))
	assert.Equal(t, "Grupo: VIP (5%)", Label(rule("1", "VIP", "", 5)))
	assert.Equal(t, "Método: Tarjeta (3%)", Label(rule("1", "", "Tarjeta", 3)))
	assert.Equal(t, "Descuento (0%)", Label(rule("1", "", "", 0)))
	assert.Equal(t, "Empleado (12.5%)", Label(entity.DiscountRule{Name: "Empleado", Percentage: decimal.RequireFromString("12.5")}))
}

func TestResolve_AcentosNoSeIgualan(t *testing.T) {
	rules := []entity.DiscountRule{rule("C1", "", "Credito", 4)}
	assert.False(t, Resolve(rules, "", "Crédito").Found())
	assert.Equal(t, "C1", Resolve(rules, "", " CREDITO ").RuleID)
}
