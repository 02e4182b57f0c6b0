package entity

import "github.com/shopspring/decimal"

// Product producto vendible.
type Product struct {
	Barcode  string
	SKU      string
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    decimal.Decimal
	Image    string
	Sellable bool
}

// Client cliente de la tienda. Group alimenta el resolvedor de descuentos.
type Client struct {
	Code  string
	Name  string
	Email string
	Phone string
	Group string
}

// PaymentMethod forma de pago configurada.
type PaymentMethod struct {
	Name string
}

// DiscountRule renglón de "Tabla Descuentos". Percentage ya normalizado (15 = 15%).
type DiscountRule struct {
	ID         string
	Name       string
	Group      string
	Method     string
	Percentage decimal.Decimal
}

// Promotion promoción activa.
type Promotion struct {
	ID            string
	BasedOn       string
	Form          string
	Category      string
	Products      []string
	Days          string
	StartDate     string
	EndDate       string
	Percentage    decimal.Decimal
	Price         decimal.Decimal
	PaidQuantity  int
	TakenQuantity int
	Label         string
	State         string
}

// Category categoría de productos o de movimientos.
type Category struct {
	ID   string
	Name string
	Type string
}

// Concept concepto para movimientos de caja.
type Concept struct {
	ID       string
	Name     string
	Type     string
	Category string
}

// Bank cuenta bancaria a la que se depositan o de la que salen fondos.
type Bank struct {
	ID      string
	Name    string
	Account string
	Branch  string
}
