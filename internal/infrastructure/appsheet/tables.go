package appsheet

// Tablas de la app.
const (
	TableUsers          = "Usuarios"
	TableShifts         = "AbrirTurno"
	TableProducts       = "Productos"
	TableClients        = "Clientes"
	TablePaymentMethods = "Metodos de pago"
	TableDiscounts      = "Tabla Descuentos"
	TablePromotions     = "Promociones"
	TableSales          = "Ventas"
	TableSaleItems      = "Detalle Venta"
	TablePayments       = "Pagos"
	TableCashMovements  = "Movimientos de Caja"
	TableCategories     = "Categorias"
	TableConcepts       = "Conceptos"
	TableBanks          = "Bancos"
)

// Columnas de AbrirTurno que no son denominaciones.
const (
	colShiftID       = "ID"
	colShiftState    = "Estado"
	colShiftClosedAt = "Hora de Cierre"
	colShiftTotalMXN = "Total MXN (Calculado)"
	colShiftUSD      = "💵 USD"
	colShiftCAD      = "🍁 CAD"
	colShiftEUR      = "🇪🇺 EUR"
	colShiftNotes    = "Observaciones"
)

// inChunk tope de IDs por Selector para no construir filtros enormes.
const inChunk = 40
