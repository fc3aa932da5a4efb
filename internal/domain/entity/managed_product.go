package entity

import "github.com/shopspring/decimal"

// ManagedProduct es un insumo cuyo consumo se controla a diario (carne, café, etc.).
type ManagedProduct struct {
	ID         string
	BusinessID string
	Name       string
	Unit       string // kg, litro, unidad...
	// UnitCost costo vivo por unidad. El costeo usa siempre este valor, no el
	// snapshot histórico de las filas de consumo.
	UnitCost decimal.Decimal
	// TargetPct meta de costo del producto como porcentaje del ingreso sin IVA.
	// Cero = sin meta.
	TargetPct decimal.Decimal
}

// ProductUsage es el consumo de un producto controlado registrado en un cierre diario.
type ProductUsage struct {
	ID        string
	EntryID   string
	ProductID string
	Quantity  decimal.Decimal
	// UnitCostAtUse costo unitario al momento del registro. Se captura para un
	// futuro costeo sensible a la deriva de precios; el costeo actual usa el
	// costo vivo del producto.
	UnitCostAtUse decimal.Decimal
}
