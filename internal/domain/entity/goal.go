package entity

import "github.com/shopspring/decimal"

// Goal es la meta mensual de un negocio. A lo sumo una por (negocio, año, mes).
type Goal struct {
	ID         string
	BusinessID string
	Year       int
	Month      int // 1-12
	// RevenueTarget meta de ingresos del mes (ILS, bruto de caja).
	RevenueTarget decimal.Decimal
	// LaborTargetPct y FoodTargetPct metas de costo como porcentaje del ingreso sin IVA.
	LaborTargetPct decimal.Decimal
	FoodTargetPct  decimal.Decimal
	// CurrentExpensesTarget meta de gastos corrientes como monto en ILS (no porcentaje);
	// el agregador de KPIs la convierte a porcentaje del ingreso sin IVA del período.
	CurrentExpensesTarget decimal.Decimal
	// VATRateOverride y MarkupOverride sobreescriben los valores por defecto del
	// negocio solo para este mes. Nil = usar el valor del negocio.
	VATRateOverride *decimal.Decimal
	MarkupOverride  *decimal.Decimal
}
