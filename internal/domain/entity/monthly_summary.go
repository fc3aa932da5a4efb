package entity

import "github.com/shopspring/decimal"

// MonthlySummary es el resumen mensual agregado de un negocio. Existe para
// meses antiguos (pre-migración) que no tienen cierres diarios; el comparador
// histórico lo usa como fallback de ingreso total cuando una ventana no tiene
// filas de DailyEntry.
type MonthlySummary struct {
	BusinessID  string
	Year        int
	Month       int // 1-12
	TotalIncome decimal.Decimal
}
