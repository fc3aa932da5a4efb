package metrics

import "github.com/shopspring/decimal"

// IncomeBeforeVAT convierte el total bruto de caja a ingreso sin IVA.
// Es el denominador de todos los porcentajes de costo (laboral, insumos,
// gastos corrientes, productos controlados).
func IncomeBeforeVAT(totalIncome, vatDivisor decimal.Decimal) decimal.Decimal {
	if !vatDivisor.IsPositive() {
		return decimal.Zero
	}
	return totalIncome.Div(vatDivisor)
}
