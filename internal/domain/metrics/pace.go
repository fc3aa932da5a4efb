package metrics

import "github.com/shopspring/decimal"

// Projection es la proyección de cierre de mes de un período parcial.
type Projection struct {
	// MonthlyPace ingreso proyectado del mes completo: promedio de ingreso por
	// día trabajado × días esperados del mes.
	MonthlyPace decimal.Decimal
	// TargetDiffPct desviación porcentual del ritmo contra la meta de ingresos.
	TargetDiffPct decimal.Decimal
	// TargetDiffAmount brecha en ILS prorrateada a la fracción del mes realmente
	// transcurrida (no la brecha de mes completo).
	TargetDiffAmount decimal.Decimal
}

// ProjectPace extrapola un período parcial al mes completo y lo compara con la
// meta de ingresos.
//
//	ritmo      = (ingresoTotal / díasRealesTrabajados) × díasEsperados
//	diffPct    = (ritmo / meta − 1) × 100
//	diffMonto  = ((ritmo − meta) / díasEsperados) × díasRealesTrabajados
//
// La brecha en ILS se prorratea de vuelta a los días transcurridos: con 3 de 30
// días trabajados se reporta la décima parte de la brecha mensual. Reportar la
// brecha completa a mitad de mes sería engañoso.
//
// Guardas: sin días trabajados o sin horario (díasEsperados ≤ 0) → ritmo cero;
// sin meta positiva → desviaciones cero.
func ProjectPace(totalIncome, actualWorkDays, expectedWorkDays, revenueTarget decimal.Decimal) Projection {
	if !actualWorkDays.IsPositive() || !expectedWorkDays.IsPositive() {
		return Projection{
			MonthlyPace:      decimal.Zero,
			TargetDiffPct:    decimal.Zero,
			TargetDiffAmount: decimal.Zero,
		}
	}

	pace := totalIncome.Div(actualWorkDays).Mul(expectedWorkDays)

	diffPct, diffAmount := decimal.Zero, decimal.Zero
	if revenueTarget.IsPositive() {
		diffPct = pace.Div(revenueTarget).Sub(one).Mul(hundred)
		// Multiplicar antes de dividir evita arrastrar el redondeo de la
		// división decimal al monto reportado.
		diffAmount = pace.Sub(revenueTarget).Mul(actualWorkDays).Div(expectedWorkDays)
	}

	return Projection{
		MonthlyPace:      pace,
		TargetDiffPct:    diffPct,
		TargetDiffAmount: diffAmount,
	}
}
