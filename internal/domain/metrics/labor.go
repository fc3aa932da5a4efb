package metrics

import "github.com/shopspring/decimal"

// LaborInput entradas del cálculo de costo laboral de un período.
type LaborInput struct {
	// RawCost suma del costo laboral nominal de los cierres del período.
	RawCost decimal.Decimal
	// ActualWorkDays suma de los factores de día realmente trabajados (Σ day_factor).
	ActualWorkDays decimal.Decimal
	// ManagerSalarySum suma de salarios mensuales de gerente de la selección.
	ManagerSalarySum decimal.Decimal
	// ExpectedWorkDays días de trabajo esperados del mes del período (ver ExpectedWorkDays).
	ExpectedWorkDays decimal.Decimal
	// Markup multiplicador de sobrecosto patronal resuelto (ver ResolveRates).
	Markup decimal.Decimal
}

// ManagerDailyCost amortiza el salario mensual del gerente sobre los días de
// trabajo esperados del mes. Cero días esperados → costo diario cero.
func ManagerDailyCost(managerSalarySum, expectedWorkDays decimal.Decimal) decimal.Decimal {
	if !expectedWorkDays.IsPositive() {
		return decimal.Zero
	}
	return managerSalarySum.Div(expectedWorkDays)
}

// LaborCost calcula el costo laboral cargado del período:
//
//	costoGerente = (salarioMensual / díasEsperados) × díasRealesTrabajados
//	costoLaboral = (costoNominal + costoGerente) × markup
//
// El salario fijo mensual se prorratea por la fracción de trabajo programado
// realmente transcurrida, no por días calendario transcurridos: un período que
// cubre 3 de 30 días esperados carga 1/10 del salario, trabaje el negocio los
// fines de semana o no.
func LaborCost(in LaborInput) decimal.Decimal {
	managerCost := ManagerDailyCost(in.ManagerSalarySum, in.ExpectedWorkDays).
		Mul(in.ActualWorkDays)
	return in.RawCost.Add(managerCost).Mul(in.Markup)
}
