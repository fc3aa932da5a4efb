package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	dommetrics "github.com/tu-usuario/resto-metrics/internal/domain/metrics"
)

var hundred = decimal.NewFromInt(100)

// windowResult es el resultado de aplicar la cadena completa de cálculos
// (tasas → IVA → costo laboral → KPIs → proyección) a una ventana.
type windowResult struct {
	totalIncome      decimal.Decimal
	incomeBeforeVAT  decimal.Decimal
	actualWorkDays   decimal.Decimal
	expectedWorkDays decimal.Decimal
	revenueTarget    decimal.Decimal

	labor   dommetrics.CostKPI
	food    dommetrics.CostKPI
	current dommetrics.CostKPI
	proj    dommetrics.Projection

	entryCount      int
	foodInvoices    int
	currentInvoices int
}

// computeWindow ejecuta los componentes de cálculo sobre una ventana con la
// misma selección de negocios. Es la pieza que el comparador histórico y el
// gráfico de tendencia re-ejecutan por cada ventana/mes.
func computeWindow(sel selection, w fetchWindowData) windowResult {
	ym := w.period.YearMonth()
	rates := dommetrics.ResolveRates(sel.businesses, w.goals)
	expected := dommetrics.ExpectedWorkDays(sel.weekday, ym.Year, ym.Month)

	totalIncome := decimal.Zero
	actualDays := decimal.Zero
	rawLabor := decimal.Zero
	for _, en := range w.entries {
		totalIncome = totalIncome.Add(en.TotalRegister)
		actualDays = actualDays.Add(en.DayFactor)
		rawLabor = rawLabor.Add(en.LaborCost)
	}
	// Ventana sin cierres diarios: sustituir solo el ingreso total con el
	// resumen mensual agregado (meses pre-migración). El resto de métricas de
	// la ventana queda en cero.
	if len(w.entries) == 0 && w.usedFallback {
		totalIncome = w.fallbackIncome
	}

	incomeBeforeVAT := dommetrics.IncomeBeforeVAT(totalIncome, rates.VATDivisor())

	laborCost := dommetrics.LaborCost(dommetrics.LaborInput{
		RawCost:          rawLabor,
		ActualWorkDays:   actualDays,
		ManagerSalarySum: sel.managerSalarySum,
		ExpectedWorkDays: expected,
		Markup:           rates.Markup,
	})

	revenueTarget := dommetrics.SumTargetAmount(w.goals,
		func(g entity.Goal) decimal.Decimal { return g.RevenueTarget })

	return windowResult{
		totalIncome:      totalIncome,
		incomeBeforeVAT:  incomeBeforeVAT,
		actualWorkDays:   actualDays,
		expectedWorkDays: expected,
		revenueTarget:    revenueTarget,

		labor: dommetrics.NewCostKPI(laborCost, incomeBeforeVAT,
			dommetrics.MeanTargetPct(w.goals, func(g entity.Goal) decimal.Decimal { return g.LaborTargetPct })),
		food: dommetrics.NewCostKPI(w.foodCost, incomeBeforeVAT,
			dommetrics.MeanTargetPct(w.goals, func(g entity.Goal) decimal.Decimal { return g.FoodTargetPct })),
		current: dommetrics.NewCostKPI(w.currentCost, incomeBeforeVAT,
			dommetrics.AmountTargetPct(
				dommetrics.SumTargetAmount(w.goals, func(g entity.Goal) decimal.Decimal { return g.CurrentExpensesTarget }),
				incomeBeforeVAT)),
		proj: dommetrics.ProjectPace(totalIncome, actualDays, expected, revenueTarget),

		entryCount:      len(w.entries),
		foodInvoices:    w.foodInvoices,
		currentInvoices: w.currentInvoices,
	}
}

// costMetric selecciona una métrica de costo dentro de windowResult y define
// cuándo una ventana histórica cuenta como línea base real para esa métrica:
// sin ingreso sin IVA positivo o sin filas subyacentes (cierres para el costo
// laboral, facturas para insumos y gastos corrientes), el delta se reporta
// como cero en lugar de comparar contra una ventana vacía.
type costMetric struct {
	pick     func(windowResult) dommetrics.CostKPI
	baseline func(windowResult) bool
}

var (
	laborMetric = costMetric{
		pick:     func(r windowResult) dommetrics.CostKPI { return r.labor },
		baseline: func(r windowResult) bool { return r.incomeBeforeVAT.IsPositive() && r.entryCount > 0 },
	}
	foodMetric = costMetric{
		pick:     func(r windowResult) dommetrics.CostKPI { return r.food },
		baseline: func(r windowResult) bool { return r.incomeBeforeVAT.IsPositive() && r.foodInvoices > 0 },
	}
	currentMetric = costMetric{
		pick:     func(r windowResult) dommetrics.CostKPI { return r.current },
		baseline: func(r windowResult) bool { return r.incomeBeforeVAT.IsPositive() && r.currentInvoices > 0 },
	}
)

// costKPIDTO arma el DTO de una métrica de costo con sus deltas históricos.
// Cada delta es ActualPct actual − ActualPct histórico, en puntos porcentuales.
func costKPIDTO(curr, prevM, prevY windowResult, m costMetric) dto.CostKPIDTO {
	kpi := m.pick(curr)
	out := dto.CostKPIDTO{
		Cost:               kpi.Cost,
		ActualPct:          kpi.ActualPct,
		TargetPct:          kpi.TargetPct,
		DiffPct:            kpi.DiffPct,
		DiffAmount:         kpi.DiffAmount,
		PrevMonthChangePct: decimal.Zero,
		PrevYearChangePct:  decimal.Zero,
	}
	if m.baseline(prevM) {
		out.PrevMonthChangePct = kpi.ActualPct.Sub(m.pick(prevM).ActualPct)
	}
	if m.baseline(prevY) {
		out.PrevYearChangePct = kpi.ActualPct.Sub(m.pick(prevY).ActualPct)
	}
	return out
}

// changePct cambio porcentual de value contra una base histórica:
// (value / base − 1) × 100, o cero si la base no es positiva.
func changePct(value, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return value.Div(base).Sub(decimal.NewFromInt(1)).Mul(hundred)
}
