package metrics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/metrics"
)

func TestIncomeBeforeVAT_Escenario(t *testing.T) {
	// 1180 bruto con IVA 18% → 1000 sin IVA
	divisor := metrics.Rates{VATRate: dec("0.18")}.VATDivisor()

	assertDec(t, "1000", metrics.IncomeBeforeVAT(dec("1180"), divisor))
}

// TestIncomeBeforeVAT_IVACero: con IVA cero el ingreso sin IVA es exactamente
// el total de caja.
func TestIncomeBeforeVAT_IVACero(t *testing.T) {
	total := dec("1234.56")
	divisor := metrics.Rates{VATRate: decimal.Zero}.VATDivisor()

	assert.True(t, metrics.IncomeBeforeVAT(total, divisor).Equal(total))
}

func TestNewCostKPI_PorEncimaDeLaMeta(t *testing.T) {
	// costo 350 sobre ingreso 1000 = 35%; meta 30% → diff +5 pp = +50 ILS
	kpi := metrics.NewCostKPI(dec("350"), dec("1000"), dec("30"))

	assertDec(t, "35", kpi.ActualPct)
	assertDec(t, "30", kpi.TargetPct)
	assertDec(t, "5", kpi.DiffPct)
	assertDec(t, "50", kpi.DiffAmount)
	assert.True(t, kpi.DiffPct.IsPositive(), "por encima de la meta = positivo (rojo)")
}

func TestNewCostKPI_PorDebajoDeLaMeta(t *testing.T) {
	kpi := metrics.NewCostKPI(dec("250"), dec("1000"), dec("30"))

	assertDec(t, "-5", kpi.DiffPct)
	assertDec(t, "-50", kpi.DiffAmount)
	assert.True(t, kpi.DiffPct.IsNegative(), "por debajo de la meta = negativo (verde)")
}

// TestNewCostKPI_SignoCoherente: para cualquier combinación, el signo de
// DiffPct coincide con actual ≥ meta.
func TestNewCostKPI_SignoCoherente(t *testing.T) {
	cases := []struct{ cost, income, target string }{
		{"0", "1000", "0"},
		{"300", "1000", "30"},
		{"999", "1000", "10"},
		{"100", "1000", "99"},
	}
	for _, tc := range cases {
		kpi := metrics.NewCostKPI(dec(tc.cost), dec(tc.income), dec(tc.target))
		overTarget := kpi.ActualPct.GreaterThanOrEqual(kpi.TargetPct)
		assert.Equal(t, overTarget, !kpi.DiffPct.IsNegative(),
			"cost=%s income=%s target=%s", tc.cost, tc.income, tc.target)
	}
}

// TestNewCostKPI_IngresoCero: denominador cero corta ActualPct a cero; la
// diferencia queda en −meta sin excepción aritmética.
func TestNewCostKPI_IngresoCero(t *testing.T) {
	kpi := metrics.NewCostKPI(dec("350"), decimal.Zero, dec("30"))

	assertDec(t, "0", kpi.ActualPct)
	assertDec(t, "-30", kpi.DiffPct)
	assertDec(t, "0", kpi.DiffAmount)
}

func TestMeanTargetPct(t *testing.T) {
	goals := []entity.Goal{
		{LaborTargetPct: dec("30")},
		{LaborTargetPct: dec("40")},
	}

	got := metrics.MeanTargetPct(goals, func(g entity.Goal) decimal.Decimal { return g.LaborTargetPct })

	assertDec(t, "35", got)
}

func TestMeanTargetPct_SinMetas(t *testing.T) {
	got := metrics.MeanTargetPct(nil, func(g entity.Goal) decimal.Decimal { return g.LaborTargetPct })

	assertDec(t, "0", got, "sin metas la meta por defecto es cero")
}

func TestSumTargetAmount(t *testing.T) {
	goals := []entity.Goal{
		{CurrentExpensesTarget: dec("5000")},
		{CurrentExpensesTarget: dec("3000")},
	}

	got := metrics.SumTargetAmount(goals, func(g entity.Goal) decimal.Decimal { return g.CurrentExpensesTarget })

	assertDec(t, "8000", got, "las metas en ILS se suman entre negocios")
}

func TestAmountTargetPct(t *testing.T) {
	// meta de 8000 ILS sobre ingreso 40000 → 20%
	assertDec(t, "20", metrics.AmountTargetPct(dec("8000"), dec("40000")))
	assertDec(t, "0", metrics.AmountTargetPct(dec("8000"), decimal.Zero))
}
