package metrics

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// CostKPI es el resultado de una métrica de costo contra su meta.
//
// Convención de signo: DiffPct y DiffAmount positivos = por encima de la meta
// (adverso, "rojo"); negativos = por debajo (favorable, "verde"). La capa de
// presentación depende de esta convención.
type CostKPI struct {
	Cost       decimal.Decimal
	ActualPct  decimal.Decimal // costo como % del ingreso sin IVA
	TargetPct  decimal.Decimal // meta como % del ingreso sin IVA
	DiffPct    decimal.Decimal // ActualPct − TargetPct
	DiffAmount decimal.Decimal // DiffPct × ingreso sin IVA / 100 (ILS)
}

// NewCostKPI construye el KPI de un costo contra el ingreso sin IVA del período.
// Ingreso cero o negativo fuerza ActualPct a cero (nunca NaN/Inf).
func NewCostKPI(cost, incomeBeforeVAT, targetPct decimal.Decimal) CostKPI {
	actualPct := decimal.Zero
	if incomeBeforeVAT.IsPositive() {
		actualPct = cost.Div(incomeBeforeVAT).Mul(hundred)
	}
	diffPct := actualPct.Sub(targetPct)
	return CostKPI{
		Cost:       cost,
		ActualPct:  actualPct,
		TargetPct:  targetPct,
		DiffPct:    diffPct,
		DiffAmount: diffPct.Mul(incomeBeforeVAT).Div(hundred),
	}
}

// MeanTargetPct promedia una meta porcentual sobre las metas del mes de la
// selección. Sin metas → cero (sin meta no hay piso de varianza).
func MeanTargetPct(goals []entity.Goal, pick func(entity.Goal) decimal.Decimal) decimal.Decimal {
	if len(goals) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, g := range goals {
		sum = sum.Add(pick(g))
	}
	return sum.Div(decimal.NewFromInt(int64(len(goals))))
}

// SumTargetAmount suma una meta monetaria sobre las metas del mes de la
// selección (metas en ILS se suman entre negocios, no se promedian).
func SumTargetAmount(goals []entity.Goal, pick func(entity.Goal) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, g := range goals {
		sum = sum.Add(pick(g))
	}
	return sum
}

// AmountTargetPct convierte una meta en ILS (gastos corrientes) a porcentaje
// del ingreso sin IVA del período. Ingreso cero → meta cero.
func AmountTargetPct(targetAmount, incomeBeforeVAT decimal.Decimal) decimal.Decimal {
	if !incomeBeforeVAT.IsPositive() {
		return decimal.Zero
	}
	return targetAmount.Div(incomeBeforeVAT).Mul(hundred)
}
