package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// quantitiesByProduct suma el consumo de una ventana por producto.
func quantitiesByProduct(usage []entity.ProductUsage) map[string]decimal.Decimal {
	quantities := make(map[string]decimal.Decimal, len(usage))
	for _, u := range usage {
		quantities[u.ProductID] = quantities[u.ProductID].Add(u.Quantity)
	}
	return quantities
}

// productPct costo del producto como porcentaje del ingreso sin IVA de la
// ventana. El costeo usa el costo unitario vivo del producto, no el snapshot
// histórico de las filas de consumo.
func productPct(product entity.ManagedProduct, quantity, incomeBeforeVAT decimal.Decimal) (cost, pct decimal.Decimal) {
	cost = quantity.Mul(product.UnitCost)
	if incomeBeforeVAT.IsPositive() {
		pct = cost.Div(incomeBeforeVAT).Mul(hundred)
	} else {
		pct = decimal.Zero
	}
	return cost, pct
}

// buildProductSummaries arma el resumen de costo por producto controlado.
// Los deltas históricos siguen la misma regla que las fuentes de ingreso: la
// ventana histórica sin ingreso produce delta cero, no una comparación contra
// una base vacía.
func buildProductSummaries(
	products []entity.ManagedProduct,
	curr, prevM, prevY map[string]decimal.Decimal,
	currIncome, prevMIncome, prevYIncome decimal.Decimal,
) []dto.ManagedProductDTO {
	out := make([]dto.ManagedProductDTO, 0, len(products))
	for _, p := range products {
		quantity := curr[p.ID]
		cost, pct := productPct(p, quantity, currIncome)

		d := dto.ManagedProductDTO{
			ProductID:          p.ID,
			Name:               p.Name,
			Unit:               p.Unit,
			Quantity:           quantity,
			Cost:               cost,
			Pct:                pct,
			TargetPct:          p.TargetPct,
			DiffPct:            pct.Sub(p.TargetPct),
			PrevMonthChangePct: decimal.Zero,
			PrevYearChangePct:  decimal.Zero,
		}
		if prevMIncome.IsPositive() {
			_, histPct := productPct(p, prevM[p.ID], prevMIncome)
			d.PrevMonthChangePct = pct.Sub(histPct)
		}
		if prevYIncome.IsPositive() {
			_, histPct := productPct(p, prevY[p.ID], prevYIncome)
			d.PrevYearChangePct = pct.Sub(histPct)
		}
		out = append(out, d)
	}
	return out
}
