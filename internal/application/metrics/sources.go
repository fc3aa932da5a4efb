package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// sourceTotals acumulado de una fuente de ingreso en una ventana.
type sourceTotals struct {
	amount decimal.Decimal
	orders int
}

// totalsBySource agrupa los desgloses de una ventana por fuente de ingreso.
func totalsBySource(breakdowns []entity.IncomeBreakdown) map[string]sourceTotals {
	totals := make(map[string]sourceTotals, len(breakdowns))
	for _, b := range breakdowns {
		t := totals[b.SourceID]
		t.amount = t.amount.Add(b.Amount)
		t.orders += b.OrdersCount
		totals[b.SourceID] = t
	}
	return totals
}

// avgTicket ticket promedio de una ventana: monto / pedidos, cero sin pedidos.
func (t sourceTotals) avgTicket() decimal.Decimal {
	if t.orders <= 0 {
		return decimal.Zero
	}
	return t.amount.Div(decimal.NewFromInt(int64(t.orders)))
}

// buildSourceSummaries arma el resumen por fuente de ingreso del período.
//
// El delta histórico es ticketActual − ticketHistórico, pero se fuerza a cero
// cuando la ventana histórica no tuvo pedidos: "sin datos históricos" no debe
// leerse como una caída del 100%. Una ventana actual sin pedidos sí produce
// delta (0 − ticketHistórico): esa caída es real.
func buildSourceSummaries(
	sources []entity.IncomeSource,
	targets map[string]decimal.Decimal,
	curr, prevM, prevY map[string]sourceTotals,
) []dto.IncomeSourceDTO {
	out := make([]dto.IncomeSourceDTO, 0, len(sources))
	for _, src := range sources {
		t := curr[src.ID]
		avg := t.avgTicket()
		target := targets[src.ID]
		diff := avg.Sub(target)

		d := dto.IncomeSourceDTO{
			SourceID:         src.ID,
			Name:             src.Name,
			Type:             src.Type,
			TotalAmount:      t.amount,
			OrdersCount:      t.orders,
			AvgAmount:        avg,
			AvgTicketTarget:  target,
			AvgTicketDiff:    diff,
			TargetDiffAmount: diff.Mul(decimal.NewFromInt(int64(t.orders))),
			PrevMonthChange:  decimal.Zero,
			PrevYearChange:   decimal.Zero,
		}
		if pm := prevM[src.ID]; pm.orders > 0 {
			d.PrevMonthChange = avg.Sub(pm.avgTicket())
		}
		if py := prevY[src.ID]; py.orders > 0 {
			d.PrevYearChange = avg.Sub(py.avgTicket())
		}
		out = append(out, d)
	}
	return out
}
