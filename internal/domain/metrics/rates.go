package metrics

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// Rates son la tasa de IVA y el markup laboral resueltos para una selección de
// negocios en un mes concreto.
type Rates struct {
	VATRate decimal.Decimal
	Markup  decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ResolveRates resuelve IVA y markup por negocio con la cadena de precedencia
// meta.override → negocio.default → constante, y promedia el resultado sobre la
// selección (media aritmética, sin ponderar por ingresos).
//
// Precedencia por negocio:
//   - IVA:    meta.VATRateOverride ?? negocio.VATRate (sin más fallback; cero es válido)
//   - Markup: meta.MarkupOverride  ?? negocio.Markup  ?? 1
func ResolveRates(businesses []entity.Business, goals []entity.Goal) Rates {
	if len(businesses) == 0 {
		return Rates{VATRate: decimal.Zero, Markup: one}
	}

	goalByBusiness := make(map[string]entity.Goal, len(goals))
	for _, g := range goals {
		goalByBusiness[g.BusinessID] = g
	}

	vatSum, markupSum := decimal.Zero, decimal.Zero
	for _, b := range businesses {
		vat := b.VATRate
		markup := b.Markup
		if g, ok := goalByBusiness[b.ID]; ok {
			if g.VATRateOverride != nil {
				vat = *g.VATRateOverride
			}
			if g.MarkupOverride != nil {
				markup = *g.MarkupOverride
			}
		}
		if markup.IsZero() {
			markup = one
		}
		vatSum = vatSum.Add(vat)
		markupSum = markupSum.Add(markup)
	}

	n := decimal.NewFromInt(int64(len(businesses)))
	return Rates{VATRate: vatSum.Div(n), Markup: markupSum.Div(n)}
}

// VATDivisor devuelve 1 + tasa de IVA, o 1 si la tasa no es positiva.
// Divide el total bruto de caja para obtener el ingreso sin IVA.
func (r Rates) VATDivisor() decimal.Decimal {
	if r.VATRate.IsPositive() {
		return one.Add(r.VATRate)
	}
	return one
}
