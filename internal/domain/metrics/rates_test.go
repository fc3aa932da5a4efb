package metrics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/metrics"
)

func business(id, vat, markup string) entity.Business {
	return entity.Business{ID: id, VATRate: dec(vat), Markup: dec(markup)}
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolveRates_DefaultsDelNegocio(t *testing.T) {
	rates := metrics.ResolveRates([]entity.Business{business("b1", "0.18", "1.1")}, nil)

	assertDec(t, "0.18", rates.VATRate)
	assertDec(t, "1.1", rates.Markup)
}

func TestResolveRates_OverrideDeMeta(t *testing.T) {
	goals := []entity.Goal{{
		BusinessID:      "b1",
		VATRateOverride: decPtr("0.17"),
		MarkupOverride:  decPtr("1.25"),
	}}

	rates := metrics.ResolveRates([]entity.Business{business("b1", "0.18", "1.1")}, goals)

	assertDec(t, "0.17", rates.VATRate, "el override de la meta tiene precedencia")
	assertDec(t, "1.25", rates.Markup)
}

func TestResolveRates_MarkupFallbackUno(t *testing.T) {
	// Negocio sin markup definido y meta sin override → 1
	rates := metrics.ResolveRates([]entity.Business{business("b1", "0.18", "0")}, nil)

	assertDec(t, "1", rates.Markup)
}

func TestResolveRates_PromedioMultinegocio(t *testing.T) {
	businesses := []entity.Business{
		business("b1", "0.18", "1.1"),
		business("b2", "0.10", "1.3"),
	}

	rates := metrics.ResolveRates(businesses, nil)

	// Media aritmética simple, sin ponderar por ingresos
	assertDec(t, "0.14", rates.VATRate)
	assertDec(t, "1.2", rates.Markup)
}

func TestResolveRates_SeleccionVacia(t *testing.T) {
	rates := metrics.ResolveRates(nil, nil)

	assertDec(t, "0", rates.VATRate)
	assertDec(t, "1", rates.Markup)
	assertDec(t, "1", rates.VATDivisor())
}

func TestVATDivisor(t *testing.T) {
	assertDec(t, "1.18", metrics.Rates{VATRate: dec("0.18")}.VATDivisor())
	assertDec(t, "1", metrics.Rates{VATRate: dec("0")}.VATDivisor())
	assertDec(t, "1", metrics.Rates{VATRate: dec("-0.05")}.VATDivisor())
}
