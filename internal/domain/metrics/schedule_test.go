package metrics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/metrics"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDec compara decimales por valor (no por representación interna).
func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)),
		append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

func rule(businessID string, wd time.Weekday, factor string) entity.ScheduleRule {
	return entity.ScheduleRule{BusinessID: businessID, Weekday: wd, DayFactor: dec(factor)}
}

func TestAverageWeekdayFactors_PromediaPorDia(t *testing.T) {
	rules := []entity.ScheduleRule{
		rule("b1", time.Sunday, "1"),
		rule("b2", time.Sunday, "0.5"),
		rule("b1", time.Friday, "0.5"),
		// b2 no tiene regla para el viernes: el promedio del viernes es solo de b1
	}

	wf := metrics.AverageWeekdayFactors(rules)

	assertDec(t, "0.75", wf.Factor(time.Sunday))
	assertDec(t, "0.5", wf.Factor(time.Friday))
	assertDec(t, "0", wf.Factor(time.Saturday), "día sin regla debe ser cero")
	assert.True(t, wf.HasAny())
}

func TestAverageWeekdayFactors_SinReglas(t *testing.T) {
	wf := metrics.AverageWeekdayFactors(nil)

	assert.False(t, wf.HasAny())
	assertDec(t, "0", wf.Factor(time.Monday))
}

// TestExpectedWorkDays_Noviembre2026: noviembre 2026 tiene 5 domingos y 4 de
// cada otro día. Con domingo=1 y lunes=0.5: 5×1 + 4×0.5 = 7.
func TestExpectedWorkDays_Noviembre2026(t *testing.T) {
	wf := metrics.AverageWeekdayFactors([]entity.ScheduleRule{
		rule("b1", time.Sunday, "1"),
		rule("b1", time.Monday, "0.5"),
	})

	expected := metrics.ExpectedWorkDays(wf, 2026, time.November)

	assertDec(t, "7", expected)
}

// TestExpectedWorkDays_FebreroBisiesto cubre el borde de mes corto: febrero
// 2024 tiene 29 días y 5 jueves.
func TestExpectedWorkDays_FebreroBisiesto(t *testing.T) {
	wf := metrics.AverageWeekdayFactors([]entity.ScheduleRule{
		rule("b1", time.Thursday, "1"),
	})

	assertDec(t, "5", metrics.ExpectedWorkDays(wf, 2024, time.February))
}

func TestExpectedWorkDays_TodosLosDias(t *testing.T) {
	// Factor 1 para los 7 días: los días esperados son los días del mes.
	var rules []entity.ScheduleRule
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rules = append(rules, rule("b1", wd, "1"))
	}
	wf := metrics.AverageWeekdayFactors(rules)

	assertDec(t, "31", metrics.ExpectedWorkDays(wf, 2026, time.August))
	assertDec(t, "28", metrics.ExpectedWorkDays(wf, 2026, time.February))
}

// TestExpectedWorkDays_Determinista: el mismo input produce siempre el mismo
// resultado (el expansor no tiene estado).
func TestExpectedWorkDays_Determinista(t *testing.T) {
	wf := metrics.AverageWeekdayFactors([]entity.ScheduleRule{
		rule("b1", time.Sunday, "0.5"),
		rule("b2", time.Tuesday, "0.75"),
	})

	first := metrics.ExpectedWorkDays(wf, 2026, time.July)
	second := metrics.ExpectedWorkDays(wf, 2026, time.July)

	assert.True(t, first.Equal(second))
}

func TestExpectedWorkDays_SinHorario(t *testing.T) {
	assertDec(t, "0", metrics.ExpectedWorkDays(metrics.WeekdayFactors{}, 2026, time.August))
}
