package metrics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// WeekdayFactors es el factor de día esperado por día de la semana, indexado
// por time.Weekday (0 = domingo). Entrada del expansor de horarios.
type WeekdayFactors struct {
	factors [7]decimal.Decimal
	present [7]bool
}

// AverageWeekdayFactors promedia las reglas de varios negocios por día de la
// semana. El promedio es sobre las reglas existentes para ese día: un negocio
// sin regla para el martes no arrastra el promedio del martes a cero.
func AverageWeekdayFactors(rules []entity.ScheduleRule) WeekdayFactors {
	var sums [7]decimal.Decimal
	var counts [7]int64
	for _, r := range rules {
		wd := int(r.Weekday)
		if wd < 0 || wd > 6 {
			continue
		}
		sums[wd] = sums[wd].Add(r.DayFactor)
		counts[wd]++
	}

	var wf WeekdayFactors
	for wd := 0; wd < 7; wd++ {
		if counts[wd] == 0 {
			continue
		}
		wf.factors[wd] = sums[wd].Div(decimal.NewFromInt(counts[wd]))
		wf.present[wd] = true
	}
	return wf
}

// Factor devuelve el factor del día de la semana, o cero si no hay regla.
func (wf WeekdayFactors) Factor(wd time.Weekday) decimal.Decimal {
	if wd < 0 || wd > 6 || !wf.present[wd] {
		return decimal.Zero
	}
	return wf.factors[wd]
}

// HasAny indica si existe al menos una regla de horario. Sin horario no hay
// días esperados y el proyector de ritmo devuelve cero.
func (wf WeekdayFactors) HasAny() bool {
	for _, p := range wf.present {
		if p {
			return true
		}
	}
	return false
}

// ExpectedWorkDays suma el factor esperado de cada fecha del mes, del 1 al
// último día. Se recalcula por cada mes (actual y cada mes del gráfico): la
// cantidad de lunes o viernes cambia de mes a mes y el resultado no es cacheable.
func ExpectedWorkDays(wf WeekdayFactors, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	last := LastDayOfMonth(year, month)
	for day := 1; day <= last; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		total = total.Add(wf.Factor(date.Weekday()))
	}
	return total
}
