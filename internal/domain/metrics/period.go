// Package metrics contiene los cálculos puros del motor de métricas
// financieras: resolución de períodos, expansión de horarios, resolución de
// tasas, costo laboral, normalización de IVA, KPIs de costo y proyección de
// ritmo mensual. Ninguna función toca la DB ni muta sus entradas.
package metrics

import (
	"fmt"
	"time"
)

// Period es un rango de fechas cerrado [From, To].
type Period struct {
	From time.Time
	To   time.Time
}

// YearMonth identifica un mes calendario.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Key devuelve la clave "YYYY-MM" del mes (agrupación del gráfico de tendencia).
func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// YearMonth devuelve el mes calendario al que pertenece el inicio del período.
// Las metas, tasas y días esperados del período se resuelven contra este mes.
func (p Period) YearMonth() YearMonth {
	return YearMonth{Year: p.From.Year(), Month: p.From.Month()}
}

// PrevMonth devuelve el período alineado del mes anterior: mismos días del mes,
// desplazados un mes calendario hacia atrás. El día se ajusta al último día del
// mes destino cuando no existe (31 de marzo → 28/29 de febrero).
func (p Period) PrevMonth() Period {
	return Period{From: shiftMonths(p.From, -1), To: shiftMonths(p.To, -1)}
}

// PrevYear devuelve el período alineado del año anterior (mismo día y mes).
// 29 de febrero se ajusta al 28 en años no bisiestos.
func (p Period) PrevYear() Period {
	return Period{From: shiftYears(p.From, -1), To: shiftYears(p.To, -1)}
}

// MonthKey devuelve la clave "YYYY-MM" de una fecha.
func MonthKey(t time.Time) string {
	return YearMonth{Year: t.Year(), Month: t.Month()}.Key()
}

// LastDayOfMonth devuelve el número del último día del mes (28-31).
func LastDayOfMonth(year int, month time.Month) int {
	// El día 0 del mes siguiente es el último día de este mes.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// shiftMonths desplaza t la cantidad de meses dada, ajustando el día al último
// día del mes destino para evitar el desborde de time.AddDate
// (31 de marzo - 1 mes sería "31 de febrero" → 2/3 de marzo).
func shiftMonths(t time.Time, months int) time.Time {
	year, month := t.Year(), t.Month()
	// Normalizar (year, month+months) sin tocar el día todavía.
	anchor := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := LastDayOfMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func shiftYears(t time.Time, years int) time.Time {
	day := t.Day()
	if last := LastDayOfMonth(t.Year()+years, t.Month()); day > last {
		day = last
	}
	return time.Date(t.Year()+years, t.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
