package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyEntry es el cierre diario de caja de un negocio: una fila por negocio y día.
type DailyEntry struct {
	ID         string
	BusinessID string
	EntryDate  time.Time
	// TotalRegister total bruto de caja del día (IVA incluido).
	TotalRegister decimal.Decimal
	// LaborCost costo laboral nominal registrado ese día (sin gerente, sin markup).
	LaborCost decimal.Decimal
	// DayFactor fracción de día realmente trabajada. Es el valor *real*, distinto
	// del valor *programado* de ScheduleRule para ese día de la semana.
	DayFactor decimal.Decimal
}
